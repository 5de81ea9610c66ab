// Package standings aggregates team records into group tables.
package standings

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/derekprior/volleysim/internal/volley"
)

// UnknownGroup collects teams that arrive without a group name.
const UnknownGroup = "Unknown"

// GroupStanding is one regular-season group table, sorted by points.
type GroupStanding struct {
	GroupName string        `json:"groupName"`
	First     *volley.Team  `json:"first"`
	Second    *volley.Team  `json:"second"`
	Teams     []volley.Team `json:"teams"`
}

// ComputeGroupStandings splits teams by group and orders each group by
// points only. Groups come back in natural name order. Equal points keep
// their input order; seeding only needs first and second place.
func ComputeGroupStandings(teams []volley.Team) []GroupStanding {
	groups := make(map[string][]volley.Team)
	var names []string
	for _, t := range teams {
		g := t.Group
		if g == "" {
			g = UnknownGroup
		}
		if _, ok := groups[g]; !ok {
			names = append(names, g)
		}
		groups[g] = append(groups[g], t)
	}
	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})

	standings := make([]GroupStanding, 0, len(names))
	for _, name := range names {
		sorted := groups[name]
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Points > sorted[j].Points
		})

		gs := GroupStanding{GroupName: name, Teams: sorted}
		if len(sorted) > 0 {
			first := sorted[0]
			gs.First = &first
		}
		if len(sorted) > 1 {
			second := sorted[1]
			gs.Second = &second
		}
		standings = append(standings, gs)
	}
	return standings
}

// Sort returns a copy of teams ordered by wins, then points, then set
// ratio. A team that has lost no sets is ranked as if it had lost one.
// Full ties keep their input order.
func Sort(teams []volley.Team) []volley.Team {
	sorted := make([]volley.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return volley.CompareRatios(
			tableRatio(a.SetsWon, a.SetsLost),
			tableRatio(b.SetsWon, b.SetsLost),
		) > 0
	})
	return sorted
}

func tableRatio(won, lost int) float64 {
	return float64(won) / float64(max(lost, 1))
}
