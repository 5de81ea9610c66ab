package bracket

import (
	"fmt"

	"github.com/derekprior/volleysim/internal/rating"
	"github.com/derekprior/volleysim/internal/standings"
	"github.com/derekprior/volleysim/internal/volley"
)

// GenerateQuarterGroups seeds quarterfinal groups A-H from the winners and
// runners-up of regular-season groups 1-16. Ratings are computed from
// matches over the qualified teams only. A slot whose source group or
// team is missing is left out, so that group ends up short.
func GenerateQuarterGroups(season []standings.GroupStanding, matches []volley.Match) []PlayoffGroup {
	var qualified []volley.Team
	for _, s := range season {
		if s.First != nil {
			qualified = append(qualified, *s.First)
		}
		if s.Second != nil {
			qualified = append(qualified, *s.Second)
		}
	}
	ratings := rating.Compute(qualified, matches)

	groups := make([]PlayoffGroup, 0, len(QuarterTable))
	for _, def := range QuarterTable {
		var teams []PlayoffTeam
		for _, slot := range def.Slots {
			t, ok := seasonTeam(season, slot)
			if !ok {
				continue
			}
			teams = append(teams, PlayoffTeam{
				Team:        t,
				Rating:      ratings.Get(t.Name),
				SourceGroup: fmt.Sprintf("%d. GR", slot.Group),
				Position:    fmt.Sprintf("%d.", slot.Position),
			})
		}
		groups = append(groups, PlayoffGroup{Name: def.Name, Teams: seed(teams)})
	}
	return groups
}

func seasonTeam(season []standings.GroupStanding, slot SeasonSlot) (volley.Team, bool) {
	for _, s := range season {
		if volley.GroupNumber(s.GroupName) != slot.Group {
			continue
		}
		var t *volley.Team
		switch slot.Position {
		case 1:
			t = s.First
		case 2:
			t = s.Second
		}
		if t == nil {
			return volley.Team{}, false
		}
		return *t, true
	}
	return volley.Team{}, false
}

// GenerateSemiGroups seeds semifinal groups A-D from quarterfinal ranks.
// Ranks are read off each group's current order, so the quarterfinal
// groups must already be sorted by their scenario results.
func GenerateSemiGroups(quarter []PlayoffGroup) []PlayoffGroup {
	return fromPrevious(quarter, SemiTable, "QF")
}

// GenerateFinalGroups seeds final groups 1 and 2 from semifinal ranks, with
// the same ordering requirement as GenerateSemiGroups.
func GenerateFinalGroups(semi []PlayoffGroup) []PlayoffGroup {
	return fromPrevious(semi, FinalTable, "SF")
}

// Generate1LigSemiGroups crosses the top four of regular-season groups A
// and B into semifinal groups I and II. Without a rating history between
// the two groups, a team's rating is the baseline plus its season points.
func Generate1LigSemiGroups(season []standings.GroupStanding) []PlayoffGroup {
	groups := make([]PlayoffGroup, 0, len(OneLigSemiTable))
	for _, def := range OneLigSemiTable {
		var teams []PlayoffTeam
		for _, slot := range def.Slots {
			s, ok := findByLetter(season, slot.Group)
			if !ok || slot.Position < 1 || slot.Position > len(s.Teams) {
				continue
			}
			t := s.Teams[slot.Position-1]
			teams = append(teams, PlayoffTeam{
				Team:        t,
				Rating:      rating.Baseline + float64(t.Points),
				SourceGroup: fmt.Sprintf("%s.%d", slot.Group, slot.Position),
				Position:    fmt.Sprintf("%d.", slot.Position),
			})
		}
		groups = append(groups, PlayoffGroup{Name: def.Name, Teams: seed(teams)})
	}
	return groups
}

func findByLetter(season []standings.GroupStanding, letter string) (standings.GroupStanding, bool) {
	for _, s := range season {
		if volley.GroupLetter(s.GroupName) == letter {
			return s, true
		}
	}
	return standings.GroupStanding{}, false
}

// Generate1LigFinalGroups puts the top two of semifinal groups I and II
// into the single final group.
func Generate1LigFinalGroups(semi []PlayoffGroup) []PlayoffGroup {
	return fromPrevious(semi, OneLigFinalTable, "Group")
}

func fromPrevious(previous []PlayoffGroup, table []StageDef, label string) []PlayoffGroup {
	groups := make([]PlayoffGroup, 0, len(table))
	for _, def := range table {
		var teams []PlayoffTeam
		for _, slot := range def.Slots {
			g, ok := FindGroup(previous, slot.Group)
			if !ok || slot.Position < 1 || slot.Position > len(g.Teams) {
				continue
			}
			t := g.Teams[slot.Position-1]
			t.SourceGroup = fmt.Sprintf("%s %s", label, slot.Group)
			t.Position = fmt.Sprintf("%d.", slot.Position)
			t.Scenario = nil
			teams = append(teams, t)
		}
		groups = append(groups, PlayoffGroup{Name: def.Name, Teams: seed(teams)})
	}
	return groups
}

// seed fixes each team's InitialSeed to its slot in qualification order.
func seed(teams []PlayoffTeam) []PlayoffTeam {
	for i := range teams {
		teams[i].InitialSeed = i
	}
	return teams
}
