// Package scenario re-ranks standings and playoff groups under
// hypothetical match results.
package scenario

import (
	"sort"
	"strings"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/volley"
)

// Engine applies overrides. The zero value normalizes team names with
// volley.NormalizeName.
type Engine struct {
	Normalize volley.NormalizeFunc
}

// Default is the zero Engine.
var Default = Engine{}

// ApplyToGroups runs Default.ApplyToGroups.
func ApplyToGroups(groups []bracket.PlayoffGroup, overrides map[string]string, stage bracket.Stage) []bracket.PlayoffGroup {
	return Default.ApplyToGroups(groups, overrides, stage)
}

// ApplyToTeams runs Default.ApplyToTeams.
func ApplyToTeams(teams []volley.Team, overrides map[string]string) []volley.Team {
	return Default.ApplyToTeams(teams, overrides)
}

// ApplyToGroups scores each group from the overrides that match its
// canonical fixture and returns new groups ranked by scenario wins, points,
// set ratio and finally rating. Overrides with an unknown id or a
// malformed score are ignored. The input groups are not modified.
func (e Engine) ApplyToGroups(groups []bracket.PlayoffGroup, overrides map[string]string, stage bracket.Stage) []bracket.PlayoffGroup {
	normalize := e.Normalize.Or()

	out := make([]bracket.PlayoffGroup, 0, len(groups))
	for _, g := range groups {
		ranked := g.Clone()

		stats := make(map[string]*bracket.ScenarioStats, len(ranked.Teams))
		for i := range ranked.Teams {
			s := &bracket.ScenarioStats{}
			ranked.Teams[i].Scenario = s
			stats[normalize(ranked.Teams[i].Name)] = s
		}

		for _, m := range bracket.GenerateGroupFixture([]bracket.PlayoffGroup{g}, stage) {
			score, ok := overrides[m.ID.String()]
			if !ok {
				continue
			}
			outcome, ok := volley.ParseScore(score)
			if !ok {
				continue
			}
			home, hok := stats[normalize(m.Home())]
			away, aok := stats[normalize(m.Away())]
			if !hok || !aok || home == away {
				continue
			}
			record(outcome, home, away)
		}

		sort.SliceStable(ranked.Teams, func(i, j int) bool {
			return rankedAbove(ranked.Teams[i], ranked.Teams[j])
		})
		out = append(out, ranked)
	}
	return out
}

func record(o volley.Outcome, home, away *bracket.ScenarioStats) {
	home.Played++
	home.SetsWon += o.HomeSets
	home.SetsLost += o.AwaySets
	home.Points += o.HomePoints

	away.Played++
	away.SetsWon += o.AwaySets
	away.SetsLost += o.HomeSets
	away.Points += o.AwayPoints

	if o.HomeWin {
		home.Wins++
		away.Losses++
	} else {
		away.Wins++
		home.Losses++
	}
}

func rankedAbove(a, b bracket.PlayoffTeam) bool {
	sa, sb := a.Stats(), b.Stats()
	if sa.Wins != sb.Wins {
		return sa.Wins > sb.Wins
	}
	if sa.Points != sb.Points {
		return sa.Points > sb.Points
	}
	if c := volley.CompareRatios(
		volley.SetRatio(sa.SetsWon, sa.SetsLost),
		volley.SetRatio(sb.SetsWon, sb.SetsLost),
	); c != 0 {
		return c > 0
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.InitialSeed < b.InitialSeed
}

// MatchOverride is one hypothetical regular-season result.
type MatchOverride struct {
	Home  string
	Away  string
	Score string
}

// ParseFlatOverrides reads "Home|||Away" keys, sorted by key. Other keys
// are dropped.
func ParseFlatOverrides(overrides map[string]string) []MatchOverride {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []MatchOverride
	for _, k := range keys {
		home, away, ok := strings.Cut(k, "|||")
		if !ok || home == "" || away == "" {
			continue
		}
		out = append(out, MatchOverride{Home: home, Away: away, Score: overrides[k]})
	}
	return out
}

// ApplyToTeams adds each "Home|||Away" override on top of the teams'
// current season totals. Overrides are not checked against a fixture.
// Teams come back in input order.
func (e Engine) ApplyToTeams(teams []volley.Team, overrides map[string]string) []volley.Team {
	return e.ApplyMatchOverrides(teams, ParseFlatOverrides(overrides))
}

// ApplyMatchOverrides is ApplyToTeams for an explicit list of results.
func (e Engine) ApplyMatchOverrides(teams []volley.Team, overrides []MatchOverride) []volley.Team {
	normalize := e.Normalize.Or()

	out := make([]volley.Team, len(teams))
	copy(out, teams)
	index := make(map[string]int, len(out))
	for i, t := range out {
		index[normalize(t.Name)] = i
	}

	for _, o := range overrides {
		outcome, ok := volley.ParseScore(o.Score)
		if !ok {
			continue
		}
		hi, hok := index[normalize(o.Home)]
		ai, aok := index[normalize(o.Away)]
		if !hok || !aok || hi == ai {
			continue
		}
		outcome.Apply(&out[hi], &out[ai])
	}
	return out
}
