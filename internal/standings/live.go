package standings

import "github.com/derekprior/volleysim/internal/volley"

// Live layers hypothetical results for unplayed fixture matches on top of
// the current records and returns the re-sorted table. An override is
// looked up by "Home|||Away" first and by the older "Home-Away" form
// second. Played matches, malformed scores and unknown teams are ignored.
func Live(teams []volley.Team, fixture []volley.Match, overrides map[string]string, normalize volley.NormalizeFunc) []volley.Team {
	normalize = normalize.Or()

	current := make([]volley.Team, len(teams))
	copy(current, teams)
	index := make(map[string]int, len(current))
	for i, t := range current {
		index[normalize(t.Name)] = i
	}

	for _, m := range fixture {
		if m.Played {
			continue
		}
		score, ok := overrides[m.Key()]
		if !ok {
			score, ok = overrides[m.Home+"-"+m.Away]
		}
		if !ok {
			continue
		}
		outcome, ok := volley.ParseScore(score)
		if !ok {
			continue
		}
		hi, hok := index[normalize(m.Home)]
		ai, aok := index[normalize(m.Away)]
		if !hok || !aok || hi == ai {
			continue
		}
		outcome.Apply(&current[hi], &current[ai])
	}

	return Sort(current)
}

// Diff describes how one team moved between two orderings.
type Diff struct {
	Name      string `json:"name"`
	RankDiff  int    `json:"rankDiff"` // positive means the team rose
	PointDiff int    `json:"pointDiff"`
	WinDiff   int    `json:"winDiff"`
}

// Compare reports, in target order, each team's movement from base to
// target. Teams missing from base are left out.
func Compare(base, target []volley.Team) []Diff {
	type entry struct {
		rank int
		team volley.Team
	}
	baseIndex := make(map[string]entry, len(base))
	for i, t := range base {
		baseIndex[t.Name] = entry{i + 1, t}
	}

	var diffs []Diff
	for i, t := range target {
		b, ok := baseIndex[t.Name]
		if !ok {
			continue
		}
		diffs = append(diffs, Diff{
			Name:      t.Name,
			RankDiff:  b.rank - (i + 1),
			PointDiff: t.Points - b.team.Points,
			WinDiff:   t.Wins - b.team.Wins,
		})
	}
	return diffs
}
