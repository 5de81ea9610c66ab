// Package rating derives an Elo-style strength estimate for each team from
// its completed matches.
package rating

import (
	"math"
	"sort"

	"github.com/derekprior/volleysim/internal/volley"
)

// Ratings maps a team's display name to its rating.
type Ratings map[string]float64

// Get returns the team's rating, or the baseline when it is unknown.
func (r Ratings) Get(name string) float64 {
	if v, ok := r[name]; ok {
		return v
	}
	return Baseline
}

const (
	// Baseline is every team's starting rating.
	Baseline = 1200.0
	// KFactor is the base step size before the margin multiplier.
	KFactor = 32.0
	// Spread is the rating gap at which the favourite is ten times as
	// likely to win.
	Spread = 400.0
)

// Calculator holds the tunables for a rating run.
type Calculator struct {
	Baseline float64
	K        float64
	Spread   float64
	// Margin scales K by the set difference of the match (1, 2 or 3).
	Margin    map[int]float64
	Normalize volley.NormalizeFunc
}

// Default is the league's rating model: a 3-0 sweep counts 1.3x, a 3-1
// win 1.1x and a tie-break win 1x.
var Default = Calculator{
	Baseline: Baseline,
	K:        KFactor,
	Spread:   Spread,
	Margin:   map[int]float64{3: 1.3, 2: 1.1, 1: 1.0},
}

// Compute runs Default.Compute.
func Compute(teams []volley.Team, matches []volley.Match) Ratings {
	return Default.Compute(teams, matches)
}

// Expected is the logistic expected score of a side rated a against a side
// rated b.
func (c Calculator) Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/c.Spread))
}

// Compute seeds every team at the baseline and replays completed matches in
// date order, updating both sides after each match. Teams that appear in a
// match but not in teams play at the baseline and are not added to the
// result. Matches without a valid score are skipped.
func (c Calculator) Compute(teams []volley.Team, matches []volley.Match) Ratings {
	normalize := c.Normalize.Or()

	ratings := make(Ratings, len(teams))
	names := make(map[string]string, len(teams)) // normalized -> display
	for _, t := range teams {
		ratings[t.Name] = c.Baseline
		names[normalize(t.Name)] = t.Name
	}

	type scored struct {
		match   volley.Match
		outcome volley.Outcome
	}
	var played []scored
	for _, m := range matches {
		if !m.Played {
			continue
		}
		o, ok := volley.ParseScore(m.Score)
		if !ok {
			continue
		}
		played = append(played, scored{m, o})
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].match.Date.Before(played[j].match.Date)
	})

	for _, p := range played {
		homeName, homeKnown := names[normalize(p.match.Home)]
		awayName, awayKnown := names[normalize(p.match.Away)]

		home, away := c.Baseline, c.Baseline
		if homeKnown {
			home = ratings[homeName]
		}
		if awayKnown {
			away = ratings[awayName]
		}

		actualHome := 0.0
		if p.outcome.HomeWin {
			actualHome = 1
		}
		k := c.K * c.multiplier(p.outcome.SetDiff())

		newHome := home + k*(actualHome-c.Expected(home, away))
		newAway := away + k*((1-actualHome)-c.Expected(away, home))

		if homeKnown {
			ratings[homeName] = newHome
		}
		if awayKnown {
			ratings[awayName] = newAway
		}
	}

	return ratings
}

func (c Calculator) multiplier(setDiff int) float64 {
	if m, ok := c.Margin[setDiff]; ok {
		return m
	}
	return 1
}
