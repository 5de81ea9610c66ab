package rating

import "github.com/derekprior/volleysim/internal/volley"

// PredictScore picks the most likely result for a match between two ratings,
// home side first.
func (c Calculator) PredictScore(home, away float64) string {
	e := c.Expected(home, away)
	switch {
	case e > 0.85:
		return "3-0"
	case e > 0.70:
		return "3-1"
	case e > 0.55:
		return "3-2"
	case e < 0.15:
		return "0-3"
	case e < 0.30:
		return "1-3"
	case e < 0.45:
		return "2-3"
	case e >= 0.5:
		return "3-2"
	}
	return "2-3"
}

// PredictScore runs Default.PredictScore.
func PredictScore(home, away float64) string {
	return Default.PredictScore(home, away)
}

// Predict fills in a predicted score for every unplayed match, keyed the
// way regular-season overrides are ("Home|||Away").
func (c Calculator) Predict(ratings Ratings, matches []volley.Match) map[string]string {
	predictions := make(map[string]string)
	for _, m := range matches {
		if m.Played {
			continue
		}
		predictions[m.Key()] = c.PredictScore(c.lookup(ratings, m.Home), c.lookup(ratings, m.Away))
	}
	return predictions
}

// Predict runs Default.Predict.
func Predict(ratings Ratings, matches []volley.Match) map[string]string {
	return Default.Predict(ratings, matches)
}

func (c Calculator) lookup(ratings Ratings, name string) float64 {
	if v, ok := ratings[name]; ok {
		return v
	}
	normalize := c.Normalize.Or()
	key := normalize(name)
	for n, v := range ratings {
		if normalize(n) == key {
			return v
		}
	}
	return c.Baseline
}
