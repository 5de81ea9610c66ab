package volley

import (
	"math"
	"strconv"
	"strings"
)

// Scores lists every valid completed-match result, home sets first.
var Scores = []string{"3-0", "3-1", "3-2", "2-3", "1-3", "0-3"}

// Outcome is the standings effect of one completed match.
type Outcome struct {
	HomeSets   int
	AwaySets   int
	HomePoints int
	AwayPoints int
	HomeWin    bool
}

// SetDiff is the absolute set margin: 3 for a sweep, 1 for a tie-break win.
func (o Outcome) SetDiff() int {
	if o.HomeSets > o.AwaySets {
		return o.HomeSets - o.AwaySets
	}
	return o.AwaySets - o.HomeSets
}

// ParseScore reads an "H-A" set score. Only the six results in Scores are
// valid: a 3-0 or 3-1 win is worth 3 points to the winner and none to the
// loser, a 3-2 win splits 2 and 1.
func ParseScore(score string) (Outcome, bool) {
	hs, as, ok := strings.Cut(score, "-")
	if !ok {
		return Outcome{}, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return Outcome{}, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(as))
	if err != nil {
		return Outcome{}, false
	}

	switch {
	case h == 3 && (a == 0 || a == 1):
		return Outcome{HomeSets: 3, AwaySets: a, HomePoints: 3, HomeWin: true}, true
	case h == 3 && a == 2:
		return Outcome{HomeSets: 3, AwaySets: 2, HomePoints: 2, AwayPoints: 1, HomeWin: true}, true
	case a == 3 && (h == 0 || h == 1):
		return Outcome{HomeSets: h, AwaySets: 3, AwayPoints: 3}, true
	case a == 3 && h == 2:
		return Outcome{HomeSets: 2, AwaySets: 3, HomePoints: 1, AwayPoints: 2}, true
	}
	return Outcome{}, false
}

// Apply adds the outcome to the home and away records.
func (o Outcome) Apply(home, away *Team) {
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
	} else {
		away.Wins++
	}
}

// SetRatio is sets won over sets lost. A record with no sets at all has
// ratio 0; one that has won sets without losing any is infinite.
func SetRatio(won, lost int) float64 {
	switch {
	case won == 0 && lost == 0:
		return 0
	case lost == 0:
		return math.Inf(1)
	}
	return float64(won) / float64(lost)
}

const ratioEpsilon = 1e-4

// CompareRatios returns 1 if a is the better ratio, -1 if b is, and 0 when
// they are equal within a small tolerance.
func CompareRatios(a, b float64) int {
	if a == b {
		return 0
	}
	if math.IsInf(a, 1) || math.IsInf(b, 1) || math.Abs(a-b) > ratioEpsilon {
		if a > b {
			return 1
		}
		return -1
	}
	return 0
}
