package simulate

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/derekprior/volleysim/internal/rating"
	"github.com/derekprior/volleysim/internal/standings"
	"github.com/derekprior/volleysim/internal/volley"
)

const (
	DefaultIterations = 1000
	PlayoffSpots      = 4
	RelegationSpots   = 2
)

// Options configures a projection run. The same options over the same
// input always produce the same projections.
type Options struct {
	Iterations int
	Seed       int64
	// Workers splits the iterations into batches run concurrently. Each
	// batch gets its own source seeded from Seed and its index.
	Workers    int
	Calculator *rating.Calculator
}

// Projection summarises where a team finished across all iterations.
// Percentages are in the range 0-100.
type Projection struct {
	Team        string  `json:"team"`
	CurrentRank int     `json:"currentRank"`
	BestRank    int     `json:"bestRank"`
	WorstRank   int     `json:"worstRank"`
	Champion    float64 `json:"champion"`
	Playoff     float64 `json:"playoff"`
	Relegation  float64 `json:"relegation"`
}

type fixture struct {
	home, away int // index into teams, -1 when the team is unknown
	expected   float64
}

type tally struct {
	best, worst                   []int
	champion, playoff, relegation []int
}

func newTally(n int) *tally {
	t := &tally{
		best:       make([]int, n),
		worst:      make([]int, n),
		champion:   make([]int, n),
		playoff:    make([]int, n),
		relegation: make([]int, n),
	}
	for i := range t.best {
		t.best[i] = n + 1
	}
	return t
}

func (t *tally) record(ranks []int) {
	n := len(ranks)
	for i, r := range ranks {
		t.best[i] = min(t.best[i], r)
		t.worst[i] = max(t.worst[i], r)
		if r == 1 {
			t.champion[i]++
		}
		if r <= PlayoffSpots {
			t.playoff[i]++
		}
		if r > n-RelegationSpots {
			t.relegation[i]++
		}
	}
}

func (t *tally) merge(o *tally) {
	for i := range t.best {
		t.best[i] = min(t.best[i], o.best[i])
		t.worst[i] = max(t.worst[i], o.worst[i])
		t.champion[i] += o.champion[i]
		t.playoff[i] += o.playoff[i]
		t.relegation[i] += o.relegation[i]
	}
}

// Project plays out every unplayed match Iterations times and returns one
// projection per team in current standings order. Completed matches feed
// the ratings that decide each simulated result.
func Project(teams []volley.Team, matches []volley.Match, opts Options) []Projection {
	if len(teams) == 0 {
		return nil
	}

	calc := rating.Default
	if opts.Calculator != nil {
		calc = *opts.Calculator
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	workers := max(opts.Workers, 1)
	workers = min(workers, iterations)

	index := make(map[string]int, len(teams))
	for i, t := range teams {
		index[t.Name] = i
	}
	remaining := unplayed(teams, matches, calc)

	total := newTally(len(teams))
	batch, remainder := iterations/workers, iterations%workers

	var wg sync.WaitGroup
	mu := sync.Mutex{}
	for i := range workers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			size := batch
			if idx < remainder {
				size++
			}
			rng := rand.New(rand.NewSource(opts.Seed + int64(idx)))
			res := runBatch(rng, teams, index, remaining, size)
			mu.Lock()
			total.merge(res)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	current := ranks(teams, index)
	projections := make([]Projection, len(teams))
	for i, t := range teams {
		projections[current[i]-1] = Projection{
			Team:        t.Name,
			CurrentRank: current[i],
			BestRank:    total.best[i],
			WorstRank:   total.worst[i],
			Champion:    percent(total.champion[i], iterations),
			Playoff:     percent(total.playoff[i], iterations),
			Relegation:  percent(total.relegation[i], iterations),
		}
	}
	return projections
}

// Run projects a single team, matched by normalized name.
func Run(teams []volley.Team, matches []volley.Match, target string, opts Options) (Projection, error) {
	normalize := volley.NormalizeFunc(nil).Or()
	if opts.Calculator != nil {
		normalize = opts.Calculator.Normalize.Or()
	}
	want := normalize(target)
	for _, p := range Project(teams, matches, opts) {
		if normalize(p.Team) == want {
			return p, nil
		}
	}
	return Projection{}, fmt.Errorf("team %q not found", target)
}

func unplayed(teams []volley.Team, matches []volley.Match, calc rating.Calculator) []fixture {
	normalize := calc.Normalize.Or()
	ratings := calc.Compute(teams, matches)

	byKey := make(map[string]int, len(teams))
	for i, t := range teams {
		byKey[normalize(t.Name)] = i
	}
	resolve := func(name string) (int, float64) {
		i, ok := byKey[normalize(name)]
		if !ok {
			return -1, calc.Baseline
		}
		return i, ratings[teams[i].Name]
	}

	var out []fixture
	for _, m := range matches {
		if m.Played {
			continue
		}
		home, hr := resolve(m.Home)
		away, ar := resolve(m.Away)
		if home < 0 && away < 0 {
			continue
		}
		out = append(out, fixture{home: home, away: away, expected: calc.Expected(hr, ar)})
	}
	return out
}

func runBatch(rng *rand.Rand, base []volley.Team, index map[string]int, remaining []fixture, n int) *tally {
	t := newTally(len(base))
	state := make([]volley.Team, len(base))
	for range n {
		copy(state, base)
		for _, f := range remaining {
			o, _ := volley.ParseScore(playMatch(rng, f.expected))
			var hs, as volley.Team
			home, away := &hs, &as
			if f.home >= 0 {
				home = &state[f.home]
			}
			if f.away >= 0 {
				away = &state[f.away]
			}
			o.Apply(home, away)
		}
		t.record(ranks(state, index))
	}
	return t
}

// playMatch draws a result for a match whose home side has the given
// expected score. Heavier favourites win by wider set margins.
func playMatch(rng *rand.Rand, expected float64) string {
	homeWin := rng.Float64() < expected
	dominance := expected
	if !homeWin {
		dominance = 1 - expected
	}

	r := rng.Float64()
	loserSets := 2
	switch {
	case dominance > 0.8:
		loserSets = 1
		if r < 0.7 {
			loserSets = 0
		}
	case dominance > 0.6:
		if r < 0.5 {
			loserSets = 1
		}
	}

	if homeWin {
		return fmt.Sprintf("3-%d", loserSets)
	}
	return fmt.Sprintf("%d-3", loserSets)
}

// ranks returns the 1-based standings position of each team, indexed like
// the input.
func ranks(state []volley.Team, index map[string]int) []int {
	out := make([]int, len(state))
	for pos, t := range standings.Sort(state) {
		out[index[t.Name]] = pos + 1
	}
	return out
}

func percent(count, total int) float64 {
	return float64(count) / float64(total) * 100
}
