package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/config"
	"github.com/derekprior/volleysim/internal/excel"
	"github.com/derekprior/volleysim/internal/rating"
	"github.com/derekprior/volleysim/internal/scenario"
	"github.com/derekprior/volleysim/internal/simulate"
	"github.com/derekprior/volleysim/internal/standings"
	"github.com/derekprior/volleysim/internal/validator"
	"github.com/derekprior/volleysim/internal/volley"
)

// season is a loaded season file plus the scenario layered on top of it.
type season struct {
	cfg          *config.Config
	scenario     *scenario.File
	scenarioPath string
	// strict turns malformed overrides into a command failure.
	strict bool
}

func loadSeason(configPath, scenarioPath string) (*season, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"path":    configPath,
		"league":  cfg.League,
		"groups":  len(cfg.Groups),
		"matches": len(cfg.Matches),
	}).Debug("Loaded season")

	s := &season{
		cfg:          cfg,
		scenario:     &scenario.File{Version: scenario.FileVersion, League: cfg.League},
		scenarioPath: scenarioPath,
	}
	if scenarioPath == "" {
		return s, nil
	}

	f, err := scenario.LoadFile(scenarioPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading scenario: %w", err)
		}
		logger.WithField("path", scenarioPath).Debug("Scenario file not found, starting empty")
		return s, nil
	}
	if f.League != "" && f.League != cfg.League {
		logger.WithFields(logrus.Fields{
			"scenario": f.League,
			"season":   cfg.League,
		}).Warn("Scenario was saved for a different league")
	}
	logger.WithFields(logrus.Fields{"path": scenarioPath, "overrides": f.Count()}).Debug("Loaded scenario")
	s.scenario = f
	return s, nil
}

// seasonOverrides merges the season file's overrides with the scenario's.
// The scenario wins on conflict.
func (s *season) seasonOverrides() map[string]string {
	out := make(map[string]string, len(s.cfg.SeasonOverrides)+len(s.scenario.Season))
	for k, v := range s.cfg.SeasonOverrides {
		out[k] = v
	}
	for k, v := range s.scenario.Season {
		out[k] = v
	}
	return out
}

func (s *season) stageOverrides() map[bracket.Stage]map[string]string {
	out := make(map[bracket.Stage]map[string]string)
	for _, src := range []map[bracket.Stage]map[string]string{s.cfg.Overrides, s.scenario.Stages} {
		for stage, o := range src {
			if out[stage] == nil {
				out[stage] = make(map[string]string)
			}
			for k, v := range o {
				out[stage][k] = v
			}
		}
	}
	return out
}

// teams returns the team records with season overrides applied, in config
// order.
func (s *season) teams() []volley.Team {
	return s.withResults(s.cfg.Teams())
}

// withResults adds the overridden unplayed matches to the given teams'
// records. Order is preserved, so group standings still break points ties
// by config order.
func (s *season) withResults(teams []volley.Team) []volley.Team {
	results := s.results()
	if len(results) == 0 {
		return teams
	}
	return scenario.Default.ApplyMatchOverrides(teams, results)
}

// results lists the unplayed fixture matches that have a valid season
// override, keyed "Home|||Away" or the older "Home-Away".
func (s *season) results() []scenario.MatchOverride {
	overrides := s.seasonOverrides()
	if len(overrides) == 0 {
		return nil
	}
	var results []scenario.MatchOverride
	for _, m := range s.cfg.Fixture() {
		if m.Played {
			continue
		}
		score, ok := overrides[m.Key()]
		if !ok {
			score, ok = overrides[m.Home+"-"+m.Away]
		}
		if _, valid := volley.ParseScore(score); ok && valid {
			results = append(results, scenario.MatchOverride{Home: m.Home, Away: m.Away, Score: score})
		}
	}
	return results
}

// fixture returns the season's matches with every validly overridden
// unplayed match treated as played with its hypothetical score.
func (s *season) fixture() []volley.Match {
	scores := make(map[string]string)
	for _, r := range s.results() {
		scores[volley.FlatKey(r.Home, r.Away)] = r.Score
	}
	fixture := s.cfg.Fixture()
	for i, m := range fixture {
		if score, ok := scores[m.Key()]; ok && !m.Played {
			fixture[i].Played = true
			fixture[i].Score = score
		}
	}
	return fixture
}

// stage parses a stage name and checks that the league's format plays it.
func (s *season) stage(name string) (bracket.Stage, error) {
	stage, err := bracket.ParseStage(name)
	if err != nil {
		return "", err
	}
	format, err := s.cfg.Format()
	if err != nil {
		return "", err
	}
	stages := format.Stages()
	if !slices.Contains(stages, stage) {
		names := make([]string, len(stages))
		for i, st := range stages {
			names[i] = string(st)
		}
		return "", fmt.Errorf("%s has no %s stage (want one of %s)", format.Name(), stage, strings.Join(names, ", "))
	}
	return stage, nil
}

func (s *season) build() (bracket.Bracket, map[bracket.Stage]map[string]string, error) {
	format, err := s.cfg.Format()
	if err != nil {
		return bracket.Bracket{}, nil, err
	}
	overrides := s.stageOverrides()
	table := standings.ComputeGroupStandings(s.teams())
	b := format.Build(table, s.fixture(), overrides, scenario.Default)

	for _, r := range b.Stages {
		logger.WithFields(logrus.Fields{
			"stage":     r.Stage,
			"groups":    len(r.Groups),
			"matches":   len(r.Fixture),
			"overrides": len(overrides[r.Stage]),
		}).Debug("Seeded stage")
	}
	return b, overrides, nil
}

func runStandings(s *season, group string, live bool) error {
	table := standings.ComputeGroupStandings(s.cfg.Teams())
	overrides := s.seasonOverrides()

	shown := 0
	for _, g := range table {
		if group != "" && g.GroupName != group {
			continue
		}
		shown++

		teams := g.Teams
		moves := make(map[string]standings.Diff)
		if live {
			base := standings.Sort(g.Teams)
			teams = standings.Live(g.Teams, s.cfg.Fixture(), overrides, nil)
			for _, d := range standings.Compare(base, teams) {
				moves[d.Name] = d
			}
		}

		fmt.Printf("\n%s\n", g.GroupName)
		fmt.Printf("  %3s %-28s %3s %3s %3s %4s %4s %4s %7s\n", "#", "Team", "P", "W", "L", "Pts", "SW", "SL", "Ratio")
		for i, t := range teams {
			line := fmt.Sprintf("  %3d %-28s %3d %3d %3d %4d %4d %4d %7s",
				i+1, t.Name, t.Played, t.Wins, t.Losses(), t.Points, t.SetsWon, t.SetsLost, ratioText(t.SetsWon, t.SetsLost))
			if d, ok := moves[t.Name]; ok && d.RankDiff != 0 {
				line += "  " + movement(d.RankDiff)
			}
			fmt.Println(line)
		}
	}
	if shown == 0 && group != "" {
		return fmt.Errorf("group %q not found", group)
	}

	if live {
		return s.report(validator.CheckSeason(s.cfg.Fixture(), overrides))
	}
	return nil
}

func runRatings(s *season) error {
	teams := s.cfg.Teams()
	fixture := s.fixture()
	ratings := rating.Compute(teams, fixture)

	sort.SliceStable(teams, func(i, j int) bool {
		return ratings[teams[i].Name] > ratings[teams[j].Name]
	})

	played := 0
	for _, m := range fixture {
		if m.Played {
			played++
		}
	}

	fmt.Printf("Ratings from %d completed matches\n\n", played)
	fmt.Printf("  %3s %-28s %-10s %7s\n", "#", "Team", "Group", "Rating")
	for i, t := range teams {
		fmt.Printf("  %3d %-28s %-10s %7.1f\n", i+1, t.Name, t.Group, ratings[t.Name])
	}
	return nil
}

func runPredict(s *season, stageName string, save bool) error {
	var predictions map[string]string

	if stageName == "" {
		fixture := s.fixture()
		predictions = rating.Predict(rating.Compute(s.cfg.Teams(), fixture), fixture)
	} else {
		stage, err := s.stage(stageName)
		if err != nil {
			return err
		}
		b, overrides, err := s.build()
		if err != nil {
			return err
		}
		result, ok := b.Stage(stage)
		if !ok {
			return fmt.Errorf("%s has no %s stage", b.Format, stage)
		}

		predictions = make(map[string]string)
		ratings := make(map[string]float64)
		for _, g := range result.Groups {
			for _, t := range g.Teams {
				ratings[t.Name] = t.Rating
			}
		}
		for _, m := range result.Fixture {
			id := m.ID.String()
			if _, done := overrides[stage][id]; done {
				continue
			}
			predictions[id] = rating.PredictScore(ratings[m.Home()], ratings[m.Away()])
		}
	}

	if len(predictions) == 0 {
		fmt.Println("✓ Nothing left to predict")
		return nil
	}

	keys := make([]string, 0, len(predictions))
	for k := range predictions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-60s %s\n", strings.Replace(k, "|||", " vs ", 1), predictions[k])
	}

	if !save {
		return nil
	}
	if s.scenarioPath == "" {
		return fmt.Errorf("--save needs a scenario file; pass --scenario")
	}
	for _, k := range keys {
		if err := s.scenario.Set(k, predictions[k]); err != nil {
			return err
		}
	}
	if s.scenario.League == "" {
		s.scenario.League = s.cfg.League
	}
	if err := s.scenario.Save(s.scenarioPath); err != nil {
		return err
	}
	fmt.Printf("\n✓ Saved %d predictions to %s\n", len(keys), s.scenarioPath)
	return nil
}

func runBracket(s *season, stageName string) error {
	var only bracket.Stage
	if stageName != "" {
		stage, err := s.stage(stageName)
		if err != nil {
			return err
		}
		only = stage
	}

	b, overrides, err := s.build()
	if err != nil {
		return err
	}

	for _, r := range b.Stages {
		if only != "" && r.Stage != only {
			continue
		}
		fmt.Printf("\n== %s ==\n", excel.SheetName(r.Stage))
		scores := overrides[r.Stage]

		for _, g := range r.Groups {
			fmt.Printf("\nGroup %s\n", g.Name)
			fmt.Printf("  %3s %-28s %-10s %-4s %7s %3s %3s %4s %5s\n", "#", "Team", "From", "Pos", "Rating", "W", "L", "Pts", "Sets")
			for i, t := range g.Teams {
				st := t.Stats()
				fmt.Printf("  %3d %-28s %-10s %-4s %7.1f %3d %3d %4d %2d-%-2d\n",
					i+1, t.Name, t.SourceGroup, t.Position, t.Rating, st.Wins, st.Losses, st.Points, st.SetsWon, st.SetsLost)
			}

			for _, m := range r.Fixture {
				if m.ID.Group != g.Name {
					continue
				}
				score := scores[m.ID.String()]
				if score == "" {
					score = "-"
				}
				fmt.Printf("    %-6s %-28s %-28s %s\n", m.Day, m.Home(), m.Away(), score)
			}
		}
	}

	return s.report(validator.CheckBracket(b, overrides))
}

func runSimulate(s *season, target, group string, opts simulate.Options) error {
	if target == "" && group == "" {
		return fmt.Errorf("name a team or pass --group")
	}
	if target != "" {
		key := volley.NormalizeName(target)
		group = ""
		for _, t := range s.cfg.Teams() {
			if volley.NormalizeName(t.Name) == key {
				group = t.Group
				break
			}
		}
		if group == "" {
			return fmt.Errorf("team %q not found", target)
		}
	}

	teams := s.cfg.GroupTeams(group)
	if teams == nil {
		return fmt.Errorf("group %q not found", group)
	}
	teams = s.withResults(teams)
	if opts.Iterations <= 0 {
		opts.Iterations = simulate.DefaultIterations
	}

	logger.WithFields(logrus.Fields{
		"group":      group,
		"iterations": opts.Iterations,
		"seed":       opts.Seed,
		"workers":    opts.Workers,
	}).Debug("Simulating")

	fmt.Printf("%s: %d simulated seasons (seed %d)\n\n", group, opts.Iterations, opts.Seed)

	if target != "" {
		p, err := simulate.Run(teams, s.fixture(), target, opts)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", p.Team)
		fmt.Printf("  Current rank:   %d\n", p.CurrentRank)
		fmt.Printf("  Rank range:     %d-%d\n", p.BestRank, p.WorstRank)
		fmt.Printf("  Champion:       %5.1f%%\n", p.Champion)
		fmt.Printf("  Top %d:          %5.1f%%\n", simulate.PlayoffSpots, p.Playoff)
		fmt.Printf("  Bottom %d:       %5.1f%%\n", simulate.RelegationSpots, p.Relegation)
		return nil
	}

	fmt.Printf("  %-28s %4s %4s %5s %7s %7s %8s\n", "Team", "Now", "Best", "Worst", "Champ", "Top 4", "Bottom 2")
	for _, p := range simulate.Project(teams, s.fixture(), opts) {
		fmt.Printf("  %-28s %4d %4d %5d %6.1f%% %6.1f%% %7.1f%%\n",
			p.Team, p.CurrentRank, p.BestRank, p.WorstRank, p.Champion, p.Playoff, p.Relegation)
	}
	return nil
}

func runExport(s *season, outputPath string) error {
	b, overrides, err := s.build()
	if err != nil {
		return err
	}

	f, err := excel.Generate(standings.ComputeGroupStandings(s.teams()), b, overrides)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("✓ Workbook saved to %s\n", outputPath)
	fmt.Printf("  Type scores into the Fixture sheet, then run: volleysim scenario import %s <scenario.yaml>\n", outputPath)
	return nil
}

// report prints ignored overrides. In strict mode any malformed override
// fails the command.
func (s *season) report(violations []validator.Violation) error {
	printViolations(violations)
	if errs := validator.Errors(violations); s.strict && len(errs) > 0 {
		return fmt.Errorf("%d malformed overrides", len(errs))
	}
	return nil
}

func printViolations(violations []validator.Violation) {
	if len(violations) == 0 {
		return
	}
	fmt.Printf("\nIgnored overrides (%d):\n", len(violations))
	for _, v := range violations {
		switch v.Type {
		case "error":
			fmt.Printf("  ✗ %s\n", v.Message)
		case "warning":
			fmt.Printf("  ⚠ %s\n", v.Message)
		}
	}
}

func ratioText(won, lost int) string {
	r := volley.SetRatio(won, lost)
	if math.IsInf(r, 1) {
		return "MAX"
	}
	return fmt.Sprintf("%.3f", r)
}

func movement(diff int) string {
	if diff > 0 {
		return fmt.Sprintf("▲%d", diff)
	}
	return fmt.Sprintf("▼%d", -diff)
}
