package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/volley"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type Group struct {
	Name  string        `yaml:"name"`
	Teams []volley.Team `yaml:"teams"`
}

type Match struct {
	Home   string `yaml:"home"`
	Away   string `yaml:"away"`
	Group  string `yaml:"group"`
	Score  string `yaml:"score"`
	Date   *Date  `yaml:"date"`
	Time   string `yaml:"time"`
	Played *bool  `yaml:"played"`
}

// IsPlayed reports whether the match counts as completed. A scored match is
// played unless it is explicitly marked otherwise.
func (m Match) IsPlayed() bool {
	if m.Played != nil {
		return *m.Played
	}
	return m.Score != ""
}

// When combines the match date and kick-off time. Undated matches return
// the zero time.
func (m Match) When() time.Time {
	if m.Date == nil {
		return time.Time{}
	}
	when := m.Date.Time
	if t, err := time.Parse("15:04", m.Time); err == nil {
		when = when.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	return when
}

type Config struct {
	League          string                              `yaml:"league"`
	Groups          []Group                             `yaml:"groups"`
	Matches         []Match                             `yaml:"matches"`
	SeasonOverrides map[string]string                   `yaml:"season_overrides"`
	Overrides       map[bracket.Stage]map[string]string `yaml:"overrides"`
}

// Teams returns every team record with its group name filled in.
func (c *Config) Teams() []volley.Team {
	var teams []volley.Team
	for _, g := range c.Groups {
		for _, t := range g.Teams {
			t.Group = g.Name
			teams = append(teams, t)
		}
	}
	return teams
}

// GroupTeams returns the records of one group, or nil if there is no such
// group.
func (c *Config) GroupTeams(name string) []volley.Team {
	for _, g := range c.Groups {
		if g.Name == name {
			var teams []volley.Team
			for _, t := range g.Teams {
				t.Group = g.Name
				teams = append(teams, t)
			}
			return teams
		}
	}
	return nil
}

// Fixture converts the configured matches into the engine's match records.
func (c *Config) Fixture() []volley.Match {
	out := make([]volley.Match, 0, len(c.Matches))
	for _, m := range c.Matches {
		out = append(out, volley.Match{
			Home:   m.Home,
			Away:   m.Away,
			Group:  m.Group,
			Played: m.IsPlayed(),
			Score:  m.Score,
			Date:   m.When(),
		})
	}
	return out
}

// GroupFixture returns the matches of one group.
func (c *Config) GroupFixture(name string) []volley.Match {
	var out []volley.Match
	for _, m := range c.Fixture() {
		if m.Group == name {
			out = append(out, m)
		}
	}
	return out
}

// Format returns the bracket format named by League.
func (c *Config) Format() (bracket.Format, error) {
	return bracket.Get(c.League)
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.League == "" {
		cfg.League = "2lig"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if _, err := bracket.Get(c.League); err != nil {
		return fmt.Errorf("%w (want one of %s)", err, strings.Join(bracket.Names(), ", "))
	}

	if len(c.Groups) == 0 {
		return fmt.Errorf("at least one group is required")
	}

	// Team names must be unique across groups once normalized
	seen := make(map[string]string)
	for _, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group name is required")
		}
		if len(g.Teams) == 0 {
			return fmt.Errorf("group %q has no teams", g.Name)
		}
		for _, t := range g.Teams {
			if t.Name == "" {
				return fmt.Errorf("group %q: team name is required", g.Name)
			}
			key := volley.NormalizeName(t.Name)
			if prevGroup, ok := seen[key]; ok {
				return fmt.Errorf("team %q appears in both %q and %q groups", t.Name, prevGroup, g.Name)
			}
			seen[key] = g.Name
			if t.Wins > t.Played {
				return fmt.Errorf("team %q: wins (%d) exceed matches played (%d)", t.Name, t.Wins, t.Played)
			}
			if t.Played < 0 || t.Wins < 0 || t.Points < 0 || t.SetsWon < 0 || t.SetsLost < 0 {
				return fmt.Errorf("team %q: record values must not be negative", t.Name)
			}
		}
	}

	for i, m := range c.Matches {
		if m.Home == "" || m.Away == "" {
			return fmt.Errorf("match %d: home and away are required", i+1)
		}
		if m.Home == m.Away {
			return fmt.Errorf("match %d: %q cannot play itself", i+1, m.Home)
		}
		if m.Score != "" {
			if _, ok := volley.ParseScore(m.Score); !ok {
				return fmt.Errorf("match %d (%s vs %s): invalid score %q", i+1, m.Home, m.Away, m.Score)
			}
		}
		if m.Time != "" {
			if _, err := time.Parse("15:04", m.Time); err != nil {
				return fmt.Errorf("match %d (%s vs %s): invalid time %q", i+1, m.Home, m.Away, m.Time)
			}
		}
	}

	for stage := range c.Overrides {
		if _, err := bracket.ParseStage(string(stage)); err != nil {
			return fmt.Errorf("overrides: %w", err)
		}
	}

	return nil
}
