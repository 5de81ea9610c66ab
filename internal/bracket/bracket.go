// Package bracket seeds the playoff stages from regular-season standings
// and generates the canonical round-robin fixture for each playoff group.
package bracket

import (
	"fmt"

	"github.com/derekprior/volleysim/internal/volley"
)

// Stage names a playoff round. It is the first segment of every match id.
type Stage string

const (
	Quarter Stage = "quarter"
	Semi    Stage = "semi"
	Final   Stage = "final"
)

// ParseStage accepts the three stage names.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case Quarter, Semi, Final:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q (want quarter, semi or final)", s)
}

// ScenarioStats are a team's results inside one playoff group, counted only
// from hypothetical scores.
type ScenarioStats struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Played   int `json:"played"`
	Points   int `json:"points"`
	SetsWon  int `json:"setsWon"`
	SetsLost int `json:"setsLost"`
}

// PlayoffTeam is a qualified team inside a playoff group.
type PlayoffTeam struct {
	volley.Team
	Rating      float64 `json:"elo"`
	SourceGroup string  `json:"sourceGroup"`
	Position    string  `json:"position"`
	// InitialSeed is the team's slot (0-3) when the group was built. It
	// survives re-sorting and drives the fixture.
	InitialSeed int `json:"initialSeed"`
	// Scenario is nil until overrides have been applied to the group.
	Scenario *ScenarioStats `json:"scenario,omitempty"`
}

// Stats returns the scenario counters, zero when none were computed.
func (t PlayoffTeam) Stats() ScenarioStats {
	if t.Scenario == nil {
		return ScenarioStats{}
	}
	return *t.Scenario
}

// PlayoffGroup is a stage-scoped group of up to four teams. Before
// overrides are applied the order is qualification order; afterwards it
// is the scenario ranking.
type PlayoffGroup struct {
	Name  string        `json:"groupName"`
	Teams []PlayoffTeam `json:"teams"`
}

// Clone returns a deep copy of the group.
func (g PlayoffGroup) Clone() PlayoffGroup {
	teams := make([]PlayoffTeam, len(g.Teams))
	for i, t := range g.Teams {
		if t.Scenario != nil {
			s := *t.Scenario
			t.Scenario = &s
		}
		teams[i] = t
	}
	return PlayoffGroup{Name: g.Name, Teams: teams}
}

// FindGroup returns the group with the given name.
func FindGroup(groups []PlayoffGroup, name string) (PlayoffGroup, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return PlayoffGroup{}, false
}

// MatchID identifies one playoff match. Its string form
// "{stage}-{group}-{home}-{away}" is the key callers store overrides under.
type MatchID struct {
	Stage Stage
	Group string
	Home  string
	Away  string
}

func (id MatchID) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", id.Stage, id.Group, id.Home, id.Away)
}

// MarshalText serializes the id in its override-key form.
func (id MatchID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// PlayoffMatch is one generated fixture entry.
type PlayoffMatch struct {
	ID  MatchID `json:"id"`
	Day string  `json:"date"`
}

func (m PlayoffMatch) Home() string { return m.ID.Home }
func (m PlayoffMatch) Away() string { return m.ID.Away }
