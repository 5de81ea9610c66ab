package bracket

import (
	"fmt"

	"github.com/derekprior/volleysim/internal/standings"
	"github.com/derekprior/volleysim/internal/volley"
)

// Applier re-ranks playoff groups from hypothetical scores for one stage.
type Applier interface {
	ApplyToGroups(groups []PlayoffGroup, overrides map[string]string, stage Stage) []PlayoffGroup
}

// StageResult is one playoff round after its overrides were applied.
type StageResult struct {
	Stage   Stage          `json:"stage"`
	Groups  []PlayoffGroup `json:"groups"`
	Fixture []PlayoffMatch `json:"fixture"`
}

// Bracket is every round of a format, in play order.
type Bracket struct {
	Format string        `json:"format"`
	Stages []StageResult `json:"stages"`
}

// Stage returns the round with the given stage name.
func (b Bracket) Stage(s Stage) (StageResult, bool) {
	for _, r := range b.Stages {
		if r.Stage == s {
			return r, true
		}
	}
	return StageResult{}, false
}

// Format builds a league's playoff rounds from its regular season.
type Format interface {
	Name() string
	Stages() []Stage
	// Build seeds each round from the previous one, ranking every round
	// with its overrides before the next is seeded.
	Build(season []standings.GroupStanding, matches []volley.Match, overrides map[Stage]map[string]string, apply Applier) Bracket
}

// Get returns a Format by name.
func Get(name string) (Format, error) {
	switch name {
	case "2lig":
		return &TwoLig{}, nil
	case "1lig":
		return &OneLig{}, nil
	default:
		return nil, fmt.Errorf("unknown league format: %q", name)
	}
}

// Names lists the registered formats.
func Names() []string { return []string{"2lig", "1lig"} }

// TwoLig is the 16-group format: quarterfinal groups A-H, semifinal
// groups A-D, final groups 1 and 2.
type TwoLig struct{}

func (f *TwoLig) Name() string    { return "2lig" }
func (f *TwoLig) Stages() []Stage { return []Stage{Quarter, Semi, Final} }

func (f *TwoLig) Build(season []standings.GroupStanding, matches []volley.Match, overrides map[Stage]map[string]string, apply Applier) Bracket {
	b := Bracket{Format: f.Name()}

	quarter := apply.ApplyToGroups(GenerateQuarterGroups(season, matches), overrides[Quarter], Quarter)
	b.Stages = append(b.Stages, result(Quarter, quarter))

	semi := apply.ApplyToGroups(GenerateSemiGroups(quarter), overrides[Semi], Semi)
	b.Stages = append(b.Stages, result(Semi, semi))

	final := apply.ApplyToGroups(GenerateFinalGroups(semi), overrides[Final], Final)
	b.Stages = append(b.Stages, result(Final, final))

	return b
}

// OneLig is the two-group format: semifinal groups I and II, then one
// final group.
type OneLig struct{}

func (f *OneLig) Name() string    { return "1lig" }
func (f *OneLig) Stages() []Stage { return []Stage{Semi, Final} }

func (f *OneLig) Build(season []standings.GroupStanding, _ []volley.Match, overrides map[Stage]map[string]string, apply Applier) Bracket {
	b := Bracket{Format: f.Name()}

	semi := apply.ApplyToGroups(Generate1LigSemiGroups(season), overrides[Semi], Semi)
	b.Stages = append(b.Stages, result(Semi, semi))

	final := apply.ApplyToGroups(Generate1LigFinalGroups(semi), overrides[Final], Final)
	b.Stages = append(b.Stages, result(Final, final))

	return b
}

func result(stage Stage, groups []PlayoffGroup) StageResult {
	return StageResult{Stage: stage, Groups: groups, Fixture: GenerateGroupFixture(groups, stage)}
}
