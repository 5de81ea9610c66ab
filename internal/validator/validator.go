package validator

import (
	"fmt"
	"sort"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/volley"
)

// Violation is an override the engine will ignore.
type Violation struct {
	Type    string // "error" or "warning"
	Stage   string // bracket stage, or "season"
	Key     string
	Message string
}

const season = "season"

// Check reports overrides for one bracket stage whose id is not in the
// groups' canonical fixture or whose score is malformed.
func Check(groups []bracket.PlayoffGroup, overrides map[string]string, stage bracket.Stage) []Violation {
	ids := make(map[string]bool)
	for _, m := range bracket.GenerateGroupFixture(groups, stage) {
		ids[m.ID.String()] = true
	}

	var violations []Violation
	for _, key := range sortedKeys(overrides) {
		score := overrides[key]
		if _, ok := volley.ParseScore(score); !ok {
			violations = append(violations, Violation{
				Type:    "error",
				Stage:   string(stage),
				Key:     key,
				Message: fmt.Sprintf("%s: invalid score %q", key, score),
			})
			continue
		}
		if !ids[key] {
			violations = append(violations, Violation{
				Type:    "warning",
				Stage:   string(stage),
				Key:     key,
				Message: fmt.Sprintf("%s: no such match in the %s fixture", key, stage),
			})
		}
	}
	return violations
}

// CheckBracket runs Check for every stage of a built bracket and flags
// overrides for stages the format does not play.
func CheckBracket(b bracket.Bracket, overrides map[bracket.Stage]map[string]string) []Violation {
	stages := make([]string, 0, len(overrides))
	for s := range overrides {
		stages = append(stages, string(s))
	}
	sort.Strings(stages)

	var violations []Violation
	for _, s := range stages {
		stage := bracket.Stage(s)
		result, ok := b.Stage(stage)
		if !ok {
			if n := len(overrides[stage]); n > 0 {
				violations = append(violations, Violation{
					Type:    "warning",
					Stage:   s,
					Message: fmt.Sprintf("%d override(s) for %s, which %s does not play", n, s, b.Format),
				})
			}
			continue
		}
		violations = append(violations, Check(result.Groups, overrides[stage], stage)...)
	}
	return violations
}

// CheckSeason reports regular-season overrides that do not name a fixture
// match, name one that is already played, or carry a malformed score.
func CheckSeason(fixture []volley.Match, overrides map[string]string) []Violation {
	byKey := make(map[string]volley.Match, len(fixture)*2)
	for _, m := range fixture {
		byKey[m.Home+"-"+m.Away] = m
	}
	// The "|||" form wins when both spellings collide.
	for _, m := range fixture {
		byKey[m.Key()] = m
	}

	var violations []Violation
	for _, key := range sortedKeys(overrides) {
		score := overrides[key]
		if _, ok := volley.ParseScore(score); !ok {
			violations = append(violations, Violation{
				Type:    "error",
				Stage:   season,
				Key:     key,
				Message: fmt.Sprintf("%s: invalid score %q", key, score),
			})
			continue
		}
		m, ok := byKey[key]
		if !ok {
			violations = append(violations, Violation{
				Type:    "warning",
				Stage:   season,
				Key:     key,
				Message: fmt.Sprintf("%s: no such match in the fixture", key),
			})
			continue
		}
		if m.Played {
			violations = append(violations, Violation{
				Type:    "warning",
				Stage:   season,
				Key:     key,
				Message: fmt.Sprintf("%s vs %s is already played (%s)", m.Home, m.Away, m.Score),
			})
		}
	}
	return violations
}

// Errors returns only the error-level violations.
func Errors(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Type == "error" {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
