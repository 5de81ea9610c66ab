package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/volleysim/internal/bracket"
)

// FileVersion is written into every saved scenario.
const FileVersion = "1.0"

// File is a saved scenario: regular-season overrides keyed "Home|||Away"
// and playoff overrides keyed by match id, per stage.
type File struct {
	Version string                              `yaml:"version"`
	League  string                              `yaml:"league"`
	Group   string                              `yaml:"group,omitempty"`
	Season  map[string]string                   `yaml:"season,omitempty"`
	Stages  map[bracket.Stage]map[string]string `yaml:"stages,omitempty"`
}

// Set records an override, routing it to the season or to the stage named
// by the id's prefix. Keys that fit neither are rejected.
func (f *File) Set(key, score string) error {
	if strings.Contains(key, "|||") {
		if f.Season == nil {
			f.Season = make(map[string]string)
		}
		f.Season[key] = score
		return nil
	}
	prefix, _, ok := strings.Cut(key, "-")
	if !ok {
		return fmt.Errorf("override key %q is neither \"Home|||Away\" nor a match id", key)
	}
	stage, err := bracket.ParseStage(prefix)
	if err != nil {
		return fmt.Errorf("override key %q: %w", key, err)
	}
	if f.Stages == nil {
		f.Stages = make(map[bracket.Stage]map[string]string)
	}
	if f.Stages[stage] == nil {
		f.Stages[stage] = make(map[string]string)
	}
	f.Stages[stage][key] = score
	return nil
}

// Count is the number of overrides held.
func (f *File) Count() int {
	n := len(f.Season)
	for _, o := range f.Stages {
		n += len(o)
	}
	return n
}

// LoadBytes parses a YAML scenario.
func LoadBytes(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	for stage := range f.Stages {
		if _, err := bracket.ParseStage(string(stage)); err != nil {
			return nil, fmt.Errorf("parsing scenario: %w", err)
		}
	}
	return &f, nil
}

// LoadFile reads a YAML scenario file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return LoadBytes(data)
}

// Save writes the scenario as YAML.
func (f *File) Save(path string) error {
	if f.Version == "" {
		f.Version = FileVersion
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
