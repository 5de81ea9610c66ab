package scenario

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
)

type shareCode struct {
	Version   string            `json:"v"`
	League    string            `json:"l"`
	Group     string            `json:"g,omitempty"`
	Overrides map[string]string `json:"o"`
}

// Encode packs the scenario into a URL-safe share code.
func Encode(f *File) (string, error) {
	all := make(map[string]string, f.Count())
	for k, v := range f.Season {
		all[k] = v
	}
	for _, o := range f.Stages {
		for k, v := range o {
			all[k] = v
		}
	}
	version := f.Version
	if version == "" {
		version = FileVersion
	}

	// encoding/json writes map keys sorted, so equal scenarios share a code.
	data, err := json.Marshal(shareCode{Version: version, League: f.League, Group: f.Group, Overrides: all})
	if err != nil {
		return "", fmt.Errorf("encoding share code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode unpacks a share code. Overrides whose key is neither a season key
// nor a match id are left out and their keys returned, sorted.
func Decode(code string) (*File, []string, error) {
	data, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding share code: %w", err)
	}
	var sc shareCode
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, nil, fmt.Errorf("decoding share code: %w", err)
	}

	f := &File{Version: sc.Version, League: sc.League, Group: sc.Group}
	if f.Version == "" {
		f.Version = FileVersion
	}
	keys := make([]string, 0, len(sc.Overrides))
	for k := range sc.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var dropped []string
	for _, k := range keys {
		if err := f.Set(k, sc.Overrides[k]); err != nil {
			dropped = append(dropped, k)
		}
	}
	return f, dropped, nil
}
