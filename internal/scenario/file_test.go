package scenario

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/derekprior/volleysim/internal/bracket"
)

const testScenarioYAML = `
version: "1.0"
league: 2lig
stages:
  quarter:
    "quarter-A-Ankara SK-İzmir SK": "3-0"
  semi:
    "semi-B-X-Y": "2-3"
season:
  "Ankara SK|||Bursa VK": "3-1"
`

func TestLoadBytes(t *testing.T) {
	f, err := LoadBytes([]byte(testScenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.League != "2lig" {
		t.Errorf("league = %q, want 2lig", f.League)
	}
	if got := f.Stages[bracket.Quarter]["quarter-A-Ankara SK-İzmir SK"]; got != "3-0" {
		t.Errorf("quarter override = %q, want 3-0", got)
	}
	if got := f.Season["Ankara SK|||Bursa VK"]; got != "3-1" {
		t.Errorf("season override = %q, want 3-1", got)
	}
	if f.Count() != 3 {
		t.Errorf("Count() = %d, want 3", f.Count())
	}

	t.Run("unknown stage", func(t *testing.T) {
		_, err := LoadBytes([]byte("league: 2lig\nstages:\n  playin:\n    a: 3-0\n"))
		if err == nil {
			t.Error("expected error for unknown stage")
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	f := &File{League: "1lig"}
	if err := f.Set("semi-I-A-B", "3-2"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := f.Set("A|||B", "0-3"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("round trip (-saved +loaded):\n%s", diff)
	}
	if got.Version != FileVersion {
		t.Errorf("version = %q, want %q", got.Version, FileVersion)
	}
}

func TestSetRejectsUnknownKeys(t *testing.T) {
	f := &File{}
	for _, key := range []string{"nonsense", "playin-A-X-Y"} {
		if err := f.Set(key, "3-0"); err == nil {
			t.Errorf("Set(%q) should fail", key)
		}
	}
	if f.Count() != 0 {
		t.Errorf("Count() = %d, want 0", f.Count())
	}
}

func TestShareCode(t *testing.T) {
	f, err := LoadBytes([]byte(testScenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if strings.ContainsAny(code, "+/=") {
		t.Errorf("code %q is not URL safe", code)
	}

	again, _ := Encode(f)
	if code != again {
		t.Error("equal scenarios produced different codes")
	}

	got, dropped, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if len(dropped) != 0 {
		t.Errorf("dropped = %v, want none", dropped)
	}

	t.Run("invalid code", func(t *testing.T) {
		if _, _, err := Decode("!!not base64!!"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown keys are reported", func(t *testing.T) {
		data := `{"v":"1.0","l":"2lig","o":{"A|||B":"3-0","bogus":"3-1","playoff-A-X-Y":"3-2"}}`
		got, dropped, err := Decode(base64.RawURLEncoding.EncodeToString([]byte(data)))
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if diff := cmp.Diff([]string{"bogus", "playoff-A-X-Y"}, dropped); diff != "" {
			t.Errorf("dropped (-want +got):\n%s", diff)
		}
		if got.Count() != 1 || got.Season["A|||B"] != "3-0" {
			t.Errorf("decoded = %+v, want only A|||B", got)
		}
	})
}
