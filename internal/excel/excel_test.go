package excel

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/scenario"
	"github.com/derekprior/volleysim/internal/standings"
	"github.com/derekprior/volleysim/internal/volley"
)

func testData() ([]standings.GroupStanding, bracket.Bracket, map[bracket.Stage]map[string]string) {
	var teams []volley.Team
	for _, g := range []string{"A", "B"} {
		for i := 1; i <= 4; i++ {
			teams = append(teams, volley.Team{
				Name:    fmt.Sprintf("%s%d", g, i),
				Group:   g,
				Played:  6,
				Wins:    5 - i,
				Points:  50 - 10*i,
				SetsWon: 16 - 3*i,
			})
		}
	}
	season := standings.ComputeGroupStandings(teams)

	overrides := map[bracket.Stage]map[string]string{
		bracket.Semi: {"semi-I-A1-B2": "3-0"},
	}
	format, err := bracket.Get("1lig")
	if err != nil {
		panic(err)
	}
	b := format.Build(season, nil, overrides, scenario.Default)
	return season, b, overrides
}

func TestGenerateWorkbook(t *testing.T) {
	season, b, overrides := testData()

	f, err := Generate(season, b, overrides)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("has one sheet per section", func(t *testing.T) {
		want := []string{"Standings", "Semi", "Final", "Fixture"}
		if diff := cmp.Diff(want, f.GetSheetList()); diff != "" {
			t.Errorf("sheets (-want +got):\n%s", diff)
		}
	})

	t.Run("standings sheet", func(t *testing.T) {
		rows, _ := f.GetRows("Standings")
		if len(rows) != 9 {
			t.Fatalf("standings has %d rows, want 9", len(rows))
		}
		if rows[0][0] != "Group" || rows[0][9] != "Set Ratio" {
			t.Errorf("header = %v", rows[0])
		}
		if diff := cmp.Diff([]string{"A", "1", "A1"}, rows[1][:3]); diff != "" {
			t.Errorf("first row (-want +got):\n%s", diff)
		}
		if rows[5][0] != "B" {
			t.Errorf("row 6 group = %q, want B", rows[5][0])
		}
	})

	t.Run("stage sheet ranks by scenario", func(t *testing.T) {
		title, _ := f.GetCellValue("Semi", "A1")
		if title != "Group I" {
			t.Errorf("A1 = %q, want Group I", title)
		}
		leader, _ := f.GetCellValue("Semi", "B3")
		if leader != "A1" {
			t.Errorf("B3 = %q, want A1", leader)
		}
		wins, _ := f.GetCellValue("Semi", "F3")
		if wins != "1" {
			t.Errorf("F3 = %q, want 1", wins)
		}
	})

	t.Run("fixture sheet", func(t *testing.T) {
		rows, _ := f.GetRows("Fixture")
		if len(rows) != 1+12+6 {
			t.Fatalf("fixture has %d rows, want 19", len(rows))
		}
		want := []string{"semi-I-A1-B2", bracket.Day1, "A1", "B2", "3-0"}
		if diff := cmp.Diff(want, rows[1]); diff != "" {
			t.Errorf("first fixture row (-want +got):\n%s", diff)
		}
		if len(rows[2]) > 4 && rows[2][4] != "" {
			t.Errorf("unscored match has score %q", rows[2][4])
		}
	})

	t.Run("default Sheet1 removed", func(t *testing.T) {
		idx, _ := f.GetSheetIndex("Sheet1")
		if idx >= 0 {
			t.Error("Sheet1 should be removed")
		}
	})
}

func TestReadOverrides(t *testing.T) {
	season, b, overrides := testData()

	f, err := Generate(season, b, overrides)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bracket.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}

	// Type a score into the second row the way a user would
	f2, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	f2.SetCellValue("Fixture", "E3", "1-3")
	f2.SetCellValue("Fixture", "E16", "3-2")
	if err := f2.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	f2.Close()

	got, err := ReadOverrides(path)
	if err != nil {
		t.Fatalf("ReadOverrides() error: %v", err)
	}

	final, _ := b.Stage(bracket.Final)
	want := map[bracket.Stage]map[string]string{
		bracket.Semi:  {"semi-I-A1-B2": "3-0", "semi-I-B4-A3": "1-3"},
		bracket.Final: {final.Fixture[2].ID.String(): "3-2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overrides (-want +got):\n%s", diff)
	}
}

func TestReadOverridesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadOverrides(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("no fixture sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blank.xlsx")
		f := excelize.NewFile()
		if err := f.SaveAs(path); err != nil {
			t.Fatalf("SaveAs error: %v", err)
		}
		if _, err := ReadOverrides(path); err == nil {
			t.Error("expected error for workbook without a fixture sheet")
		}
	})

	t.Run("skips rows without a stage", func(t *testing.T) {
		f := excelize.NewFile()
		f.NewSheet("Fixture")
		f.SetSheetRow("Fixture", "A1", &[]any{"ID", "Day", "Home", "Away", "Score"})
		f.SetSheetRow("Fixture", "A2", &[]any{"playin-X-a-b", "Day 1", "a", "b", "3-0"})
		f.SetSheetRow("Fixture", "A3", &[]any{"final-1-a-b", "Day 1", "a", "b", " 3-1 "})
		got, err := readOverrides(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[bracket.Stage]map[string]string{bracket.Final: {"final-1-a-b": "3-1"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("overrides (-want +got):\n%s", diff)
		}
	})
}

func TestSheetName(t *testing.T) {
	tests := map[bracket.Stage]string{
		bracket.Quarter: "Quarter",
		bracket.Semi:    "Semi",
		bracket.Final:   "Final",
	}
	for stage, want := range tests {
		if got := SheetName(stage); got != want {
			t.Errorf("SheetName(%q) = %q, want %q", stage, got, want)
		}
	}
}

func TestRatioText(t *testing.T) {
	tests := []struct {
		won, lost int
		want      string
	}{
		{0, 0, "0.000"},
		{9, 0, "MAX"},
		{9, 3, "3.000"},
		{2, 3, "0.667"},
	}
	for _, tt := range tests {
		if got := ratioText(tt.won, tt.lost); got != tt.want {
			t.Errorf("ratioText(%d, %d) = %q, want %q", tt.won, tt.lost, got, tt.want)
		}
	}
}
