package excel

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/standings"
	"github.com/derekprior/volleysim/internal/volley"
)

const (
	standingsSheet = "Standings"
	fixtureSheet   = "Fixture"
)

// Generate creates a workbook with the regular-season standings, one sheet
// per bracket stage and an editable fixture sheet. Scores already in
// overrides are pre-filled in the fixture.
func Generate(season []standings.GroupStanding, b bracket.Bracket, overrides map[bracket.Stage]map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	s := newStyles(f)

	if err := writeStandingsSheet(f, s, season); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}

	for _, stage := range b.Stages {
		if err := writeStageSheet(f, s, stage); err != nil {
			return nil, fmt.Errorf("writing %s sheet: %w", stage.Stage, err)
		}
	}

	if err := writeFixtureSheet(f, s, b, overrides); err != nil {
		return nil, fmt.Errorf("writing fixture sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// SheetName is the worksheet title for a bracket stage.
func SheetName(stage bracket.Stage) string {
	return cases.Title(language.English).String(string(stage))
}

type styles struct {
	header, title, cell, center, score int
}

func newStyles(f *excelize.File) styles {
	var s styles
	s.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.title, _ = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: "Arial"},
	})
	s.cell, _ = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 12, Family: "Arial"},
	})
	s.center, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	// Text format keeps Excel from reading "3-1" as a date.
	s.score, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		NumFmt:    49,
	})
	return s
}

func writeHeaders(f *excelize.File, sheet string, row int, headers []string, style int) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, row), h)
	}
	if style != 0 {
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), style)
	}
}

func writeStandingsSheet(f *excelize.File, s styles, season []standings.GroupStanding) error {
	sheet := standingsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Group", "Rank", "Team", "Played", "Wins", "Losses", "Points", "Sets Won", "Sets Lost", "Set Ratio"}
	writeHeaders(f, sheet, 1, headers, s.header)

	row := 2
	for _, g := range season {
		for i, t := range g.Teams {
			values := []any{g.GroupName, i + 1, t.Name, t.Played, t.Wins, t.Losses(), t.Points, t.SetsWon, t.SetsLost, ratioText(t.SetsWon, t.SetsLost)}
			for col, v := range values {
				f.SetCellValue(sheet, cellRef(col+1, row), v)
			}
			if s.center != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), s.center)
				f.SetCellStyle(sheet, cellRef(3, row), cellRef(3, row), s.cell)
			}
			row++
		}
	}

	f.SetColWidth(sheet, "A", "B", 10)
	f.SetColWidth(sheet, "C", "C", 32)
	f.SetColWidth(sheet, "D", "J", 11)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

func writeStageSheet(f *excelize.File, s styles, stage bracket.StageResult) error {
	sheet := SheetName(stage.Stage)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Rank", "Team", "From", "Seed", "Rating", "Wins", "Losses", "Points", "Sets Won", "Sets Lost"}

	row := 1
	for _, g := range stage.Groups {
		f.SetCellValue(sheet, cellRef(1, row), "Group "+g.Name)
		if s.title != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), s.title)
		}
		row++
		writeHeaders(f, sheet, row, headers, s.header)
		row++

		for i, t := range g.Teams {
			stats := t.Stats()
			values := []any{i + 1, t.Name, t.SourceGroup + " " + t.Position, t.InitialSeed + 1, math.Round(t.Rating), stats.Wins, stats.Losses, stats.Points, stats.SetsWon, stats.SetsLost}
			for col, v := range values {
				f.SetCellValue(sheet, cellRef(col+1, row), v)
			}
			if s.center != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), s.center)
				f.SetCellStyle(sheet, cellRef(2, row), cellRef(2, row), s.cell)
			}
			row++
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 32)
	f.SetColWidth(sheet, "C", "C", 14)
	f.SetColWidth(sheet, "D", "J", 11)
	return nil
}

func writeFixtureSheet(f *excelize.File, s styles, b bracket.Bracket, overrides map[bracket.Stage]map[string]string) error {
	sheet := fixtureSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Day", "Home", "Away", "Score"}
	writeHeaders(f, sheet, 1, headers, s.header)

	row := 2
	for _, stage := range b.Stages {
		for _, m := range stage.Fixture {
			id := m.ID.String()
			f.SetCellValue(sheet, cellRef(1, row), id)
			f.SetCellValue(sheet, cellRef(2, row), m.Day)
			f.SetCellValue(sheet, cellRef(3, row), m.Home())
			f.SetCellValue(sheet, cellRef(4, row), m.Away())
			if score, ok := overrides[stage.Stage][id]; ok {
				f.SetCellValue(sheet, cellRef(5, row), score)
			}
			if s.cell != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(4, row), s.cell)
			}
			if s.score != 0 {
				f.SetCellStyle(sheet, cellRef(5, row), cellRef(5, row), s.score)
			}
			row++
		}
	}
	lastRow := max(row-1, 2)

	scoreRange := fmt.Sprintf("E2:E%d", lastRow)
	dv := excelize.NewDataValidation(true)
	dv.Sqref = scoreRange
	if err := dv.SetDropList(volley.Scores); err != nil {
		return fmt.Errorf("score list: %w", err)
	}
	if err := f.AddDataValidation(sheet, dv); err != nil {
		return fmt.Errorf("score validation: %w", err)
	}

	// Conditional formatting: anything that is not a volleyball score gets light red
	var valid []string
	for _, sc := range volley.Scores {
		valid = append(valid, fmt.Sprintf(`E2="%s"`, sc))
	}
	redFill, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
		Font: &excelize.Font{Size: 12, Family: "Arial"},
	})
	f.SetConditionalFormat(sheet, scoreRange, []excelize.ConditionalFormatOptions{
		{
			Type:     "formula",
			Criteria: fmt.Sprintf(`AND(E2<>"",NOT(OR(%s)))`, strings.Join(valid, ",")),
			Format:   &redFill,
		},
	})

	f.SetColWidth(sheet, "A", "A", 48)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "D", 32)
	f.SetColWidth(sheet, "E", "E", 10)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

// ReadOverrides opens a workbook written by Generate and returns the scores
// typed into its fixture sheet, grouped by stage. Rows without a score or
// with an id that names no stage are skipped.
func ReadOverrides(path string) (map[bracket.Stage]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return readOverrides(f)
}

func readOverrides(f *excelize.File) (map[bracket.Stage]map[string]string, error) {
	rows, err := f.GetRows(fixtureSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fixtureSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", fixtureSheet)
	}

	overrides := make(map[bracket.Stage]map[string]string)
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue
		}
		id, score := strings.TrimSpace(row[0]), strings.TrimSpace(row[4])
		if id == "" || score == "" {
			continue
		}
		prefix, _, _ := strings.Cut(id, "-")
		stage, err := bracket.ParseStage(prefix)
		if err != nil {
			continue
		}
		if overrides[stage] == nil {
			overrides[stage] = make(map[string]string)
		}
		overrides[stage][id] = score
	}
	return overrides, nil
}

func ratioText(won, lost int) string {
	r := volley.SetRatio(won, lost)
	if math.IsInf(r, 1) {
		return "MAX"
	}
	return fmt.Sprintf("%.3f", r)
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
