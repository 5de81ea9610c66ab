package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/excel"
	"github.com/derekprior/volleysim/internal/scenario"
	"github.com/derekprior/volleysim/internal/volley"
)

func newScenarioCmd() *cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Edit, share and import scenario files",
	}

	var league string
	setCmd := &cobra.Command{
		Use:          "set <file> <key> <score>",
		Short:        "Record a hypothetical result (key is \"Home|||Away\" or a playoff match id)",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioSet(args[0], args[1], args[2], league)
		},
	}
	setCmd.Flags().StringVar(&league, "league", "", "League format recorded in a new file")

	showCmd := &cobra.Command{
		Use:          "show <file>",
		Short:        "List the overrides in a scenario file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioShow(args[0])
		},
	}

	shareCmd := &cobra.Command{
		Use:          "share <file>",
		Short:        "Print a share code for a scenario file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioShare(args[0])
		},
	}

	var loadOutput string
	loadCmd := &cobra.Command{
		Use:          "load <code>",
		Short:        "Write a scenario file from a share code",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioLoad(args[0], loadOutput)
		},
	}
	loadCmd.Flags().StringVarP(&loadOutput, "output", "o", "scenario.yaml", "Output path for the scenario file")

	importCmd := &cobra.Command{
		Use:          "import <workbook.xlsx> <file>",
		Short:        "Merge scores typed into an exported workbook into a scenario file",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioImport(args[0], args[1])
		},
	}

	scenarioCmd.AddCommand(setCmd, showCmd, shareCmd, loadCmd, importCmd)
	return scenarioCmd
}

// openScenario loads a scenario file, or returns an empty one if it does
// not exist yet.
func openScenario(path string) (*scenario.File, error) {
	f, err := scenario.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &scenario.File{Version: scenario.FileVersion}, nil
	}
	return f, err
}

func runScenarioSet(path, key, score, league string) error {
	if _, ok := volley.ParseScore(score); !ok {
		return fmt.Errorf("invalid score %q (want one of %s)", score, strings.Join(volley.Scores, ", "))
	}

	f, err := openScenario(path)
	if err != nil {
		return err
	}
	if league != "" {
		f.League = league
	}
	if err := f.Set(key, score); err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return err
	}

	fmt.Printf("✓ %s = %s (%d overrides in %s)\n", key, score, f.Count(), path)
	return nil
}

func runScenarioShow(path string) error {
	f, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("Scenario %s (version %s, league %s)\n", path, f.Version, f.League)
	if f.Group != "" {
		fmt.Printf("Group: %s\n", f.Group)
	}

	if len(f.Season) > 0 {
		fmt.Printf("\nSeason (%d):\n", len(f.Season))
		for _, o := range scenario.ParseFlatOverrides(f.Season) {
			fmt.Printf("  %-28s %-28s %s\n", o.Home, o.Away, o.Score)
		}
	}

	for _, stage := range []bracket.Stage{bracket.Quarter, bracket.Semi, bracket.Final} {
		overrides := f.Stages[stage]
		if len(overrides) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d):\n", excel.SheetName(stage), len(overrides))
		keys := make([]string, 0, len(overrides))
		for k := range overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-60s %s\n", k, overrides[k])
		}
	}

	if f.Count() == 0 {
		fmt.Println("\nNo overrides")
	}
	return nil
}

func runScenarioShare(path string) error {
	f, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	code, err := scenario.Encode(f)
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func runScenarioLoad(code, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	f, dropped, err := scenario.Decode(code)
	if err != nil {
		return err
	}
	for _, k := range dropped {
		fmt.Printf("  ⚠ %s: not a season key or match id, skipped\n", k)
	}
	if err := f.Save(outputPath); err != nil {
		return err
	}

	fmt.Printf("✓ Loaded %d overrides into %s\n", f.Count(), outputPath)
	return nil
}

func runScenarioImport(workbookPath, path string) error {
	imported, err := excel.ReadOverrides(workbookPath)
	if err != nil {
		return fmt.Errorf("reading workbook: %w", err)
	}

	f, err := openScenario(path)
	if err != nil {
		return err
	}

	added := 0
	for _, stage := range []bracket.Stage{bracket.Quarter, bracket.Semi, bracket.Final} {
		keys := make([]string, 0, len(imported[stage]))
		for k := range imported[stage] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, id := range keys {
			score := imported[stage][id]
			if _, ok := volley.ParseScore(score); !ok {
				fmt.Printf("  ⚠ %s: invalid score %q, skipped\n", id, score)
				continue
			}
			if err := f.Set(id, score); err != nil {
				return err
			}
			added++
		}
	}

	if err := f.Save(path); err != nil {
		return err
	}
	fmt.Printf("✓ Imported %d scores into %s\n", added, path)
	return nil
}
