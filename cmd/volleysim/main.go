package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/derekprior/volleysim/internal/simulate"
)

const defaultConfigFile = "season.yaml"

var logger = logrus.New()

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	var configFile, scenarioFile string
	var verbose, strict bool

	rootCmd := &cobra.Command{
		Use:   "volleysim",
		Short: "Volleyball league standings, playoff brackets and what-if scenarios",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to season file (default: season.yaml in current directory)")
	rootCmd.PersistentFlags().StringVarP(&scenarioFile, "scenario", "s", "", "Scenario file with hypothetical results")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail when an override has a malformed score")

	// withSeason resolves and loads the season and scenario before running fn.
	withSeason := func(fn func(*season) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			s, err := loadSeason(configPath, scenarioFile)
			if err != nil {
				return err
			}
			s.strict = strict
			return fn(s)
		}
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter season.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the season file")

	var standingsGroup string
	var live bool
	standingsCmd := &cobra.Command{
		Use:          "standings",
		Short:        "Show regular-season group standings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	standingsCmd.RunE = withSeason(func(s *season) error {
		return runStandings(s, standingsGroup, live)
	})
	standingsCmd.Flags().StringVarP(&standingsGroup, "group", "g", "", "Only show this group")
	standingsCmd.Flags().BoolVar(&live, "live", false, "Apply season overrides to unplayed matches and show movement")

	ratingsCmd := &cobra.Command{
		Use:          "ratings",
		Short:        "Show team ratings from completed matches",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         withSeason(runRatings),
	}

	var predictStage string
	var predictSave bool
	predictCmd := &cobra.Command{
		Use:          "predict",
		Short:        "Predict unplayed season matches, or a playoff stage with --stage",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	predictCmd.RunE = withSeason(func(s *season) error {
		return runPredict(s, predictStage, predictSave)
	})
	predictCmd.Flags().StringVar(&predictStage, "stage", "", "Playoff stage to fill (quarter, semi or final)")
	predictCmd.Flags().BoolVar(&predictSave, "save", false, "Write predictions into the scenario file")

	var bracketStage string
	bracketCmd := &cobra.Command{
		Use:          "bracket",
		Short:        "Seed the playoff stages and show groups and fixtures",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	bracketCmd.RunE = withSeason(func(s *season) error {
		return runBracket(s, bracketStage)
	})
	bracketCmd.Flags().StringVar(&bracketStage, "stage", "", "Only show this stage")

	var iterations, workers int
	var seed int64
	var simulateGroup string
	simulateCmd := &cobra.Command{
		Use:          "simulate [team]",
		Short:        "Project final group ranks by playing out unplayed matches",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			return withSeason(func(s *season) error {
				return runSimulate(s, target, simulateGroup, simulate.Options{
					Iterations: iterations,
					Seed:       seed,
					Workers:    workers,
				})
			})(cmd, args)
		},
	}
	simulateCmd.Flags().IntVarP(&iterations, "iterations", "n", simulate.DefaultIterations, "Number of simulated seasons")
	simulateCmd.Flags().IntVarP(&workers, "workers", "k", runtime.NumCPU(), "Number of concurrent batches")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: time based)")
	simulateCmd.Flags().StringVarP(&simulateGroup, "group", "g", "", "Group to simulate when no team is given")

	var exportOutput string
	exportCmd := &cobra.Command{
		Use:          "export",
		Short:        "Write standings, bracket and fixture to an Excel workbook",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	exportCmd.RunE = withSeason(func(s *season) error {
		return runExport(s, exportOutput)
	})
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "bracket.xlsx", "Output Excel file path")

	rootCmd.AddCommand(initCmd, standingsCmd, ratingsCmd, predictCmd, bracketCmd, newScenarioCmd(), simulateCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}
