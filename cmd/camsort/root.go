package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"camsort/internal/classify"
	"camsort/internal/config"
	"camsort/internal/logging"
	"camsort/internal/separate"
)

func newRootCommand() *cobra.Command {
	var (
		configPath       string
		defaultThreshold float64
		animalThreshold  float64
		humanThreshold   float64
		vehicleThreshold float64
		nthreads         int
		allowExisting    bool
		logLevel         string
		logFormat        string
	)

	rootCmd := &cobra.Command{
		Use:   "camsort <results_file> <base_input_folder> <base_output_folder>",
		Short: "Separate detection results into category folders",
		Long: `camsort reads an object-detection batch results file and copies every
image into a category folder (animals, people, vehicles, empty, multiple)
under the output base, preserving each image's relative path.

Images are copied, never moved. Results files with absolute image paths are
rejected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.RangeArgs(0, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) != 3 {
				return fmt.Errorf("expected results_file, base_input_folder, and base_output_folder, got %d arguments", len(args))
			}

			cfg, _, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("default_threshold") {
				cfg.Separation.DefaultThreshold = defaultThreshold
			}
			if cmd.Flags().Changed("nthreads") {
				cfg.Separation.Workers = nthreads
			}
			if cmd.Flags().Changed("allow_existing_directory") {
				cfg.Separation.AllowExistingDirectory = allowExisting
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			overrides := map[string]float64{}
			if cmd.Flags().Changed("animal_threshold") {
				overrides["animal"] = animalThreshold
			}
			if cmd.Flags().Changed("human_threshold") {
				overrides["person"] = humanThreshold
			}
			if cmd.Flags().Changed("vehicle_threshold") {
				overrides["vehicle"] = vehicleThreshold
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			opts := separate.Options{
				ResultsFile: args[0],
				InputDir:    args[1],
				OutputDir:   args[2],
				Classify: classify.Options{
					DefaultThreshold:   cfg.Separation.DefaultThreshold,
					CategoryThresholds: overrides,
				},
				Workers:                cfg.Separation.Workers,
				AllowExistingDirectory: cfg.Separation.AllowExistingDirectory,
			}

			separator := separate.New(opts, logger)
			reporter := newProgressReporter(logger, os.Stderr)
			separator.SetProgress(reporter.update)

			summary, err := separator.Run(cmd.Context())
			reporter.finish()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummaryTable(summary))
			fmt.Fprintf(out, "Separated %d images in %s (run %s)\n",
				summary.Images, summary.Duration.Round(time.Millisecond), summary.RunID)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().Float64Var(&defaultThreshold, "default_threshold", config.DefaultThreshold, "Confidence threshold for categories without an override")
	rootCmd.Flags().Float64Var(&animalThreshold, "animal_threshold", config.DefaultThreshold, "Confidence threshold for the animal category")
	rootCmd.Flags().Float64Var(&humanThreshold, "human_threshold", config.DefaultThreshold, "Confidence threshold for the person category")
	rootCmd.Flags().Float64Var(&vehicleThreshold, "vehicle_threshold", config.DefaultThreshold, "Confidence threshold for the vehicle category")
	rootCmd.Flags().IntVar(&nthreads, "nthreads", 1, "Number of concurrent file-copy workers")
	rootCmd.Flags().BoolVar(&allowExisting, "allow_existing_directory", false, "Proceed even if the output directory exists and is not empty")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log verbosity (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log output format (console or json)")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
