package main

import (
	"fmt"
	"io"
	"os"

	"snapdedup/config"
	"snapdedup/imageprocessor"
	"snapdedup/logging"
	"snapdedup/scanner"
	"snapdedup/signalhandler"

	"github.com/spf13/cobra"
)

// defaultScoreThreshold is the verdict cutoff for the score command
const defaultScoreThreshold = 1000

type rootFlags struct {
	configPath string
	debug      bool
	logFile    string
	dryRun     bool
	list       bool
}

func main() {
	// Set up proper signal handling
	signalhandler.SetupHandler()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.CloseLogger()
		os.Exit(1)
	}
	logging.CloseLogger()
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "snapdedup",
		Short: "Move near-duplicate camera snapshots out of a folder",
		Long: `snapdedup orders c<camera>-<timestamp>.png snapshots by camera and time,
compares every image with the one before it and moves the ones that show no
meaningful change to the destination folder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(cmd.OutOrStdout(), flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "logfile", "", "Also write logs to this file")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath, "Configuration file (.yaml or .toml)")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report near-duplicates without moving them")
	rootCmd.Flags().BoolVar(&flags.list, "list", false, "Print a table of the relocated images")

	rootCmd.AddCommand(newScoreCommand(flags))

	return rootCmd
}

func runDedup(out io.Writer, flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	logPath := flags.logFile
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if err := logging.SetupLogger(logPath, flags.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to setup logging: %v\n", err)
	}

	logging.LogInfo("Deduplicating %s into %s (threshold %g, dry run %v)",
		cfg.SourceFolder, cfg.DestinationFolder, cfg.ThresholdValue(), flags.dryRun)

	detector := imageprocessor.NewChangeDetector(cfg.Preprocess.BlurRadii, cfg.Preprocess.BlackMask)

	result, runErr := scanner.Process(scanner.Options{
		SourceFolder:      cfg.SourceFolder,
		DestinationFolder: cfg.DestinationFolder,
		Threshold:         cfg.ThresholdValue(),
		Scorer:            imageprocessor.NewPairScorer(detector),
		DryRun:            flags.dryRun,
		ShowProgress:      out == os.Stdout && scanner.ShouldShowProgress(os.Stdout),
		Output:            out,
	})
	if result == nil {
		return runErr
	}

	fmt.Fprintln(out, scanner.SummaryLine(result, flags.dryRun))
	if flags.list {
		if table := scanner.RenderRelocations(result.Relocations); table != "" {
			fmt.Fprintln(out, table)
		}
		scanner.PrintCompletionStats(out, result, flags.dryRun)
	}

	return runErr
}

func newScoreCommand(flags *rootFlags) *cobra.Command {
	var (
		threshold float64
		blurRadii []int
	)

	cmd := &cobra.Command{
		Use:   "score <image1> <image2>",
		Short: "Print the difference score between two images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetupLogger(flags.logFile, flags.debug); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to setup logging: %v\n", err)
			}

			detector := imageprocessor.NewChangeDetector(blurRadii, config.DefaultBlackMask())
			score := imageprocessor.NewPairScorer(detector).Compare(args[0], args[1])

			out := cmd.OutOrStdout()
			if score.Unreadable {
				fmt.Fprintln(out, "Score: 0 (unreadable input)")
			} else {
				fmt.Fprintf(out, "Score: %.1f (%d changed regions)\n", score.Score, len(score.Regions))
			}
			if score.Score < threshold {
				fmt.Fprintln(out, "Verdict: similar")
			} else {
				fmt.Fprintln(out, "Verdict: different")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", defaultScoreThreshold, "Scores below this are considered similar")
	cmd.Flags().IntSliceVar(&blurRadii, "blur", nil, "Gaussian blur kernel sizes applied before comparing")

	return cmd
}
