package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oukeidos/kvlate/internal/batch"
	"github.com/oukeidos/kvlate/internal/cleanup"
	"github.com/oukeidos/kvlate/internal/files"
	"github.com/oukeidos/kvlate/internal/logger"
	"github.com/oukeidos/kvlate/internal/pipeline"
	"github.com/oukeidos/kvlate/internal/prompt"
	"github.com/spf13/cobra"
)

type translateOptions struct {
	sourceLang  string
	targetLang  string
	concurrency int
	timeout     time.Duration
	insecure    bool
	strict      bool
	yes         bool
	outputPath  string
	logFilePath string
	configPath  string
	debug       bool
}

func newTranslateCmd() *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate <input-file>",
		Short: "Translate a key,value file row by row",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return fmt.Errorf("input file is required")
			}
			return runTranslate(cmd, args, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addTranslateFlags(cmd, &opts)
	return cmd
}

func addTranslateFlags(cmd *cobra.Command, opts *translateOptions) {
	cmd.Flags().StringVarP(&opts.sourceLang, "source", "s", "English", "Source language name (e.g. English)")
	cmd.Flags().StringVarP(&opts.targetLang, "target", "t", "", "Target language name (e.g. French)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", pipeline.DefaultConcurrency, fmt.Sprintf("Number of concurrent requests (%d-%d)", pipeline.MinConcurrency, pipeline.MaxConcurrency))
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (default 30s)")
	cmd.Flags().BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate verification for the translation endpoint")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Abort on unknown language names instead of degrading")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite output file without asking")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default <input>-<code>.<ext>)")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file with defaults")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
}

func runTranslate(cmd *cobra.Command, args []string, opts *translateOptions) error {
	if len(args) < 1 {
		return fmt.Errorf("input file is required")
	}
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Warning: expected 1 argument but got %d. Did you forget quotes around the file path?\n", len(args))
		fmt.Fprintf(os.Stderr, "  Using input: %s\n", args[0])
	}

	defaults, err := loadDefaults(opts.configPath)
	if err != nil {
		return err
	}
	applyDefaults(cmd, opts, defaults)

	if opts.targetLang == "" {
		_ = cmd.Usage()
		return fmt.Errorf("target language is required (use --target or KVLATE_TARGET)")
	}

	logLevel := logger.LevelInfo
	if opts.debug {
		logLevel = logger.LevelDebug
	}
	var logFileW io.Writer
	if opts.logFilePath != "" {
		if err := files.RejectSymlinkPath(opts.logFilePath); err != nil {
			return err
		}
		f, err := os.OpenFile(opts.logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(logLevel, logFileW)

	if opts.insecure {
		logger.Warn("TLS certificate verification disabled for the translation endpoint")
	}

	cfg := pipeline.Config{
		InputPath:   args[0],
		OutputPath:  opts.outputPath,
		SourceLang:  opts.sourceLang,
		TargetLang:  opts.targetLang,
		Concurrency: opts.concurrency,
		Timeout:     opts.timeout,
		Insecure:    opts.insecure,
		Strict:      opts.strict,
		Overwrite:   opts.yes,
		OnProgress: func(p batch.Progress) {
			switch p.State {
			case batch.StateCompleted:
				logger.Info("Row completed", "key", p.Key, "done", p.Completed, "total", p.Reserved)
			case batch.StateFailed:
				logger.Warn("Row failed", "key", p.Key, "done", p.Completed, "total", p.Reserved, "error", p.Err)
			case batch.StateCanceled:
				logger.Warn("Run canceled", "done", p.Completed, "total", p.Reserved)
			}
		},
		OnConfirmOverwrite: func(path string) bool {
			confirmed, err := prompt.DefaultConfirmer().ConfirmOverwrite(path, opts.yes)
			if err != nil {
				logger.Error("Overwrite confirmation failed", "error", err)
				return false
			}
			return confirmed
		},
	}

	ctx, stop := signalContext()
	defer stop()
	result, err := pipeline.RunTranslation(ctx, cfg)

	printRunStats(cmd.OutOrStdout(), result)

	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Translation canceled", "error", err)
			return nil
		}
		return err
	}

	return translationStatusError(result)
}

func printRunStats(out io.Writer, result pipeline.TranslationResult) {
	fmt.Fprintln(out, "\n--- Run Stats ---")
	fmt.Fprintf(out, "Status: %s\n", result.Status)
	fmt.Fprintf(out, "Time: %s\n", result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Lines: %d (skipped %d, failed %d)\n", result.TotalLines, result.SkippedLines, result.FailedRows)
	if result.OutputPath != "" {
		fmt.Fprintf(out, "Output: %s\n", result.OutputPath)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning [%s]: %s\n", w.Kind, w.Message)
	}
}

func translationStatusError(result pipeline.TranslationResult) error {
	switch result.Status {
	case pipeline.TranslationStatusSuccess:
		return nil
	case pipeline.TranslationStatusSkipped:
		return nil
	case pipeline.TranslationStatusPartialSuccess, pipeline.TranslationStatusFailure:
		return fmt.Errorf("translation finished with status: %s (%d rows failed)", result.Status, result.FailedRows)
	default:
		return fmt.Errorf("translation finished with unknown status: %q", result.Status)
	}
}
