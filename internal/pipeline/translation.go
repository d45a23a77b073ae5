package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/oukeidos/kvlate/internal/batch"
	"github.com/oukeidos/kvlate/internal/files"
	"github.com/oukeidos/kvlate/internal/gtx"
	"github.com/oukeidos/kvlate/internal/language"
	"github.com/oukeidos/kvlate/internal/logger"
	"github.com/oukeidos/kvlate/internal/rowfile"
)

// MaxValueGraphemes is the longest value sent without an oversize
// warning. The endpoint silently truncates very long q parameters, so
// anything past this is flagged rather than trusted.
const MaxValueGraphemes = 5000

// RunTranslation executes the full translation pipeline: load the input
// rows, fan requests out over the endpoint, and write the ordered output
// file. Failed rows keep their slot with an empty quoted value and are
// reported as warnings; only setup problems and a fully failed run
// produce a non-nil error Status.
func RunTranslation(ctx context.Context, cfg Config) (TranslationResult, error) {
	start := time.Now()

	var result TranslationResult
	var notes []string
	cfg, notes = cfg.Normalize()
	for _, note := range notes {
		logger.Warn("Config normalized", "detail", note)
		result.Warnings = append(result.Warnings, Warning{Kind: WarnConfigAdjusted, Row: -1, Message: note})
	}
	if err := cfg.Validate(); err != nil {
		return TranslationResult{}, fmt.Errorf("invalid configuration: %w", err)
	}

	// 1. Language resolution
	sourceCode := language.Resolve(cfg.SourceLang)
	targetCode := language.Resolve(cfg.TargetLang)
	for _, lang := range []struct {
		role, name, code string
	}{
		{"source", cfg.SourceLang, sourceCode},
		{"target", cfg.TargetLang, targetCode},
	} {
		if lang.code != "" {
			continue
		}
		if cfg.Strict {
			return TranslationResult{}, fmt.Errorf("unsupported %s language: %s", lang.role, lang.name)
		}
		msg := fmt.Sprintf("unknown %s language %q: sending the name as-is", lang.role, lang.name)
		logger.Warn("Unknown language", "role", lang.role, "name", lang.name)
		result.Warnings = append(result.Warnings, Warning{Kind: WarnUnknownLanguage, Row: -1, Message: msg})
	}
	if sourceCode != "" && sourceCode == targetCode {
		return TranslationResult{}, fmt.Errorf("source and target languages must be different (%s)", sourceCode)
	}

	// 2. Path validation and setup
	absIn, err := filepath.Abs(cfg.InputPath)
	if err != nil {
		return TranslationResult{}, fmt.Errorf("failed to resolve input path: %w", err)
	}
	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = rowfile.OutputPath(cfg.InputPath, outputSuffix(cfg.TargetLang, targetCode))
	}
	absOut, err := filepath.Abs(outputPath)
	if err != nil {
		return TranslationResult{}, fmt.Errorf("failed to resolve output path: %w", err)
	}
	if absIn == absOut {
		return TranslationResult{}, fmt.Errorf("input and output files are the same (%s)", absIn)
	}
	if inInfo, err := os.Stat(absIn); err == nil {
		if outInfo, err := os.Stat(absOut); err == nil {
			if os.SameFile(inInfo, outInfo) {
				return TranslationResult{}, fmt.Errorf("input and output files are the same (%s)", absIn)
			}
		} else if !os.IsNotExist(err) {
			return TranslationResult{}, fmt.Errorf("failed to stat output path: %w", err)
		}
	} else {
		return TranslationResult{}, fmt.Errorf("failed to stat input path: %w", err)
	}
	if err := files.RejectSymlinkPath(outputPath); err != nil {
		return TranslationResult{}, err
	}

	shouldOverwrite := cfg.Overwrite
	outputExists := false
	if _, err := os.Stat(outputPath); err == nil {
		outputExists = true
		if !shouldOverwrite && cfg.OnConfirmOverwrite != nil {
			shouldOverwrite = cfg.OnConfirmOverwrite(outputPath)
		}
		if !shouldOverwrite {
			logger.Info("Output file exists. Aborted by user.", "path", outputPath)
			result.Status = TranslationStatusSkipped
			result.Elapsed = time.Since(start)
			return result, nil
		}
		logger.Info("Overwriting output file", "path", outputPath)
	}

	// 3. Load rows
	rows, totalLines, err := rowfile.Load(cfg.InputPath)
	if err != nil {
		return TranslationResult{}, err
	}
	result.TotalLines = totalLines
	result.SkippedLines = totalLines - len(rows)
	logger.Info("Loaded input rows", "rows", len(rows), "lines", totalLines, "skipped", result.SkippedLines, "path", cfg.InputPath)

	for i, row := range rows {
		if n := uniseg.GraphemeClusterCount(row.Value); n > MaxValueGraphemes {
			msg := fmt.Sprintf("row %q is %d graphemes long; the endpoint may truncate it", row.Key, n)
			logger.Warn("Oversize value", "key", row.Key, "graphemes", n)
			result.Warnings = append(result.Warnings, Warning{Kind: WarnOversizeValue, Row: i, Message: msg})
		}
	}

	// 4. Initialize client and orchestrator
	client := cfg.Client
	if client == nil {
		client = gtx.NewClient(gtx.Config{
			Timeout:  cfg.Timeout,
			Insecure: cfg.Insecure,
		})
	}
	orch, err := batch.New(client, cfg.SourceLang, cfg.TargetLang, cfg.Concurrency)
	if err != nil {
		return TranslationResult{}, fmt.Errorf("failed to initialize batch orchestrator: %w", err)
	}

	// 5. Translate
	logger.Info("Starting translation", "source", cfg.SourceLang, "target", cfg.TargetLang, "concurrency", cfg.Concurrency)
	outcome := orch.Run(ctx, rows, totalLines, cfg.OnProgress)

	for _, fr := range outcome.Failed {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnRowFailed,
			Row:     fr.Index,
			Message: fmt.Sprintf("row %q failed: %v", fr.Key, fr.Err),
		})
	}
	for i, tokens := range outcome.DroppedTokens {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnDroppedTokens,
			Row:     i,
			Message: fmt.Sprintf("row %q lost placeholders in translation: %s", rows[i].Key, strings.Join(tokens, ", ")),
		})
	}

	result.FailedRows = len(outcome.Failed)
	result.Status = statusFromCounts(len(rows), len(outcome.Failed))
	result.Elapsed = time.Since(start)
	logger.Info("Translation finished", "status", result.Status, "failed", result.FailedRows, "elapsed", result.Elapsed)

	if result.Status == TranslationStatusFailure {
		if ctx.Err() != nil {
			return result, fmt.Errorf("translation canceled: %w", ctx.Err())
		}
		return result, fmt.Errorf("all %d rows failed", len(rows))
	}

	// 6. Save output
	effectiveOutputPath := outputPath
	if !(outputExists && shouldOverwrite) {
		safePath, changed, err := files.SafePath(outputPath)
		if err != nil {
			return result, fmt.Errorf("failed to resolve output path: %w", err)
		}
		if changed {
			logger.Warn("Output path adjusted to avoid overwrite", "original", outputPath, "effective", safePath)
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnOutputPathChanged,
				Row:     -1,
				Message: fmt.Sprintf("output path adjusted from %s to %s", outputPath, safePath),
			})
			effectiveOutputPath = safePath
		}
	}

	if err := rowfile.Write(effectiveOutputPath, outcome.Lines); err != nil {
		return result, fmt.Errorf("failed to save output file: %w", err)
	}
	result.OutputPath = effectiveOutputPath
	logger.Info("Saved results", "path", effectiveOutputPath, "rows", len(outcome.Lines))

	return result, nil
}

// outputSuffix picks the filename suffix for the target language: the
// resolved code when known, otherwise the lowercased name so the file is
// still distinguishable from the input.
func outputSuffix(targetName, targetCode string) string {
	if targetCode != "" {
		return targetCode
	}
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(targetName), " ", "-"))
}
