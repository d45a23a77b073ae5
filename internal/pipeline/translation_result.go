package pipeline

import "time"

// TranslationStatus is the terminal state of a translation run.
type TranslationStatus string

const (
	TranslationStatusSuccess        TranslationStatus = "Success"
	TranslationStatusPartialSuccess TranslationStatus = "Partial Success"
	TranslationStatusFailure        TranslationStatus = "Failure"
	TranslationStatusSkipped        TranslationStatus = "Skipped"
)

// WarningKind classifies a non-fatal anomaly surfaced by a run.
type WarningKind string

const (
	// WarnRowFailed marks a row whose request errored; its output slot
	// holds an empty quoted value.
	WarnRowFailed WarningKind = "row_failed"
	// WarnDroppedTokens marks a row whose translation came back missing
	// one or more masked placeholders.
	WarnDroppedTokens WarningKind = "dropped_tokens"
	// WarnOversizeValue marks a row whose value is long enough that the
	// endpoint may truncate it.
	WarnOversizeValue WarningKind = "oversize_value"
	// WarnUnknownLanguage marks a language name the resolver could not
	// map to a code; the request degrades at the remote end.
	WarnUnknownLanguage WarningKind = "unknown_language"
	// WarnConfigAdjusted marks a config value clamped into range.
	WarnConfigAdjusted WarningKind = "config_adjusted"
	// WarnOutputPathChanged marks an output path adjusted to avoid
	// overwriting an existing file.
	WarnOutputPathChanged WarningKind = "output_path_changed"
)

// Warning is one typed, non-fatal anomaly. Row is the zero-based input
// row index, or -1 when the warning is not tied to a row.
type Warning struct {
	Kind    WarningKind
	Row     int
	Message string
}

// TranslationResult contains structured outputs from RunTranslation.
type TranslationResult struct {
	Status     TranslationStatus
	OutputPath string

	// TotalLines counts every line of the input, conforming or not.
	TotalLines int
	// SkippedLines counts input lines that did not parse as key,value.
	SkippedLines int
	// FailedRows counts dispatched rows whose requests errored.
	FailedRows int

	Elapsed  time.Duration
	Warnings []Warning
}

func statusFromCounts(dispatched, failed int) TranslationStatus {
	switch {
	case dispatched == 0:
		return TranslationStatusSuccess
	case failed == 0:
		return TranslationStatusSuccess
	case failed == dispatched:
		return TranslationStatusFailure
	default:
		return TranslationStatusPartialSuccess
	}
}
