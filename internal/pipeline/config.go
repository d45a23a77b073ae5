package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/oukeidos/kvlate/internal/batch"
	"github.com/oukeidos/kvlate/internal/gtx"
)

// Config holds all configuration required for running a translation session.
type Config struct {
	// IO Paths
	InputPath string
	// OutputPath overrides the derived <base>-<code><ext> name when set.
	OutputPath string

	// Languages (human-readable names, e.g. "French")
	SourceLang string
	TargetLang string

	// Processing Parameters
	Concurrency int
	Timeout     time.Duration

	// Flags
	Insecure  bool // skip TLS verification on the endpoint client only
	Strict    bool // unknown language names abort instead of degrading
	Overwrite bool // overwrite existing output without asking

	// Client overrides the endpoint client. Nil builds one from the
	// fields above; tests inject a mock here.
	Client gtx.Translator

	// Callbacks
	// OnProgress is called with per-row progress updates.
	OnProgress func(batch.Progress)

	// OnConfirmOverwrite is called when the output file exists and
	// Overwrite is false. It should return true to overwrite.
	OnConfirmOverwrite func(path string) bool
}

const (
	MinConcurrency     = 1
	MaxConcurrency     = 32
	DefaultConcurrency = 8
)

func ClampConcurrency(value int) (int, bool) {
	if value < MinConcurrency {
		return MinConcurrency, true
	}
	if value > MaxConcurrency {
		return MaxConcurrency, true
	}
	return value, false
}

// Normalize applies safe bounds to config values and returns any adjustments.
func (c Config) Normalize() (Config, []string) {
	var notes []string
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if clamped, changed := ClampConcurrency(c.Concurrency); changed {
		notes = append(notes, fmt.Sprintf("concurrency clamped from %d to %d (range %d..%d)", c.Concurrency, clamped, MinConcurrency, MaxConcurrency))
		c.Concurrency = clamped
	}
	return c, notes
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if c.SourceLang == "" {
		return fmt.Errorf("source language is required")
	}
	if c.TargetLang == "" {
		return fmt.Errorf("target language is required")
	}
	if strings.EqualFold(strings.TrimSpace(c.SourceLang), strings.TrimSpace(c.TargetLang)) {
		return fmt.Errorf("source and target languages must be different (%s)", c.SourceLang)
	}
	if c.Concurrency < MinConcurrency || c.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency must be between %d and %d, got %d", MinConcurrency, MaxConcurrency, c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be 0 or greater, got %s", c.Timeout)
	}
	return nil
}
