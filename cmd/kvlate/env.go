package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"
)

// envDefaults are settings that can come from the environment or a YAML
// config file instead of flags. Flags set on the command line always win.
type envDefaults struct {
	Source      string        `yaml:"source" env:"KVLATE_SOURCE"`
	Target      string        `yaml:"target" env:"KVLATE_TARGET"`
	Concurrency int           `yaml:"concurrency" env:"KVLATE_CONCURRENCY"`
	Timeout     time.Duration `yaml:"timeout" env:"KVLATE_TIMEOUT"`
	Insecure    bool          `yaml:"insecure" env:"KVLATE_INSECURE"`
	Strict      bool          `yaml:"strict" env:"KVLATE_STRICT"`
}

// loadDefaults reads environment defaults, plus a YAML config file when
// one is given. A missing explicit config path is an error; env-only
// loading never fails on absent variables.
func loadDefaults(configPath string) (envDefaults, error) {
	var d envDefaults
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return d, fmt.Errorf("config file %s: %w", configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &d); err != nil {
			return d, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		return d, nil
	}
	if err := cleanenv.ReadEnv(&d); err != nil {
		return d, fmt.Errorf("failed to read environment config: %w", err)
	}
	return d, nil
}

// applyDefaults fills opts from d for every flag the user did not set
// explicitly.
func applyDefaults(cmd *cobra.Command, opts *translateOptions, d envDefaults) {
	flags := cmd.Flags()
	if !flags.Changed("source") && d.Source != "" {
		opts.sourceLang = d.Source
	}
	if !flags.Changed("target") && d.Target != "" {
		opts.targetLang = d.Target
	}
	if !flags.Changed("concurrency") && d.Concurrency != 0 {
		opts.concurrency = d.Concurrency
	}
	if !flags.Changed("timeout") && d.Timeout != 0 {
		opts.timeout = d.Timeout
	}
	if !flags.Changed("insecure") && d.Insecure {
		opts.insecure = true
	}
	if !flags.Changed("strict") && d.Strict {
		opts.strict = true
	}
}
