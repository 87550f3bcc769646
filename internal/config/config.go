// Package config assembles and validates the run configuration from flags
// and environment defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/blamecmp/blamecmp/internal/format"
)

// Config is the full configuration for one comparison run. It is resolved
// once at startup and immutable afterwards.
type Config struct {
	WorkTree   string
	Baseline   string
	Comparison string
	ExtraArgs  string
	Skip       int
	Take       int
	Jobs       int
	Timeout    time.Duration
	MaxDetail  int
	JSON       bool
	NoHistory  bool
}

// ApplyEnv loads a .env file when present and fills unset fields from the
// BLAMECMP_* environment. Flags that were given explicitly win.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if c.WorkTree == "" {
		c.WorkTree = os.Getenv("BLAMECMP_WORK_TREE")
	}
	if c.Baseline == "" {
		c.Baseline = os.Getenv("BLAMECMP_BASELINE")
	}
	if c.Comparison == "" {
		c.Comparison = os.Getenv("BLAMECMP_COMPARISON")
	}
	if c.ExtraArgs == "" {
		c.ExtraArgs = os.Getenv("BLAMECMP_ARGS")
	}
}

// Validate checks the configuration before any file is processed. Any error
// here is fatal to the whole run.
func (c *Config) Validate() error {
	if c.WorkTree == "" {
		return fmt.Errorf("no work tree given (--git-work-tree or BLAMECMP_WORK_TREE)")
	}
	if c.Baseline == "" {
		return fmt.Errorf("no baseline executable given (--baseline-executable or BLAMECMP_BASELINE)")
	}
	if c.Comparison == "" {
		return fmt.Errorf("no comparison executable given (--comparison-executable or BLAMECMP_COMPARISON)")
	}
	if _, err := format.ResolveKind(c.Baseline); err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	if _, err := format.ResolveKind(c.Comparison); err != nil {
		return fmt.Errorf("comparison: %w", err)
	}
	if c.Skip < 0 {
		return fmt.Errorf("--skip must not be negative")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1")
	}
	return nil
}
