package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bianoble/cargo-hook/internal/toolchain"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a single cargo-hook.yaml file. Unset fields
// are filled from Defaults.
func Load(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(Defaults(), cfg)
	if err != nil {
		return nil, err
	}

	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return merged, nil
}

// parseFile decodes one config file without applying defaults or
// validation. Unknown keys are rejected.
func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a merged Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d, only version 1 is supported", cfg.Version))
	}

	if len(cfg.Markers) == 0 {
		errs = append(errs, "at least one marker is required")
	}
	errs = append(errs, validateNames("marker", cfg.Markers)...)
	errs = append(errs, validateNames("lockfile", cfg.Lockfiles)...)

	for i, pattern := range cfg.Sources {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Sprintf("sources[%d]: invalid pattern '%s'", i, pattern))
		}
		if strings.ContainsAny(pattern, `/\`) {
			errs = append(errs, fmt.Sprintf("sources[%d]: pattern '%s' is matched against file names and must not contain a path separator", i, pattern))
		}
	}

	if cfg.MinVersion != "" && !toolchain.ValidVersion(cfg.MinVersion) {
		errs = append(errs, fmt.Sprintf("min_version: '%s' is not a version like 1.70.0", cfg.MinVersion))
	}

	if cfg.Check.Features != "" && cfg.AllFeatures() {
		errs = append(errs, "check: 'features' and 'all_features' are mutually exclusive, use one or the other")
	}

	return errs
}

func validateNames(kind string, names []string) []string {
	var errs []string
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		switch {
		case n == "":
			errs = append(errs, fmt.Sprintf("%s[%d]: name is empty", kind, i))
		case strings.ContainsAny(n, `/\`):
			errs = append(errs, fmt.Sprintf("%s[%d]: '%s' must be a file name, not a path", kind, i, n))
		case seen[n]:
			errs = append(errs, fmt.Sprintf("%s[%d]: duplicate name '%s'", kind, i, n))
		}
		seen[n] = true
	}
	return errs
}
