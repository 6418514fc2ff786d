package config

import (
	"errors"
	"fmt"
	"os"
)

// Merge combines two configs where overlay takes precedence over base:
//   - version: must agree if both declare it (non-zero)
//   - scalar strings: a non-empty overlay value wins
//   - lists: a non-empty overlay list replaces the base list
//   - optional booleans: a set overlay value wins, so a layer can turn a
//     flag back off
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.Cargo = pickString(base.Cargo, overlay.Cargo)
	result.MinVersion = pickString(base.MinVersion, overlay.MinVersion)
	result.EnvFile = pickString(base.EnvFile, overlay.EnvFile)

	result.Markers = pickList(base.Markers, overlay.Markers)
	result.Lockfiles = pickList(base.Lockfiles, overlay.Lockfiles)
	result.Sources = pickList(base.Sources, overlay.Sources)

	result.Fmt.Config = pickString(base.Fmt.Config, overlay.Fmt.Config)
	result.Fmt.Check = pickBool(base.Fmt.Check, overlay.Fmt.Check)

	result.Check.Features = pickString(base.Check.Features, overlay.Check.Features)
	result.Check.AllFeatures = pickBool(base.Check.AllFeatures, overlay.Check.AllFeatures)

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d; all config layers must agree on version", base, overlay)
	}
	return nil
}

func pickString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func pickList(base, overlay []string) []string {
	if len(overlay) > 0 {
		return overlay
	}
	return base
}

func pickBool(base, overlay *bool) *bool {
	if overlay != nil {
		return overlay
	}
	return base
}

// HierarchicalOptions controls LoadHierarchical.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit skips the system and user layers.
	NoInherit bool
}

// HierarchicalResult is a merged config plus the layers that produced it.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadHierarchical loads the built-in defaults, then the system, user and
// project config files in that order, merges them and validates the
// result. Missing files are skipped; a file that exists but cannot be
// parsed is an error.
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	var layers []ConfigLayerInfo
	if opts.NoInherit {
		layers = []ConfigLayerInfo{{Path: opts.ProjectPath, Level: LevelProject}}
	} else {
		layers = DiscoverPaths(DiscoverOptions{
			ProjectPath:      opts.ProjectPath,
			SystemConfigPath: opts.SystemConfigPath,
			UserConfigPath:   opts.UserConfigPath,
		})
	}

	configs := []*Config{Defaults()}
	for i := range layers {
		cfg, err := parseFile(layers[i].Path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			layers[i].Err = err
			return nil, fmt.Errorf("%s config: %w", layers[i].Level, err)
		}
		layers[i].Loaded = true
		configs = append(configs, cfg)
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return nil, err
	}
	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &HierarchicalResult{Config: merged, Layers: layers}, nil
}
