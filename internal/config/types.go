package config

// Config represents the cargo-hook.yaml configuration file.
type Config struct {
	Version int `yaml:"version"`

	// Cargo is the cargo executable. Empty means "cargo".
	Cargo string `yaml:"cargo,omitempty"`

	// MinVersion is the oldest cargo release accepted by the pre-flight check.
	MinVersion string `yaml:"min_version,omitempty"`

	// Markers are the manifest file names that mark a project root.
	Markers []string `yaml:"markers,omitempty"`

	// Lockfiles are extra file names whose changes affect their root.
	Lockfiles []string `yaml:"lockfiles,omitempty"`

	// Sources are base-name glob patterns for source files.
	Sources []string `yaml:"sources,omitempty"`

	// EnvFile is a dotenv file whose variables are added to every cargo
	// process. Relative paths are resolved against the project config.
	EnvFile string `yaml:"env_file,omitempty"`

	Fmt   FmtConfig   `yaml:"fmt,omitempty"`
	Check CheckConfig `yaml:"check,omitempty"`
}

// FmtConfig holds defaults for the fmt action.
type FmtConfig struct {
	Config string `yaml:"config,omitempty"`
	Check  *bool  `yaml:"check,omitempty"`
}

// CheckConfig holds defaults for the check action.
type CheckConfig struct {
	Features    string `yaml:"features,omitempty"`
	AllFeatures *bool  `yaml:"all_features,omitempty"`
}

// Defaults returns the built-in configuration for Cargo projects.
func Defaults() *Config {
	return &Config{
		Version:   1,
		Cargo:     "cargo",
		Markers:   []string{"Cargo.toml"},
		Lockfiles: []string{"Cargo.lock"},
		Sources:   []string{"*.rs"},
	}
}

// RelevantNames returns markers and lock files: the exact file names that
// count as relevant changes.
func (c *Config) RelevantNames() []string {
	names := make([]string, 0, len(c.Markers)+len(c.Lockfiles))
	names = append(names, c.Markers...)
	names = append(names, c.Lockfiles...)
	return names
}

// FmtCheck reports whether rustfmt should run in check mode.
func (c *Config) FmtCheck() bool {
	return c.Fmt.Check != nil && *c.Fmt.Check
}

// AllFeatures reports whether cargo check should activate all features.
func (c *Config) AllFeatures() bool {
	return c.Check.AllFeatures != nil && *c.Check.AllFeatures
}
