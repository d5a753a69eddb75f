// Package config provides configuration structures and loading for godedupe.
package config

// Config represents the complete application configuration.
type Config struct {
	Scan       ScanConfig       `yaml:"scan" mapstructure:"scan"`
	Matching   MatchingConfig   `yaml:"matching" mapstructure:"matching"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
	Trash      TrashConfig      `yaml:"trash" mapstructure:"trash"`
	Journal    JournalConfig    `yaml:"journal" mapstructure:"journal"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// ScanConfig represents inventory scan settings.
type ScanConfig struct {
	Recursive     bool   `yaml:"recursive" mapstructure:"recursive"`
	ProtectedDir  string `yaml:"protected_dir" mapstructure:"protected_dir"`   // files inside are never discarded
	IncludeHidden bool   `yaml:"include_hidden" mapstructure:"include_hidden"` // dotfiles are inventoried unless set to false
}

// MatchingConfig represents duplicate matching settings.
type MatchingConfig struct {
	// BasenameMatch groups same-sized files that share a base filename
	// even when their content differs. Deliberately permissive; disable
	// for content-only matching.
	BasenameMatch bool `yaml:"basename_match" mapstructure:"basename_match"`
	HashBufferKB  int  `yaml:"hash_buffer_kb" mapstructure:"hash_buffer_kb"`
}

// ProcessingConfig represents fingerprint worker pool settings.
type ProcessingConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // concurrent fingerprint computations
}

// TrashConfig represents trash facility settings.
type TrashConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // override trash root; empty uses the XDG location
}

// JournalConfig represents run journal settings.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"` // SQLite file; empty uses the default data dir
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Recursive:     false,
			IncludeHidden: true,
		},
		Matching: MatchingConfig{
			BasenameMatch: true,
			HashBufferKB:  64,
		},
		Processing: ProcessingConfig{
			Workers: 4,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
