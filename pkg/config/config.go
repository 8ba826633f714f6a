// Package config loads the optional quill.yml file that supplies defaults for
// a generator run. Command-line flags always win over values found here.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the working directory,
// without extension.
const FileName = "quill"

// Config holds generator defaults.
type Config struct {
	// Extension is the source suffix the finder matches.
	Extension string
	// Input lists the root folders to scan.
	Input []string
	// Output is the folder generated files are written to.
	Output string
	// AtomicWrites replaces files via temp-file-and-rename.
	AtomicWrites bool
	// Path is the file the values came from, empty when none was found.
	Path string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Extension: ".go",
		Input:     []string{"."},
		Output:    "./generated",
	}
}

// Load reads quill.yml (or .yaml/.json/.toml) from dir. A missing file is
// not an error; environment variables prefixed QUILL_ still apply.
func Load(dir string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigName(FileName)
	v.AddConfigPath(dir)

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()

	v.SetDefault("extension", def.Extension)
	v.SetDefault("input", def.Input)
	v.SetDefault("output", def.Output)
	v.SetDefault("atomic_writes", def.AtomicWrites)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s config: %w", FileName, err)
		}
	}

	cfg := &Config{
		Extension:    v.GetString("extension"),
		Input:        v.GetStringSlice("input"),
		Output:       v.GetString("output"),
		AtomicWrites: v.GetBool("atomic_writes"),
		Path:         v.ConfigFileUsed(),
	}

	if cfg.Extension == "" {
		return nil, fmt.Errorf("extension must not be empty in %s", cfg.Path)
	}

	return cfg, nil
}
