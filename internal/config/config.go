// Package config loads weft.yaml, the optional settings file of the weftc
// driver.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/interp"
)

// FileName is the settings file looked up in the working directory.
const FileName = "weft.yaml"

// Config holds the driver settings.
type Config struct {
	Path         string        // file the settings came from; empty for defaults
	Seed         uint64        // rnd seed; 0 picks a time-based seed
	MaxCallDepth int           // nested routine call limit
	Placeholder  string        // text for values that cannot be rendered
	Trace        diag.Severity // lowest severity printed
	History      string        // REPL history file; empty disables history
}

// configFile is the on-disk shape of weft.yaml.
type configFile struct {
	Seed         *uint64 `yaml:"seed"`
	MaxCallDepth *int    `yaml:"max_call_depth"`
	Placeholder  *string `yaml:"placeholder"`
	Trace        *string `yaml:"trace"`
	History      *string `yaml:"history"`
}

// ValidationError aggregates settings validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		MaxCallDepth: interp.DefaultMaxCallDepth,
		Placeholder:  interp.DefaultPlaceholder,
		Trace:        diag.Warning,
		History:      expandHome("~/.weft_history"),
	}
}

// Load reads the settings file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file, path)
}

// Find loads FileName from dir if it exists and returns the defaults
// otherwise.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Decode parses settings from r. Unknown keys are rejected; missing keys
// keep their defaults. name is used in error messages.
func Decode(r io.Reader, name string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}

	conf, err := raw.toConfig(name)
	if err != nil {
		return nil, err
	}
	return conf, nil
}

func (raw *configFile) toConfig(name string) (*Config, error) {
	conf := Default()
	conf.Path = name
	errs := ValidationError{Path: name}

	if raw.Seed != nil {
		conf.Seed = *raw.Seed
	}
	if raw.MaxCallDepth != nil {
		if *raw.MaxCallDepth <= 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", *raw.MaxCallDepth))
		}
		conf.MaxCallDepth = *raw.MaxCallDepth
	}
	if raw.Placeholder != nil {
		if *raw.Placeholder == "" {
			errs.Issues = append(errs.Issues, "placeholder must be a non-empty string")
		}
		conf.Placeholder = *raw.Placeholder
	}
	if raw.Trace != nil {
		sev, ok := diag.ParseSeverity(*raw.Trace)
		if !ok {
			errs.Issues = append(errs.Issues,
				fmt.Sprintf("trace must be one of off, error, warning, info, debug; got %q", *raw.Trace))
		}
		conf.Trace = sev
	}
	if raw.History != nil {
		conf.History = expandHome(*raw.History)
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return conf, nil
}

// expandHome replaces a leading "~/" with the user's home directory. If the
// home directory is unknown the path is returned unchanged.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
