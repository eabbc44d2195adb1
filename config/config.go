// Package config loads diffinsight settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	configDirName  = "diffinsight"
	configFileName = "config.toml"
)

// Environment variables that override file settings.
const (
	EnvAPIKey   = "GEMINI_API_KEY"
	EnvAnalyzer = "DIFFINSIGHT_ANALYZER"
	EnvModel    = "DIFFINSIGHT_MODEL"
)

// Accepted names for the enumerated settings.
var (
	Analyzers  = []string{"stub", "gemini"}
	Themes     = []string{"dark", "light", "auto"}
	Clipboards = []string{"system", "osc52", "pbcopy"}
)

// Duration is a time.Duration written as a string like "45s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds application settings.
type Config struct {
	Analyzer  string `toml:"analyzer"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	Theme     string `toml:"theme"`
	Clipboard string `toml:"clipboard"`
	Language  string `toml:"language"`

	AnalysisTimeout  Duration `toml:"analysis_timeout"`
	StubDelay        Duration `toml:"stub_delay"`
	ClearResultOnRun bool     `toml:"clear_result_on_run"`

	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Analyzer:        "stub",
		Theme:           "dark",
		Clipboard:       "system",
		AnalysisTimeout: Duration{60 * time.Second},
		StubDelay:       Duration{2 * time.Second},
		Cache:           true,
	}
}

// Load reads the config file at the default path and applies environment
// overrides. The returned path is where the file was looked for.
func Load() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return Config{}, path, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, path, nil
}

// LoadFromPath reads the TOML file at path over the defaults. A missing or
// blank file yields the defaults. Unknown keys are rejected.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables read with getenv.
// Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvAnalyzer)); v != "" {
		c.Analyzer = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		c.Model = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !slices.Contains(Analyzers, c.Analyzer) {
		return fmt.Errorf("config: unknown analyzer %q (want one of %s)", c.Analyzer, strings.Join(Analyzers, ", "))
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("config: unknown theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	if !slices.Contains(Clipboards, c.Clipboard) {
		return fmt.Errorf("config: unknown clipboard %q (want one of %s)", c.Clipboard, strings.Join(Clipboards, ", "))
	}
	if c.AnalysisTimeout.Duration <= 0 {
		return fmt.Errorf("config: analysis_timeout must be positive, got %s", c.AnalysisTimeout)
	}
	if c.StubDelay.Duration < 0 {
		return fmt.Errorf("config: stub_delay must not be negative, got %s", c.StubDelay)
	}
	if c.Analyzer == "gemini" && c.APIKey == "" {
		return fmt.Errorf("config: the gemini analyzer needs an API key (set %s)", EnvAPIKey)
	}
	return nil
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
