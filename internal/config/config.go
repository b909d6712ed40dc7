package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/gravdeck/internal/spacetime"
	"github.com/san-kum/gravdeck/internal/viz"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel    = "gemini-3-flash-preview"
	DefaultLanguage = "ar"
	DefaultTheme    = "nebula"
	DefaultLogFile  = "gravdeck.log"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/"
)

type Config struct {
	Model    string           `yaml:"model"`
	Endpoint string           `yaml:"endpoint"`
	Timeout  time.Duration    `yaml:"timeout"`
	Language string           `yaml:"language"`
	Theme    string           `yaml:"theme"`
	LogFile  string           `yaml:"log_file"`
	Slides   string           `yaml:"slides"`
	Grid     spacetime.Params `yaml:"grid"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    DefaultModel,
		Endpoint: DefaultEndpoint,
		Language: DefaultLanguage,
		Theme:    DefaultTheme,
		LogFile:  DefaultLogFile,
		Grid:     spacetime.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("config: language %q: %w", c.Language, err)
	}
	if c.Grid.Spacing <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid spacing and height must be positive")
	}
	if c.Grid.Softening <= 0 {
		return fmt.Errorf("config: grid softening must be positive")
	}
	if c.Theme != "" && !viz.HasTheme(c.Theme) {
		return fmt.Errorf("config: unknown theme %q (available: %v)", c.Theme, viz.ThemeNames())
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: negative timeout")
	}
	return nil
}

// LanguageTag returns the target answer language, defaulting to Arabic.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Arabic
	}
	return tag
}

// ApplyEnv overlays environment overrides onto the file configuration.
func (c *Config) ApplyEnv(e Env) {
	if e.Model != "" {
		c.Model = e.Model
	}
	if e.Endpoint != "" {
		c.Endpoint = e.Endpoint
	}
}
