// Package config loads and validates the applier's YAML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// UserProfile describes the applicant. Fed verbatim into message generation.
type UserProfile struct {
	Name              string   `yaml:"name" validate:"required"`
	Education         string   `yaml:"education" validate:"required"`
	ExperienceSummary string   `yaml:"experience_summary" validate:"required"`
	Skills            []string `yaml:"skills" validate:"required,min=1"`
	Interests         string   `yaml:"interests"`
	ResumeHighlights  []string `yaml:"resume_highlights"`
	PersonalityNotes  string   `yaml:"personality_notes"`
	LinkedIn          string   `yaml:"linkedin"`
	Availability      string   `yaml:"availability"`
}

// SearchFilters select which postings the listing discoverer sees. They map
// onto the board's URL query parameters.
type SearchFilters struct {
	JobType          string   `yaml:"job_type"`
	RoleCategories   []string `yaml:"role_categories"`
	Remote           string   `yaml:"remote"`
	Location         string   `yaml:"location"`
	CompanySize      string   `yaml:"company_size"`
	Industries       []string `yaml:"industries"`
	VisaNotRequired  string   `yaml:"visa_not_required"`
	SortBy           string   `yaml:"sort_by"`
	AllowedLocations []string `yaml:"allowed_locations"`
}

// Settings control session behavior.
type Settings struct {
	DataDir         string  `yaml:"data_dir"`
	UserDataDir     string  `yaml:"browser_data_dir"`
	MaxApplications int     `yaml:"max_applications_per_session" validate:"gte=0"`
	DelayMinSeconds float64 `yaml:"delay_min_seconds" validate:"gte=0"`
	DelayMaxSeconds float64 `yaml:"delay_max_seconds" validate:"gtefield=DelayMinSeconds"`
	Headless        bool    `yaml:"browser_headless"`
	Model           string  `yaml:"model"`
}

// Config is the full configuration. The Gemini API key is environment-only
// and never read from the YAML file.
type Config struct {
	Profile      UserProfile   `yaml:"user_profile" validate:"required"`
	Filters      SearchFilters `yaml:"search_filters"`
	MessageStyle string        `yaml:"message_style"`
	Settings     Settings      `yaml:"settings"`

	APIKey string `yaml:"-" validate:"required"`
}

// Defaults applied to unset settings.
const (
	DefaultDataDir         = "data"
	DefaultUserDataDir     = "browser_data"
	DefaultMaxApplications = 25
	DefaultDelayMin        = 8.0
	DefaultDelayMax        = 20.0
)

// Load reads config.yaml and .env, applies defaults, and validates the
// result. The GEMINI_API_KEY environment variable is required.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Settings.DataDir == "" {
		c.Settings.DataDir = DefaultDataDir
	}
	if c.Settings.UserDataDir == "" {
		c.Settings.UserDataDir = DefaultUserDataDir
	}
	if c.Settings.MaxApplications == 0 {
		c.Settings.MaxApplications = DefaultMaxApplications
	}
	if c.Settings.DelayMinSeconds == 0 {
		c.Settings.DelayMinSeconds = DefaultDelayMin
	}
	if c.Settings.DelayMaxSeconds == 0 {
		c.Settings.DelayMaxSeconds = DefaultDelayMax
	}
}

// Validate checks required fields and numeric ranges.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not found in environment; set it in .env or export it")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
