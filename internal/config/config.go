// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/ink102/studio-status/internal/hours"
	"github.com/ink102/studio-status/internal/models"
)

const (
	HoursSourceConfig = "config"
	HoursSourceSQLite = "sqlite"

	defaultTimezone = "America/New_York"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// DayConfig is one day's hours as written in YAML: "11:00"/"20:00" or
// "11 AM"/"8 PM". Closed days may be omitted or set closed: true.
type DayConfig struct {
	Open   string `yaml:"open"`
	Close  string `yaml:"close"`
	Closed bool   `yaml:"closed"`
}

type HoursConfig struct {
	Source string               `yaml:"source"`
	Days   map[string]DayConfig `yaml:"days"`
}

type StatusConfig struct {
	ClosingSoon       string               `yaml:"closing_soon"`
	OpeningSoon       string               `yaml:"opening_soon"`
	OpeningSoonDetail string               `yaml:"opening_soon_detail"`
	RefreshInterval   string               `yaml:"refresh_interval"`
	RefreshCron       string               `yaml:"refresh_cron"`
	Colors            models.StatusPalette `yaml:"colors"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		Timezone    string `yaml:"timezone"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Hours    HoursConfig    `yaml:"hours"`
	Status   StatusConfig   `yaml:"status"`

	Features struct {
		EnableDebug bool `yaml:"enable_debug"`
		TrustProxy  bool `yaml:"trust_proxy"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML, applies environment overrides and defaults, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		cfg.App.Timezone = tz
	}
	if env := os.Getenv("APP_ENVIRONMENT"); env != "" {
		cfg.App.Environment = env
	}
	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = defaultTimezone
	}
	if c.Hours.Source == "" {
		c.Hours.Source = HoursSourceConfig
	}
	c.Status.Colors = c.Status.Colors.WithDefaults()
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.Hours.Source {
	case HoursSourceConfig:
		if _, err := c.Schedule(); err != nil {
			return err
		}
	case HoursSourceSQLite:
		if c.Database.Driver != "sqlite" {
			return fmt.Errorf("hours source sqlite requires database driver sqlite")
		}
	default:
		return fmt.Errorf("unsupported hours source: %s", c.Hours.Source)
	}

	if c.Database.Driver != "" {
		switch c.Database.Driver {
		case "sqlite":
			if c.Database.Filename == "" {
				return fmt.Errorf("database filename is required for sqlite")
			}
		default:
			return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
		}
	}

	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.RefreshInterval(); err != nil {
		return err
	}
	if expr := strings.TrimSpace(c.Status.RefreshCron); expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("status refresh_cron %q is invalid: %w", expr, err)
		}
	}
	if err := c.Status.Colors.Validate(); err != nil {
		return fmt.Errorf("status colors: %w", err)
	}

	return nil
}

// Location resolves app.timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

// Schedule builds the weekly schedule from hours.days.
func (c *Config) Schedule() (hours.WeeklySchedule, error) {
	days := make(map[time.Weekday]hours.DayHours, len(c.Hours.Days))
	for name, day := range c.Hours.Days {
		weekday, err := ParseWeekday(name)
		if err != nil {
			return hours.WeeklySchedule{}, err
		}
		if _, dup := days[weekday]; dup {
			return hours.WeeklySchedule{}, fmt.Errorf("hours for %s listed twice", weekday)
		}
		if day.Closed {
			days[weekday] = hours.DayHours{}
			continue
		}
		open, err := hours.ParseClock(day.Open)
		if err != nil {
			return hours.WeeklySchedule{}, fmt.Errorf("hours.%s.open: %w", name, err)
		}
		closeAt, err := hours.ParseClock(day.Close)
		if err != nil {
			return hours.WeeklySchedule{}, fmt.Errorf("hours.%s.close: %w", name, err)
		}
		days[weekday] = hours.DayHours{Open: open, Close: closeAt}
	}

	schedule, err := hours.NewWeeklySchedule(days)
	if err != nil {
		return hours.WeeklySchedule{}, fmt.Errorf("invalid hours: %w", err)
	}
	return schedule, nil
}

// Policy builds the evaluator thresholds from the status section.
func (c *Config) Policy() (hours.Policy, error) {
	policy := hours.DefaultPolicy()

	closingSoon, err := parseDuration(c.Status.ClosingSoon, policy.ClosingSoon, "closing_soon")
	if err != nil {
		return hours.Policy{}, err
	}
	openingSoon, err := parseDuration(c.Status.OpeningSoon, policy.OpeningSoon, "opening_soon")
	if err != nil {
		return hours.Policy{}, err
	}
	detail, err := hours.ParseDetailStyle(c.Status.OpeningSoonDetail)
	if err != nil {
		return hours.Policy{}, err
	}

	policy.ClosingSoon = closingSoon
	policy.OpeningSoon = openingSoon
	policy.OpeningSoonDetail = detail
	return policy, nil
}

// RefreshInterval is how often the status is re-evaluated; one minute by default.
func (c *Config) RefreshInterval() (time.Duration, error) {
	return parseDuration(c.Status.RefreshInterval, time.Minute, "refresh_interval")
}

func parseDuration(raw string, fallback time.Duration, field string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("status %s must be a duration like 30m: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("status %s must be positive", field)
	}
	return d, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts full or three-letter English day names.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown day of week %q", name)
	}
	return day, nil
}
