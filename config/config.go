// Package config loads the station board configuration from a YAML
// file. Every field has a default, so an empty file yields a working
// configuration for the Gare Centrale board.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMetadataURL = "https://data.public.lu/api/1/datasets/horaires-et-arrets-des-transport-publics-gtfs/"
	DefaultStopID      = "200405035" // Luxembourg, Gare Centrale
	DefaultTimezone    = "Europe/Luxembourg"
	DefaultFeedMaxAge  = 6 * time.Hour
)

// route_short_name values that represent real train services. Rows
// with other route names (bus, tram) are excluded.
var DefaultCategories = []string{"ICE", "TGV", "IC", "EC", "RE", "RB", "TER", "IR", "CRE", "CRN"}

type Config struct {
	MetadataURL string   `yaml:"metadata_url" validate:"required,url"`
	StopID      string   `yaml:"stop_id" validate:"required"`
	Categories  []string `yaml:"categories" validate:"min=1"`
	FeedMaxAge  Duration `yaml:"feed_max_age"`
	Timezone    string   `yaml:"timezone" validate:"required"`
	LogLevel    string   `yaml:"log_level"`
}

// Duration lets YAML carry durations as "6h" style strings.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func Default() *Config {
	return &Config{
		MetadataURL: DefaultMetadataURL,
		StopID:      DefaultStopID,
		Categories:  DefaultCategories,
		FeedMaxAge:  Duration(DefaultFeedMaxAge),
		Timezone:    DefaultTimezone,
		LogLevel:    "info",
	}
}

// Load reads and validates the configuration file. Fields left out
// of the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.FeedMaxAge <= 0 {
		cfg.FeedMaxAge = Duration(DefaultFeedMaxAge)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return loc, nil
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
