package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Slideshow timing
	SlideDuration time.Duration `env:"SLIDE_DURATION" envDefault:"5s"`
	TickInterval  time.Duration `env:"TICK_INTERVAL" envDefault:"100ms"`
	ViewTTL       time.Duration `env:"VIEW_TTL" envDefault:"10m"`

	// Catalog sources; the built-in catalog is used when both are empty
	CatalogFile     string `env:"CATALOG_FILE"`
	BucketName      string `env:"BUCKET_NAME"`
	BucketPrefix    string `env:"BUCKET_PREFIX" envDefault:"slides/"`
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`

	ViewsDir  string `env:"VIEWS_DIR" envDefault:"./views"`
	PublicDir string `env:"PUBLIC_DIR" envDefault:"./public"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	StatsSchedule string `env:"STATS_SCHEDULE" envDefault:"@every 1m"`
}

// ErrInvalidTiming is returned when the slide duration or tick interval is unusable
var ErrInvalidTiming = errors.New("SLIDE_DURATION and TICK_INTERVAL must be positive with TICK_INTERVAL <= SLIDE_DURATION")

// ErrInvalidViewTTL is returned when VIEW_TTL is not positive
var ErrInvalidViewTTL = errors.New("VIEW_TTL must be positive")

// ErrCatalogSourceConflict is returned when more than one catalog source is configured
var ErrCatalogSourceConflict = errors.New("CATALOG_FILE and BUCKET_NAME cannot both be set")

// Load loads configuration from environment variables, reading a .env file first when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.SlideDuration <= 0 || c.TickInterval <= 0 || c.TickInterval > c.SlideDuration {
		return ErrInvalidTiming
	}
	if c.ViewTTL <= 0 {
		return ErrInvalidViewTTL
	}
	if c.CatalogFile != "" && c.BucketName != "" {
		return ErrCatalogSourceConflict
	}
	return nil
}

// CatalogSource describes where the slide catalog is loaded from
func (c *Config) CatalogSource() string {
	switch {
	case c.BucketName != "":
		return fmt.Sprintf("gs://%s/%s", c.BucketName, c.BucketPrefix)
	case c.CatalogFile != "":
		return c.CatalogFile
	default:
		return "built-in"
	}
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Homepage URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("Live view: ws://localhost:%s/ws\n", c.Port)
	fmt.Printf("Slide catalog: %s\n", c.CatalogSource())
}
