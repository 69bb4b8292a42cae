package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Scanner ScannerConfig
	Media   MediaConfig
	Geo     GeoConfig
	Seed    SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Scanner.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Media.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DISPATCH_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"DISPATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DISPATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ScannerConfig struct {
	DeviceName    string        `envconfig:"DISPATCH_DEVICE_NAME"`
	TerminalDwell time.Duration `envconfig:"DISPATCH_SCANNER_TERMINAL_DWELL" default:"3s"`
}

func (s ScannerConfig) validate() error {
	if s.TerminalDwell <= 0 {
		return fmt.Errorf("terminal dwell must be positive, got %v", s.TerminalDwell)
	}
	return nil
}

// Actor resolves the operator name attached to scans: the configured device
// name, falling back to the hostname the way the mobile app fell back to the
// device model.
func (s ScannerConfig) Actor() string {
	if s.DeviceName != "" {
		return s.DeviceName
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "Unknown Driver"
}

type MediaConfig struct {
	MaxWidthPx  int `envconfig:"DISPATCH_MEDIA_MAX_WIDTH_PX" default:"1024"`
	JPEGQuality int `envconfig:"DISPATCH_MEDIA_JPEG_QUALITY" default:"70"`
}

func (m MediaConfig) validate() error {
	if m.MaxWidthPx <= 0 {
		return fmt.Errorf("media max width must be positive, got %d", m.MaxWidthPx)
	}
	if m.JPEGQuality < 1 || m.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be in [1,100], got %d", m.JPEGQuality)
	}
	return nil
}

type GeoConfig struct {
	// PlaceholderLocation is returned by the stub locator; live GPS is out of
	// scope for this build.
	PlaceholderLocation string `envconfig:"DISPATCH_GEO_PLACEHOLDER" default:"3.1390° N, 101.6869° E"`
}

type SeedConfig struct {
	// Path points at an optional JSON seed file; when empty the built-in seed
	// data is used.
	Path string `envconfig:"DISPATCH_SEED_PATH"`
}
