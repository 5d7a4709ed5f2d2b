package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	OutputDir   string          `mapstructure:"output_dir"`
	LogFile     string          `mapstructure:"log_file"`
	JPEGQuality int             `mapstructure:"jpeg_quality"`
	Fonts       []string        `mapstructure:"fonts"`
	Exif        ExifConfig      `mapstructure:"exif"`
	Simulator   SimulatorConfig `mapstructure:"simulator"`
	SVG         SVGConfig       `mapstructure:"svg"`
	Storage     StorageConfig   `mapstructure:"storage"`
}

type ExifConfig struct {
	SecondsDenominator uint32 `mapstructure:"seconds_denominator"` // 0 keeps the photo set's own
}

type SimulatorConfig struct {
	Tool    string        `mapstructure:"tool"`
	Timeout time.Duration `mapstructure:"timeout"`
	Settle  time.Duration `mapstructure:"settle"` // quiet period before watch loads a new photo
}

type SVGConfig struct {
	URL       string        `mapstructure:"url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

var defaultFonts = []string{
	"/System/Library/Fonts/ヒラギノ角ゴシック W6.ttc",
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Bold.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Bold.ttc",
}

// LoadConfig reads geofix.toml from configFile, or from the user config dir
// and the working directory when configFile is empty. A .env file and
// GEOFIX_* variables override the file.
func LoadConfig(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("output_dir", "")
	v.SetDefault("log_file", "geofix.log")
	v.SetDefault("jpeg_quality", 95)
	v.SetDefault("fonts", defaultFonts)
	v.SetDefault("exif.seconds_denominator", 0)
	v.SetDefault("simulator.tool", "xcrun")
	v.SetDefault("simulator.timeout", time.Duration(0))
	v.SetDefault("simulator.settle", DefaultSettle)
	v.SetDefault("svg.url", DefaultSVGURL)
	v.SetDefault("svg.user_agent", DefaultSVGUserAgent)
	v.SetDefault("svg.timeout", 30*time.Second)
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "fixtures")
	v.SetDefault("storage.prefix", "photos")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("geofix")
		v.SetConfigType("toml")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "geofix"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	// GEOFIX_STORAGE_ENDPOINT → storage.endpoint
	v.SetEnvPrefix("GEOFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems at once
func (c *Config) Validate() error {
	var errs []string

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Sprintf("jpeg_quality must be 1-100, got %d", c.JPEGQuality))
	}
	if c.Exif.SecondsDenominator > MaxSecondsDenominator {
		errs = append(errs, fmt.Sprintf("exif.seconds_denominator must be at most %d, got %d",
			MaxSecondsDenominator, c.Exif.SecondsDenominator))
	}
	if c.Simulator.Tool == "" {
		errs = append(errs, "simulator.tool is required")
	}
	if c.Simulator.Timeout < 0 {
		errs = append(errs, "simulator.timeout must not be negative")
	}
	if c.Simulator.Settle < 0 {
		errs = append(errs, "simulator.settle must not be negative")
	}
	if c.SVG.URL == "" {
		errs = append(errs, "svg.url is required")
	}
	if c.SVG.Timeout < 0 {
		errs = append(errs, "svg.timeout must not be negative")
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, "storage.bucket is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ValidateStorage checks the settings publish needs
func (c *Config) ValidateStorage() error {
	var missing []string
	if c.Storage.Endpoint == "" {
		missing = append(missing, "storage.endpoint")
	}
	if c.Storage.AccessKey == "" {
		missing = append(missing, "storage.access_key")
	}
	if c.Storage.SecretKey == "" {
		missing = append(missing, "storage.secret_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing storage settings: %s (set them in geofix.toml or GEOFIX_* variables)",
			strings.Join(missing, ", "))
	}
	return nil
}
