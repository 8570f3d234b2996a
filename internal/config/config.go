package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Analyzer Analyzer `mapstructure:"analyzer"`
	Server   Server   `mapstructure:"server"`
	Logger   Logger   `mapstructure:"logger"`
	Display  Display  `mapstructure:"display"`
	Export   Export   `mapstructure:"export"`
}

// Analyzer holds the configuration for the remote analysis service.
type Analyzer struct {
	BaseURL        string        `mapstructure:"base_url"`
	Path           string        `mapstructure:"path"`
	Timeout        time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Console    bool   `mapstructure:"console"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Display controls how results are formatted for the user.
type Display struct {
	Timezone    string  `mapstructure:"timezone"`
	TimeLayout  string  `mapstructure:"time_layout"`
	ChartWidth  float64 `mapstructure:"chart_width"`
	ChartHeight float64 `mapstructure:"chart_height"`
}

// Export holds the configuration for ledger exports.
type Export struct {
	SpoolDir string `mapstructure:"spool_dir"`
	Dir      string `mapstructure:"dir"`
}

// Location resolves the configured timezone, falling back to the local zone.
func (d Display) Location() *time.Location {
	if d.Timezone == "" || strings.EqualFold(d.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig reads configuration from an optional .env file, the config file in path
// and environment variables. A missing config file is not an error.
func LoadConfig(path string) (config Config, err error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analyzer.base_url", "http://127.0.0.1:8000")
	v.SetDefault("analyzer.path", "/analyze")
	v.SetDefault("analyzer.timeout", 0)
	v.SetDefault("analyzer.rate_limit", 1) // requests per second
	v.SetDefault("analyzer.rate_limit_burst", 2)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.console", true)
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 28)

	v.SetDefault("display.timezone", "Local")
	v.SetDefault("display.time_layout", "2006-01-02 15:04:05")
	v.SetDefault("display.chart_width", 960)
	v.SetDefault("display.chart_height", 360)

	v.SetDefault("export.spool_dir", os.TempDir())
	v.SetDefault("export.dir", ".")
}
