package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Workbook WorkbookConfig `yaml:"workbook" envconfig:"WORKBOOK"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// WorkbookConfig describes the wage report workbook and its physical layout.
// The offsets are the positional contract of the Insperity export: the
// header block is four stacked rows, data begins below a fixed gap, and the
// sheet ends with summary rows that are not records. Declaring the offsets
// here lets a different export be described without code changes.
type WorkbookConfig struct {
	// Path to the .xlsx wage report.
	Path string `yaml:"path" envconfig:"PATH" default:"wage_report.xlsx"`
	// Sheet name; empty selects the first sheet.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
	// HeaderStart is the 0-based index of the first header row.
	HeaderStart int `yaml:"header_start" envconfig:"HEADER_START" default:"6"`
	// HeaderRows is how many stacked rows form one header label.
	HeaderRows int `yaml:"header_rows" envconfig:"HEADER_ROWS" default:"4"`
	// DataStart is the 0-based index of the first data row.
	DataStart int `yaml:"data_start" envconfig:"DATA_START" default:"12"`
	// TrailerRows is how many rows at the bottom of the sheet to discard.
	TrailerRows int `yaml:"trailer_rows" envconfig:"TRAILER_ROWS" default:"4"`
	// MaxSizeBytes caps the workbook file size accepted at startup.
	MaxSizeBytes int64 `yaml:"max_size_bytes" envconfig:"MAX_SIZE_BYTES" default:"104857600"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("WAGELENS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Workbook.Path == "" {
		envConfig.Workbook.Path = fileConfig.Workbook.Path
	}
	if envConfig.Workbook.Sheet == "" {
		envConfig.Workbook.Sheet = fileConfig.Workbook.Sheet
	}

	return envConfig
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Workbook.Path == "" {
		return fmt.Errorf("workbook path is required")
	}

	if c.Workbook.HeaderStart < 0 {
		return fmt.Errorf("workbook header start must not be negative")
	}

	if c.Workbook.HeaderRows < 1 {
		return fmt.Errorf("workbook header rows must be at least 1")
	}

	if c.Workbook.DataStart < c.Workbook.HeaderStart+c.Workbook.HeaderRows {
		return fmt.Errorf("workbook data start %d overlaps the header block ending at row %d",
			c.Workbook.DataStart, c.Workbook.HeaderStart+c.Workbook.HeaderRows-1)
	}

	if c.Workbook.TrailerRows < 0 {
		return fmt.Errorf("workbook trailer rows must not be negative")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Workbook: WorkbookConfig{
			Path:         "wage_report.xlsx",
			HeaderStart:  6,
			HeaderRows:   4,
			DataStart:    12,
			TrailerRows:  4,
			MaxSizeBytes: 100 << 20,
		},
	}
}
