package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	API        APIConfig        `mapstructure:"api"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Onboarding OnboardingConfig `mapstructure:"onboarding"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// APIConfig holds the admission backend configuration
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	EmployeeID string        `mapstructure:"employee_id"`
	AuthToken  string        `mapstructure:"auth_token"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects and configures the local snapshot store
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // file or sqlite
	Dir    string `mapstructure:"dir"`    // file driver
	Path   string `mapstructure:"path"`   // sqlite driver
}

// OnboardingConfig holds wizard behavior knobs
type OnboardingConfig struct {
	MinHireAge     int           `mapstructure:"min_hire_age"`
	CEPDebounce    time.Duration `mapstructure:"cep_debounce"`
	UploadParallel int           `mapstructure:"upload_parallel"`
	ExportDir      string        `mapstructure:"export_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// API defaults
	viper.SetDefault("api.timeout", 30*time.Second)

	// Storage defaults
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.dir", "data")
	viper.SetDefault("storage.path", "data/onboarding.db")

	// Onboarding defaults
	viper.SetDefault("onboarding.min_hire_age", 14)
	viper.SetDefault("onboarding.cep_debounce", 400*time.Millisecond)
	viper.SetDefault("onboarding.upload_parallel", 4)
	viper.SetDefault("onboarding.export_dir", "exports")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("api.base_url", "ADMISSAO_API_URL")
	viper.BindEnv("api.employee_id", "ADMISSAO_EMPLOYEE_ID")
	viper.BindEnv("api.auth_token", "ADMISSAO_AUTH_TOKEN")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.EmployeeID == "" {
		return fmt.Errorf("api.employee_id is required")
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver must be file or sqlite, got %q", c.Storage.Driver)
	}

	if c.Onboarding.MinHireAge <= 0 {
		return fmt.Errorf("onboarding.min_hire_age must be positive")
	}

	return nil
}
