package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{
		logger: logger,
	}
}

// Load loads the configuration from the specified path
func (s *ConfigService) Load(path string) (*Config, error) {
	// Environment overrides from an optional .env file next to the config.
	if err := godotenv.Load(filepath.Join(path, ".env")); err == nil {
		s.logger.LogInfo("Loaded environment overrides from .env", nil)
	}

	v := viper.New()
	v.AddConfigPath(path)
	// Use test configuration file if ENV is set to test
	if os.Getenv("ENV") == "test" {
		v.SetConfigName("config_test")
	} else {
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	s.setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", map[string]interface{}{
		"environment": config.Environment,
	})
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *ConfigService) setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.autoMigrate", false)
	v.SetDefault("database.pool.maxOpen", 100)
	v.SetDefault("database.pool.maxIdle", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.language", "en")
}

// validate performs validation on the configuration
func (s *ConfigService) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Mail.Enabled {
		if config.Mail.Host == "" {
			return fmt.Errorf("mail host is required when mail is enabled")
		}
		if config.Mail.AdminEmail == "" {
			return fmt.Errorf("admin email is required when mail is enabled")
		}
	}

	return nil
}
