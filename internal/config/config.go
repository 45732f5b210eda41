// Package config loads service configuration from an optional YAML file
// and CERTIFICADOS_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	OCR     OCRConfig     `mapstructure:"ocr"`
	Storage StorageConfig `mapstructure:"storage"`
	Debug   bool          `mapstructure:"debug"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	BodyLimit    int           `mapstructure:"body_limit"`
}

// OCRConfig contains text recognition settings.
type OCRConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Languages []string `mapstructure:"languages"`
}

// StorageConfig contains batch working directory settings.
type StorageConfig struct {
	OutputDir    string `mapstructure:"output_dir"`
	MaxFiles     int    `mapstructure:"max_files"`
	MaxBatchSize int64  `mapstructure:"max_batch_size"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	viper.SetConfigName("certificados")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/certificados")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CERTIFICADOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Info().Msg("No config file found, using environment variables and defaults")
	} else {
		log.Info().Str("file", viper.ConfigFileUsed()).Msg("Config file loaded")
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads environment variables from a .env file when present.
func loadEnvFile() error {
	locations := []string{".env", ".env.local"}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			if err := godotenv.Load(location); err != nil {
				return fmt.Errorf("error loading .env file from %s: %w", location, err)
			}
			log.Info().Str("file", location).Msg(".env file loaded")
			return nil
		}
	}

	return fmt.Errorf("no .env file found")
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.body_limit", 25*1024*1024) // 25MB

	viper.SetDefault("ocr.enabled", true)
	viper.SetDefault("ocr.languages", []string{"spa"})

	viper.SetDefault("storage.output_dir", "./salida")
	viper.SetDefault("storage.max_files", 10)
	viper.SetDefault("storage.max_batch_size", 25*1024*1024)

	viper.SetDefault("debug", false)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Storage.OutputDir == "" {
		return fmt.Errorf("storage.output_dir must be set")
	}
	if c.Storage.MaxFiles <= 0 {
		return fmt.Errorf("storage.max_files must be positive")
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("server.body_limit must be positive")
	}
	if c.OCR.Enabled && len(c.OCR.Languages) == 0 {
		return fmt.Errorf("ocr.languages must not be empty when OCR is enabled")
	}
	return nil
}
