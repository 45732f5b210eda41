package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:   ":8080",
			BodyLimit: 25 * 1024 * 1024,
		},
		OCR: OCRConfig{
			Enabled:   true,
			Languages: []string{"spa"},
		},
		Storage: StorageConfig{
			OutputDir:    "./salida",
			MaxFiles:     10,
			MaxBatchSize: 25 * 1024 * 1024,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.Storage.OutputDir = "" },
			wantErr: true,
			errMsg:  "storage.output_dir must be set",
		},
		{
			name:    "zero max files",
			mutate:  func(c *Config) { c.Storage.MaxFiles = 0 },
			wantErr: true,
			errMsg:  "storage.max_files must be positive",
		},
		{
			name:    "zero body limit",
			mutate:  func(c *Config) { c.Server.BodyLimit = 0 },
			wantErr: true,
			errMsg:  "server.body_limit must be positive",
		},
		{
			name:    "ocr enabled without languages",
			mutate:  func(c *Config) { c.OCR.Languages = nil },
			wantErr: true,
			errMsg:  "ocr.languages must not be empty",
		},
		{
			name: "ocr disabled allows empty languages",
			mutate: func(c *Config) {
				c.OCR.Enabled = false
				c.OCR.Languages = nil
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
