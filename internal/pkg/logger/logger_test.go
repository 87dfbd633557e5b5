package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultConfig(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, log.Logger)
	assert.Equal(t, "info", log.config.Level)
}

func TestNew_FileOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "file"
	cfg.File.Filename = filepath.Join(t.TempDir(), "app.log")

	log, err := New(cfg)
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, log.Sync())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantErr: "invalid log format",
		},
		{
			name:    "bad output",
			mutate:  func(c *Config) { c.Output = "syslog" },
			wantErr: "invalid log output",
		},
		{
			name: "file output without filename",
			mutate: func(c *Config) {
				c.Output = "file"
				c.File.Filename = ""
			},
			wantErr: "log file name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
