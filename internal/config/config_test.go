package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sii-blood-analyzer/internal/domain"
)

func TestNewManagerDefaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(20), cfg.Server.MaxUploadMB)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/analyses.db", cfg.Database.Path)
	assert.False(t, cfg.Textract.Enabled)
	assert.Equal(t, 1, cfg.Extraction.MinRequiredFields)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, m.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *domain.Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *domain.Config) { c.Database.Path = "" },
			wantErr: "sqlite database path",
		},
		{
			name: "postgres without host",
			mutate: func(c *domain.Config) {
				c.Database.Driver = "postgres"
				c.Database.Host = ""
			},
			wantErr: "database host",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *domain.Config) { c.Database.Driver = "oracle" },
			wantErr: "unsupported database driver",
		},
		{
			name: "textract enabled without region",
			mutate: func(c *domain.Config) {
				c.Textract.Enabled = true
				c.Textract.Region = ""
			},
			wantErr: "textract region",
		},
		{
			name:    "bad log level",
			mutate:  func(c *domain.Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "zero min fields",
			mutate:  func(c *domain.Config) { c.Extraction.MinRequiredFields = 0 },
			wantErr: "min_required_fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager()
			require.NoError(t, err)

			tt.mutate(m.config)
			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
