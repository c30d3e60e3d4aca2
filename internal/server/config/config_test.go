package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "http://127.0.0.1:8080", c.PublicBaseURL)
	assert.Equal(t, "memory", c.StorageBackend)
	assert.Equal(t, "printdraft", c.S3Bucket)
}

func TestParseFlags_Overrides(t *testing.T) {
	os.Args = []string{"cmd", "-addr", ":9090", "-storage", "s3"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(cfg) })

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.PublicBaseURL)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	os.Args = []string{"cmd"}
	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, ":8080", cfg.Addr)
}
