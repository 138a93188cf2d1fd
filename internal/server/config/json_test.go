package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson_Overlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":               "0.0.0.0:8081",
		"secret_key":              "json-secret",
		"token_validity_duration": "36h",
		"storage_backend":         "s3",
		"s3_base_endpoint":        "http://minio:9000",
		"max_upload_bytes":        4096,
		"allowed_origins":         []string{"http://localhost:19006"},
	})

	var c Config
	c.LoadDefaults()
	parseJson(&c, []string{"-c", path})

	assert.Equal(t, "0.0.0.0:8081", c.HTTPAddr)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 36*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, StorageS3, c.StorageBackend)
	assert.Equal(t, "http://minio:9000", c.S3BaseEndpoint)
	assert.Equal(t, int64(4096), c.MaxUploadBytes)
	assert.Equal(t, []string{"http://localhost:19006"}, c.AllowedOrigins)

	// keys absent from the file keep their previous values
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, "uploads", c.UploadDir)
}

func TestParseJson_NoFile(t *testing.T) {
	var c Config
	c.LoadDefaults()
	before := c

	parseJson(&c, []string{"-a", ":9000"})
	assert.Equal(t, before, c)
}

func TestParseJson_Panics(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	var c Config
	require.Panics(t, func() { parseJson(&c, []string{"-config", bad}) })
	require.Panics(t, func() { parseJson(&c, []string{"-config", filepath.Join(t.TempDir(), "missing.json")}) })
}
