package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
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

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, ":9090", c.GRPCAddr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Minute, c.ResetCodeValidityDuration)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_NoSources_Defaults(t *testing.T) {
	cfg, err := Load(nil, envconfig.MapLookuper(nil))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":                      ":4000",
		"grpc_addr":                      "",
		"database_dsn":                   "postgres://json",
		"access_token_validity_duration": "5m",
		"log_level":                      "debug",
	})
	env := envconfig.MapLookuper(map[string]string{
		"ASSOC_SERVER_DATABASE_DSN": "postgres://env",
		"ASSOC_SERVER_SECRET_KEY":   "env-secret",
		"ASSOC_SERVER_LOG_LEVEL":    "warn",
	})
	args := []string{"--config=" + path, "-s", "flag-secret", "-r", "60"}

	cfg, err := Load(args, env)
	require.NoError(t, err)

	want := defaults()
	want.HTTPAddr = ":4000"
	want.GRPCAddr = ""
	want.AccessTokenValidityDuration = 5 * time.Minute
	want.DatabaseDSN = "postgres://env"
	want.LogLevel = "warn"
	want.SecretKey = "flag-secret"
	want.ResetCodeValidityDuration = time.Hour

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "missing file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "malformed json", args: []string{"-c", badJSON}},
		{name: "bad env duration", env: map[string]string{"ASSOC_SERVER_ACCESS_TOKEN_VALIDITY": "soon"}},
		{name: "bad flag value", args: []string{"-t", "ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, envconfig.MapLookuper(tt.env))
			require.Error(t, err)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := defaults()
	err := parseFlags(cfg, []string{
		"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9191", "-d", "db", "-s", "secret",
		"-t", "1", "-r", "3", "-l", "error", "-x", "ignored",
	})
	require.NoError(t, err)

	want := &Config{
		HTTPAddr:                    "127.0.0.1:8080",
		GRPCAddr:                    "127.0.0.1:9191",
		DatabaseDSN:                 "db",
		SecretKey:                   "secret",
		AccessTokenValidityDuration: time.Minute,
		ResetCodeValidityDuration:   3 * time.Minute,
		LogLevel:                    "error",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_DoesNotPanicWithoutArgs(t *testing.T) {
	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = []string{"server"}

	require.NotPanics(t, func() { _ = LoadConfig() })
}
