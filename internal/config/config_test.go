package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
gateway:
  zoneId: a
  systemKey:
    accessKey: SYS
    secret: system-secret
  redirectZone: b
zonegroup:
  id: zg-1
  apiName: us
  zones:
    - id: a
      name: zone-a
      endpoints: ["http://a:8080"]
    - id: b
      name: zone-b
      endpoints: ["http://b1:8080"]
    - id: c
      name: zone-c
      endpoints: ["http://c1:8080"]
      syncIndex:
        endpoints: ["http://c-sip:8080"]
        accessKey: AKC
        secret: sc
  foreignZones:
    - id: x
      name: zone-x
      endpoints: ["http://x1:8080"]
  dataNotify: [b]
users:
  - uid: replicator
    keys:
      - accessKey: AK1
        secret: s1
observability:
  logLevel: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zonegate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Observability.MetricsAddr != ":9190" {
		t.Errorf("expected default metrics addr :9190, got %s", cfg.Observability.MetricsAddr)
	}
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "json" {
		t.Errorf("expected default log format json, got %s", cfg.Observability.LogFormat)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "a", cfg.Gateway.ZoneID)
	assert.Equal(t, "SYS", cfg.Gateway.SystemKey.AccessKey)
	assert.Equal(t, "b", cfg.Gateway.RedirectZone)
	assert.Equal(t, "zg-1", cfg.ZoneGroup.ID)
	require.Len(t, cfg.ZoneGroup.Zones, 3)

	zoneC := cfg.ZoneGroup.Zones[2]
	require.NotNil(t, zoneC.SyncIndex)
	assert.Equal(t, []string{"http://c-sip:8080"}, zoneC.SyncIndex.Endpoints)
	assert.Nil(t, zoneC.DataAccess)

	require.Len(t, cfg.ZoneGroup.ForeignZones, 1)
	assert.Equal(t, []string{"b"}, cfg.ZoneGroup.DataNotify)

	require.Len(t, cfg.Users, 1)
	assert.Equal(t, "replicator", cfg.Users[0].UID)

	// File values override defaults, untouched defaults survive.
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, ":9190", cfg.Observability.MetricsAddr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZONEGATE_REDIRECT_ZONE", "c")
	t.Setenv("ZONEGATE_METRICS_ADDR", ":7777")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "c", cfg.Gateway.RedirectZone)
	assert.Equal(t, ":7777", cfg.Observability.MetricsAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "gateway: [not a mapping"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing zone id", func(c *Config) { c.Gateway.ZoneID = "" }},
		{"missing system key", func(c *Config) { c.Gateway.SystemKey.AccessKey = "" }},
		{"missing zonegroup id", func(c *Config) { c.ZoneGroup.ID = "" }},
		{"member zone without id", func(c *Config) { c.ZoneGroup.Zones[0].ID = "" }},
		{"foreign zone without id", func(c *Config) { c.ZoneGroup.ForeignZones[0].ID = "" }},
		{"user without uid", func(c *Config) { c.Users[0].UID = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleConfig))
			require.NoError(t, err)

			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
