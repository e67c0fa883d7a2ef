package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, applies environment variable overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Gateway.ZoneID, "ZONEGATE_ZONE_ID")
	setFromEnv(&c.Gateway.SystemKey.AccessKey, "ZONEGATE_SYSTEM_ACCESS_KEY")
	setFromEnv(&c.Gateway.SystemKey.Secret, "ZONEGATE_SYSTEM_SECRET_KEY")
	setFromEnv(&c.Gateway.RedirectZone, "ZONEGATE_REDIRECT_ZONE")
	setFromEnv(&c.UsersFile, "ZONEGATE_USERS_FILE")
	setFromEnv(&c.Observability.MetricsAddr, "ZONEGATE_METRICS_ADDR")
	setFromEnv(&c.Observability.LogLevel, "ZONEGATE_LOG_LEVEL")
	setFromEnv(&c.Observability.LogFormat, "ZONEGATE_LOG_FORMAT")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks fields the gateway cannot start without. Zone-level
// problems (missing endpoints, unresolvable credentials) are deliberately
// not validated here: the directory degrades per zone at runtime instead
// of refusing to start.
func (c *Config) Validate() error {
	if c.Gateway.ZoneID == "" {
		return fmt.Errorf("config: gateway.zoneId is required")
	}
	if c.Gateway.SystemKey.AccessKey == "" {
		return fmt.Errorf("config: gateway.systemKey.accessKey is required")
	}
	if c.ZoneGroup.ID == "" {
		return fmt.Errorf("config: zonegroup.id is required")
	}

	for i, z := range c.ZoneGroup.Zones {
		if z.ID == "" {
			return fmt.Errorf("config: zonegroup.zones[%d] has no id", i)
		}
	}
	for i, z := range c.ZoneGroup.ForeignZones {
		if z.ID == "" {
			return fmt.Errorf("config: zonegroup.foreignZones[%d] has no id", i)
		}
	}
	for i, u := range c.Users {
		if u.UID == "" {
			return fmt.Errorf("config: users[%d] has no uid", i)
		}
	}

	return nil
}
