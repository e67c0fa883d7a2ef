// Package config provides configuration loading and validation for zonegate.
// Supports YAML files with environment variable overrides.
package config

// Config holds all configuration for a zonegate gateway.
type Config struct {
	Gateway       GatewayConfig       `yaml:"gateway"`
	ZoneGroup     ZoneGroupConfig     `yaml:"zonegroup"`
	Users         []UserConfig        `yaml:"users"`
	UsersFile     string              `yaml:"usersFile" env:"ZONEGATE_USERS_FILE"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GatewayConfig identifies the local zone and its own settings.
type GatewayConfig struct {
	ZoneID       string    `yaml:"zoneId" env:"ZONEGATE_ZONE_ID"`
	SystemKey    KeyConfig `yaml:"systemKey"`
	RedirectZone string    `yaml:"redirectZone" env:"ZONEGATE_REDIRECT_ZONE"`
}

// KeyConfig is an access key id/secret pair.
type KeyConfig struct {
	AccessKey string `yaml:"accessKey" env:"ZONEGATE_SYSTEM_ACCESS_KEY"`
	Secret    string `yaml:"secret" env:"ZONEGATE_SYSTEM_SECRET_KEY"`
}

// ZoneGroupConfig describes the local zone group.
type ZoneGroupConfig struct {
	ID           string      `yaml:"id"`
	APIName      string      `yaml:"apiName"`
	Zones        []ZoneEntry `yaml:"zones"`
	ForeignZones []ZoneEntry `yaml:"foreignZones"`
	DataNotify   []string    `yaml:"dataNotify"`
}

// ZoneEntry describes one peer zone and its optional channel overrides.
type ZoneEntry struct {
	ID         string        `yaml:"id"`
	Name       string        `yaml:"name"`
	Endpoints  []string      `yaml:"endpoints"`
	DataAccess *ChannelEntry `yaml:"dataAccess"`
	SyncIndex  *ChannelEntry `yaml:"syncIndex"`
}

// ChannelEntry overrides endpoints and credentials for one channel.
// Credential precedence: accessKey+secret, then accessKey, then uid.
type ChannelEntry struct {
	Endpoints []string `yaml:"endpoints"`
	AccessKey string   `yaml:"accessKey"`
	Secret    string   `yaml:"secret"`
	UID       string   `yaml:"uid"`
}

// UserConfig is a stored user and its access keys.
type UserConfig struct {
	UID  string      `yaml:"uid"`
	Keys []KeyConfig `yaml:"keys"`
}

// ObservabilityConfig controls metrics and logging.
type ObservabilityConfig struct {
	MetricsAddr string `yaml:"metricsAddr" env:"ZONEGATE_METRICS_ADDR"`
	LogLevel    string `yaml:"logLevel" env:"ZONEGATE_LOG_LEVEL"`
	LogFormat   string `yaml:"logFormat" env:"ZONEGATE_LOG_FORMAT"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Observability: ObservabilityConfig{
			MetricsAddr: ":9190",
			LogLevel:    "info",
			LogFormat:   "json",
		},
	}
}
