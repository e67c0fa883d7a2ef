// Package topology describes the zone layout of a multi-zone cluster and
// exposes it to consumers through the Service interface. Zone records are
// read-only to the rest of the gateway.
package topology

import "github.com/zonegate-io/zonegate/internal/auth"

// ChannelConfig overrides how one logical channel of a zone is reached.
// An empty Endpoints list means "use the zone's default endpoints".
type ChannelConfig struct {
	Endpoints   []string
	Credentials auth.CredentialRef
}

// Zone is a replication peer. DataAccess and SyncIndex, when present,
// override the bulk-data and sync-index channels respectively.
type Zone struct {
	ID         string
	Name       string
	Endpoints  []string
	DataAccess *ChannelConfig
	SyncIndex  *ChannelConfig
}

// ZoneGroup is a set of zones that replicate with each other.
// ForeignZones are known zones outside the group; they get connections
// but never receive change notifications. DataNotify marks the member
// zones that should receive data-change notifications.
type ZoneGroup struct {
	ID           string
	APIName      string
	Zones        []Zone
	ForeignZones []Zone
	DataNotify   map[string]bool
}

// ZoneConfig is the local zone's own connection-relevant settings.
// RedirectZone is empty when no redirect is configured.
type ZoneConfig struct {
	SystemKey    auth.AccessKey
	RedirectZone string
}

// Service is the read-only view of the cluster topology consumed by the
// remote connection layer.
type Service interface {
	// LocalZoneID returns the id of the zone this gateway serves.
	LocalZoneID() string

	// LocalZoneGroup returns the zone group the local zone belongs to.
	LocalZoneGroup() ZoneGroup

	// ZoneGroupOf returns the group a zone belongs to, if known.
	ZoneGroupOf(zoneID string) (ZoneGroup, bool)

	// ZoneIDByName resolves a zone's human-readable name to its id.
	ZoneIDByName(name string) (string, bool)

	// LocalZoneConfig returns the local zone's own settings.
	LocalZoneConfig() ZoneConfig
}
