package main

import (
	"github.com/zonegate-io/zonegate/internal/auth"
	"github.com/zonegate-io/zonegate/internal/config"
	"github.com/zonegate-io/zonegate/internal/topology"
)

// buildUserStore populates the static user store from inline users and,
// when set, the users file.
func buildUserStore(cfg *config.Config) (*auth.StaticUserStore, error) {
	store := auth.NewStaticUserStore()

	for _, u := range cfg.Users {
		record := auth.UserRecord{UID: u.UID}
		for _, k := range u.Keys {
			record.Keys = append(record.Keys, auth.AccessKey{ID: k.AccessKey, Secret: k.Secret})
		}
		if err := store.Add(record); err != nil {
			return nil, err
		}
	}

	if cfg.UsersFile != "" {
		if err := store.LoadFromFile(cfg.UsersFile); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// buildTopology converts the zone group configuration into a static
// topology snapshot.
func buildTopology(cfg *config.Config) (*topology.StaticService, error) {
	group := topology.ZoneGroup{
		ID:         cfg.ZoneGroup.ID,
		APIName:    cfg.ZoneGroup.APIName,
		DataNotify: make(map[string]bool, len(cfg.ZoneGroup.DataNotify)),
	}
	for _, z := range cfg.ZoneGroup.Zones {
		group.Zones = append(group.Zones, buildZone(z))
	}
	for _, z := range cfg.ZoneGroup.ForeignZones {
		group.ForeignZones = append(group.ForeignZones, buildZone(z))
	}
	for _, id := range cfg.ZoneGroup.DataNotify {
		group.DataNotify[id] = true
	}

	zoneCfg := topology.ZoneConfig{
		SystemKey: auth.AccessKey{
			ID:     cfg.Gateway.SystemKey.AccessKey,
			Secret: cfg.Gateway.SystemKey.Secret,
		},
		RedirectZone: cfg.Gateway.RedirectZone,
	}

	return topology.NewStaticService(cfg.Gateway.ZoneID, group, zoneCfg)
}

func buildZone(z config.ZoneEntry) topology.Zone {
	zone := topology.Zone{
		ID:        z.ID,
		Name:      z.Name,
		Endpoints: z.Endpoints,
	}
	if z.DataAccess != nil {
		zone.DataAccess = buildChannel(*z.DataAccess)
	}
	if z.SyncIndex != nil {
		zone.SyncIndex = buildChannel(*z.SyncIndex)
	}
	return zone
}

// buildChannel maps a channel entry to its override, applying credential
// precedence: explicit key pair, then key id, then user identity.
func buildChannel(c config.ChannelEntry) *topology.ChannelConfig {
	conf := &topology.ChannelConfig{Endpoints: c.Endpoints}

	switch {
	case c.AccessKey != "" && c.Secret != "":
		conf.Credentials = auth.StaticKeyRef(c.AccessKey, c.Secret)
	case c.AccessKey != "":
		conf.Credentials = auth.KeyIDRef(c.AccessKey)
	case c.UID != "":
		conf.Credentials = auth.UserRef(c.UID)
	}

	return conf
}
