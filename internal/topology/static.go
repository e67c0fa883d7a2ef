package topology

import "fmt"

// StaticService is an immutable Service snapshot built once at startup.
// It is safe for concurrent readers.
type StaticService struct {
	localZoneID string
	localGroup  ZoneGroup
	zoneConfig  ZoneConfig
	nameToID    map[string]string
	groupByZone map[string]ZoneGroup
}

// NewStaticService builds a snapshot from the local zone group and the
// local zone's settings. otherGroups lists any additional zone groups
// whose membership is known, so ZoneGroupOf can resolve foreign zones.
//
// Validation is strict: duplicate zone ids or names, a local zone missing
// from the member list, or data-notify/redirect entries naming unknown
// members are configuration errors.
func NewStaticService(localZoneID string, local ZoneGroup, cfg ZoneConfig, otherGroups ...ZoneGroup) (*StaticService, error) {
	if localZoneID == "" {
		return nil, fmt.Errorf("topology: empty local zone id")
	}

	s := &StaticService{
		localZoneID: localZoneID,
		localGroup:  local,
		zoneConfig:  cfg,
		nameToID:    make(map[string]string),
		groupByZone: make(map[string]ZoneGroup),
	}

	members := make(map[string]bool, len(local.Zones))
	for _, z := range local.Zones {
		if err := s.index(z, local); err != nil {
			return nil, err
		}
		members[z.ID] = true
	}
	if !members[localZoneID] {
		return nil, fmt.Errorf("topology: local zone %q is not a member of zone group %q", localZoneID, local.ID)
	}

	foreign := make(map[string]bool, len(local.ForeignZones))
	for _, z := range local.ForeignZones {
		if members[z.ID] || foreign[z.ID] {
			return nil, fmt.Errorf("topology: duplicate zone id %q", z.ID)
		}
		foreign[z.ID] = true
		// Foreign zones are known but their owning group usually is not;
		// they are indexed for name lookup only.
		if err := s.indexName(z); err != nil {
			return nil, err
		}
	}

	for _, g := range otherGroups {
		for _, z := range g.Zones {
			if _, ok := s.groupByZone[z.ID]; ok {
				return nil, fmt.Errorf("topology: zone %q appears in more than one zone group", z.ID)
			}
			s.groupByZone[z.ID] = g
		}
	}

	for id := range local.DataNotify {
		if !members[id] {
			return nil, fmt.Errorf("topology: data-notify zone %q is not a member of zone group %q", id, local.ID)
		}
	}

	if cfg.RedirectZone != "" && !s.knownZoneID(cfg.RedirectZone) {
		return nil, fmt.Errorf("topology: redirect zone %q is unknown", cfg.RedirectZone)
	}

	return s, nil
}

func (s *StaticService) index(z Zone, g ZoneGroup) error {
	if _, ok := s.groupByZone[z.ID]; ok {
		return fmt.Errorf("topology: duplicate zone id %q", z.ID)
	}
	s.groupByZone[z.ID] = g
	return s.indexName(z)
}

func (s *StaticService) indexName(z Zone) error {
	if z.ID == "" {
		return fmt.Errorf("topology: zone %q has empty id", z.Name)
	}
	if z.Name == "" {
		return nil
	}
	if _, ok := s.nameToID[z.Name]; ok {
		return fmt.Errorf("topology: duplicate zone name %q", z.Name)
	}
	s.nameToID[z.Name] = z.ID
	return nil
}

func (s *StaticService) knownZoneID(id string) bool {
	if _, ok := s.groupByZone[id]; ok {
		return true
	}
	for _, z := range s.localGroup.ForeignZones {
		if z.ID == id {
			return true
		}
	}
	return false
}

// LocalZoneID returns the id of the zone this gateway serves.
func (s *StaticService) LocalZoneID() string {
	return s.localZoneID
}

// LocalZoneGroup returns the zone group the local zone belongs to.
func (s *StaticService) LocalZoneGroup() ZoneGroup {
	return s.localGroup
}

// ZoneGroupOf returns the group a zone belongs to, if known.
func (s *StaticService) ZoneGroupOf(zoneID string) (ZoneGroup, bool) {
	g, ok := s.groupByZone[zoneID]
	return g, ok
}

// ZoneIDByName resolves a zone name to its id.
func (s *StaticService) ZoneIDByName(name string) (string, bool) {
	id, ok := s.nameToID[name]
	return id, ok
}

// LocalZoneConfig returns the local zone's own settings.
func (s *StaticService) LocalZoneConfig() ZoneConfig {
	return s.zoneConfig
}

var _ Service = (*StaticService)(nil)
