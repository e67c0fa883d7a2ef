package remote

import (
	"errors"
	"sync"

	"github.com/zonegate-io/zonegate/internal/auth"
	"github.com/zonegate-io/zonegate/internal/logging"
	"github.com/zonegate-io/zonegate/internal/metrics"
	"github.com/zonegate-io/zonegate/internal/topology"
)

// DirectoryConfig wires a Directory to its collaborators.
type DirectoryConfig struct {
	// Topology is the zone layout source of truth.
	Topology topology.Service

	// Users resolves credential references to stored users.
	Users auth.UserStore

	// NewConn constructs connection handles.
	NewConn ConnFactory

	// Logger for initialization and lookup events.
	Logger *logging.Logger

	// Metrics for directory observability. Optional.
	Metrics *metrics.RemoteMetrics
}

// Directory maps zone ids to connection pairs. It is populated once by
// Init and read-only afterwards; entries are never replaced or evicted
// for the directory's lifetime. The mutex makes the init-then-read
// ordering explicit for concurrent callers.
type Directory struct {
	topo    topology.Service
	users   auth.UserStore
	newConn ConnFactory
	logger  *logging.Logger
	metrics *metrics.RemoteMetrics

	mu         sync.RWMutex
	conns      map[string]ConnPair
	metaNotify map[string]Conn
	dataNotify map[string]Conn
	owned      []Conn
}

// NewDirectory creates an empty directory. Call Init before serving lookups.
func NewDirectory(cfg DirectoryConfig) *Directory {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return &Directory{
		topo:       cfg.Topology,
		users:      cfg.Users,
		newConn:    cfg.NewConn,
		logger:     logger,
		metrics:    cfg.Metrics,
		conns:      make(map[string]ConnPair),
		metaNotify: make(map[string]Conn),
		dataNotify: make(map[string]Conn),
	}
}

// Init builds connections for every reachable zone in the local zone
// group: member zones first, with notification routing, then foreign
// zones, connections only. Misconfigured zones degrade to log entries;
// Init itself never fails.
func (d *Directory) Init() {
	d.mu.Lock()
	defer d.mu.Unlock()

	group := d.topo.LocalZoneGroup()

	for _, z := range group.Zones {
		d.buildConn(z, true)
	}
	for _, z := range group.ForeignZones {
		d.buildConn(z, false)
	}

	if d.metrics != nil {
		d.metrics.ZonesConnected.Set(float64(len(d.conns)))
	}
}

// buildConn creates the connection pair for one zone and, when
// needNotify is set, registers it in the notification routing tables.
// Callers hold d.mu.
func (d *Directory) buildConn(z topology.Zone, needNotify bool) {
	if z.ID == d.topo.LocalZoneID() {
		return
	}
	if _, ok := d.conns[z.ID]; ok {
		// Pairs are never replaced for the directory's lifetime.
		return
	}

	defEndpoints := z.Endpoints
	if len(defEndpoints) == 0 && z.DataAccess != nil && len(z.DataAccess.Endpoints) > 0 {
		defEndpoints = z.DataAccess.Endpoints
	}

	if len(defEndpoints) == 0 {
		d.logger.Warnf("cannot generate connection for zone: no data endpoints defined", map[string]any{
			"zoneId":   z.ID,
			"zoneName": z.Name,
		})
		if d.metrics != nil {
			d.metrics.ZonesSkipped.Inc()
		}
		return
	}

	var apiName string
	if g, ok := d.topo.ZoneGroupOf(z.ID); ok {
		apiName = g.APIName
	}

	d.logger.Debugf("generating connection object for zone", map[string]any{
		"zoneId":   z.ID,
		"zoneName": z.Name,
	})

	group := d.topo.LocalZoneGroup()

	var pair ConnPair
	if z.DataAccess != nil {
		pair.Data = d.addConn(d.buildChannelConn(z, *z.DataAccess, defEndpoints, apiName), "data")
	} else {
		systemKey := d.topo.LocalZoneConfig().SystemKey
		pair.Data = d.addConn(d.newConn(z.ID, z.Endpoints, systemKey, group.ID, apiName), "data")
	}

	if z.SyncIndex != nil {
		pair.Sip = d.addConn(d.buildChannelConn(z, *z.SyncIndex, defEndpoints, apiName), "sip")
	} else {
		pair.Sip = pair.Data
	}

	d.conns[z.ID] = pair

	if !needNotify {
		return
	}

	d.metaNotify[z.ID] = pair.Data
	if group.DataNotify[z.ID] {
		d.dataNotify[z.ID] = pair.Data
	}
}

// buildChannelConn constructs a handle for one channel override,
// resolving the effective endpoint list and credentials.
func (d *Directory) buildChannelConn(z topology.Zone, conf topology.ChannelConfig, defEndpoints []string, apiName string) Conn {
	endpoints := conf.Endpoints
	if len(endpoints) == 0 {
		endpoints = defEndpoints
	}

	key, ok := d.accessKeyFor(z.Name, conf.Credentials)
	if !ok {
		d.logger.Infof("using default access key for connection to zone", map[string]any{
			"zoneName": z.Name,
		})
		key = d.topo.LocalZoneConfig().SystemKey
		if d.metrics != nil {
			d.metrics.CredentialFallbacks.Inc()
		}
	}

	d.logger.Debugf("remote connection for zone", map[string]any{
		"zoneName":  z.Name,
		"accessKey": key.ID,
	})

	return d.newConn(z.ID, endpoints, key, d.topo.LocalZoneGroup().ID, apiName)
}

// addConn records a handle as owned by the directory so Close releases
// it exactly once.
func (d *Directory) addConn(c Conn, channel string) Conn {
	d.owned = append(d.owned, c)
	if d.metrics != nil {
		d.metrics.ConnectionsBuilt.WithLabelValues(channel).Inc()
	}
	return c
}

// NewConn builds a handle from explicit parameters, for remotes not
// described by topology zone records. The caller owns the handle.
func (d *Directory) NewConn(remoteID string, endpoints []string, key auth.AccessKey, apiName string) Conn {
	return d.newConn(remoteID, endpoints, key, d.topo.LocalZoneGroup().ID, apiName)
}

// ConnsByID returns the connection pair for a zone id. Absence is not an
// error: unknown zones and zones skipped during Init simply have no entry.
func (d *Directory) ConnsByID(zoneID string) (ConnPair, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	pair, ok := d.conns[zoneID]
	return pair, ok
}

// ConnsByName resolves a zone name through the topology service and
// returns that zone's connection pair.
func (d *Directory) ConnsByName(name string) (ConnPair, bool) {
	id, ok := d.topo.ZoneIDByName(name)
	if !ok {
		return ConnPair{}, false
	}
	return d.ConnsByID(id)
}

// MetaNotifyConns returns the zones that receive metadata-change
// notifications: every member zone with a directory entry.
func (d *Directory) MetaNotifyConns() map[string]Conn {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]Conn, len(d.metaNotify))
	for id, c := range d.metaNotify {
		out[id] = c
	}
	return out
}

// DataNotifyConns returns the zones that receive data-change
// notifications: the member zones marked as data-notify recipients.
func (d *Directory) DataNotifyConns() map[string]Conn {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]Conn, len(d.dataNotify))
	for id, c := range d.dataNotify {
		out[id] = c
	}
	return out
}

// RedirectEndpoint resolves the endpoint of the configured redirect
// zone. Absence covers all degraded cases: no redirect configured, the
// redirect zone missing from the directory, or a handle that cannot
// report an endpoint. Callers treat absence as "do not redirect".
func (d *Directory) RedirectEndpoint() (string, bool) {
	redirectZone := d.topo.LocalZoneConfig().RedirectZone
	if redirectZone == "" {
		return "", false
	}

	d.mu.RLock()
	pair, ok := d.conns[redirectZone]
	d.mu.RUnlock()

	if !ok {
		d.logger.Errorf("cannot find entry for redirect zone", map[string]any{
			"redirectZone": redirectZone,
		})
		if d.metrics != nil {
			d.metrics.RedirectMisses.Inc()
		}
		return "", false
	}

	endpoint, err := pair.Data.Endpoint()
	if err != nil {
		d.logger.Errorf("redirect zone connection has no reachable endpoint", map[string]any{
			"redirectZone": redirectZone,
			"error":        err.Error(),
		})
		if d.metrics != nil {
			d.metrics.RedirectMisses.Inc()
		}
		return "", false
	}

	return endpoint, true
}

// Close releases every handle the directory owns. Handles aliased across
// the data and sip channels appear once in the owned list and are closed
// once. The directory must not be used afterwards.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for _, c := range d.owned {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	d.owned = nil
	d.conns = make(map[string]ConnPair)
	d.metaNotify = make(map[string]Conn)
	d.dataNotify = make(map[string]Conn)

	if d.metrics != nil {
		d.metrics.ZonesConnected.Set(0)
	}

	return errors.Join(errs...)
}
