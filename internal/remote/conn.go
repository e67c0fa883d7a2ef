package remote

import "github.com/zonegate-io/zonegate/internal/auth"

// Conn is an opaque handle to one remote zone connection. The directory
// never drives traffic through it; it only hands it to callers and asks
// it for a reachable endpoint when resolving redirects.
type Conn interface {
	// RemoteID returns the peer identity the handle was built for.
	RemoteID() string

	// Endpoint returns an endpoint the peer is reachable at.
	Endpoint() (string, error)

	// Close releases the handle. Implementations must tolerate a single
	// call; the directory guarantees it never closes a handle twice.
	Close() error
}

// ConnPair is the unit stored per zone: the bulk-data channel and the
// sync-index (sip) channel. Sip aliases Data when the zone has no
// distinct sync-index configuration.
type ConnPair struct {
	Data Conn
	Sip  Conn
}

// ConnFactory constructs connection handles. The default implementation
// is restconn.Factory; tests substitute their own.
type ConnFactory func(remoteID string, endpoints []string, key auth.AccessKey, zoneGroupID, apiName string) Conn
