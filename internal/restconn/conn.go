// Package restconn provides the default connection handle handed out by
// the remote directory. A handle is pure metadata: the peer's identity,
// endpoint list, and access key. Opening sockets, signing, and retrying
// belong to the transport layer that consumes the handle.
package restconn

import (
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zonegate-io/zonegate/internal/auth"
	"github.com/zonegate-io/zonegate/internal/remote"
)

// ErrNoEndpoints is returned when a handle has no endpoints to offer.
var ErrNoEndpoints = errors.New("restconn: no endpoints configured")

// ErrClosed is returned when a closed handle is asked for an endpoint.
var ErrClosed = errors.New("restconn: connection closed")

// Conn identifies one remote peer and the parameters requests to it
// should use.
type Conn struct {
	remoteID    string
	endpoints   []string
	key         auth.AccessKey
	zoneGroupID string
	apiName     string
	instanceID  string

	next   atomic.Uint64
	closed atomic.Bool
}

// New creates a handle for the given peer. The endpoint list is copied;
// instanceID is generated for log correlation.
func New(remoteID string, endpoints []string, key auth.AccessKey, zoneGroupID, apiName string) *Conn {
	eps := make([]string, len(endpoints))
	copy(eps, endpoints)

	return &Conn{
		remoteID:    remoteID,
		endpoints:   eps,
		key:         key,
		zoneGroupID: zoneGroupID,
		apiName:     apiName,
		instanceID:  uuid.NewString(),
	}
}

// Factory adapts New to the remote.ConnFactory signature.
func Factory(remoteID string, endpoints []string, key auth.AccessKey, zoneGroupID, apiName string) remote.Conn {
	return New(remoteID, endpoints, key, zoneGroupID, apiName)
}

// RemoteID returns the peer identity the handle was built for.
func (c *Conn) RemoteID() string {
	return c.remoteID
}

// Endpoint returns the next endpoint in round-robin order.
func (c *Conn) Endpoint() (string, error) {
	if c.closed.Load() {
		return "", ErrClosed
	}
	if len(c.endpoints) == 0 {
		return "", ErrNoEndpoints
	}
	n := c.next.Add(1) - 1
	return c.endpoints[n%uint64(len(c.endpoints))], nil
}

// Endpoints returns a copy of the full endpoint list.
func (c *Conn) Endpoints() []string {
	out := make([]string, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

// AccessKey returns the credentials requests to this peer authenticate with.
func (c *Conn) AccessKey() auth.AccessKey {
	return c.key
}

// ZoneGroupID returns the local zone group id attached as peer metadata.
func (c *Conn) ZoneGroupID() string {
	return c.zoneGroupID
}

// APIName returns the peer zone group's API name, if it was resolvable.
func (c *Conn) APIName() string {
	return c.apiName
}

// InstanceID returns the unique id of this handle instance.
func (c *Conn) InstanceID() string {
	return c.instanceID
}

// Close marks the handle released. Safe to call more than once.
func (c *Conn) Close() error {
	c.closed.Store(true)
	return nil
}

var _ remote.Conn = (*Conn)(nil)
