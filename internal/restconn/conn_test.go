package restconn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonegate-io/zonegate/internal/auth"
)

func TestConnEndpointRoundRobin(t *testing.T) {
	c := New("zone-b", []string{"http://b1:8080", "http://b2:8080"}, auth.AccessKey{ID: "AK1"}, "zg-1", "us")

	first, err := c.Endpoint()
	require.NoError(t, err)
	second, err := c.Endpoint()
	require.NoError(t, err)
	third, err := c.Endpoint()
	require.NoError(t, err)

	assert.Equal(t, "http://b1:8080", first)
	assert.Equal(t, "http://b2:8080", second)
	assert.Equal(t, "http://b1:8080", third)
}

func TestConnEndpointEmptyList(t *testing.T) {
	c := New("zone-b", nil, auth.AccessKey{}, "zg-1", "")

	_, err := c.Endpoint()
	assert.ErrorIs(t, err, ErrNoEndpoints)
}

func TestConnEndpointAfterClose(t *testing.T) {
	c := New("zone-b", []string{"http://b1:8080"}, auth.AccessKey{}, "zg-1", "")

	require.NoError(t, c.Close())
	_, err := c.Endpoint()
	assert.ErrorIs(t, err, ErrClosed)

	// Close is idempotent.
	assert.NoError(t, c.Close())
}

func TestConnMetadata(t *testing.T) {
	key := auth.AccessKey{ID: "AK1", Secret: "s1"}
	c := New("zone-b", []string{"http://b1:8080"}, key, "zg-1", "us")

	assert.Equal(t, "zone-b", c.RemoteID())
	assert.Equal(t, key, c.AccessKey())
	assert.Equal(t, "zg-1", c.ZoneGroupID())
	assert.Equal(t, "us", c.APIName())
	assert.NotEmpty(t, c.InstanceID())
}

func TestConnCopiesEndpoints(t *testing.T) {
	endpoints := []string{"http://b1:8080"}
	c := New("zone-b", endpoints, auth.AccessKey{}, "zg-1", "")

	endpoints[0] = "http://mutated:1"
	got, err := c.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "http://b1:8080", got)

	out := c.Endpoints()
	out[0] = "http://mutated:2"
	got, err = c.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "http://b1:8080", got)
}

func TestConnInstanceIDsAreUnique(t *testing.T) {
	a := New("zone-b", nil, auth.AccessKey{}, "zg-1", "")
	b := New("zone-b", nil, auth.AccessKey{}, "zg-1", "")

	assert.NotEqual(t, a.InstanceID(), b.InstanceID())
}
