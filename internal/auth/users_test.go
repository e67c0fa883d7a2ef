package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticUserStoreAddAndLookup(t *testing.T) {
	store := NewStaticUserStore()

	require.NoError(t, store.Add(UserRecord{
		UID: "replicator",
		Keys: []AccessKey{
			{ID: "AK1", Secret: "s1"},
			{ID: "AK2", Secret: "s2"},
		},
	}))

	byUID, found, err := store.UserByID("replicator")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "replicator", byUID.UID)
	require.Len(t, byUID.Keys, 2)
	assert.Equal(t, "AK1", byUID.Keys[0].ID)

	byKey, found, err := store.UserByAccessKey("AK2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "replicator", byKey.UID)
}

func TestStaticUserStoreUnknownLookups(t *testing.T) {
	store := NewStaticUserStore()

	_, found, err := store.UserByID("ghost")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.UserByAccessKey("AKX")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStaticUserStoreAppendsKeysForSameUser(t *testing.T) {
	store := NewStaticUserStore()

	require.NoError(t, store.Add(UserRecord{UID: "u1", Keys: []AccessKey{{ID: "AK1", Secret: "s1"}}}))
	require.NoError(t, store.Add(UserRecord{UID: "u1", Keys: []AccessKey{{ID: "AK2", Secret: "s2"}}}))

	user, found, err := store.UserByID("u1")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, user.Keys, 2)
	// Insertion order is preserved so "first key" stays stable.
	assert.Equal(t, "AK1", user.Keys[0].ID)
	assert.Equal(t, 1, store.Count())
}

func TestStaticUserStoreRejectsForeignKeyID(t *testing.T) {
	store := NewStaticUserStore()

	require.NoError(t, store.Add(UserRecord{UID: "u1", Keys: []AccessKey{{ID: "AK1", Secret: "s1"}}}))

	err := store.Add(UserRecord{UID: "u2", Keys: []AccessKey{{ID: "AK1", Secret: "other"}}})
	assert.Error(t, err)
}

func TestStaticUserStoreRejectsEmptyUID(t *testing.T) {
	store := NewStaticUserStore()
	assert.Error(t, store.Add(UserRecord{Keys: []AccessKey{{ID: "AK1"}}}))
}

func TestStaticUserStoreLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users")
	content := `# replication users
replicator:AK1:secret-one

replicator:AK2:secret two with spaces
audit:AK3:secret-three
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store := NewStaticUserStore()
	require.NoError(t, store.LoadFromFile(path))

	assert.Equal(t, 2, store.Count())

	user, found, err := store.UserByID("replicator")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, user.Keys, 2)
	assert.Equal(t, "secret two with spaces", user.Keys[1].Secret)

	_, found, err = store.UserByAccessKey("AK3")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStaticUserStoreLoadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users")
	require.NoError(t, os.WriteFile(path, []byte("replicator:AK1\n"), 0o600))

	store := NewStaticUserStore()
	assert.Error(t, store.LoadFromFile(path))
}
