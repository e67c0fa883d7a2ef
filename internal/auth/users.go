package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// UserRecord is a user identity with its access keys. Keys preserves the
// order keys were added in; callers that need "a" key take the first one.
type UserRecord struct {
	UID  string
	Keys []AccessKey
}

// UserStore looks up users by access-key id or by identity. The boolean
// result distinguishes "not found" from a store failure.
type UserStore interface {
	UserByAccessKey(id string) (UserRecord, bool, error)
	UserByID(uid string) (UserRecord, bool, error)
}

// StaticUserStore is an in-memory UserStore populated from configuration.
type StaticUserStore struct {
	mu    sync.RWMutex
	byUID map[string]UserRecord
	byKey map[string]string // access-key id -> uid
}

// NewStaticUserStore creates an empty store.
func NewStaticUserStore() *StaticUserStore {
	return &StaticUserStore{
		byUID: make(map[string]UserRecord),
		byKey: make(map[string]string),
	}
}

// Add registers a user. Keys are appended if the uid already exists.
// An access-key id already owned by a different user is an error.
func (s *StaticUserStore) Add(user UserRecord) error {
	if user.UID == "" {
		return fmt.Errorf("auth: user with empty uid")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range user.Keys {
		if owner, ok := s.byKey[key.ID]; ok && owner != user.UID {
			return fmt.Errorf("auth: access key %q already owned by user %q", key.ID, owner)
		}
	}

	record := s.byUID[user.UID]
	record.UID = user.UID
	record.Keys = append(record.Keys, user.Keys...)
	s.byUID[user.UID] = record

	for _, key := range user.Keys {
		s.byKey[key.ID] = user.UID
	}

	return nil
}

// LoadFromFile loads users from a file.
// Format: one "uid:accessKeyId:secret" triple per line.
// Lines starting with # are ignored as comments.
// Empty lines are ignored.
func (s *StaticUserStore) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			return fmt.Errorf("auth: %s:%d: expected uid:accessKeyId:secret", path, lineNum)
		}

		uid := strings.TrimSpace(parts[0])
		keyID := strings.TrimSpace(parts[1])
		secret := parts[2] // Don't trim secrets - spaces may be intentional

		if uid == "" || keyID == "" {
			return fmt.Errorf("auth: %s:%d: empty uid or access key id", path, lineNum)
		}

		if err := s.Add(UserRecord{UID: uid, Keys: []AccessKey{{ID: keyID, Secret: secret}}}); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
	}

	return scanner.Err()
}

// UserByAccessKey returns the user owning the given access-key id.
func (s *StaticUserStore) UserByAccessKey(id string) (UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, ok := s.byKey[id]
	if !ok {
		return UserRecord{}, false, nil
	}
	return s.byUID[uid], true, nil
}

// UserByID returns the user with the given identity.
func (s *StaticUserStore) UserByID(uid string) (UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byUID[uid]
	if !ok {
		return UserRecord{}, false, nil
	}
	return record, true, nil
}

// Count returns the number of stored users.
func (s *StaticUserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUID)
}

var _ UserStore = (*StaticUserStore)(nil)
