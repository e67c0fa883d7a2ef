// Package auth holds access-key material and the credential references
// peer zone configurations use to name it.
package auth

// AccessKey is a single access-key id / secret pair.
type AccessKey struct {
	ID     string
	Secret string
}

// IsZero reports whether the key carries no material.
func (k AccessKey) IsZero() bool {
	return k.ID == "" && k.Secret == ""
}

// RefKind identifies which form a CredentialRef takes.
type RefKind int

const (
	// RefNone means no credential was configured.
	RefNone RefKind = iota
	// RefStaticKey is an explicit access-key id plus secret.
	RefStaticKey
	// RefKeyID is an access-key id whose owning user must be looked up.
	RefKeyID
	// RefUser is a user identity whose keys must be looked up.
	RefUser
)

// CredentialRef names the credential a peer connection should authenticate
// with. Exactly one of the three populated forms is present; the zero value
// means none was configured and the caller should fall back to its own
// system key.
type CredentialRef struct {
	kind RefKind
	key  AccessKey
	uid  string
}

// StaticKeyRef builds a reference carrying a complete key. Resolving it
// never touches the user store.
func StaticKeyRef(id, secret string) CredentialRef {
	return CredentialRef{kind: RefStaticKey, key: AccessKey{ID: id, Secret: secret}}
}

// KeyIDRef builds a reference carrying only an access-key id.
func KeyIDRef(id string) CredentialRef {
	return CredentialRef{kind: RefKeyID, key: AccessKey{ID: id}}
}

// UserRef builds a reference carrying a user identity.
func UserRef(uid string) CredentialRef {
	return CredentialRef{kind: RefUser, uid: uid}
}

// Kind returns the form of the reference.
func (r CredentialRef) Kind() RefKind {
	return r.kind
}

// Key returns the full key for a RefStaticKey reference.
func (r CredentialRef) Key() AccessKey {
	return r.key
}

// AccessKeyID returns the key id for RefStaticKey and RefKeyID references.
func (r CredentialRef) AccessKeyID() string {
	return r.key.ID
}

// UserID returns the user identity for a RefUser reference.
func (r CredentialRef) UserID() string {
	return r.uid
}
