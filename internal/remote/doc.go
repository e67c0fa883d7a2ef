// Package remote maintains the connection directory for peer zones.
//
// # Connection Directory
//
// The [Directory] owns one connection pair per peer zone: a data channel
// for bulk replication traffic and a sip channel for the sync-index
// protocol. Init builds the directory eagerly from the local zone group's
// membership: member zones first (these also receive change
// notifications), then foreign zones (connections only). The local zone
// itself never gets an entry.
//
// A zone with no distinct sync-index configuration shares one handle
// across both channels. The directory owns every handle it builds and
// releases each exactly once on Close, aliased or not.
//
// # Credential Resolution
//
// A channel's configured credential reference resolves in a fixed order:
// an explicit key pair is used directly, a bare access-key id or a user
// identity is resolved through the user store to that user's first key.
// Any failure along the way degrades to the local zone's system key; the
// directory never refuses to build a connection over credentials.
//
// # Failure Model
//
// No operation in this package aborts startup. A zone without usable
// endpoints is skipped with a warning, missing credentials fall back to
// the system key, and lookups for unknown zones (including the redirect
// zone) report absence rather than errors.
package remote
