// Package storage persists client state in a local SQLite database.
//
// The schema is a single key/value metadata table managed by goose
// migrations embedded in the binary. CredentialStore builds on it to keep
// the bearer token and the serialized user record, always written and
// removed together inside one transaction.
package storage
