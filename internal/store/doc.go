// Package store persists curated locations, award records, users, and
// personal lists in SQLite. It is the single writer for the data directory
// and the invalidation point for the list cache: every mutation drops the
// cached lists it affects before returning.
//
// Schema management uses a versioned embedded schema. If the on-disk version
// does not match, Open fails; since records are importable, users clear the
// database rather than migrate. To change the schema, update schema.sql and
// bump schemaVersion.
package store
