// Package session owns the client's belief about who is currently
// authenticated and with what credential. It persists that belief in a
// pluggable per-instance storage, schedules automatic logout at the token's
// embedded expiry, and broadcasts login-state changes to any number of
// observers with replay-latest semantics.
//
// The store is the single writer of the persisted session fields; readers
// (route guard, navigation, views) go through its accessors and never touch
// storage directly.
package session
