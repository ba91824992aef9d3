// Package auth implements the administrator whitelist used by management commands.
package auth

import "github.com/cespare/xxhash/v2"

// Manager answers whether a user is allowed to manage group bindings.
// The whitelist is stored as a set of hashed user IDs so the raw IDs
// never sit in memory longer than startup.
type Manager struct {
	admins map[uint64]struct{}
}

// New builds a Manager from the configured list of admin user IDs.
func New(admins []string) *Manager {
	set := make(map[uint64]struct{}, len(admins))
	for _, id := range admins {
		set[xxhash.Sum64String(id)] = struct{}{}
	}

	return &Manager{admins: set}
}

// IsAdmin reports whether the given user ID is in the whitelist.
func (m *Manager) IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}

	_, ok := m.admins[xxhash.Sum64String(userID)]
	return ok
}
