// Package storage persists per-group server bindings as flat text files.
//
// Each group owns one file named <group>.txt inside the store directory.
// A record is a single whitespace-delimited line: "serverKey accountId [port]".
// The format is shared with external tooling, so loading is tolerant:
// lines with fewer than two tokens are dropped silently.
package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/scpsl-tools/slbind/internal/models"
)

// AddResult reports the outcome of an Add call.
type AddResult int

// Add outcomes.
const (
	Added AddResult = iota
	AlreadyExists
)

// RemoveResult reports the outcome of a Remove call.
type RemoveResult int

// Remove outcomes.
const (
	Removed RemoveResult = iota
	NotFound
)

// Store manages binding files for all groups.
// Mutations on one group are serialized with a per-group mutex so two
// admins racing an add and a remove cannot lose each other's write;
// different groups never contend.
type Store struct {
	locks map[string]*sync.Mutex
	dir   string
	mu    sync.Mutex
}

// New creates the store directory if needed and returns a Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bindings dir: %w", err)
	}

	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Add appends a binding for the group unless a record with the same
// (serverKey, accountID) identity already exists. The port does not
// participate in the identity check.
func (s *Store) Add(group, key, accountID, port string) (AddResult, error) {
	lock := s.groupLock(group)
	lock.Lock()
	defer lock.Unlock()

	bindings, err := s.load(group)
	if err != nil {
		return Added, err
	}

	for _, b := range bindings {
		if b.Same(key, accountID) {
			return AlreadyExists, nil
		}
	}

	line := key + " " + accountID
	if port != "" {
		line += " " + port
	}

	f, err := os.OpenFile(s.path(group), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Added, fmt.Errorf("open bindings file: %w", err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return Added, fmt.Errorf("append binding: %w", err)
	}

	return Added, f.Close()
}

// Remove deletes every record matching the (serverKey, accountID) identity,
// regardless of the stored port. The surviving records are rewritten
// atomically via a temp file rename.
func (s *Store) Remove(group, key, accountID string) (RemoveResult, error) {
	lock := s.groupLock(group)
	lock.Lock()
	defer lock.Unlock()

	bindings, err := s.load(group)
	if err != nil {
		return NotFound, err
	}

	kept := bindings[:0]
	for _, b := range bindings {
		if !b.Same(key, accountID) {
			kept = append(kept, b)
		}
	}

	if len(kept) == len(bindings) {
		return NotFound, nil
	}

	if err := s.rewrite(group, kept); err != nil {
		return Removed, err
	}

	return Removed, nil
}

// Check reports whether the group has a record with the given identity.
func (s *Store) Check(group, key, accountID string) (bool, error) {
	lock := s.groupLock(group)
	lock.Lock()
	defer lock.Unlock()

	bindings, err := s.load(group)
	if err != nil {
		return false, err
	}

	for _, b := range bindings {
		if b.Same(key, accountID) {
			return true, nil
		}
	}

	return false, nil
}

// List returns the group's bindings in file (insertion) order.
// A group without a file yields an empty list, not an error.
// Duplicates produced by manual file edits are returned as-is.
func (s *Store) List(group string) ([]models.Binding, error) {
	lock := s.groupLock(group)
	lock.Lock()
	defer lock.Unlock()

	return s.load(group)
}

// Bound reports whether the group has a binding file at all.
// The query surface distinguishes "never bound" from "bound but empty".
func (s *Store) Bound(group string) bool {
	_, err := os.Stat(s.path(group))
	return err == nil
}

// path maps a group ID to its file. The ID is normalized through
// filepath.Base so a hostile value cannot escape the store directory.
func (s *Store) path(group string) string {
	return filepath.Join(s.dir, filepath.Base(group)+".txt")
}

// groupLock returns the mutex owned by the given group, creating it on
// first use.
func (s *Store) groupLock(group string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[group]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[group] = lock
	}

	return lock
}

// load reads all well-formed records for the group.
func (s *Store) load(group string) ([]models.Binding, error) {
	f, err := os.Open(s.path(group))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open bindings file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var bindings []models.Binding
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		b := models.Binding{ServerKey: parts[0], AccountID: parts[1]}
		if len(parts) >= 3 {
			b.Port = parts[2]
		}
		bindings = append(bindings, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}

	return bindings, nil
}

// rewrite replaces the group's file with the given records using a
// temp file + rename so readers never observe a half-written file.
func (s *Store) rewrite(group string, bindings []models.Binding) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(group)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp bindings file: %w", err)
	}

	for _, b := range bindings {
		line := b.ServerKey + " " + b.AccountID
		if b.Port != "" {
			line += " " + b.Port
		}
		if _, err := tmp.WriteString(line + "\n"); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("write temp bindings file: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp bindings file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(group)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace bindings file: %w", err)
	}

	return nil
}
