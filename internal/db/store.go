// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/toeirei/sentinel/internal/model"

// Store is the persistence interface for revision history and the audit
// log. All implementations are expected to be safe for sequential use by
// a single process; Sentinel is a single-user tool.
type Store interface {
	// SaveRevision records a snapshot and returns its ID.
	SaveRevision(rev model.Revision) (int, error)
	// GetRevisions lists snapshots for a file, newest first.
	GetRevisions(path string) ([]model.Revision, error)
	// GetRevision fetches one snapshot by ID, including content.
	GetRevision(id int) (*model.Revision, error)
	// LogAction appends to the audit log.
	LogAction(action, details string) error
	// GetAuditLog lists audit entries, newest first.
	GetAuditLog() ([]model.AuditEntry, error)
	// Close releases the underlying connection.
	Close() error
}

// Package-level helpers delegating to the initialized store. They keep
// call sites short in the UI layers.

// SaveRevision records a snapshot via the package store.
func SaveRevision(rev model.Revision) (int, error) {
	return store.SaveRevision(rev)
}

// GetRevisions lists snapshots for a file via the package store.
func GetRevisions(path string) ([]model.Revision, error) {
	return store.GetRevisions(path)
}

// GetRevision fetches one snapshot via the package store.
func GetRevision(id int) (*model.Revision, error) {
	return store.GetRevision(id)
}

// LogAction appends to the audit log via the package store.
func LogAction(action, details string) error {
	return store.LogAction(action, details)
}

// GetAuditLog lists audit entries via the package store.
func GetAuditLog() ([]model.AuditEntry, error) {
	return store.GetAuditLog()
}
