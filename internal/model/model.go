// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures shared between the
// revision store and the user interfaces.
package model // import "github.com/toeirei/sentinel/internal/model"

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Revision is a point-in-time snapshot of an sshd_config file, recorded
// whenever Sentinel writes the file (or on explicit snapshot commands).
type Revision struct {
	ID      int       // The primary key for the revision.
	Path    string    // The configuration file this snapshot was taken from.
	TakenAt time.Time // When the snapshot was recorded.
	Hash    string    // SHA-256 of Content, hex-encoded.
	Content string    // The full file content at the time of the snapshot.
	Note    string    // Optional operator-supplied note ("before opening port 2222").
}

// HashContent computes the canonical content hash stored on a Revision.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// AuditEntry records one mutating action taken through Sentinel.
type AuditEntry struct {
	ID        int
	Timestamp time.Time
	Action    string // e.g. "SET_DIRECTIVE", "TOGGLE_DIRECTIVE", "SAVE".
	Details   string
}

// String returns a single-line rendering used by list output.
func (a AuditEntry) String() string {
	return a.Timestamp.Format(time.RFC3339) + " " + a.Action + " " + a.Details
}
