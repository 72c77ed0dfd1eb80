// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"time"

	"github.com/toeirei/sentinel/internal/model"
	"github.com/uptrace/bun"
)

// RevisionModel maps the `revisions` table for Bun queries.
type RevisionModel struct {
	bun.BaseModel `bun:"table:revisions"`
	ID            int       `bun:"id,pk,autoincrement"`
	Path          string    `bun:"path"`
	TakenAt       time.Time `bun:"taken_at"`
	Hash          string    `bun:"hash"`
	Content       string    `bun:"content"`
	Note          string    `bun:"note"`
}

// AuditLogModel maps the `audit_log` table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

// BunStore is the bun-backed implementation of the Store interface. It
// works across the SQLite, PostgreSQL, and MySQL dialects.
type BunStore struct {
	db *bun.DB
}

// ensureSchema creates the tables on first run. Idempotent.
func (s *BunStore) ensureSchema(ctx context.Context) error {
	for _, m := range []interface{}{(*RevisionModel)(nil), (*AuditLogModel)(nil)} {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SaveRevision records a snapshot and returns its ID.
func (s *BunStore) SaveRevision(rev model.Revision) (int, error) {
	ctx := context.Background()
	m := &RevisionModel{
		Path:    rev.Path,
		TakenAt: rev.TakenAt,
		Hash:    rev.Hash,
		Content: rev.Content,
		Note:    rev.Note,
	}
	if m.TakenAt.IsZero() {
		m.TakenAt = time.Now().UTC()
	}
	if m.Hash == "" {
		m.Hash = model.HashContent(m.Content)
	}
	// Bun fills the autoincrement ID on the model after the insert,
	// using RETURNING or LastInsertId depending on the dialect.
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return 0, err
	}
	return m.ID, nil
}

// GetRevisions lists snapshots for a file, newest first.
func (s *BunStore) GetRevisions(path string) ([]model.Revision, error) {
	ctx := context.Background()
	var rows []RevisionModel
	err := s.db.NewSelect().Model(&rows).
		Where("path = ?", path).
		Order("taken_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Revision, len(rows))
	for i, r := range rows {
		out[i] = revisionModelToModel(r)
	}
	return out, nil
}

// GetRevision fetches one snapshot by ID.
func (s *BunStore) GetRevision(id int) (*model.Revision, error) {
	ctx := context.Background()
	var r RevisionModel
	err := s.db.NewSelect().Model(&r).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, mapNoRows(err)
	}
	rev := revisionModelToModel(r)
	return &rev, nil
}

// LogAction appends to the audit log.
func (s *BunStore) LogAction(action, details string) error {
	ctx := context.Background()
	_, err := s.db.NewInsert().Model(&AuditLogModel{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
	}).Exec(ctx)
	return err
}

// GetAuditLog lists audit entries, newest first.
func (s *BunStore) GetAuditLog() ([]model.AuditEntry, error) {
	ctx := context.Background()
	var rows []AuditLogModel
	err := s.db.NewSelect().Model(&rows).Order("timestamp DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.AuditEntry, len(rows))
	for i, r := range rows {
		out[i] = model.AuditEntry{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Action:    r.Action,
			Details:   r.Details,
		}
	}
	return out, nil
}

// Close releases the underlying connection.
func (s *BunStore) Close() error {
	return s.db.Close()
}

func revisionModelToModel(r RevisionModel) model.Revision {
	return model.Revision{
		ID:      r.ID,
		Path:    r.Path,
		TakenAt: r.TakenAt,
		Hash:    r.Hash,
		Content: r.Content,
		Note:    r.Note,
	}
}
