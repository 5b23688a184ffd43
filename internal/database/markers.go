package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
)

// MarkerStore records which invoice groups have been invoiced. Group IDs
// are stable across reconciliation runs, so a marker written today still
// matches the same group tomorrow.
type MarkerStore interface {
	IsMarked(ctx context.Context, groupID string) (bool, error)
	Mark(ctx context.Context, groupID string) error
	Unmark(ctx context.Context, groupID string) error
	Marked(ctx context.Context) ([]string, error)
}

type sqlMarkerStore struct {
	conn *sqlx.DB
}

func (m *sqlMarkerStore) IsMarked(ctx context.Context, groupID string) (bool, error) {
	var n int
	err := m.conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM invoiced_markers WHERE group_id = ?`, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to check invoiced marker: %w", err)
	}
	return n > 0, nil
}

func (m *sqlMarkerStore) Mark(ctx context.Context, groupID string) error {
	_, err := m.conn.ExecContext(ctx, `
		INSERT INTO invoiced_markers (group_id, marked_at) VALUES (?, ?)
		ON CONFLICT(group_id) DO NOTHING`, groupID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark group invoiced: %w", err)
	}
	return nil
}

func (m *sqlMarkerStore) Unmark(ctx context.Context, groupID string) error {
	_, err := m.conn.ExecContext(ctx, `DELETE FROM invoiced_markers WHERE group_id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to unmark group: %w", err)
	}
	return nil
}

func (m *sqlMarkerStore) Marked(ctx context.Context) ([]string, error) {
	var ids []string
	err := m.conn.SelectContext(ctx, &ids, `SELECT group_id FROM invoiced_markers ORDER BY group_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoiced markers: %w", err)
	}
	return ids, nil
}

// RemoteMarkerStore is a marker store backed by a shared libsql database,
// letting several machines agree on what has already been invoiced.
type RemoteMarkerStore struct {
	conn *sqlx.DB
	sqlMarkerStore
}

func OpenRemoteMarkerStore(cfg *config.Config) (*RemoteMarkerStore, error) {
	conn, err := sqlx.Open(cfg.RemoteMarkersDriver, cfg.RemoteMarkersURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote marker store: %w", err)
	}
	if _, err := conn.Exec(markerSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply remote marker schema: %w", err)
	}
	return &RemoteMarkerStore{conn: conn, sqlMarkerStore: sqlMarkerStore{conn: conn}}, nil
}

func (r *RemoteMarkerStore) Close() error {
	return r.conn.Close()
}

// UnionMarkerStore layers marker stores: a group counts as invoiced if any
// member says so, and writes go to every member so local and remote views
// stay consistent.
type UnionMarkerStore struct {
	stores []MarkerStore
}

func NewUnionMarkerStore(stores ...MarkerStore) *UnionMarkerStore {
	return &UnionMarkerStore{stores: stores}
}

func (u *UnionMarkerStore) IsMarked(ctx context.Context, groupID string) (bool, error) {
	for _, s := range u.stores {
		marked, err := s.IsMarked(ctx, groupID)
		if err != nil {
			return false, err
		}
		if marked {
			return true, nil
		}
	}
	return false, nil
}

func (u *UnionMarkerStore) Mark(ctx context.Context, groupID string) error {
	for _, s := range u.stores {
		if err := s.Mark(ctx, groupID); err != nil {
			return err
		}
	}
	return nil
}

func (u *UnionMarkerStore) Unmark(ctx context.Context, groupID string) error {
	for _, s := range u.stores {
		if err := s.Unmark(ctx, groupID); err != nil {
			return err
		}
	}
	return nil
}

func (u *UnionMarkerStore) Marked(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range u.stores {
		ids, err := s.Marked(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}
