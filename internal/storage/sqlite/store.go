// Package sqlite provides a SQLite-backed ledger storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/meeplelog/meeplelog/internal/campaign/event"
	"github.com/meeplelog/meeplelog/internal/campaign/key"
	"github.com/meeplelog/meeplelog/internal/campaign/session"
	sqlitemigrate "github.com/meeplelog/meeplelog/internal/platform/storage/sqlitemigrate"
	"github.com/meeplelog/meeplelog/internal/storage"
	"github.com/meeplelog/meeplelog/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists ledger state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite ledger store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateKey inserts one key definition.
func (s *Store) CreateKey(ctx context.Context, definition key.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(definition.ID) == "" {
		return fmt.Errorf("key id is required")
	}

	shareable := 0
	if definition.Shareable {
		shareable = 1
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO keys (
		   id, name, value_type, scope, scoped_to_field_id,
		   owner_id, shareable, origin_key_id, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		definition.ID,
		definition.Name,
		string(definition.ValueType),
		string(definition.Scope),
		definition.ScopedToFieldID,
		definition.OwnerID,
		shareable,
		definition.OriginKeyID,
		toMillis(definition.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create key: %w", err)
	}
	return nil
}

// GetKey returns one key definition by ID.
func (s *Store) GetKey(ctx context.Context, id string) (key.Definition, error) {
	if err := ctx.Err(); err != nil {
		return key.Definition{}, err
	}
	if s == nil || s.sqlDB == nil {
		return key.Definition{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return key.Definition{}, fmt.Errorf("key id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, value_type, scope, scoped_to_field_id,
		        owner_id, shareable, origin_key_id, created_at
		   FROM keys
		  WHERE id = ?`,
		id,
	)
	definition, err := scanKey(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return key.Definition{}, storage.ErrNotFound
		}
		return key.Definition{}, fmt.Errorf("get key: %w", err)
	}
	return definition, nil
}

// ListKeys returns all key definitions for one owner, oldest first.
func (s *Store) ListKeys(ctx context.Context, ownerID string) ([]key.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, value_type, scope, scoped_to_field_id,
		        owner_id, shareable, origin_key_id, created_at
		   FROM keys
		  WHERE owner_id = ?
		  ORDER BY created_at ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var definitions []key.Definition
	for rows.Next() {
		definition, err := scanKey(rows)
		if err != nil {
			return nil, fmt.Errorf("list keys: %w", err)
		}
		definitions = append(definitions, definition)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return definitions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKey(row rowScanner) (key.Definition, error) {
	var definition key.Definition
	var valueType string
	var scope string
	var shareable int
	var createdAt int64
	if err := row.Scan(
		&definition.ID,
		&definition.Name,
		&valueType,
		&scope,
		&definition.ScopedToFieldID,
		&definition.OwnerID,
		&shareable,
		&definition.OriginKeyID,
		&createdAt,
	); err != nil {
		return key.Definition{}, err
	}
	definition.ValueType = key.ValueType(valueType)
	definition.Scope = key.Scope(scope)
	definition.Shareable = shareable != 0
	definition.CreatedAt = fromMillis(createdAt)
	return definition, nil
}

// CreateSession inserts one play session record.
func (s *Store) CreateSession(ctx context.Context, sess session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(sess.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(sess.CampaignID) == "" {
		return fmt.Errorf("campaign id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (id, campaign_id, played_at, created_at)
		 VALUES (?, ?, ?, ?)`,
		sess.ID,
		sess.CampaignID,
		toMillis(sess.PlayedAt),
		toMillis(sess.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns one session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}
	if s == nil || s.sqlDB == nil {
		return session.Session{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return session.Session{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, played_at, created_at
		   FROM sessions
		  WHERE id = ?`,
		id,
	)
	var sess session.Session
	var playedAt int64
	var createdAt int64
	if err := row.Scan(&sess.ID, &sess.CampaignID, &playedAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, storage.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}
	sess.PlayedAt = fromMillis(playedAt)
	sess.CreatedAt = fromMillis(createdAt)
	return sess, nil
}

// ListSessions returns all sessions for one campaign in chronological order.
func (s *Store) ListSessions(ctx context.Context, campaignID string) ([]session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, fmt.Errorf("campaign id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, played_at, created_at
		   FROM sessions
		  WHERE campaign_id = ?
		  ORDER BY played_at ASC, created_at ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var sess session.Session
		var playedAt int64
		var createdAt int64
		if err := rows.Scan(&sess.ID, &sess.CampaignID, &playedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		sess.PlayedAt = fromMillis(playedAt)
		sess.CreatedAt = fromMillis(createdAt)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// AppendEvent inserts one event into the journal. Events are never updated
// or deleted afterwards.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(evt.CampaignID) == "" {
		return fmt.Errorf("campaign id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO events (
		   id, campaign_id, session_id, key_id, key_name, value_type,
		   verb, payload_json, player_id, sub_scope, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.ID,
		evt.CampaignID,
		evt.SessionID,
		evt.KeyID,
		evt.KeyName,
		string(evt.ValueType),
		evt.Verb,
		evt.PayloadJSON,
		evt.PlayerID,
		evt.SubScope,
		toMillis(evt.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents returns all events for one campaign in journal order.
func (s *Store) ListEvents(ctx context.Context, campaignID string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, fmt.Errorf("campaign id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, session_id, key_id, key_name, value_type,
		        verb, payload_json, player_id, sub_scope, created_at
		   FROM events
		  WHERE campaign_id = ?
		  ORDER BY created_at ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var evt event.Event
		var valueType string
		var createdAt int64
		if err := rows.Scan(
			&evt.ID,
			&evt.CampaignID,
			&evt.SessionID,
			&evt.KeyID,
			&evt.KeyName,
			&valueType,
			&evt.Verb,
			&evt.PayloadJSON,
			&evt.PlayerID,
			&evt.SubScope,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		evt.ValueType = key.ValueType(valueType)
		evt.CreatedAt = fromMillis(createdAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// LatestEventID returns the last event ID in journal order for one campaign.
func (s *Store) LatestEventID(ctx context.Context, campaignID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return "", fmt.Errorf("campaign id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id
		   FROM events
		  WHERE campaign_id = ?
		  ORDER BY created_at DESC, id DESC
		  LIMIT 1`,
		campaignID,
	)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("latest event id: %w", err)
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.KeyStore = (*Store)(nil)
var _ storage.SessionStore = (*Store)(nil)
var _ storage.EventStore = (*Store)(nil)
