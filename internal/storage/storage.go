// Package storage defines persistence contracts for campaign ledger state.
package storage

import (
	"context"
	"errors"

	"github.com/meeplelog/meeplelog/internal/campaign/event"
	"github.com/meeplelog/meeplelog/internal/campaign/key"
	"github.com/meeplelog/meeplelog/internal/campaign/session"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// KeyStore persists key definitions.
type KeyStore interface {
	CreateKey(ctx context.Context, definition key.Definition) error
	GetKey(ctx context.Context, id string) (key.Definition, error)
	ListKeys(ctx context.Context, ownerID string) ([]key.Definition, error)
}

// SessionStore persists play session records.
type SessionStore interface {
	CreateSession(ctx context.Context, sess session.Session) error
	GetSession(ctx context.Context, id string) (session.Session, error)
	ListSessions(ctx context.Context, campaignID string) ([]session.Session, error)
}

// EventStore persists the append-only campaign event journal.
type EventStore interface {
	AppendEvent(ctx context.Context, evt event.Event) error
	ListEvents(ctx context.Context, campaignID string) ([]event.Event, error)
	// LatestEventID returns the ID of the most recently appended event for
	// the campaign, or ErrNotFound when the journal is empty.
	LatestEventID(ctx context.Context, campaignID string) (string, error)
}
