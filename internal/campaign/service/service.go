// Package service coordinates ledger admission and projection on top of
// the storage layer.
//
// Admission is the single gate into the journal: AppendEvent validates the
// verb and payload against the key's value type exactly once, so any event
// that reaches storage is well formed and replay never re-validates.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meeplelog/meeplelog/internal/campaign/event"
	"github.com/meeplelog/meeplelog/internal/campaign/key"
	"github.com/meeplelog/meeplelog/internal/campaign/projection"
	"github.com/meeplelog/meeplelog/internal/campaign/session"
	"github.com/meeplelog/meeplelog/internal/campaign/verb"
	apperrors "github.com/meeplelog/meeplelog/internal/errors"
	"github.com/meeplelog/meeplelog/internal/platform/id"
	"github.com/meeplelog/meeplelog/internal/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("meeplelog/ledger")

var (
	// ErrEmptySessionID indicates an event without a session reference.
	ErrEmptySessionID = apperrors.New(apperrors.CodeEventEmptySessionID, "session id is required")
	// ErrEmptyKeyID indicates an event without a key reference.
	ErrEmptyKeyID = apperrors.New(apperrors.CodeEventEmptyKeyID, "key id is required")
	// ErrUnknownVerb indicates a verb outside the catalog.
	ErrUnknownVerb = apperrors.New(apperrors.CodeEventUnknownVerb, "verb is not recognized")
	// ErrSubScopeWithoutPlayer indicates a sub-scope on an event with no player.
	ErrSubScopeWithoutPlayer = apperrors.New(apperrors.CodeEventSubScopeWithoutPlayer, "a sub-scope requires a player scope")
	// ErrPlayerRequired indicates a player-scoped key mutated without a player.
	ErrPlayerRequired = apperrors.New(apperrors.CodeEventPlayerRequired, "a player is required for player-scoped keys")
	// ErrPlayerOnGlobalKey indicates a player on a mutation of a global key.
	ErrPlayerOnGlobalKey = apperrors.New(apperrors.CodeEventPlayerOnGlobalKey, "global keys cannot be scoped to a player")
	// ErrSessionMismatch indicates a session that belongs to another campaign.
	ErrSessionMismatch = apperrors.New(apperrors.CodeEventSessionMismatch, "session does not belong to the campaign")
	// ErrNotFound indicates a referenced record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAlreadyExists indicates a duplicate record.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "record already exists")
)

// Stores groups the persistence contracts the ledger depends on.
type Stores struct {
	Keys     storage.KeyStore
	Sessions storage.SessionStore
	Events   storage.EventStore
}

// SnapshotCache memoizes computed projections keyed by campaign and the
// last appended event. Implementations are advisory: a failing cache never
// fails a projection.
type SnapshotCache interface {
	Get(ctx context.Context, campaignID, lastEventID string) (map[string][]projection.Section, error)
	Put(ctx context.Context, campaignID, lastEventID string, snapshots map[string][]projection.Section) error
}

// Config holds the ledger's dependencies.
type Config struct {
	Stores Stores
	// Cache is optional. When nil, every projection replays the journal.
	Cache SnapshotCache
	// Now and NewID default to the wall clock and random IDs; tests
	// inject deterministic replacements.
	Now   func() time.Time
	NewID func() (string, error)
}

// Ledger is the campaign ledger service.
type Ledger struct {
	stores Stores
	cache  SnapshotCache
	now    func() time.Time
	newID  func() (string, error)
}

// New creates a ledger service.
func New(cfg Config) (*Ledger, error) {
	if cfg.Stores.Keys == nil {
		return nil, fmt.Errorf("key store is required")
	}
	if cfg.Stores.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Stores.Events == nil {
		return nil, fmt.Errorf("event store is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewID
	}
	return &Ledger{
		stores: cfg.Stores,
		cache:  cfg.Cache,
		now:    now,
		newID:  newID,
	}, nil
}

// CreateKey defines a new key and persists it.
func (l *Ledger) CreateKey(ctx context.Context, input key.CreateInput) (key.Definition, error) {
	definition, err := key.Create(input, l.now, l.newID)
	if err != nil {
		return key.Definition{}, err
	}
	if err := l.stores.Keys.CreateKey(ctx, definition); err != nil {
		return key.Definition{}, mapStorageError(err)
	}
	return definition, nil
}

// CopyKey adopts another owner's shareable key definition.
func (l *Ledger) CopyKey(ctx context.Context, originKeyID, ownerID string) (key.Definition, error) {
	origin, err := l.stores.Keys.GetKey(ctx, originKeyID)
	if err != nil {
		return key.Definition{}, mapStorageError(err)
	}
	copied, err := key.Copy(origin, ownerID, l.now, l.newID)
	if err != nil {
		return key.Definition{}, err
	}
	if err := l.stores.Keys.CreateKey(ctx, copied); err != nil {
		return key.Definition{}, mapStorageError(err)
	}
	return copied, nil
}

// CreateSession records a new play session.
func (l *Ledger) CreateSession(ctx context.Context, input session.CreateInput) (session.Session, error) {
	sess, err := session.Create(input, l.now, l.newID)
	if err != nil {
		return session.Session{}, err
	}
	if err := l.stores.Sessions.CreateSession(ctx, sess); err != nil {
		return session.Session{}, mapStorageError(err)
	}
	return sess, nil
}

// AppendEventInput describes one requested ledger mutation.
type AppendEventInput struct {
	CampaignID string
	SessionID  string
	KeyID      string
	Verb       string
	Payload    json.RawMessage
	PlayerID   string
	SubScope   string
}

// AppendEvent validates a mutation against its key's contract and appends
// it to the journal.
func (l *Ledger) AppendEvent(ctx context.Context, input AppendEventInput) (event.Event, error) {
	ctx, span := tracer.Start(ctx, "ledger.AppendEvent", trace.WithAttributes(
		attribute.String("ledger.verb", input.Verb),
	))
	defer span.End()

	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		return event.Event{}, ErrEmptySessionID
	}
	keyID := strings.TrimSpace(input.KeyID)
	if keyID == "" {
		return event.Event{}, ErrEmptyKeyID
	}

	sess, err := l.stores.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return event.Event{}, mapStorageError(err)
	}
	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		campaignID = sess.CampaignID
	} else if campaignID != sess.CampaignID {
		return event.Event{}, ErrSessionMismatch
	}

	definition, err := l.stores.Keys.GetKey(ctx, keyID)
	if err != nil {
		return event.Event{}, mapStorageError(err)
	}

	playerID := strings.TrimSpace(input.PlayerID)
	subScope := strings.TrimSpace(input.SubScope)
	switch definition.Scope {
	case key.ScopePlayer:
		if playerID == "" {
			return event.Event{}, ErrPlayerRequired
		}
	case key.ScopeGlobal:
		if playerID != "" {
			return event.Event{}, ErrPlayerOnGlobalKey
		}
	}
	if subScope != "" && playerID == "" {
		return event.Event{}, ErrSubScopeWithoutPlayer
	}

	v, ok := verb.Parse(input.Verb)
	if !ok {
		return event.Event{}, ErrUnknownVerb.WithMetadata(map[string]string{
			"Verb": input.Verb,
		})
	}
	if !verb.AllowedFor(v, definition.ValueType) {
		return event.Event{}, verb.ErrVerbNotAllowed.WithMetadata(map[string]string{
			"Verb":      string(v),
			"ValueType": string(definition.ValueType),
		})
	}
	if _, err := verb.DecodePayload(definition.ValueType, v, input.Payload); err != nil {
		return event.Event{}, err
	}

	eventID, err := l.newID()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	evt := event.Event{
		ID:          eventID,
		CampaignID:  campaignID,
		SessionID:   sess.ID,
		KeyID:       definition.ID,
		KeyName:     definition.Name,
		ValueType:   definition.ValueType,
		Verb:        string(v),
		PayloadJSON: append([]byte(nil), input.Payload...),
		PlayerID:    playerID,
		SubScope:    subScope,
		CreatedAt:   l.now().UTC(),
	}
	if err := l.stores.Events.AppendEvent(ctx, evt); err != nil {
		return event.Event{}, mapStorageError(err)
	}
	return evt, nil
}

// ProjectCampaign replays the campaign's journal and returns cumulative
// snapshots keyed by session ID.
func (l *Ledger) ProjectCampaign(ctx context.Context, campaignID string) (map[string][]projection.Section, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, session.ErrEmptyCampaignID
	}
	ctx, span := tracer.Start(ctx, "ledger.ProjectCampaign", trace.WithAttributes(
		attribute.String("ledger.campaign_id", campaignID),
	))
	defer span.End()

	sessions, err := l.stores.Sessions.ListSessions(ctx, campaignID)
	if err != nil {
		return nil, mapStorageError(err)
	}

	lastEventID, err := l.stores.Events.LatestEventID(ctx, campaignID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, mapStorageError(err)
	}

	if l.cache != nil && lastEventID != "" {
		if snapshots, err := l.cache.Get(ctx, campaignID, lastEventID); err == nil {
			return snapshots, nil
		}
	}

	events, err := l.stores.Events.ListEvents(ctx, campaignID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	snapshots := projection.Project(sessions, events)

	if l.cache != nil && lastEventID != "" {
		// Best effort; a failed write only costs the next replay.
		_ = l.cache.Put(ctx, campaignID, lastEventID, snapshots)
	}
	return snapshots, nil
}

func mapStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return ErrAlreadyExists
	default:
		return err
	}
}
