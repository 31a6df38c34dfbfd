// Package event defines the immutable records of the campaign ledger.
//
// An event records one application of a verb and payload to a key,
// optionally scoped to a player and further narrowed by a custom-field
// value. Events are never mutated after creation; corrections are modeled
// as new compensating events, not as edits to history.
package event

import (
	"time"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
)

// Event is one immutable entry in a campaign's ledger.
type Event struct {
	// ID uniquely identifies the event and is the final tie-break when
	// ordering events that share a creation timestamp.
	ID string
	// CampaignID is the campaign whose ledger this event belongs to.
	CampaignID string
	// SessionID is the session during which the mutation was recorded.
	SessionID string
	// KeyID references the key definition being mutated.
	KeyID string
	// KeyName is the key's name at append time, denormalized so projection
	// needs no key lookups.
	KeyName string
	// ValueType is the key's value type at append time.
	ValueType key.ValueType
	// Verb is the raw wire verb string. It is parsed at projection time;
	// events with unparseable verbs are skipped by the projector.
	Verb string
	// PayloadJSON holds the verb payload in its wire shape.
	PayloadJSON []byte
	// PlayerID scopes the mutation to one player's bucket. Empty for
	// global mutations.
	PlayerID string
	// SubScope narrows the mutation within the player's bucket by a
	// custom-field value. Only meaningful when PlayerID is set.
	SubScope string
	// CreatedAt orders events within a session.
	CreatedAt time.Time
}
