package projection

import (
	"sort"

	"github.com/meeplelog/meeplelog/internal/campaign/event"
	"github.com/meeplelog/meeplelog/internal/campaign/key"
	"github.com/meeplelog/meeplelog/internal/campaign/session"
	"github.com/meeplelog/meeplelog/internal/campaign/verb"
)

// accumulator is the mutable fold state of one projection run. It is local
// to a single Project call and discarded afterward.
type accumulator struct {
	global      map[string]key.Value
	players     map[string]*playerBucket
	playerOrder []string
}

// playerBucket holds one player's own entries plus any custom-field
// sub-scopes, both created lazily on first touch.
type playerBucket struct {
	entries    map[string]key.Value
	scoped     map[string]map[string]key.Value
	scopeOrder []string
}

func newAccumulator() *accumulator {
	return &accumulator{
		global:  make(map[string]key.Value),
		players: make(map[string]*playerBucket),
	}
}

// slotFor resolves the target slot for an event: the global map when the
// event has no player scope, the player's entries otherwise, narrowed to a
// sub-scope map when the event names one.
func (acc *accumulator) slotFor(evt event.Event) map[string]key.Value {
	if evt.PlayerID == "" {
		return acc.global
	}

	bucket, ok := acc.players[evt.PlayerID]
	if !ok {
		bucket = &playerBucket{
			entries: make(map[string]key.Value),
			scoped:  make(map[string]map[string]key.Value),
		}
		acc.players[evt.PlayerID] = bucket
		acc.playerOrder = append(acc.playerOrder, evt.PlayerID)
	}

	if evt.SubScope == "" {
		return bucket.entries
	}

	scoped, ok := bucket.scoped[evt.SubScope]
	if !ok {
		scoped = make(map[string]key.Value)
		bucket.scoped[evt.SubScope] = scoped
		bucket.scopeOrder = append(bucket.scopeOrder, evt.SubScope)
	}
	return scoped
}

// sections freezes the accumulator into a snapshot. All entry maps are deep
// copies; the accumulator keeps mutating after the snapshot is taken.
func (acc *accumulator) sections() []Section {
	var result []Section

	if len(acc.global) > 0 {
		result = append(result, Section{
			Label:   GlobalSectionLabel,
			Entries: cloneEntries(acc.global),
		})
	}

	for _, playerID := range acc.playerOrder {
		bucket := acc.players[playerID]

		var scoped []Subsection
		for _, label := range bucket.scopeOrder {
			entries := bucket.scoped[label]
			if len(entries) == 0 {
				continue
			}
			scoped = append(scoped, Subsection{
				Label:   label,
				Entries: cloneEntries(entries),
			})
		}

		if len(bucket.entries) == 0 && len(scoped) == 0 {
			continue
		}

		result = append(result, Section{
			Label:    playerID,
			PlayerID: playerID,
			Entries:  cloneEntries(bucket.entries),
			Scoped:   scoped,
		})
	}

	return result
}

// Project replays a campaign's events in canonical order and returns, for
// every session, the snapshot of accumulated state as it stood immediately
// after that session. Input slice order does not matter; sorting is
// internal. Sessions with no events still receive a snapshot (of the state
// carried forward from prior sessions).
func Project(sessions []session.Session, events []event.Event) map[string][]Section {
	ordered := make([]session.Session, len(sessions))
	copy(ordered, sessions)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.PlayedAt.Equal(b.PlayedAt) {
			return a.PlayedAt.Before(b.PlayedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	bySession := make(map[string][]event.Event)
	for _, evt := range events {
		bySession[evt.SessionID] = append(bySession[evt.SessionID], evt)
	}
	for _, sessionEvents := range bySession {
		sort.Slice(sessionEvents, func(i, j int) bool {
			a, b := sessionEvents[i], sessionEvents[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})
	}

	acc := newAccumulator()
	snapshots := make(map[string][]Section, len(ordered))

	for _, sess := range ordered {
		for _, evt := range bySession[sess.ID] {
			applyEvent(acc, evt)
		}
		snapshots[sess.ID] = acc.sections()
	}

	return snapshots
}

// applyEvent folds a single event into the accumulator. Events that no
// longer satisfy the verb contract are skipped; see the package doc.
func applyEvent(acc *accumulator, evt event.Event) {
	if evt.SubScope != "" && evt.PlayerID == "" {
		// A sub-scope narrows within a player bucket; it cannot exist
		// without one.
		return
	}
	parsed, ok := verb.Parse(evt.Verb)
	if !ok {
		return
	}
	if !verb.AllowedFor(parsed, evt.ValueType) {
		return
	}
	payload, err := verb.DecodePayload(evt.ValueType, parsed, evt.PayloadJSON)
	if err != nil {
		return
	}

	verb.Apply(evt.ValueType, parsed, acc.slotFor(evt), evt.KeyName, payload)
}
