// Package projection replays a campaign's ledger into per-session snapshots.
//
// The projector is a left fold over the campaign timeline: sessions ordered
// by play date (creation time, then ID, as tie-breaks), each session's
// events ordered by creation time (then ID). Every event resolves a scope
// slot (global, one player's bucket, or a named sub-scope within a player's
// bucket) and applies its verb to that slot's accumulator. After a
// session's events are folded, the whole accumulator is deep-copied into
// that session's snapshot, so each snapshot is cumulative over all prior
// sessions and immune to later mutation.
//
// # Determinism
//
// Section ordering is explicit rather than incidental: the global section
// comes first when non-empty, player sections follow in the order each
// player's bucket was first touched by an event, and sub-scopes within a
// player follow the same first-touch order. Re-running a projection over
// the same sessions and events always yields identical output, regardless
// of input slice order.
//
// # Malformed events
//
// The projector assumes stored events already passed admission validation.
// Events whose verb does not parse, whose verb is illegal for the key's
// value type, or whose payload no longer decodes are skipped rather than
// failing the whole projection; at worst a corrupt event yields an
// incomplete snapshot. Admission validation keeps such events out of new
// ledgers.
//
// The projector holds no state between calls: the accumulator is local to
// one Project call and discarded afterward, so concurrent projections of
// different campaigns need no locking.
package projection
