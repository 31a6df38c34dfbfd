package projection

import "github.com/meeplelog/meeplelog/internal/campaign/key"

// GlobalSectionLabel labels the campaign-wide section of a snapshot.
const GlobalSectionLabel = "Global"

// Section is one block of a snapshot: the global campaign state or one
// player's state. Empty sections are never emitted.
type Section struct {
	// Label is GlobalSectionLabel for the global section; for player
	// sections it carries the player ID for the rendering layer to resolve
	// to a display name.
	Label string `json:"label"`
	// PlayerID is empty for the global section.
	PlayerID string `json:"player_id,omitempty"`
	// Entries maps key names to their accumulated values.
	Entries map[string]key.Value `json:"entries"`
	// Scoped lists the player's non-empty custom-field sub-scopes.
	Scoped []Subsection `json:"scoped,omitempty"`
}

// Subsection is one custom-field sub-scope within a player section.
type Subsection struct {
	Label   string               `json:"label"`
	Entries map[string]key.Value `json:"entries"`
}

func cloneEntries(entries map[string]key.Value) map[string]key.Value {
	clone := make(map[string]key.Value, len(entries))
	for name, value := range entries {
		clone[name] = value.Clone()
	}
	return clone
}
