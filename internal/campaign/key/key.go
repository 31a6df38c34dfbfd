package key

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/meeplelog/meeplelog/internal/errors"
	"github.com/meeplelog/meeplelog/internal/platform/id"
)

// ValueType identifies the kind of value a key tracks. It never changes
// after the key is created and determines which verbs are legal.
type ValueType string

const (
	// ValueTypeUnspecified represents an invalid value type.
	ValueTypeUnspecified ValueType = ""
	// ValueTypeString tracks a single replaceable string.
	ValueTypeString ValueType = "string"
	// ValueTypeNumber tracks an integer quantity.
	ValueTypeNumber ValueType = "number"
	// ValueTypeList tracks an ordered list of strings, duplicates allowed.
	ValueTypeList ValueType = "list"
	// ValueTypeCountedList tracks item names with strictly positive counts.
	ValueTypeCountedList ValueType = "counted_list"
)

// Scope identifies whether a key accumulates campaign-wide or per player.
type Scope string

const (
	// ScopeUnspecified represents an invalid scope.
	ScopeUnspecified Scope = ""
	// ScopeGlobal accumulates one value for the whole campaign.
	ScopeGlobal Scope = "global"
	// ScopePlayer accumulates one value per player, optionally narrowed
	// further by a custom-field sub-scope.
	ScopePlayer Scope = "player"
)

var (
	// ErrEmptyName indicates a missing key name.
	ErrEmptyName = apperrors.New(apperrors.CodeKeyNameEmpty, "key name is required")
	// ErrEmptyOwner indicates a missing key owner.
	ErrEmptyOwner = apperrors.New(apperrors.CodeKeyOwnerEmpty, "key owner is required")
	// ErrInvalidValueType indicates an unknown value type.
	ErrInvalidValueType = apperrors.New(apperrors.CodeKeyInvalidValueType, "key value type is not supported")
	// ErrInvalidScope indicates an unknown scope.
	ErrInvalidScope = apperrors.New(apperrors.CodeKeyInvalidScope, "key scope is not supported")
	// ErrSubScopeOnGlobalKey indicates a custom-field sub-scope on a global key.
	ErrSubScopeOnGlobalKey = apperrors.New(apperrors.CodeKeySubScopeGlobal, "only player-scoped keys can be scoped to a custom field")
	// ErrNotShareable indicates a copy attempt on a key its owner keeps private.
	ErrNotShareable = apperrors.New(apperrors.CodeKeyNotShareable, "key is not shared by its owner")
)

// Definition describes one named, typed slot of tracked campaign state.
type Definition struct {
	ID        string
	Name      string
	ValueType ValueType
	Scope     Scope
	// ScopedToFieldID references the custom-field definition whose values
	// narrow this key within a player bucket. Empty when unscoped.
	ScopedToFieldID string
	OwnerID         string
	Shareable       bool
	// OriginKeyID references the key this one was copied from, when the
	// definition was adopted from another owner's shared key.
	OriginKeyID string
	CreatedAt   time.Time
}

// CreateInput describes the metadata needed to create a key definition.
type CreateInput struct {
	Name            string
	ValueType       string
	Scope           string
	ScopedToFieldID string
	OwnerID         string
	Shareable       bool
}

// Create builds a new key definition with a generated ID and timestamps.
func Create(input CreateInput, now func() time.Time, idGenerator func() (string, error)) (Definition, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Definition{}, ErrEmptyName
	}
	owner := strings.TrimSpace(input.OwnerID)
	if owner == "" {
		return Definition{}, ErrEmptyOwner
	}
	valueType, ok := NormalizeValueType(input.ValueType)
	if !ok {
		return Definition{}, ErrInvalidValueType
	}
	scope, ok := NormalizeScope(input.Scope)
	if !ok {
		return Definition{}, ErrInvalidScope
	}
	scopedTo := strings.TrimSpace(input.ScopedToFieldID)
	if scopedTo != "" && scope != ScopePlayer {
		return Definition{}, ErrSubScopeOnGlobalKey
	}

	keyID, err := idGenerator()
	if err != nil {
		return Definition{}, fmt.Errorf("generate key id: %w", err)
	}

	return Definition{
		ID:              keyID,
		Name:            name,
		ValueType:       valueType,
		Scope:           scope,
		ScopedToFieldID: scopedTo,
		OwnerID:         owner,
		Shareable:       input.Shareable,
		CreatedAt:       now().UTC(),
	}, nil
}

// Copy adopts a shareable key definition for another owner, preserving the
// value type and scope and recording the origin key.
func Copy(origin Definition, ownerID string, now func() time.Time, idGenerator func() (string, error)) (Definition, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		return Definition{}, ErrEmptyOwner
	}
	if !origin.Shareable {
		return Definition{}, ErrNotShareable
	}

	keyID, err := idGenerator()
	if err != nil {
		return Definition{}, fmt.Errorf("generate key id: %w", err)
	}

	copied := origin
	copied.ID = keyID
	copied.OwnerID = owner
	copied.OriginKeyID = origin.ID
	copied.CreatedAt = now().UTC()
	return copied, nil
}

// NormalizeValueType parses a value type string, case-insensitively.
func NormalizeValueType(value string) (ValueType, bool) {
	switch ValueType(strings.ToLower(strings.TrimSpace(value))) {
	case ValueTypeString:
		return ValueTypeString, true
	case ValueTypeNumber:
		return ValueTypeNumber, true
	case ValueTypeList:
		return ValueTypeList, true
	case ValueTypeCountedList:
		return ValueTypeCountedList, true
	default:
		return ValueTypeUnspecified, false
	}
}

// NormalizeScope parses a scope string, case-insensitively.
func NormalizeScope(value string) (Scope, bool) {
	switch Scope(strings.ToLower(strings.TrimSpace(value))) {
	case ScopeGlobal:
		return ScopeGlobal, true
	case ScopePlayer:
		return ScopePlayer, true
	default:
		return ScopeUnspecified, false
	}
}

// IsValid reports whether the value type is one of the supported kinds.
func (t ValueType) IsValid() bool {
	switch t {
	case ValueTypeString, ValueTypeNumber, ValueTypeList, ValueTypeCountedList:
		return true
	default:
		return false
	}
}

// IsValid reports whether the scope is supported.
func (s Scope) IsValid() bool {
	return s == ScopeGlobal || s == ScopePlayer
}
