// Package verb defines the closed set of ledger mutation operations, the
// catalog of which verbs are legal per key value type, payload validation
// for admission, and the pure apply fold used during projection.
package verb

import (
	"strings"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
)

// Verb identifies one mutation operation on a key value.
type Verb string

const (
	// VerbUnspecified represents an unknown verb.
	VerbUnspecified Verb = ""
	// VerbReplace overwrites the current value, discarding the prior one.
	VerbReplace Verb = "replace"
	// VerbIncrease adds an amount to a number, starting from zero.
	VerbIncrease Verb = "increase"
	// VerbDecrease subtracts an amount from a number, starting from zero.
	VerbDecrease Verb = "decrease"
	// VerbAdd appends list values or raises counted-list quantities.
	VerbAdd Verb = "add"
	// VerbRemove removes list values or lowers counted-list quantities.
	VerbRemove Verb = "remove"
)

// Parse normalizes a wire verb string, reporting whether it names a known verb.
func Parse(value string) (Verb, bool) {
	switch Verb(strings.ToLower(strings.TrimSpace(value))) {
	case VerbReplace:
		return VerbReplace, true
	case VerbIncrease:
		return VerbIncrease, true
	case VerbDecrease:
		return VerbDecrease, true
	case VerbAdd:
		return VerbAdd, true
	case VerbRemove:
		return VerbRemove, true
	default:
		return VerbUnspecified, false
	}
}

// LegalFor returns the verbs a key of the given value type accepts. This
// table is the single source of truth consulted by both payload validation
// and apply dispatch.
func LegalFor(valueType key.ValueType) []Verb {
	switch valueType {
	case key.ValueTypeString:
		return []Verb{VerbReplace}
	case key.ValueTypeNumber:
		return []Verb{VerbReplace, VerbIncrease, VerbDecrease}
	case key.ValueTypeList:
		return []Verb{VerbAdd, VerbRemove}
	case key.ValueTypeCountedList:
		return []Verb{VerbAdd, VerbRemove}
	default:
		return nil
	}
}

// AllowedFor reports whether the verb is legal for the value type.
func AllowedFor(v Verb, valueType key.ValueType) bool {
	for _, legal := range LegalFor(valueType) {
		if v == legal {
			return true
		}
	}
	return false
}
