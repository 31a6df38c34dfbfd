package verb

import (
	"encoding/json"
	"strings"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
	apperrors "github.com/meeplelog/meeplelog/internal/errors"
)

var (
	// ErrVerbNotAllowed indicates a verb that is illegal for the key's value type.
	ErrVerbNotAllowed = apperrors.New(apperrors.CodeEventVerbNotAllowed, "verb is not allowed for this value type")
	// ErrMalformedPayload indicates a payload that does not decode.
	ErrMalformedPayload = apperrors.New(apperrors.CodeEventMalformedPayload, "event payload is malformed")
	// ErrEmptyValue indicates a missing or empty replace value.
	ErrEmptyValue = apperrors.New(apperrors.CodeEventEmptyValue, "a non-empty value is required")
	// ErrMissingAmount indicates a payload without a numeric amount field.
	ErrMissingAmount = apperrors.New(apperrors.CodeEventMalformedPayload, "a numeric amount is required")
	// ErrEmptyValues indicates a missing or empty values array.
	ErrEmptyValues = apperrors.New(apperrors.CodeEventEmptyValues, "at least one value is required")
	// ErrEmptyItems indicates a missing or empty items array.
	ErrEmptyItems = apperrors.New(apperrors.CodeEventEmptyItems, "at least one item is required")
	// ErrEmptyItemName indicates a counted item without a name.
	ErrEmptyItemName = apperrors.New(apperrors.CodeEventEmptyItemName, "item name cannot be empty")
	// ErrInvalidQuantity indicates a counted item quantity below one.
	ErrInvalidQuantity = apperrors.New(apperrors.CodeEventInvalidQuantity, "item quantity must be at least 1")
)

// Payload is an immutable, decoded event payload. Exactly one concrete type
// exists per (value type, verb) payload shape.
type Payload interface {
	payload()
}

// ReplaceValuePayload carries the wire shape {verb:"replace", value:string}.
type ReplaceValuePayload struct {
	Verb  string `json:"verb"`
	Value string `json:"value"`
}

// AmountPayload carries the wire shape {verb:..., amount:number} shared by
// replace, increase, and decrease on number keys.
type AmountPayload struct {
	Verb   string `json:"verb"`
	Amount int64  `json:"amount"`
}

// ValuesPayload carries the wire shape {verb:..., values:string[]} shared by
// add and remove on list keys.
type ValuesPayload struct {
	Verb   string   `json:"verb"`
	Values []string `json:"values"`
}

// CountedItem is one entry of a counted-list payload.
type CountedItem struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

// ItemsPayload carries the wire shape {verb:..., items:[{item,quantity}]}
// shared by add and remove on counted-list keys.
type ItemsPayload struct {
	Verb  string        `json:"verb"`
	Items []CountedItem `json:"items"`
}

func (ReplaceValuePayload) payload() {}
func (AmountPayload) payload()       {}
func (ValuesPayload) payload()       {}
func (ItemsPayload) payload()        {}

// DecodePayload validates a raw wire payload against the (value type, verb)
// contract and returns its decoded form. This is the admission-time check:
// callers must reject events whose payload fails to decode before they ever
// reach the projector. The switch is exhaustive over the catalog; any pair
// outside it is rejected.
func DecodePayload(valueType key.ValueType, v Verb, raw []byte) (Payload, error) {
	switch valueType {
	case key.ValueTypeString:
		switch v {
		case VerbReplace:
			return decodeReplaceValue(raw)
		case VerbIncrease, VerbDecrease, VerbAdd, VerbRemove, VerbUnspecified:
			return nil, verbNotAllowed(v, valueType)
		}

	case key.ValueTypeNumber:
		switch v {
		case VerbReplace, VerbIncrease, VerbDecrease:
			return decodeAmount(raw, v)
		case VerbAdd, VerbRemove, VerbUnspecified:
			return nil, verbNotAllowed(v, valueType)
		}

	case key.ValueTypeList:
		switch v {
		case VerbAdd, VerbRemove:
			return decodeValues(raw, v)
		case VerbReplace, VerbIncrease, VerbDecrease, VerbUnspecified:
			return nil, verbNotAllowed(v, valueType)
		}

	case key.ValueTypeCountedList:
		switch v {
		case VerbAdd, VerbRemove:
			return decodeItems(raw, v)
		case VerbReplace, VerbIncrease, VerbDecrease, VerbUnspecified:
			return nil, verbNotAllowed(v, valueType)
		}
	}

	return nil, verbNotAllowed(v, valueType)
}

func verbNotAllowed(v Verb, valueType key.ValueType) error {
	return ErrVerbNotAllowed.WithMetadata(map[string]string{
		"Verb":      string(v),
		"ValueType": string(valueType),
	})
}

func decodeReplaceValue(raw []byte) (Payload, error) {
	var decoded ReplaceValuePayload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, ErrMalformedPayload
	}
	if strings.TrimSpace(decoded.Value) == "" {
		return nil, ErrEmptyValue
	}
	return decoded, nil
}

func decodeAmount(raw []byte, v Verb) (Payload, error) {
	// Amount is decoded through a pointer so a missing field is
	// distinguishable from an explicit zero.
	var probe struct {
		Verb   string `json:"verb"`
		Amount *int64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, ErrMalformedPayload
	}
	if probe.Amount == nil {
		return nil, ErrMissingAmount
	}
	return AmountPayload{Verb: string(v), Amount: *probe.Amount}, nil
}

func decodeValues(raw []byte, v Verb) (Payload, error) {
	var decoded ValuesPayload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, ErrMalformedPayload
	}
	if len(decoded.Values) == 0 {
		return nil, ErrEmptyValues
	}
	decoded.Verb = string(v)
	return decoded, nil
}

func decodeItems(raw []byte, v Verb) (Payload, error) {
	var decoded ItemsPayload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, ErrMalformedPayload
	}
	if len(decoded.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range decoded.Items {
		if strings.TrimSpace(item.Item) == "" {
			return nil, ErrEmptyItemName
		}
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity.WithMetadata(map[string]string{"Item": item.Item})
		}
	}
	decoded.Verb = string(v)
	return decoded, nil
}
