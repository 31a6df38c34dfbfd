package verb

import (
	"errors"
	"testing"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
)

func TestDecodePayloadReplaceString(t *testing.T) {
	payload, err := DecodePayload(key.ValueTypeString, VerbReplace, []byte(`{"verb":"replace","value":"Chapter 1"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	decoded, ok := payload.(ReplaceValuePayload)
	if !ok {
		t.Fatalf("payload type = %T, want ReplaceValuePayload", payload)
	}
	if decoded.Value != "Chapter 1" {
		t.Fatalf("value = %q, want Chapter 1", decoded.Value)
	}
}

func TestDecodePayloadAmounts(t *testing.T) {
	for _, v := range []Verb{VerbReplace, VerbIncrease, VerbDecrease} {
		payload, err := DecodePayload(key.ValueTypeNumber, v, []byte(`{"verb":"`+string(v)+`","amount":10}`))
		if err != nil {
			t.Fatalf("decode %s: %v", v, err)
		}
		decoded, ok := payload.(AmountPayload)
		if !ok {
			t.Fatalf("payload type = %T, want AmountPayload", payload)
		}
		if decoded.Amount != 10 {
			t.Fatalf("amount = %d, want 10", decoded.Amount)
		}
	}
}

func TestDecodePayloadAmountZeroIsValid(t *testing.T) {
	if _, err := DecodePayload(key.ValueTypeNumber, VerbIncrease, []byte(`{"verb":"increase","amount":0}`)); err != nil {
		t.Fatalf("explicit zero amount should decode: %v", err)
	}
}

func TestDecodePayloadListValues(t *testing.T) {
	payload, err := DecodePayload(key.ValueTypeList, VerbAdd, []byte(`{"verb":"add","values":["Sword","Shield"]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	decoded := payload.(ValuesPayload)
	if len(decoded.Values) != 2 || decoded.Values[0] != "Sword" {
		t.Fatalf("values = %v, want [Sword Shield]", decoded.Values)
	}
}

func TestDecodePayloadCountedItems(t *testing.T) {
	payload, err := DecodePayload(key.ValueTypeCountedList, VerbRemove, []byte(`{"verb":"remove","items":[{"item":"Arrow","quantity":5}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	decoded := payload.(ItemsPayload)
	if len(decoded.Items) != 1 || decoded.Items[0].Item != "Arrow" || decoded.Items[0].Quantity != 5 {
		t.Fatalf("items = %v, want [{Arrow 5}]", decoded.Items)
	}
}

func TestDecodePayloadRejections(t *testing.T) {
	tests := []struct {
		name      string
		valueType key.ValueType
		verb      Verb
		raw       string
		want      error
	}{
		{"verb not allowed for string", key.ValueTypeString, VerbIncrease, `{"verb":"increase","amount":1}`, ErrVerbNotAllowed},
		{"verb not allowed for number", key.ValueTypeNumber, VerbAdd, `{"verb":"add","values":["x"]}`, ErrVerbNotAllowed},
		{"verb not allowed for list", key.ValueTypeList, VerbReplace, `{"verb":"replace","value":"x"}`, ErrVerbNotAllowed},
		{"verb not allowed for counted list", key.ValueTypeCountedList, VerbIncrease, `{"verb":"increase","amount":1}`, ErrVerbNotAllowed},
		{"empty replace value", key.ValueTypeString, VerbReplace, `{"verb":"replace","value":"  "}`, ErrEmptyValue},
		{"missing replace value", key.ValueTypeString, VerbReplace, `{"verb":"replace"}`, ErrEmptyValue},
		{"missing amount", key.ValueTypeNumber, VerbIncrease, `{"verb":"increase"}`, ErrMissingAmount},
		{"non-integer amount", key.ValueTypeNumber, VerbIncrease, `{"verb":"increase","amount":1.5}`, ErrMalformedPayload},
		{"empty values", key.ValueTypeList, VerbAdd, `{"verb":"add","values":[]}`, ErrEmptyValues},
		{"missing values", key.ValueTypeList, VerbRemove, `{"verb":"remove"}`, ErrEmptyValues},
		{"empty items", key.ValueTypeCountedList, VerbAdd, `{"verb":"add","items":[]}`, ErrEmptyItems},
		{"empty item name", key.ValueTypeCountedList, VerbAdd, `{"verb":"add","items":[{"item":"","quantity":1}]}`, ErrEmptyItemName},
		{"zero quantity", key.ValueTypeCountedList, VerbAdd, `{"verb":"add","items":[{"item":"Arrow","quantity":0}]}`, ErrInvalidQuantity},
		{"negative quantity", key.ValueTypeCountedList, VerbRemove, `{"verb":"remove","items":[{"item":"Arrow","quantity":-2}]}`, ErrInvalidQuantity},
		{"malformed json", key.ValueTypeString, VerbReplace, `{`, ErrMalformedPayload},
		{"unknown value type", key.ValueTypeUnspecified, VerbReplace, `{"verb":"replace","value":"x"}`, ErrVerbNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePayload(tc.valueType, tc.verb, []byte(tc.raw))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
