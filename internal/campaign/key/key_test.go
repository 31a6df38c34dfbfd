package key

import (
	"errors"
	"testing"
	"time"
)

var testNow = func() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func testIDGenerator(value string) func() (string, error) {
	return func() (string, error) { return value, nil }
}

func TestCreateKey(t *testing.T) {
	def, err := Create(CreateInput{
		Name:      "  Gold ",
		ValueType: "number",
		Scope:     "player",
		OwnerID:   "owner-1",
		Shareable: true,
	}, testNow, testIDGenerator("key-1"))
	if err != nil {
		t.Fatalf("create key: %v", err)
	}

	if def.ID != "key-1" {
		t.Fatalf("id = %q, want key-1", def.ID)
	}
	if def.Name != "Gold" {
		t.Fatalf("name = %q, want trimmed Gold", def.Name)
	}
	if def.ValueType != ValueTypeNumber {
		t.Fatalf("value type = %q, want number", def.ValueType)
	}
	if def.Scope != ScopePlayer {
		t.Fatalf("scope = %q, want player", def.Scope)
	}
	if !def.CreatedAt.Equal(testNow()) {
		t.Fatalf("created at = %v, want %v", def.CreatedAt, testNow())
	}
}

func TestCreateKeyValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"empty name", CreateInput{ValueType: "number", Scope: "global", OwnerID: "o"}, ErrEmptyName},
		{"empty owner", CreateInput{Name: "Gold", ValueType: "number", Scope: "global"}, ErrEmptyOwner},
		{"bad value type", CreateInput{Name: "Gold", ValueType: "decimal", Scope: "global", OwnerID: "o"}, ErrInvalidValueType},
		{"bad scope", CreateInput{Name: "Gold", ValueType: "number", Scope: "party", OwnerID: "o"}, ErrInvalidScope},
		{"sub-scope on global", CreateInput{Name: "Kills", ValueType: "number", Scope: "global", ScopedToFieldID: "field-1", OwnerID: "o"}, ErrSubScopeOnGlobalKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Create(tc.input, testNow, testIDGenerator("key-1"))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateKeyAllowsSubScopeOnPlayerKey(t *testing.T) {
	def, err := Create(CreateInput{
		Name:            "Kills",
		ValueType:       "number",
		Scope:           "player",
		ScopedToFieldID: "field-weapon",
		OwnerID:         "owner-1",
	}, testNow, testIDGenerator("key-1"))
	if err != nil {
		t.Fatalf("create key: %v", err)
	}
	if def.ScopedToFieldID != "field-weapon" {
		t.Fatalf("scoped to = %q, want field-weapon", def.ScopedToFieldID)
	}
}

func TestCopyKey(t *testing.T) {
	origin, err := Create(CreateInput{
		Name: "Gold", ValueType: "number", Scope: "player", OwnerID: "owner-1", Shareable: true,
	}, testNow, testIDGenerator("key-1"))
	if err != nil {
		t.Fatalf("create origin: %v", err)
	}

	copied, err := Copy(origin, "owner-2", testNow, testIDGenerator("key-2"))
	if err != nil {
		t.Fatalf("copy key: %v", err)
	}
	if copied.ID != "key-2" {
		t.Fatalf("copied id = %q, want key-2", copied.ID)
	}
	if copied.OwnerID != "owner-2" {
		t.Fatalf("copied owner = %q, want owner-2", copied.OwnerID)
	}
	if copied.OriginKeyID != "key-1" {
		t.Fatalf("origin key = %q, want key-1", copied.OriginKeyID)
	}
	if copied.ValueType != origin.ValueType || copied.Scope != origin.Scope {
		t.Fatal("copy must preserve value type and scope")
	}
}

func TestCopyKeyRejectsPrivateKeys(t *testing.T) {
	origin := Definition{ID: "key-1", Name: "Gold", ValueType: ValueTypeNumber, Scope: ScopePlayer, OwnerID: "owner-1"}
	if _, err := Copy(origin, "owner-2", testNow, testIDGenerator("key-2")); !errors.Is(err, ErrNotShareable) {
		t.Fatalf("err = %v, want ErrNotShareable", err)
	}
}

func TestNormalizeValueType(t *testing.T) {
	tests := []struct {
		in   string
		want ValueType
		ok   bool
	}{
		{"string", ValueTypeString, true},
		{" Number ", ValueTypeNumber, true},
		{"LIST", ValueTypeList, true},
		{"counted_list", ValueTypeCountedList, true},
		{"decimal", ValueTypeUnspecified, false},
		{"", ValueTypeUnspecified, false},
	}
	for _, tc := range tests {
		got, ok := NormalizeValueType(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("NormalizeValueType(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestValueClone(t *testing.T) {
	original := CountedValue(map[string]int64{"Arrow": 5})
	original.List = []string{"unused"}

	clone := original.Clone()
	clone.Counts["Arrow"] = 99
	clone.List[0] = "changed"

	if original.Counts["Arrow"] != 5 {
		t.Fatalf("clone aliases counts: %d", original.Counts["Arrow"])
	}
	if original.List[0] != "unused" {
		t.Fatalf("clone aliases list: %q", original.List[0])
	}
}
