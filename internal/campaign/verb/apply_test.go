package verb

import (
	"reflect"
	"testing"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
)

func TestApplyReplaceString(t *testing.T) {
	slot := map[string]key.Value{"Chapter": key.StringValue("Prologue")}

	Apply(key.ValueTypeString, VerbReplace, slot, "Chapter", ReplaceValuePayload{Value: "Chapter 1"})

	if slot["Chapter"].Str != "Chapter 1" {
		t.Fatalf("chapter = %q, want full overwrite to Chapter 1", slot["Chapter"].Str)
	}
}

func TestApplyNumberVerbs(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]key.Value
		verb    Verb
		amount  int64
		want    int64
	}{
		{"increase from empty defaults to zero", map[string]key.Value{}, VerbIncrease, 10, 10},
		{"increase accumulates", map[string]key.Value{"Gold": key.NumberValue(10)}, VerbIncrease, 5, 15},
		{"decrease from empty defaults to zero", map[string]key.Value{}, VerbDecrease, 3, -3},
		{"decrease accumulates", map[string]key.Value{"Gold": key.NumberValue(10)}, VerbDecrease, 4, 6},
		{"replace discards prior value", map[string]key.Value{"Gold": key.NumberValue(10)}, VerbReplace, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			Apply(key.ValueTypeNumber, tc.verb, tc.initial, "Gold", AmountPayload{Amount: tc.amount})
			if got := tc.initial["Gold"].Num; got != tc.want {
				t.Fatalf("gold = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestApplyListAddAllowsDuplicates(t *testing.T) {
	slot := map[string]key.Value{}

	Apply(key.ValueTypeList, VerbAdd, slot, "Inventory", ValuesPayload{Values: []string{"Sword", "Shield"}})
	Apply(key.ValueTypeList, VerbAdd, slot, "Inventory", ValuesPayload{Values: []string{"Sword"}})

	want := []string{"Sword", "Shield", "Sword"}
	if !reflect.DeepEqual(slot["Inventory"].List, want) {
		t.Fatalf("inventory = %v, want %v", slot["Inventory"].List, want)
	}
}

func TestApplyListRemoveFirstOccurrenceOnly(t *testing.T) {
	slot := map[string]key.Value{
		"Inventory": key.ListValue("Sword", "Shield", "Sword"),
	}

	Apply(key.ValueTypeList, VerbRemove, slot, "Inventory", ValuesPayload{Values: []string{"Sword"}})

	want := []string{"Shield", "Sword"}
	if !reflect.DeepEqual(slot["Inventory"].List, want) {
		t.Fatalf("inventory = %v, want %v", slot["Inventory"].List, want)
	}
}

func TestApplyListRemoveMissingValueIsIgnored(t *testing.T) {
	slot := map[string]key.Value{"Inventory": key.ListValue("Sword")}

	Apply(key.ValueTypeList, VerbRemove, slot, "Inventory", ValuesPayload{Values: []string{"Bow"}})

	want := []string{"Sword"}
	if !reflect.DeepEqual(slot["Inventory"].List, want) {
		t.Fatalf("inventory = %v, want %v", slot["Inventory"].List, want)
	}
}

func TestApplyCountedListAddAccumulates(t *testing.T) {
	slot := map[string]key.Value{}

	Apply(key.ValueTypeCountedList, VerbAdd, slot, "Loot", ItemsPayload{Items: []CountedItem{{Item: "Arrow", Quantity: 5}}})
	Apply(key.ValueTypeCountedList, VerbAdd, slot, "Loot", ItemsPayload{Items: []CountedItem{{Item: "Arrow", Quantity: 3}, {Item: "Gem", Quantity: 1}}})

	want := map[string]int64{"Arrow": 8, "Gem": 1}
	if !reflect.DeepEqual(slot["Loot"].Counts, want) {
		t.Fatalf("loot = %v, want %v", slot["Loot"].Counts, want)
	}
}

func TestApplyCountedListRemoveDeletesNonPositiveCounts(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
	}{
		{"exact count", 5},
		{"over count", 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slot := map[string]key.Value{
				"Loot": key.CountedValue(map[string]int64{"Arrow": 5, "Gem": 1}),
			}

			Apply(key.ValueTypeCountedList, VerbRemove, slot, "Loot", ItemsPayload{Items: []CountedItem{{Item: "Arrow", Quantity: tc.quantity}}})

			if _, present := slot["Loot"].Counts["Arrow"]; present {
				t.Fatalf("arrow should be deleted, got %v", slot["Loot"].Counts)
			}
			if slot["Loot"].Counts["Gem"] != 1 {
				t.Fatalf("gem = %d, want untouched 1", slot["Loot"].Counts["Gem"])
			}
		})
	}
}

func TestApplyCountedListPartialRemove(t *testing.T) {
	slot := map[string]key.Value{
		"Loot": key.CountedValue(map[string]int64{"Arrow": 5}),
	}

	Apply(key.ValueTypeCountedList, VerbRemove, slot, "Loot", ItemsPayload{Items: []CountedItem{{Item: "Arrow", Quantity: 2}}})

	if slot["Loot"].Counts["Arrow"] != 3 {
		t.Fatalf("arrow = %d, want 3", slot["Loot"].Counts["Arrow"])
	}
}

func TestApplyIgnoresMismatchedPayloads(t *testing.T) {
	slot := map[string]key.Value{"Gold": key.NumberValue(10)}

	// A payload of the wrong concrete type must leave the slot untouched.
	Apply(key.ValueTypeNumber, VerbIncrease, slot, "Gold", ValuesPayload{Values: []string{"x"}})
	// An illegal pair must leave the slot untouched.
	Apply(key.ValueTypeString, VerbIncrease, slot, "Gold", AmountPayload{Amount: 5})

	if slot["Gold"].Num != 10 {
		t.Fatalf("gold = %d, want untouched 10", slot["Gold"].Num)
	}
}
