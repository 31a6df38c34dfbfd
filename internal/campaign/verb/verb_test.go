package verb

import (
	"testing"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Verb
		ok   bool
	}{
		{"replace", VerbReplace, true},
		{" Increase ", VerbIncrease, true},
		{"DECREASE", VerbDecrease, true},
		{"add", VerbAdd, true},
		{"remove", VerbRemove, true},
		{"append", VerbUnspecified, false},
		{"", VerbUnspecified, false},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Parse(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCatalogIsExhaustive(t *testing.T) {
	want := map[key.ValueType][]Verb{
		key.ValueTypeString:      {VerbReplace},
		key.ValueTypeNumber:      {VerbReplace, VerbIncrease, VerbDecrease},
		key.ValueTypeList:        {VerbAdd, VerbRemove},
		key.ValueTypeCountedList: {VerbAdd, VerbRemove},
	}

	for valueType, legal := range want {
		got := LegalFor(valueType)
		if len(got) != len(legal) {
			t.Fatalf("LegalFor(%q) = %v, want %v", valueType, got, legal)
		}
		for i, v := range legal {
			if got[i] != v {
				t.Fatalf("LegalFor(%q)[%d] = %q, want %q", valueType, i, got[i], v)
			}
		}
	}

	if got := LegalFor(key.ValueTypeUnspecified); got != nil {
		t.Fatalf("LegalFor(unspecified) = %v, want nil", got)
	}
}

func TestAllowedForRejectsIllegalPairs(t *testing.T) {
	allVerbs := []Verb{VerbReplace, VerbIncrease, VerbDecrease, VerbAdd, VerbRemove}
	allTypes := []key.ValueType{
		key.ValueTypeString, key.ValueTypeNumber, key.ValueTypeList, key.ValueTypeCountedList,
	}

	// Every (type, verb) pair must be either in the legal table or rejected;
	// cross-check AllowedFor against LegalFor over the full cross product.
	for _, valueType := range allTypes {
		legal := make(map[Verb]bool)
		for _, v := range LegalFor(valueType) {
			legal[v] = true
		}
		for _, v := range allVerbs {
			if got := AllowedFor(v, valueType); got != legal[v] {
				t.Fatalf("AllowedFor(%q, %q) = %v, want %v", v, valueType, got, legal[v])
			}
		}
	}
}
