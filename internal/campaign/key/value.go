package key

// Value is the accumulated state of one key: exactly one of the four kinds
// is populated, matching the key's ValueType.
type Value struct {
	Type ValueType `json:"type"`
	Str  string    `json:"string,omitempty"`
	Num  int64     `json:"number,omitempty"`
	List []string  `json:"list,omitempty"`
	// Counts maps item names to strictly positive quantities. Entries are
	// deleted rather than held at zero or below.
	Counts map[string]int64 `json:"counts,omitempty"`
}

// StringValue wraps a string as a key value.
func StringValue(s string) Value {
	return Value{Type: ValueTypeString, Str: s}
}

// NumberValue wraps an integer as a key value.
func NumberValue(n int64) Value {
	return Value{Type: ValueTypeNumber, Num: n}
}

// ListValue wraps a list of strings as a key value.
func ListValue(values ...string) Value {
	return Value{Type: ValueTypeList, List: values}
}

// CountedValue wraps item counts as a key value.
func CountedValue(counts map[string]int64) Value {
	return Value{Type: ValueTypeCountedList, Counts: counts}
}

// Clone returns a deep copy of the value, so snapshots never alias the
// accumulator's backing slices and maps.
func (v Value) Clone() Value {
	clone := v
	if v.List != nil {
		clone.List = make([]string, len(v.List))
		copy(clone.List, v.List)
	}
	if v.Counts != nil {
		clone.Counts = make(map[string]int64, len(v.Counts))
		for item, count := range v.Counts {
			clone.Counts[item] = count
		}
	}
	return clone
}
