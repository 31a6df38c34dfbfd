package verb

import "github.com/meeplelog/meeplelog/internal/campaign/key"

// Apply folds a decoded payload into the accumulator slot for one key. It is
// a pure function of (current slot value, verb, payload) and performs no
// validation of its own: DecodePayload must have accepted the payload at
// admission time. Pairs outside the catalog, or payloads of the wrong
// concrete type, leave the slot untouched.
func Apply(valueType key.ValueType, v Verb, slot map[string]key.Value, keyName string, payload Payload) {
	switch valueType {
	case key.ValueTypeString:
		if v != VerbReplace {
			return
		}
		p, ok := payload.(ReplaceValuePayload)
		if !ok {
			return
		}
		slot[keyName] = key.StringValue(p.Value)

	case key.ValueTypeNumber:
		p, ok := payload.(AmountPayload)
		if !ok {
			return
		}
		switch v {
		case VerbReplace:
			slot[keyName] = key.NumberValue(p.Amount)
		case VerbIncrease:
			slot[keyName] = key.NumberValue(slot[keyName].Num + p.Amount)
		case VerbDecrease:
			slot[keyName] = key.NumberValue(slot[keyName].Num - p.Amount)
		}

	case key.ValueTypeList:
		p, ok := payload.(ValuesPayload)
		if !ok {
			return
		}
		switch v {
		case VerbAdd:
			current := slot[keyName]
			list := append(current.List, p.Values...)
			slot[keyName] = key.Value{Type: key.ValueTypeList, List: list}
		case VerbRemove:
			current := slot[keyName]
			list := current.List
			for _, value := range p.Values {
				list = removeFirst(list, value)
			}
			slot[keyName] = key.Value{Type: key.ValueTypeList, List: list}
		}

	case key.ValueTypeCountedList:
		p, ok := payload.(ItemsPayload)
		if !ok {
			return
		}
		current := slot[keyName]
		counts := current.Counts
		if counts == nil {
			counts = make(map[string]int64)
		}
		switch v {
		case VerbAdd:
			for _, item := range p.Items {
				counts[item.Item] += item.Quantity
			}
		case VerbRemove:
			for _, item := range p.Items {
				remaining := counts[item.Item] - item.Quantity
				if remaining <= 0 {
					// The map never holds non-positive counts.
					delete(counts, item.Item)
					continue
				}
				counts[item.Item] = remaining
			}
		}
		slot[keyName] = key.Value{Type: key.ValueTypeCountedList, Counts: counts}
	}
}

// removeFirst removes exactly one occurrence of value, if present. Values
// not found are silently ignored.
func removeFirst(list []string, value string) []string {
	for i, existing := range list {
		if existing == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
