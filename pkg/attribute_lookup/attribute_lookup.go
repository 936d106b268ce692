package attribute_lookup

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// KeyValue is a single entry of an attribute bag. Value is loosely typed: nil, string, bool,
// a numeric type, or anything else a telemetry pipeline attaches to a record.
type KeyValue struct {
	Key   string
	Value any
}

type entry struct {
	key   string
	value any
}

// AttributeLookup is a case-insensitive view over one or more attribute bags.
// When bags are merged the first occurrence of a key wins.
type AttributeLookup struct {
	entries map[string]entry
}

func NewAttributeLookup(bags ...[]KeyValue) *AttributeLookup {
	entries := make(map[string]entry)
	for _, bag := range bags {
		for _, kv := range bag {
			folded := strings.ToLower(kv.Key)
			if _, found := entries[folded]; found {
				continue
			}
			entries[folded] = entry{key: kv.Key, value: kv.Value}
		}
	}
	return &AttributeLookup{entries: entries}
}

// find returns the entry of the first candidate key present in the bag.
func (al *AttributeLookup) find(keys []string) (entry, bool) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if e, found := al.entries[strings.ToLower(key)]; found {
			return e, true
		}
	}
	return entry{}, false
}

// GetString returns the value of the first candidate key present, coerced to a string.
// A key present with a nil value still ends the search and yields nil.
func (al *AttributeLookup) GetString(keys ...string) *string {
	e, found := al.find(keys)
	if !found {
		return nil
	}
	return toString(e.value)
}

// GetInt matches the first candidate key present and requires its value to parse as an int.
// A value that does not parse yields nil; later candidates are not consulted.
func (al *AttributeLookup) GetInt(keys ...string) *int {
	raw := al.GetString(keys...)
	if raw == nil {
		return nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 32)
	if err != nil {
		return nil
	}
	value := int(parsed)
	return &value
}

func (al *AttributeLookup) GetLong(keys ...string) *int64 {
	raw := al.GetString(keys...)
	if raw == nil {
		return nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// GetDouble follows the GetInt rules. NaN and infinities are rejected since the
// result always ends up in a JSON document.
func (al *AttributeLookup) GetDouble(keys ...string) *float64 {
	raw := al.GetString(keys...)
	if raw == nil {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

// Serialize encodes the merged bag as a JSON object, or returns nil for an empty bag.
// Values that are not JSON primitives are written in their textual form.
func (al *AttributeLookup) Serialize() (*string, error) {
	if len(al.entries) == 0 {
		return nil, nil
	}
	sanitized := make(map[string]any, len(al.entries))
	for _, e := range al.entries {
		sanitized[e.key] = sanitize(e.value)
	}
	data, err := json.Marshal(sanitized)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize attributes: %w", err)
	}
	serialized := string(data)
	return &serialized, nil
}

func sanitize(value any) any {
	switch v := value.(type) {
	case nil, string, bool, int, int32, int64:
		return v
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return formatFloat(float64(v), 32)
		}
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formatFloat(v, 64)
		}
		return v
	default:
		return *toString(v)
	}
}

func toString(value any) *string {
	var s string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		s = v
	case bool:
		s = strconv.FormatBool(v)
	case int:
		s = strconv.Itoa(v)
	case int8:
		s = strconv.FormatInt(int64(v), 10)
	case int16:
		s = strconv.FormatInt(int64(v), 10)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint:
		s = strconv.FormatUint(uint64(v), 10)
	case uint8:
		s = strconv.FormatUint(uint64(v), 10)
	case uint16:
		s = strconv.FormatUint(uint64(v), 10)
	case uint32:
		s = strconv.FormatUint(uint64(v), 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	case float32:
		s = formatFloat(float64(v), 32)
	case float64:
		s = formatFloat(v, 64)
	case []byte:
		s = string(v)
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	return &s
}

func formatFloat(f float64, bitSize int) string {
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
