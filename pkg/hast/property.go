package hast

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// PropertyKind classifies a property value.
type PropertyKind uint8

const (
	PropertyNull PropertyKind = iota
	PropertyBool
	PropertyNumber
	PropertyString
	PropertyList
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyNull:
		return "null"
	case PropertyBool:
		return "boolean"
	case PropertyNumber:
		return "number"
	case PropertyString:
		return "string"
	case PropertyList:
		return "list"
	default:
		return "unknown"
	}
}

// PropertyValue is the value of an element property: null, a boolean, a
// number, a string, or a list of strings and numbers.
// The zero value is null.
type PropertyValue struct {
	kind    PropertyKind
	boolean bool
	number  float64
	str     string
	list    []ListEntry
}

// ListEntry is one item of a list property: a string or a number.
type ListEntry struct {
	str      string
	number   float64
	isNumber bool
}

// Null returns the null property value.
func Null() PropertyValue { return PropertyValue{} }

// Bool returns a boolean property value.
func Bool(b bool) PropertyValue { return PropertyValue{kind: PropertyBool, boolean: b} }

// Number returns a numeric property value.
func Number(n float64) PropertyValue { return PropertyValue{kind: PropertyNumber, number: n} }

// String returns a string property value.
func String(s string) PropertyValue { return PropertyValue{kind: PropertyString, str: s} }

// List returns a list property value.
func List(entries ...ListEntry) PropertyValue {
	return PropertyValue{kind: PropertyList, list: slices.Clone(entries)}
}

// Strings returns a list property value of strings, e.g. a class list.
func Strings(items ...string) PropertyValue {
	entries := make([]ListEntry, len(items))
	for i, s := range items {
		entries[i] = StringEntry(s)
	}
	return PropertyValue{kind: PropertyList, list: entries}
}

// StringEntry returns a string list entry.
func StringEntry(s string) ListEntry { return ListEntry{str: s} }

// NumberEntry returns a numeric list entry.
func NumberEntry(n float64) ListEntry { return ListEntry{number: n, isNumber: true} }

// Kind returns the value's kind.
func (v PropertyValue) Kind() PropertyKind { return v.kind }

// IsNull returns true for the null value.
func (v PropertyValue) IsNull() bool { return v.kind == PropertyNull }

// AsBool returns the boolean and whether the value is a boolean.
func (v PropertyValue) AsBool() (bool, bool) { return v.boolean, v.kind == PropertyBool }

// AsNumber returns the number and whether the value is a number.
func (v PropertyValue) AsNumber() (float64, bool) { return v.number, v.kind == PropertyNumber }

// AsString returns the string and whether the value is a string.
func (v PropertyValue) AsString() (string, bool) { return v.str, v.kind == PropertyString }

// AsList returns the entries and whether the value is a list.
func (v PropertyValue) AsList() ([]ListEntry, bool) {
	if v.kind != PropertyList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Interface returns the value as plain Go data: nil, bool, float64, string,
// or []any holding strings and float64s.
func (v PropertyValue) Interface() any {
	switch v.kind {
	case PropertyBool:
		return v.boolean
	case PropertyNumber:
		return v.number
	case PropertyString:
		return v.str
	case PropertyList:
		out := make([]any, len(v.list))
		for i, entry := range v.list {
			out[i] = entry.Interface()
		}
		return out
	default:
		return nil
	}
}

// Text renders the value the way it would appear in an attribute.
// Lists are joined with spaces.
func (v PropertyValue) Text() string {
	switch v.kind {
	case PropertyBool:
		return strconv.FormatBool(v.boolean)
	case PropertyNumber:
		return formatNumber(v.number)
	case PropertyString:
		return v.str
	case PropertyList:
		parts := make([]string, len(v.list))
		for i, entry := range v.list {
			parts[i] = entry.Text()
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// MarshalJSON encodes the value as its plain JSON form.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v PropertyValue) validate() error {
	if v.kind == PropertyNumber {
		if _, err := numberEntry(v.number); err != nil {
			return err
		}
	}
	for i, entry := range v.list {
		if entry.isNumber {
			if _, err := numberEntry(entry.number); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func (v PropertyValue) clone() PropertyValue {
	v.list = slices.Clone(v.list)
	return v
}

// IsNumber returns true for numeric entries.
func (e ListEntry) IsNumber() bool { return e.isNumber }

// AsString returns the string and whether the entry is a string.
func (e ListEntry) AsString() (string, bool) { return e.str, !e.isNumber }

// AsNumber returns the number and whether the entry is a number.
func (e ListEntry) AsNumber() (float64, bool) { return e.number, e.isNumber }

// Interface returns the entry as a string or float64.
func (e ListEntry) Interface() any {
	if e.isNumber {
		return e.number
	}
	return e.str
}

// Text returns the entry as text.
func (e ListEntry) Text() string {
	if e.isNumber {
		return formatNumber(e.number)
	}
	return e.str
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// PropertyValueOf converts dynamic Go data into a PropertyValue.
// Accepted: nil, bool, any integer or float type, string, []string, []int,
// []float64, and []any whose items are strings or numbers. NaN and
// infinities are rejected. Anything else is an error, never coerced.
func PropertyValueOf(value any) (PropertyValue, error) {
	switch val := value.(type) {
	case nil:
		return Null(), nil
	case PropertyValue:
		if err := val.validate(); err != nil {
			return PropertyValue{}, err
		}
		return val.clone(), nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case []string:
		return Strings(val...), nil
	case []int:
		entries := make([]ListEntry, len(val))
		for i, n := range val {
			entries[i] = NumberEntry(float64(n))
		}
		return PropertyValue{kind: PropertyList, list: entries}, nil
	case []float64:
		entries := make([]ListEntry, len(val))
		for i, n := range val {
			entry, err := numberEntry(n)
			if err != nil {
				return PropertyValue{}, fmt.Errorf("item %d: %w", i, err)
			}
			entries[i] = entry
		}
		return PropertyValue{kind: PropertyList, list: entries}, nil
	case []any:
		entries := make([]ListEntry, len(val))
		for i, item := range val {
			entry, err := listEntryOf(item)
			if err != nil {
				return PropertyValue{}, fmt.Errorf("item %d: %w", i, err)
			}
			entries[i] = entry
		}
		return PropertyValue{kind: PropertyList, list: entries}, nil
	}

	if n, ok := toFloat(value); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return PropertyValue{}, fmt.Errorf("number %v is not finite", n)
		}
		return Number(n), nil
	}

	return PropertyValue{}, fmt.Errorf("unsupported property value type %T", value)
}

func listEntryOf(item any) (ListEntry, error) {
	if s, ok := item.(string); ok {
		return StringEntry(s), nil
	}
	if n, ok := toFloat(item); ok {
		return numberEntry(n)
	}
	return ListEntry{}, fmt.Errorf("unsupported list item type %T", item)
}

func numberEntry(n float64) (ListEntry, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return ListEntry{}, fmt.Errorf("number %v is not finite", n)
	}
	return NumberEntry(n), nil
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
