// Package types defines the runtime value model and error taxonomy for the
// expression language: bool, int, float, string, array, map.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ValueType represents the type of a runtime value.
type ValueType int

const (
	TypeInvalid ValueType = iota // zero value, never produced by an expression
	TypeBool                     // bool
	TypeInt                      // int64
	TypeFloat                    // float64
	TypeString                   // string
	TypeArray                    // []Value
	TypeMap                      // ordered map of string -> Value
)

// String returns the type name used in error messages.
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value represents a runtime value. It uses a tagged union approach so
// values are cheap to copy; a Value has no identity beyond its content.
type Value struct {
	typ       ValueType
	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string
	arrayVal  []Value
	mapVal    *OrderedMap
}

// OrderedMap maintains insertion order for map keys. Maps have no literal
// syntax in the expression language; they enter evaluation through a
// Configuration or a host function result, and are what member access
// (`object.field`) navigates into.
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

// NewOrderedMap creates a new empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0),
		values: make(map[string]Value),
	}
}

// Get retrieves a value by key. Returns the value and whether it exists.
func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set adds or updates a key-value pair, preserving insertion order.
// The last write for a key wins.
func (m *OrderedMap) Set(key string, val Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = val
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	result := make([]string, len(m.keys))
	copy(result, m.keys)
	return result
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Clone creates a deep copy of the ordered map.
func (m *OrderedMap) Clone() *OrderedMap {
	c := NewOrderedMap()
	for _, k := range m.keys {
		c.Set(k, m.values[k].Clone())
	}
	return c
}

// NewBool creates a boolean value.
func NewBool(v bool) Value {
	return Value{typ: TypeBool, boolVal: v}
}

// NewInt creates an integer value (64-bit signed).
func NewInt(v int64) Value {
	return Value{typ: TypeInt, intVal: v}
}

// NewFloat creates a float value (64-bit IEEE).
func NewFloat(v float64) Value {
	return Value{typ: TypeFloat, floatVal: v}
}

// NewString creates a string value.
func NewString(v string) Value {
	return Value{typ: TypeString, stringVal: v}
}

// NewArray creates an array value from a slice of values.
func NewArray(v []Value) Value {
	return Value{typ: TypeArray, arrayVal: v}
}

// NewMap creates a map value from an OrderedMap.
func NewMap(v *OrderedMap) Value {
	return Value{typ: TypeMap, mapVal: v}
}

// Type returns the value's type.
func (v Value) Type() ValueType {
	return v.typ
}

// AsBool returns the boolean value. Panics if not a bool.
func (v Value) AsBool() bool {
	if v.typ != TypeBool {
		panic(fmt.Sprintf("AsBool called on %s value", v.typ))
	}
	return v.boolVal
}

// AsInt returns the integer value. Panics if not an int.
func (v Value) AsInt() int64 {
	if v.typ != TypeInt {
		panic(fmt.Sprintf("AsInt called on %s value", v.typ))
	}
	return v.intVal
}

// AsFloat returns the float value. Panics if not a float.
func (v Value) AsFloat() float64 {
	if v.typ != TypeFloat {
		panic(fmt.Sprintf("AsFloat called on %s value", v.typ))
	}
	return v.floatVal
}

// AsString returns the string value. Panics if not a string.
func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("AsString called on %s value", v.typ))
	}
	return v.stringVal
}

// AsArray returns the array value. Panics if not an array.
func (v Value) AsArray() []Value {
	if v.typ != TypeArray {
		panic(fmt.Sprintf("AsArray called on %s value", v.typ))
	}
	return v.arrayVal
}

// AsMap returns the map value. Panics if not a map.
func (v Value) AsMap() *OrderedMap {
	if v.typ != TypeMap {
		panic(fmt.Sprintf("AsMap called on %s value", v.typ))
	}
	return v.mapVal
}

// AsNumber returns the numeric value as float64. Works for int and float types.
func (v Value) AsNumber() (float64, bool) {
	switch v.typ {
	case TypeInt:
		return float64(v.intVal), true
	case TypeFloat:
		return v.floatVal, true
	default:
		return 0, false
	}
}

// IsNumber reports whether the value is an int or a float.
func (v Value) IsNumber() bool {
	return v.typ == TypeInt || v.typ == TypeFloat
}

// Clone creates a deep copy of the value. Scalars are value-copied.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeArray:
		items := make([]Value, len(v.arrayVal))
		for i, item := range v.arrayVal {
			items[i] = item.Clone()
		}
		return NewArray(items)
	case TypeMap:
		return NewMap(v.mapVal.Clone())
	default:
		return v
	}
}

// Equal tests deep equality between two values. An int and a float compare
// numerically (the int is promoted); all other cross-type pairs are unequal.
// Array equality is element-wise and ordered.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		if v.IsNumber() && other.IsNumber() {
			a, _ := v.AsNumber()
			b, _ := other.AsNumber()
			return a == b
		}
		return false
	}
	switch v.typ {
	case TypeBool:
		return v.boolVal == other.boolVal
	case TypeInt:
		return v.intVal == other.intVal
	case TypeFloat:
		return v.floatVal == other.floatVal
	case TypeString:
		return v.stringVal == other.stringVal
	case TypeArray:
		if len(v.arrayVal) != len(other.arrayVal) {
			return false
		}
		for i := range v.arrayVal {
			if !v.arrayVal[i].Equal(other.arrayVal[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if v.mapVal.Len() != other.mapVal.Len() {
			return false
		}
		for _, k := range v.mapVal.Keys() {
			ov, ok := other.mapVal.Get(k)
			if !ok {
				return false
			}
			mv, _ := v.mapVal.Get(k)
			if !mv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	switch v.typ {
	case TypeBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.FormatInt(v.intVal, 10)
	case TypeFloat:
		if v.floatVal == math.Trunc(v.floatVal) && !math.IsInf(v.floatVal, 0) {
			return fmt.Sprintf("%.1f", v.floatVal)
		}
		return fmt.Sprintf("%g", v.floatVal)
	case TypeString:
		return v.stringVal
	case TypeArray:
		parts := make([]string, len(v.arrayVal))
		for i, item := range v.arrayVal {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeMap:
		parts := make([]string, 0, v.mapVal.Len())
		for _, k := range v.mapVal.Keys() {
			val, _ := v.mapVal.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.String()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "<invalid>"
}

// MarshalJSON converts a Value to JSON. Map keys keep insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeBool:
		if v.boolVal {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case TypeInt:
		return json.Marshal(v.intVal)
	case TypeFloat:
		return json.Marshal(v.floatVal)
	case TypeString:
		return json.Marshal(v.stringVal)
	case TypeArray:
		items := make([]json.RawMessage, len(v.arrayVal))
		for i, item := range v.arrayVal {
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		return json.Marshal(items)
	case TypeMap:
		buf := []byte{'{'}
		for i, k := range v.mapVal.Keys() {
			if i > 0 {
				buf = append(buf, ',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, keyBytes...)
			buf = append(buf, ':')
			val, _ := v.mapVal.Get(k)
			valBytes, err := val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, valBytes...)
		}
		buf = append(buf, '}')
		return buf, nil
	}
	return nil, fmt.Errorf("cannot marshal %s value", v.typ)
}

// FromGo converts a plain Go value (as produced by yaml.Unmarshal or
// json.Unmarshal) into a Value. Map keys are sorted for determinism since
// the source map carries no order.
func FromGo(v interface{}) (Value, error) {
	switch val := v.(type) {
	case bool:
		return NewBool(val), nil
	case int:
		return NewInt(int64(val)), nil
	case int64:
		return NewInt(val), nil
	case float64:
		return NewFloat(val), nil
	case string:
		return NewString(val), nil
	case []interface{}:
		items := make([]Value, len(val))
		for i, item := range val {
			conv, err := FromGo(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = conv
		}
		return NewArray(items), nil
	case map[string]interface{}:
		m := NewOrderedMap()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			conv, err := FromGo(val[k])
			if err != nil {
				return Value{}, err
			}
			m.Set(k, conv)
		}
		return NewMap(m), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}
