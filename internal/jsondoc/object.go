package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// Object is a JSON object that remembers the order its keys were inserted in.
// Values are *Object, []interface{}, string, float64, bool or nil.
type Object struct {
	m *orderedmap.OrderedMap
}

// NewObject returns an empty object.
func NewObject() *Object {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return &Object{m: m}
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	keys := o.m.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.m.Keys()) }

// Get returns the value stored under key.
func (o *Object) Get(key string) (interface{}, bool) {
	return o.m.Get(key)
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (o *Object) Set(key string, value interface{}) {
	o.m.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.m.Get(key); !ok {
		return false
	}
	o.m.Delete(key)
	return true
}

// Object returns the nested object under key, if the value is one.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.m.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Object)
	return child, ok
}

// String returns the string value under key, if the value is one.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Ensure returns the nested object under key, creating it when missing or
// when the existing value is not an object.
func (o *Object) Ensure(key string) *Object {
	if child, ok := o.Object(key); ok {
		return child
	}
	child := NewObject()
	o.Set(key, child)
	return child
}

// SortKeys reorders the keys alphabetically.
func (o *Object) SortKeys() {
	o.m.SortKeys(sort.Strings)
}

// MarshalJSON encodes the object with keys in document order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.m.MarshalJSON()
}

// Marshal renders the object with two-space indentation and a trailing newline.
func Marshal(o *Object) ([]byte, error) {
	raw, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Parse decodes a JSON document whose top-level value is an object.
func Parse(data []byte) (*Object, error) {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing JSON object: %w", err)
	}
	return adopt(m), nil
}

// adopt wraps m and every object nested in it. orderedmap stores nested
// objects by value, so they are re-homed behind pointers to keep edits made
// through a child visible in the parent.
func adopt(m *orderedmap.OrderedMap) *Object {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		m.Set(k, adoptValue(v))
	}
	return &Object{m: m}
}

func adoptValue(v interface{}) interface{} {
	switch val := v.(type) {
	case orderedmap.OrderedMap:
		nested := val
		nested.SetEscapeHTML(false)
		return adopt(&nested)
	case *orderedmap.OrderedMap:
		val.SetEscapeHTML(false)
		return adopt(val)
	case []interface{}:
		for i, item := range val {
			val[i] = adoptValue(item)
		}
		return val
	default:
		return v
	}
}
