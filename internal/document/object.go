// Package document holds the JSON tree the transformation engine works on.
//
// A tree is a Go value made of:
//   - nil for null
//   - bool
//   - string
//   - json.Number for numbers, keeping their source text
//   - []any for arrays
//   - *Object for objects, which keep member insertion order
//
// Member order is significant: shift visits children in document order and
// the order of values collected at one output location follows it.
package document

import (
	"iter"
	"slices"
)

// Object is an insertion-ordered JSON object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object with room for capacity members.
func NewObject(capacity int) *Object {
	return &Object{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set replaces the value of an existing key in place or appends a new member.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates members in order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, key := range o.keys {
			if !yield(key, o.values[key]) {
				return
			}
		}
	}
}

// Equal reports semantic equality: same members with equal values, in any order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for key, value := range o.All() {
		otherValue, ok := other.Get(key)
		if !ok || !Equal(value, otherValue) {
			return false
		}
	}
	return true
}
