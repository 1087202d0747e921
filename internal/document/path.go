package document

import (
	"slices"
	"strconv"

	"github.com/jacoelho/jolt/internal/number"
)

// Leaf is a scalar value together with the member names and array indices
// leading to it.
type Leaf struct {
	Path  []string
	Value any
}

// Leaves lists the scalar leaves of tree depth-first in document order.
// Array elements contribute their decimal index as a path segment. Empty
// containers have no leaves.
func Leaves(tree any) []Leaf {
	var leaves []Leaf
	collectLeaves(tree, nil, &leaves)
	return leaves
}

func collectLeaves(node any, prefix []string, leaves *[]Leaf) {
	switch current := node.(type) {
	case *Object:
		for key, value := range current.All() {
			collectLeaves(value, appendSegment(prefix, key), leaves)
		}
	case []any:
		for i, value := range current {
			collectLeaves(value, appendSegment(prefix, strconv.Itoa(i)), leaves)
		}
	default:
		*leaves = append(*leaves, Leaf{Path: prefix, Value: node})
	}
}

func appendSegment(prefix []string, segment string) []string {
	out := make([]string, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, segment)
}

// Lookup follows path from root and reports whether every segment exists.
func Lookup(root any, path []string) (any, bool) {
	current := root
	for _, segment := range path {
		switch node := current.(type) {
		case *Object:
			child, ok := node.Get(segment)
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			index, err := number.ParseIndex(segment)
			if err != nil || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// Insert places value at path, creating intermediate objects where the tree
// has nothing (or null). An array segment must address an existing element
// or the slot right after the last one. It returns the updated root and
// whether the value was placed; an existing scalar on the way blocks the
// insertion.
func Insert(root any, path []string, value any) (any, bool) {
	if len(path) == 0 {
		return root, false
	}
	return insertAt(root, path, value)
}

func insertAt(node any, path []string, value any) (any, bool) {
	if len(path) == 0 {
		return value, true
	}

	segment, rest := path[0], path[1:]
	switch current := node.(type) {
	case nil:
		obj := NewObject(1)
		child, ok := insertAt(nil, rest, value)
		if !ok {
			return node, false
		}
		obj.Set(segment, child)
		return obj, true
	case *Object:
		existing, _ := current.Get(segment)
		child, ok := insertAt(existing, rest, value)
		if !ok {
			return node, false
		}
		current.Set(segment, child)
		return current, true
	case []any:
		index, err := number.ParseIndex(segment)
		if err != nil || index > len(current) {
			return node, false
		}
		if index == len(current) {
			child, ok := insertAt(nil, rest, value)
			if !ok {
				return node, false
			}
			return append(current, child), true
		}
		child, ok := insertAt(current[index], rest, value)
		if !ok {
			return node, false
		}
		current[index] = child
		return current, true
	default:
		return node, false
	}
}

// Delete removes the member or array element at path. Removing an array
// element shifts the following elements down. It returns the updated root
// and whether anything was removed.
func Delete(root any, path []string) (any, bool) {
	if len(path) == 0 {
		return root, false
	}
	return deleteAt(root, path)
}

func deleteAt(node any, path []string) (any, bool) {
	segment, rest := path[0], path[1:]
	switch current := node.(type) {
	case *Object:
		if len(rest) == 0 {
			return current, current.Delete(segment)
		}
		child, ok := current.Get(segment)
		if !ok {
			return current, false
		}
		updated, removed := deleteAt(child, rest)
		if removed {
			current.Set(segment, updated)
		}
		return current, removed
	case []any:
		index, err := number.ParseIndex(segment)
		if err != nil || index >= len(current) {
			return current, false
		}
		if len(rest) == 0 {
			return slices.Delete(current, index, index+1), true
		}
		updated, removed := deleteAt(current[index], rest)
		if removed {
			current[index] = updated
		}
		return current, removed
	default:
		return node, false
	}
}
