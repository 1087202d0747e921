// Package defaults fills in values that are missing from a document.
package defaults

import (
	"github.com/jacoelho/jolt/internal/document"
)

// Apply inserts every leaf of spec whose path is absent from input. Present
// paths, including ones holding null, are left untouched. Leaves that cannot
// be placed, because a scalar or a short array is in the way, are skipped.
// input is modified and the updated root is returned.
func Apply(input any, spec *document.Object) any {
	for _, leaf := range document.Leaves(spec) {
		if _, ok := document.Lookup(input, leaf.Path); ok {
			continue
		}
		input, _ = document.Insert(input, leaf.Path, document.Clone(leaf.Value))
	}
	return input
}
