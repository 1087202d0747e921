// Package remove deletes paths from a document.
package remove

import (
	"slices"

	"github.com/jacoelho/jolt/internal/document"
)

// Apply deletes every path named by a leaf of spec; leaf values are ignored.
// Absent paths are not an error. Leaves are processed last to first so that
// removing an array element does not shift the indices of later entries.
// input is modified and the updated root is returned.
func Apply(input any, spec *document.Object) any {
	leaves := document.Leaves(spec)
	for _, leaf := range slices.Backward(leaves) {
		input, _ = document.Delete(input, leaf.Path)
	}
	return input
}
