package spec

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jacoelho/jolt/internal/document"
)

var ErrInvalidSpec = errors.New("invalid spec")

const (
	fieldOperation = "operation"
	fieldSpec      = "spec"
)

var validOperations = []Operation{
	OperationShift,
	OperationDefault,
	OperationRemove,
}

// ValidateStage checks the shape of one {"operation", "spec"} entry and
// returns its operation and spec tree.
func ValidateStage(raw any) (Operation, *document.Object, error) {
	entry, ok := raw.(*document.Object)
	if !ok || entry == nil {
		return "", nil, fmt.Errorf("entry must be an object, got %s", document.TypeName(raw))
	}

	for key := range entry.All() {
		if key != fieldOperation && key != fieldSpec {
			return "", nil, fmt.Errorf("unknown field '%s'", key)
		}
	}

	rawOperation, ok := entry.Get(fieldOperation)
	if !ok {
		return "", nil, requiredField(fieldOperation)
	}
	name, ok := rawOperation.(string)
	if !ok {
		return "", nil, fmt.Errorf("'%s' must be a string, got %s", fieldOperation, document.TypeName(rawOperation))
	}
	operation := Operation(name)
	if !slices.Contains(validOperations, operation) {
		return "", nil, fmt.Errorf("unsupported operation: %s", name)
	}

	rawSpec, ok := entry.Get(fieldSpec)
	if !ok {
		return "", nil, requiredField(fieldSpec)
	}
	tree, ok := rawSpec.(*document.Object)
	if !ok || tree == nil {
		return "", nil, fmt.Errorf("%s '%s' must be an object, got %s", name, fieldSpec, document.TypeName(rawSpec))
	}

	return operation, tree, nil
}

func requiredField(fieldName string) error {
	return fmt.Errorf("missing required '%s' field", fieldName)
}

// SupportedOperations lists the operation names a stage may use.
func SupportedOperations() []Operation {
	return slices.Clone(validOperations)
}
