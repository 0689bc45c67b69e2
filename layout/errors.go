package layout

import "fmt"

// StructuralError reports a call that breaks the open/close nesting protocol:
// a close that does not match the open scope, a list item outside a list,
// a row outside a table, a cell outside a row, or an attempt to pop the root.
// It always points at a bug in the caller, never at bad input.
type StructuralError struct {
	Op   string // builder method, e.g. "OpenListItem"
	Want string // scope the operation needs
	Got  Kind   // scope that was current
	Root bool   // the operation tried to close the root block
}

func (e *StructuralError) Error() string {
	if e.Root {
		return fmt.Sprintf("layout: %s: cannot close the root block", e.Op)
	}
	return fmt.Sprintf("layout: %s requires an enclosing %s, got %s", e.Op, e.Want, e.Got)
}
