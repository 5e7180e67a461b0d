package mesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for the mesh package.
var (
	// ErrNoName is returned when a mesh has no n directive.
	ErrNoName = errors.New("mesh: missing name directive")

	// ErrNoVertices is returned when a mesh has no v directives.
	ErrNoVertices = errors.New("mesh: no vertices")

	// ErrAttributeLength is returned when an optional per-vertex
	// attribute does not run parallel to the positions.
	ErrAttributeLength = errors.New("mesh: attribute length mismatch")
)

// ParseError describes a malformed directive with its line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mesh: line %d: %s", e.Line, e.Msg)
}

// IndexRangeError is returned when an index references a vertex that
// does not exist.
type IndexRangeError struct {
	Index       uint16
	VertexCount int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("mesh: index %d out of range for %d vertices", e.Index, e.VertexCount)
}
