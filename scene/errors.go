// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel is returned when a model name resolves to neither
	// a registered procedural mesh nor a mesh file on disk.
	ErrUnknownModel = errors.New("scene: unknown model")

	// ErrUnknownObject is returned by lookups for object names that are
	// not live in the world.
	ErrUnknownObject = errors.New("scene: unknown object")

	// ErrNoModels is returned by spawning when the world has no models
	// to pick from.
	ErrNoModels = errors.New("scene: no models loaded")
)

// ParseError reports a malformed scene file with the 1-based line the
// problem was found on.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scene: line %d: %s", e.Line, e.Msg)
}

// DuplicateObjectError is returned under the Reject policy when a scene
// record names an object that is already live.
type DuplicateObjectError struct {
	Name string
}

func (e *DuplicateObjectError) Error() string {
	return fmt.Sprintf("scene: duplicate object %q", e.Name)
}

// RecordError wraps a failure while resolving one scene record, keeping
// the object name so callers can report which entity was lost.
type RecordError struct {
	Object string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("scene: object %q: %v", e.Object, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
