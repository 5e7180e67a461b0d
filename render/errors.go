package render

import (
	"errors"
	"fmt"
)

// Sentinel errors for the render package.
var (
	// ErrNoGPU is returned when no usable GPU backend is available.
	ErrNoGPU = errors.New("render: no GPU backend available")

	// ErrDeviceClosed is returned for operations on a closed device.
	ErrDeviceClosed = errors.New("render: device closed")

	// ErrNilResource is returned when a nil mesh, program or texture is
	// uploaded.
	ErrNilResource = errors.New("render: nil resource")
)

// UnknownHandleError is returned when a draw call references a handle
// the device never issued (or has released).
type UnknownHandleError struct {
	Kind string
	ID   uint64
}

func (e *UnknownHandleError) Error() string {
	return fmt.Sprintf("render: unknown %s handle %d", e.Kind, e.ID)
}
