package backend

import "errors"

// Backend names.
const (
	// BackendNative is the pure Go WebGPU implementation.
	BackendNative = "native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)
