package gpucore

import "errors"

// Frame acquisition failures. Backends wrap their native errors so that
// errors.Is matches one of these.
var (
	// ErrSurfaceLost means the surface must be reconfigured before use.
	ErrSurfaceLost = errors.New("gpucore: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("gpucore: surface outdated")

	// ErrTimeout means no image became available in time.
	ErrTimeout = errors.New("gpucore: timeout acquiring surface texture")

	// ErrOutOfMemory means the device ran out of memory.
	ErrOutOfMemory = errors.New("gpucore: out of memory")
)

// Resource errors.
var (
	// ErrInvalidID is returned when an ID does not name a live resource.
	ErrInvalidID = errors.New("gpucore: invalid resource id")

	// ErrReleased is returned when a released object is used.
	ErrReleased = errors.New("gpucore: object released")

	// ErrNoAdapter is returned when no adapter matches the request.
	ErrNoAdapter = errors.New("gpucore: no compatible adapter")
)
