package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/wgpu"
)

// errorMap pairs wgpu failures with the gpucore sentinels callers branch on.
var errorMap = []struct {
	native error
	core   error
}{
	{wgpu.ErrSurfaceLost, gpucore.ErrSurfaceLost},
	{wgpu.ErrSurfaceOutdated, gpucore.ErrSurfaceOutdated},
	{wgpu.ErrTimeout, gpucore.ErrTimeout},
	{wgpu.ErrOutOfMemory, gpucore.ErrOutOfMemory},
	{wgpu.ErrDeviceLost, gpucore.ErrSurfaceLost},
	{wgpu.ErrReleased, gpucore.ErrReleased},
	{wgpu.ErrNoAdapters, gpucore.ErrNoAdapter},
}

// mapError wraps err so that errors.Is matches both the wgpu error and the
// corresponding gpucore sentinel.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range errorMap {
		if errors.Is(err, m.native) {
			return fmt.Errorf("%w: %w", m.core, err)
		}
	}
	return err
}
