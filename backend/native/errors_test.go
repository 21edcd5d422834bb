package native

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/wgpu"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		in   error
		want error
	}{
		{wgpu.ErrSurfaceLost, gpucore.ErrSurfaceLost},
		{wgpu.ErrSurfaceOutdated, gpucore.ErrSurfaceOutdated},
		{wgpu.ErrTimeout, gpucore.ErrTimeout},
		{wgpu.ErrOutOfMemory, gpucore.ErrOutOfMemory},
		{fmt.Errorf("acquire: %w", wgpu.ErrOutOfMemory), gpucore.ErrOutOfMemory},
		{wgpu.ErrDeviceLost, gpucore.ErrSurfaceLost},
		{wgpu.ErrNoAdapters, gpucore.ErrNoAdapter},
	}
	for _, tt := range tests {
		got := mapError(tt.in)
		if !errors.Is(got, tt.want) {
			t.Errorf("mapError(%v) = %v, want match for %v", tt.in, got, tt.want)
		}
		if !errors.Is(got, tt.in) {
			t.Errorf("mapError(%v) lost the original error", tt.in)
		}
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	if mapError(nil) != nil {
		t.Error("mapError(nil) != nil")
	}
	other := errors.New("other")
	if got := mapError(other); got != other {
		t.Errorf("mapError(other) = %v, want unchanged", got)
	}
}
