package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/rayview/internal/gpucore/gpucoretest"
)

func fakeFactory(got *gputypes.Backends) InstanceFactory {
	return func(b gputypes.Backends) (gpucore.Instance, error) {
		*got = b
		inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
		return inst, nil
	}
}

func TestRegistryRegisterAndOpen(t *testing.T) {
	var got gputypes.Backends
	Register("test-open", fakeFactory(&got))
	defer Unregister("test-open")

	if !IsRegistered("test-open") {
		t.Fatal("test-open should be registered")
	}
	inst, err := Open("test-open", gputypes.BackendsVulkan)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer inst.Release()
	if got != gputypes.BackendsVulkan {
		t.Errorf("factory got backends %v, want Vulkan", got)
	}
}

func TestRegistryOpenUnregistered(t *testing.T) {
	_, err := Open("nonexistent", gputypes.BackendsAll)
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryAvailableSorted(t *testing.T) {
	var got gputypes.Backends
	Register("test-b", fakeFactory(&got))
	Register("test-a", fakeFactory(&got))
	defer Unregister("test-a")
	defer Unregister("test-b")

	names := Available()
	if !slices.IsSorted(names) {
		t.Errorf("Available() = %v, not sorted", names)
	}
	if !slices.Contains(names, "test-a") || !slices.Contains(names, "test-b") {
		t.Errorf("Available() = %v, missing test backends", names)
	}
}

func TestRegistryUnregister(t *testing.T) {
	var got gputypes.Backends
	Register("test-backend", fakeFactory(&got))

	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")

	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func TestOpenDefaultSkipsFailingBackends(t *testing.T) {
	for _, name := range Available() {
		Unregister(name)
	}
	if _, err := OpenDefault(gputypes.BackendsAll); !errors.Is(err, ErrBackendNotAvailable) {
		t.Fatalf("OpenDefault with no backends = %v, want ErrBackendNotAvailable", err)
	}

	Register("a-broken", func(gputypes.Backends) (gpucore.Instance, error) {
		return nil, errors.New("no driver")
	})
	var got gputypes.Backends
	Register("b-working", fakeFactory(&got))
	defer Unregister("a-broken")
	defer Unregister("b-working")

	inst, err := OpenDefault(gputypes.BackendsPrimary)
	if err != nil {
		t.Fatalf("OpenDefault: %v", err)
	}
	defer inst.Release()
	if got != gputypes.BackendsPrimary {
		t.Errorf("working backend got %v, want Primary", got)
	}
}

func TestOpenDefaultReportsLastError(t *testing.T) {
	for _, name := range Available() {
		Unregister(name)
	}
	cause := errors.New("no driver")
	Register("only-broken", func(gputypes.Backends) (gpucore.Instance, error) {
		return nil, cause
	})
	defer Unregister("only-broken")

	_, err := OpenDefault(gputypes.BackendsAll)
	if !errors.Is(err, ErrBackendNotAvailable) || !errors.Is(err, cause) {
		t.Errorf("OpenDefault error = %v, want both ErrBackendNotAvailable and the cause", err)
	}
}
