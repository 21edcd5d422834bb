// Package backend selects the GPU API implementation behind gpucore.
//
// Backends register an InstanceFactory from an init() function and are
// selected at runtime. The pure Go WebGPU backend registers itself on
// import:
//
//	import _ "github.com/gogpu/rayview/backend/native"
//
// # Backend Selection
//
// Use OpenDefault to get the best available backend, or Open to request a
// specific backend by name:
//
//	inst, err := backend.OpenDefault(gputypes.BackendsPrimary)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Release()
//
// # Available Backends
//
// - "native": gogpu/wgpu over Vulkan, Metal, DX12 or GLES
package backend
