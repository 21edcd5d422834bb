// Package gpucore defines the GPU capability set used by the frame
// orchestration packages.
//
// The interfaces here cover exactly what rayview needs from a GPU API:
// adapter and device negotiation, surface configuration and acquisition,
// shader modules, render pipelines, bind groups, buffers, textures and
// command recording. Resources are referenced by opaque IDs so that
// callers never hold backend objects directly.
//
// The only failure codes callers are expected to branch on are the four
// acquisition sentinels: ErrSurfaceLost, ErrSurfaceOutdated, ErrTimeout
// and ErrOutOfMemory.
package gpucore
