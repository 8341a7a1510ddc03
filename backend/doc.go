// Package backend is the registry of named shader drivers.
//
// Drivers that need no host context register themselves from init(), so
// importing them for side effects makes them selectable by name:
//
//	import (
//		"github.com/gogpu/shader/backend"
//		_ "github.com/gogpu/shader/backend/glslang"
//		_ "github.com/gogpu/shader/backend/naga"
//	)
//
//	drv, err := backend.Open("naga")
//
// # Available Drivers
//
//   - "naga": WGSL compiled in process (registered by backend/naga)
//   - "glslang": glslangValidator (registered by backend/glslang)
//
// backend/opengl and backend/native need a live GL context or HAL device
// and are constructed directly instead.
package backend
