// Package shader compiles single GPU shader objects.
//
// # Overview
//
// A [Unit] owns exactly one driver-resident shader object for one pipeline
// stage. [New] asks the driver for the object, submits the source
// fragments, compiles them and checks the status. On failure the object is
// deleted before [New] returns, and the returned [*CompileError] carries
// the driver's info log.
//
//	u, err := shader.New(drv, shader.StageVertex, []string{header, body})
//	if err != nil {
//	    return err // "Failed to compile vertex shader\n0:12(3): error: ..."
//	}
//	defer u.Destroy()
//
// # Drivers
//
// The graphics driver is the [Driver] interface, a direct mirror of the
// glCreateShader / glShaderSource / glCompileShader family. Implementations:
//   - backend/opengl: the current OpenGL context via go-gl
//   - backend/naga: in-process WGSL compilation via gogpu/naga
//   - backend/native: naga plus HAL shader modules via gogpu/wgpu
//   - backend/glslang: the glslangValidator reference compiler
//   - shadertest: an in-memory test double
//
// # Threading
//
// A Unit does no locking. Graphics contexts are usually bound to one OS
// thread, so every call on a Unit must happen on the thread that owns the
// driver's context.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package shader
