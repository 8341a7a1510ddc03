//go:build !nogpu && cgo

// Package opengl is a shader.Driver for the current OpenGL 3.3 core
// context, using go-gl.
//
// OpenGL contexts are bound to one OS thread. Call Init and every
// shader.New / Unit.Destroy on the goroutine that made the context
// current, with runtime.LockOSThread in effect.
package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/shader"
)

var (
	// ErrUnsupportedStage is returned for stages without a GL shader type.
	ErrUnsupportedStage = shader.ErrUnsupportedStage

	// ErrCreateShader is returned when glCreateShader returns 0.
	ErrCreateShader = errors.New("opengl: glCreateShader returned 0")
)

// Init loads the GL function pointers for the current context.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init: %w", err)
	}
	shader.Logger().Info("opengl: initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

// Driver issues shader calls against the current GL context.
// It holds no state; any number of Drivers share the context.
type Driver struct{}

// New returns a Driver. Init must have succeeded first.
func New() *Driver {
	return &Driver{}
}

// ShaderType maps a stage to its GL enum.
func ShaderType(stage shader.Stage) (uint32, bool) {
	switch stage {
	case shader.StageVertex:
		return gl.VERTEX_SHADER, true
	case shader.StageFragment:
		return gl.FRAGMENT_SHADER, true
	case shader.StageGeometry:
		return gl.GEOMETRY_SHADER, true
	default:
		return 0, false
	}
}

// CreateShader implements shader.Driver.
func (d *Driver) CreateShader(stage shader.Stage) (shader.Handle, error) {
	typ, ok := ShaderType(stage)
	if !ok {
		return shader.InvalidHandle, fmt.Errorf("%w: %s", ErrUnsupportedStage, stage)
	}
	id := gl.CreateShader(typ)
	if id == 0 {
		return shader.InvalidHandle, fmt.Errorf("%w (glGetError %#x)", ErrCreateShader, gl.GetError())
	}
	return shader.Handle(id), nil
}

// ShaderSource implements shader.Driver. The fragments are passed with
// explicit lengths, so they need no NUL terminator.
func (d *Driver) ShaderSource(h shader.Handle, sources []string) {
	if len(sources) == 0 {
		return
	}
	csources, free := gl.Strs(sources...)
	defer free()

	lengths := make([]int32, len(sources))
	for i, s := range sources {
		lengths[i] = int32(len(s))
	}
	gl.ShaderSource(uint32(h), int32(len(sources)), csources, &lengths[0])
}

// CompileShader implements shader.Driver.
func (d *Driver) CompileShader(h shader.Handle) {
	gl.CompileShader(uint32(h))
}

// CompileStatus implements shader.Driver.
func (d *Driver) CompileStatus(h shader.Handle) bool {
	var status int32
	gl.GetShaderiv(uint32(h), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// InfoLogLength implements shader.Driver. The value includes the NUL.
func (d *Driver) InfoLogLength(h shader.Handle) int {
	var n int32
	gl.GetShaderiv(uint32(h), gl.INFO_LOG_LENGTH, &n)
	return int(n)
}

// InfoLog implements shader.Driver. Only the bytes the driver reports as
// written are returned.
func (d *Driver) InfoLog(h shader.Handle, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	buf := make([]uint8, maxLength+1)
	var written int32
	gl.GetShaderInfoLog(uint32(h), int32(maxLength), &written, &buf[0])
	return string(buf[:clampLog(written, maxLength)])
}

// DeleteShader implements shader.Driver.
func (d *Driver) DeleteShader(h shader.Handle) {
	gl.DeleteShader(uint32(h))
}

// clampLog bounds the written count a driver reports to the buffer size.
func clampLog(written int32, maxLength int) int {
	switch {
	case written < 0:
		return 0
	case int(written) > maxLength:
		return maxLength
	default:
		return int(written)
	}
}

var _ shader.Driver = (*Driver)(nil)
