// Package naga is a shader.Driver that compiles WGSL in process with
// gogpu/naga. No GPU is needed; a compiled object holds SPIR-V words.
//
// WGSL has no geometry stage, so CreateShader rejects it.
package naga

import (
	"strings"

	"github.com/gogpu/shader"
	"github.com/gogpu/shader/internal/wgslc"
)

// Errors returned by CreateShader.
var (
	ErrUnsupportedStage = wgslc.ErrUnsupportedStage
	ErrTooManyObjects   = wgslc.ErrTooManyObjects
)

// Option configures a Driver.
type Option func(*Driver)

// WithMaxObjects caps the number of live shader objects. Past the cap
// CreateShader fails, which shader.New reports as resource exhaustion.
func WithMaxObjects(n int) Option {
	return func(d *Driver) {
		d.table.Max = n
	}
}

// Driver compiles WGSL shader objects.
type Driver struct {
	table wgslc.Table
}

// New returns a Driver.
func New(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateShader implements shader.Driver.
func (d *Driver) CreateShader(stage shader.Stage) (shader.Handle, error) {
	return d.table.Create(stage)
}

// ShaderSource implements shader.Driver.
func (d *Driver) ShaderSource(h shader.Handle, sources []string) {
	d.table.SetSource(h, sources)
}

// CompileShader implements shader.Driver.
func (d *Driver) CompileShader(h shader.Handle) {
	obj := d.table.Compile(h)
	if obj != nil && !obj.Compiled {
		shader.Logger().Debug("naga: compile failed", "handle", uint64(h), "stage", obj.Stage.String())
	}
}

// CompileStatus implements shader.Driver.
func (d *Driver) CompileStatus(h shader.Handle) bool {
	return d.table.Status(h)
}

// InfoLogLength implements shader.Driver.
func (d *Driver) InfoLogLength(h shader.Handle) int {
	return d.table.LogLength(h)
}

// InfoLog implements shader.Driver.
func (d *Driver) InfoLog(h shader.Handle, maxLength int) string {
	return d.table.Log(h, maxLength)
}

// DeleteShader implements shader.Driver.
func (d *Driver) DeleteShader(h shader.Handle) {
	d.table.Delete(h)
}

// SPIRV returns a copy of the SPIR-V words of a compiled object, or nil.
func (d *Driver) SPIRV(h shader.Handle) []uint32 {
	if obj := d.table.Get(h); obj != nil && obj.Compiled {
		return obj.SPIRV
	}
	return nil
}

// Source returns the concatenated source of a live object.
func (d *Driver) Source(h shader.Handle) string {
	if obj := d.table.Get(h); obj != nil {
		return strings.Join(obj.Sources, "")
	}
	return ""
}

// Live returns the number of live shader objects.
func (d *Driver) Live() int {
	return d.table.Live()
}

var _ shader.Driver = (*Driver)(nil)
