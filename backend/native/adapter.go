//go:build !nogpu

// Package native is a shader.Driver that compiles WGSL with gogpu/naga and
// turns every successfully compiled object into a HAL shader module on a
// gogpu/wgpu device.
//
// A compile succeeds only when both naga and the device accept the shader;
// a device rejection becomes the object's info log.
package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shader"
	"github.com/gogpu/shader/internal/wgslc"
)

// Device is the part of hal.Device the driver uses. Any hal.Device
// satisfies it.
type Device interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)
}

// Driver compiles WGSL shader objects into HAL shader modules.
//
// Thread Safety: the object table and module map are guarded by mutexes,
// but shader.Unit callers still need the device's threading rules.
type Driver struct {
	device Device
	table  wgslc.Table

	mu      sync.Mutex
	modules map[shader.Handle]hal.ShaderModule
	labels  map[shader.Handle]string
}

// New returns a Driver creating modules on device.
func New(device Device) (*Driver, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Driver{
		device:  device,
		modules: make(map[shader.Handle]hal.ShaderModule),
		labels:  make(map[shader.Handle]string),
	}, nil
}

// FromProvider builds a Driver on the device of a host application's
// gpucontext.DeviceProvider. The provider must implement HalDevice() any
// returning a hal.Device.
func FromProvider(provider gpucontext.DeviceProvider) (*Driver, error) {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHALDevice, hp.HalDevice())
	}
	return New(device)
}

// StageFlags maps a shader stage to its pipeline visibility flag.
// Stages WGSL cannot express map to 0.
func StageFlags(stage shader.Stage) gputypes.ShaderStage {
	switch stage {
	case shader.StageVertex:
		return gputypes.ShaderStageVertex
	case shader.StageFragment:
		return gputypes.ShaderStageFragment
	default:
		return 0
	}
}

// SetLabel sets the debug label passed to the device for h.
func (d *Driver) SetLabel(h shader.Handle, label string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.labels[h] = label
}

// CreateShader implements shader.Driver.
func (d *Driver) CreateShader(stage shader.Stage) (shader.Handle, error) {
	return d.table.Create(stage)
}

// ShaderSource implements shader.Driver. Replacing the source drops any
// module built from the previous source.
func (d *Driver) ShaderSource(h shader.Handle, sources []string) {
	d.releaseModule(h)
	d.table.SetSource(h, sources)
}

// CompileShader implements shader.Driver.
func (d *Driver) CompileShader(h shader.Handle) {
	d.releaseModule(h)
	obj := d.table.Compile(h)
	if obj == nil || !obj.Compiled {
		return
	}

	d.mu.Lock()
	label := d.labels[h]
	d.mu.Unlock()
	if label == "" {
		label = fmt.Sprintf("%s shader %d", obj.Stage, h)
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: obj.SPIRV,
		},
	})
	if err != nil {
		d.table.Fail(h, fmt.Sprintf("error: failed to create shader module: %v", err))
		return
	}

	d.mu.Lock()
	d.modules[h] = module
	d.mu.Unlock()
	shader.Logger().Debug("native: shader module created",
		"handle", uint64(h), "label", label, "words", len(obj.SPIRV))
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

// DeleteShader implements shader.Driver. It destroys the HAL module, if
// any, then forgets the object.
func (d *Driver) DeleteShader(h shader.Handle) {
	d.releaseModule(h)
	d.mu.Lock()
	delete(d.labels, h)
	d.mu.Unlock()
	d.table.Delete(h)
}

// Module returns the HAL shader module of a compiled object, or nil.
func (d *Driver) Module(h shader.Handle) hal.ShaderModule {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modules[h]
}

// Live returns the number of live shader objects.
func (d *Driver) Live() int {
	return d.table.Live()
}

func (d *Driver) releaseModule(h shader.Handle) {
	d.mu.Lock()
	module, ok := d.modules[h]
	delete(d.modules, h)
	d.mu.Unlock()
	if ok && module != nil {
		d.device.DestroyShaderModule(module)
	}
}

var _ shader.Driver = (*Driver)(nil)
