// Package glslang is a shader.Driver backed by glslangValidator, the
// Khronos reference GLSL compiler. It needs no GPU, so it suits CI and
// offline checking of all three stages, geometry included.
package glslang

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gogpu/shader"
)

// DefaultBin is the validator executable looked up in PATH.
const DefaultBin = "glslangValidator"

// ErrUnsupportedStage is returned for stages the validator cannot name.
var ErrUnsupportedStage = shader.ErrUnsupportedStage

// Option configures a Driver.
type Option func(*Driver)

// WithBin sets the validator executable.
func WithBin(bin string) Option {
	return func(d *Driver) {
		d.bin = bin
	}
}

// WithTimeout bounds each validator run. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// WithArgs appends extra validator arguments, e.g. "-DHLSL".
func WithArgs(args ...string) Option {
	return func(d *Driver) {
		d.args = append(d.args, args...)
	}
}

// Driver runs glslangValidator once per compile.
type Driver struct {
	bin     string
	timeout time.Duration
	args    []string

	mu      sync.Mutex
	next    shader.Handle
	objects map[shader.Handle]*object
}

type object struct {
	stage    shader.Stage
	sources  []string
	compiled bool
	log      string
}

// New returns a Driver using DefaultBin.
func New(opts ...Option) *Driver {
	d := &Driver{
		bin:     DefaultBin,
		objects: make(map[shader.Handle]*object),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// stageSuffix returns the validator's -S argument for stage.
func stageSuffix(stage shader.Stage) string {
	switch stage {
	case shader.StageVertex:
		return "vert"
	case shader.StageFragment:
		return "frag"
	case shader.StageGeometry:
		return "geom"
	default:
		return ""
	}
}

// CreateShader implements shader.Driver. It fails when the validator is
// not installed, since nothing could ever compile.
func (d *Driver) CreateShader(stage shader.Stage) (shader.Handle, error) {
	if stageSuffix(stage) == "" {
		return shader.InvalidHandle, fmt.Errorf("%w: %s", ErrUnsupportedStage, stage)
	}
	if _, err := exec.LookPath(d.bin); err != nil {
		return shader.InvalidHandle, fmt.Errorf("glslang: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.objects[d.next] = &object{stage: stage}
	return d.next, nil
}

// ShaderSource implements shader.Driver.
func (d *Driver) ShaderSource(h shader.Handle, sources []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if obj := d.objects[h]; obj != nil {
		obj.sources = append([]string(nil), sources...)
		obj.compiled, obj.log = false, ""
	}
}

// CompileShader implements shader.Driver. The fragments are joined and fed
// to the validator on stdin; a non-zero exit fails the compile and the
// validator's output becomes the info log.
func (d *Driver) CompileShader(h shader.Handle) {
	d.mu.Lock()
	obj := d.objects[h]
	if obj == nil {
		d.mu.Unlock()
		return
	}
	stage, src := obj.stage, strings.Join(obj.sources, "")
	d.mu.Unlock()

	ok, log := d.run(stage, src)

	d.mu.Lock()
	defer d.mu.Unlock()
	obj.compiled, obj.log = ok, log
}

func (d *Driver) run(stage shader.Stage, src string) (bool, string) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	args := append([]string{"--stdin", "-S", stageSuffix(stage)}, d.args...)
	cmd := exec.CommandContext(ctx, d.bin, args...)
	cmd.Stdin = strings.NewReader(src)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return true, ""
	}
	log := strings.TrimSpace(out.String())
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || log == "" {
		// No diagnostics from the tool itself: report why it did not run.
		log = strings.TrimSpace(log + "\n" + fmt.Sprintf("failed to run %v: %v", cmd.Args, err))
	}
	shader.Logger().Debug("glslang: validation failed", "stage", stage.String(), "err", err)
	return false, log
}

// CompileStatus implements shader.Driver.
func (d *Driver) CompileStatus(h shader.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj := d.objects[h]
	return obj != nil && obj.compiled
}

// InfoLogLength implements shader.Driver. It reports the log length
// without a terminator.
func (d *Driver) InfoLogLength(h shader.Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if obj := d.objects[h]; obj != nil {
		return len(obj.log)
	}
	return 0
}

// InfoLog implements shader.Driver.
func (d *Driver) InfoLog(h shader.Handle, maxLength int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj := d.objects[h]
	if obj == nil || maxLength <= 0 {
		return ""
	}
	if len(obj.log) > maxLength {
		return obj.log[:maxLength]
	}
	return obj.log
}

// DeleteShader implements shader.Driver.
func (d *Driver) DeleteShader(h shader.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.objects, h)
}

// Live returns the number of live shader objects.
func (d *Driver) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.objects)
}

var _ shader.Driver = (*Driver)(nil)
