package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Unit is one compiled shader object.
//
// A Unit only exists in the compiled state: New either returns a Unit that
// owns a valid handle or returns an error after releasing whatever it
// allocated. There is no way to recompile or replace the source.
type Unit struct {
	driver Driver
	stage  Stage
	handle Handle
	label  string
	log    *slog.Logger
}

// New creates a shader object for stage, submits sources in order and
// compiles it.
//
// sources must not be empty; the fragments are passed to the driver
// unmodified and the driver concatenates them. If the driver cannot create
// an object the error wraps ErrResourceExhausted; a stage it has no shader
// type for wraps ErrUnsupportedStage instead. If compilation fails the
// object is deleted and a *CompileError holding the info log is returned.
func New(driver Driver, stage Stage, sources []string, opts ...Option) (*Unit, error) {
	if driver == nil {
		return nil, ErrNilDriver
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStage, stage)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	h, err := driver.CreateShader(stage)
	if errors.Is(err, ErrUnsupportedStage) {
		return nil, fmt.Errorf("%s shader: %w", stage, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s shader: %w", ErrResourceExhausted, stage, err)
	}
	if h == InvalidHandle {
		return nil, fmt.Errorf("%w: %s shader", ErrResourceExhausted, stage)
	}

	if l, ok := driver.(Labeler); ok && o.label != "" {
		l.SetLabel(h, o.label)
	}

	driver.ShaderSource(h, sources)
	driver.CompileShader(h)

	if !driver.CompileStatus(h) {
		infoLog := readInfoLog(driver, h)
		driver.DeleteShader(h)
		log.Debug("shader: compile failed",
			"stage", stage.String(), "label", o.label, "log_bytes", len(infoLog))
		return nil, &CompileError{Stage: stage, Log: infoLog}
	}

	log.Debug("shader: compiled",
		"stage", stage.String(), "handle", uint64(h), "label", o.label, "fragments", len(sources))

	return &Unit{
		driver: driver,
		stage:  stage,
		handle: h,
		label:  o.label,
		log:    log,
	}, nil
}

// readInfoLog fetches the info log bounded to the length the driver
// reports. Drivers may return a longer buffer, pad it with NULs or leave it
// unterminated; the result is cut at the reported length and at the first
// NUL.
func readInfoLog(driver Driver, h Handle) string {
	n := driver.InfoLogLength(h)
	if n <= 0 {
		return ""
	}
	s := driver.InfoLog(h, n)
	if len(s) > n {
		s = s[:n]
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// Handle returns the driver handle, or InvalidHandle after Destroy.
func (u *Unit) Handle() Handle {
	if u == nil {
		return InvalidHandle
	}
	return u.handle
}

// Stage returns the stage the unit was compiled for.
func (u *Unit) Stage() Stage {
	if u == nil {
		return 0
	}
	return u.stage
}

// Label returns the debug label set with WithLabel.
func (u *Unit) Label() string {
	if u == nil {
		return ""
	}
	return u.label
}

// IsDestroyed reports whether Destroy has released the handle. A nil unit
// counts as destroyed.
func (u *Unit) IsDestroyed() bool {
	return u == nil || u.handle == InvalidHandle
}

// Destroy deletes the shader object. Only the first call reaches the
// driver, so an explicit Destroy followed by a deferred one is safe.
func (u *Unit) Destroy() {
	if u == nil || u.handle == InvalidHandle {
		return
	}
	h := u.handle
	u.handle = InvalidHandle
	u.driver.DeleteShader(h)
	u.log.Debug("shader: deleted", "stage", u.stage.String(), "handle", uint64(h), "label", u.label)
}
