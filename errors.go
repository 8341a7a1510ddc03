package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDriver is returned when New is called without a driver.
	ErrNilDriver = errors.New("shader: nil driver")

	// ErrNoSources is returned when New is called with no source fragments.
	// Drivers disagree on what an empty source list means, so it is
	// rejected before the driver is touched.
	ErrNoSources = errors.New("shader: no source fragments")

	// ErrResourceExhausted is returned when the driver cannot allocate a
	// shader object.
	ErrResourceExhausted = errors.New("shader: driver could not create shader object")

	// ErrUnsupportedStage is returned for a stage the driver has no shader
	// type for. Drivers wrap it so New can tell it apart from allocation
	// failure.
	ErrUnsupportedStage = errors.New("shader: unsupported stage")

	// ErrCompileFailed matches any *CompileError with errors.Is.
	ErrCompileFailed = errors.New("shader: compilation failed")
)

// CompileError reports a shader that did not compile. Log holds the
// driver's info log, bounded to the length the driver reported.
type CompileError struct {
	Stage Stage
	Log   string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("Failed to compile %s shader\n%s", e.Stage, e.Log)
}

// Is makes errors.Is(err, ErrCompileFailed) true for compile errors.
func (e *CompileError) Is(target error) bool {
	return target == ErrCompileFailed
}
