// Package shadertest provides an in-memory shader.Driver for tests.
//
// The Driver records every object it hands out so tests can check that
// nothing leaks and nothing is released twice.
package shadertest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/shader"
)

// Compiler decides whether the concatenated source compiles for stage.
// A nil error means success; otherwise the error text becomes the info log.
type Compiler func(stage shader.Stage, source string) error

// Driver is a fake graphics driver. The zero value is not usable; call
// NewDriver.
type Driver struct {
	// Compile replaces the default syntax check.
	Compile Compiler

	// FailCreate, when set, makes CreateShader return this error.
	FailCreate error

	// ZeroHandle makes CreateShader return InvalidHandle with a nil error,
	// like glCreateShader returning 0.
	ZeroHandle bool

	// LogOverride, when non-nil, is returned verbatim by InfoLog regardless
	// of maxLength. Use it to emulate drivers that pad or overrun the log.
	LogOverride func(log string) string

	// LogLengthOverride, when non-nil, replaces the value InfoLogLength
	// would report.
	LogLengthOverride func(n int) int

	mu      sync.Mutex
	next    shader.Handle
	objects map[shader.Handle]*object
	deletes map[shader.Handle]int
	created int
}

type object struct {
	stage    shader.Stage
	sources  []string
	compiled bool
	log      string
}

// NewDriver returns an empty Driver using DefaultCompiler.
func NewDriver() *Driver {
	return &Driver{
		Compile: DefaultCompiler,
		objects: make(map[shader.Handle]*object),
		deletes: make(map[shader.Handle]int),
	}
}

// CreateShader implements shader.Driver.
func (d *Driver) CreateShader(stage shader.Stage) (shader.Handle, error) {
	if d.FailCreate != nil {
		return shader.InvalidHandle, d.FailCreate
	}
	if d.ZeroHandle {
		return shader.InvalidHandle, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.created++
	d.objects[d.next] = &object{stage: stage}
	return d.next, nil
}

// ShaderSource implements shader.Driver.
func (d *Driver) ShaderSource(h shader.Handle, sources []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if obj := d.objects[h]; obj != nil {
		obj.sources = append([]string(nil), sources...)
	}
}

// CompileShader implements shader.Driver.
func (d *Driver) CompileShader(h shader.Handle) {
	d.mu.Lock()
	obj := d.objects[h]
	if obj == nil {
		d.mu.Unlock()
		return
	}
	stage, src := obj.stage, strings.Join(obj.sources, "")
	d.mu.Unlock()

	compile := d.Compile
	if compile == nil {
		compile = DefaultCompiler
	}
	err := compile(stage, src)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		obj.compiled = false
		obj.log = err.Error() + "\n"
		return
	}
	obj.compiled = true
	obj.log = ""
}

// CompileStatus implements shader.Driver.
func (d *Driver) CompileStatus(h shader.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj := d.objects[h]
	return obj != nil && obj.compiled
}

// InfoLogLength implements shader.Driver. Like OpenGL it counts the
// terminating NUL, so a non-empty log of n bytes reports n+1.
func (d *Driver) InfoLogLength(h shader.Handle) int {
	d.mu.Lock()
	obj := d.objects[h]
	d.mu.Unlock()
	n := 0
	if obj != nil && obj.log != "" {
		n = len(obj.log) + 1
	}
	if d.LogLengthOverride != nil {
		n = d.LogLengthOverride(n)
	}
	return n
}

// InfoLog implements shader.Driver.
func (d *Driver) InfoLog(h shader.Handle, maxLength int) string {
	d.mu.Lock()
	obj := d.objects[h]
	d.mu.Unlock()
	if obj == nil {
		return ""
	}
	if d.LogOverride != nil {
		return d.LogOverride(obj.log)
	}
	s := obj.log + "\x00"
	if maxLength < len(s) {
		s = s[:max(maxLength, 0)]
	}
	return s
}

// DeleteShader implements shader.Driver. Deleting an unknown or already
// deleted handle is recorded, not ignored, so Deletes exposes double
// releases.
func (d *Driver) DeleteShader(h shader.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deletes[h]++
	delete(d.objects, h)
}

// Live returns the number of objects created and not yet deleted.
func (d *Driver) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.objects)
}

// Created returns the number of objects ever created.
func (d *Driver) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// Deletes returns how many times h was passed to DeleteShader.
func (d *Driver) Deletes(h shader.Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deletes[h]
}

// Sources returns the fragments last submitted for a live object.
func (d *Driver) Sources(h shader.Handle) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if obj := d.objects[h]; obj != nil {
		return append([]string(nil), obj.sources...)
	}
	return nil
}

// Compiled reports whether h is live and compiled.
func (d *Driver) Compiled(h shader.Handle) bool {
	return d.CompileStatus(h)
}

// ErrNoMain is reported by DefaultCompiler for a source without "main".
var ErrNoMain = errors.New("error: no main function")

// DefaultCompiler is a minimal syntax check: brackets must balance and the
// source must mention main. Stage is ignored.
func DefaultCompiler(_ shader.Stage, source string) error {
	var stack []rune
	line := 1
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	for _, r := range source {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Errorf("0:%d: error: unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("0:%d: error: unexpected end of file, unclosed '%c'", line, stack[len(stack)-1])
	}
	if !strings.Contains(source, "main") {
		return ErrNoMain
	}
	return nil
}

var _ shader.Driver = (*Driver)(nil)
