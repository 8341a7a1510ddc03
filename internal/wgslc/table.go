package wgslc

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/shader"
)

var (
	// ErrUnsupportedStage is returned for stages WGSL cannot express. It
	// wraps shader.ErrUnsupportedStage.
	ErrUnsupportedStage = fmt.Errorf("%w: no WGSL entry point", shader.ErrUnsupportedStage)

	// ErrTooManyObjects is returned when a table's object limit is reached.
	ErrTooManyObjects = errors.New("wgslc: shader object limit reached")
)

// Object is one shader object held in a Table.
type Object struct {
	Stage    shader.Stage
	Sources  []string
	SPIRV    []uint32
	Compiled bool
	Log      string
}

// clone returns a copy of o that shares no slices with the table.
func (o *Object) clone() *Object {
	c := *o
	c.Sources = append([]string(nil), o.Sources...)
	c.SPIRV = append([]uint32(nil), o.SPIRV...)
	return &c
}

// Table is the handle-keyed object store behind the WGSL drivers. It
// behaves like a GL driver: handles start at 1 and are never reused.
type Table struct {
	// Max caps the number of live objects. Zero means unlimited.
	Max int

	mu      sync.Mutex
	next    shader.Handle
	objects map[shader.Handle]*Object
}

// Create allocates an object for stage.
func (t *Table) Create(stage shader.Stage) (shader.Handle, error) {
	if EntryPointAttr(stage) == "" {
		return shader.InvalidHandle, ErrUnsupportedStage
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.objects == nil {
		t.objects = make(map[shader.Handle]*Object)
	}
	if t.Max > 0 && len(t.objects) >= t.Max {
		return shader.InvalidHandle, ErrTooManyObjects
	}
	t.next++
	t.objects[t.next] = &Object{Stage: stage}
	return t.next, nil
}

// SetSource stores a copy of sources and resets the compile state.
func (t *Table) SetSource(h shader.Handle, sources []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if obj := t.objects[h]; obj != nil {
		obj.Sources = append([]string(nil), sources...)
		obj.Compiled = false
		obj.SPIRV = nil
		obj.Log = ""
	}
}

// Compile concatenates the object's sources and compiles them for its
// stage. It returns a copy of the resulting object, or nil for an unknown
// handle.
func (t *Table) Compile(h shader.Handle) *Object {
	t.mu.Lock()
	obj := t.objects[h]
	if obj == nil {
		t.mu.Unlock()
		return nil
	}
	src, stage := strings.Join(obj.Sources, ""), obj.Stage
	t.mu.Unlock()

	words, err := CompileStage(src, stage)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		obj.Compiled, obj.SPIRV, obj.Log = false, nil, err.Error()
		return obj.clone()
	}
	obj.Compiled, obj.SPIRV, obj.Log = true, words, ""
	return obj.clone()
}

// Fail marks a compiled object as failed with log.
func (t *Table) Fail(h shader.Handle, log string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if obj := t.objects[h]; obj != nil {
		obj.Compiled, obj.SPIRV, obj.Log = false, nil, log
	}
}

// Status reports whether h is live and compiled.
func (t *Table) Status(h shader.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj := t.objects[h]
	return obj != nil && obj.Compiled
}

// LogLength returns the info log length counting a terminating NUL, as
// glGetShaderiv(GL_INFO_LOG_LENGTH) does. An empty log is 0.
func (t *Table) LogLength(h shader.Handle) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj := t.objects[h]
	if obj == nil || obj.Log == "" {
		return 0
	}
	return len(obj.Log) + 1
}

// Log returns at most maxLength-1 bytes of the info log, leaving room for
// the terminator the length accounts for.
func (t *Table) Log(h shader.Handle, maxLength int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj := t.objects[h]
	if obj == nil || maxLength <= 1 {
		return ""
	}
	s := obj.Log
	if len(s) > maxLength-1 {
		s = s[:maxLength-1]
	}
	return s
}

// Get returns a copy of the object for h, or nil. The copy stays valid
// while other goroutines compile or fail h.
func (t *Table) Get(h shader.Handle) *Object {
	t.mu.Lock()
	defer t.mu.Unlock()
	if obj := t.objects[h]; obj != nil {
		return obj.clone()
	}
	return nil
}

// Delete removes h and returns the removed object, or nil when h was not
// live.
func (t *Table) Delete(h shader.Handle) *Object {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj := t.objects[h]
	delete(t.objects, h)
	return obj
}

// Live returns the number of live objects.
func (t *Table) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}
