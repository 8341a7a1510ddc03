package naga_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/shader"
	"github.com/gogpu/shader/backend"
	"github.com/gogpu/shader/backend/naga"
)

const (
	header = "// quad shader\n"

	vertexWGSL = `@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    let x = f32(idx) - 1.0;
    return vec4<f32>(x, 0.0, 0.0, 1.0);
}
`

	fragmentWGSL = `@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.0, 1.0, 0.0, 1.0);
}
`
)

func TestNewVertex(t *testing.T) {
	drv := naga.New()

	u, err := shader.New(drv, shader.StageVertex, []string{vertexWGSL})
	if err != nil {
		t.Fatalf("shader.New() error = %v", err)
	}
	defer u.Destroy()

	if u.Handle() == shader.InvalidHandle {
		t.Error("invalid handle after success")
	}
	if len(drv.SPIRV(u.Handle())) == 0 {
		t.Error("no SPIR-V for a compiled unit")
	}
}

func TestNewInvalidSource(t *testing.T) {
	drv := naga.New()

	_, err := shader.New(drv, shader.StageFragment, []string{"fn main( {"})
	var ce *shader.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if ce.Log == "" {
		t.Error("compile error carries no log")
	}
	if !strings.HasPrefix(err.Error(), "Failed to compile fragment shader\n") {
		t.Errorf("message = %q", err.Error())
	}
	if drv.Live() != 0 {
		t.Errorf("Live() = %d after failure, want 0", drv.Live())
	}
}

func TestNewMissingEntryPoint(t *testing.T) {
	drv := naga.New()

	_, err := shader.New(drv, shader.StageFragment, []string{vertexWGSL})
	if !errors.Is(err, shader.ErrCompileFailed) {
		t.Fatalf("error = %v, want compile failure", err)
	}
	if !strings.Contains(err.Error(), "no fragment entry point") {
		t.Errorf("message = %q, want the missing entry point", err.Error())
	}
}

func TestNewFragmentsMatchJoined(t *testing.T) {
	drv := naga.New()

	split, err := shader.New(drv, shader.StageFragment, []string{header, fragmentWGSL})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	defer split.Destroy()

	joined, err := shader.New(drv, shader.StageFragment, []string{header + fragmentWGSL})
	if err != nil {
		t.Fatalf("joined: %v", err)
	}
	defer joined.Destroy()

	if drv.Source(split.Handle()) != drv.Source(joined.Handle()) {
		t.Error("sources differ")
	}
	a, b := drv.SPIRV(split.Handle()), drv.SPIRV(joined.Handle())
	if len(a) != len(b) {
		t.Fatalf("SPIR-V lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("SPIR-V differs at word %d", i)
		}
	}
}

func TestGeometryUnsupported(t *testing.T) {
	drv := naga.New()

	_, err := shader.New(drv, shader.StageGeometry, []string{vertexWGSL})
	if !errors.Is(err, naga.ErrUnsupportedStage) || !errors.Is(err, shader.ErrUnsupportedStage) {
		t.Errorf("error = %v, want ErrUnsupportedStage", err)
	}
	if errors.Is(err, shader.ErrResourceExhausted) {
		t.Errorf("error = %v, reported as resource exhaustion", err)
	}
	if drv.Live() != 0 {
		t.Errorf("Live() = %d, want 0", drv.Live())
	}
}

func TestConcurrentCompileAndRead(t *testing.T) {
	drv := naga.New()
	u, err := shader.New(drv, shader.StageVertex, []string{vertexWGSL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer u.Destroy()
	h := u.Handle()
	want := len(drv.SPIRV(h))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			drv.CompileShader(h)
		}()
		go func() {
			defer wg.Done()
			if words := drv.SPIRV(h); words != nil && len(words) != want {
				t.Errorf("SPIRV() len = %d, want %d", len(words), want)
			}
			if src := drv.Source(h); src != vertexWGSL {
				t.Errorf("Source() = %q, want the submitted source", src)
			}
		}()
	}
	wg.Wait()

	words := drv.SPIRV(h)
	words[0] = ^words[0]
	if drv.SPIRV(h)[0] == words[0] {
		t.Error("SPIRV() returned the driver's own slice")
	}
}

func TestWithMaxObjects(t *testing.T) {
	drv := naga.New(naga.WithMaxObjects(1))

	u, err := shader.New(drv, shader.StageVertex, []string{vertexWGSL})
	if err != nil {
		t.Fatalf("first New() error = %v", err)
	}

	_, err = shader.New(drv, shader.StageFragment, []string{fragmentWGSL})
	if !errors.Is(err, naga.ErrTooManyObjects) {
		t.Errorf("second New() error = %v, want ErrTooManyObjects", err)
	}

	u.Destroy()
	u2, err := shader.New(drv, shader.StageFragment, []string{fragmentWGSL})
	if err != nil {
		t.Fatalf("New() after Destroy error = %v", err)
	}
	u2.Destroy()
}

func TestRegistered(t *testing.T) {
	drv, err := backend.Open("naga")
	if err != nil {
		t.Fatalf("backend.Open(naga) error = %v", err)
	}
	if _, ok := drv.(*naga.Driver); !ok {
		t.Errorf("backend.Open(naga) = %T, want *naga.Driver", drv)
	}
}
