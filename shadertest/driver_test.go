package shadertest

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/shader"
)

func TestDefaultCompiler(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"valid", "void main() { x[0] = f(1); }", ""},
		{"unclosed", "int main( {", "unclosed '{'"},
		{"mismatched", "void main() { )", "unexpected ')'"},
		{"line numbers", "void main() {\n\n}}", "0:3:"},
		{"no main", "void f() {}", "no main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultCompiler(shader.StageVertex, tt.src)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("DefaultCompiler() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("DefaultCompiler() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
	if !errors.Is(DefaultCompiler(shader.StageVertex, "{}"), ErrNoMain) {
		t.Error("missing main should be ErrNoMain")
	}
}

func TestDriverInfoLog(t *testing.T) {
	d := NewDriver()
	h, _ := d.CreateShader(shader.StageFragment)
	d.ShaderSource(h, []string{"void main() {"})
	d.CompileShader(h)

	if d.CompileStatus(h) {
		t.Fatal("CompileStatus() = true for broken source")
	}
	n := d.InfoLogLength(h)
	log := d.InfoLog(h, n)
	if len(log) != n || log[n-1] != 0 {
		t.Errorf("InfoLog(h, %d) = %q, want the log plus a NUL", n, log)
	}
	if got := d.InfoLog(h, 3); len(got) != 3 {
		t.Errorf("InfoLog(h, 3) = %q, want 3 bytes", got)
	}
}

func TestDriverCounters(t *testing.T) {
	d := NewDriver()
	a, _ := d.CreateShader(shader.StageVertex)
	b, _ := d.CreateShader(shader.StageVertex)
	if a == b || a == shader.InvalidHandle {
		t.Fatalf("handles %d, %d: want distinct valid handles", a, b)
	}
	d.DeleteShader(a)
	d.DeleteShader(a)

	if d.Live() != 1 || d.Created() != 2 {
		t.Errorf("Live() = %d, Created() = %d; want 1, 2", d.Live(), d.Created())
	}
	if d.Deletes(a) != 2 {
		t.Errorf("Deletes(a) = %d, want 2 (double release must be visible)", d.Deletes(a))
	}
	if d.Sources(a) != nil {
		t.Error("Sources() of a deleted object should be nil")
	}
}
