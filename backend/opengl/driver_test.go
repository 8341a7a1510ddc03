//go:build !nogpu && cgo

package opengl

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/shader"
)

// These tests need no GL context: they only touch constants and helpers.

func TestShaderType(t *testing.T) {
	tests := []struct {
		stage  shader.Stage
		want   uint32
		wantOK bool
	}{
		{shader.StageVertex, gl.VERTEX_SHADER, true},
		{shader.StageFragment, gl.FRAGMENT_SHADER, true},
		{shader.StageGeometry, gl.GEOMETRY_SHADER, true},
		{0, 0, false},
		{shader.StageGeometry + 1, 0, false},
	}
	for _, tt := range tests {
		got, ok := ShaderType(tt.stage)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ShaderType(%v) = %#x, %v; want %#x, %v", tt.stage, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCreateShaderUnsupportedStage(t *testing.T) {
	if _, err := New().CreateShader(0); err == nil {
		t.Error("CreateShader(unknown) succeeded")
	}
}

func TestClampLog(t *testing.T) {
	tests := []struct {
		written int32
		max     int
		want    int
	}{
		{10, 64, 10},
		{0, 64, 0},
		{-1, 64, 0},
		{100, 64, 64},
	}
	for _, tt := range tests {
		if got := clampLog(tt.written, tt.max); got != tt.want {
			t.Errorf("clampLog(%d, %d) = %d, want %d", tt.written, tt.max, got, tt.want)
		}
	}
}
