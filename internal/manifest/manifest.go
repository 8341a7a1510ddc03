// Package manifest reads the TOML shader list used by cmd/shaderc.
//
//	backend = "glslang"
//
//	[[shader]]
//	label   = "quad.vert"
//	stage   = "vertex"
//	sources = ["common.glsl", "quad.vert"]
//
// Source paths are relative to the manifest's directory.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/shader"
)

// Manifest is a list of shaders to compile together.
type Manifest struct {
	Backend string  `toml:"backend"`
	Shaders []Entry `toml:"shader"`

	dir string
}

// Entry describes one shader unit.
type Entry struct {
	Label   string   `toml:"label"`
	Stage   string   `toml:"stage"`
	Sources []string `toml:"sources"`
}

// ErrEmpty is returned for a manifest without shaders.
var ErrEmpty = errors.New("manifest: no shaders")

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates manifest text. Relative source paths are
// resolved against the working directory.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if len(m.Shaders) == 0 {
		return nil, ErrEmpty
	}
	for i, e := range m.Shaders {
		if _, err := shader.ParseStage(e.Stage); err != nil {
			return nil, fmt.Errorf("shader %d: %w", i, err)
		}
		if len(e.Sources) == 0 {
			return nil, fmt.Errorf("shader %d: %w", i, shader.ErrNoSources)
		}
	}
	return &m, nil
}

// Specs reads every source file and returns one spec per entry. An entry
// without a label is labelled with its last source file name.
func (m *Manifest) Specs() ([]shader.Spec, error) {
	specs := make([]shader.Spec, 0, len(m.Shaders))
	for _, e := range m.Shaders {
		stage, err := shader.ParseStage(e.Stage)
		if err != nil {
			return nil, err
		}
		sources := make([]string, 0, len(e.Sources))
		for _, p := range e.Sources {
			if !filepath.IsAbs(p) && m.dir != "" {
				p = filepath.Join(m.dir, p)
			}
			b, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("manifest: %w", err)
			}
			sources = append(sources, string(b))
		}
		label := e.Label
		if label == "" {
			label = filepath.Base(e.Sources[len(e.Sources)-1])
		}
		specs = append(specs, shader.Spec{Stage: stage, Sources: sources, Label: label})
	}
	return specs, nil
}
