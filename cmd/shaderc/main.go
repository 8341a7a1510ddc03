// Command shaderc compiles shader sources and reports driver diagnostics.
//
// Usage:
//
//	shaderc -stage vertex common.glsl quad.vert
//	shaderc -manifest shaders.toml
//
// Each positional file is one source fragment of a single shader; the
// fragments are submitted in the order given. With -manifest, every listed
// shader is compiled and the run fails if any of them fails.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/shader"
	"github.com/gogpu/shader/backend"
	_ "github.com/gogpu/shader/backend/glslang"
	_ "github.com/gogpu/shader/backend/naga"
	"github.com/gogpu/shader/internal/manifest"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shaderc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		driver  = fs.String("backend", "", "compiler backend: naga (WGSL) or glslang (GLSL); default naga")
		stage   = fs.String("stage", "", "shader stage: vertex, fragment or geometry")
		manPath = fs.String("manifest", "", "TOML manifest listing shaders")
		verbose = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	shader.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	specs, manBackend, err := loadSpecs(*manPath, *stage, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "shaderc: %v\n", err)
		return 2
	}
	if *driver == "" {
		*driver = manBackend
	}

	drv, err := backend.Open(*driver)
	if err != nil {
		fmt.Fprintf(stderr, "shaderc: %v\n", err)
		return 2
	}

	g, err := shader.NewGroup(drv, specs)
	if err != nil {
		fmt.Fprintf(stderr, "shaderc: %v\n", err)
		return 1
	}
	defer g.Destroy()

	for _, u := range g.Units() {
		fmt.Fprintf(stdout, "ok\t%s\t%s\n", u.Stage(), u.Label())
	}
	return 0
}

// loadSpecs builds the shader list from a manifest or from positional
// files. It also returns the manifest's backend, if any.
func loadSpecs(manPath, stageName string, files []string) ([]shader.Spec, string, error) {
	if manPath != "" {
		if len(files) > 0 || stageName != "" {
			return nil, "", errors.New("-manifest cannot be combined with -stage or files")
		}
		m, err := manifest.Load(manPath)
		if err != nil {
			return nil, "", err
		}
		specs, err := m.Specs()
		return specs, m.Backend, err
	}

	if stageName == "" {
		return nil, "", errors.New("-stage is required without -manifest")
	}
	stage, err := shader.ParseStage(stageName)
	if err != nil {
		return nil, "", err
	}
	if len(files) == 0 {
		return nil, "", shader.ErrNoSources
	}
	sources := make([]string, 0, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, "", err
		}
		sources = append(sources, string(b))
	}
	return []shader.Spec{{Stage: stage, Sources: sources, Label: filepath.Base(files[len(files)-1])}}, "", nil
}
