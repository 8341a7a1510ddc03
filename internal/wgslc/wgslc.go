// Package wgslc compiles WGSL to SPIR-V words with naga.
package wgslc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/shader"
)

// ErrMisaligned is returned when naga produces a byte stream that is not
// a whole number of SPIR-V words.
var ErrMisaligned = errors.New("wgslc: SPIR-V output is not word aligned")

// Compile compiles WGSL source to SPIR-V as little-endian 32-bit words.
func Compile(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMisaligned, len(spirvBytes))
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// EntryPointAttr returns the WGSL attribute marking an entry point for
// stage, or "" when WGSL has no such stage.
func EntryPointAttr(stage shader.Stage) string {
	switch stage {
	case shader.StageVertex:
		return "@vertex"
	case shader.StageFragment:
		return "@fragment"
	default:
		return ""
	}
}

// CheckEntryPoint reports an error when src has no entry point for stage.
// A WGSL module may carry several stages, so a module compiled for the
// fragment stage must at least declare a fragment entry point.
func CheckEntryPoint(src string, stage shader.Stage) error {
	attr := EntryPointAttr(stage)
	if attr == "" {
		return fmt.Errorf("error: WGSL has no %s stage", stage)
	}
	if !strings.Contains(src, attr) {
		return fmt.Errorf("error: no %s entry point (missing %s)", stage, attr)
	}
	return nil
}

// CompileStage checks the entry point and compiles. The returned error text
// is suitable as a driver info log.
func CompileStage(src string, stage shader.Stage) ([]uint32, error) {
	if err := CheckEntryPoint(src, stage); err != nil {
		return nil, err
	}
	words, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	return words, nil
}
