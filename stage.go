package shader

import (
	"fmt"
	"strings"
)

// Stage is the pipeline stage a shader object targets.
type Stage uint8

// Shader stages. The zero value is not a valid stage.
const (
	StageVertex Stage = iota + 1
	StageFragment
	StageGeometry
)

// String returns the display name used in diagnostics: "vertex",
// "fragment", "geometry", or "unknown" for any other value.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	return s >= StageVertex && s <= StageGeometry
}

// ParseStage parses a stage name. Both the full names and the short
// glslang file suffixes ("vert", "frag", "geom") are accepted.
func ParseStage(name string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vertex", "vert":
		return StageVertex, nil
	case "fragment", "frag":
		return StageFragment, nil
	case "geometry", "geom":
		return StageGeometry, nil
	}
	return 0, fmt.Errorf("shader: unknown stage %q", name)
}
