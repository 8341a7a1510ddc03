package glslang

import (
	"github.com/gogpu/shader"
	"github.com/gogpu/shader/backend"
)

func init() {
	backend.Register("glslang", func() (shader.Driver, error) {
		return New(), nil
	})
}
