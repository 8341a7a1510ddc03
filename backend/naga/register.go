package naga

import (
	"github.com/gogpu/shader"
	"github.com/gogpu/shader/backend"
)

func init() {
	backend.Register("naga", func() (shader.Driver, error) {
		return New(), nil
	})
}
