package shader

// Handle is an opaque identifier for a driver-resident shader object.
type Handle uint64

// InvalidHandle is the zero Handle. Drivers never issue it.
const InvalidHandle Handle = 0

// Driver is the graphics-driver capability a Unit compiles against.
//
// The method set mirrors the OpenGL shader object calls. Only CreateShader
// can fail outright; every other outcome is observed through CompileStatus
// and the info log, as with a real driver.
//
// Calls are made synchronously on the caller's goroutine. A driver bound
// to a thread-affine context must be used from that thread.
type Driver interface {
	// CreateShader allocates a new shader object for stage.
	// A non-nil error or an InvalidHandle means no object was created.
	CreateShader(stage Stage) (Handle, error)

	// ShaderSource replaces the object's source with sources, which the
	// driver concatenates in order.
	ShaderSource(h Handle, sources []string)

	// CompileShader compiles the object's current source.
	CompileShader(h Handle)

	// CompileStatus reports whether the last compile succeeded.
	CompileStatus(h Handle) bool

	// InfoLogLength returns the length of the info log in bytes,
	// including any terminator the driver counts. Zero means no log.
	InfoLogLength(h Handle) int

	// InfoLog returns at most maxLength bytes of the info log.
	InfoLog(h Handle, maxLength int) string

	// DeleteShader releases the object. The handle is invalid afterwards.
	DeleteShader(h Handle)
}

// Labeler is implemented by drivers that can attach a debug label to a
// shader object, like glObjectLabel. New calls it when WithLabel is set.
type Labeler interface {
	SetLabel(h Handle, label string)
}
