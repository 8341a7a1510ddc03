//go:build !nogpu

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when a Driver is built without a device.
	ErrNilDevice = errors.New("native: nil device")

	// ErrNoHALDevice is returned by FromProvider when the provider does not
	// expose a HAL device.
	ErrNoHALDevice = errors.New("native: provider does not expose a HAL device")
)
