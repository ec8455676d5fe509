//go:build !linux

package host

import "errors"

// SetRawIO is not supported on this platform.
func SetRawIO(_ uintptr) (func(), error) {
	return nil, errors.New("raw terminal input not supported")
}
