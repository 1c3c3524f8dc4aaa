// Package errs defines the error kinds shared across the daemon.
//
// Call sites wrap these sentinels with fmt.Errorf("%w: ...") so that
// errors.Is can classify failures at any layer.
package errs

import "errors"

var (
	ErrUnknown          = errors.New("unknown error")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrOutOfRange       = errors.New("out of range")
	ErrInitFailed       = errors.New("initialization failed")
	ErrNotInitialized   = errors.New("not initialized")
	ErrNotFound         = errors.New("not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrNotOpen          = errors.New("device is not open")
	ErrNoDevice         = errors.New("no device")
	ErrAlreadyOpen      = errors.New("already open")
	ErrCannotOpen       = errors.New("cannot open")
	ErrCannotCreate     = errors.New("cannot create")
	ErrReadFailed       = errors.New("read failed")
	ErrWriteFailed      = errors.New("write failed")
	ErrWrongSize        = errors.New("wrong size")
	ErrNoPermission     = errors.New("no permission")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrEmpty            = errors.New("empty")
)
