package device

import (
	"errors"
	"fmt"
	"syscall"
)

// OpenError the path is missing, busy or not accessible with the requested access.
type OpenError struct {
	Path   string
	Access Access
	Cause  error
}

func (e *OpenError) Error() string {
	if errors.Is(e.Cause, syscall.EBUSY) {
		return fmt.Sprintf("unable to open '%s' (%s): device is busy", e.Path, e.Access)
	}
	return fmt.Sprintf("unable to open '%s' (%s): %v", e.Path, e.Access, e.Cause)
}

func (e *OpenError) Unwrap() error { return e.Cause }

// ReadError an I/O failure while reading an open handle
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to read '%s': %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error { return e.Cause }

// WriteError an I/O failure while writing a parameter. For parameter files the kernel
// refusing a value shows up here as well.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to write '%s': %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// IoctlError the mode control call was refused. The device keeps its previous mode.
type IoctlError struct {
	Path  string
	Mode  Mode
	Cause error
}

func (e *IoctlError) Error() string {
	return fmt.Sprintf("unable to set mode '%s' on '%s': %v", e.Mode, e.Path, e.Cause)
}

func (e *IoctlError) Unwrap() error { return e.Cause }

// DecodeError the bytes produced by the kernel are not valid UTF-8 text
type DecodeError struct {
	Path string
	// Offset of the first invalid byte
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("'%s' produced invalid text at byte %d", e.Path, e.Offset)
}

// ValidationError the device rejected an OTP. A failed write is the driver's rejection signal.
type ValidationError struct {
	Path  string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("otp has been rejected by device '%s'", e.Path)
}

func (e *ValidationError) Unwrap() error { return e.Cause }
