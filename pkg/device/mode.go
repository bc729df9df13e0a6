package device

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Mode the operating mode of an otp device
type Mode uint

// The numeric values are the ioctl request numbers understood by the driver and must not change.
const (
	// ModeList the device hands out entries of the shared password list
	ModeList Mode = 0
	// ModeAlgo the device computes OTPs algorithmically
	ModeAlgo Mode = 1
)

// ErrWrongAccess an operation was given a handle opened for the other direction
var ErrWrongAccess = errors.New("handle opened with the wrong access mode")

var modeStrings = map[Mode]string{
	ModeList: "list",
	ModeAlgo: "algo",
}

func (m Mode) String() string {
	if s, ok := modeStrings[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", uint(m))
}

// Code the request number sent with the control call
func (m Mode) Code() uint {
	return uint(m)
}

// ParseMode converts "list" or "algo" (any case) to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "list":
		return ModeList, nil
	case "algo":
		return ModeAlgo, nil
	}
	return 0, fmt.Errorf("invalid mode: %s (must be list or algo)", s)
}

// ioctl issues the control call. Replaced in tests.
var ioctl = func(fd uintptr, req uint) error {
	return unix.IoctlSetInt(int(fd), req, 0)
}

// SetMode switches the device behind h to mode with exactly one control call. h must be WriteOnly.
func SetMode(h *Handle, mode Mode) error {
	if _, ok := modeStrings[mode]; !ok {
		return &IoctlError{Path: h.path, Mode: mode, Cause: unix.EINVAL}
	}
	if h.access != WriteOnly {
		return &IoctlError{Path: h.path, Mode: mode, Cause: ErrWrongAccess}
	}
	if h.f == nil {
		return &IoctlError{Path: h.path, Mode: mode, Cause: unix.EBADF}
	}
	if err := ioctl(h.f.Fd(), mode.Code()); err != nil {
		return &IoctlError{Path: h.path, Mode: mode, Cause: err}
	}
	log.WithField("path", h.path).WithField("mode", mode).Debug("mode switched")

	return nil
}

// ControlFunc performs the control call on fd with request number req
type ControlFunc func(fd uintptr, req uint) error

// ReplaceControl swaps the control call implementation and returns a func restoring the previous
// one. It exists for tests that run without the driver loaded.
func ReplaceControl(f ControlFunc) (restore func()) {
	prev := ioctl
	ioctl = f
	return func() { ioctl = prev }
}
