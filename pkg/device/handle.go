/***
Package device is the protocol layer for the otp kernel driver. Every operation takes a Handle
whose access mode is fixed at open time: reads use ReadOnly, writes and the mode control call use
WriteOnly. A handle is never opened for both.
*/
package device

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Access the single direction a handle is opened for
type Access int

const (
	ReadOnly Access = iota
	WriteOnly
)

func (a Access) String() string {
	if a == WriteOnly {
		return "write-only"
	}
	return "read-only"
}

func (a Access) flags() int {
	if a == WriteOnly {
		return unix.O_WRONLY
	}
	return unix.O_RDONLY
}

// File the subset of *os.File a Handle needs
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Fd() uintptr
}

// Handle an open device or parameter file
type Handle struct {
	path   string
	access Access
	f      File
}

// Open opens path for access. The file is never created or truncated.
func Open(path string, access Access) (*Handle, error) {
	return open(path, access, access.flags())
}

// OpenParameter opens a parameter file WriteOnly, truncating it so the value written becomes its
// whole content. Like Open, the file is never created.
func OpenParameter(path string) (*Handle, error) {
	return open(path, WriteOnly, WriteOnly.flags()|unix.O_TRUNC)
}

func open(path string, access Access, flags int) (*Handle, error) {
	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		// unwrap *PathError so the cause is the errno
		if pe, ok := err.(*os.PathError); ok {
			err = pe.Err
		}
		return nil, &OpenError{Path: path, Access: access, Cause: err}
	}
	log.WithField("path", path).WithField("access", access).Debug("opened")

	return &Handle{path: path, access: access, f: f}, nil
}

// NewHandle wraps an already open File. Used for devices not reachable by path (tests, pipes).
func NewHandle(path string, access Access, f File) *Handle {
	return &Handle{path: path, access: access, f: f}
}

func (h *Handle) Path() string {
	return h.path
}

func (h *Handle) Access() Access {
	return h.access
}

// Close releases the underlying descriptor. Closing an already closed handle is a no-op.
func (h *Handle) Close() error {
	if h.f == nil {
		return nil
	}
	err := h.f.Close()
	h.f = nil
	if err != nil {
		log.WithField("path", h.path).WithError(err).Warn("close failed")
	}
	return err
}

// readAll reads to EOF and checks the result is text
func (h *Handle) readAll() (string, error) {
	if h.f == nil {
		return "", &ReadError{Path: h.path, Cause: os.ErrClosed}
	}
	data, err := io.ReadAll(h.f)
	if err != nil {
		return "", &ReadError{Path: h.path, Cause: err}
	}
	if off := invalidUTF8(data); off >= 0 {
		return "", &DecodeError{Path: h.path, Offset: off}
	}
	log.WithField("path", h.path).WithField("bytes", len(data)).Debug("read")

	return string(data), nil
}

// writeAll writes data in one logical operation. A short write is reported as io.ErrShortWrite.
func (h *Handle) writeAll(data []byte) error {
	if h.f == nil {
		return os.ErrClosed
	}
	n, err := h.f.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return err
	}
	log.WithField("path", h.path).WithField("bytes", n).Debug("wrote")

	return nil
}
