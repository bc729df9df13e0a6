package testing

/*** Shared testing functions and data
 */

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/dsggregory/otpctl/pkg/config"
	"github.com/dsggregory/otpctl/pkg/device"
)

// FakeFile is a device.File backed by memory, with injectable failures
type FakeFile struct {
	// Out bytes returned by Read
	Out *bytes.Reader
	// In bytes accepted by Write
	In bytes.Buffer
	// ReadErr returned by Read once set
	ReadErr error
	// WriteErr returned by Write once set
	WriteErr error
	// ShortBy bytes dropped from every Write without an error
	ShortBy int
	Closed  bool
	FD      uintptr
}

// NewFakeFile returns a FakeFile that reads out
func NewFakeFile(out string) *FakeFile {
	return &FakeFile{Out: bytes.NewReader([]byte(out)), FD: 42}
}

func (f *FakeFile) Read(p []byte) (int, error) {
	if f.ReadErr != nil {
		return 0, f.ReadErr
	}
	if f.Out == nil {
		return 0, io.EOF
	}
	return f.Out.Read(p)
}

func (f *FakeFile) Write(p []byte) (int, error) {
	if f.WriteErr != nil {
		return 0, f.WriteErr
	}
	n := len(p) - f.ShortBy
	if n < 0 {
		n = 0
	}
	return f.In.Write(p[:n])
}

func (f *FakeFile) Close() error {
	f.Closed = true
	return nil
}

func (f *FakeFile) Fd() uintptr {
	return f.FD
}

var _ device.File = (*FakeFile)(nil)

// ControlCall one recorded control call
type ControlCall struct {
	FD  uintptr
	Req uint
}

// ControlRecorder records control calls instead of issuing them
type ControlRecorder struct {
	Calls []ControlCall
	// Err returned from every call
	Err     error
	restore func()
}

// RecordControl installs a recorder as the device control call. Call Restore when done.
func RecordControl() *ControlRecorder {
	r := &ControlRecorder{}
	r.restore = device.ReplaceControl(func(fd uintptr, req uint) error {
		r.Calls = append(r.Calls, ControlCall{FD: fd, Req: req})
		return r.Err
	})
	return r
}

// Restore puts back the real control call
func (r *ControlRecorder) Restore() {
	if r.restore != nil {
		r.restore()
		r.restore = nil
	}
}

// DriverFiles stands in for the driver's parameter and status files in dir
type DriverFiles struct {
	Dir    string
	Count  string
	List   string
	Status string
	// Device a regular file used as a per-device path
	Device string
}

// NewDriverFiles creates empty parameter, status and device files under dir
func NewDriverFiles(dir string) (*DriverFiles, error) {
	d := &DriverFiles{
		Dir:    dir,
		Count:  filepath.Join(dir, "count"),
		List:   filepath.Join(dir, "list"),
		Status: filepath.Join(dir, "status"),
		Device: filepath.Join(dir, "otp0"),
	}
	for _, p := range []string{d.Count, d.List, d.Status, d.Device} {
		if err := os.WriteFile(p, nil, 0600); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Paths returns a config pointing at the files
func (d *DriverFiles) Paths() config.Paths {
	return config.Paths{
		Parameters: config.ParameterPaths{Count: d.Count, List: d.List},
		Status:     d.Status,
	}
}

// Contents returns the content of path, or the error text
func Contents(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
