package status

import (
	"github.com/dsggregory/otpctl/pkg/device"
)

// Reporter reads the driver's aggregate status
type Reporter struct {
	path string
}

func NewReporter(path string) *Reporter {
	return &Reporter{path: path}
}

func (r *Reporter) Path() string {
	return r.path
}

// ReadStatus returns the status text exactly as the driver produced it
func (r *Reporter) ReadStatus() (string, error) {
	h, err := device.Open(r.path, device.ReadOnly)
	if err != nil {
		return "", err
	}
	defer func() { _ = h.Close() }()

	return device.ReadText(h)
}
