package params

import (
	"strconv"
	"strings"

	"github.com/dsggregory/otpctl/pkg/config"
	"github.com/dsggregory/otpctl/pkg/device"
	log "github.com/sirupsen/logrus"
)

// Separator joins passwords on the wire. Passwords are not escaped, so one containing a
// Separator does not survive a round trip.
const Separator = ","

// Store reads and writes the driver's global parameters
type Store struct {
	paths config.ParameterPaths
}

func NewStore(paths config.ParameterPaths) *Store {
	return &Store{paths: paths}
}

// SetDeviceCount asks the driver to expose n devices. The driver refusing n is a WriteError.
func (s *Store) SetDeviceCount(n uint8) error {
	if err := s.write(s.paths.Count, strconv.FormatUint(uint64(n), 10)); err != nil {
		return err
	}
	log.WithField("count", n).Debug("device count set")
	return nil
}

// SetPasswordList replaces the shared password list
func (s *Store) SetPasswordList(list []string) error {
	if err := s.write(s.paths.List, EncodeList(list)); err != nil {
		return err
	}
	log.WithField("entries", len(list)).Debug("password list set")
	return nil
}

// GetPasswordList returns the shared password list in order
func (s *Store) GetPasswordList() ([]string, error) {
	h, err := device.Open(s.paths.List, device.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer func() { _ = h.Close() }()

	text, err := device.ReadText(h)
	if err != nil {
		return nil, err
	}
	return DecodeList(text), nil
}

func (s *Store) write(path, value string) error {
	h, err := device.OpenParameter(path)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	return device.WriteParameter(h, value)
}

// EncodeList the wire form of a password list
func EncodeList(list []string) string {
	return strings.Join(list, Separator)
}

// DecodeList splits the wire form, keeping empty entries. The single trailing newline sysfs
// appends to parameter reads is not part of the list.
func DecodeList(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, Separator)
}
