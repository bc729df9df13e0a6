package device

import "errors"

// Kind classifies an error returned by an otpctl operation
type Kind int

// nolint
const (
	KindUnknown    Kind = iota
	KindOpen            // path missing, busy or denied
	KindRead            // read failure on an open handle
	KindWrite           // parameter write refused or failed
	KindIoctl           // mode control call failed
	KindDecode          // kernel output is not valid text
	KindValidation      // OTP rejected by the device
	KindUsage           // bad command line
	KindAudit           // audit journal failure
)

// nolint
var kindStrings = []string{
	"unknown",
	"open",
	"read",
	"write",
	"ioctl",
	"decode",
	"validation",
	"usage",
	"audit",
}

func (k Kind) String() string {
	i := int(k)
	if i < 0 || len(kindStrings) <= i {
		i = 0
	}
	return kindStrings[i]
}

// Kinder is implemented by errors outside this package that know their own kind
type Kinder interface {
	Kind() Kind
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		openErr  *OpenError
		readErr  *ReadError
		writeErr *WriteError
		ioctlErr *IoctlError
		decErr   *DecodeError
		valErr   *ValidationError
		kinder   Kinder
	)
	switch {
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &openErr):
		return KindOpen
	case errors.As(err, &readErr):
		return KindRead
	case errors.As(err, &writeErr):
		return KindWrite
	case errors.As(err, &ioctlErr):
		return KindIoctl
	case errors.As(err, &decErr):
		return KindDecode
	case errors.As(err, &kinder):
		return kinder.Kind()
	}
	return KindUnknown
}
