package device

// Request reads one complete OTP from h, which must be ReadOnly. The driver ends every OTP with EOF,
// so a device that yields nothing returns an empty value.
func Request(h *Handle) (string, error) {
	if h.access != ReadOnly {
		return "", &ReadError{Path: h.path, Cause: ErrWrongAccess}
	}
	return h.readAll()
}

// Validate writes otp to h, which must be WriteOnly. The driver accepts an OTP by completing the
// write and rejects it by failing the write, so every failure is a ValidationError.
func Validate(h *Handle, otp string) error {
	if h.access != WriteOnly {
		return &ValidationError{Path: h.path, Cause: ErrWrongAccess}
	}
	if err := h.writeAll([]byte(otp)); err != nil {
		return &ValidationError{Path: h.path, Cause: err}
	}
	return nil
}

// WriteParameter writes value to a parameter file handle opened WriteOnly
func WriteParameter(h *Handle, value string) error {
	if h.access != WriteOnly {
		return &WriteError{Path: h.path, Cause: ErrWrongAccess}
	}
	if err := h.writeAll([]byte(value)); err != nil {
		return &WriteError{Path: h.path, Cause: err}
	}
	return nil
}

// ReadText reads a parameter or status file handle opened ReadOnly to EOF
func ReadText(h *Handle) (string, error) {
	if h.access != ReadOnly {
		return "", &ReadError{Path: h.path, Cause: ErrWrongAccess}
	}
	return h.readAll()
}
