// Package router maps one otpctl command to the device or parameter operation it names and
// renders the outcome.
package router

import (
	"fmt"
	"io"
	"strings"

	"github.com/dsggregory/otpctl/pkg/config"
	"github.com/dsggregory/otpctl/pkg/device"
	"github.com/dsggregory/otpctl/pkg/params"
	"github.com/dsggregory/otpctl/pkg/status"
	log "github.com/sirupsen/logrus"
)

// Router executes Commands against the driver files in paths
type Router struct {
	paths  config.Paths
	params *params.Store
	status *status.Reporter
	out    io.Writer
	styles styles
}

func NewRouter(paths config.Paths, out io.Writer) *Router {
	return &Router{
		paths:  paths,
		params: params.NewStore(paths.Parameters),
		status: status.NewReporter(paths.Status),
		out:    out,
		styles: newStyles(out),
	}
}

// Execute runs cmd. Output is written only when the command succeeds.
func (r *Router) Execute(cmd Command) error {
	switch cmd.Name {
	case CmdStatus:
		return r.showStatus()
	case CmdSetDevices:
		return r.setDevices(cmd.Count)
	case CmdSetMode:
		return r.setMode(cmd.Device, cmd.Mode)
	case CmdSetPasswords:
		return r.setPasswords(cmd.Passwords)
	case CmdShowPasswords:
		return r.showPasswords()
	case CmdRequest:
		return r.request(cmd.Device)
	case CmdValidate:
		return r.validate(cmd.Device, cmd.OTP)
	}
	return &UsageError{Command: cmd.Name, msg: fmt.Sprintf("unknown command: %s", cmd.Name)}
}

func (r *Router) showStatus() error {
	text, err := r.status.ReadStatus()
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, text)
	return err
}

func (r *Router) setDevices(n uint8) error {
	if err := r.params.SetDeviceCount(n); err != nil {
		return err
	}
	r.styles.confirm(r.out, "device count has been set to %d", n)
	return nil
}

func (r *Router) setMode(path string, mode device.Mode) error {
	h, err := device.Open(path, device.WriteOnly)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if err = device.SetMode(h, mode); err != nil {
		return err
	}
	r.styles.confirm(r.out, "device '%s' has been set to mode '%s'", path, mode)
	return nil
}

func (r *Router) setPasswords(list []string) error {
	for i, p := range list {
		if strings.Contains(p, params.Separator) {
			log.WithField("entry", i).Warn("password contains a comma and will be split by the driver")
		}
	}
	if last := len(list) - 1; last >= 0 && strings.HasSuffix(list[last], "\n") {
		log.WithField("entry", last).Warn("last password ends in a newline which is dropped on read")
	}
	if err := r.params.SetPasswordList(list); err != nil {
		return err
	}
	r.styles.confirm(r.out, "password list has been updated (%d entries)", len(list))
	return nil
}

func (r *Router) showPasswords() error {
	list, err := r.params.GetPasswordList()
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, p := range list {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(r.out, sb.String())
	return err
}

func (r *Router) request(path string) error {
	h, err := device.Open(path, device.ReadOnly)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	otp, err := device.Request(h)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, otp)
	return err
}

func (r *Router) validate(path, otp string) error {
	h, err := device.Open(path, device.WriteOnly)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if err = device.Validate(h, otp); err != nil {
		return err
	}
	r.styles.confirm(r.out, "otp has been approved by device '%s'", path)
	return nil
}
