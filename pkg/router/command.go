package router

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dsggregory/otpctl/pkg/device"
)

// Command names
const (
	CmdStatus        = "status"
	CmdSetDevices    = "set-devices"
	CmdSetMode       = "set-mode"
	CmdSetPasswords  = "set-passwords"
	CmdShowPasswords = "show-passwords"
	CmdRequest       = "request"
	CmdValidate      = "validate"
	CmdHelp          = "help"
)

// Command one resolved command line. Only the fields of Name are meaningful.
type Command struct {
	Name      string
	Device    string
	Mode      device.Mode
	Count     uint8
	Passwords []string
	OTP       string
	// PromptOTP the OTP was not given and must be asked for
	PromptOTP bool
}

// UsageError the command line could not be understood
type UsageError struct {
	Command string
	msg     string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) Kind() device.Kind { return device.KindUsage }

type setDevicesArgs struct {
	Count int `arg:"count" validate:"min=0,max=255"`
}

type setModeArgs struct {
	Device string `arg:"device" validate:"required"`
	Mode   string `arg:"mode" validate:"required,oneof=list algo"`
}

type setPasswordsArgs struct {
	Passwords []string `arg:"passwords" validate:"min=1"`
}

type deviceArgs struct {
	Device string `arg:"device" validate:"required"`
}

// commandSpec the positional arguments of a command
type commandSpec struct {
	synopsis string
	summary  string
	minArgs  int
	// maxArgs < 0 means unbounded
	maxArgs int
}

var commandSpecs = map[string]commandSpec{
	CmdStatus:        {"", "Print the aggregate status of all devices", 0, 0},
	CmdSetDevices:    {"<count>", "Set the number of devices the driver exposes (0-255)", 1, 1},
	CmdSetMode:       {"<device> <list|algo>", "Switch a device to password-list or algorithmic mode", 2, 2},
	CmdSetPasswords:  {"<password>...", "Replace the shared password list", 1, -1},
	CmdShowPasswords: {"", "Print the shared password list, one per line", 0, 0},
	CmdRequest:       {"<device>", "Read the next OTP from a device", 1, 1},
	CmdValidate:      {"<device> [otp]", "Submit an OTP to a device; prompts when otp is omitted", 1, 2},
}

// commandOrder the order commands appear in usage
var commandOrder = []string{
	CmdStatus, CmdSetDevices, CmdSetMode, CmdSetPasswords, CmdShowPasswords, CmdRequest, CmdValidate,
}

// Parser turns argument lists into Commands
type Parser struct {
	v *argValidator
	// usage output of -h
	usage io.Writer
}

func NewParser(usage io.Writer) (*Parser, error) {
	v, err := newArgValidator()
	if err != nil {
		return nil, err
	}
	return &Parser{v: v, usage: usage}, nil
}

// Parse resolves args (command name first) into a Command. flag.ErrHelp is returned for help requests.
func (p *Parser) Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &UsageError{msg: "command required"}
	}
	name := args[0]
	switch name {
	case CmdHelp, "-h", "-help", "--help":
		return Command{Name: CmdHelp}, flag.ErrHelp
	}
	spec, ok := commandSpecs[name]
	if !ok {
		return Command{}, &UsageError{msg: fmt.Sprintf("unknown command: %s", name)}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(p.usage)
	fs.Usage = func() {
		fmt.Fprintf(p.usage, "otpctl %s - %s\n\nUsage:\n  otpctl %s %s\n", name, spec.summary, name, spec.synopsis)
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Command{Name: name}, err
		}
		return Command{}, &UsageError{Command: name, msg: err.Error()}
	}

	pos := fs.Args()
	if len(pos) < spec.minArgs || (spec.maxArgs >= 0 && len(pos) > spec.maxArgs) {
		return Command{}, &UsageError{
			Command: name,
			msg:     fmt.Sprintf("usage: otpctl %s %s", name, spec.synopsis),
		}
	}

	cmd := Command{Name: name}
	switch name {
	case CmdSetDevices:
		n, err := strconv.Atoi(pos[0])
		if err != nil {
			return Command{}, ArgumentError{"count": "count must be a number"}
		}
		if err = p.v.Validate(setDevicesArgs{Count: n}); err != nil {
			return Command{}, err
		}
		cmd.Count = uint8(n)
	case CmdSetMode:
		ma := setModeArgs{Device: pos[0], Mode: strings.ToLower(pos[1])}
		if err := p.v.Validate(ma); err != nil {
			return Command{}, err
		}
		mode, err := device.ParseMode(ma.Mode)
		if err != nil {
			return Command{}, ArgumentError{"mode": err.Error()}
		}
		cmd.Device, cmd.Mode = ma.Device, mode
	case CmdSetPasswords:
		if err := p.v.Validate(setPasswordsArgs{Passwords: pos}); err != nil {
			return Command{}, err
		}
		cmd.Passwords = append([]string(nil), pos...)
	case CmdRequest, CmdValidate:
		if err := p.v.Validate(deviceArgs{Device: pos[0]}); err != nil {
			return Command{}, err
		}
		cmd.Device = pos[0]
		if name == CmdValidate {
			if len(pos) == 2 {
				cmd.OTP = pos[1]
			} else {
				cmd.PromptOTP = true
			}
		}
	}

	return cmd, nil
}

// Target the path a command touches
func (c Command) Target(r *Router) string {
	switch c.Name {
	case CmdSetMode, CmdRequest, CmdValidate:
		return c.Device
	case CmdSetDevices:
		return r.paths.Parameters.Count
	case CmdSetPasswords, CmdShowPasswords:
		return r.paths.Parameters.List
	case CmdStatus:
		return r.paths.Status
	}
	return ""
}
