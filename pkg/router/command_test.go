package router_test

import (
	"bytes"
	"errors"
	"flag"

	"github.com/dsggregory/otpctl/pkg/device"
	"github.com/dsggregory/otpctl/pkg/router"
	. "gopkg.in/check.v1"
)

var _ = Suite(&parserSuite{})

type parserSuite struct {
	usage  bytes.Buffer
	parser *router.Parser
}

func (s *parserSuite) SetUpTest(c *C) {
	s.usage.Reset()
	var err error
	s.parser, err = router.NewParser(&s.usage)
	c.Assert(err, IsNil)
}

func (s *parserSuite) TestCommands(c *C) {
	for _, tc := range []struct {
		args []string
		want router.Command
	}{
		{[]string{"status"}, router.Command{Name: router.CmdStatus}},
		{[]string{"set-devices", "0"}, router.Command{Name: router.CmdSetDevices, Count: 0}},
		{[]string{"set-devices", "255"}, router.Command{Name: router.CmdSetDevices, Count: 255}},
		{[]string{"set-mode", "/dev/otp0", "algo"}, router.Command{Name: router.CmdSetMode, Device: "/dev/otp0", Mode: device.ModeAlgo}},
		{[]string{"set-mode", "/dev/otp1", "LIST"}, router.Command{Name: router.CmdSetMode, Device: "/dev/otp1", Mode: device.ModeList}},
		{[]string{"set-passwords", "foo", "bar", "baz"}, router.Command{Name: router.CmdSetPasswords, Passwords: []string{"foo", "bar", "baz"}}},
		{[]string{"set-passwords", "--", "-dash"}, router.Command{Name: router.CmdSetPasswords, Passwords: []string{"-dash"}}},
		{[]string{"show-passwords"}, router.Command{Name: router.CmdShowPasswords}},
		{[]string{"request", "/dev/otp0"}, router.Command{Name: router.CmdRequest, Device: "/dev/otp0"}},
		{[]string{"validate", "/dev/otp0", "foo"}, router.Command{Name: router.CmdValidate, Device: "/dev/otp0", OTP: "foo"}},
		{[]string{"validate", "/dev/otp0"}, router.Command{Name: router.CmdValidate, Device: "/dev/otp0", PromptOTP: true}},
	} {
		cmd, err := s.parser.Parse(tc.args)
		c.Assert(err, IsNil, Commentf("%v", tc.args))
		c.Assert(cmd, DeepEquals, tc.want, Commentf("%v", tc.args))
	}
}

func (s *parserSuite) TestUsageErrors(c *C) {
	for _, args := range [][]string{
		nil,
		{"frobnicate"},
		{"status", "extra"},
		{"set-devices"},
		{"set-devices", "1", "2"},
		{"set-mode", "/dev/otp0"},
		{"set-passwords"},
		{"request"},
		{"validate"},
		{"validate", "/dev/otp0", "a", "b"},
		{"request", "-x", "/dev/otp0"},
	} {
		_, err := s.parser.Parse(args)
		var ue *router.UsageError
		c.Assert(errors.As(err, &ue), Equals, true, Commentf("%v", args))
		c.Assert(device.KindOf(err), Equals, device.KindUsage)
	}
}

func (s *parserSuite) TestArgumentErrors(c *C) {
	for _, tc := range []struct {
		args []string
		msg  string
	}{
		{[]string{"set-devices", "256"}, "count must be 255 or less"},
		{[]string{"set-devices", "lots"}, "count must be a number"},
		{[]string{"set-mode", "/dev/otp0", "hotp"}, "mode must be one of \\[list algo\\]"},
		{[]string{"set-mode", "", "list"}, "device is a required field"},
		{[]string{"request", ""}, "device is a required field"},
	} {
		_, err := s.parser.Parse(tc.args)
		var ae router.ArgumentError
		c.Assert(errors.As(err, &ae), Equals, true, Commentf("%v", tc.args))
		c.Assert(err, ErrorMatches, tc.msg)
		c.Assert(device.KindOf(err), Equals, device.KindUsage)
	}
}

func (s *parserSuite) TestHelp(c *C) {
	cmd, err := s.parser.Parse([]string{"help"})
	c.Assert(errors.Is(err, flag.ErrHelp), Equals, true)
	c.Assert(cmd.Name, Equals, router.CmdHelp)

	cmd, err = s.parser.Parse([]string{"set-mode", "-h"})
	c.Assert(errors.Is(err, flag.ErrHelp), Equals, true)
	c.Assert(cmd.Name, Equals, router.CmdSetMode)
	c.Assert(s.usage.String(), Matches, `(?s)otpctl set-mode - .*otpctl set-mode <device> <list\|algo>.*`)
}

func (s *parserSuite) TestArgumentErrorMessageOrder(c *C) {
	ae := router.ArgumentError{"mode": "mode is bad", "device": "device is bad"}
	c.Assert(ae.Error(), Equals, "device is bad; mode is bad")
	c.Assert(router.ArgumentError{}.Error(), Equals, "invalid arguments")
}
