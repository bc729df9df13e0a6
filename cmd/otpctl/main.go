// Command otpctl controls otp kernel devices: device count, shared password list, per-device
// mode, and requesting or validating one-time passwords.
//
// Usage:
//
//	otpctl [flags] <command> [args]
//
// Examples:
//
//	otpctl set-devices 4
//	otpctl set-passwords foo bar baz
//	otpctl set-mode /dev/otp0 algo
//	otpctl request /dev/otp0
//	otpctl validate /dev/otp0 foo
package main

import (
	"os"

	"github.com/dsggregory/otpctl/pkg/router"
)

func main() {
	os.Exit(router.Run(os.Args[1:], router.Env{
		Stdio: router.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	}))
}
