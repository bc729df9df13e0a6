package router

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dsggregory/otpctl/pkg/audit"
	"github.com/dsggregory/otpctl/pkg/config"
	"github.com/dsggregory/otpctl/pkg/device"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

const usageHeader = `otpctl - control otp kernel devices

Usage:
  otpctl [flags] <command> [args]

Commands:
`

// Stdio the streams an invocation uses
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Options global flags
type Options struct {
	ConfigPath string
	LogLevel   string
	AuditDSN   string
}

// Env lets tests replace what Run would otherwise build itself
type Env struct {
	Stdio
	// Prompter asks for an OTP not given on the command line. Defaults to StdinPrompter.
	Prompter Prompter
	// Journal overrides the configured audit journal
	Journal audit.Journal
}

func optionsFlagSet(opts *Options, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("otpctl", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Usage = func() { printUsage(usage, fs) }
	fs.StringVar(&opts.ConfigPath, "config", "", "Config file (default $"+config.EnvConfig+" or "+config.DefaultFile+")")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (overrides config)")
	fs.StringVar(&opts.AuditDSN, "audit", "", "Audit journal DSN (overrides config)")
	return fs
}

func parseOptions(args []string, usage io.Writer) (Options, []string, error) {
	var opts Options
	fs := optionsFlagSet(&opts, usage)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, nil, err
		}
		return opts, nil, &UsageError{msg: err.Error()}
	}
	return opts, fs.Args(), nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, usageHeader)
	for _, name := range commandOrder {
		spec := commandSpecs[name]
		fmt.Fprintf(w, "  %-15s %s\n", name, spec.summary)
	}
	fmt.Fprintln(w, "\nFlags:")
	fs.PrintDefaults()
	fmt.Fprintln(w, "\nUse \"otpctl <command> -h\" for more information about a command.")
}

// Run executes one otpctl invocation and returns its exit code. It is the only place errors
// are reported and exit codes chosen.
func Run(args []string, env Env) int {
	errStyles := newStyles(env.Err)
	fail := func(err error) int {
		errStyles.failure(env.Err, err)
		return ExitFailure
	}

	opts, rest, err := parseOptions(args, env.Out)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		return fail(err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fail(err)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err = config.ConfigureLogging(cfg.Log, env.Err); err != nil {
		return fail(&UsageError{msg: err.Error()})
	}

	parser, err := NewParser(env.Err)
	if err != nil {
		return fail(err)
	}
	cmd, err := parser.Parse(rest)
	if errors.Is(err, flag.ErrHelp) {
		if cmd.Name == CmdHelp {
			printUsage(env.Out, optionsFlagSet(&Options{}, env.Out))
		}
		return ExitOK
	}
	if err != nil {
		code := fail(err)
		var ue *UsageError
		if errors.As(err, &ue) && ue.Command == "" {
			printUsage(env.Err, optionsFlagSet(&Options{}, env.Err))
		}
		return code
	}

	invocation := uuid.NewV4().String()
	logger := log.WithField("invocation", invocation).WithField("command", cmd.Name)

	journal := env.Journal
	if journal == nil {
		dsn := cfg.Audit.DSN
		if opts.AuditDSN != "" {
			dsn = opts.AuditDSN
		}
		if journal, err = audit.Open(dsn); err != nil {
			logger.WithError(err).Debug("audit journal unavailable")
			return fail(err)
		}
		defer func() { _ = journal.Close() }()
	}

	if cmd.PromptOTP {
		prompt := env.Prompter
		if prompt == nil {
			prompt = StdinPrompter(env.In, env.Err)
		}
		if cmd.OTP, err = prompt("Enter OTP: "); err != nil {
			return fail(&UsageError{Command: cmd.Name, msg: fmt.Sprintf("unable to read otp: %v", err)})
		}
	}

	rtr := NewRouter(cfg.Paths, env.Out)
	err = rtr.Execute(cmd)

	entry := audit.Entry{
		Invocation: invocation,
		Command:    cmd.Name,
		Target:     cmd.Target(rtr),
		Outcome:    audit.OutcomeOK,
	}
	if err != nil {
		entry.Outcome = audit.OutcomeFailed
		entry.ErrorKind = device.KindOf(err).String()
		entry.Message = err.Error()
	}
	if aerr := journal.Record(entry); aerr != nil {
		logger.WithError(aerr).Warn("unable to record audit entry")
	}

	if err != nil {
		logger.WithError(err).WithField("kind", device.KindOf(err)).Debug("command failed")
		return fail(err)
	}
	logger.Debug("command succeeded")

	return ExitOK
}
