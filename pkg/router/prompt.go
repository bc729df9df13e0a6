package router

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for a secret value
type Prompter func(prompt string) (string, error)

// StdinPrompter prompts on out and reads from in. A terminal in is read with echo disabled,
// anything else is read up to the end of the first line.
func StdinPrompter(in io.Reader, out io.Writer) Prompter {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
		return gets(in)
	}
}

func gets(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	resp, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || resp == "") {
		return "", err
	}
	resp = strings.TrimRight(resp, "\r\n")
	return resp, nil
}
