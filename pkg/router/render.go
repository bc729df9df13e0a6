package router

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles colors confirmations and errors when the writer is a color terminal. Values read from
// the driver are always printed unstyled.
type styles struct {
	ok   lipgloss.Style
	fail lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (s styles) confirm(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.ok.Render(fmt.Sprintf(format, args...)))
}

func (s styles) failure(w io.Writer, err error) {
	fmt.Fprintln(w, s.fail.Render("Error: "+err.Error()))
}
