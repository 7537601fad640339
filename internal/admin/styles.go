package admin

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func note(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

func panel(w io.Writer, title string, lines []string) {
	body := titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	fmt.Fprintln(w, panelStyle.Render(body))
}
