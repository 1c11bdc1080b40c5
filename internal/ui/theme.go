package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles + symbols + panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var current = themeFor("classic")

func SetTheme(name string) { current = themeFor(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func themeFor(name string) Theme {
	base := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:   base.Bold(true).Foreground(lipgloss.Color("201")),
			Muted:   base.Foreground(lipgloss.Color("245")),
			Accent:  base.Foreground(lipgloss.Color("51")),
			Success: base.Foreground(lipgloss.Color("46")),
			Error:   base.Foreground(lipgloss.Color("196")).Bold(true),
			Pending: base.Foreground(lipgloss.Color("226")),

			Selected: base.Bold(true).Foreground(lipgloss.Color("201")),
			Done:     base.Faint(true).Strikethrough(true),
			Help:     base.Faint(true),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("201"),
		}
	case "mono":
		return Theme{
			Title: base.Bold(true), Muted: base, Accent: base,
			Success: base, Error: base.Bold(true), Pending: base,

			Selected: base.Reverse(true),
			Done:     base,
			Help:     base,

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Title:   base.Bold(true),
			Muted:   base.Faint(true),
			Accent:  base.Foreground(lipgloss.Color("12")),
			Success: base.Foreground(lipgloss.Color("42")),
			Error:   base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending: base.Foreground(lipgloss.Color("214")),

			Selected: base.Bold(true).Reverse(true),
			Done:     base.Faint(true).Strikethrough(true),
			Help:     base.Faint(true),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}
