package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines with the current theme's border.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Header is the title line with purchased / pending / total counts.
func Header(purchased, pending int) string {
	t := Current()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Shopping List"),
		t.Success.Render(t.SymDone), purchased,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), purchased+pending,
	)
}

const maxNameWidth = 60

// ItemLine renders "☐ Milk  ×2"; purchased items are struck through.
func ItemLine(it model.ShoppingItem) string {
	t := Current()
	name := it.Name
	if r := []rune(name); len(r) > maxNameWidth {
		name = string(r[:maxNameWidth-3]) + "..."
	}
	box := t.Muted.Render(t.BoxUnchecked)
	if it.Purchased {
		box = t.Success.Render(t.BoxChecked)
		name = t.Done.Render(name)
	}
	line := box + " " + name
	if q := strings.TrimSpace(it.Quantity); q != "" {
		line += "  " + t.Accent.Render("×"+q)
	}
	return line
}

// EmptyLines is what an empty list shows.
func EmptyLines() []string {
	t := Current()
	return []string{
		"Your shopping list is empty",
		t.Muted.Render("Add some items to get started!"),
	}
}
