package cli

import (
	"fmt"

	"github.com/idilsaglam/shoplist/internal/shopping"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func renderList(items shopping.Items, group bool) string {
	t := ui.Current()
	purchased, pending := shopping.Stats(items)

	lines := []string{
		ui.Header(purchased, pending),
		t.Muted.Render(ui.ProgressBar(purchased, purchased+pending, 28)),
		"",
	}
	switch {
	case len(items) == 0:
		lines = append(lines, ui.EmptyLines()...)
	case group:
		lines = append(lines, groupLines(items)...)
	default:
		lines = append(lines, flatLines(items, nil)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `shoplist add Milk -q 2`"))
	return ui.Panel(lines)
}

// flatLines numbers items by their position in full, so indexes printed
// under --group still work with edit/toggle/rm.
func flatLines(items shopping.Items, full shopping.Items) []string {
	if full == nil {
		full = items
	}
	pos := make(map[string]int, len(full))
	for i, it := range full {
		pos[it.ID] = i + 1
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := ui.Current().Muted.Render(fmt.Sprintf("%2d.", pos[it.ID]))
		out = append(out, idx+" "+ui.ItemLine(it))
	}
	return out
}

func groupLines(items shopping.Items) []string {
	var pend, bought shopping.Items
	for _, it := range items {
		if it.Purchased {
			bought = append(bought, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, items)...)
	}
	lines = append(lines, "", t.Accent.Render("Purchased"))
	if len(bought) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(bought, items)...)
	}
	return lines
}
