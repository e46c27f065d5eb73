package ui

import (
	"fmt"
	"strings"

	"pathlen/internal/helpers"
	"pathlen/internal/record"

	"github.com/charmbracelet/bubbles/list"
)

// RecordItem wraps a record.Record to implement the list.Item interface.
type RecordItem struct {
	Record    record.Record
	Threshold int
}

// FilterValue returns the string used for filtering.
// Implements list.Item interface.
func (i RecordItem) FilterValue() string {
	return i.Record.Path
}

// Title returns the main display text for the item.
// Implements list.DefaultItem interface.
func (i RecordItem) Title() string {
	return helpers.TruncatePath(i.Record.Path, 70)
}

// Description returns secondary text for the item.
// Implements list.DefaultItem interface.
func (i RecordItem) Description() string {
	kind := "file"
	if i.Record.IsDir {
		kind = "dir"
	}
	over := i.Record.Length - i.Threshold
	if i.Record.Exceeds {
		return fmt.Sprintf("%d units (+%d over) | %s", i.Record.Length, over, kind)
	}
	return fmt.Sprintf("%d units | %s", i.Record.Length, kind)
}

// DetailView returns an expanded detail view for the selected item.
func (i RecordItem) DetailView() string {
	r := i.Record
	var b strings.Builder

	b.WriteString("┌─ Details ─────────────────────────────────────────────────────────────\n")
	b.WriteString(fmt.Sprintf("│ %s  %s\n", DetailLabelStyle.Render("Kind:"), KindBadge(r.IsDir)))
	b.WriteString(fmt.Sprintf("│ %s  %d\n", DetailLabelStyle.Render("Length:"), r.Length))

	if r.Exceeds {
		b.WriteString(fmt.Sprintf("│ %s  +%d over the %d threshold\n",
			DetailLabelStyle.Render("Excess:"), r.Length-i.Threshold, i.Threshold))
	}

	b.WriteString("│\n")
	b.WriteString(fmt.Sprintf("│ %s  %s\n", DetailLabelStyle.Render("Path:"), r.Path))
	b.WriteString("└────────────────────────────────────────────────────────────────────────\n")

	return b.String()
}

// RecordsToItems converts a slice of records into list items.
func RecordsToItems(records []record.Record, threshold int) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = RecordItem{Record: r, Threshold: threshold}
	}
	return items
}
