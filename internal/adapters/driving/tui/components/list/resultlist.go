// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trawl/internal/core/domain"
)

// linesPerItem is the height of one rendered item.
const linesPerItem = 2

// ResultList displays items in a navigable list.
type ResultList struct {
	items    []domain.Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.items) > 0 {
				r.selected = len(r.items) - 1
			}
		}
	}
	return r, nil
}

// View renders the visible window of items around the selection.
func (r *ResultList) View() string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := (r.height - 2) / linesPerItem
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.items) {
		end = len(r.items)
	}

	lines := make([]string, 0, (end-start)*linesPerItem+1)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.items))))
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i)...)
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderItem(i int) []string {
	item := r.items[i]
	name := truncate(item.Name, r.width-4)
	title := r.styles.Normal.Render("  " + name)
	if i == r.selected {
		title = r.styles.Selected.Render("> " + name)
	}

	meta := []string{
		r.styles.Seeders.Render("S:" + orDash(item.Seeders)),
		r.styles.Leechers.Render("L:" + orDash(item.Leechers)),
	}
	for _, v := range []string{item.Size, item.Date, item.ProviderID} {
		if v != "" {
			meta = append(meta, r.styles.Muted.Render(v))
		}
	}
	return []string{title, "    " + strings.Join(meta, "  ")}
}

// SetItems replaces the items and resets the selection.
func (r *ResultList) SetItems(items []domain.Item) {
	r.items = items
	r.selected = 0
}

// Items returns the current items.
func (r *ResultList) Items() []domain.Item {
	return r.items
}

// Selected returns the selected item, or nil when the list is empty.
func (r *ResultList) Selected() *domain.Item {
	if r.selected < 0 || r.selected >= len(r.items) {
		return nil
	}
	return &r.items[r.selected]
}

// SelectedIndex returns the index of the selected item.
func (r *ResultList) SelectedIndex() int {
	return r.selected
}

// MoveUp moves the selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetSize sets the list dimensions.
func (r *ResultList) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// Clear removes all items.
func (r *ResultList) Clear() {
	r.items = nil
	r.selected = 0
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
