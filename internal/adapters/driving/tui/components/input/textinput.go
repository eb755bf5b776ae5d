// Package input holds the query field of the search view.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/styles"
)

const (
	maxQueryLen   = 256
	minFieldWidth = 20
	// labelPadding covers the brackets, the field border and its padding.
	labelPadding = 12
)

// SearchInput is the query field. A "[site]" label in front of it names the
// provider the next search goes to, or "all" for a fan-out.
type SearchInput struct {
	field  textinput.Model
	styles *styles.Styles
	site   string
	width  int
}

// NewSearchInput returns a focused, empty field targeting every provider.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.CharLimit = maxQueryLen
	field.Focus()

	in := &SearchInput{field: field, styles: s}
	in.SetSite(messages.AllSites)
	in.SetWidth(0)
	return in
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards key presses to the field.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	return s, cmd
}

// View renders the site label and the field side by side.
func (s *SearchInput) View() string {
	label := s.styles.Site.Render("[" + s.site + "]")
	field := s.styles.InputField.Render(s.field.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the raw text of the field.
func (s *SearchInput) Value() string {
	return s.field.Value()
}

// Query returns the text to search for, trimmed; empty means nothing to send.
func (s *SearchInput) Query() string {
	return strings.TrimSpace(s.field.Value())
}

// SetValue replaces the text of the field.
func (s *SearchInput) SetValue(value string) {
	s.field.SetValue(value)
}

// SetSite retargets the field and updates the placeholder to match.
func (s *SearchInput) SetSite(site string) {
	s.site = site
	if site == messages.AllSites {
		s.field.Placeholder = "Search every provider..."
	} else {
		s.field.Placeholder = "Search " + site + "..."
	}
	s.SetWidth(s.width)
}

// Focus gives the field the cursor.
func (s *SearchInput) Focus() tea.Cmd {
	return s.field.Focus()
}

// Blur hands the keyboard to the result list.
func (s *SearchInput) Blur() {
	s.field.Blur()
}

// Focused reports whether key presses go to the field.
func (s *SearchInput) Focused() bool {
	return s.field.Focused()
}

// SetWidth fits the field into width, leaving room for the site label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.field.Width = max(width-len(s.site)-labelPadding, minFieldWidth)
}
