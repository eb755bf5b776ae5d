// Package search provides the search view for the TUI.
package search

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Actions offered for a selected item.
const (
	ActionCopyMagnet = "Copy magnet link"
	ActionOpenURL    = "Open URL"
	ActionCancel     = "Cancel"
)

// ActionMenu is the action selection overlay for one item.
type ActionMenu struct {
	actions  []string
	selected int
	item     *domain.Item
}

// View is the search screen: site selector, query input, results and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	gateway driving.GatewayService
	actions driving.ResultActionService
	ctx     context.Context
	now     func() time.Time

	sites []string
	site  int

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
	actionMenu *ActionMenu
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	gateway driving.GatewayService,
	actions driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sites := []string{messages.AllSites}
	if gateway != nil {
		sites = append(sites, gateway.SearchableSites()...)
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		gateway:    gateway,
		actions:    actions,
		ctx:        context.Background(),
		now:        time.Now,
		sites:      sites,
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.input.SetSite(sites[0])
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetMessage(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil {
		return v.handleActionMenuKey(msg)
	}

	if v.focusInput {
		switch {
		case keymap.Matches(msg.String(), v.keymap.CycleSite):
			v.CycleSite()
			return v, nil
		case keymap.Matches(msg.String(), v.keymap.Search):
			query := v.input.Query()
			if query == "" {
				return v, nil
			}
			v.err = nil
			v.statusbar.SetState(status.StateSearching)
			v.statusbar.SetMessage("")
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(v.Site(), query)
		case keymap.Matches(msg.String(), v.keymap.Back):
			return v, tea.Quit
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Actions):
		if item := v.list.Selected(); item != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{ActionCopyMagnet, ActionOpenURL, ActionCancel},
				item:    item,
			}
		}
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.NewSearch),
		keymap.Matches(msg.String(), v.keymap.Back):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case msg.String() == "q":
		return v, tea.Quit
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		item := v.actionMenu.item
		v.actionMenu = nil
		return v, v.executeAction(action, item)
	case "esc":
		v.actionMenu = nil
	}
	return v, nil
}

func (v *View) executeAction(action string, item *domain.Item) tea.Cmd {
	if item == nil || action == ActionCancel {
		return nil
	}
	if v.actions == nil {
		v.statusbar.SetMessage(action + " not available")
		return nil
	}

	ctx := v.ctx
	actions := v.actions
	return func() tea.Msg {
		switch action {
		case ActionCopyMagnet:
			if err := actions.CopyMagnet(ctx, item); err != nil {
				return messages.ActionCompleted{Err: err}
			}
			return messages.ActionCompleted{Message: "Magnet link copied"}
		case ActionOpenURL:
			if err := actions.OpenItem(ctx, item); err != nil {
				return messages.ActionCompleted{Err: err}
			}
			return messages.ActionCompleted{Message: "Opening " + item.URL}
		}
		return nil
	}
}

// performSearch runs the query on one site, or on every site for "all".
func (v *View) performSearch(site, query string) tea.Cmd {
	gateway := v.gateway
	ctx := v.ctx
	now := v.now
	return func() tea.Msg {
		if gateway == nil {
			return messages.ErrorOccurred{Err: ErrNoGateway}
		}

		req := driving.Request{Site: site, Query: query}
		if site == messages.AllSites {
			res := gateway.Aggregate(ctx, domain.OpSearch, req)
			if !res.OK() {
				return messages.SearchCompleted{Site: site, Elapsed: res.Elapsed, Err: errors.New(domain.MsgEmpty)}
			}
			return messages.SearchCompleted{Site: site, Items: res.Items, Total: res.Total, Elapsed: res.Elapsed}
		}

		start := now()
		out := gateway.Dispatch(ctx, domain.OpSearch, req)
		elapsed := now().Sub(start)
		if !out.OK() {
			return messages.SearchCompleted{Site: site, Elapsed: elapsed, Err: errors.New(out.Message())}
		}
		return messages.SearchCompleted{Site: site, Items: out.Items, Total: out.Total, Elapsed: elapsed}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.list.Clear()
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetItems(msg.Items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResults(len(msg.Items), msg.Total, msg.Elapsed)
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("trawl"), "", v.input.View(), "")
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(v.err.Error()), "")
	}
	sections = append(sections, v.list.View())
	if v.actionMenu != nil {
		sections = append(sections, "", v.renderActionMenu())
	}
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions)+1)
	lines = append(lines, v.styles.Subtitle.Render(v.actionMenu.item.Name))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// CycleSite moves the site selector to the next entry.
func (v *View) CycleSite() {
	v.site = (v.site + 1) % len(v.sites)
	v.input.SetSite(v.sites[v.site])
	v.input.SetWidth(v.width)
}

// Site returns the selected site id, or "all".
func (v *View) Site() string {
	return v.sites[v.site]
}

// Sites returns the selector entries.
func (v *View) Sites() []string {
	return v.sites
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetSize(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Items returns the items currently listed.
func (v *View) Items() []domain.Item {
	return v.list.Items()
}

// SelectedItem returns the highlighted item.
func (v *View) SelectedItem() *domain.Item {
	return v.list.Selected()
}

// ActionMenuOpen reports whether the action menu is shown.
func (v *View) ActionMenuOpen() bool {
	return v.actionMenu != nil
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Reset returns the view to an empty input.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.Clear()
	v.err = nil
	v.actionMenu = nil
	v.statusbar.Clear()
}
