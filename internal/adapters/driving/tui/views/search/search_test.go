package search

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/trawl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

type mockGateway struct {
	sites     []string
	outcome   domain.Outcome
	aggregate domain.AggregateResult

	dispatched []driving.Request
	aggregated []driving.Request
}

func (m *mockGateway) Dispatch(_ context.Context, _ domain.Operation, req driving.Request) domain.Outcome {
	m.dispatched = append(m.dispatched, req)
	return m.outcome
}

func (m *mockGateway) Aggregate(_ context.Context, _ domain.Operation, req driving.Request) domain.AggregateResult {
	m.aggregated = append(m.aggregated, req)
	return m.aggregate
}

func (m *mockGateway) Sites() []domain.ProviderDescriptor { return nil }

func (m *mockGateway) SearchableSites() []string { return m.sites }

type mockActions struct {
	copied []string
	opened []string
	err    error
}

func (m *mockActions) CopyMagnet(_ context.Context, item *domain.Item) error {
	m.copied = append(m.copied, item.Magnet)
	return m.err
}

func (m *mockActions) OpenItem(_ context.Context, item *domain.Item) error {
	m.opened = append(m.opened, item.URL)
	return m.err
}

func testItems() []domain.Item {
	return []domain.Item{
		{Name: "Ubuntu 24.04", Seeders: "120", Leechers: "4", Size: "5.7 GB", Magnet: "magnet:?xt=1", URL: "https://a/1"},
		{Name: "Debian 12", Seeders: "80", Magnet: "magnet:?xt=2", URL: "https://a/2"},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestView(gw *mockGateway, actions driving.ResultActionService) *View {
	v := NewView(nil, nil, gw, actions)
	v.SetDimensions(100, 30)
	return v
}

// submit types a query, presses enter and feeds the search result back.
func submit(t *testing.T, v *View, query string) {
	t.Helper()
	v.SetQuery(query)
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView_SiteSelector(t *testing.T) {
	v := newTestView(&mockGateway{sites: []string{"1337x", "nyaa"}}, nil)

	assert.Equal(t, []string{messages.AllSites, "1337x", "nyaa"}, v.Sites())
	assert.Equal(t, messages.AllSites, v.Site())
	assert.True(t, v.InputFocused())
}

func TestNewView_NilGateway(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	assert.Equal(t, []string{messages.AllSites}, v.Sites())
}

func TestView_TabCyclesSites(t *testing.T) {
	v := newTestView(&mockGateway{sites: []string{"1337x", "nyaa"}}, nil)

	v.Update(key("tab"))
	assert.Equal(t, "1337x", v.Site())
	v.Update(key("tab"))
	assert.Equal(t, "nyaa", v.Site())
	v.Update(key("tab"))
	assert.Equal(t, messages.AllSites, v.Site())
}

func TestView_EmptyQueryDoesNotSearch(t *testing.T) {
	gw := &mockGateway{}
	v := newTestView(gw, nil)

	v.SetQuery("   ")
	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_SearchAllAggregates(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{
		Kind:    domain.OutcomeSuccess,
		Items:   testItems(),
		Total:   2,
		Elapsed: 1500 * time.Millisecond,
	}}
	v := newTestView(gw, nil)

	submit(t, v, "linux")

	require.Len(t, gw.aggregated, 1)
	assert.Equal(t, "linux", gw.aggregated[0].Query)
	assert.Empty(t, gw.dispatched)
	assert.Len(t, v.Items(), 2)
	assert.False(t, v.InputFocused())
	assert.Equal(t, status.StateResults, v.Status().State())
	assert.Equal(t, 2, v.Status().Total())
	assert.Equal(t, 1500*time.Millisecond, v.Status().Elapsed())
}

func TestView_SearchSingleSiteDispatches(t *testing.T) {
	gw := &mockGateway{
		sites:   []string{"nyaa"},
		outcome: domain.Outcome{Kind: domain.OutcomeSuccess, Items: testItems()[:1], Total: 40},
	}
	v := newTestView(gw, nil)
	v.Update(key("tab"))

	submit(t, v, "frieren")

	require.Len(t, gw.dispatched, 1)
	assert.Equal(t, driving.Request{Site: "nyaa", Query: "frieren"}, gw.dispatched[0])
	assert.Len(t, v.Items(), 1)
	assert.Equal(t, 40, v.Status().Total())
}

func TestView_SearchFailureShowsMessage(t *testing.T) {
	gw := &mockGateway{sites: []string{"nyaa"}, outcome: domain.Outcome{Kind: domain.OutcomeBlocked}}
	v := newTestView(gw, nil)
	v.Update(key("tab"))

	submit(t, v, "x")

	require.Error(t, v.Err())
	assert.Equal(t, domain.MsgBlocked, v.Err().Error())
	assert.Equal(t, status.StateError, v.Status().State())
	assert.Empty(t, v.Items())
}

func TestView_AggregateEmptyShowsNotFound(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeEmpty}}
	v := newTestView(gw, nil)

	submit(t, v, "nothing")

	require.Error(t, v.Err())
	assert.Equal(t, domain.MsgEmpty, v.Err().Error())
}

func TestView_NoGateway(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	v.SetDimensions(80, 24)
	v.SetQuery("q")

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoGateway)
}

func TestView_ActionMenuCopyMagnet(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	actions := &mockActions{}
	v := newTestView(gw, actions)
	submit(t, v, "linux")

	v.Update(key("down"))
	v.Update(key("enter"))
	require.True(t, v.ActionMenuOpen())

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.False(t, v.ActionMenuOpen())
	assert.Equal(t, []string{"magnet:?xt=2"}, actions.copied)
	assert.Equal(t, "Magnet link copied", v.Status().Message())
}

func TestView_ActionMenuOpenURL(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	actions := &mockActions{}
	v := newTestView(gw, actions)
	submit(t, v, "linux")

	v.Update(key("enter"))
	v.Update(key("j"))
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, []string{"https://a/1"}, actions.opened)
}

func TestView_ActionErrorShown(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	v := newTestView(gw, &mockActions{err: errors.New("clipboard unavailable")})
	submit(t, v, "linux")

	v.Update(key("enter"))
	_, cmd := v.Update(key("enter"))
	v.Update(cmd())

	assert.Equal(t, "clipboard unavailable", v.Status().Message())
}

func TestView_ActionMenuCancel(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	actions := &mockActions{}
	v := newTestView(gw, actions)
	submit(t, v, "linux")

	v.Update(key("enter"))
	v.Update(key("esc"))
	assert.False(t, v.ActionMenuOpen())

	v.Update(key("enter"))
	v.Update(key("j"))
	v.Update(key("j"))
	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Empty(t, actions.copied)
	assert.Empty(t, actions.opened)
}

func TestView_NoActionService(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	v := newTestView(gw, nil)
	submit(t, v, "linux")

	v.Update(key("enter"))
	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, ActionCopyMagnet+" not available", v.Status().Message())
}

func TestView_NewSearchRefocusesInput(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	v := newTestView(gw, nil)
	submit(t, v, "linux")

	v.Update(key("n"))

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_EscInInputQuits(t *testing.T) {
	v := newTestView(&mockGateway{}, nil)

	_, cmd := v.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Render(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	v := newTestView(gw, nil)
	submit(t, v, "linux")

	out := v.View()

	assert.Contains(t, out, "[all]")
	assert.Contains(t, out, "Ubuntu 24.04")
	assert.Contains(t, out, "S:120")
	assert.Contains(t, out, "2 of 2 results")
}

func TestView_RenderBeforeReady(t *testing.T) {
	v := NewView(nil, nil, &mockGateway{}, nil)
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Reset(t *testing.T) {
	gw := &mockGateway{aggregate: domain.AggregateResult{Kind: domain.OutcomeSuccess, Items: testItems(), Total: 2}}
	v := newTestView(gw, nil)
	submit(t, v, "linux")

	v.Reset()

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Items())
	assert.Equal(t, status.StateReady, v.Status().State())
}
