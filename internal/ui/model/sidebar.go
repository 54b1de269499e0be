package model

import (
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// sidebarWidth is the width of the sidebar, border included.
const sidebarWidth = 32

// SidebarModel shows the connection and the freshness of each slice.
type SidebarModel struct {
	com   *common.Common
	store *store.Store

	// width of the sidebar.
	width int
}

// NewSidebarModel creates a new SidebarModel instance.
func NewSidebarModel(com *common.Common, st *store.Store) *SidebarModel {
	return &SidebarModel{
		com:   com,
		store: st,
	}
}

// SetWidth sets the width of the sidebar.
func (m *SidebarModel) SetWidth(width int) {
	m.width = width
}

// View renders the sidebar model as a string.
func (m *SidebarModel) View() string {
	t := &m.com.Styles
	inner := max(0, m.width-t.Sidebar.GetHorizontalFrameSize())

	client := m.store.Client()
	token := t.Form.Error.Render(styles.ErrorIcon + " missing")
	if client.Token().Get() != "" {
		token = t.Form.Valid.Render(styles.CheckIcon + " set")
	}

	blocks := []string{
		common.Section(t, "Backend", inner),
		t.Base.Width(inner).Render(client.BaseURL()),
		t.Muted.Render("token ") + token,
		"",
		common.Section(t, "Data", inner),
		common.PrettyPath(t, m.com.Config.DataDir(), inner),
		"",
		common.Section(t, "Updated", inner),
		m.freshness("Transactions", m.store.Transactions.FetchedAt),
		m.freshness("Alerts", m.store.Alerts.FetchedAt),
		m.freshness("Clients", m.store.Clients.FetchedAt),
		m.freshness("Summary", m.store.Summary.FetchedAt),
	}

	if n := len(m.store.Recent.Items); n > 0 {
		blocks = append(blocks,
			"",
			t.Form.Error.Render(styles.AlertIcon)+" "+t.Base.Render(common.Count(n, "open alert", "open alerts")),
		)
	}

	return t.Sidebar.Width(m.width).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		blocks...,
	))
}

func (m *SidebarModel) freshness(label string, at time.Time) string {
	t := &m.com.Styles
	value := t.Subtle.Render("never")
	if !at.IsZero() {
		value = t.Base.Render(humanize.Time(at))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, t.Muted.Width(14).Render(label), value)
}
