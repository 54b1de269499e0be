package model

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/ledgerlens/ledgerlens/internal/ui/dialog"
)

// pageID identifies a dashboard tab.
type pageID int

// Possible pageID values, in tab order.
const (
	overviewPage pageID = iota
	transactionsPage
	compliancePage
	reportsPage
	wizardPage
)

// page is one tab of the dashboard.
type page interface {
	ID() pageID
	Title() string

	// Activate is called when the page becomes visible. It returns the
	// fetches the page needs, if any.
	Activate() tea.Cmd
	// Refresh refetches the page data, bypassing the store cache.
	Refresh() tea.Cmd
	// Sync copies the store state into the page widgets after a result was
	// applied.
	Sync()

	Update(msg tea.Msg) tea.Cmd
	// HandleClick handles a left click relative to the page origin.
	HandleClick(x, y int) tea.Cmd
	View(width, height int) string

	// Editing reports whether a field has the keyboard, in which case
	// global single-key bindings are not applied.
	Editing() bool
	ShortHelp() []key.Binding
}

type (
	// openDialogMsg asks the UI to push a dialog on the overlay.
	openDialogMsg struct {
		Dialog dialog.Dialog
	}

	// switchPageMsg asks the UI to show another tab.
	switchPageMsg struct {
		Page pageID
	}

	// refreshMsg refetches the visible page.
	refreshMsg struct{}

	// toggleHelpMsg expands or collapses the help bar.
	toggleHelpMsg struct{}

	// openQuitMsg opens the quit dialog.
	openQuitMsg struct{}
)

func openDialog(d dialog.Dialog) tea.Cmd {
	return func() tea.Msg {
		return openDialogMsg{Dialog: d}
	}
}
