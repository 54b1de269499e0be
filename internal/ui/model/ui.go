package model

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
	"github.com/charmbracelet/x/ansi"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/dialog"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/ledgerlens/ledgerlens/internal/uiutil"
	"github.com/ledgerlens/ledgerlens/internal/version"
)

const (
	// Smallest terminal the dashboard renders in.
	minWidth  = 60
	minHeight = 16

	headerHeight = 3
	// The sidebar is shown from this terminal width on.
	sidebarBreakpoint = 120
)

// UI represents the main user interface model.
type UI struct {
	com   *common.Common
	store *store.Store

	// The width and height of the terminal in cells.
	width  int
	height int
	layout layout

	keyMap KeyMap
	pages  []page
	active int
	wizard *wizard

	dialog  *dialog.Overlay
	help    help.Model
	sidebar *SidebarModel

	spinner  spinner.Model
	spinning bool

	status *uiutil.InfoMsg

	// tabs holds the horizontal extent of each tab in the header, relative
	// to the header origin.
	tabs []image.Rectangle
}

// New creates a new instance of the [UI] model.
func New(com *common.Common, st *store.Store, catalog bank.Catalog) *UI {
	ui := &UI{
		com:     com,
		store:   st,
		keyMap:  DefaultKeyMap(),
		dialog:  dialog.NewOverlay(),
		help:    help.New(),
		sidebar: NewSidebarModel(com, st),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(com.Styles.Title),
		),
	}
	ui.help.Styles = com.Styles.Help

	km := &ui.keyMap
	ui.wizard = newWizard(com, st, km, catalog)
	ui.pages = []page{
		newOverview(com, st, km),
		newTransactions(com, st, km, catalog),
		newCompliance(com, st, km),
		newReports(com, st, km),
		ui.wizard,
	}
	return ui
}

// Init initializes the UI model.
func (m *UI) Init() tea.Cmd {
	return tea.Batch(m.activePage().Activate(), m.startSpinner())
}

func (m *UI) activePage() page {
	return m.pages[m.active]
}

// Update handles updates to the UI model.
func (m *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store.Apply(msg) {
		for _, p := range m.pages {
			p.Sync()
		}
		for _, p := range m.pages {
			if cmd := p.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if err := store.Err(msg); err != nil && !errors.Is(err, context.Canceled) {
			cmds = append(cmds, uiutil.ReportError(err))
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.updateLayoutAndSize()

	case uiutil.InfoMsg:
		m.status = &msg
		cmds = append(cmds, uiutil.ClearAfter(msg))
	case uiutil.ClearStatusMsg:
		m.status = nil

	case spinner.TickMsg:
		if !m.store.Loading() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case openDialogMsg:
		m.dialog.AddDialog(msg.Dialog)
	case switchPageMsg:
		cmds = append(cmds, m.switchPage(int(msg.Page)))
	case refreshMsg:
		cmds = append(cmds, m.activePage().Refresh())
	case toggleHelpMsg:
		m.toggleHelp()
	case openQuitMsg:
		cmds = append(cmds, m.openQuitDialog())

	case tea.MouseClickMsg:
		if m.dialog.HasDialogs() || msg.Button != tea.MouseLeft {
			break
		}
		cmds = append(cmds, m.handleClick(msg.X, msg.Y))
	case tea.MouseWheelMsg:
		if m.dialog.HasDialogs() {
			cmds = append(cmds, m.handleDialogAction(m.dialog.Update(msg)))
		}

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPressMsg(msg))

	default:
		if m.dialog.HasDialogs() {
			cmds = append(cmds, m.handleDialogAction(m.dialog.Update(msg)))
		}
		// Debounce ticks and other page-owned messages.
		for _, p := range m.pages {
			if cmd := p.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	cmds = append(cmds, m.startSpinner())
	return m, tea.Batch(cmds...)
}

// startSpinner starts ticking when a request is in flight.
func (m *UI) startSpinner() tea.Cmd {
	if m.spinning || !m.store.Loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *UI) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Quit) && !m.dialog.ContainsDialog(dialog.QuitID) {
		// Always handle quit keys first
		return m.openQuitDialog()
	}

	// Route all messages to dialog if one is open.
	if m.dialog.HasDialogs() {
		return m.handleDialogAction(m.dialog.Update(msg))
	}

	p := m.activePage()
	switch {
	case key.Matches(msg, m.keyMap.Tab):
		return m.switchPage(m.active + 1)
	case key.Matches(msg, m.keyMap.PrevTab):
		return m.switchPage(m.active - 1)
	case key.Matches(msg, m.keyMap.Commands):
		return m.openCommandsDialog()
	case key.Matches(msg, m.keyMap.Refresh):
		return p.Refresh()
	case key.Matches(msg, m.keyMap.Help) && !p.Editing():
		m.toggleHelp()
		return nil
	}
	return p.Update(msg)
}

func (m *UI) handleDialogAction(action dialog.Action) tea.Cmd {
	switch action := action.(type) {
	case dialog.ActionQuit:
		return tea.Quit
	case dialog.ActionConfirm:
		if action.ID == SubmitTransactionID {
			return m.wizard.Submit()
		}
	case dialog.ActionRun:
		return uiutil.CmdHandler(action.Command.Msg)
	case dialog.ActionCopy:
		return copyToClipboard(action.Text)
	case dialog.ActionCmd:
		return action.Cmd
	}
	return nil
}

// handleClick handles a left click at screen coordinates x, y.
func (m *UI) handleClick(x, y int) tea.Cmd {
	pt := image.Pt(x, y)
	if pt.In(m.layout.header) {
		rel := pt.Sub(m.layout.header.Min)
		for i, r := range m.tabs {
			if rel.In(r) {
				return m.switchPage(i)
			}
		}
		return nil
	}
	if pt.In(m.layout.main) {
		rel := pt.Sub(m.layout.main.Min)
		return m.activePage().HandleClick(rel.X, rel.Y)
	}
	return nil
}

// switchPage shows page i, wrapping around at both ends.
func (m *UI) switchPage(i int) tea.Cmd {
	n := len(m.pages)
	m.active = ((i % n) + n) % n
	m.updateLayoutAndSize()
	return m.activePage().Activate()
}

func (m *UI) toggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
	m.updateLayoutAndSize()
}

// openQuitDialog opens the quit confirmation dialog.
func (m *UI) openQuitDialog() tea.Cmd {
	if m.dialog.ContainsDialog(dialog.QuitID) {
		// Bring to front
		m.dialog.BringToFront(dialog.QuitID)
		return nil
	}

	m.dialog.AddDialog(dialog.NewQuit(&m.com.Styles))
	return nil
}

// openCommandsDialog opens the command palette.
func (m *UI) openCommandsDialog() tea.Cmd {
	if m.dialog.ContainsDialog(dialog.CommandsID) {
		// Bring to front
		m.dialog.BringToFront(dialog.CommandsID)
		return nil
	}

	commands := make([]dialog.Command, 0, len(m.pages)+3)
	for i, p := range m.pages {
		commands = append(commands, dialog.Command{
			ID:          fmt.Sprintf("page.%d", i),
			Title:       "Go to " + p.Title(),
			Description: "Switch to the " + strings.ToLower(p.Title()) + " page",
			Msg:         switchPageMsg{Page: p.ID()},
		})
	}
	commands = append(commands,
		dialog.Command{
			ID:          "refresh",
			Title:       "Refresh",
			Description: "Refetch the data of the current page",
			Shortcut:    m.keyMap.Refresh.Help().Key,
			Msg:         refreshMsg{},
		},
		dialog.Command{
			ID:          "help",
			Title:       "Toggle Help",
			Description: "Show or hide every key binding",
			Shortcut:    m.keyMap.Help.Help().Key,
			Msg:         toggleHelpMsg{},
		},
		dialog.Command{
			ID:          "quit",
			Title:       "Quit",
			Description: "Leave LedgerLens",
			Shortcut:    m.keyMap.Quit.Help().Key,
			Msg:         openQuitMsg{},
		},
	)

	d := dialog.NewCommands(&m.com.Styles, commands)
	d.SetWidth(max(40, min(80, m.width-8)))
	m.dialog.AddDialog(d)
	return nil
}

// copyToClipboard copies text through the terminal and the system
// clipboard.
func copyToClipboard(text string) tea.Cmd {
	return tea.Sequence(
		tea.SetClipboard(text),
		func() tea.Msg {
			_ = clipboard.WriteAll(text)
			return nil
		},
		uiutil.ReportInfo(fmt.Sprintf("Copied %s to clipboard", text)),
	)
}

// Draw implements [tea.Layer] and draws the UI model.
func (m *UI) Draw(scr uv.Screen, area uv.Rectangle) {
	layout := m.generateLayout(area.Dx(), area.Dy())

	if m.layout != layout {
		m.layout = layout
		m.updateSize()
	}

	// Clear the screen first
	screen.Clear(scr)

	if layout.tooSmall {
		msg := m.com.Styles.WindowTooSmall.
			Width(area.Dx()).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("Window too small. Resize to at least %d×%d.", minWidth, minHeight))
		uv.NewStyledString(msg).Draw(scr, common.CenterRect(area, area.Dx(), lipgloss.Height(msg)))
		return
	}

	header := uv.NewStyledString(m.headerView(layout.header.Dx()))
	header.Draw(scr, layout.header)

	main := uv.NewStyledString(m.activePage().View(layout.main.Dx(), layout.main.Dy()))
	main.Draw(scr, layout.main)

	if !layout.sidebar.Empty() {
		sidebar := uv.NewStyledString(m.sidebar.View())
		sidebar.Draw(scr, layout.sidebar)
	}

	status := uv.NewStyledString(m.statusView(layout.status.Dx()))
	status.Draw(scr, layout.status)

	// Add help layer
	help := uv.NewStyledString(m.help.View(m))
	help.Draw(scr, layout.help)

	// This needs to come last to overlay on top of everything
	if m.dialog.HasDialogs() {
		m.dialog.Draw(scr, area)
	}
}

func (m *UI) headerView(width int) string {
	t := &m.com.Styles

	title := common.GradientText("LedgerLens", t.LogoTitleColorA, t.LogoTitleColorB, true) +
		" " + t.Subtle.Render(version.Version)
	if m.store.Loading() {
		loading := m.spinner.View() + t.Muted.Render(" Loading")
		gap := max(1, width-lipgloss.Width(title)-lipgloss.Width(loading))
		title += strings.Repeat(" ", gap) + loading
	}

	m.tabs = m.tabs[:0]
	var tabs []string
	x := 0
	for i, p := range m.pages {
		style := t.Tabs.Inactive
		if i == m.active {
			style = t.Tabs.Active
		}
		tab := style.Render(p.Title())
		w := lipgloss.Width(tab)
		m.tabs = append(m.tabs, image.Rect(x, 1, x+w, 2))
		tabs = append(tabs, tab)
		x += w + 1
	}
	row := strings.Join(tabs, " ")
	if rest := width - lipgloss.Width(row) - 1; rest > 0 {
		row += " " + t.Tabs.Gap.Render(strings.Repeat(styles.SectionSeparator, rest))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, row)
}

func (m *UI) statusView(width int) string {
	if m.status == nil {
		return ""
	}
	t := &m.com.Styles
	var tag lipgloss.Style
	switch m.status.Type {
	case uiutil.InfoTypeSuccess:
		tag = t.Status.Success
	case uiutil.InfoTypeWarn:
		tag = t.Status.Warn
	case uiutil.InfoTypeError:
		tag = t.Status.Error
	default:
		tag = t.Status.Info
	}
	label := tag.Render()
	msg := ansi.Truncate(m.status.Msg, max(0, width-lipgloss.Width(label)-1), styles.Ellipsis)
	return label + t.Status.Message.Render(msg)
}

// View renders the UI model's view.
func (m *UI) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.BackgroundColor = m.com.Styles.Background
	v.MouseMode = tea.MouseModeCellMotion

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())

	content := strings.ReplaceAll(canvas.Render(), "\r\n", "\n") // normalize newlines
	contentLines := strings.Split(content, "\n")
	for i, line := range contentLines {
		// Trim trailing spaces for concise rendering
		contentLines[i] = strings.TrimRight(line, " ")
	}

	v.Content = strings.Join(contentLines, "\n")
	return v
}

// ShortHelp implements [help.KeyMap].
func (m *UI) ShortHelp() []key.Binding {
	k := &m.keyMap
	binds := []key.Binding{k.Tab}
	binds = append(binds, m.activePage().ShortHelp()...)
	return append(binds, k.Commands, k.Help, k.Quit)
}

// FullHelp implements [help.KeyMap].
func (m *UI) FullHelp() [][]key.Binding {
	k := &m.keyMap
	help := k.Help
	help.SetHelp("?", "less")

	return [][]key.Binding{
		{k.Tab, k.PrevTab, k.Refresh},
		m.activePage().ShortHelp(),
		{k.Commands, help, k.Quit},
	}
}

// updateLayoutAndSize updates the layout and sizes of UI components.
func (m *UI) updateLayoutAndSize() {
	m.layout = m.generateLayout(m.width, m.height)
	m.updateSize()
}

// updateSize updates the sizes of UI components based on the current layout.
func (m *UI) updateSize() {
	m.help.SetWidth(m.layout.help.Dx())
	m.sidebar.SetWidth(m.layout.sidebar.Dx())
}

// generateLayout calculates the layout rectangles for all UI components based
// on the current UI state and terminal dimensions.
func (m *UI) generateLayout(w, h int) layout {
	// The screen area we're working with
	area := image.Rect(0, 0, w, h)
	if w < minWidth || h < minHeight {
		return layout{area: area, tooSmall: true}
	}

	// The help height
	helpHeight := 1
	var helpKeyMap help.KeyMap = m
	if m.help.ShowAll {
		for _, row := range helpKeyMap.FullHelp() {
			helpHeight = max(helpHeight, len(row))
		}
	}

	// Add app margins
	appRect := area
	appRect.Min.X += 1
	appRect.Min.Y += 1
	appRect.Max.X -= 1
	appRect.Max.Y -= 1

	// Layout
	//
	// header
	// ------|---
	// main  | side
	// ----------
	// status
	// help
	appRect, helpRect := uv.SplitVertical(appRect, uv.Fixed(appRect.Dy()-helpHeight))
	headerRect, mainRect := uv.SplitVertical(appRect, uv.Fixed(headerHeight))
	mainRect, statusRect := uv.SplitVertical(mainRect, uv.Fixed(mainRect.Dy()-1))

	layout := layout{
		area:   area,
		header: headerRect,
		status: statusRect,
		help:   helpRect,
	}
	if w >= sidebarBreakpoint {
		var sideRect uv.Rectangle
		mainRect, sideRect = uv.SplitHorizontal(mainRect, uv.Fixed(mainRect.Dx()-sidebarWidth))
		// Add padding right
		mainRect.Max.X -= 1
		layout.sidebar = sideRect
	}
	layout.main = mainRect
	return layout
}

// layout defines the positioning of UI elements.
type layout struct {
	// area is the overall available area.
	area uv.Rectangle

	// tooSmall is set when the terminal cannot fit the dashboard.
	tooSmall bool

	// header holds the title and the tabs.
	header uv.Rectangle

	// main is the area of the active page.
	main uv.Rectangle

	// sidebar is the area for the sidebar, empty on narrow terminals.
	sidebar uv.Rectangle

	// status is the single line for info messages.
	status uv.Rectangle

	// help is the area for the help view.
	help uv.Rectangle
}
