package dialog

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/sahilm/fuzzy"
)

// CommandsID is the identifier for the commands dialog.
const CommandsID = "commands"

const commandsListHeight = 10

// Command is an entry of the command palette. Choosing it sends Msg.
type Command struct {
	ID          string
	Title       string
	Description string
	Shortcut    string
	Msg         tea.Msg
}

// ActionRun reports that a command was chosen.
type ActionRun struct {
	Command Command
}

// commandSource adapts a command slice to [fuzzy.Source].
type commandSource []Command

func (s commandSource) String(i int) string { return s[i].Title }
func (s commandSource) Len() int            { return len(s) }

// Commands represents a dialog that shows available commands.
type Commands struct {
	sty    *styles.Styles
	keyMap struct {
		Select,
		Next,
		Previous,
		Close key.Binding
	}

	commands []Command
	matches  fuzzy.Matches
	selected int

	help  help.Model
	input textinput.Model
	width int
}

var _ Dialog = (*Commands)(nil)

// NewCommands creates a new commands dialog.
func NewCommands(sty *styles.Styles, commands []Command) *Commands {
	c := &Commands{
		sty:      sty,
		commands: commands,
		width:    60,
	}

	c.help = help.New()
	c.help.Styles = sty.Help

	c.input = textinput.New()
	c.input.Placeholder = "Type to filter"
	c.input.SetStyles(sty.TextInput)
	c.input.Focus()

	c.keyMap.Select = key.NewBinding(
		key.WithKeys("enter", "ctrl+y"),
		key.WithHelp("enter", "confirm"),
	)
	c.keyMap.Next = key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next item"),
	)
	c.keyMap.Previous = key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous item"),
	)
	closeKey := CloseKey
	closeKey.SetHelp("esc", "cancel")
	c.keyMap.Close = closeKey

	c.filter()
	return c
}

// SetWidth sets the width of the dialog.
func (c *Commands) SetWidth(width int) {
	c.width = width
	innerWidth := width - c.sty.Dialog.View.GetHorizontalFrameSize()
	c.input.SetWidth(max(1, innerWidth-1))
	c.help.SetWidth(width)
}

// ID implements Dialog.
func (c *Commands) ID() string {
	return CommandsID
}

// Filtered returns the commands matching the current filter, best first.
func (c *Commands) Filtered() []Command {
	out := make([]Command, len(c.matches))
	for i, m := range c.matches {
		out[i] = c.commands[m.Index]
	}
	return out
}

func (c *Commands) filter() {
	query := strings.TrimSpace(c.input.Value())
	if query == "" {
		c.matches = make(fuzzy.Matches, len(c.commands))
		for i, cmd := range c.commands {
			c.matches[i] = fuzzy.Match{Str: cmd.Title, Index: i}
		}
	} else {
		c.matches = fuzzy.FindFrom(query, commandSource(c.commands))
	}
	c.selected = 0
}

// HandleMsg implements Dialog.
func (c *Commands) HandleMsg(msg tea.Msg) Action {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, c.keyMap.Close):
			return ActionClose{}
		case key.Matches(msg, c.keyMap.Previous):
			if len(c.matches) > 0 {
				c.selected = (c.selected - 1 + len(c.matches)) % len(c.matches)
			}
		case key.Matches(msg, c.keyMap.Next):
			if len(c.matches) > 0 {
				c.selected = (c.selected + 1) % len(c.matches)
			}
		case key.Matches(msg, c.keyMap.Select):
			if len(c.matches) == 0 {
				return nil
			}
			return ActionRun{Command: c.commands[c.matches[c.selected].Index]}
		default:
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			c.filter()
			if cmd != nil {
				return ActionCmd{Cmd: cmd}
			}
		}
	}
	return nil
}

// View implements [Dialog].
func (c *Commands) View() string {
	rc := NewRenderContext(c.sty, c.width)
	rc.Title = "Commands"
	rc.AddPart(c.input.View())

	inner := rc.InnerWidth()
	rows := make([]string, 0, commandsListHeight)
	start := max(0, c.selected-commandsListHeight+1)
	for i := start; i < len(c.matches) && len(rows) < commandsListHeight; i++ {
		rows = append(rows, c.renderItem(i, inner))
	}
	if len(rows) == 0 {
		rows = append(rows, c.sty.Subtle.Render("No matching commands"))
	}
	for len(rows) < commandsListHeight {
		// pad the list content to avoid jumping when filtering
		rows = append(rows, "")
	}
	rc.AddPart(strings.Join(rows, "\n"))
	rc.Help = c.help.View(c)
	return rc.Render()
}

func (c *Commands) renderItem(i, width int) string {
	m := c.matches[i]
	cmd := c.commands[m.Index]
	style := c.sty.List.Cell
	if i == c.selected {
		style = c.sty.List.SelectedCell
	}
	width -= style.GetHorizontalFrameSize()

	shortcut := c.sty.Subtle.Render(cmd.Shortcut)
	title := ansi.Truncate(cmd.Title, max(0, width-lipgloss.Width(shortcut)-1), styles.Ellipsis)
	title = common.Highlight(title, m.MatchedIndexes)
	gap := max(1, width-lipgloss.Width(title)-lipgloss.Width(shortcut))
	return style.Render(title + strings.Repeat(" ", gap) + shortcut)
}

// ShortHelp implements [help.KeyMap].
func (c *Commands) ShortHelp() []key.Binding {
	upDown := key.NewBinding(
		key.WithKeys("up", "down"),
		key.WithHelp("↑/↓", "choose"),
	)
	return []key.Binding{
		upDown,
		c.keyMap.Select,
		c.keyMap.Close,
	}
}

// FullHelp implements [help.KeyMap].
func (c *Commands) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{c.keyMap.Select, c.keyMap.Next, c.keyMap.Previous},
		{c.keyMap.Close},
	}
}
