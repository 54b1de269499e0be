package styles

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2/ansi"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	WarningIcon string = "⚠"
	InfoIcon    string = "ⓘ"
	LoadingIcon string = "⟳"
	AlertIcon   string = "◆"
	ClientIcon  string = "◇"

	BorderThin  string = "│"
	BorderThick string = "▌"

	SectionSeparator string = "─"
	SkeletonBlock    string = "░"
	BarBlock         string = "█"
	Ellipsis         string = "…"
)

const (
	defaultMargin     = 2
	defaultListIndent = 2
)

type Styles struct {
	WindowTooSmall lipgloss.Style

	// Reusable text styles
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Title  lipgloss.Style

	// Tags
	TagBase    lipgloss.Style
	TagError   lipgloss.Style
	TagInfo    lipgloss.Style
	TagWarn    lipgloss.Style
	TagSuccess lipgloss.Style
	TagMuted   lipgloss.Style

	// Panels
	PanelMuted lipgloss.Style
	PanelBase  lipgloss.Style

	// Markdown
	Markdown ansi.StyleConfig

	// Inputs
	TextInput textinput.Styles

	// Help
	Help help.Styles

	// Buttons
	ButtonFocus lipgloss.Style
	ButtonBlur  lipgloss.Style

	// Borders
	BorderFocus lipgloss.Style
	BorderBlur  lipgloss.Style

	Background color.Color

	// Logo
	LogoTitleColorA color.Color
	LogoTitleColorB color.Color

	// Risk gradient endpoints, low to high.
	RiskLow  color.Color
	RiskHigh color.Color

	// Section Title
	Section struct {
		Title lipgloss.Style
		Line  lipgloss.Style
	}

	// Sidebar
	Sidebar lipgloss.Style

	// Tabs
	Tabs struct {
		Active   lipgloss.Style
		Inactive lipgloss.Style
		Gap      lipgloss.Style
	}

	// Status bar
	Status struct {
		Info    lipgloss.Style
		Success lipgloss.Style
		Warn    lipgloss.Style
		Error   lipgloss.Style
		Message lipgloss.Style
	}

	// Table and card list renderers
	List struct {
		Header       lipgloss.Style
		Cell         lipgloss.Style
		SelectedCell lipgloss.Style
		Border       lipgloss.Style
		Skeleton     lipgloss.Style
		Card         lipgloss.Style
		CardSelected lipgloss.Style

		EmptyMessage     lipgloss.Style
		EmptyDescription lipgloss.Style

		PageLink     lipgloss.Style
		PageCurrent  lipgloss.Style
		PageEllipsis lipgloss.Style
		PageNav      lipgloss.Style
		PageDisabled lipgloss.Style
		PageInfo     lipgloss.Style
	}

	// Forms
	Form struct {
		Label        lipgloss.Style
		LabelFocused lipgloss.Style
		Error        lipgloss.Style
		Valid        lipgloss.Style
		Option       lipgloss.Style
		OptionActive lipgloss.Style
	}

	// Dialogs
	Dialog struct {
		Title lipgloss.Style
		View  lipgloss.Style
		Help  lipgloss.Style
	}

	// Money
	Amount struct {
		Credit lipgloss.Style
		Debit  lipgloss.Style
		Total  lipgloss.Style
	}
}

func DefaultStyles() Styles {
	var (
		primary   = charmtone.Charple
		secondary = charmtone.Dolly
		tertiary  = charmtone.Bok

		// Backgrounds
		bgBase        = charmtone.Pepper
		bgBaseLighter = charmtone.BBQ
		bgSubtle      = charmtone.Charcoal
		bgOverlay     = charmtone.Iron

		// Foregrounds
		fgBase      = charmtone.Ash
		fgMuted     = charmtone.Squid
		fgHalfMuted = charmtone.Smoke
		fgSubtle    = charmtone.Oyster

		// Borders
		border      = charmtone.Charcoal
		borderFocus = charmtone.Charple

		// Status
		warning = charmtone.Zest
		info    = charmtone.Malibu

		// Colors
		white = charmtone.Butter

		blueLight = charmtone.Sardine

		green     = charmtone.Julep
		greenDark = charmtone.Guac

		red      = charmtone.Coral
		redDark  = charmtone.Sriracha
		redLight = charmtone.Salmon
	)

	base := lipgloss.NewStyle().Foreground(fgBase)

	s := Styles{}

	s.Background = bgBase

	s.TextInput = textinput.Styles{
		Focused: textinput.StyleState{
			Text:        base,
			Placeholder: base.Foreground(fgSubtle),
			Prompt:      base.Foreground(tertiary),
			Suggestion:  base.Foreground(fgSubtle),
		},
		Blurred: textinput.StyleState{
			Text:        base.Foreground(fgMuted),
			Placeholder: base.Foreground(fgSubtle),
			Prompt:      base.Foreground(fgMuted),
			Suggestion:  base.Foreground(fgSubtle),
		},
		Cursor: textinput.CursorStyle{
			Color: secondary,
			Shape: tea.CursorBar,
			Blink: true,
		},
	}

	s.Markdown = ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(charmtone.Smoke.Hex()),
			},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{},
			Indent:         uintPtr(1),
			IndentToken:    stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: defaultListIndent,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr(charmtone.Malibu.Hex()),
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(charmtone.Zest.Hex()),
				BackgroundColor: stringPtr(charmtone.Charple.Hex()),
				Bold:            boolPtr(true),
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "## ",
			},
		},
		H3: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "### ",
			},
		},
		Strikethrough: ansi.StylePrimitive{
			CrossedOut: boolPtr(true),
		},
		Emph: ansi.StylePrimitive{
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold: boolPtr(true),
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  stringPtr(charmtone.Charcoal.Hex()),
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Link: ansi.StylePrimitive{
			Color:     stringPtr(charmtone.Zinc.Hex()),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: stringPtr(charmtone.Guac.Hex()),
			Bold:  boolPtr(true),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(charmtone.Coral.Hex()),
				BackgroundColor: stringPtr(charmtone.Charcoal.Hex()),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: stringPtr(charmtone.Smoke.Hex()),
				},
				Margin: uintPtr(defaultMargin),
			},
		},
		Table: ansi.StyleTable{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{},
			},
		},
	}

	s.Help = help.Styles{
		ShortKey:       base.Foreground(fgMuted),
		ShortDesc:      base.Foreground(fgSubtle),
		ShortSeparator: base.Foreground(border),
		Ellipsis:       base.Foreground(border),
		FullKey:        base.Foreground(fgMuted),
		FullDesc:       base.Foreground(fgSubtle),
		FullSeparator:  base.Foreground(border),
	}

	// text presets
	s.Base = lipgloss.NewStyle().Foreground(fgBase)
	s.Muted = lipgloss.NewStyle().Foreground(fgMuted)
	s.Subtle = lipgloss.NewStyle().Foreground(fgSubtle)
	s.Title = lipgloss.NewStyle().Foreground(primary).Bold(true)

	s.WindowTooSmall = s.Muted

	// tag presets
	s.TagBase = lipgloss.NewStyle().Padding(0, 1).Foreground(white)
	s.TagError = s.TagBase.Background(redDark)
	s.TagInfo = s.TagBase.Background(blueLight)
	s.TagWarn = s.TagBase.Foreground(bgBase).Background(warning)
	s.TagSuccess = s.TagBase.Foreground(bgBase).Background(greenDark)
	s.TagMuted = s.TagBase.Foreground(fgHalfMuted).Background(bgSubtle)

	// panels
	s.PanelMuted = s.Muted.Background(bgBaseLighter)
	s.PanelBase = lipgloss.NewStyle().Background(bgBase)

	// Buttons
	s.ButtonFocus = lipgloss.NewStyle().Foreground(white).Background(secondary).Padding(0, 2)
	s.ButtonBlur = s.Base.Background(bgSubtle).Padding(0, 2)

	// Borders
	s.BorderFocus = lipgloss.NewStyle().BorderForeground(borderFocus).Border(lipgloss.RoundedBorder()).Padding(1, 2)
	s.BorderBlur = s.BorderFocus.BorderForeground(border)

	// Logo colors
	s.LogoTitleColorA = secondary
	s.LogoTitleColorB = primary

	s.RiskLow = green
	s.RiskHigh = red

	// Section
	s.Section.Title = s.Subtle
	s.Section.Line = s.Base.Foreground(charmtone.Charcoal)

	// Sidebar
	s.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(border).
		PaddingLeft(1)

	// Tabs
	s.Tabs.Active = lipgloss.NewStyle().Foreground(white).Background(primary).Padding(0, 1).Bold(true)
	s.Tabs.Inactive = s.Muted.Padding(0, 1)
	s.Tabs.Gap = s.Section.Line

	// Status bar
	s.Status.Info = s.TagInfo.SetString("INFO")
	s.Status.Success = s.TagSuccess.SetString("OKAY!")
	s.Status.Warn = s.TagWarn.SetString("WARNING")
	s.Status.Error = s.TagError.SetString("ERROR")
	s.Status.Message = s.Base.PaddingLeft(1)

	// List renderers
	s.List.Header = s.Base.Foreground(fgHalfMuted).Bold(true).Padding(0, 1)
	s.List.Cell = s.Base.Padding(0, 1)
	s.List.SelectedCell = s.List.Cell.Foreground(white).Background(bgOverlay)
	s.List.Border = s.Base.Foreground(border)
	s.List.Skeleton = s.Base.Foreground(bgSubtle).Padding(0, 1)
	s.List.Card = s.Base.Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	s.List.CardSelected = s.List.Card.BorderForeground(borderFocus)
	s.List.EmptyMessage = s.Base.Foreground(fgHalfMuted).Bold(true)
	s.List.EmptyDescription = s.Subtle
	s.List.PageLink = s.Muted.Padding(0, 1)
	s.List.PageCurrent = lipgloss.NewStyle().Foreground(white).Background(primary).Padding(0, 1)
	s.List.PageEllipsis = s.Subtle.Padding(0, 1)
	s.List.PageNav = s.Base.Foreground(info).Padding(0, 1)
	s.List.PageDisabled = s.Base.Foreground(bgSubtle).Padding(0, 1)
	s.List.PageInfo = s.Subtle.PaddingLeft(2)

	// Forms
	s.Form.Label = s.Muted
	s.Form.LabelFocused = s.Base.Foreground(tertiary)
	s.Form.Error = s.Base.Foreground(redLight)
	s.Form.Valid = s.Base.Foreground(greenDark)
	s.Form.Option = s.Muted.Padding(0, 1)
	s.Form.OptionActive = s.Base.Foreground(white).Background(bgOverlay).Padding(0, 1)

	// Dialogs
	s.Dialog.Title = s.Base.Foreground(primary).Bold(true).PaddingBottom(1)
	s.Dialog.View = s.BorderFocus
	s.Dialog.Help = s.Subtle.PaddingTop(1)

	// Money
	s.Amount.Credit = s.Base.Foreground(green)
	s.Amount.Debit = s.Base.Foreground(red)
	s.Amount.Total = s.Base.Bold(true)

	return s
}

// Helper functions for style pointers
func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }
