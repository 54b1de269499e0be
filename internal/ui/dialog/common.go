package dialog

import (
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// RenderContext is a dialog rendering context that can be used to render
// common dialog layouts.
type RenderContext struct {
	// Styles is the styles to use for rendering.
	Styles *styles.Styles
	// Width is the total width of the dialog including any margins, borders,
	// and paddings.
	Width int
	// Title is the title of the dialog. This will be styled using the default
	// dialog title style and prepended to the content parts slice.
	Title string
	// Parts are the rendered parts of the dialog.
	Parts []string
	// Help is the help view content. This will be appended to the content parts
	// slice using the default dialog help style.
	Help string
}

// NewRenderContext creates a new RenderContext with the provided styles and width.
func NewRenderContext(t *styles.Styles, width int) *RenderContext {
	return &RenderContext{
		Styles: t,
		Width:  width,
		Parts:  []string{},
	}
}

// AddPart adds a rendered part to the dialog.
func (rc *RenderContext) AddPart(part string) {
	if len(part) > 0 {
		rc.Parts = append(rc.Parts, part)
	}
}

// InnerWidth returns the width available to the parts.
func (rc *RenderContext) InnerWidth() int {
	return max(0, rc.Width-rc.Styles.Dialog.View.GetHorizontalFrameSize())
}

// Render renders the dialog using the provided context.
func (rc *RenderContext) Render() string {
	titleStyle := rc.Styles.Dialog.Title
	dialogStyle := rc.Styles.Dialog.View.Width(rc.Width)

	parts := []string{}
	if len(rc.Title) > 0 {
		title := common.GradientText(rc.Title, rc.Styles.LogoTitleColorA, rc.Styles.LogoTitleColorB, true)
		parts = append(parts, titleStyle.Render(title))
	}

	for i, p := range rc.Parts {
		if len(p) > 0 {
			parts = append(parts, p)
		}
		if i < len(rc.Parts)-1 {
			parts = append(parts, "")
		}
	}

	if len(rc.Help) > 0 {
		helpStyle := rc.Styles.Dialog.Help.Width(rc.InnerWidth())
		parts = append(parts, helpStyle.Render(rc.Help))
	}

	content := strings.Join(parts, "\n")

	return dialogStyle.Render(content)
}
