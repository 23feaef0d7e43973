package style

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown converts markdown to terminal output. Plain formats
// and any rendering failure fall back to the raw content.
func RenderMarkdown(content string, format Format) string {
	if format != FormatTerminal {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
