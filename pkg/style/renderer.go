package style

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/djatlantic/cronset/pkg/types"
)

// Renderer writes command results in the resolved output format.
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer creates a renderer. format must already be resolved;
// FormatAuto is treated as plain text.
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{writer: w, format: format}
}

// RenderReport writes the outcome of an ensure operation. verb names
// the operation for the human-readable line, e.g. "set" or "remove".
func (r *Renderer) RenderReport(verb string, report *types.Report) error {
	if r.format == FormatJSON {
		return r.renderJSON(report)
	}

	var b strings.Builder

	indicator := UnchangedIndicator
	outcome := "unchanged"
	if report.Changed {
		indicator = ChangedIndicator
		outcome = "changed"
	}
	if r.format != FormatTerminal {
		indicator = ""
	}

	line := fmt.Sprintf("%s %s: %s", indicator, verb, outcome)
	b.WriteString(strings.TrimSpace(line) + "\n")

	if report.CronFile != "" {
		b.WriteString(r.muted("file: ") + r.path(report.CronFile) + "\n")
	}
	if report.Backup != "" {
		b.WriteString(r.muted("backup: ") + r.path(report.Backup) + "\n")
	}

	if len(report.EntryNames) > 0 {
		b.WriteString(r.title("Managed entries") + "\n")
		for _, name := range report.EntryNames {
			b.WriteString(r.listItem(name) + "\n")
		}
	}

	_, err := io.WriteString(r.writer, b.String())
	return err
}

// RenderList writes the managed entry names of a table.
func (r *Renderer) RenderList(result *types.ListResult) error {
	if r.format == FormatJSON {
		return r.renderJSON(result)
	}

	var b strings.Builder
	if len(result.EntryNames) == 0 {
		b.WriteString(r.muted("No managed entries") + "\n")
	}
	for _, name := range result.EntryNames {
		b.WriteString(name + "\n")
	}

	_, err := io.WriteString(r.writer, b.String())
	return err
}

// RenderError writes an error line with appropriate styling.
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		return r.renderJSON(map[string]string{"error": err.Error()})
	}

	prefix := "Error:"
	if r.format == FormatTerminal {
		prefix = ErrorStyle.Render("Error:")
	}
	_, werr := fmt.Fprintf(r.writer, "%s %s\n", prefix, err.Error())
	return werr
}

func (r *Renderer) renderJSON(v interface{}) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) title(s string) string {
	if r.format == FormatTerminal {
		return TitleStyle.Render(s)
	}
	return s
}

func (r *Renderer) muted(s string) string {
	if r.format == FormatTerminal {
		return MutedStyle.Render(s)
	}
	return s
}

func (r *Renderer) path(s string) string {
	if r.format == FormatTerminal {
		return PathStyle.Render(s)
	}
	return s
}

func (r *Renderer) listItem(s string) string {
	if r.format == FormatTerminal {
		return ListItemStyle.Render(s)
	}
	return "  " + s
}
