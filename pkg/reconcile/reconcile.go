// Package reconcile locates, renders and rewrites the tagged entry
// blocks this tool owns inside a crontab line table. An entry is a
// contiguous block: one tag line carrying the entry name, zero or more
// environment lines, and one command line. Everything outside these
// blocks is opaque text and is never touched.
package reconcile

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/djatlantic/cronset/pkg/crontab"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/schedule"
)

// DefaultMarker is the comment prefix tagging managed entries
const DefaultMarker = "#Ansible: "

// envLineRe matches an environment assignment line, identifier=value
var envLineRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// Reconciler finds and rewrites tagged entry blocks under one marker.
type Reconciler struct {
	marker string
	logger zerolog.Logger
}

// New creates a Reconciler. An empty marker selects DefaultMarker.
func New(marker string) *Reconciler {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Reconciler{
		marker: marker,
		logger: logging.GetLogger("reconcile"),
	}
}

// Marker returns the active tag prefix
func (r *Reconciler) Marker() string {
	return r.marker
}

// TagLine renders the tag line for an entry name
func (r *Reconciler) TagLine(name string) string {
	return r.marker + name
}

// IsEnvLine reports whether a line is an environment assignment
func IsEnvLine(line string) bool {
	return envLineRe.MatchString(line)
}

// JobLine renders the command line for an entry. Special times render
// as "@keyword command"; otherwise the five schedule fields are
// space-joined ahead of the command. In shared-file mode the owner
// user sits between the schedule and the command. Field syntax passes
// through verbatim.
func JobLine(fields schedule.Fields, specialTime, owner, command string, sharedFile bool) string {
	var prefix string
	if specialTime != "" {
		prefix = "@" + specialTime
	} else {
		prefix = fields.Join()
	}

	if sharedFile {
		return strings.Join([]string{prefix, owner, command}, " ")
	}
	return prefix + " " + command
}

// FindEntry returns the block for the first tag line matching name:
// the tag line, any following environment lines, and the command line.
// The command line is captured only if it does not start with
// whitespace or a comment marker; otherwise the block comes back
// without one and callers treat the entry as malformed. An empty
// result means no tag line matched. Matching is case-sensitive.
func (r *Reconciler) FindEntry(tab *crontab.Tab, name string) []string {
	tag := r.TagLine(name)
	lines := tab.Lines()

	for i, l := range lines {
		if l != tag {
			continue
		}

		block := []string{l}
		j := i + 1
		for j < len(lines) && IsEnvLine(lines[j]) {
			block = append(block, lines[j])
			j++
		}
		if j < len(lines) && isCommandLine(lines[j]) {
			block = append(block, lines[j])
		}

		r.logger.Debug().
			Str("name", name).
			Int("blockLen", len(block)).
			Msg("Entry found")
		return block
	}

	return nil
}

// Install appends a new block at the end of the table: tag line,
// environment lines in the given order, then the command line.
func (r *Reconciler) Install(tab *crontab.Tab, name string, envLines []string, jobLine string) {
	tab.Append(r.TagLine(name))
	tab.Append(envLines...)
	tab.Append(jobLine)

	r.logger.Info().Str("name", name).Msg("Entry installed")
}

// Replace removes blockLen lines starting at the first tag line
// matching name and inserts the new block in their place. Only the
// first match is acted on; later blocks under the same name are left
// for a future pass.
func (r *Reconciler) Replace(tab *crontab.Tab, name string, blockLen int, envLines []string, jobLine string) {
	start, ok := r.findTagIndex(tab, name)
	if !ok {
		return
	}

	repl := make([]string, 0, len(envLines)+2)
	repl = append(repl, r.TagLine(name))
	repl = append(repl, envLines...)
	repl = append(repl, jobLine)
	tab.Splice(start, blockLen, repl)

	r.logger.Info().Str("name", name).Int("replaced", blockLen).Msg("Entry replaced")
}

// Remove deletes blockLen lines starting at the first tag line
// matching name.
func (r *Reconciler) Remove(tab *crontab.Tab, name string, blockLen int) {
	start, ok := r.findTagIndex(tab, name)
	if !ok {
		return
	}

	tab.Splice(start, blockLen, nil)

	r.logger.Info().Str("name", name).Int("removed", blockLen).Msg("Entry removed")
}

// Names returns the name of every tag line in file order, duplicates
// included verbatim. This is reporting data, not a uniqueness check.
func (r *Reconciler) Names(tab *crontab.Tab) []string {
	var names []string
	for _, l := range tab.Lines() {
		if strings.HasPrefix(l, r.marker) {
			names = append(names, strings.TrimPrefix(l, r.marker))
		}
	}
	return names
}

func (r *Reconciler) findTagIndex(tab *crontab.Tab, name string) (int, bool) {
	tag := r.TagLine(name)
	for i, l := range tab.Lines() {
		if l == tag {
			return i, true
		}
	}
	return 0, false
}

// isCommandLine reports whether a line following the environment block
// is capturable as the entry's command line
func isCommandLine(l string) bool {
	if l == "" {
		return true
	}
	if l[0] == '#' {
		return false
	}
	return !isSpace(l[0])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
