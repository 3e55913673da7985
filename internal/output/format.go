// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"todo/internal/task"
	"todo/internal/theme"
)

const (
	// EmptyList is printed when a list has no matching tasks.
	EmptyList = "no tasks found"

	// DateLayout is the created-at layout of the long format.
	DateLayout = "2006/01/02 15:04"

	// ShortIDLen is how many id characters the long format shows.
	ShortIDLen = 8
)

// Printer writes task lines to w, styled for a theme when w is a terminal.
type Printer struct {
	w     io.Writer
	color bool
	loc   *time.Location
	pal   palette
}

// Option configures a Printer.
type Option func(*Printer)

// WithColor forces styling on or off.
func WithColor(on bool) Option {
	return func(p *Printer) {
		p.color = on
	}
}

// WithLocation sets the zone used for created-at dates. The default is
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Printer) {
		p.loc = loc
	}
}

// NewPrinter returns a Printer for w. Styling is on only when w is a
// terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer, th theme.Theme, opts ...Option) *Printer {
	p := &Printer{
		w:     w,
		color: IsTerminal(w) && os.Getenv("NO_COLOR") == "",
		loc:   time.Local,
		pal:   paletteFor(th),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatTask formats a task line for the default list.
// Format: "{N:>4}  [ ] {TEXT}\n", with "[x]" for completed tasks.
func (p *Printer) FormatTask(num int, t task.Task) {
	fmt.Fprintf(p.w, "%s  %s %s\n", p.number(num), p.box(t), p.text(t))
}

// FormatTaskLong adds the short id and creation time.
// Format: "{N:>4}  [ ] {ID:<8}  {YYYY/MM/DD HH:MM}  {TEXT}\n"
func (p *Printer) FormatTaskLong(num int, t task.Task) {
	id := fmt.Sprintf("%-*s", ShortIDLen, ShortID(t.ID))
	created := t.CreatedAt.In(p.loc).Format(DateLayout)
	fmt.Fprintf(p.w, "%s  %s %s  %s  %s\n",
		p.number(num), p.box(t), p.render(p.pal.dim, id), p.render(p.pal.dim, created), p.text(t))
}

// FormatStats formats the counts line.
func (p *Printer) FormatStats(s task.Stats) {
	fmt.Fprintf(p.w, "total %s  completed %s  pending %s\n",
		p.render(p.pal.strong, fmt.Sprint(s.Total)),
		p.render(p.pal.done, fmt.Sprint(s.Completed)),
		p.render(p.pal.pending, fmt.Sprint(s.Pending)))
}

// FormatEmpty prints the empty-list message.
func (p *Printer) FormatEmpty() {
	fmt.Fprintln(p.w, p.render(p.pal.dim, EmptyList))
}

// ShortID returns the leading characters of id shown to users.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// NormalizeText makes task text fit on one line.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

func (p *Printer) number(num int) string {
	return p.render(p.pal.dim, fmt.Sprintf("%4d", num))
}

func (p *Printer) box(t task.Task) string {
	if t.Completed {
		return p.render(p.pal.done, "[x]")
	}
	return p.render(p.pal.pending, "[ ]")
}

func (p *Printer) text(t task.Task) string {
	text := NormalizeText(t.Text)
	if t.Completed {
		return p.render(p.pal.doneText, text)
	}
	return p.render(p.pal.strong, text)
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

type palette struct {
	strong   lipgloss.Style
	dim      lipgloss.Style
	pending  lipgloss.Style
	done     lipgloss.Style
	doneText lipgloss.Style
}

func paletteFor(th theme.Theme) palette {
	fg, muted, accent, open := lipgloss.Color("#101F38"), lipgloss.Color("#6a737d"), lipgloss.Color("#558B2F"), lipgloss.Color("#1565C0")
	if th == theme.Dark {
		fg, muted, accent, open = lipgloss.Color("#f2f2f2"), lipgloss.Color("#8b949e"), lipgloss.Color("#8BC34A"), lipgloss.Color("#64B5F6")
	}
	return palette{
		strong:   lipgloss.NewStyle().Foreground(fg),
		dim:      lipgloss.NewStyle().Foreground(muted),
		pending:  lipgloss.NewStyle().Foreground(open).Bold(true),
		done:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		doneText: lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
	}
}
