package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"inkwell/internal/diag"
	"inkwell/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Faint),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста с подчёркиванием ^~~~ по Span.
func Pretty(w io.Writer, files []FileDiagnostics, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, fd := range files {
		if fd.File == nil {
			continue
		}
		path := formatPath(fd.File.Path, opts.PathMode, opts.BaseDir)
		for _, d := range fd.Diagnostics {
			if err := prettyOne(w, p, fd.File, path, d, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyOne(w io.Writer, p palette, f *source.File, path string, d diag.Diagnostic, opts PrettyOpts) error {
	pos := f.Position(d.Primary.Start)
	header := fmt.Sprintf("%s: %s %s: %s",
		p.path.Sprintf("%s:%d:%d", path, pos.Line, pos.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	lines := buildSnippet(f, d.Primary, opts.Context)
	if len(lines) == 0 {
		return nil
	}
	gutterWidth := len(fmt.Sprint(lines[len(lines)-1].num))
	for _, ln := range lines {
		text := expandTabs(ln.text)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, opts.Width, "…")
		}
		gutter := p.gutter.Sprintf("%*d |", gutterWidth, ln.num)
		if _, err := fmt.Fprintf(w, "%s %s\n", gutter, text); err != nil {
			return err
		}
		if ln.to == 0 {
			continue
		}
		pad, width := underline(ln.text, ln.from, ln.to)
		if opts.Width > 0 && pad >= opts.Width {
			continue
		}
		marks := "^" + strings.Repeat("~", max(width-1, 0))
		blank := p.gutter.Sprintf("%*s |", gutterWidth, "")
		if _, err := fmt.Fprintf(w, "%s %s%s\n", blank, strings.Repeat(" ", pad), p.caret.Sprint(marks)); err != nil {
			return err
		}
	}
	return nil
}

const tabWidth = 4

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// underline returns the display column and display width of line[from:to].
// Wide runes count double; tabs count tabWidth.
func underline(line string, from, to int) (pad, width int) {
	from = min(from, len(line))
	pad = displayWidth(line[:from])
	if to > len(line) {
		return pad, displayWidth(line[from:]) + to - len(line)
	}
	return pad, max(displayWidth(line[from:to]), 1)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

// Short prints one line per diagnostic without source context.
func Short(w io.Writer, files []FileDiagnostics, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, fd := range files {
		if fd.File == nil {
			continue
		}
		path := formatPath(fd.File.Path, opts.PathMode, opts.BaseDir)
		for _, d := range fd.Diagnostics {
			pos := fd.File.Position(d.Primary.Start)
			_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
				p.path.Sprintf("%s:%d:%d", path, pos.Line, pos.Col),
				p.severity(d.Severity).Sprint(strings.ToLower(d.Severity.String())),
				d.Code.ID(), d.Message)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
