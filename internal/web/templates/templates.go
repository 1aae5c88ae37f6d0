// Package templates holds the HTML components of the web UI.
//
// Components are templ.Components so handlers render them the same way
// whether a full page or an HTMX fragment is requested.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// html accumulates the first write error so components can write
// sequentially and check once.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes a quoted, escaped attribute.
func (h *html) attr(name, value string) {
	h.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

const styles = `
body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #d1d5db;padding:.35rem .6rem;text-align:left}
th{background:#f3f4f6}
.panel{display:inline-block;border:1px solid #d1d5db;padding:.75rem 1rem;margin:0 1rem 1rem 0;vertical-align:top}
.toggles a{margin-right:.5rem}
.off{color:#9ca3af;text-decoration:line-through}
.alert{border:1px solid #fca5a5;background:#fef2f2;padding:.75rem 1rem}
.alert code{color:#6b7280}
.delta-up{color:#15803d}
.delta-down{color:#b91c1c}
.delta-zero{color:#6b7280}
.status-only_in_a,.status-only_in_b{font-style:italic}
`

// Layout wraps body in a full HTML document.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><style>`)
		h.raw(styles)
		h.raw(`</style></head><body><nav><a href="/">History</a></nav><h1>`)
		h.text(title)
		h.raw(`</h1>`)
		h.component(ctx, body)
		h.raw(`</body></html>`)
		return h.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="alert" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<code>`)
			h.text(code)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
