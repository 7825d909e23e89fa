// Package templates holds the HTML components of the review UI.
//
// Components are templ.Component values, so handlers render them the same
// way whether they come from generated .templ files or are written by hand.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// html accumulates markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf writes trusted markup; every argument must already be escaped.
func (h *html) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// text writes escaped text, safe inside elements and quoted attributes.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// render embeds a child component.
func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// textarea writes a named text area of the given pixel height.
// rtl switches direction and alignment for Persian input.
func (h *html) textarea(name, label, value string, height int, rtl bool) {
	dir := "ltr"
	if rtl {
		dir = "rtl"
	}
	h.rawf(`<label class="field"><span>%s</span>`, templ.EscapeString(label))
	h.rawf(`<textarea name="%s" dir="%s" class="%s" style="height: %dpx">`,
		templ.EscapeString(name), dir, dir, height)
	h.text(value)
	h.raw(`</textarea></label>`)
}
