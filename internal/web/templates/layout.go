package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `
body { font-family: system-ui, sans-serif; margin: 0; color: #1f2933; background: #f5f7fa; }
header { background: #243b53; color: #fff; padding: 0.75rem 1.5rem; }
header a { color: #fff; text-decoration: none; font-weight: 600; }
main { display: flex; gap: 1.5rem; padding: 1.5rem; }
aside { width: 16rem; flex-shrink: 0; }
section.content { flex: 1; min-width: 0; }
.card { background: #fff; border-radius: 6px; padding: 1rem 1.25rem; margin-bottom: 1rem; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
.tabs { display: flex; flex-wrap: wrap; gap: 0.25rem; margin-bottom: 1rem; }
.tabs a { padding: 0.35rem 0.7rem; border-radius: 4px; background: #d9e2ec; color: #243b53; text-decoration: none; font-size: 0.9rem; }
.tabs a.active { background: #243b53; color: #fff; }
.field { display: block; margin-bottom: 0.75rem; }
.field span { display: block; font-weight: 600; margin-bottom: 0.25rem; }
textarea { width: 100%; box-sizing: border-box; font: inherit; padding: 0.4rem; }
textarea.rtl { direction: rtl; text-align: right; }
.option { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; border-bottom: 1px solid #d9e2ec; padding: 0.5rem 0; }
.vocab { font-size: 0.85rem; color: #52606d; }
.alert { padding: 0.75rem 1rem; border-radius: 4px; margin-bottom: 1rem; }
.alert.error { background: #ffe3e3; color: #8a1c1c; }
.alert.success { background: #e3f9e5; color: #0e5814; }
.alert.warning { background: #fff3c4; color: #8d2b0b; }
.answer { font-weight: 600; color: #0e5814; }
button { padding: 0.45rem 1rem; border: 0; border-radius: 4px; background: #334e68; color: #fff; cursor: pointer; }
button.secondary { background: #829ab1; }
.code { font-family: ui-monospace, monospace; font-size: 0.8rem; color: #829ab1; }
`

// Layout wraps body in the page chrome. sidebar may be nil.
func Layout(title string, sidebar, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` | MedQA Review</title><style>`)
		h.raw(styles)
		h.raw(`</style></head><body>`)
		h.raw(`<header><a href="/">MedQA Review</a></header><main>`)
		if sidebar != nil {
			h.raw(`<aside>`)
			h.render(ctx, sidebar)
			h.raw(`</aside>`)
		}
		h.raw(`<section class="content">`)
		h.render(ctx, body)
		h.raw(`</section></main></body></html>`)
		return h.err
	})
}

// ErrorAlert renders an error message with its suggested action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="alert error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<div>`)
			h.text(action)
			h.raw(`</div>`)
		}
		if code != "" {
			h.raw(`<div class="code">Code: `)
			h.text(code)
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ErrorPage is a full page around ErrorAlert.
func ErrorPage(message, action, code string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.render(ctx, ErrorAlert(message, action, code))
		h.raw(`<p><a href="/">Back to upload</a></p>`)
		return h.err
	})
	return Layout("Error", nil, body)
}
