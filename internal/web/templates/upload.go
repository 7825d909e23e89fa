package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

var instructions = []string{
	"Upload a JSONL file using the form.",
	"Adjust text box heights in the sidebar settings.",
	"Use the tabs to navigate between questions.",
	"Review and modify the Persian translations for questions and options.",
	"In the Enrich MedQA section, add or edit contradictory options and additional correct answers with their sources.",
	"In the Revise Labels section, update the topic system, discipline and subspeciality. Separate multiple tags with semicolons (;).",
	"Click 'Save Question N' to save changes for one question.",
	"Click 'Save and download' to download the complete modified JSONL file.",
	"You can upload the modified file again for further editing.",
}

// Instructions lists the reviewer workflow.
func Instructions() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="card"><h3>Instructions</h3><ol>`)
		for _, step := range instructions {
			h.raw(`<li>`)
			h.text(step)
			h.raw(`</li>`)
		}
		h.raw(`</ol></div>`)
		return h.err
	})
}

// UploadPage renders the batch upload form. alert may be nil.
func UploadPage(maxFileSize int64, alert templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.render(ctx, alert)
		h.raw(`<div class="card"><h2>MedQA Persian Translation Review</h2>`)
		h.raw(`<form method="post" action="/sessions" enctype="multipart/form-data">`)
		h.raw(`<label class="field"><span>Choose a JSONL file</span>`)
		h.raw(`<input type="file" name="file" accept=".jsonl,application/jsonl,application/x-ndjson" required></label>`)
		h.rawf(`<p class="vocab">Maximum size: %s</p>`, templ.EscapeString(formatBytes(maxFileSize)))
		h.raw(`<button type="submit">Upload and review</button></form></div>`)
		return h.err
	})
	return Layout("Upload", Instructions(), body)
}
