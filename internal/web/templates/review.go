package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/MedQA/internal/config"
	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/a-h/templ"
)

// Form field name prefixes of the review form.
const (
	FieldPrefix  = "field."
	OptionPrefix = "option."
	LabelPrefix  = "label."

	ActionSave     = "save"
	ActionDownload = "download"
)

// ReviewPage is the data of one rendered question.
type ReviewPage struct {
	View    core.ReviewView
	Display config.DisplayConfig
	Saved   bool
	Skipped []string
}

type enrichField struct {
	field string
	label string
	rtl   bool
	value string
}

// Review renders the review page for one question.
func Review(p ReviewPage) templ.Component {
	title := "Question " + strconv.Itoa(p.View.Record.Number())
	return Layout(title, reviewSidebar(p), reviewBody(p))
}

func reviewSidebar(p ReviewPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		id := templ.EscapeString(url.PathEscape(p.View.Session.ID))
		bounds := config.DisplayBounds()

		h.raw(`<div class="card"><h3>Settings</h3>`)
		h.rawf(`<form method="get" action="/sessions/%s">`, id)
		h.rawf(`<input type="hidden" name="q" value="%d">`, p.View.Record.Number())
		for _, s := range []struct {
			param, name, label string
		}{
			{"qh", config.DisplayQuestion, "Persian question height"},
			{"oh", config.DisplayOption, "Persian option height"},
			{"eh", config.DisplayEnrich, "Enrich MedQA text height"},
			{"lh", config.DisplayLabels, "Labels text height"},
		} {
			b := bounds[s.name]
			h.rawf(`<label class="field"><span>%s</span>`, templ.EscapeString(s.label))
			h.rawf(`<input type="number" name="%s" value="%d" min="%d" max="%d" step="%d"></label>`,
				s.param, p.Display.Height(s.name), b.Min, b.Max, b.Step)
		}
		h.raw(`<button type="submit" class="secondary">Apply</button></form></div>`)

		h.raw(`<div class="card"><h3>Batch</h3><p>`)
		h.text(p.View.Session.FileName)
		h.rawf(`</p><p>%d questions</p>`, p.View.Session.Records)
		h.rawf(`<p><a href="/sessions/%s/export">Download %s</a></p>`, id, templ.EscapeString(p.View.Session.ExportName))
		h.rawf(`<form method="post" action="/sessions/%s/close">`, id)
		h.raw(`<button type="submit" class="secondary">Close session</button></form></div>`)

		h.render(ctx, Instructions())
		return h.err
	})
}

func reviewBody(p ReviewPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		rec := p.View.Record
		id := p.View.Session.ID

		h.raw(`<nav class="tabs">`)
		for q := 1; q <= p.View.Session.Records; q++ {
			class := ""
			if q == rec.Number() {
				class = ` class="active"`
			}
			h.rawf(`<a href="%s"%s>Question %d</a>`, templ.EscapeString(ReviewURL(id, q, p.Display)), class, q)
		}
		h.raw(`</nav>`)

		if p.Saved {
			h.rawf(`<div class="alert success">Changes for Question %d saved successfully!</div>`, rec.Number())
		}
		if len(p.Skipped) > 0 {
			h.raw(`<div class="alert warning"><strong>Some edits were not saved:</strong><ul>`)
			for _, s := range p.Skipped {
				h.raw(`<li>`)
				h.text(s)
				h.raw(`</li>`)
			}
			h.raw(`</ul></div>`)
		}

		h.rawf(`<form method="post" action="/sessions/%s/records/%d">`,
			templ.EscapeString(url.PathEscape(id)), rec.Index)
		h.rawf(`<input type="hidden" name="qh" value="%d"><input type="hidden" name="oh" value="%d">`,
			p.Display.QuestionHeight, p.Display.OptionHeight)
		h.rawf(`<input type="hidden" name="eh" value="%d"><input type="hidden" name="lh" value="%d">`,
			p.Display.EnrichHeight, p.Display.LabelsHeight)

		// Translation
		h.raw(`<div class="card"><h2>Persian Translation Revision</h2>`)
		h.raw(`<p><strong>English question:</strong></p><p>`)
		h.text(rec.Question)
		h.raw(`</p>`)
		h.textarea(FieldPrefix+core.FieldQuestionPersian, "Persian question", rec.QuestionPersian, p.Display.QuestionHeight, true)
		h.raw(`<p>Correct answer is: <span class="answer">&#10004; `)
		h.text(rec.Answer)
		h.raw(`</span></p></div>`)

		// Options
		h.raw(`<div class="card"><h2>Options</h2>`)
		for _, opt := range rec.Options {
			h.raw(`<div class="option"><div>`)
			h.text(opt.Key + ": " + opt.Text)
			h.raw(`</div><div>`)
			h.textarea(OptionPrefix+opt.Key, "Persian option "+opt.Key, opt.Persian, p.Display.OptionHeight, true)
			h.raw(`</div></div>`)
		}
		h.raw(`</div>`)

		// Labels
		h.raw(`<div class="card"><h2>Revise Labels</h2>`)
		h.raw(`<div class="alert">Provide multiple tags separated by ';'. Use items from the current list.</div>`)
		for _, l := range rec.Labels {
			h.textarea(LabelPrefix+l.Field, l.Name, l.Value, p.Display.LabelsHeight, false)
			h.raw(`<p class="vocab"><em>Current list</em>: `)
			h.text(joinVocabulary(l.Vocabulary))
			h.raw(`</p>`)
		}
		h.raw(`</div>`)

		// Enrichment
		h.raw(`<div class="card"><h2>Enrich MedQA</h2>`)
		for _, f := range []enrichField{
			{core.FieldContradictoryOption, "Contradictory option (in Persian)", true, rec.ContradictoryOption},
			{core.FieldContradictoryOptionSource, "Source for the contradictory option", false, rec.ContradictoryOptionSource},
			{core.FieldAdditionalAnswer, "Additional correct answer (in Persian)", true, rec.AdditionalAnswer},
			{core.FieldAdditionalAnswerSource, "Source for the additional correct answer", false, rec.AdditionalAnswerSource},
			{core.FieldQuestionStem, "New question stem", false, rec.QuestionStem},
		} {
			h.textarea(FieldPrefix+f.field, f.label, f.value, p.Display.EnrichHeight, f.rtl)
		}
		h.raw(`</div>`)

		h.rawf(`<button type="submit" name="action" value="%s">Save Question %d</button> `, ActionSave, rec.Number())
		h.rawf(`<button type="submit" name="action" value="%s" class="secondary">Save and download</button>`, ActionDownload)
		h.raw(`</form>`)
		return h.err
	})
}
