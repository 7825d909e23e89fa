package core

import "time"

// SessionInfo summarizes a review session.
type SessionInfo struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName,omitempty"`
	ExportName string    `json:"exportName,omitempty"`
	Records    int       `json:"records"`
	Loaded     bool      `json:"loaded"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}

// RecordEdit carries every value of one submitted review form.
// Absent map entries leave the record unchanged.
type RecordEdit struct {
	Fields  map[string]string // editable free-text fields
	Options map[string]string // option key -> translated text
	Labels  map[string]string // label field -> raw ";"-separated input
}

// SaveResult reports what SaveRecord stored and which edits were skipped.
type SaveResult struct {
	Labels  map[string][]string `json:"labels"`
	Skipped []string            `json:"skipped,omitempty"`
}

// OptionView pairs a source option with its translation.
type OptionView struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Persian string `json:"persian"`
}

// LabelView is one label field prepared for editing.
type LabelView struct {
	Field      string   `json:"field"`
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Vocabulary []string `json:"vocabulary"`
}

// RecordView is a read-only snapshot of one record for rendering.
type RecordView struct {
	Index           int          `json:"index"`
	Question        string       `json:"question"`
	QuestionPersian string       `json:"questionPersian"`
	Answer          string       `json:"answer"`
	Options         []OptionView `json:"options"`
	Labels          []LabelView  `json:"labels"`

	ContradictoryOption       string `json:"newContradictoryOption"`
	ContradictoryOptionSource string `json:"newContradictoryOptionSource"`
	AdditionalAnswer          string `json:"additionalCorrectAnswer"`
	AdditionalAnswerSource    string `json:"additionalCorrectAnswerSource"`
	QuestionStem              string `json:"newQuestionStem"`
}

// Number is the 1-based position shown to reviewers.
func (v RecordView) Number() int { return v.Index + 1 }

// ReviewView is everything the review page needs for one question.
type ReviewView struct {
	Session SessionInfo `json:"session"`
	Record  RecordView  `json:"record"`
}

// newRecordView snapshots rec. vocab supplies the tag list per label field.
func newRecordView(index int, rec *Record, vocab func(field string) []string) RecordView {
	v := RecordView{
		Index:           index,
		Question:        rec.Question(),
		QuestionPersian: rec.QuestionPersian(),
		Answer:          rec.Answer(),

		ContradictoryOption:       rec.Text(FieldContradictoryOption),
		ContradictoryOptionSource: rec.Text(FieldContradictoryOptionSource),
		AdditionalAnswer:          rec.Text(FieldAdditionalAnswer),
		AdditionalAnswerSource:    rec.Text(FieldAdditionalAnswerSource),
		QuestionStem:              rec.Text(FieldQuestionStem),
	}

	for _, opt := range rec.Options() {
		persian, _ := rec.OptionPersianText(opt.Key)
		v.Options = append(v.Options, OptionView{Key: opt.Key, Text: opt.Text, Persian: persian})
	}

	for _, field := range LabelFields {
		v.Labels = append(v.Labels, LabelView{
			Field:      field,
			Name:       LabelDisplayName(field),
			Value:      rec.Label(field).String(),
			Vocabulary: vocab(field),
		})
	}

	return v
}
