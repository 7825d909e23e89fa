package core

// Record field names as they appear in the dataset.
const (
	FieldQuestion        = "question"
	FieldQuestionPersian = "question_persian"
	FieldAnswer          = "answer"
	FieldOptions         = "options"
	FieldOptionsPersian  = "options_persian"

	FieldTopicSystem     = "meta_info_TopicSystem"
	FieldTopicDiscipline = "meta_info_TopicDiscipline"
	FieldSubSpeciality   = "meta_info_SubSpeciality"

	FieldContradictoryOption       = "new_contradictory_option"
	FieldContradictoryOptionSource = "new_contradictory_option_source"
	FieldAdditionalAnswer          = "additional_correct_answer"
	FieldAdditionalAnswerSource    = "additional_correct_answer_source"
	FieldQuestionStem              = "new_question_stem"
)

// LabelFields lists the categorical tag fields in display order.
var LabelFields = []string{
	FieldTopicSystem,
	FieldTopicDiscipline,
	FieldSubSpeciality,
}

// EditableFields lists the free-text fields a reviewer may overwrite.
// Source-language fields (question, answer, options) are not among them.
var EditableFields = []string{
	FieldQuestionPersian,
	FieldContradictoryOption,
	FieldContradictoryOptionSource,
	FieldAdditionalAnswer,
	FieldAdditionalAnswerSource,
	FieldQuestionStem,
}

// IsLabelField reports whether name is one of LabelFields.
func IsLabelField(name string) bool {
	return contains(LabelFields, name)
}

// IsEditableField reports whether name is one of EditableFields.
func IsEditableField(name string) bool {
	return contains(EditableFields, name)
}

func contains(list []string, name string) bool {
	for _, f := range list {
		if f == name {
			return true
		}
	}
	return false
}

// LabelDisplayName strips the "meta_info_" prefix used in the dataset.
func LabelDisplayName(field string) string {
	const prefix = "meta_info_"
	if len(field) > len(prefix) && field[:len(prefix)] == prefix {
		return field[len(prefix):]
	}
	return field
}

// Option is one answer choice.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Record is one question-answer item. It wraps the ordered JSON object read
// from the input line, so unknown members round-trip unchanged.
type Record struct {
	obj *Object
}

// NewRecord wraps an ordered object. A nil object yields an empty record.
func NewRecord(obj *Object) *Record {
	if obj == nil {
		obj = NewObject()
	}
	return &Record{obj: obj}
}

// Object exposes the underlying ordered object.
func (r *Record) Object() *Object { return r.obj }

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record { return &Record{obj: r.obj.Clone()} }

// MarshalJSON writes the record as one line of JSON.
func (r *Record) MarshalJSON() ([]byte, error) { return r.obj.MarshalJSON() }

// Question returns the source-language question.
func (r *Record) Question() string { return r.Text(FieldQuestion) }

// QuestionPersian returns the translated question.
func (r *Record) QuestionPersian() string { return r.Text(FieldQuestionPersian) }

// Answer returns the identifier of the correct option.
func (r *Record) Answer() string { return r.Text(FieldAnswer) }

// Text returns a scalar field as text. Missing enrichment fields read as
// empty, except new_question_stem which falls back to the question.
func (r *Record) Text(field string) string {
	v, ok := r.obj.Get(field)
	if !ok && field == FieldQuestionStem {
		return r.Question()
	}
	return textOf(v)
}

// HasField reports whether the record carries field.
func (r *Record) HasField(field string) bool { return r.obj.Has(field) }

// Options returns the source-language options in input order.
func (r *Record) Options() []Option { return r.optionList(FieldOptions) }

// OptionsPersian returns the translated options in input order.
func (r *Record) OptionsPersian() []Option { return r.optionList(FieldOptionsPersian) }

// OptionText returns options[key] and whether the key exists.
func (r *Record) OptionText(key string) (string, bool) {
	return r.optionText(FieldOptions, key)
}

// OptionPersianText returns options_persian[key] and whether the key exists.
func (r *Record) OptionPersianText(key string) (string, bool) {
	return r.optionText(FieldOptionsPersian, key)
}

func (r *Record) optionMap(field string) *Object {
	v, _ := r.obj.Get(field)
	m, _ := v.(*Object)
	return m
}

func (r *Record) optionList(field string) []Option {
	m := r.optionMap(field)
	out := make([]Option, 0, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out = append(out, Option{Key: k, Text: textOf(v)})
	}
	return out
}

func (r *Record) optionText(field, key string) (string, bool) {
	v, ok := r.optionMap(field).Get(key)
	if !ok {
		return "", false
	}
	return textOf(v), true
}

// Label returns the stored value of a label field.
func (r *Record) Label(field string) LabelValue {
	v, _ := r.obj.Get(field)
	return labelValueOf(v)
}
