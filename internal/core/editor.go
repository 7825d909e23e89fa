package core

import "fmt"

// SetTranslatedField overwrites one of EditableFields with value.
// No validation is applied; an empty string means "not provided".
func SetTranslatedField(r *Record, field, value string) error {
	if !IsEditableField(field) {
		return fmt.Errorf("%w: %s", ErrFieldNotEditable, field)
	}
	r.obj.Set(field, value)
	return nil
}

// SetTranslatedOption overwrites options_persian[key]. The key must exist
// in options; otherwise a *KeyMismatchError is returned and the record is
// left untouched.
func SetTranslatedOption(r *Record, key, value string) error {
	source := r.optionMap(FieldOptions)
	if !source.Has(key) {
		return &KeyMismatchError{Key: key, Available: source.Keys()}
	}

	translated := r.optionMap(FieldOptionsPersian)
	if translated == nil {
		translated = NewObject()
		r.obj.Set(FieldOptionsPersian, translated)
	}
	translated.Set(key, value)
	return nil
}

// SetLabelField canonicalizes raw with ParseLabels, stores the resulting
// list under field and returns it.
func SetLabelField(r *Record, field, raw string) ([]string, error) {
	if !IsLabelField(field) {
		return nil, fmt.Errorf("%w: %s", ErrNotLabelField, field)
	}
	tags := ParseLabels(raw)
	r.obj.Set(field, tags)

	out := make([]string, len(tags))
	copy(out, tags)
	return out, nil
}

// CollectUniqueLabels returns every tag used under field across the batch,
// whichever form each record stores it in.
func CollectUniqueLabels(b *Batch, field string) LabelSet {
	set := make(LabelSet)
	if b == nil {
		return set
	}
	for _, rec := range b.Records {
		set.Add(rec.Label(field).Tags()...)
	}
	return set
}
