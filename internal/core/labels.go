package core

import (
	"sort"
	"strings"
)

// LabelSeparator joins multiple tags in the delimited form of a label field.
const LabelSeparator = ";"

// LabelForm identifies how a label field is stored in a record.
type LabelForm int

const (
	LabelAbsent LabelForm = iota // field missing or null
	LabelList                    // JSON array of strings
	LabelJoined                  // single ";"-joined string
)

// LabelValue is the stored value of a label field. Input files carry tags
// either as a list or as one delimited string; every read goes through Tags,
// so callers never branch on the stored form.
type LabelValue struct {
	Form   LabelForm
	list   []string
	joined string
}

// ListLabels returns a LabelValue stored as a list.
func ListLabels(tags ...string) LabelValue {
	list := make([]string, len(tags))
	copy(list, tags)
	return LabelValue{Form: LabelList, list: list}
}

// JoinedLabels returns a LabelValue stored as a delimited string.
func JoinedLabels(s string) LabelValue {
	return LabelValue{Form: LabelJoined, joined: s}
}

// labelValueOf interprets a raw record value as a label field.
// Non-string array elements and scalar values are read as their text.
func labelValueOf(v any) LabelValue {
	switch t := v.(type) {
	case nil:
		return LabelValue{}
	case string:
		return JoinedLabels(t)
	case []string:
		return ListLabels(t...)
	case []any:
		list := make([]string, 0, len(t))
		for _, e := range t {
			list = append(list, textOf(e))
		}
		return LabelValue{Form: LabelList, list: list}
	default:
		return JoinedLabels(textOf(v))
	}
}

// Tags returns the canonical tag list: trimmed, without empty entries,
// in stored order. Duplicates are kept.
func (v LabelValue) Tags() []string {
	switch v.Form {
	case LabelList:
		out := make([]string, 0, len(v.list))
		for _, tag := range v.list {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
		return out
	case LabelJoined:
		return ParseLabels(v.joined)
	default:
		return []string{}
	}
}

// String returns the tags joined for editing in a single text box.
func (v LabelValue) String() string {
	return strings.Join(v.Tags(), LabelSeparator)
}

// ParseLabels canonicalizes reviewer input for a label field.
//
// With a separator present the input is split, each part trimmed and empty
// parts dropped. Without one, the trimmed input is a single tag, or no tag
// at all when blank.
func ParseLabels(raw string) []string {
	if !strings.Contains(raw, LabelSeparator) {
		if tag := strings.TrimSpace(raw); tag != "" {
			return []string{tag}
		}
		return []string{}
	}

	parts := strings.Split(raw, LabelSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LabelSet is an unordered set of tags.
type LabelSet map[string]struct{}

// Add inserts tags into the set.
func (s LabelSet) Add(tags ...string) {
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
}

// Contains reports whether tag is in the set.
func (s LabelSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the members in lexical order.
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
