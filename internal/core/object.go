package core

// object.go holds the ordered JSON value tree that backs every record.
//
// Records are kept as generic JSON so that fields the review tool does not
// know about survive a load/export cycle untouched and in their original
// position. Lines are parsed with gjson, which walks object members in
// document order; the tree is written back with encoding/json so strings come
// out with literal non-ASCII characters.
//
// Value kinds stored in the tree:
//   - nil, bool, string, json.Number (numbers keep their source text)
//   - []any (arrays)
//   - *Object (objects, insertion ordered)
//
// Editing code may additionally store []string or any other Go value; values
// that encoding/json cannot represent are written as their textual form.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Object is a JSON object that remembers member order.
// Setting an existing key replaces its value in place; new keys are appended.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v under key, appending the key if it is new.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := &Object{
		keys:   make([]string, len(o.keys)),
		values: make(map[string]any, len(o.values)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// MarshalJSON writes the members in order on a single line.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	o.appendTo(&buf)
	return buf.Bytes(), nil
}

func (o *Object) appendTo(buf *bytes.Buffer) {
	if o == nil {
		buf.WriteString("null")
		return
	}
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendString(buf, k)
		buf.WriteByte(':')
		appendValue(buf, o.values[k])
	}
	buf.WriteByte('}')
}

// appendValue encodes v, coercing anything encoding/json rejects
// (NaN, channels, funcs, complex numbers, bad json.Number) to its text.
func appendValue(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		appendString(buf, t)
	case *Object:
		t.appendTo(buf)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendValue(buf, e)
		}
		buf.WriteByte(']')
	default:
		b, err := marshalLiteral(v)
		if err != nil {
			appendString(buf, fmt.Sprint(v))
			return
		}
		buf.Write(b)
	}
}

func appendString(buf *bytes.Buffer, s string) {
	b, _ := marshalLiteral(s)
	buf.Write(b)
}

// marshalLiteral is json.Marshal without HTML escaping and without the
// trailing newline json.Encoder adds.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// parseObject converts one JSON text into an ordered object.
// The caller must have checked that text is a valid JSON object.
func parseObject(text string) *Object {
	return fromResult(gjson.Parse(text)).(*Object)
}

func fromResult(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		out := make([]any, 0)
		r.ForEach(func(_, value gjson.Result) bool {
			out = append(out, fromResult(value))
			return true
		})
		return out
	}

	obj := NewObject()
	r.ForEach(func(key, value gjson.Result) bool {
		obj.Set(key.Str, fromResult(value))
		return true
	})
	return obj
}

// textOf renders a stored value as display text.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		var buf bytes.Buffer
		appendValue(&buf, v)
		return buf.String()
	}
}
