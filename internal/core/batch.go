package core

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// ExportSuffix is appended to the base name of an exported file.
const ExportSuffix = "_modified"

// ExportExtension is the extension of every exported file.
const ExportExtension = ".jsonl"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Batch is the ordered set of records from one uploaded file.
type Batch struct {
	Name    string
	Records []*Record
}

// Len returns the number of records.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Records)
}

// Record returns the record at zero-based index i.
func (b *Batch) Record(i int) (*Record, error) {
	if i < 0 || i >= b.Len() {
		return nil, fmt.Errorf("%w: index %d of %d", ErrRecordNotFound, i, b.Len())
	}
	return b.Records[i], nil
}

// ExportName returns the download name for this batch.
func (b *Batch) ExportName() string {
	return DeriveExportName(b.Name)
}

// ParseBatch decodes a JSONL file: one JSON object per non-blank line, kept
// in line order. The first bad line aborts the parse with a *ParseError;
// no partial batch is returned.
func ParseBatch(name string, raw []byte) (*Batch, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return nil, ErrEncoding
	}

	batch := &Batch{Name: name, Records: make([]*Record, 0)}

	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !gjson.Valid(line) {
			return nil, &ParseError{Line: i + 1, Err: errors.New("malformed JSON")}
		}
		if !gjson.Parse(line).IsObject() {
			return nil, &ParseError{Line: i + 1, Err: errors.New("line is not a JSON object")}
		}

		batch.Records = append(batch.Records, NewRecord(parseObject(line)))
	}

	return batch, nil
}

// Export serializes the batch as JSONL: one single-line object per record,
// each followed by a newline. It does not modify the batch, so repeated
// calls on an unchanged batch return identical bytes.
func Export(b *Batch) []byte {
	var buf bytes.Buffer
	if b == nil {
		return buf.Bytes()
	}
	for _, rec := range b.Records {
		rec.obj.appendTo(&buf)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// DeriveExportName maps an uploaded file name to its download name:
// "sample.jsonl" becomes "sample_modified.jsonl" and "noext" becomes
// "noext_modified.jsonl". Directory components are dropped.
func DeriveExportName(original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = "batch"
	}

	return base + ExportSuffix + ExportExtension
}
