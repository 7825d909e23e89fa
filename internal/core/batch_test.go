package core

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatch_OrderAndBlankLines(t *testing.T) {
	raw := []byte("\n" + sampleLine1 + "\n   \n" + sampleLine2 + "\r\n\n")

	b, err := ParseBatch("sample.jsonl", raw)
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())

	assert.Equal(t, "Which drug?", b.Records[0].Question())
	assert.Equal(t, "Which nerve?", b.Records[1].Question())
	assert.Equal(t, "sample.jsonl", b.Name)
}

func TestParseBatch_Empty(t *testing.T) {
	b, err := ParseBatch("empty.jsonl", []byte("\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, Export(b))
}

func TestParseBatch_ParseErrorReportsLine(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantLine int
	}{
		{name: "malformed first line", raw: "{not json}\n" + sampleLine1, wantLine: 1},
		{name: "blank lines are counted", raw: sampleLine1 + "\n\n{\"a\":\n", wantLine: 3},
		{name: "array is not an object", raw: sampleLine1 + "\n[1,2]", wantLine: 2},
		{name: "scalar is not an object", raw: `"text"`, wantLine: 1},
		{name: "trailing garbage", raw: `{"a":1} x`, wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBatch("bad.jsonl", []byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, b, "no partial batch on failure")

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantLine, pe.Line)
			assert.Contains(t, err.Error(), "invalid json")
		})
	}
}

func TestParseBatch_Encoding(t *testing.T) {
	_, err := ParseBatch("latin1.jsonl", []byte{'{', '"', 'a', '"', ':', '"', 0xff, '"', '}'})
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestParseBatch_SkipsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleLine1)...)
	b, err := ParseBatch("bom.jsonl", raw)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestExport_RoundTripPreservesLinesAndKeyOrder(t *testing.T) {
	in := `{"zeta":1,"question":"Q","answer":"A","options":{"C":"c","A":"a","B":"b"},"options_persian":{"C":"","A":"","B":""},"extra":{"nested":[1,2.50,null,true]}}`
	b := mustParse(t, in, sampleLine2)

	out := Export(b)
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, in, lines[0])
	assert.Equal(t, sampleLine2, lines[1])

	opts := b.Records[0].Options()
	require.Len(t, opts, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{opts[0].Key, opts[1].Key, opts[2].Key})
}

func TestExport_WritesNonASCIILiterally(t *testing.T) {
	b := mustParse(t, `{"question_persian":"\u0633\u0644\u0627\u0645","note":"<b>&</b>"}`)

	assert.Equal(t, `{"question_persian":"سلام","note":"<b>&</b>"}`+"\n", string(Export(b)))
}

func TestExport_Idempotent(t *testing.T) {
	b := mustParse(t, sampleLine1, sampleLine2)

	first := Export(b)
	second := Export(b)
	assert.True(t, bytes.Equal(first, second))

	// Export must not touch the batch.
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, JoinedLabels("Cardiology;Surgery"), b.Records[0].Label(FieldTopicSystem))
}

func TestExport_CoercesUnrepresentableValues(t *testing.T) {
	b := mustParse(t, `{"question":"Q"}`)
	obj := b.Records[0].Object()
	obj.Set("ratio", math.NaN())
	obj.Set("phase", complex(1, 2))
	obj.Set("tags", []string{"a", "b"})

	assert.Equal(t,
		`{"question":"Q","ratio":"NaN","phase":"(1+2i)","tags":["a","b"]}`+"\n",
		string(Export(b)))
}

func TestExport_IncludesFieldsAddedDuringSession(t *testing.T) {
	b := mustParse(t, sampleLine2)
	rec := b.Records[0]

	require.NoError(t, SetTranslatedField(rec, FieldQuestionPersian, "کدام عصب؟"))
	_, err := SetLabelField(rec, FieldSubSpeciality, "Neurology")
	require.NoError(t, err)

	want := `{"question":"Which nerve?","answer":"A","options":{"A":"Vagus","B":"Phrenic"},"options_persian":{"A":"","B":""},"meta_info_TopicSystem":["Surgery"],"question_persian":"کدام عصب؟","meta_info_SubSpeciality":["Neurology"]}` + "\n"
	assert.Equal(t, want, string(Export(b)))
}

func TestDeriveExportName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "sample.jsonl", want: "sample_modified.jsonl"},
		{in: "noext", want: "noext_modified.jsonl"},
		{in: "medqa.train.jsonl", want: "medqa.train_modified.jsonl"},
		{in: "data.json", want: "data_modified.jsonl"},
		{in: "uploads/batch1.jsonl", want: "batch1_modified.jsonl"},
		{in: `C:\data\batch2.jsonl`, want: "batch2_modified.jsonl"},
		{in: ".hidden", want: ".hidden_modified.jsonl"},
		{in: "", want: "batch_modified.jsonl"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveExportName(tt.in))
		})
	}
}

func TestBatchStore_LoadReplacesAndKeepsOnFailure(t *testing.T) {
	var s BatchStore

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNoBatch)

	_, err = s.Load("first.jsonl", jsonl(sampleLine1))
	require.NoError(t, err)

	_, err = s.Load("second.jsonl", jsonl(sampleLine1, sampleLine2))
	require.NoError(t, err)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "second.jsonl", cur.Name)
	assert.Equal(t, 2, cur.Len())

	_, err = s.Load("broken.jsonl", []byte("{"))
	require.Error(t, err)

	cur, err = s.Current()
	require.NoError(t, err)
	assert.Equal(t, "second.jsonl", cur.Name, "failed load keeps the previous batch")

	name, data, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "second_modified.jsonl", name)
	assert.Equal(t, string(jsonl(sampleLine1, sampleLine2)), string(data))
}

func TestBatch_Record(t *testing.T) {
	b := mustParse(t, sampleLine1)

	_, err := b.Record(0)
	require.NoError(t, err)

	_, err = b.Record(1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = b.Record(-1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
