package core

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonNumber(s string) json.Number { return json.Number(s) }

// jsonl joins lines with newlines and adds a trailing one.
func jsonl(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

const (
	sampleLine1 = `{"question":"Which drug?","question_persian":"کدام دارو؟","answer":"B","options":{"A":"Aspirin","B":"Heparin"},"options_persian":{"A":"آسپرین","B":"هپارین"},"meta_info_TopicSystem":"Cardiology;Surgery"}`
	sampleLine2 = `{"question":"Which nerve?","answer":"A","options":{"A":"Vagus","B":"Phrenic"},"options_persian":{"A":"","B":""},"meta_info_TopicSystem":["Surgery"]}`
)

func mustParse(t *testing.T, lines ...string) *Batch {
	t.Helper()
	b, err := ParseBatch("sample.jsonl", jsonl(lines...))
	require.NoError(t, err)
	return b
}
