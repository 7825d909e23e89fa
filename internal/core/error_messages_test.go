package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "parse error keeps line number",
			err:         fmt.Errorf("load batch: %w", &ParseError{Line: 7, Err: errors.New("malformed JSON")}),
			wantCode:    "FILE002",
			wantMessage: "Line 7 of the file is not a valid JSON object",
		},
		{
			name:        "encoding error maps correctly",
			err:         ErrEncoding,
			wantCode:    "FILE003",
			wantMessage: "The file is not UTF-8 text",
		},
		{
			name:        "file too large maps correctly",
			err:         errors.New("file too large: limit is 33554432 bytes"),
			wantCode:    "FILE001",
			wantMessage: "The uploaded file exceeds the size limit",
		},
		{
			name:        "key mismatch maps correctly",
			err:         &KeyMismatchError{Key: "E", Available: []string{"A", "B"}},
			wantCode:    "EDIT001",
			wantMessage: "This option does not exist on the question",
		},
		{
			name:        "wrapped sentinel maps correctly",
			err:         fmt.Errorf("%w: question", ErrFieldNotEditable),
			wantCode:    "EDIT002",
			wantMessage: "Source-language fields cannot be changed",
		},
		{
			name:        "session not found maps correctly",
			err:         fmt.Errorf("%w: abc", ErrSessionNotFound),
			wantCode:    "SES001",
			wantMessage: "The review session has expired",
		},
		{
			name:        "deadline maps correctly",
			err:         context.DeadlineExceeded,
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("NO BATCH LOADED yet"),
			wantCode:    "SES002",
			wantMessage: "No file has been uploaded in this session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrNoBatch)

	expected := "No file has been uploaded in this session (Code: SES002). Upload a .jsonl file first"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: ErrRecordNotFound, want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
