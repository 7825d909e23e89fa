// Package core provides the review logic for MedQA annotation batches.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Reviewers can quote the code when reporting a problem.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: The uploaded file exceeds the size limit
//	          Action: Split the batch into smaller files
//	          Patterns: "file too large"
//
//	FILE002 - Invalid JSONL: A line of the file is not a JSON object
//	          Action: Fix the reported line and upload again
//	          Patterns: *ParseError, "invalid json"
//
//	FILE003 - Encoding error: The file is not UTF-8 text
//	          Action: Save the file as UTF-8
//	          Patterns: "encoding error"
//
//	FILE004 - No file: No file was selected
//	          Action: Choose a .jsonl file to upload
//	          Patterns: "no file provided"
//
// # Edit Errors (EDIT001-EDIT099)
//
//	EDIT001 - Option key mismatch: The option does not exist on this question
//	          Action: Reload the question; the edit was skipped
//	          Patterns: "option key mismatch"
//
//	EDIT002 - Field not editable: Source-language fields cannot be changed
//	          Patterns: "field not editable"
//
//	EDIT003 - Not a label field: Only TopicSystem, TopicDiscipline and SubSpeciality hold labels
//	          Patterns: "not a label field"
//
//	EDIT004 - Question not found: The question number is outside the batch
//	          Patterns: "record not found"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired: The review session no longer exists
//	         Action: Upload the file again. Download your work regularly
//	         Patterns: "session not found"
//
//	SES002 - No batch: Nothing has been uploaded in this session yet
//	         Patterns: "no batch loaded"
//
//	SES003 - Server busy: Too many review sessions are open
//	         Patterns: "too many sessions"
//
//	SES004 - Server busy: Too many uploads are being processed
//	         Patterns: "too many concurrent uploads"
//
// # Request Errors (REQ001-REQ099, RATE001)
//
//	REQ001 - Request cancelled       Patterns: "context canceled"
//	REQ002 - Request timeout         Patterns: "context deadline exceeded"
//	REQ003 - Malformed request       Patterns: "invalid request body"
//	RATE001 - Too many requests      Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the server log for the technical
// error using the request id.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (lower case) to user messages.
// Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The uploaded file exceeds the size limit",
			Action:  "Split the batch into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "The file contains a line that is not a JSON object",
			Action:  "Fix the reported line and upload again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "The file is not UTF-8 text",
			Action:  "Save the file with UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a .jsonl file to upload",
			Code:    "FILE004",
		},
	},

	// Edit errors
	{
		pattern: "option key mismatch",
		msg: UserMessage{
			Message: "This option does not exist on the question",
			Action:  "Reload the question; the edit was skipped",
			Code:    "EDIT001",
		},
	},
	{
		pattern: "field not editable",
		msg: UserMessage{
			Message: "Source-language fields cannot be changed",
			Action:  "Edit the Persian translation or an enrichment field instead",
			Code:    "EDIT002",
		},
	},
	{
		pattern: "not a label field",
		msg: UserMessage{
			Message: "This field does not hold labels",
			Action:  "Use TopicSystem, TopicDiscipline or SubSpeciality",
			Code:    "EDIT003",
		},
	},
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "Question not found in this batch",
			Action:  "Pick a question from the list",
			Code:    "EDIT004",
		},
	},

	// Session errors
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "The review session has expired",
			Action:  "Upload the file again; download your work regularly",
			Code:    "SES001",
		},
	},
	{
		pattern: "no batch loaded",
		msg: UserMessage{
			Message: "No file has been uploaded in this session",
			Action:  "Upload a .jsonl file first",
			Code:    "SES002",
		},
	},
	{
		pattern: "too many sessions",
		msg: UserMessage{
			Message: "Too many review sessions are open",
			Action:  "Please wait a moment and try again",
			Code:    "SES003",
		},
	},

	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "The server is busy processing other uploads",
			Action:  "Please wait a moment and upload again",
			Code:    "SES004",
		},
	},

	// Request errors
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a JSON body of the form {\"value\": \"...\"}",
			Code:    "REQ003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// A *ParseError keeps its line number in the message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return UserMessage{
			Message: fmt.Sprintf("Line %d of the file is not a valid JSON object", pe.Line),
			Action:  "Fix the reported line and upload again",
			Code:    "FILE002",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific catalogue entry
// rather than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
