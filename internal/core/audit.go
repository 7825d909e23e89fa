package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditAction is the kind of change recorded in the edit journal.
type AuditAction string

const (
	ActionLoad         AuditAction = "load"
	ActionExport       AuditAction = "export"
	ActionFieldEdit    AuditAction = "field_edit"
	ActionOptionEdit   AuditAction = "option_edit"
	ActionLabelEdit    AuditAction = "label_edit"
	ActionSessionClose AuditAction = "session_close"
)

// AuditSeverity ranks journal entries for filtering.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// AuditEntry is one row of the edit journal.
type AuditEntry struct {
	ID          string        `json:"id"`
	SessionID   string        `json:"sessionId"`
	Action      AuditAction   `json:"action"`
	Severity    AuditSeverity `json:"severity"`
	FileName    string        `json:"fileName,omitempty"`
	RecordIndex int           `json:"recordIndex"`
	Field       string        `json:"field,omitempty"`
	OldValue    string        `json:"oldValue,omitempty"`
	NewValue    string        `json:"newValue,omitempty"`
	IPAddress   string        `json:"ipAddress,omitempty"`
	UserAgent   string        `json:"userAgent,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// AuditStore persists journal entries. Implementations live in
// internal/database; a nil store disables the journal.
type AuditStore interface {
	InsertAudit(ctx context.Context, e AuditEntry) error
	ListAudit(ctx context.Context, sessionID string, limit int) ([]AuditEntry, error)
	PurgeAudit(ctx context.Context, before time.Time) (int64, error)
}

// determineSeverity returns the severity for an action.
// Loads and exports replace or publish a whole batch.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionLoad, ActionExport, ActionSessionClose:
		return SeverityHigh
	case ActionLabelEdit:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// newAuditEntry fills id, severity, client metadata and timestamp.
// RecordIndex is -1 for batch-level actions.
func newAuditEntry(ctx context.Context, sessionID string, action AuditAction) AuditEntry {
	ip, ua := clientFromContext(ctx)
	return AuditEntry{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Action:      action,
		Severity:    determineSeverity(action),
		RecordIndex: -1,
		IPAddress:   ip,
		UserAgent:   ua,
		CreatedAt:   time.Now().UTC(),
	}
}
