package web

import (
	"net/http"

	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/go-chi/chi/v5"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// auditResponse wraps journal entries for JSON encoding.
type auditResponse struct {
	SessionID string            `json:"sessionId"`
	Entries   []core.AuditEntry `json:"entries"`
}

// handleAuditLog returns a session's journal entries, newest first.
// Query: ?limit=N (default 100, max 1000). Empty when journaling is off.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)
	sessionID := chi.URLParam(r, "sessionID")

	limit := parseIntParam(r, "limit", defaultAuditLimit, 1)
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	entries, err := s.service.AuditLog(ctx, sessionID, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, auditResponse{SessionID: sessionID, Entries: entries})
}
