package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/JonMunkholm/MedQA/internal/logging"
	mw "github.com/JonMunkholm/MedQA/internal/web/middleware"
	"github.com/go-chi/chi/v5"
)

// withRequestMetadata adds client IP, User-Agent and the session ID to the
// context for journal entries and log lines.
func withRequestMetadata(r *http.Request) context.Context {
	ctx := core.ContextWithClient(r.Context(), mw.ClientIP(r), r.UserAgent())
	return logging.WithSession(ctx, chi.URLParam(r, "sessionID"))
}
