package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleCreateSession uploads a batch into a new session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	info, err := s.createLoadedSession(w, r.WithContext(ctx))
	if err != nil {
		fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/sessions/"+info.ID)
	writeJSON(w, http.StatusCreated, info)
}

// handleGetSession returns a session summary.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleDeleteSession discards a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	if err := s.service.CloseSession(ctx, chi.URLParam(r, "sessionID")); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadBatch replaces the batch of an existing session. A rejected
// file leaves the previous batch in place.
func (s *Server) handleLoadBatch(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	name, data, err := s.readUpload(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	info, err := s.service.LoadBatch(ctx, chi.URLParam(r, "sessionID"), name, data)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
