package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleUpdateField sets one translated or enrichment field.
// Body: {"value": "..."}
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	index, err := parseIndex(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	value, err := decodeValue(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	field := chi.URLParam(r, "field")
	if err := s.service.UpdateField(ctx, chi.URLParam(r, "sessionID"), index, field, value); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"field": field, "value": value})
}

// handleUpdateOption sets the translation of one option.
// Body: {"value": "..."}; an unknown key answers 422 and changes nothing.
func (s *Server) handleUpdateOption(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	index, err := parseIndex(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	value, err := decodeValue(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	key := chi.URLParam(r, "key")
	if err := s.service.UpdateOption(ctx, chi.URLParam(r, "sessionID"), index, key, value); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

// handleUpdateLabels stores a ";"-separated tag list and returns the
// canonical list.
// Body: {"value": "A; B"}
func (s *Server) handleUpdateLabels(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	index, err := parseIndex(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	value, err := decodeValue(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	tags, err := s.service.UpdateLabels(ctx, chi.URLParam(r, "sessionID"), index, chi.URLParam(r, "field"), value)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"labels": tags})
}
