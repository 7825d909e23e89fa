package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleGetRecord returns one record as stored, keys in input order.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	rec, err := s.service.Record(chi.URLParam(r, "sessionID"), index)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// labelsResponse lists the tags of one label field.
type labelsResponse struct {
	Field  string   `json:"field"`
	Labels []string `json:"labels"`
}

// handleUniqueLabels returns the distinct tags in use across the batch.
func (s *Server) handleUniqueLabels(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	labels, err := s.service.UniqueLabels(chi.URLParam(r, "sessionID"), field)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, labelsResponse{Field: field, Labels: labels})
}

// handleVocabulary returns the reference tags merged with those in use.
func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	labels, err := s.service.Vocabulary(chi.URLParam(r, "sessionID"), field)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, labelsResponse{Field: field, Labels: labels})
}

// handleDisplaySettings returns the display heights after applying any
// qh/oh/eh/lh overrides, with their ranges.
func (s *Server) handleDisplaySettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, displayJSON(displayFrom(r.URL.Query(), s.cfg.Display)))
}
