package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/JonMunkholm/MedQA/internal/logging"
	"github.com/JonMunkholm/MedQA/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// render writes an HTML component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.UploadPage(s.cfg.Upload.MaxFileSize, nil))
}

// handleCreateSessionPage uploads a batch into a new session and redirects
// to its first question. Failures re-render the form with the error.
func (s *Server) handleCreateSessionPage(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	info, err := s.createLoadedSession(w, r.WithContext(ctx))
	if err != nil {
		msg := core.MapError(err)
		logging.FromContext(ctx).Warn("upload rejected", "error", err, "code", msg.Code)
		alert := templates.ErrorAlert(msg.Message, msg.Action, msg.Code)
		render(w, r, statusFor(err), templates.UploadPage(s.cfg.Upload.MaxFileSize, alert))
		return
	}

	http.Redirect(w, r, templates.ReviewURL(info.ID, 1, s.cfg.Display), http.StatusSeeOther)
}

// handleReviewPage renders question ?q=N (1-based) of a session.
func (s *Server) handleReviewPage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	q := parseIntParam(r, "q", 1, 1)

	view, err := s.service.View(sessionID, q-1)
	if err != nil {
		fail(w, r, err)
		return
	}

	render(w, r, http.StatusOK, templates.Review(templates.ReviewPage{
		View:    view,
		Display: displayFrom(r.URL.Query(), s.cfg.Display),
		Saved:   r.URL.Query().Get("saved") == "1",
	}))
}

// handleSaveRecordPage applies the submitted review form to one question.
//
// Edits that cannot be applied (an option key the question does not have)
// are skipped and listed on the re-rendered page; a clean save redirects
// back to the question, or to the download when action=download.
func (s *Server) handleSaveRecordPage(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)
	sessionID := chi.URLParam(r, "sessionID")

	index, err := parseIndex(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseForm(); err != nil {
		fail(w, r, s.uploadError(err, errBadRequest))
		return
	}

	result, err := s.service.SaveRecord(ctx, sessionID, index, recordEditFromForm(r.PostForm))
	if err != nil {
		fail(w, r, err)
		return
	}

	display := displayFrom(r.PostForm, s.cfg.Display)
	if len(result.Skipped) > 0 {
		view, err := s.service.View(sessionID, index)
		if err != nil {
			fail(w, r, err)
			return
		}
		render(w, r, http.StatusUnprocessableEntity, templates.Review(templates.ReviewPage{
			View:    view,
			Display: display,
			Saved:   true,
			Skipped: result.Skipped,
		}))
		return
	}

	if r.PostForm.Get("action") == templates.ActionDownload {
		http.Redirect(w, r, "/sessions/"+url.PathEscape(sessionID)+"/export", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, templates.ReviewURL(sessionID, index+1, display)+"&saved=1", http.StatusSeeOther)
}

// handleExport downloads the edited batch. Shared by the page and the API.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	name, data, err := s.service.Export(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		fail(w, r, err)
		return
	}
	sendExport(w, name, data)
}

// handleCloseSessionPage discards a session and returns to the upload form.
func (s *Server) handleCloseSessionPage(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r)

	err := s.service.CloseSession(ctx, chi.URLParam(r, "sessionID"))
	if err != nil && !core.IsNotFound(err) {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// createLoadedSession creates a session and loads the uploaded batch into
// it. The session is discarded again when the upload is rejected.
func (s *Server) createLoadedSession(w http.ResponseWriter, r *http.Request) (core.SessionInfo, error) {
	ctx := r.Context()

	name, data, err := s.readUpload(w, r)
	if err != nil {
		return core.SessionInfo{}, err
	}

	info, err := s.service.CreateSession(ctx)
	if err != nil {
		return core.SessionInfo{}, err
	}

	loaded, err := s.service.LoadBatch(ctx, info.ID, name, data)
	if err != nil {
		if cerr := s.service.CloseSession(ctx, info.ID); cerr != nil {
			logging.FromContext(ctx).Warn("discard rejected session", "session_id", info.ID, "error", cerr)
		}
		return core.SessionInfo{}, err
	}
	return loaded, nil
}

// recordEditFromForm splits review form values by field prefix.
func recordEditFromForm(form url.Values) core.RecordEdit {
	edit := core.RecordEdit{
		Fields:  make(map[string]string),
		Options: make(map[string]string),
		Labels:  make(map[string]string),
	}
	for name, values := range form {
		if len(values) == 0 {
			continue
		}
		value := normalizeNewlines(values[0])
		switch {
		case strings.HasPrefix(name, templates.FieldPrefix):
			edit.Fields[strings.TrimPrefix(name, templates.FieldPrefix)] = value
		case strings.HasPrefix(name, templates.OptionPrefix):
			edit.Options[strings.TrimPrefix(name, templates.OptionPrefix)] = value
		case strings.HasPrefix(name, templates.LabelPrefix):
			edit.Labels[strings.TrimPrefix(name, templates.LabelPrefix)] = value
		}
	}
	return edit
}

// normalizeNewlines undoes the CRLF line endings browsers submit for
// textarea content.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
