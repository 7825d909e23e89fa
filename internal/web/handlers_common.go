// Package web provides HTTP handlers for the review application.
// This file contains shared utilities used across handlers.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/MedQA/internal/config"
	"github.com/go-chi/chi/v5"
)

// maxValueBody bounds the JSON body of a single-field edit.
const maxValueBody = 1 << 20

// Query parameters carrying display heights.
var displayParams = map[string]string{
	"qh": config.DisplayQuestion,
	"oh": config.DisplayOption,
	"eh": config.DisplayEnrich,
	"lh": config.DisplayLabels,
}

// parseIntParam parses an integer query parameter with a default value.
// Values below min fall back to the default.
func parseIntParam(r *http.Request, name string, defaultVal, min int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < min {
		return defaultVal
	}
	return i
}

// parseIndex reads the 0-based {index} path parameter.
func parseIndex(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		return 0, errBadIndex
	}
	return i, nil
}

// displayFrom applies any qh/oh/eh/lh values to the configured defaults.
// Unparseable values are ignored; the rest are clamped to their range.
func displayFrom(values url.Values, base config.DisplayConfig) config.DisplayConfig {
	overrides := make(map[string]int)
	for param, name := range displayParams {
		raw := values.Get(param)
		if raw == "" {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil {
			overrides[name] = n
		}
	}
	if len(overrides) == 0 {
		return base
	}
	return base.Override(overrides)
}

// valueRequest is the body of single-field edits.
type valueRequest struct {
	Value *string `json:"value"`
}

// decodeValue reads {"value": "..."} from the request body.
func decodeValue(w http.ResponseWriter, r *http.Request) (string, error) {
	var req valueRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxValueBody))
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return "", errBadRequest
		}
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if req.Value == nil {
		return "", errBadRequest
	}
	return *req.Value, nil
}

// displayJSON is the API shape of the display settings.
func displayJSON(d config.DisplayConfig) map[string]any {
	bounds := config.DisplayBounds()
	out := make(map[string]any, len(bounds))
	for name, b := range bounds {
		out[name] = map[string]int{
			"height": d.Height(name),
			"min":    b.Min,
			"max":    b.Max,
			"step":   b.Step,
		}
	}
	return out
}
