package templates

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/MedQA/internal/config"
)

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

// ReviewURL links to question q (1-based) keeping the display settings.
func ReviewURL(sessionID string, q int, d config.DisplayConfig) string {
	v := url.Values{}
	v.Set("q", strconv.Itoa(q))
	v.Set("qh", strconv.Itoa(d.QuestionHeight))
	v.Set("oh", strconv.Itoa(d.OptionHeight))
	v.Set("eh", strconv.Itoa(d.EnrichHeight))
	v.Set("lh", strconv.Itoa(d.LabelsHeight))
	return "/sessions/" + url.PathEscape(sessionID) + "?" + v.Encode()
}

// joinVocabulary renders a tag list the way reviewers type it back.
func joinVocabulary(tags []string) string {
	return strings.Join(tags, ", ")
}
