package flow

import "strings"

// Label width limits. Condition and expression text gets more room than
// general statement labels.
const (
	labelWidth = 40
	condWidth  = 60
)

// structural characters are replaced with numeric character references so
// Mermaid cannot misread them as shape or link syntax. The replacements
// themselves contain no structural characters, which is what makes
// Sanitize idempotent.
var structuralRefs = strings.NewReplacer(
	"(", "#40;",
	")", "#41;",
	"{", "#123;",
	"}", "#125;",
	"[", "#91;",
	"]", "#93;",
	"<", "#60;",
	">", "#62;",
)

// Sanitize prepares raw source text for embedding in a diagram label.
// Double quotes become single quotes, line breaks collapse into single
// spaces, structural characters become numeric character references, and
// results longer than maxLen are truncated with an ellipsis marker.
// Pure and total: empty input yields an empty string.
func Sanitize(raw string, maxLen int) string {
	s := strings.ReplaceAll(raw, `"`, "'")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)
	s = structuralRefs.Replace(s)

	if maxLen > 3 && len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}
