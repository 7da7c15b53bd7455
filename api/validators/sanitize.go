package validators

import "strings"

// SanitizeQuery trims a free-text query parameter, collapses inner runs of
// whitespace and caps it at maxLen runes. maxLen <= 0 disables the cap.
func SanitizeQuery(input string, maxLen int) string {
	collapsed := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 {
		return collapsed
	}
	runes := []rune(collapsed)
	if len(runes) <= maxLen {
		return collapsed
	}
	return strings.TrimSpace(string(runes[:maxLen]))
}
