package service

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```[A-Za-z]*\\s*(.*?)\\s*```")

// stripCodeFences убирает markdown-обертку ```json ... ```, если модель ее добавила.
func stripCodeFences(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// extractJSONObject возвращает текст от первой '{' до последней '}'.
func extractJSONObject(s string) (string, bool) {
	return extractBetween(stripCodeFences(s), "{", "}")
}

// extractJSONArray возвращает текст от первой '[' до последней ']'.
func extractJSONArray(s string) (string, bool) {
	return extractBetween(stripCodeFences(s), "[", "]")
}

func extractBetween(s, open, closing string) (string, bool) {
	start := strings.Index(s, open)
	end := strings.LastIndex(s, closing)
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
