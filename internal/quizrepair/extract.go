package quizrepair

import (
	"encoding/json"
	"errors"
	"strings"

	"edu-quiz/internal/domain"
)

var errNoJSONObject = errors.New("no JSON object found in text")

// stripThinking removes <think>...</think> blocks some reasoning models prepend to their output.
func stripThinking(text string) string {
	for {
		start := strings.Index(text, "<think>")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start:], "</think>")
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+end+len("</think>"):]
	}
}

// ExtractJSON locates the first JSON object embedded in free text.
//
// Every '{' is tried as a start position and scanned to its matching '}'
// with string literals and escapes respected; the first span that parses
// as JSON wins. A '{' that never closes ends the scan, since any later
// object is nested inside it. When no balanced span parses, the span from the first '{'
// to the last '}' is tried as a last resort.
func ExtractJSON(text string) (string, error) {
	text = stripThinking(text)

	for start := strings.IndexByte(text, '{'); start != -1; {
		end, ok := matchBrace(text, start)
		if !ok {
			// Every later '{' sits inside this unclosed span, so a nested
			// object must not stand in for a truncated document.
			break
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}

	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first != -1 && last > first {
		candidate := text[first : last+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	return "", domain.NewMalformedResponseError(errNoJSONObject)
}

// matchBrace returns the index of the '}' closing the '{' at start.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
