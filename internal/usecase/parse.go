package usecase

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON indicates a reasoning response contained no parseable object.
// Callers treat it as a soft failure and degrade to typed defaults.
var ErrNoJSON = errors.New("no JSON object in response")

// ExtractJSON locates the first JSON object embedded in raw model output and
// unmarshals it into v. Markdown fences and surrounding prose are tolerated;
// a missing or malformed object yields ErrNoJSON.
func ExtractJSON(raw string, v any) error {
	text := stripFences(raw)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ErrNoJSON
	}

	object, ok := balancedObject(text[start:])
	if !ok {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(object), v); err != nil {
		return ErrNoJSON
	}

	return nil
}

// stripFences removes markdown code-block wrappers. Models often fence JSON
// in ```json blocks even when told not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}

// balancedObject returns the prefix of s that forms one complete JSON
// object, honoring string literals and escapes.
func balancedObject(s string) (string, bool) {
	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

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
				return s[:i+1], true
			}
		}
	}

	return "", false
}
