package services

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var (
	narrowJSONPattern = regexp.MustCompile(`(?s)\{.*?\}`)
	wideJSONPattern   = regexp.MustCompile(`(?s)\{.*\}`)
	trailingComma     = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSONObject returns the first JSON object found in free-form model
// output. The shortest {...} candidate is tried first, then the span from the
// first '{' to the last '}'. Keys are not validated.
func ExtractJSONObject(text string) (map[string]any, error) {
	var firstErr error

	for _, pattern := range []*regexp.Regexp{narrowJSONPattern, wideJSONPattern} {
		candidate := pattern.FindString(text)
		if candidate == "" {
			continue
		}

		obj, err := decodeObject(candidate)
		if err == nil {
			return obj, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		return nil, fmt.Errorf("%w: no braces in response", ErrResponseParse)
	}
	return nil, fmt.Errorf("%w: %v", ErrResponseParse, firstErr)
}

func decodeObject(candidate string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj, nil
	}

	cleaned := trailingComma.ReplaceAllString(candidate, "$1")
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
