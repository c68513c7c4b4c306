package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be located in the input.
var ErrNoJSON = errors.New("parser: no JSON object found in input")

// ExtractJSON locates the JSON object embedded in model output.
//
// The input may be raw JSON, JSON wrapped in markdown code fences, or
// JSON surrounded by prose. Extraction strips fence markers, then takes
// the substring between the first '{' and the last '}'. The result is
// not validated; pair with ParseJSON.
func ExtractJSON(s string) (string, error) {
	s = StripFences(s)

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

// StripFences removes leading and trailing markdown code-fence markers
// (``` with an optional language tag) from the input.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// Drop the language tag on the opening fence, e.g. "json".
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			first := strings.TrimSpace(s[:nl])
			if first != "" && !strings.ContainsAny(first, "{}[]") {
				s = s[nl+1:]
			}
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseJSON parses a single JSON object using generics.
func ParseJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &result, nil
}

// ExtractAndParse combines ExtractJSON and ParseJSON: it locates the
// JSON object in model output and unmarshals it into T.
func ExtractAndParse[T any](s string) (*T, error) {
	raw, err := ExtractJSON(s)
	if err != nil {
		return nil, err
	}
	return ParseJSON[T]([]byte(raw))
}
