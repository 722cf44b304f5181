package jsonutil

import (
	"bytes"
	"encoding/json"
)

// ExtractFirstObject returns the first balanced top-level JSON object
// substring in text, or "" when no complete object is found. The scan walks
// left to right counting brace depth: the first '{' at depth 0 marks the
// start, and the object ends when depth returns to 0. Trailing content is
// ignored.
//
// The scan is quote-unaware: a string value containing a literal '}' closes
// the object early (e.g. `{"a":"}"}` stops at the embedded brace). Callers
// that must handle such payloads should use ExtractFirstObjectStrict.
func ExtractFirstObject(text string) string {
	start := -1
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

// ExtractFirstObjectStrict behaves like ExtractFirstObject but skips braces
// that appear inside JSON string literals, honoring backslash escapes.
func ExtractFirstObjectStrict(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
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
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

// IsObject reports whether text parses as a JSON object.
func IsObject(text string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return false
	}
	return m != nil
}

// MarshalNoEscapeIndent encodes v as indented JSON without escaping <, >, &
// into unicode sequences.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
