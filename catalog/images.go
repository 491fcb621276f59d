package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

/*
ImageList is the images field of a product.

The API is not consistent about it. Depending on how a product was
written it arrives as:
- a JSON array: ["a.jpg","b.jpg"]
- a JSON string holding a JSON array: "[\"a.jpg\"]"
- a Postgres TEXT[] literal: "{a.jpg,\"b c.jpg\"}"
- a bare string: "a.jpg"
- null or empty

All of them decode into a plain list of non-empty URLs.
*/
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = ImageList{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var arr []string
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return fmt.Errorf("images: %w", err)
		}
		*l = clean(arr)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("images: %w", err)
		}
		*l = ParseImages(s)
	default:
		return fmt.Errorf("images: unsupported value %s", trimmed)
	}
	return nil
}

func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// ParseImages decodes one string-encoded image list.
func ParseImages(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}

	if s[0] == '[' {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return clean(arr)
		}
	}
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return parsePGArray(s[1 : len(s)-1])
	}
	return []string{s}
}

// parsePGArray splits the body of a one-dimensional Postgres array literal.
func parsePGArray(body string) []string {
	out := []string{}
	var cur strings.Builder
	quoted, inQuotes, escaped := false, false, false

	flush := func() {
		v := cur.String()
		if !quoted {
			v = strings.TrimSpace(v)
			if strings.EqualFold(v, "NULL") {
				v = ""
			}
		}
		if v != "" {
			out = append(out, v)
		}
		cur.Reset()
		quoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
