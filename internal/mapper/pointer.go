package mapper

import (
	"errors"
	"strconv"
	"strings"
)

// decodeJSONPointer splits an RFC 6901 pointer such as "/exclude/0" into
// unescaped segments. "" and "/" both address the document root.
func decodeJSONPointer(ptr string) ([]string, error) {
	if ptr == "" || ptr == "/" {
		return []string{}, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, errors.New("invalid json pointer: must start with '/'")
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		parts[i] = p
	}
	return parts, nil
}

// sequenceIndex parses segment as a non-negative array index.
func sequenceIndex(segment string) (int, bool) {
	if segment == "" || segment[0] == '-' || segment[0] == '+' {
		return 0, false
	}
	i, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return i, true
}
