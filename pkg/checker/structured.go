package checker

import (
	"encoding/json"
	"errors"
	"strings"
)

// unexpectedEOF is the decoder message for input that ends mid-document.
const unexpectedEOF = "unexpected end of JSON input"

// CheckJSON decodes the whole content strictly and reports the first syntax
// error, if any. An empty file yields nothing.
func CheckJSON(file, content string) []Finding {
	if content == "" {
		return nil
	}

	// RawMessage keeps the strict syntax check without converting numbers,
	// so values outside float64 range such as 1e999 stay valid.
	var doc json.RawMessage
	err := json.Unmarshal([]byte(content), &doc)
	if err == nil {
		return nil
	}

	line := 1
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line = lineAtOffset(content, syntaxErr.Offset, syntaxErr.Error() == unexpectedEOF)
	}

	return []Finding{newFinding(file, line, JSONSyntaxError, "JSON syntax error: %s", err.Error())}
}

// lineAtOffset returns the 1-based line of the byte the decoder stopped on.
// The decoder reports the number of bytes read, so the offending byte is the
// one just before offset. At end of input the position is after the last
// byte, which is on a new line when the content ends with a newline.
func lineAtOffset(content string, offset int64, atEOF bool) int {
	end := int(offset)
	if !atEOF {
		end--
	}
	end = max(end, 0)
	end = min(end, len(content))
	return strings.Count(content[:end], "\n") + 1
}
