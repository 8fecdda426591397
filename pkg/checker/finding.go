package checker

import (
	"cmp"
	"fmt"
	"slices"
)

// Category classifies a Finding. The string values are stable and appear in
// machine-readable reports.
type Category string

const (
	BracketMismatch  Category = "bracket_mismatch"
	UnclosedBracket  Category = "unclosed_bracket"
	MissingSemicolon Category = "missing_semicolon"
	TagMismatch      Category = "tag_mismatch"
	UnclosedTag      Category = "unclosed_tag"
	JSONSyntaxError  Category = "json_syntax_error"
	FileNotFound     Category = "file_not_found"
	EncodingError    Category = "encoding_error"
)

// Finding is a single syntax defect. Line is 1-based; 0 means the finding
// applies to the file as a whole.
type Finding struct {
	File     string   `json:"file" yaml:"file"`
	Line     int      `json:"line" yaml:"line"`
	Message  string   `json:"message" yaml:"message"`
	Category Category `json:"type" yaml:"type"`
}

func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: %s [%s]", f.File, f.Line, f.Message, f.Category)
	}
	return fmt.Sprintf("%s: %s [%s]", f.File, f.Message, f.Category)
}

func newFinding(file string, line int, category Category, format string, args ...any) Finding {
	return Finding{
		File:     file,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
		Category: category,
	}
}

// sortByLine orders findings by line, keeping discovery order for ties.
func sortByLine(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Compare(a.Line, b.Line)
	})
}
