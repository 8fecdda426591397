package checker

import (
	"regexp"
	"strings"
)

var blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

// CheckStylesheet reports declarations inside a rule body that do not end
// with a semicolon.
//
// Comments are removed before lines are counted, so a multi-line comment
// shifts the reported line numbers of everything after it. Only one level of
// rule body is tracked: a nested block closes the outer one.
func CheckStylesheet(file, content string) []Finding {
	var findings []Finding

	stripped := blockComment.ReplaceAllString(content, "")

	inRule := false
	ruleStart := 0
	for i, raw := range strings.Split(stripped, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "/*") {
			continue
		}

		switch {
		case strings.Contains(line, "{"):
			inRule = true
			ruleStart = i + 1
		case strings.Contains(line, "}"):
			inRule = false
		case inRule && strings.Contains(line, ":") && !strings.HasSuffix(line, ";"):
			findings = append(findings, newFinding(file, i+1, MissingSemicolon,
				"CSS property declaration should end with semicolon (rule opened at line %d)", ruleStart))
		}
	}

	return findings
}
