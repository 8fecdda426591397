package checker

import (
	"regexp"
	"strings"
)

// statementRule is a line heuristic for languages that terminate statements
// with a semicolon. A line that looks like the start of a statement must end
// with one of the terminator characters.
type statementRule struct {
	start       *regexp.Regexp
	terminators string
}

var (
	scriptRule = statementRule{
		start:       regexp.MustCompile(`^\s*(let|const|var|\w+\s*=|return|console\.)`),
		terminators: ";{},)",
	}

	phpRule = statementRule{
		start:       regexp.MustCompile(`^\s*(echo|print|return|\$\w+\s*=)`),
		terminators: ";{}",
	}
)

// CheckScript reports JavaScript statement lines that do not end with a
// semicolon. Multi-line statements are not understood, so both misses and
// false positives are expected.
func CheckScript(file, content string) []Finding {
	return scriptRule.check(file, content)
}

// CheckPHP applies the statement heuristic with PHP keywords. A file that
// opens with <?php and never closes it is valid and is not reported.
func CheckPHP(file, content string) []Finding {
	return phpRule.check(file, content)
}

func (r statementRule) check(file, content string) []Finding {
	var findings []Finding

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isCommentLine(line) {
			continue
		}
		if !r.start.MatchString(line) || r.terminated(line) {
			continue
		}
		findings = append(findings, newFinding(file, i+1, MissingSemicolon,
			"Missing semicolon at end of statement"))
	}

	return findings
}

func (r statementRule) terminated(line string) bool {
	last := line[len(line)-1]
	return strings.IndexByte(r.terminators, last) >= 0
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*")
}
