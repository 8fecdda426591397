package checker

// closers maps each opening delimiter to the delimiter that closes it.
var closers = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
}

// delimiter is an open bracket waiting for its partner.
type delimiter struct {
	open   rune
	line   int
	offset int // character offset into the content
}

// CheckBrackets matches (), [] and {} across the whole content. The scan is
// purely lexical: brackets inside strings and comments count like any other.
func CheckBrackets(file, content string) []Finding {
	var findings []Finding
	var stack []delimiter

	line := 1
	offset := 0
	for _, ch := range content {
		switch ch {
		case '\n':
			line++
		case '(', '[', '{':
			stack = append(stack, delimiter{open: ch, line: line, offset: offset})
		case ')', ']', '}':
			if len(stack) == 0 {
				findings = append(findings, newFinding(file, line, BracketMismatch,
					"Unexpected closing bracket %q without matching opening bracket", string(ch)))
				break
			}
			// A mismatch still consumes the open entry.
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if expected := closers[top.open]; ch != expected {
				findings = append(findings, newFinding(file, line, BracketMismatch,
					"Mismatched bracket: expected %q but found %q (opening bracket at line %d)",
					string(expected), string(ch), top.line))
			}
		}
		offset++
	}

	for _, d := range stack {
		findings = append(findings, newFinding(file, d.line, UnclosedBracket,
			"Unclosed bracket %q - missing %q", string(d.open), string(closers[d.open])))
	}

	return findings
}
