package checker

import (
	"regexp"
	"strings"
)

// tagPattern matches an opening, closing or self-closing tag. Group 1 is the
// closing slash, group 2 the tag name.
var tagPattern = regexp.MustCompile(`<(/?)(\w+)(?:\s[^>]*)?/?>`)

// voidElements never take a closing tag.
var voidElements = map[string]struct{}{
	"img":    {},
	"br":     {},
	"hr":     {},
	"input":  {},
	"meta":   {},
	"link":   {},
	"area":   {},
	"base":   {},
	"col":    {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

type openTag struct {
	name string // lower-cased
	line int
}

// CheckMarkup pairs HTML open and close tags. Names compare
// case-insensitively; void elements and tags written as <x/> are ignored.
func CheckMarkup(file, content string) []Finding {
	var findings []Finding
	var stack []openTag

	line := 1
	counted := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(content, -1) {
		line += strings.Count(content[counted:m[0]], "\n")
		counted = m[0]

		closing := m[3] > m[2]
		name := strings.ToLower(content[m[4]:m[5]])

		if _, void := voidElements[name]; void || strings.HasSuffix(content[m[0]:m[1]], "/>") {
			continue
		}

		if !closing {
			stack = append(stack, openTag{name: name, line: line})
			continue
		}

		if len(stack) == 0 {
			findings = append(findings, newFinding(file, line, TagMismatch,
				"Unexpected closing tag </%s> without matching opening tag", name))
			continue
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.name != name {
			findings = append(findings, newFinding(file, line, TagMismatch,
				"Mismatched HTML tag: expected </%s> but found </%s> (opening tag at line %d)",
				top.name, name, top.line))
		}
	}

	for _, t := range stack {
		findings = append(findings, newFinding(file, t.line, UnclosedTag,
			"Unclosed HTML tag <%s> - missing </%s>", t.name, t.name))
	}

	return findings
}
