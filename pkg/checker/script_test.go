package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(findings []Finding) []int {
	out := make([]int, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Line)
	}
	return out
}

func TestCheckScript(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{name: "declaration without semicolon", content: "let x = 1", want: []int{1}},
		{name: "declaration with semicolon", content: "let x = 1;", want: []int{}},
		{name: "const opening array", content: "const a = [", want: []int{1}},
		{name: "return without semicolon", content: "function f() {\n  return result\n}", want: []int{2}},
		{name: "return opening object", content: "return {", want: []int{}},
		{name: "console call ends with paren", content: "console.log('x')", want: []int{}},
		{name: "assignment ending with comma", content: "items = [1, 2],", want: []int{}},
		{name: "assignment ending with call", content: "x = foo(1)", want: []int{}},
		{name: "plain call is not a statement start", content: "foo(bar)", want: []int{}},
		{name: "line comment", content: "// let x = 1", want: []int{}},
		{name: "block comment", content: "/* let x = 1", want: []int{}},
		{name: "keyword prefix still matches", content: "letter = 5", want: []int{1}},
		{name: "carriage return is trimmed", content: "var y = 2\r\nvar z = 3;\r\n", want: []int{1}},
		{name: "blank lines keep numbering", content: "\n\n  var q = 1\n", want: []int{3}},
		{name: "comparison looks like assignment", content: "a == b", want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := CheckScript("app.js", tt.content)
			assert.Equal(t, tt.want, lines(findings))
			for _, f := range findings {
				assert.Equal(t, MissingSemicolon, f.Category)
				assert.Equal(t, "Missing semicolon at end of statement", f.Message)
			}
		})
	}
}

func TestCheckPHP(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{name: "variable assignment", content: "<?php\n$x = 5\n", want: []int{2}},
		{name: "terminated assignment", content: "<?php\n$x = 5;\n", want: []int{}},
		{name: "echo without semicolon", content: "echo 'hi'", want: []int{1}},
		{name: "print opening block", content: "print {", want: []int{}},
		{name: "trailing paren is not a terminator", content: "$x = foo(1)", want: []int{1}},
		{name: "trailing comma is not a terminator", content: "$list = [1,", want: []int{1}},
		{name: "javascript keywords are ignored", content: "let x = 1", want: []int{}},
		{name: "open tag without close tag is valid", content: "<?php\nfunction f() {\n    return 1;\n}\n", want: []int{}},
		{name: "commented statement", content: "// echo 'x'", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lines(CheckPHP("index.php", tt.content)))
		})
	}
}

func TestCheckScript_ExampleFile(t *testing.T) {
	content := `function processData(data) {
    let result = [];

    for (let i = 0; i < data.length; i++) {
        if (data[i].active) {
            result.push({
                id: data[i].id,
                value: data[i].value
            });
        }
    }

    return result;
}

const total = items
    .map(x => x.price)
`
	findings := CheckScript("example.js", content)

	require.Len(t, findings, 1)
	assert.Equal(t, 16, findings[0].Line)
}
