package config

import (
	"regexp"
	"strconv"
	"strings"
)

var yamlLinePattern = regexp.MustCompile(`line (\d+): (.*)`)

// yamlErrorPosition extracts the line and message from a yaml.v3 decode
// error. Both the single form "yaml: line 3: ..." and the multi-line
// "yaml: unmarshal errors:" form are understood; the first line wins. Errors
// without position information return line 0 and the original text.
func yamlErrorPosition(err error) (int, string) {
	text := err.Error()

	for _, part := range strings.Split(text, "\n") {
		match := yamlLinePattern.FindStringSubmatch(part)
		if match == nil {
			continue
		}
		line, convErr := strconv.Atoi(match[1])
		if convErr != nil {
			continue
		}
		return line, strings.TrimSpace(match[2])
	}

	return 0, text
}
