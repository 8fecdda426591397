// Package checker implements lightweight syntax checks for web source files:
// bracket matching for every file and a format-specific scan chosen by file
// extension. Every check is a pure function of the file name and content.
package checker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"
)

// Scanner inspects the content of one file and returns its findings.
type Scanner func(file, content string) []Finding

var scanners = map[string]Scanner{
	".php":  CheckPHP,
	".js":   CheckScript,
	".css":  CheckStylesheet,
	".html": CheckMarkup,
	".htm":  CheckMarkup,
	".json": CheckJSON,
}

// SupportedExtensions returns the extensions that have a format-specific
// scanner, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(scanners))
	for ext := range scanners {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// ScannerFor returns the format-specific scanner for path. Extensions match
// case-sensitively.
func ScannerFor(path string) (Scanner, bool) {
	scan, ok := scanners[filepath.Ext(path)]
	return scan, ok
}

// CheckContent runs the bracket matcher and, when the extension of file has
// one, the format scanner. Findings are ordered by line.
func CheckContent(file, content string) []Finding {
	findings := CheckBrackets(file, content)
	if scan, ok := ScannerFor(file); ok {
		findings = append(findings, scan(file, content)...)
	}
	sortByLine(findings)
	return findings
}

// CheckFile reads path and checks it. A missing file or content that is not
// valid UTF-8 produces a single file-level finding and nothing else.
func CheckFile(path string) []Finding {
	data, err := os.ReadFile(path)
	if err != nil {
		message := "File not found"
		if !errors.Is(err, fs.ErrNotExist) {
			message = fmt.Sprintf("File could not be read: %v", err)
		}
		return []Finding{newFinding(path, 0, FileNotFound, "%s", message)}
	}

	if !utf8.Valid(data) {
		return []Finding{newFinding(path, 0, EncodingError, "File encoding error - unable to read as UTF-8")}
	}

	return CheckContent(path, string(data))
}
