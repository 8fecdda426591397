package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Position locates a diagnostic in a source file. Line 0 refers to the whole
// file and Column 0 means the column is unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

// Diagnostic is a located message rendered in compiler style:
// file:line:column: kind: message, optionally followed by source context.
type Diagnostic struct {
	Position     Position
	Kind         string // finding category or "error"
	Message      string
	Context      []string // source lines starting at ContextStart
	ContextStart int
	Hint         string
}

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))

	highlightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#50FA7B"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))
)

// ColorMode controls when output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var colorMode = ColorAuto

// SetColorMode changes when styling is applied. Unknown values fall back to auto.
func SetColorMode(mode ColorMode) {
	switch mode {
	case ColorAlways, ColorNever:
		colorMode = mode
	default:
		colorMode = ColorAuto
	}
}

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func colorEnabled() bool {
	switch colorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return isTTY()
}

func applyStyle(style lipgloss.Style, text string) string {
	if colorEnabled() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a relative path from the current working directory
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// FormatDiagnostic renders d in an IDE-parseable form, with source context
// and hint when present.
func FormatDiagnostic(d Diagnostic) string {
	var output strings.Builder

	if d.Position.File != "" {
		output.WriteString(applyStyle(filePathStyle, formatLocation(d.Position)))
		output.WriteString(" ")
	}

	kind := d.Kind
	if kind == "" {
		kind = "error"
	}
	output.WriteString(applyStyle(errorStyle, kind+":"))
	output.WriteString(" ")
	output.WriteString(d.Message)
	output.WriteString("\n")

	if len(d.Context) > 0 && d.Position.Line > 0 {
		output.WriteString(renderContext(d))
	}

	if d.Hint != "" {
		output.WriteString(applyStyle(hintStyle, "hint: "))
		output.WriteString(d.Hint)
		output.WriteString("\n")
	}

	return output.String()
}

func formatLocation(pos Position) string {
	path := ToRelativePath(pos.File)
	switch {
	case pos.Line <= 0:
		return path + ":"
	case pos.Column <= 0:
		return fmt.Sprintf("%s:%d:", path, pos.Line)
	default:
		return fmt.Sprintf("%s:%d:%d:", path, pos.Line, pos.Column)
	}
}

// renderContext renders source lines with a gutter, highlighting the
// diagnostic's line and pointing at its column when known.
func renderContext(d Diagnostic) string {
	var output strings.Builder

	start := d.ContextStart
	if start < 1 {
		start = 1
	}
	lastLine := start + len(d.Context) - 1
	width := len(fmt.Sprintf("%d", lastLine))

	for i, line := range d.Context {
		lineNum := start + i

		output.WriteString(applyStyle(lineNumberStyle, fmt.Sprintf("%*d", width, lineNum)))
		output.WriteString(" | ")

		if lineNum != d.Position.Line {
			output.WriteString(applyStyle(contextLineStyle, line))
			output.WriteString("\n")
			continue
		}

		col := d.Position.Column
		if col > 0 && col <= len(line) {
			output.WriteString(applyStyle(contextLineStyle, line[:col-1]))
			output.WriteString(applyStyle(highlightStyle, line[col-1:col]))
			output.WriteString(applyStyle(contextLineStyle, line[col:]))
			output.WriteString("\n")
			output.WriteString(strings.Repeat(" ", width+3+col-1))
			output.WriteString(applyStyle(errorStyle, "^"))
		} else {
			output.WriteString(applyStyle(highlightStyle, line))
		}
		output.WriteString("\n")
	}

	return output.String()
}

// ContextLines returns up to radius lines either side of line (1-based) from
// source, and the line number of the first returned line.
func ContextLines(source []string, line, radius int) ([]string, int) {
	if line < 1 || line > len(source) {
		return nil, 0
	}
	first := max(line-radius, 1)
	last := min(line+radius, len(source))
	return source[first-1 : last], first
}

// FormatFileHeader formats the heading printed above a file's findings
func FormatFileHeader(path string) string {
	return applyStyle(filePathStyle, "📄 "+ToRelativePath(path)+":")
}

// FormatFinding formats one finding as an indented list item. Line 0 is
// shown without a line prefix.
func FormatFinding(line int, message, category string) string {
	var output strings.Builder
	output.WriteString("  ")
	output.WriteString(applyStyle(warningStyle, "⚠ "))
	if line > 0 {
		output.WriteString(applyStyle(lineNumberStyle, fmt.Sprintf("Line %d: ", line)))
	}
	output.WriteString(message)
	if category != "" {
		output.WriteString(" ")
		output.WriteString(applyStyle(categoryStyle, "["+category+"]"))
	}
	return output.String()
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatErrorMessage formats a simple error message (for stderr output)
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatProgressMessage formats a progress/activity message
func FormatProgressMessage(message string) string {
	progressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F1FA8C"))

	return applyStyle(progressStyle, "🔨 ") + message
}

// FormatCountMessage formats a count/numeric status message
func FormatCountMessage(message string) string {
	return applyStyle(infoStyle, "📊 ") + message
}

// FormatVerboseMessage formats verbose debugging output
func FormatVerboseMessage(message string) string {
	verboseStyle := lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#6272A4"))

	return applyStyle(verboseStyle, "🔍 ") + message
}
