package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/githubnext/synchk/pkg/checker"
	"github.com/githubnext/synchk/pkg/console"
	"gopkg.in/yaml.v3"
)

// contextRadius is the number of source lines shown either side of a finding.
const contextRadius = 1

// Report is the machine-readable result of a run.
type Report struct {
	Findings []checker.Finding `json:"findings" yaml:"findings"`
	Summary  checker.Summary   `json:"summary" yaml:"summary"`
}

// NewReport orders findings by file then line and summarizes them.
func NewReport(findings []checker.Finding) Report {
	ordered := make([]checker.Finding, 0, len(findings))
	for _, group := range checker.GroupByFile(findings) {
		ordered = append(ordered, group.Findings...)
	}
	return Report{Findings: ordered, Summary: checker.Summarize(findings)}
}

// ReportOptions controls how a report is written.
type ReportOptions struct {
	Format  string // text, json or yaml
	Context bool   // show source lines around each finding (text only)
	Verbose bool   // append the per-category table (text only)

	// Source returns the lines of file for context rendering. Defaults to
	// reading the file from disk.
	Source func(file string) []string
}

// WriteReport writes findings to w in the requested format.
func WriteReport(w io.Writer, findings []checker.Finding, opts ReportOptions) error {
	report := NewReport(findings)

	switch opts.Format {
	case "", "text":
		_, err := io.WriteString(w, renderText(report, opts))
		return err
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown report format '%s'", opts.Format)
	}
}

func renderText(report Report, opts ReportOptions) string {
	var output strings.Builder

	if report.Summary.Total == 0 {
		output.WriteString(console.FormatSuccessMessage("No syntax errors found!"))
		output.WriteString("\n")
		return output.String()
	}

	output.WriteString(console.FormatErrorMessage(fmt.Sprintf("Found %d syntax error(s) in %d file(s):", report.Summary.Total, report.Summary.Files)))
	output.WriteString("\n\n")

	source := opts.Source
	if source == nil {
		source = cachedSource(readSourceLines)
	}

	for _, group := range checker.GroupByFile(report.Findings) {
		output.WriteString(console.FormatFileHeader(group.File))
		output.WriteString("\n")
		for _, f := range group.Findings {
			if opts.Context && f.Line > 0 {
				output.WriteString(renderFindingContext(f, source(f.File)))
				continue
			}
			output.WriteString(console.FormatFinding(f.Line, f.Message, string(f.Category)))
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if opts.Verbose {
		output.WriteString(renderCategoryTable(report.Summary))
	}

	return output.String()
}

func renderFindingContext(f checker.Finding, lines []string) string {
	context, start := console.ContextLines(lines, f.Line, contextRadius)
	return console.FormatDiagnostic(console.Diagnostic{
		Position:     console.Position{File: f.File, Line: f.Line},
		Kind:         string(f.Category),
		Message:      f.Message,
		Context:      context,
		ContextStart: start,
	})
}

func renderCategoryTable(summary checker.Summary) string {
	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, string(category))
	}
	slices.Sort(categories)

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{category, strconv.Itoa(summary.ByCategory[checker.Category(category)])})
	}

	return console.RenderTable(console.TableConfig{
		Title:    "Findings by category",
		Headers:  []string{"Category", "Count"},
		Rows:     rows,
		TotalRow: []string{"Total", strconv.Itoa(summary.Total)},
	})
}

func readSourceLines(file string) []string {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

// cachedSource memoizes load so each file is read once per report.
func cachedSource(load func(string) []string) func(string) []string {
	cache := make(map[string][]string)
	return func(file string) []string {
		lines, ok := cache[file]
		if !ok {
			lines = load(file)
			cache[file] = lines
		}
		return lines
	}
}
