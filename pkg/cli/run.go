package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/githubnext/synchk/pkg/checker"
	"github.com/githubnext/synchk/pkg/config"
	"github.com/githubnext/synchk/pkg/console"
)

var version = "dev"

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// ReportOptionsFromConfig copies the output settings of cfg.
func ReportOptionsFromConfig(cfg *config.Config) ReportOptions {
	return ReportOptions{
		Format:  cfg.Format,
		Context: cfg.Context,
		Verbose: cfg.Verbose,
	}
}

// RunCheck checks target, writes the report to out and returns ErrFindings
// when anything was found.
func RunCheck(out io.Writer, target string, opts CheckOptions, report ReportOptions) error {
	findings, err := checkWithProgress(target, opts, report)
	if err != nil {
		return err
	}

	if err := WriteReport(out, findings, report); err != nil {
		return err
	}

	if len(findings) > 0 {
		return ErrFindings
	}
	return nil
}

// checkWithProgress runs a check behind a spinner. The spinner is kept off
// in verbose mode and for machine-readable formats.
func checkWithProgress(target string, opts CheckOptions, report ReportOptions) ([]checker.Finding, error) {
	spinner := console.NewSpinner(fmt.Sprintf("Scanning %s...", target))
	showSpinner := !opts.Verbose && (report.Format == "" || report.Format == "text")
	if showSpinner {
		spinner.Start()
		defer spinner.Stop()
	}

	files, err := ResolveTarget(target, opts)
	if err != nil {
		return nil, err
	}

	if showSpinner {
		spinner.UpdateMessage(fmt.Sprintf("Checking %d file(s)...", len(files)))
	}
	return CheckFiles(files, opts.Workers), nil
}

// FormatConfigError renders err for stderr. Located config-file problems are
// shown as diagnostics with the offending source line.
func FormatConfigError(err error) string {
	var fileErr *config.FileError
	if !errors.As(err, &fileErr) {
		return console.FormatErrorMessage(err.Error())
	}

	var output strings.Builder
	for _, problem := range fileErr.Problems {
		context, start := console.ContextLines(fileErr.Source, problem.Line, contextRadius)
		output.WriteString(console.FormatDiagnostic(console.Diagnostic{
			Position:     console.Position{File: fileErr.File, Line: problem.Line, Column: problem.Column},
			Kind:         "error",
			Message:      problem.Message,
			Context:      context,
			ContextStart: start,
			Hint:         hintFor(problem.Message),
		}))
	}
	return strings.TrimRight(output.String(), "\n")
}

func hintFor(message string) string {
	if strings.HasPrefix(message, "unknown key") {
		return "supported keys are extensions, exclude, skip_hidden, workers, format, color, context and verbose"
	}
	return ""
}
