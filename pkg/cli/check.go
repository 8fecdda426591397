package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/githubnext/synchk/pkg/checker"
	"github.com/githubnext/synchk/pkg/config"
	"github.com/githubnext/synchk/pkg/console"
	"github.com/githubnext/synchk/pkg/constants"
	"github.com/sourcegraph/conc/pool"
)

// ErrFindings is returned by a run that reported at least one finding.
var ErrFindings = errors.New("syntax errors found")

// CheckOptions controls which files a directory walk considers and how
// many are checked at once.
type CheckOptions struct {
	Extensions []string
	Exclude    []string
	SkipHidden bool
	Workers    int
	Verbose    bool
}

// DefaultCheckOptions returns the options used when no configuration is given.
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		Extensions: constants.DefaultExtensions,
		SkipHidden: true,
		Workers:    constants.MaxConcurrentChecks,
	}
}

// CheckOptionsFromConfig copies the walk and concurrency settings of cfg.
func CheckOptionsFromConfig(cfg *config.Config) CheckOptions {
	return CheckOptions{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		SkipHidden: cfg.SkipHidden,
		Workers:    cfg.Workers,
		Verbose:    cfg.Verbose,
	}
}

// eligible reports whether a file name ends with one of the configured extensions.
func (o CheckOptions) eligible(name string) bool {
	for _, ext := range o.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// skipDir reports whether a directory below the walk root is left out.
func (o CheckOptions) skipDir(name string) bool {
	if o.SkipHidden && strings.HasPrefix(name, ".") {
		return true
	}
	return slices.Contains(o.Exclude, name)
}

// CollectFiles walks root and returns the eligible files in lexical order.
// Directories that cannot be read are skipped.
func CollectFiles(root string, opts CheckOptions) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if opts.Verbose {
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Skipping %s: %v", path, err)))
			}
			return nil
		}

		if d.IsDir() {
			if path != root && opts.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.eligible(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// CheckTarget checks a single file, or every eligible file below a
// directory. A path that does not exist is checked as a file so it yields a
// file_not_found finding.
func CheckTarget(target string, opts CheckOptions) ([]checker.Finding, error) {
	files, err := ResolveTarget(target, opts)
	if err != nil {
		return nil, err
	}
	return CheckFiles(files, opts.Workers), nil
}

// ResolveTarget returns the files a check of target covers: the eligible
// files below a directory, or target itself otherwise.
func ResolveTarget(target string, opts CheckOptions) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return []string{target}, nil
	}

	files, err := CollectFiles(target, opts)
	if err != nil {
		return nil, err
	}

	if opts.Verbose {
		fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("Checking %d file(s) in %s with %d worker(s)", len(files), target, max(opts.Workers, 1))))
	}
	return files, nil
}

// fileResult is the outcome of checking the file at position index.
type fileResult struct {
	index    int
	findings []checker.Finding
}

// CheckFiles checks files with at most workers goroutines. Findings are
// returned in the order of files regardless of completion order.
func CheckFiles(files []string, workers int) []checker.Finding {
	if workers <= 1 || len(files) <= 1 {
		var findings []checker.Finding
		for _, file := range files {
			findings = append(findings, checker.CheckFile(file)...)
		}
		return findings
	}

	p := pool.NewWithResults[fileResult]().WithMaxGoroutines(workers)
	for i, file := range files {
		p.Go(func() fileResult {
			return fileResult{index: i, findings: checker.CheckFile(file)}
		})
	}

	perFile := make([][]checker.Finding, len(files))
	for _, result := range p.Wait() {
		perFile[result.index] = result.findings
	}

	var findings []checker.Finding
	for _, fileFindings := range perFile {
		findings = append(findings, fileFindings...)
	}
	return findings
}
