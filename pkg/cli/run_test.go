package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/githubnext/synchk/pkg/config"
	"github.com/spf13/viper"
)

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"ok/app.js":     "const a = 1;\n",
		"ok/data.json":  "{\"a\": [1, 2]}\n",
		"bad/app.js":    "function f() {\n  return 1\n}\n",
		"bad/site.css":  "a {\n  color: red\n}\n",
		"bad/page.html": "<ul>\n<li>one</li>\n",
	})

	t.Run("clean directory", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheck(&out, filepath.Join(dir, "ok"), DefaultCheckOptions(), ReportOptions{})
		if err != nil {
			t.Fatalf("RunCheck() error: %v", err)
		}
		if !strings.Contains(out.String(), "No syntax errors found!") {
			t.Errorf("expected success message, got %q", out.String())
		}
	})

	t.Run("directory with findings", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheck(&out, filepath.Join(dir, "bad"), DefaultCheckOptions(), ReportOptions{})
		if !errors.Is(err, ErrFindings) {
			t.Fatalf("RunCheck() error = %v, want ErrFindings", err)
		}
		if !strings.Contains(out.String(), "Found 3 syntax error(s) in 3 file(s):") {
			t.Errorf("unexpected summary:\n%s", out.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheck(&out, filepath.Join(dir, "nope.js"), DefaultCheckOptions(), ReportOptions{Format: "json"})
		if !errors.Is(err, ErrFindings) {
			t.Fatalf("RunCheck() error = %v, want ErrFindings", err)
		}
		if !strings.Contains(out.String(), `"type": "file_not_found"`) {
			t.Errorf("expected file_not_found in JSON output, got:\n%s", out.String())
		}
	})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Extensions: []string{".js"},
		Exclude:    []string{"vendor"},
		SkipHidden: false,
		Workers:    3,
		Format:     "yaml",
		Context:    true,
		Verbose:    true,
	}

	opts := CheckOptionsFromConfig(cfg)
	if opts.Workers != 3 || opts.SkipHidden || !opts.Verbose || opts.Exclude[0] != "vendor" || opts.Extensions[0] != ".js" {
		t.Errorf("CheckOptionsFromConfig() = %+v", opts)
	}

	report := ReportOptionsFromConfig(cfg)
	if report.Format != "yaml" || !report.Context || !report.Verbose {
		t.Errorf("ReportOptionsFromConfig() = %+v", report)
	}
}

func TestFormatConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synchk.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\ncolour: red\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := config.Load(viper.New(), path)
	if err == nil {
		t.Fatal("expected a config error")
	}

	output := FormatConfigError(err)
	expected := []string{
		"synchk.yaml:2:1: error: unknown key 'colour'",
		"2 | colour: red",
		"hint: supported keys are",
	}
	for _, e := range expected {
		if !strings.Contains(output, e) {
			t.Errorf("expected output to contain %q, got:\n%s", e, output)
		}
	}
}

func TestFormatConfigError_Plain(t *testing.T) {
	output := FormatConfigError(errors.New("boom"))
	if !strings.Contains(output, "boom") {
		t.Errorf("expected plain error message, got %q", output)
	}
}

func TestVersionInfo(t *testing.T) {
	original := GetVersion()
	defer SetVersionInfo(original)

	SetVersionInfo("1.2.3")
	if GetVersion() != "1.2.3" {
		t.Errorf("GetVersion() = %q, want 1.2.3", GetVersion())
	}
}
