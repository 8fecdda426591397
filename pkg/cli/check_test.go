package cli

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/githubnext/synchk/pkg/checker"
)

// writeTree creates files under dir from a map of relative path to content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relativeFiles(t *testing.T, root string, files []string) []string {
	t.Helper()
	rel := make([]string, 0, len(files))
	for _, file := range files {
		r, err := filepath.Rel(root, file)
		if err != nil {
			t.Fatal(err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":                "<p></p>",
		"app.js":                    "let a = 1;",
		"notes.txt":                 "(",
		"styles/site.css":           "a { color: red; }",
		"data/config.json":          "{}",
		"data/legacy.htm":           "<div></div>",
		"api/handler.php":           "<?php echo 1; ?>",
		".git/hooks/pre-commit.js":  "(",
		".cache/data.json":          "{",
		"node_modules/lib/index.js": "(",
		"src/.hidden.js":            "let x = 1;",
	})

	tests := []struct {
		name string
		opts CheckOptions
		want []string
	}{
		{
			name: "defaults skip hidden directories",
			opts: DefaultCheckOptions(),
			want: []string{
				"api/handler.php",
				"app.js",
				"data/config.json",
				"data/legacy.htm",
				"index.html",
				"node_modules/lib/index.js",
				"src/.hidden.js",
				"styles/site.css",
			},
		},
		{
			name: "exclude names a directory",
			opts: CheckOptions{Extensions: DefaultCheckOptions().Extensions, SkipHidden: true, Exclude: []string{"node_modules", "data"}},
			want: []string{
				"api/handler.php",
				"app.js",
				"index.html",
				"src/.hidden.js",
				"styles/site.css",
			},
		},
		{
			name: "hidden directories included when not skipped",
			opts: CheckOptions{Extensions: []string{".json"}},
			want: []string{
				".cache/data.json",
				"data/config.json",
			},
		},
		{
			name: "custom extension list",
			opts: CheckOptions{Extensions: []string{".txt"}, SkipHidden: true},
			want: []string{"notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := CollectFiles(dir, tt.opts)
			if err != nil {
				t.Fatalf("CollectFiles() error: %v", err)
			}
			got := relativeFiles(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("CollectFiles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollectFiles_HiddenRootIsWalked(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".site")
	writeTree(t, root, map[string]string{"main.js": "let a = 1;"})

	files, err := CollectFiles(root, DefaultCheckOptions())
	if err != nil {
		t.Fatalf("CollectFiles() error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected the file below a hidden root to be collected, got %v", files)
	}
}

func TestCollectFiles_MissingRoot(t *testing.T) {
	_, err := CollectFiles(filepath.Join(t.TempDir(), "absent"), DefaultCheckOptions())
	if err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestCheckTarget(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"good.js":      "let a = 1;\n",
		"bad.js":       "let a = 1\n",
		"broken.json":  "{\"a\":}",
		"page.html":    "<div><p>text</div>",
		".hidden/x.js": "let b = (\n",
	})

	t.Run("directory", func(t *testing.T) {
		findings, err := CheckTarget(dir, DefaultCheckOptions())
		if err != nil {
			t.Fatalf("CheckTarget() error: %v", err)
		}

		var files []string
		for _, f := range findings {
			if !slices.Contains(files, filepath.Base(f.File)) {
				files = append(files, filepath.Base(f.File))
			}
		}
		want := []string{"bad.js", "broken.json", "page.html"}
		if !slices.Equal(files, want) {
			t.Errorf("files with findings = %v, want %v", files, want)
		}
		if len(findings) != 4 {
			t.Errorf("expected 4 findings, got %d: %v", len(findings), findings)
		}
	})

	t.Run("single file", func(t *testing.T) {
		findings, err := CheckTarget(filepath.Join(dir, "bad.js"), DefaultCheckOptions())
		if err != nil {
			t.Fatalf("CheckTarget() error: %v", err)
		}
		if len(findings) != 1 || findings[0].Category != checker.MissingSemicolon {
			t.Errorf("expected one missing_semicolon finding, got %v", findings)
		}
	})

	t.Run("single file outside the extension list", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		writeTree(t, dir, map[string]string{"notes.txt": "(\n"})

		findings, err := CheckTarget(path, DefaultCheckOptions())
		if err != nil {
			t.Fatalf("CheckTarget() error: %v", err)
		}
		if len(findings) != 1 || findings[0].Category != checker.UnclosedBracket {
			t.Errorf("expected one unclosed_bracket finding, got %v", findings)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		path := filepath.Join(dir, "absent.js")
		findings, err := CheckTarget(path, DefaultCheckOptions())
		if err != nil {
			t.Fatalf("CheckTarget() error: %v", err)
		}
		if len(findings) != 1 || findings[0].Category != checker.FileNotFound || findings[0].Line != 0 {
			t.Errorf("expected one file_not_found finding at line 0, got %v", findings)
		}
	})
}

func TestResolveTarget(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.js":         "let a = 1;\n",
		"b.txt":        "(\n",
		".hidden/c.js": "let c = 1;\n",
	})

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "directory", target: dir, want: []string{filepath.Join(dir, "a.js")}},
		{name: "file outside the extension list", target: filepath.Join(dir, "b.txt"), want: []string{filepath.Join(dir, "b.txt")}},
		{name: "missing path", target: filepath.Join(dir, "absent.js"), want: []string{filepath.Join(dir, "absent.js")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := ResolveTarget(tt.target, DefaultCheckOptions())
			if err != nil {
				t.Fatalf("ResolveTarget() error: %v", err)
			}
			if !slices.Equal(files, tt.want) {
				t.Errorf("ResolveTarget() = %v, want %v", files, tt.want)
			}
		})
	}
}

func TestCheckTargetMatchesRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.js":    "let a = 1\n",
		"page.html": "<div>\n",
		"data.json": "{\"a\":}",
	})

	for _, target := range []string{dir, filepath.Join(dir, "app.js"), filepath.Join(dir, "absent.css")} {
		want, err := CheckTarget(target, DefaultCheckOptions())
		if err != nil {
			t.Fatalf("CheckTarget(%s) error: %v", target, err)
		}
		got, err := checkWithProgress(target, DefaultCheckOptions(), ReportOptions{Format: "json"})
		if err != nil {
			t.Fatalf("checkWithProgress(%s) error: %v", target, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("findings for %s differ:\nCheckTarget:       %v\ncheckWithProgress: %v", target, want, got)
		}
	}
}

func TestCheckFiles_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	contents := map[string]string{}
	for i := range 40 {
		name := filepath.Join("pkg", string(rune('a'+i%26))+string(rune('a'+i/26))+".js")
		if i%3 == 0 {
			contents[name] = "let a = (1\nconst b = 2\n"
		} else {
			contents[name] = "let a = 1;\n"
		}
	}
	writeTree(t, dir, contents)

	files, err := CollectFiles(dir, DefaultCheckOptions())
	if err != nil {
		t.Fatal(err)
	}

	sequential := CheckFiles(files, 1)
	parallel := CheckFiles(files, 8)

	if len(sequential) == 0 {
		t.Fatal("expected findings from the fixture")
	}
	if !slices.Equal(sequential, parallel) {
		t.Errorf("parallel findings differ from sequential run\nsequential: %v\nparallel:   %v", sequential, parallel)
	}
}

func TestCheckFiles_Empty(t *testing.T) {
	if findings := CheckFiles(nil, 4); len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestCheckOptionsEligible(t *testing.T) {
	opts := DefaultCheckOptions()

	tests := map[string]bool{
		"index.html":  true,
		"page.htm":    true,
		"app.min.js":  true,
		"data.json":   true,
		"script.JS":   false,
		"readme.md":   false,
		"jsonfile":    false,
		"archive.php": true,
	}
	for name, want := range tests {
		if got := opts.eligible(name); got != want {
			t.Errorf("eligible(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestErrFindingsIsSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrFindings)
	if !errors.Is(wrapped, ErrFindings) {
		t.Error("ErrFindings should be detectable with errors.Is")
	}
}
