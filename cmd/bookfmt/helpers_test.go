package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and book fixtures
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

// testEnv returns an Environment with buffered output, a fixed clock, and
// the given BOOKFMT_* variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		After: time.After,
	}
	return env, stdout, stderr
}

const (
	testTemplate = "<title>{{title}}</title>{{prev}}{{next}}\n{{navigation}}\n{{body}}"

	testChapters = `chapters:
  - title: Introduction
  - title: Sequencing Patterns
    part: true
  - title: Game Loop
`

	introSource = "^title Introduction\n\nWelcome.\n"

	partSource = "^title Sequencing Patterns\n\nA short part header.\n"

	gameLoopSource = "^title Game Loop\n^section Sequencing Patterns\n\n## The Pattern\n\n" +
		"A game loop runs continuously.\n\n^code loop\n"

	gameLoopCode = "//^loop\nwhile (true) {\n  update();\n}\n//^loop\n"
)

// testBook lays out a small book under a temp dir and returns the dir and
// the path of a config file pointing at it.
type testBook struct {
	Dir    string
	Config string
}

func newTestBook(t *testing.T) testBook {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"book/introduction.markdown":        introSource,
		"book/sequencing-patterns.markdown": partSource,
		"book/game-loop.markdown":           gameLoopSource,
		"book/notes.txt":                    "not a chapter",
		"code/game-loop.h":                  gameLoopCode,
		"asset/template.html":               testTemplate,
		"asset/chapters.yaml":               testChapters,
	}
	for name, content := range files {
		writeTestFile(t, filepath.Join(dir, name), content)
	}

	cfg := strings.Join([]string{
		"input:",
		"  dir: " + filepath.Join(dir, "book"),
		"output:",
		"  dir: " + filepath.Join(dir, "out"),
		"code:",
		"  dir: " + filepath.Join(dir, "code"),
		"template:",
		"  path: " + filepath.Join(dir, "asset", "template.html"),
		"chapters:",
		"  path: " + filepath.Join(dir, "asset", "chapters.yaml"),
		"",
	}, "\n")
	configPath := filepath.Join(dir, "bookfmt.yaml")
	writeTestFile(t, configPath, cfg)

	return testBook{Dir: dir, Config: configPath}
}

// output returns the path of a generated page.
func (b testBook) output(name string) string {
	return filepath.Join(b.Dir, "out", name)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

// backdate sets a file's modification time in the past so later writes
// are strictly newer.
func backdate(t *testing.T, path string, age time.Duration) {
	t.Helper()

	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
}
