package main

// Notes:
// - runMain: we test exit codes and console output end to end against a
//   small book in t.TempDir(). The config file uses absolute paths so tests
//   never depend on the working directory.
// - Watch mode is driven by an After func that cancels the context, so the
//   loop runs exactly one tick.

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestRunMain_Flags - Version, help, and usage errors
// ---------------------------------------------------------------------------

func TestRunMain_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"--version"}, ExitSuccess, "bookfmt dev", ""},
		{"help", []string{"--help"}, ExitSuccess, "", "Usage: bookfmt"},
		{"unknown flag", []string{"--bogus"}, ExitUsage, "", "bogus"},
		{"two filters", []string{"a", "b"}, ExitUsage, "", "at most one filter"},
		{"negative workers", []string{"--workers", "-1"}, ExitUsage, "", "invalid worker count"},
		{"too many workers", []string{"-w", "99"}, ExitUsage, "", "maximum is"},
		{"missing config name", []string{"--config", "no-such-book-config"}, ExitUsage, "", "hint:"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - Batch conversion
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds every chapter", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, stdout, stderr := testEnv(nil)

		code := runMain(context.Background(), []string{"--config", book.Config, "--no-color"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		page := readTestFile(t, book.output("game-loop.html"))
		for _, want := range []string{
			"<title>Game Loop &middot; Sequencing Patterns</title>",
			`href="sequencing-patterns.html"`,
			`name="the-pattern"`,
			"update",
		} {
			if !strings.Contains(page, want) {
				t.Errorf("game-loop.html missing %q:\n%s", want, page)
			}
		}
		for _, name := range []string{"introduction.html", "sequencing-patterns.html"} {
			if _, err := os.Stat(book.output(name)); err != nil {
				t.Errorf("%s not written: %v", name, err)
			}
		}
		if _, err := os.Stat(book.output("notes.html")); err == nil {
			t.Error("notes.txt should not be converted")
		}

		out := stdout.String()
		for _, want := range []string{"• introduction (", "  game-loop\n", "(completion unknown)"} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("filter limits documents", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, _, stderr := testEnv(nil)

		code := runMain(context.Background(), []string{"-c", book.Config, "game"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if _, err := os.Stat(book.output("game-loop.html")); err != nil {
			t.Errorf("game-loop.html not written: %v", err)
		}
		if _, err := os.Stat(book.output("introduction.html")); err == nil {
			t.Error("introduction.html written despite filter")
		}
	})

	t.Run("filter without match is an I/O error", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, _, stderr := testEnv(nil)

		code := runMain(context.Background(), []string{"-c", book.Config, "zzz"}, env)
		if code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "no chapter sources found") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("xml flag writes xml files", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, _, stderr := testEnv(nil)

		code := runMain(context.Background(), []string{"-c", book.Config, "--xml", "game"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		page := readTestFile(t, book.output("game-loop.xml"))
		if strings.Contains(page, `name="the-pattern"`) {
			t.Errorf("xml output should not carry heading anchors:\n%s", page)
		}
	})

	t.Run("format from environment", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, _, stderr := testEnv(map[string]string{
			"BOOKFMT_CONFIG": book.Config,
			"BOOKFMT_FORMAT": "XML",
		})

		code := runMain(context.Background(), []string{"game"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if _, err := os.Stat(book.output("game-loop.xml")); err != nil {
			t.Errorf("game-loop.xml not written: %v", err)
		}
	})

	t.Run("quiet prints nothing on success", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, stdout, stderr := testEnv(nil)

		code := runMain(context.Background(), []string{"-c", book.Config, "-q"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Failures - Warnings, strict mode, and per-document errors
// ---------------------------------------------------------------------------

func TestRunMain_Failures(t *testing.T) {
	t.Parallel()

	t.Run("warnings pass unless strict", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		writeTestFile(t, book.Dir+"/book/broken.markdown", "^title Gmae Loop\n^bogus arg\n\nText.\n")

		env, _, stderr := testEnv(nil)
		if code := runMain(context.Background(), []string{"-c", book.Config, "--no-color", "broken"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		for _, want := range []string{"warning:", "unknown directive", `did you mean "Game Loop"?`} {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("stderr missing %q:\n%s", want, stderr)
			}
		}

		env, _, _ = testEnv(nil)
		if code := runMain(context.Background(), []string{"-c", book.Config, "--strict", "broken"}, env); code != ExitWarnings {
			t.Errorf("strict exit code = %d, want %d", code, ExitWarnings)
		}
	})

	t.Run("missing code file fails only that chapter", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		if err := os.Remove(book.Dir + "/code/game-loop.h"); err != nil {
			t.Fatal(err)
		}

		env, _, stderr := testEnv(nil)
		code := runMain(context.Background(), []string{"-c", book.Config, "--no-color"}, env)
		if code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "FAILED") || !strings.Contains(stderr.String(), "game-loop.markdown") {
			t.Errorf("stderr = %q", stderr)
		}
		if _, err := os.Stat(book.output("introduction.html")); err != nil {
			t.Errorf("other chapters should still build: %v", err)
		}
	})

	t.Run("missing template is a usage error", func(t *testing.T) {
		t.Parallel()

		book := newTestBook(t)
		env, _, _ := testEnv(nil)

		code := runMain(context.Background(), []string{"-c", book.Config, "--template", book.Dir + "/nope.html"}, env)
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Incremental - Skipping up-to-date documents
// ---------------------------------------------------------------------------

func TestRunMain_Incremental(t *testing.T) {
	t.Parallel()

	book := newTestBook(t)
	for _, p := range []string{
		"book/introduction.markdown",
		"book/sequencing-patterns.markdown",
		"book/game-loop.markdown",
		"code/game-loop.h",
		"asset/template.html",
	} {
		backdate(t, book.Dir+"/"+p, time.Hour)
	}

	env, _, stderr := testEnv(nil)
	if code := runMain(context.Background(), []string{"-c", book.Config, "--changed"}, env); code != ExitSuccess {
		t.Fatalf("first run exit code = %d, stderr: %s", code, stderr)
	}

	env, stdout, _ := testEnv(nil)
	if code := runMain(context.Background(), []string{"-c", book.Config, "--changed"}, env); code != ExitSuccess {
		t.Fatalf("second run exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "all 3 chapters up to date") {
		t.Errorf("stdout = %q, want up-to-date message", stdout)
	}

	// Touching the code file makes only its chapter stale.
	writeTestFile(t, book.Dir+"/code/game-loop.h", gameLoopCode)
	env, stdout, _ = testEnv(nil)
	if code := runMain(context.Background(), []string{"-c", book.Config, "--changed", "--no-color"}, env); code != ExitSuccess {
		t.Fatalf("third run exit code = %d", code)
	}
	if out := stdout.String(); !strings.Contains(out, "game-loop") || strings.Contains(out, "introduction") {
		t.Errorf("stdout = %q, want only game-loop rebuilt", out)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Watch - One watch tick then cancellation
// ---------------------------------------------------------------------------

func TestRunMain_Watch(t *testing.T) {
	t.Parallel()

	book := newTestBook(t)
	env, stdout, stderr := testEnv(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticks := 0
	env.After = func(time.Duration) <-chan time.Time {
		ticks++
		cancel()
		return make(chan time.Time)
	}

	code := runMain(ctx, []string{"-c", book.Config, "--watch", "--no-color"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
	if !strings.Contains(stdout.String(), "watching") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(book.output("game-loop.html")); err != nil {
		t.Errorf("game-loop.html not written: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_PrintConfig - Effective config output
// ---------------------------------------------------------------------------

func TestRunMain_PrintConfig(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(map[string]string{"BOOKFMT_CODE_DIR": "src"})

	code := runMain(context.Background(), []string{"--print-config", "--xml"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	out := stdout.String()
	for _, want := range []string{"format: xml", "dir: src", "maxLineWidth: 64"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}
