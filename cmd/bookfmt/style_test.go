package main

// Notes:
// - compileStylesheet: the compiler is replaced by small POSIX tools
//   ("cp", "false") so no stylesheet compiler needs to be installed.
//   Those cases are skipped when the tool is not on PATH.

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-bookfmt/internal/config"
)

func requireTool(t *testing.T, name string) {
	t.Helper()

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not on PATH", name)
	}
}

// ---------------------------------------------------------------------------
// TestCompileStylesheet
// ---------------------------------------------------------------------------

func TestCompileStylesheet(t *testing.T) {
	t.Parallel()

	t.Run("empty source disables", func(t *testing.T) {
		t.Parallel()

		ran, err := compileStylesheet(context.Background(), config.StyleConfig{})
		if ran || err != nil {
			t.Errorf("compileStylesheet() = %v, %v; want false, nil", ran, err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := compileStylesheet(context.Background(), config.StyleConfig{
			Source: filepath.Join(dir, "style.scss"),
			Output: filepath.Join(dir, "style.css"),
		})
		if !errors.Is(err, ErrStylesheet) {
			t.Errorf("error = %v, want ErrStylesheet", err)
		}
	})

	t.Run("compiles when stale then skips", func(t *testing.T) {
		t.Parallel()
		requireTool(t, "cp")

		dir := t.TempDir()
		src := filepath.Join(dir, "asset", "style.scss")
		out := filepath.Join(dir, "html", "style.css")
		writeTestFile(t, src, "body { margin: 0 }")
		backdate(t, src, time.Hour)
		style := config.StyleConfig{Source: src, Output: out, Compiler: "cp"}

		ran, err := compileStylesheet(context.Background(), style)
		if err != nil || !ran {
			t.Fatalf("first compile = %v, %v; want true, nil", ran, err)
		}
		if got := readTestFile(t, out); got != "body { margin: 0 }" {
			t.Errorf("output = %q", got)
		}

		ran, err = compileStylesheet(context.Background(), style)
		if err != nil || ran {
			t.Errorf("second compile = %v, %v; want false, nil", ran, err)
		}
	})

	t.Run("compiler failure", func(t *testing.T) {
		t.Parallel()
		requireTool(t, "false")

		dir := t.TempDir()
		src := filepath.Join(dir, "style.scss")
		writeTestFile(t, src, "x")

		_, err := compileStylesheet(context.Background(), config.StyleConfig{
			Source:   src,
			Output:   filepath.Join(dir, "style.css"),
			Compiler: "false",
		})
		if !errors.Is(err, ErrStylesheet) {
			t.Errorf("error = %v, want ErrStylesheet", err)
		}
	})
}
