package main

// Notes:
// - builder: a fake converter records calls so we can test ordering,
//   freshness skipping, cancellation, and output writing without the
//   rendering pipeline. The real pipeline is exercised in main_test.go.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	bookfmt "github.com/alnah/go-bookfmt"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake converter
// ---------------------------------------------------------------------------

type fakeConverter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeConverter) Convert(_ context.Context, in bookfmt.Input) (*bookfmt.Result, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &bookfmt.Result{Output: []byte("page:" + in.Name + ":" + in.Source)}, nil
}

// newTestDocs writes n sources and returns their documents.
func newTestDocs(t *testing.T, dir string, names ...string) []document {
	t.Helper()

	docs := make([]document, 0, len(names))
	for _, name := range names {
		src := filepath.Join(dir, "book", name+".markdown")
		writeTestFile(t, src, name)
		docs = append(docs, document{
			Name:       name,
			SourcePath: src,
			OutputPath: filepath.Join(dir, "out", "nested", name+".html"),
		})
	}
	return docs
}

func newTestBuilder(dir string, conv ChapterConverter, workers int) *builder {
	return &builder{
		conv:    conv,
		code:    &bookfmt.DirCodeLoader{Dir: filepath.Join(dir, "code"), Extension: ".h"},
		workers: workers,
	}
}

// ---------------------------------------------------------------------------
// TestBuildAll
// ---------------------------------------------------------------------------

func TestBuildAll(t *testing.T) {
	t.Parallel()

	t.Run("results keep document order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		docs := newTestDocs(t, dir, "a", "b", "c", "d", "e")
		conv := &fakeConverter{}

		results := newTestBuilder(dir, conv, 3).buildAll(context.Background(), docs, false)

		if len(results) != len(docs) {
			t.Fatalf("got %d results, want %d", len(results), len(docs))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("%s: error = %v", r.Doc.Name, r.Err)
			}
			if r.Doc.Name != docs[i].Name {
				t.Errorf("results[%d] = %s, want %s", i, r.Doc.Name, docs[i].Name)
			}
		}
		if got := readTestFile(t, docs[2].OutputPath); got != "page:c:c" {
			t.Errorf("output = %q", got)
		}
		if conv.calls.Load() != 5 {
			t.Errorf("calls = %d, want 5", conv.calls.Load())
		}
	})

	t.Run("no documents", func(t *testing.T) {
		t.Parallel()

		if got := newTestBuilder(t.TempDir(), &fakeConverter{}, 2).buildAll(context.Background(), nil, false); got != nil {
			t.Errorf("buildAll(nil) = %v, want nil", got)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		docs := newTestDocs(t, dir, "a", "b")
		conv := &fakeConverter{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := newTestBuilder(dir, conv, 1).buildAll(ctx, docs, false)

		for _, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("%s: error = %v, want context.Canceled", r.Doc.Name, r.Err)
			}
		}
		if conv.calls.Load() != 0 {
			t.Errorf("calls = %d, want 0", conv.calls.Load())
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		docs := newTestDocs(t, dir, "a")
		results := newTestBuilder(dir, &fakeConverter{err: bookfmt.ErrReadCode}, 1).buildAll(context.Background(), docs, false)

		if !errors.Is(results[0].Err, bookfmt.ErrReadCode) {
			t.Errorf("error = %v, want ErrReadCode", results[0].Err)
		}
		if _, err := os.Stat(docs[0].OutputPath); err == nil {
			t.Error("output written despite conversion error")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		doc := document{Name: "gone", SourcePath: filepath.Join(dir, "gone.markdown"), OutputPath: filepath.Join(dir, "gone.html")}
		results := newTestBuilder(dir, &fakeConverter{}, 1).buildAll(context.Background(), []document{doc}, false)

		if !errors.Is(results[0].Err, bookfmt.ErrReadSource) {
			t.Errorf("error = %v, want ErrReadSource", results[0].Err)
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		docs := newTestDocs(t, dir, "a")
		// A file where the output directory should be.
		writeTestFile(t, filepath.Join(dir, "out"), "blocker")

		results := newTestBuilder(dir, &fakeConverter{}, 1).buildAll(context.Background(), docs, false)

		if !errors.Is(results[0].Err, ErrWriteOutput) {
			t.Errorf("error = %v, want ErrWriteOutput", results[0].Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildOne_SkipFresh - Incremental builds
// ---------------------------------------------------------------------------

func TestBuildOne_SkipFresh(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docs := newTestDocs(t, dir, "game-loop")
	doc := docs[0]
	code := filepath.Join(dir, "code", "game-loop.h")
	writeTestFile(t, code, "//^loop\n")
	backdate(t, doc.SourcePath, time.Hour)
	backdate(t, code, time.Hour)

	conv := &fakeConverter{}
	b := newTestBuilder(dir, conv, 1)

	if r := b.buildOne(context.Background(), doc, true); r.Skipped || r.Err != nil {
		t.Fatalf("first build: Skipped=%v Err=%v", r.Skipped, r.Err)
	}
	if r := b.buildOne(context.Background(), doc, true); !r.Skipped {
		t.Error("second build should be skipped")
	}
	if r := b.buildOne(context.Background(), doc, false); r.Skipped {
		t.Error("skipFresh=false must always build")
	}

	writeTestFile(t, code, "//^loop\nupdate();\n//^loop\n")
	if r := b.buildOne(context.Background(), doc, true); r.Skipped {
		t.Error("newer code file must trigger a rebuild")
	}
	if conv.calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", conv.calls.Load())
	}
}
