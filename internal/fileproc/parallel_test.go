package fileproc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/parser"
	"github.com/augurlabs/augur/pkg/source"
)

func writeFiles(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return dir, paths
}

func TestMapFiles(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
	})

	results, errs := MapFiles(context.Background(), paths, 0, 0, func(psr *parser.Parser, path string) (string, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return "", err
		}
		return result.Path, nil
	})

	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestMapFilesCollectsErrors(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.go": "package a\n"})
	paths = append(paths, "/nonexistent/missing.go")

	results, errs := MapFiles(context.Background(), paths, 0, 0, func(psr *parser.Parser, path string) (string, error) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	})

	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
	if !errs.HasErrors() || len(errs.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs.Errors[0].Path != "/nonexistent/missing.go" {
		t.Errorf("unexpected error path: %s", errs.Errors[0].Path)
	}
}

func TestMapFilesEmpty(t *testing.T) {
	results, errs := MapFiles(context.Background(), nil, 0, 0, func(psr *parser.Parser, path string) (int, error) {
		return 0, nil
	})
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
	if errs.HasErrors() {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestMapFilesProgress(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
		"c.go": "package c\n",
	})

	tracker := analyzer.NewTracker(nil)
	ctx := analyzer.WithTracker(context.Background(), tracker)

	MapFiles(ctx, paths, 0, 0, func(psr *parser.Parser, path string) (struct{}, error) {
		return struct{}{}, nil
	})

	if tracker.Current() != 3 || tracker.Total() != 3 {
		t.Errorf("tracker = %d/%d, want 3/3", tracker.Current(), tracker.Total())
	}
}

func TestMapFilesSkipsOversized(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"small.go": "package small\n",
		"big.go":   "package big\n" + string(make([]byte, 2048)),
	})

	tracker := analyzer.NewTracker(nil)
	ctx := analyzer.WithTracker(context.Background(), tracker)

	results, errs := MapFiles(ctx, paths, 1024, 0, func(psr *parser.Parser, path string) (string, error) {
		return filepath.Base(path), nil
	})

	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 1 || results[0] != "small.go" {
		t.Errorf("expected only small.go, got %v", results)
	}
	if tracker.Total() != 1 {
		t.Errorf("tracker total = %d, want 1", tracker.Total())
	}
}

func TestMapSourceFiles(t *testing.T) {
	src := source.NewMemory(map[string][]byte{
		"small.go": []byte("package small\n"),
		"big.go":   make([]byte, 2048),
	})

	results, errs := MapSourceFiles(context.Background(), []string{"small.go", "big.go", "gone.go"}, src, 1024, 0,
		func(psr *parser.Parser, path string, content []byte) (string, error) {
			return path, nil
		})

	if len(results) != 1 || results[0] != "small.go" {
		t.Errorf("expected only small.go, got %v", results)
	}
	if len(errs.Errors) != 1 {
		t.Errorf("expected 1 read error, got %v", errs)
	}
}

func TestForEachFileCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, paths := writeFiles(t, map[string]string{"a.go": "package a\n"})
	results, _ := ForEachFile(ctx, paths, 1, func(path string) (string, error) {
		return path, nil
	})

	if len(results) != 0 {
		t.Errorf("expected no results after cancellation, got %v", results)
	}
}

func TestProcessingErrors(t *testing.T) {
	errs := &ProcessingErrors{}
	if errs.HasErrors() {
		t.Error("empty collection should report no errors")
	}
	errs.Add("a.go", errors.New("boom"))
	if !errs.HasErrors() {
		t.Error("expected HasErrors after Add")
	}
	if msg := errs.Error(); msg == "" {
		t.Error("expected non-empty error message")
	}
}
