// Package fileproc runs per-file analysis functions across a worker pool.
// Progress is reported through the tracker carried in the context, and
// per-file errors are collected instead of aborting the batch.
package fileproc

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/parser"
	"github.com/augurlabs/augur/pkg/source"
	"github.com/sourcegraph/conc/pool"
)

// DefaultWorkerMultiplier is applied to NumCPU for the default worker
// count. Parsing mixes CGO calls with file I/O, so oversubscribing helps.
const DefaultWorkerMultiplier = 2

func defaultWorkers(maxWorkers int) int {
	if maxWorkers <= 0 {
		return runtime.NumCPU() * DefaultWorkerMultiplier
	}
	return maxWorkers
}

// MapFiles processes files in parallel, calling fn with a dedicated parser
// per file. Results are returned in arbitrary order alongside the per-file
// failures. Files larger than maxSize bytes are skipped; maxSize 0 disables
// the limit. A tracker attached to ctx receives one Tick per file.
func MapFiles[T any](ctx context.Context, files []string, maxSize int64, maxWorkers int, fn func(*parser.Parser, string) (T, error)) ([]T, *ProcessingErrors) {
	if maxSize > 0 {
		kept := make([]string, 0, len(files))
		for _, path := range files {
			// Stat failures are kept so fn reports them as per-file errors.
			if info, err := os.Stat(path); err == nil && info.Size() > maxSize {
				continue
			}
			kept = append(kept, path)
		}
		files = kept
	}
	if len(files) == 0 {
		return nil, &ProcessingErrors{}
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	results := make([]T, 0, len(files))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(defaultWorkers(maxWorkers)).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			defer func() {
				if tracker != nil {
					tracker.Tick(path)
				}
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, path)
			if err != nil {
				errs.Add(path, err)
				return nil
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	return results, errs
}

type fileWithContent struct {
	path    string
	content []byte
}

// MapSourceFiles processes files read from a ContentSource in parallel.
// Content is read sequentially up front so sources that are not safe for
// concurrent reads still work. Files that fail to read or exceed maxSize
// bytes are skipped; maxSize 0 disables the limit.
func MapSourceFiles[T any](ctx context.Context, files []string, src source.ContentSource, maxSize int64, maxWorkers int, fn func(*parser.Parser, string, []byte) (T, error)) ([]T, *ProcessingErrors) {
	errs := &ProcessingErrors{}
	if len(files) == 0 {
		return nil, errs
	}

	loaded := make([]fileWithContent, 0, len(files))
	for _, path := range files {
		content, err := src.Read(path)
		if err != nil {
			errs.Add(path, err)
			continue
		}
		if maxSize > 0 && int64(len(content)) > maxSize {
			continue
		}
		loaded = append(loaded, fileWithContent{path: path, content: content})
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(loaded))
	}

	results := make([]T, 0, len(loaded))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(defaultWorkers(maxWorkers)).WithContext(ctx)
	for _, fc := range loaded {
		p.Go(func(ctx context.Context) error {
			defer func() {
				if tracker != nil {
					tracker.Tick(fc.path)
				}
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, fc.path, fc.content)
			if err != nil {
				errs.Add(fc.path, err)
				return nil
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	return results, errs
}

// ForEachFile processes files in parallel without a parser, for passes that
// work on raw content or paths only.
func ForEachFile[T any](ctx context.Context, files []string, maxWorkers int, fn func(string) (T, error)) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, &ProcessingErrors{}
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	results := make([]T, 0, len(files))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(defaultWorkers(maxWorkers)).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			defer func() {
				if tracker != nil {
					tracker.Tick(path)
				}
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := fn(path)
			if err != nil {
				errs.Add(path, err)
				return nil
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	return results, errs
}
