package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"strl/internal/source"
)

// BatchResult is the outcome of compiling one pattern file in a directory
// batch. Err holds the parse diagnostic or I/O failure; Cached reports that
// the artifact was served from the disk cache.
type BatchResult struct {
	Path     string
	FileID   source.FileID
	Artifact *Artifact
	Err      error
	Cached   bool
}

// BatchOptions tunes CompileDir.
type BatchOptions struct {
	Jobs  int        // worker count, <= 0 means GOMAXPROCS
	Cache *DiskCache // nil disables artifact caching
}

// listPatternFiles returns all *.strl files under dir, sorted for
// deterministic batch order.
func listPatternFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".strl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.strl file under dir in parallel. Results come
// back in file order regardless of scheduling; per-file failures land in the
// result slot, only I/O walking errors and context cancellation abort the
// whole batch.
func CompileDir(ctx context.Context, dir string, opts BatchOptions) (*source.FileSet, []BatchResult, error) {
	files, err := listPatternFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Files load up front on one goroutine; the FileSet is not synchronized.
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrs[i] != nil {
				results[i] = BatchResult{Path: path, Err: loadErrs[i]}
				return nil
			}

			file := fileSet.Get(ids[i])
			res := BatchResult{Path: path, FileID: ids[i]}

			if art, ok := opts.Cache.Lookup(file.Hash); ok {
				res.Artifact, res.Cached = art, true
			} else {
				res.Artifact, res.Err = Compile(string(file.Content))
				if res.Err == nil {
					opts.Cache.Store(file.Hash, res.Artifact)
				}
			}

			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}
