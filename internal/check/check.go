// Package check spell checks files in bulk.
package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"linguist/internal/textbuf"
	"linguist/internal/textpos"
	"linguist/internal/trace"
)

// DefaultExtensions are the file types picked up when a directory is given.
var DefaultExtensions = []string{".txt", ".md", ".markdown", ".rst"}

// Request describes one batch.
type Request struct {
	Files    []string
	Oracle   Oracle
	Jobs     int
	Progress ProgressSink
	// ReadFile defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// Text returns the misspelled words of text in document order.
func Text(text string, o Oracle) []Finding {
	var out []Finding
	textbuf.New(text).Words(func(r textpos.Range, word string) {
		if o.IsCorrect(word) {
			return
		}
		out = append(out, Finding{Range: r, Word: word, Suggestions: o.Suggest(word)})
	})
	return out
}

// Files checks every file of req in parallel. Results keep the order of
// req.Files; unreadable files carry their error in Result.Err. The returned
// error is only set when ctx is cancelled.
func Files(ctx context.Context, req Request) ([]Result, error) {
	if req.Oracle == nil {
		return nil, errors.New("check: no oracle")
	}
	if len(req.Files) == 0 {
		return nil, nil
	}
	read := req.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	emit := func(ev Event) {
		if req.Progress != nil {
			req.Progress.OnEvent(ev)
		}
	}
	for _, path := range req.Files {
		emit(Event{File: path, Status: StatusQueued})
	}

	results := make([]Result, len(req.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(tracer, trace.ScopeDocument, "check", 0).WithExtra("path", path)
			start := time.Now()
			emit(Event{File: path, Status: StatusChecking})

			results[i].Path = path
			data, err := read(path)
			if err != nil {
				results[i].Err = err
				emit(Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				span.End("error")
				return nil
			}
			results[i].Findings = Text(string(data), req.Oracle)
			n := len(results[i].Findings)
			emit(Event{File: path, Status: StatusDone, Findings: n, Elapsed: time.Since(start)})
			span.End(fmt.Sprintf("%d findings", n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Collect expands paths into a sorted, duplicate-free file list. Directories
// are walked for files with one of exts; plain files are taken as given.
func Collect(paths, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExt(path, exts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Count returns the total number of findings.
func Count(results []Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Findings)
	}
	return n
}
