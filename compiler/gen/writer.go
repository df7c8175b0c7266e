package gen

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer commits rendered files to a directory. Each file is written to a
// temporary file in the same directory and renamed over its destination
// once every file of the batch has been written.
type Writer struct {
	dir    string
	logger *slog.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     time.Duration
	WriteTime      time.Duration
}

// NewWriter creates a writer for the given directory.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// Metrics returns a snapshot of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

func (w *Writer) addRenderTime(d time.Duration) {
	w.mu.Lock()
	w.metrics.RenderTime += d
	w.mu.Unlock()
}

// pending is a file written to its temporary location. backup holds the
// previous contents of path once it has been moved aside.
type pending struct {
	tmp    string
	path   string
	backup string
	size   int
}

// Commit writes all files. If any file cannot be staged, no destination is
// touched and the staged files are removed. If a file cannot be moved into
// place, the files already replaced are restored from their backups.
func (w *Writer) Commit(files []File) (err error) {
	start := time.Now()
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return NewGenerationError("commit", w.dir, "create output directory", err)
	}
	staged := make([]pending, 0, len(files))
	defer func() {
		if err != nil {
			for _, p := range staged {
				_ = os.Remove(p.tmp)
			}
		}
	}()
	for _, f := range files {
		p, err := w.stage(f)
		if err != nil {
			return NewGenerationError("commit", f.Name, "write temporary file", err)
		}
		staged = append(staged, p)
	}
	for i := range staged {
		if err := w.replace(&staged[i]); err != nil {
			w.rollback(staged[:i+1])
			return NewGenerationError("commit", files[i].Name, "rename", err)
		}
		w.logger.Debug("write file", "file", staged[i].path, "emitter", files[i].Emitter, "bytes", staged[i].size)
	}
	for _, p := range staged {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
	}
	w.mu.Lock()
	w.metrics.FilesGenerated += len(staged)
	for _, p := range staged {
		w.metrics.TotalBytes += int64(p.size)
	}
	w.metrics.WriteTime += time.Since(start)
	w.mu.Unlock()
	return nil
}

// replace moves an existing file at p.path aside and the temporary file
// into its place. Directories are left alone and fail the rename.
func (w *Writer) replace(p *pending) error {
	if fi, err := os.Lstat(p.path); err == nil && !fi.IsDir() {
		bak, err := os.CreateTemp(w.dir, "."+filepath.Base(p.path)+".*.bak")
		if err != nil {
			return err
		}
		if err := errors.Join(bak.Close(), os.Rename(p.path, bak.Name())); err != nil {
			_ = os.Remove(bak.Name())
			return err
		}
		p.backup = bak.Name()
	}
	return os.Rename(p.tmp, p.path)
}

// rollback restores the destinations of the given files to their state
// before the commit. Files that did not exist are removed.
func (w *Writer) rollback(done []pending) {
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		var err error
		switch {
		case p.backup != "":
			err = os.Rename(p.backup, p.path)
		case i < len(done)-1:
			err = os.Remove(p.path)
		}
		if err != nil {
			w.logger.Warn("restore file", "file", p.path, "backup", p.backup, "error", err)
		}
	}
}

func (w *Writer) stage(f File) (pending, error) {
	path := filepath.Join(w.dir, f.Name)
	out, err := os.CreateTemp(w.dir, "."+f.Name+".*.tmp")
	if err != nil {
		return pending{}, err
	}
	tmp := out.Name()
	_, werr := out.Write(f.Content)
	cerr := out.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp)
		return pending{}, err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return pending{}, fmt.Errorf("chmod %s: %w", tmp, err)
	}
	return pending{tmp: tmp, path: path, size: len(f.Content)}, nil
}
