// Package watcher monitors a directory and feeds new or changed text
// files into the ingestion pipeline automatically.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// DefaultExtensions are the file types picked up when none are
// configured. Binary formats need an external extractor and are not
// watched.
var DefaultExtensions = []string{".txt", ".md"}

// Watcher ingests files from a watched directory. Events are handled
// on a single goroutine, so mutations of the same path are serialised.
type Watcher struct {
	svc        driving.IngestService
	fsw        *fsnotify.Watcher
	extensions []string

	mu   sync.Mutex
	docs map[string]string // path -> ingested document id
}

// New creates a watcher feeding the given ingestion service. With no
// extensions, DefaultExtensions is used.
func New(svc driving.IngestService, extensions ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Watcher{
		svc:        svc,
		fsw:        fsw,
		extensions: extensions,
		docs:       make(map[string]string),
	}, nil
}

// Watch starts monitoring dir until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("Watching %s for %v files", dir, w.extensions)

	go w.run(ctx)
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.watched(event.Name) {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
				w.handleUpsert(ctx, event.Name)
			case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
				w.handleRemove(ctx, event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleUpsert ingests the file at path, replacing any document a
// previous event for the same path produced.
func (w *Watcher) handleUpsert(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Editors fire Create before content lands; a later Write
		// event retries.
		logger.Debug("Skipping %s: %v", path, err)
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		return
	}

	doc, err := w.svc.Ingest(ctx, filepath.Base(path), mimeFor(path), string(data))
	if err != nil {
		logger.Warn("Auto-ingest of %s failed: %v", path, err)
		return
	}

	w.mu.Lock()
	previous := w.docs[path]
	w.docs[path] = doc.ID
	w.mu.Unlock()

	if previous != "" && previous != doc.ID {
		if err := w.svc.Delete(ctx, previous); err != nil {
			logger.Warn("Removing superseded document %s failed: %v", previous, err)
		}
	}
	logger.Info("Auto-ingested %s (%d chunks)", path, len(doc.Chunks))
}

// handleRemove deletes the document ingested from path, if any.
func (w *Watcher) handleRemove(ctx context.Context, path string) {
	w.mu.Lock()
	id := w.docs[path]
	delete(w.docs, path)
	w.mu.Unlock()

	if id == "" {
		return
	}
	if err := w.svc.Delete(ctx, id); err != nil {
		logger.Warn("Removing document for %s failed: %v", path, err)
		return
	}
	logger.Info("Removed document for deleted file %s", path)
}

func (w *Watcher) watched(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func mimeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return "text/markdown"
	}
	return "text/plain"
}
