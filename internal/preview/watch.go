package preview

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
)

// Watch follows the previewed file until ctx is cancelled. The parent
// directory is watched so editors that replace the file on save are seen.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(s.opts.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", s.opts.Path, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				s.Reload(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}

// Reload re-reads the file and bumps the revision when its content changed.
// It reports whether the revision moved. A missing file keeps the last content.
func (s *Server) Reload(ctx context.Context) bool {
	s.mu.RLock()
	info := s.info
	s.mu.RUnlock()

	content, fresh, err := fsutil.Refresh(ctx, info)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		s.logger.Debug("file missing, keeping last content", logging.FieldPath, s.opts.Path)
		return false
	case err != nil:
		s.logger.Warn("reload failed", logging.FieldPath, s.opts.Path, logging.FieldError, err)
		return false
	}

	s.mu.Lock()
	s.info = fresh
	if content != nil {
		s.content = string(content)
	}
	s.mu.Unlock()

	if content == nil {
		return false
	}

	revision := s.revision.Add(1)
	s.logger.Info("file changed", logging.FieldPath, s.opts.Path, logging.FieldRevision, revision)
	return true
}
