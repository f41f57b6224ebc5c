package preview

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
)

// foldState is the on-disk form of the fold store.
type foldState struct {
	Collapsed map[string]bool `yaml:"collapsed"`
}

// loadState restores fold state from the state file when one is configured and present.
func (s *Server) loadState() error {
	folder, ok := s.engine.(Folder)
	if !ok || s.opts.StateFile == "" {
		return nil
	}

	data, err := os.ReadFile(s.opts.StateFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}

	var state foldState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse state: %w", err)
	}

	folder.Folds().Restore(state.Collapsed)
	s.logger.Debug("fold state restored", logging.FieldPath, s.opts.StateFile, logging.FieldBlocks, len(state.Collapsed))
	return nil
}

// saveState writes the fold state file.
func (s *Server) saveState(ctx context.Context) error {
	folder, ok := s.engine.(Folder)
	if !ok || s.opts.StateFile == "" {
		return nil
	}

	data, err := yaml.Marshal(foldState{Collapsed: folder.Folds().Snapshot()})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, s.opts.StateFile, data, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
