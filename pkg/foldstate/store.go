// Package foldstate tracks the collapsed/expanded state of rendered code blocks.
//
// A Store is owned by the caller and passed to the renderer. Entries are
// created lazily the first time a block id is seen and survive re-renders of
// the same document until Clear is called.
package foldstate

import (
	"fmt"
	"maps"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// idPrefix is prepended to every block id.
const idPrefix = "codeblock-"

// KeyStrategy selects how block ids are derived.
type KeyStrategy string

const (
	// KeyContent derives ids from the block's language and first line.
	// Ids stay stable when unrelated text above the block is edited.
	KeyContent KeyStrategy = "content"

	// KeyPositional numbers blocks by fence ordinal ("codeblock-1", "codeblock-2", ...).
	KeyPositional KeyStrategy = "positional"
)

// IsValid returns true if the strategy is a known value.
func (k KeyStrategy) IsValid() bool {
	switch k {
	case KeyContent, KeyPositional:
		return true
	default:
		return false
	}
}

// Store is a goroutine-safe map from block id to collapsed flag.
type Store struct {
	mu        sync.RWMutex
	collapsed map[string]bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{collapsed: make(map[string]bool)}
}

// Collapsed reports whether the block is collapsed.
// Unknown ids are registered as expanded.
func (s *Store) Collapsed(id string) bool {
	s.mu.RLock()
	value, ok := s.collapsed[id]
	s.mu.RUnlock()
	if ok {
		return value
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if value, ok = s.collapsed[id]; ok {
		return value
	}
	s.collapsed[id] = false
	return false
}

// Toggle flips the state of id and returns the new value.
// An unknown id becomes collapsed.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.collapsed[id]
	s.collapsed[id] = next
	return next
}

// Set forces the state of id.
func (s *Store) Set(id string, collapsed bool) {
	s.mu.Lock()
	s.collapsed[id] = collapsed
	s.mu.Unlock()
}

// Known reports whether id has been registered.
func (s *Store) Known(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collapsed[id]
	return ok
}

// Len returns the number of registered ids.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collapsed)
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	clear(s.collapsed)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.collapsed)
}

// Restore replaces the current state with a copy of state.
func (s *Store) Restore(state map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed = make(map[string]bool, len(state))
	maps.Copy(s.collapsed, state)
}

// Keyer assigns block ids for a single render pass.
// It is not safe for concurrent use; create one per render.
type Keyer struct {
	strategy KeyStrategy
	ordinal  int
	seen     map[string]int
}

// NewKeyer returns a Keyer for strategy. Unknown strategies fall back to KeyContent.
func NewKeyer(strategy KeyStrategy) *Keyer {
	if !strategy.IsValid() {
		strategy = KeyContent
	}
	return &Keyer{strategy: strategy, seen: make(map[string]int)}
}

// Next returns the id for the next code block in document order.
func (k *Keyer) Next(lang, firstLine string) string {
	k.ordinal++

	if k.strategy == KeyPositional {
		return PositionalID(k.ordinal)
	}

	base := ContentID(lang, firstLine)
	k.seen[base]++
	if n := k.seen[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}

// PositionalID returns the id of the n-th block (1-based).
func PositionalID(n int) string {
	return idPrefix + strconv.Itoa(n)
}

// ContentID returns the content-derived id for a block.
func ContentID(lang, firstLine string) string {
	sum := xxhash.Sum64String(lang + "\n" + firstLine)
	return fmt.Sprintf("%s%08x", idPrefix, uint32(sum>>32))
}
