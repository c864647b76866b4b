// Package prompts loads named text templates from a directory and renders
// {placeholder}-style substitutions at the formatting boundary.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

const templateExt = ".txt"

// Store caches trimmed template file contents keyed by logical path.
// Cache entries are only ever added, never mutated, so concurrent reads
// of already-cached templates are safe.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string
}

// NewStore creates a store rooted at dir. The directory must exist.
func NewStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("prompts: directory %s: %w", dir, ErrTemplateNotFound)
	}
	return &Store{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Get returns the trimmed content of the template at the given logical key.
// "responses/greeting" and "responses/greeting.txt" address the same slot.
// The first access reads from disk; later accesses hit the cache.
func (s *Store) Get(key string) (string, error) {
	key = normalizeKey(key)

	s.mu.RLock()
	content, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return content, nil
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("prompts: template %s: %w", key, ErrTemplateNotFound)
		}
		return "", &ReadError{Key: key, Err: err}
	}

	content = strings.TrimSpace(string(raw))

	s.mu.Lock()
	s.cache[key] = content
	s.mu.Unlock()

	return content, nil
}

// Invalidate clears the entire cache; subsequent lookups re-read from disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

func normalizeKey(key string) string {
	if !strings.HasSuffix(key, templateExt) {
		key += templateExt
	}
	return key
}

var placeholderRE = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Render substitutes {name}-style placeholders in text from vars.
// Every placeholder referenced by the text must be supplied; a template
// whose placeholder set drifts from its caller fails here rather than
// producing text with raw braces.
func Render(text string, vars map[string]string) (string, error) {
	var missing []string
	rendered := placeholderRE.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("prompts: placeholders %v: %w", missing, ErrMissingPlaceholder)
	}
	return rendered, nil
}
