package note

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const projectionCacheSize = 512

// Filter derives the visible note set for a view. It caches plain-text
// projections keyed by content hash so repeated searches over unchanged
// notes don't re-parse markup.
type Filter struct {
	proj *lru.Cache[uint64, string]
}

func NewFilter() *Filter {
	proj, _ := lru.New[uint64, string](projectionCacheSize)
	return &Filter{proj: proj}
}

// Visible filters and sorts notes for the given view and search query.
//
// Three stages, in fixed order. Isolation runs first and always: secret
// notes appear only in the vault view, and no other note appears there.
// Scope (folder or category) applies only when the query is empty; the
// ALL view skips it. Search applies only when the query is non-empty
// and is global across the isolation-filtered set, so a filed note is
// findable from anywhere. Results sort newest-updated first.
func (f *Filter) Visible(notes []Note, view View, query string, unlocked bool) []Note {
	if view.Kind == ViewVault && !unlocked {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if (n.Category == CategorySecret) != (view.Kind == ViewVault) {
			continue
		}
		if q == "" {
			switch view.Kind {
			case ViewFolder:
				if n.FolderID != view.FolderID {
					continue
				}
			case ViewCategory:
				if n.Category != view.Category {
					continue
				}
			}
		} else if !f.matches(n, q) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (f *Filter) matches(n Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(f.Plain(n)), q)
}

// Plain returns the note's plain-text projection, cached by content
// hash. Code bodies are returned verbatim without touching the cache.
func (f *Filter) Plain(n Note) string {
	if n.Body == nil {
		return ""
	}
	if _, ok := n.Body.(CodeBody); ok {
		return n.Body.Raw()
	}
	key := xxhash.Sum64String(n.Body.Raw())
	if s, ok := f.proj.Get(key); ok {
		return s
	}
	s := StripMarkup(n.Body.Raw())
	f.proj.Add(key, s)
	return s
}
