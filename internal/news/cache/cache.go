// Package cache implements the TTL-bounded article cache keyed by
// normalized preference sets.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
)

// DefaultTTL is how long a cache entry stays valid.
const DefaultTTL = 15 * time.Minute

// GeneralKey is the reserved key for the empty preference set.
const GeneralKey = "general"

// keySeparator joins sorted preference members into a key.
const keySeparator = ","

// Key derives the cache key for a preference set. Members are sorted
// lexicographically (case preserved) and duplicates collapsed, so any two
// sequences that are equal as sets derive the same key. The empty set maps
// to GeneralKey.
func Key(preferences []string) string {
	if len(preferences) == 0 {
		return GeneralKey
	}
	members := make([]string, len(preferences))
	copy(members, preferences)
	sort.Strings(members)

	unique := members[:1]
	for _, m := range members[1:] {
		if m != unique[len(unique)-1] {
			unique = append(unique, m)
		}
	}
	return strings.Join(unique, keySeparator)
}

// entry owns one cached snapshot. Entries are replaced wholesale, never
// mutated in place.
type entry struct {
	articles  []sources.Article
	createdAt time.Time
}

// Store maps preference-set keys to cached article lists with a shared TTL.
// Reads take the read lock; expired entries are evicted lazily on Get in
// addition to the periodic sweep.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Store. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached articles for key. An expired entry is removed and
// reported as a miss, so staleness cannot leak through repeated lookups.
func (s *Store) Get(key string) ([]sources.Article, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if e, ok = s.entries[key]; ok && s.expired(e) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.articles, true
}

// Set stores articles under key with a fresh timestamp, replacing any
// previous entry.
func (s *Store) Set(key string, articles []sources.Article) {
	s.mu.Lock()
	s.entries[key] = entry{articles: articles, createdAt: s.now()}
	s.mu.Unlock()
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// SweepExpired removes every entry whose age has reached the TTL and
// returns how many were removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// AllValid returns the article snapshots of every non-expired entry, in
// lexicographic key order so downstream deduplication is reproducible.
func (s *Store) AllValid() [][]sources.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key, e := range s.entries {
		if !s.expired(e) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	lists := make([][]sources.Article, 0, len(keys))
	for _, key := range keys {
		lists = append(lists, s.entries[key].articles)
	}
	return lists
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) expired(e entry) bool {
	return s.now().Sub(e.createdAt) >= s.ttl
}
