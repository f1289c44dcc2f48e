// Package aggregator fans queries out to every configured provider, merges
// and ranks the partial results, and serves them through the article cache.
package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/cache"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
)

// MaxArticles caps every result list.
const MaxArticles = 100

// Aggregator coordinates provider fan-out and the write-through cache.
// Construct it with the providers in the order that should win timestamp
// ties; merge order is deterministic across runs.
type Aggregator struct {
	sources []sources.Source
	cache   *cache.Store
	logger  *slog.Logger
}

// New creates an Aggregator over the given providers.
func New(store *cache.Store, srcs ...sources.Source) *Aggregator {
	return &Aggregator{
		sources: srcs,
		cache:   store,
		logger:  slog.Default(),
	}
}

// FetchByPreferences returns the ranked article list for a preference set.
// A valid cache entry is returned as-is; on a miss every provider is
// queried concurrently for every preference ("general" once per provider
// when the set is empty), individual provider failures are absorbed, and
// the merged result is written back under the preference set's key. Total
// provider failure yields an empty list, never an error.
func (a *Aggregator) FetchByPreferences(ctx context.Context, preferences []string) []sources.Article {
	key := cache.Key(preferences)
	if articles, ok := a.cache.Get(key); ok {
		return articles
	}

	topics := preferences
	if len(topics) == 0 {
		topics = []string{"general"}
	}

	// One slot per (source, topic) pair so the merge below can walk the
	// results source-major then topic-major regardless of completion order.
	results := make([][]sources.Article, len(a.sources)*len(topics))
	var wg sync.WaitGroup
	for si, src := range a.sources {
		for ti, topic := range topics {
			wg.Add(1)
			go func(slot int, src sources.Source, topic string) {
				defer wg.Done()
				articles, err := src.Fetch(ctx, topic)
				if err != nil {
					a.logFetchError(src, topic, err)
					return
				}
				results[slot] = articles
			}(si*len(topics)+ti, src, topic)
		}
	}
	wg.Wait()

	merged := dedupe(nil, results...)
	ranked := rankAndLimit(merged)
	a.cache.Set(key, ranked)
	return ranked
}

// SearchByKeyword filters the union of all valid cache entries by a
// case-insensitive substring match on title, description, or source name.
// An empty cache triggers exactly one implicit general fetch before the
// search runs, even if that fetch itself produces nothing.
func (a *Aggregator) SearchByKeyword(ctx context.Context, keyword string) []sources.Article {
	view := a.cachedView()
	if len(view) == 0 {
		a.FetchByPreferences(ctx, nil)
		view = a.cachedView()
	}

	needle := strings.ToLower(keyword)
	var matched []sources.Article
	for _, article := range view {
		if strings.Contains(strings.ToLower(article.Title), needle) ||
			strings.Contains(strings.ToLower(article.Description), needle) ||
			strings.Contains(strings.ToLower(article.Source), needle) {
			matched = append(matched, article)
		}
	}
	return rankAndLimit(matched)
}

// CacheSize reports the number of entries currently cached.
func (a *Aggregator) CacheSize() int {
	return a.cache.Len()
}

// cachedView flattens every valid cache entry into one URL-deduplicated
// list. The view is derived fresh on every call so it always reflects the
// latest expiry state.
func (a *Aggregator) cachedView() []sources.Article {
	return dedupe(nil, a.cache.AllValid()...)
}

func (a *Aggregator) logFetchError(src sources.Source, topic string, err error) {
	if errors.Is(err, sources.ErrNoCredential) {
		a.logger.Debug("provider skipped", "source", src.Name(), "reason", err)
		return
	}
	a.logger.Warn("provider fetch failed", "source", src.Name(), "topic", topic, "error", err)
}

// dedupe appends the given lists onto dst keeping only the first article
// seen for each URL.
func dedupe(dst []sources.Article, lists ...[]sources.Article) []sources.Article {
	seen := make(map[string]struct{}, len(dst))
	for _, article := range dst {
		seen[article.URL] = struct{}{}
	}
	for _, list := range lists {
		for _, article := range list {
			if _, dup := seen[article.URL]; dup {
				continue
			}
			seen[article.URL] = struct{}{}
			dst = append(dst, article)
		}
	}
	return dst
}

// rankAndLimit orders articles newest first, places articles whose
// timestamp could not be parsed after all dated ones, and truncates to
// MaxArticles. The sort is stable so ties keep their merge order.
func rankAndLimit(articles []sources.Article) []sources.Article {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if a.HasTimestamp() != b.HasTimestamp() {
			return a.HasTimestamp()
		}
		return a.PublishedAt.After(b.PublishedAt)
	})
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}
	return articles
}
