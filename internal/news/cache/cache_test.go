package cache

import (
	"testing"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
)

func art(url string) sources.Article {
	return sources.Article{Title: "about " + url, URL: url}
}

func TestKey_EmptySet(t *testing.T) {
	if got := Key(nil); got != GeneralKey {
		t.Fatalf("expected %q, got %q", GeneralKey, got)
	}
	if got := Key([]string{}); got != GeneralKey {
		t.Fatalf("expected %q, got %q", GeneralKey, got)
	}
}

func TestKey_SetSemantics(t *testing.T) {
	a := Key([]string{"sports", "technology"})
	b := Key([]string{"technology", "sports"})
	if a != b {
		t.Fatalf("order should not matter: %q vs %q", a, b)
	}

	c := Key([]string{"technology", "sports", "technology"})
	if c != a {
		t.Fatalf("duplicates should not matter: %q vs %q", c, a)
	}

	if a != "sports,technology" {
		t.Fatalf("unexpected key: %q", a)
	}
}

func TestKey_CasePreserving(t *testing.T) {
	if got := Key([]string{"Tech"}); got != "Tech" {
		t.Fatalf("expected case-preserved key, got %q", got)
	}
	if Key([]string{"tech"}) == Key([]string{"Tech"}) {
		t.Fatal("differently-cased members are distinct keys")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := New(time.Minute)
	entries := []sources.Article{art("https://a.example/1"), art("https://b.example/2")}
	s.Set("general", entries)

	got, ok := s.Get("general")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d articles, got %d", len(entries), len(got))
	}
	for i := range entries {
		if got[i].URL != entries[i].URL {
			t.Fatalf("article %d: expected %q, got %q", i, entries[i].URL, got[i].URL)
		}
	}
}

func TestStore_MissingKey(t *testing.T) {
	s := New(time.Minute)
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected a miss")
	}
}

func TestStore_GetEvictsExpired(t *testing.T) {
	s := New(time.Minute)
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Set("general", []sources.Article{art("https://a.example/1")})

	// Exactly at TTL the entry is already expired.
	current = current.Add(time.Minute)
	if _, ok := s.Get("general"); ok {
		t.Fatal("expected a miss after TTL elapsed")
	}
	if s.Len() != 0 {
		t.Fatal("expired entry should have been evicted by Get")
	}
}

func TestStore_SetResetsTimestamp(t *testing.T) {
	s := New(time.Minute)
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Set("general", []sources.Article{art("https://a.example/1")})
	current = current.Add(59 * time.Second)
	s.Set("general", []sources.Article{art("https://a.example/2")})
	current = current.Add(59 * time.Second)

	got, ok := s.Get("general")
	if !ok {
		t.Fatal("expected a hit, Set should reset the entry age")
	}
	if got[0].URL != "https://a.example/2" {
		t.Fatalf("expected the replaced entry, got %q", got[0].URL)
	}
}

func TestStore_SweepExpired(t *testing.T) {
	s := New(time.Minute)
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Set("old", []sources.Article{art("https://a.example/1")})
	current = current.Add(30 * time.Second)
	s.Set("fresh", []sources.Article{art("https://b.example/2")})
	current = current.Add(30 * time.Second)

	if removed := s.SweepExpired(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Fatal("fresh entry should survive the sweep")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry after sweep, got %d", s.Len())
	}
}

func TestStore_AllValidSkipsExpired(t *testing.T) {
	s := New(time.Minute)
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Set("old", []sources.Article{art("https://a.example/1")})
	current = current.Add(45 * time.Second)
	s.Set("b", []sources.Article{art("https://b.example/2")})
	s.Set("a", []sources.Article{art("https://c.example/3")})
	current = current.Add(30 * time.Second)

	lists := s.AllValid()
	if len(lists) != 2 {
		t.Fatalf("expected 2 valid lists, got %d", len(lists))
	}
	// Key order is lexicographic: "a" before "b".
	if lists[0][0].URL != "https://c.example/3" || lists[1][0].URL != "https://b.example/2" {
		t.Fatalf("unexpected order: %q, %q", lists[0][0].URL, lists[1][0].URL)
	}
}

func TestStore_Clear(t *testing.T) {
	s := New(time.Minute)
	s.Set("general", []sources.Article{art("https://a.example/1")})
	s.Clear()
	if s.Len() != 0 {
		t.Fatal("expected an empty store after Clear")
	}
}
