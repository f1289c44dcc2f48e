package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewsCatcher_FreeTextAlways(t *testing.T) {
	var gotQuery map[string][]string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{"articles": []}`))
	}))
	defer srv.Close()

	s := NewNewsCatcher("secret")
	s.baseURL = srv.URL

	if _, err := s.Fetch(context.Background(), "technology"); err != nil {
		t.Fatal(err)
	}
	if gotKey != "secret" {
		t.Fatalf("x-api-key = %q", gotKey)
	}
	// No category endpoint: even a logical category goes out as a query.
	if got := gotQuery["q"]; len(got) != 1 || got[0] != "technology" {
		t.Fatalf("q param = %v", got)
	}
	if got := gotQuery["page_size"]; len(got) != 1 || got[0] != "20" {
		t.Fatalf("page_size param = %v", got)
	}
}

func TestNewsCatcher_CleansHTMLAndFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"articles": [
				{
					"title": "Markets",
					"summary": "<p>Stocks <b>rallied</b> on Friday.</p>",
					"link": "https://example.com/markets",
					"published_date": "2024-03-01 10:30:00",
					"clean_url": "example.com"
				},
				{
					"title": "Fallbacks",
					"summary": "",
					"excerpt": "Plain excerpt",
					"link": "https://example.com/fallbacks",
					"published_date": "not a date"
				}
			]
		}`))
	}))
	defer srv.Close()

	s := NewNewsCatcher("secret")
	s.baseURL = srv.URL

	articles, err := s.Fetch(context.Background(), "markets")
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected two articles, got %d", len(articles))
	}

	if got := articles[0].Description; got != "Stocks rallied on Friday." {
		t.Fatalf("cleaned description = %q", got)
	}
	if !articles[0].PublishedAt.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("PublishedAt = %v", articles[0].PublishedAt)
	}
	if articles[0].Source != "example.com" {
		t.Fatalf("Source = %q", articles[0].Source)
	}

	if got := articles[1].Description; got != "Plain excerpt" {
		t.Fatalf("excerpt fallback = %q", got)
	}
	if articles[1].Source != "Unknown" {
		t.Fatalf("missing clean_url should fall back to Unknown, got %q", articles[1].Source)
	}
	if articles[1].HasTimestamp() {
		t.Fatal("unparsable published_date should leave the zero time")
	}
}

func TestNewsCatcher_MissingKey(t *testing.T) {
	s := NewNewsCatcher("")
	if _, err := s.Fetch(context.Background(), "anything"); err != ErrNoCredential {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}
