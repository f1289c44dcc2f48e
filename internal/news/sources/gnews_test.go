package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGNews_CategoryAddsTopicFilter(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"articles": [{
				"title": "Vaccines",
				"description": "Trial results",
				"url": "https://example.com/vaccines",
				"image": "https://example.com/v.jpg",
				"publishedAt": "2024-03-01T10:30:00Z",
				"source": {"name": "Example Health"}
			}]
		}`))
	}))
	defer srv.Close()

	s := NewGNews("secret")
	s.baseURL = srv.URL

	articles, err := s.Fetch(context.Background(), "health")
	if err != nil {
		t.Fatal(err)
	}
	if got := gotQuery["token"]; len(got) != 1 || got[0] != "secret" {
		t.Fatalf("token param = %v", got)
	}
	if got := gotQuery["topic"]; len(got) != 1 || got[0] != "health" {
		t.Fatalf("topic param = %v", got)
	}
	if got := gotQuery["q"]; len(got) != 1 || got[0] != "health" {
		t.Fatalf("q param = %v", got)
	}
	if len(articles) != 1 || articles[0].Source != "Example Health" {
		t.Fatalf("unexpected articles: %+v", articles)
	}
}

func TestGNews_UnknownTopicOmitsFilter(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"articles": []}`))
	}))
	defer srv.Close()

	s := NewGNews("secret")
	s.baseURL = srv.URL

	if _, err := s.Fetch(context.Background(), "formula one"); err != nil {
		t.Fatal(err)
	}
	if _, ok := gotQuery["topic"]; ok {
		t.Fatal("unknown topic should not send a topic filter")
	}
}
