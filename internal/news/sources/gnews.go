package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GNews fetches articles from the GNews search API. Topics in the logical
// category vocabulary are additionally sent as the GNews "topic" filter.
type GNews struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGNews creates a GNews adapter.
func NewGNews(apiKey string) *GNews {
	return &GNews{
		apiKey:  apiKey,
		baseURL: "https://gnews.io/api/v4",
		client:  newClient(),
	}
}

func (s *GNews) Name() string { return "GNews" }

func (s *GNews) Fetch(ctx context.Context, topic string) ([]Article, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredential
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("token", s.apiKey)
	params.Set("lang", "en")
	params.Set("max", strconv.Itoa(pageSize))
	if category, ok := logicalCategories[strings.ToLower(topic)]; ok {
		params.Set("topic", category)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Image       string `json:"image"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	endpoint := s.baseURL + "/search?" + params.Encode()
	if err := getJSON(ctx, s.client, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.Image,
			PublishedAt: parseTime(a.PublishedAt),
			Source:      a.Source.Name,
		})
	}
	return articles, nil
}
