package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// NewsAPIAI fetches articles from NewsAPI.ai.
type NewsAPIAI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewNewsAPIAI creates a NewsAPI.ai adapter.
func NewNewsAPIAI(apiKey string) *NewsAPIAI {
	return &NewsAPIAI{
		apiKey:  apiKey,
		baseURL: "https://newsapi.ai/api/v1",
		client:  newClient(),
	}
}

func (s *NewsAPIAI) Name() string { return "NewsAPI.ai" }

func (s *NewsAPIAI) Fetch(ctx context.Context, topic string) ([]Article, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredential
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("apiKey", s.apiKey)
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))
	if category, ok := logicalCategories[strings.ToLower(topic)]; ok {
		params.Set("category", category)
	}

	var payload struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
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

	endpoint := s.baseURL + "/article/getArticles?" + params.Encode()
	if err := getJSON(ctx, s.client, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Status == "error" {
		return nil, fmt.Errorf("api error: %s", payload.Message)
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
