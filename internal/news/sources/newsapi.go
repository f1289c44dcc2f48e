package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// NewsAPI fetches top headlines from NewsAPI.org.
type NewsAPI struct {
	apiKey  string
	baseURL string
	country string
	client  *http.Client
}

// NewNewsAPI creates a NewsAPI.org adapter.
func NewNewsAPI(apiKey string) *NewsAPI {
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: "https://newsapi.org/v2",
		country: "us",
		client:  newClient(),
	}
}

func (s *NewsAPI) Name() string { return "NewsAPI.org" }

func (s *NewsAPI) Fetch(ctx context.Context, topic string) ([]Article, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredential
	}

	params := url.Values{}
	params.Set("country", s.country)
	params.Set("pageSize", strconv.Itoa(pageSize))
	if category, ok := logicalCategories[strings.ToLower(topic)]; ok {
		params.Set("category", category)
	} else {
		params.Set("q", topic)
	}

	var payload struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			URLToImage  string `json:"urlToImage"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	endpoint := s.baseURL + "/top-headlines?" + params.Encode()
	headers := map[string]string{"X-Api-Key": s.apiKey}
	if err := getJSON(ctx, s.client, endpoint, headers, &payload); err != nil {
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
			ImageURL:    a.URLToImage,
			PublishedAt: parseTime(a.PublishedAt),
			Source:      a.Source.Name,
		})
	}
	return articles, nil
}
