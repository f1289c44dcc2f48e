package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/htmltext"
)

// NewsCatcher fetches articles from the NewsCatcher search API. It has no
// category endpoint, so every topic is sent as a free-text query.
type NewsCatcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewNewsCatcher creates a NewsCatcher adapter.
func NewNewsCatcher(apiKey string) *NewsCatcher {
	return &NewsCatcher{
		apiKey:  apiKey,
		baseURL: "https://api.newscatcher.com",
		client:  newClient(),
	}
}

func (s *NewsCatcher) Name() string { return "NewsCatcher" }

func (s *NewsCatcher) Fetch(ctx context.Context, topic string) ([]Article, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredential
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("lang", "en")
	params.Set("sort_by", "relevancy")
	params.Set("page_size", strconv.Itoa(pageSize))

	var payload struct {
		Articles []struct {
			Title         string `json:"title"`
			Summary       string `json:"summary"`
			Excerpt       string `json:"excerpt"`
			Link          string `json:"link"`
			Media         string `json:"media"`
			PublishedDate string `json:"published_date"`
			CleanURL      string `json:"clean_url"`
		} `json:"articles"`
	}

	endpoint := s.baseURL + "/v1/search?" + params.Encode()
	headers := map[string]string{"x-api-key": s.apiKey}
	if err := getJSON(ctx, s.client, endpoint, headers, &payload); err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		// Summaries frequently arrive as HTML fragments.
		description := a.Summary
		if description == "" {
			description = a.Excerpt
		}
		source := a.CleanURL
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: htmltext.Clean(description),
			URL:         a.Link,
			ImageURL:    a.Media,
			PublishedAt: parseTime(a.PublishedDate),
			Source:      source,
		})
	}
	return articles, nil
}
