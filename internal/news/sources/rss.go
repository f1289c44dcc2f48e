package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/htmltext"
)

// RSS exposes a set of RSS/Atom feeds as an extra provider. Feeds have no
// server-side query, so items are filtered locally: "general" and unknown
// empty topics return everything, any other topic must appear in the item's
// title, description, or categories.
type RSS struct {
	name     string
	feedURLs []string
	parser   *gofeed.Parser
}

// NewRSS creates an RSS adapter over the given feed URLs.
func NewRSS(name string, feedURLs []string) *RSS {
	return &RSS{
		name:     name,
		feedURLs: feedURLs,
		parser:   gofeed.NewParser(),
	}
}

func (s *RSS) Name() string { return s.name }

func (s *RSS) Fetch(ctx context.Context, topic string) ([]Article, error) {
	if len(s.feedURLs) == 0 {
		return nil, ErrNoCredential
	}

	var articles []Article
	var lastErr error
	for _, feedURL := range s.feedURLs {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("parse feed %s: %w", feedURL, err)
			continue
		}
		for _, item := range feed.Items {
			if !itemMatches(item, topic) {
				continue
			}
			articles = append(articles, Article{
				Title:       item.Title,
				Description: htmltext.Clean(item.Description),
				URL:         item.Link,
				ImageURL:    itemImage(item),
				PublishedAt: itemPublished(item),
				Source:      feed.Title,
			})
		}
	}
	if len(articles) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return articles, nil
}

func itemMatches(item *gofeed.Item, topic string) bool {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || topic == "general" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), topic) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), topic) {
		return true
	}
	for _, c := range item.Categories {
		if strings.EqualFold(c, topic) {
			return true
		}
	}
	return false
}

func itemPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}
