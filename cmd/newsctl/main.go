// Newsctl runs the aggregation path from the command line, mainly for
// smoke-testing provider credentials and category mappings.
//
// Usage:
//
//	newsctl fetch technology science   # fetch for a preference set
//	newsctl fetch                      # fetch general headlines
//	newsctl search climate             # keyword search over fetched news
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/config"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/aggregator"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/cache"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/htmltext"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newsctl",
		Short: "One-shot news aggregation from the configured providers",
	}

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fetchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "fetch [topics...]",
		Short: "Fetch and rank news for a preference set",
		RunE: func(cmd *cobra.Command, args []string) error {
			agg, err := buildAggregator()
			if err != nil {
				return err
			}
			articles := agg.FetchByPreferences(context.Background(), args)
			printArticles(articles, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum articles to print")
	return cmd
}

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search fetched news by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agg, err := buildAggregator()
			if err != nil {
				return err
			}
			articles := agg.SearchByKeyword(context.Background(), args[0])
			printArticles(articles, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum articles to print")
	return cmd
}

func buildAggregator() (*aggregator.Aggregator, error) {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	srcs := cfg.NewsSources(slog.Default())
	if len(srcs) == 0 {
		return nil, fmt.Errorf("no providers configured; set at least one API key")
	}
	return aggregator.New(cache.New(cfg.TTL()), srcs...), nil
}

func printArticles(articles []sources.Article, limit int) {
	if len(articles) == 0 {
		fmt.Println("no articles")
		return
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	for i, a := range articles {
		date := "unknown date"
		if a.HasTimestamp() {
			date = a.PublishedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("%2d. %s\n    %s | %s\n    %s\n", i+1, a.Title, a.Source, date, a.URL)
		if a.Description != "" {
			fmt.Printf("    %s\n", htmltext.Truncate(a.Description, 160))
		}
	}
}
