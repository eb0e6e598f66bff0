package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newsbrief/internal/adapter/chunker"
	"newsbrief/internal/adapter/extract"
	"newsbrief/internal/adapter/newsapi"
	"newsbrief/internal/adapter/store"
	"newsbrief/internal/usecase"
)

var (
	ingestQuery string
	ingestDays  int
	ingestMax   int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and chunk news articles for a query",
	Long: `Fetch recent articles from NewsAPI for the given query, scrape full
text where possible, split it into overlapping word chunks, and store
one JSON record per article in the data directory.

Examples:
  newsbrief ingest -q "electric vehicles"
  newsbrief ingest -q "AI regulation" --days 3 --max 10`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVarP(&ingestQuery, "query", "q", "", "search query (required)")
	ingestCmd.Flags().IntVar(&ingestDays, "days", 0, "search last N days (default from config)")
	ingestCmd.Flags().IntVar(&ingestMax, "max", 0, "maximum articles to ingest (default from config)")
	ingestCmd.MarkFlagRequired("query")
}

func runIngest(cmd *cobra.Command, args []string) error {
	apiKey, err := cfg.NewsAPIKey()
	if err != nil {
		return err
	}

	days := cfg.Ingest.FromDays
	if ingestDays > 0 {
		days = ingestDays
	}
	maxArticles := cfg.Ingest.MaxArticles
	if ingestMax > 0 {
		maxArticles = ingestMax
	}

	chk, err := chunker.NewWordChunker(cfg.Ingest.ChunkWords, cfg.Ingest.OverlapWords)
	if err != nil {
		return err
	}
	articles, err := store.NewArticleStore(dataDir())
	if err != nil {
		return err
	}

	ingestUC := usecase.NewIngestUseCase(
		newsapi.NewClient(apiKey, ""),
		extract.NewReadabilityExtractor(15*time.Second),
		chk,
		articles,
	)

	fmt.Printf("Fetching up to %d articles for %q (last %d day(s))...\n", maxArticles, ingestQuery, days)

	result, err := ingestUC.Ingest(ingestQuery, days, maxArticles)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Articles stored:  %d\n", len(result.Ingested))
	fmt.Printf("  Articles skipped: %d (no usable text)\n", result.Skipped)
	for _, rec := range result.Ingested {
		fmt.Printf("  - %s (%s): %d chunks\n", rec.Title, rec.Source, len(rec.Chunks))
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nRecords stored in: %s\n", dataDir())
	return nil
}
