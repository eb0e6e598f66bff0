package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsbrief/internal/usecase"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the index for relevant passages",
	Long: `Embed the query and run a nearest-neighbor search against the index.
Results are ranked from 1; lower distance means more similar.

Examples:
  newsbrief query -q "AI regulation"
  newsbrief query -q "chip exports" -k 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	queryUC := usecase.NewQueryUseCase(embedder, indexPath())
	results, err := queryUC.Query(queryText, topK)
	if err != nil {
		return err
	}

	if queryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%d. [%.4f] (%s) %s\n", r.Rank, r.Distance, r.Meta.Source, r.Meta.Title)
		fmt.Printf("   %s chunk:%d\n", r.Meta.URL, r.Meta.ChunkIndex)
	}
	return nil
}
