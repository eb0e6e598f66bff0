package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	summarizeQuery string
	summarizeTopK  int
	summarizeJSON  bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate a cited summary for a query",
	Long: `Run the full RAG pipeline: retrieve the most relevant passages from
the index, assemble numbered evidence, and generate a news-style
summary with inline citations.

Examples:
  newsbrief summarize -q "AI regulation Europe"
  newsbrief summarize -q "chip exports" -k 8 --json`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&summarizeQuery, "query", "q", "", "query to summarize (required)")
	summarizeCmd.Flags().IntVarP(&summarizeTopK, "top-k", "k", 0, "passages to retrieve (default from config)")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "output the full result as JSON")
	summarizeCmd.MarkFlagRequired("query")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	summarizer, err := newSummarizer(cfg)
	if err != nil {
		return err
	}

	topK := cfg.Retrieve.TopK
	if summarizeTopK > 0 {
		topK = summarizeTopK
	}

	summary, err := summarizer.Run(summarizeQuery, topK)
	if err != nil {
		return err
	}

	if summarizeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Println("=== SUMMARY ===")
	fmt.Println(summary.Text)
	fmt.Println("\n=== SOURCES ===")
	for _, c := range summary.Citations {
		fmt.Printf("[%d] %s — %s\n", c.Index, c.Title, c.URL)
	}
	return nil
}
