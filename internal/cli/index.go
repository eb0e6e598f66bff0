package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"newsbrief/internal/adapter/store"
	"newsbrief/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed all chunks and rebuild the search index",
	Long: `Embed every chunk of every ingested article and rebuild the vector
index bundle. Every run is a full rebuild from the current corpus.

Example:
  newsbrief index`,
	RunE: runIndexBuild,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	articles, err := store.NewArticleStore(dataDir())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(indexPath()), 0755); err != nil {
		return fmt.Errorf("failed to create index dir: %w", err)
	}

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	buildUC := usecase.NewBuildUseCase(articles, embedder, cfg.Embedding.BatchSize, progress)

	fmt.Printf("Building index with model %s...\n", embedder.ModelName())

	result, err := buildUC.Build(indexPath())
	if err != nil {
		return err
	}

	fmt.Printf("\nIndex build complete:\n")
	fmt.Printf("  Articles:  %d\n", result.Articles)
	fmt.Printf("  Chunks:    %d\n", result.Chunks)
	fmt.Printf("  Dimension: %d\n", result.Dimension)
	fmt.Printf("\nIndex stored at: %s\n", result.IndexPath)
	return nil
}
