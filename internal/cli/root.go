package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"newsbrief/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "newsbrief",
	Short: "Retrieval-augmented news summarizer",
	Long: `newsbrief fetches recent news for a query, chunks and embeds the
articles into a local vector index, and generates evidence-grounded
summaries with numbered citations via a local LLM.

Example usage:
  newsbrief ingest -q "AI regulation"   # Fetch and chunk articles
  newsbrief index                       # Embed chunks and build the index
  newsbrief summarize -q "AI regulation Europe"
  newsbrief serve                       # Web UI on :8080`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./newsbrief.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

// dataDir resolves the article corpus directory against the root dir.
func dataDir() string {
	if filepath.IsAbs(cfg.DataDir) {
		return cfg.DataDir
	}
	return filepath.Join(rootDir, cfg.DataDir)
}

// indexPath resolves the index bundle path against the root dir.
func indexPath() string {
	dir := cfg.IndexDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(rootDir, dir)
	}
	return config.IndexDBPath(dir)
}
