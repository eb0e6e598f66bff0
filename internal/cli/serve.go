package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsbrief/internal/adapter/store"
	"newsbrief/internal/domain"
	"newsbrief/internal/evidence"
	"newsbrief/internal/prompt"
	"newsbrief/internal/server"
	"newsbrief/internal/usecase"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	Long: `Start the web interface: a form that runs retrieval plus generation
and shows the summary, citation list and evidence passages, with PDF
and Markdown export.

Example:
  newsbrief serve --listen :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	articles, err := store.NewArticleStore(dataDir())
	if err != nil {
		return err
	}
	prompts, err := prompt.NewBuilder()
	if err != nil {
		return err
	}

	queries := usecase.NewQueryUseCase(embedder, indexPath())
	assembler := evidence.NewAssembler(articles)

	// The generation client is rebuilt per run so the form's max-tokens
	// value takes effect; everything else is shared.
	run := func(query string, topK, maxTokens int) (*domain.Summary, error) {
		summarizer := usecase.NewSummarizeUseCase(queries, assembler, prompts, newGenerator(cfg, maxTokens))
		return summarizer.Run(query, topK)
	}

	srv, err := server.New(run, cfg.Retrieve.TopK, cfg.Generate.MaxTokens)
	if err != nil {
		return err
	}

	listen := cfg.Server.Listen
	if serveListen != "" {
		listen = serveListen
	}

	fmt.Printf("Serving web UI on %s\n", listen)
	return srv.Start(listen)
}
