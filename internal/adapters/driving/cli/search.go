package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

const searchPreviewLength = 120

var (
	searchLimit    int
	searchMinScore float64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Show the passages a question retrieves, without writing an answer.

Each hit lists the tier that served it and its similarity score, which
makes search the quickest way to see why ask answered the way it did.
--min-score hides weak hits after retrieval, so fewer than --limit
passages may be shown.`,
	Example: `  shopdesk search "free shipping threshold"
  shopdesk search -n 10 --min-score 0.3 "warranty on headphones"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	flags.Float64Var(&searchMinScore, "min-score", 0, "hide results scoring below this (0-1)")
	flags.BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	results, err := svc.Retrieval.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	results = slices.DeleteFunc(results, func(r domain.SearchResult) bool {
		return r.Score < searchMinScore
	})

	if searchJSON {
		return printJSON(cmd, results)
	}
	printHits(cmd, results)
	return nil
}

func printHits(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Print("Results:\n\n")
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, sourceName(r.Metadata, r.ID), r.Score)
		if r.Tier != "" {
			cmd.Printf("      Tier: %s\n", r.Tier)
		}
		cmd.Printf("      %s\n\n", domain.PreviewText(r.Text, searchPreviewLength))
	}
}
