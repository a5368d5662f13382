package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Answer a question from the knowledge base",
	Long: `Retrieves the most relevant policy passages and writes an answer grounded
in them. Sources are listed below the answer.

With --json the full response envelope is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response envelope as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	resp := svc.Retrieval.ProcessQuery(cmd.Context(), args[0], nil)

	if askJSON {
		if err := printJSON(cmd, resp); err != nil {
			return err
		}
	} else {
		outputAnswer(cmd, resp)
	}

	if !resp.OK() {
		return errors.New(resp.Error)
	}
	return nil
}

func outputAnswer(cmd *cobra.Command, resp domain.QueryResponse) {
	if !resp.OK() {
		return
	}

	cmd.Println(resp.Answer)
	if len(resp.Sources) == 0 {
		return
	}

	cmd.Println()
	cmd.Println("Sources:")
	for i, src := range resp.Sources {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, sourceName(src.Metadata, src.ID), src.SimilarityScore)
	}
}

// sourceName returns the filename metadata, or fallback.
func sourceName(meta map[string]any, fallback string) string {
	if name, ok := meta[domain.MetaFilename].(string); ok && name != "" {
		return name
	}
	return fallback
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
