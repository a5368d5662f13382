package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Load .txt and .md files into the knowledge base",
	Long: `Walks a directory of policy documents, splits each file into overlapping
chunks, embeds them and inserts them into the highest writable tier.

The topic of each chunk is derived from its filename.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in knowledge base to the local store",
	Long: `Writes the seven built-in policy documents to the local store.
An existing local store is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector store state and record counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every record from the writable tiers",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	cmd.Printf("Ingesting %s...\n", args[0])
	report, err := svc.Ingest.IngestDir(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	outputReport(cmd, report)
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	report, err := svc.Ingest.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if report.Inserted == 0 {
		cmd.Println("Local store already has records, nothing written.")
		return nil
	}
	outputReport(cmd, report)
	return nil
}

func outputReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Documents: %d\n", report.Documents)
	cmd.Printf("Chunks:    %d\n", report.Chunks)
	cmd.Printf("Inserted:  %d", report.Inserted)
	if report.Tier != "" {
		cmd.Printf(" (%s)", report.Tier)
	}
	cmd.Println()

	if len(report.Skipped) > 0 {
		cmd.Println("Skipped:")
		for _, path := range report.Skipped {
			cmd.Printf("  - %s\n", path)
		}
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	stats := svc.Retrieval.Stats(cmd.Context())

	cmd.Printf("State:       %s\n", stats.State)
	cmd.Printf("Active tier: %s\n", stats.ActiveTier)
	cmd.Printf("Dimension:   %d\n", stats.Dimension)
	cmd.Println()
	cmd.Println("Tiers:")
	for _, tier := range stats.Tiers {
		records := "unknown"
		if tier.Records >= 0 {
			records = fmt.Sprintf("%d", tier.Records)
		}
		mode := "read-only"
		if tier.Writable {
			mode = "writable"
		}
		cmd.Printf("  %-9s %8s records  %-9s", tier.Name, records, mode)
		if tier.Location != "" {
			cmd.Printf("  %s", tier.Location)
		}
		if tier.Err != "" {
			cmd.Printf("  (%s)", tier.Err)
		}
		cmd.Println()
	}
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	if !clearForce && !confirm(cmd, "Remove every record from the remote and local stores?") {
		cmd.Println("Aborted.")
		return nil
	}

	if err := svc.Ingest.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Println("Vector store cleared.")
	return nil
}
