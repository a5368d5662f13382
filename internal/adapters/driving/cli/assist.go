package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/core/services"
)

var assistJSON bool

var assistCmd = &cobra.Command{
	Use:   "assist [query]",
	Short: "Route a request to the matching tool and run it",
	Long: `Classifies a customer request and dispatches it to the knowledge base or
to the order, returns or inventory tool.

Examples:
  shopdesk assist "Where is my order ORD-001?"
  shopdesk assist "Is PROD-002 in stock?"
  shopdesk assist "What is your return policy?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAssist,
}

var routeCmd = &cobra.Command{
	Use:   "route [query]",
	Short: "Show which tool a request would be sent to",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoute,
}

func init() {
	assistCmd.Flags().BoolVar(&assistJSON, "json", false, "output the response envelope as JSON")
	rootCmd.AddCommand(assistCmd)
	rootCmd.AddCommand(routeCmd)
}

func runAssist(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	resp := svc.Assistant.Assist(cmd.Context(), args[0], nil)

	if assistJSON {
		if err := printJSON(cmd, resp); err != nil {
			return err
		}
	} else if resp.OK() {
		cmd.Println(services.FormatResponse(resp))
	}

	if !resp.OK() {
		return errors.New(resp.Error)
	}
	return nil
}

func runRoute(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	route := svc.Assistant.Route(args[0])

	cmd.Printf("Intent:     %s\n", route.Intent)
	cmd.Printf("Tool:       %s\n", route.Tool)
	cmd.Printf("Confidence: %.2f\n", route.Confidence)
	cmd.Printf("Reasoning:  %s\n", route.Reasoning)
	return nil
}
