package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.shopdesk/config.toml.

Environment variables (MILVUS_URI, OPENAI_API_KEY, DEFAULT_PROVIDER, ...)
override stored values and are reflected by 'config show'.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its dot-notation key.

When the value is omitted, API keys and tokens are read without echo and
providers are chosen from a list.

Keys:
  ` + strings.Join(services.SettingKeys(), "\n  "),
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a stored setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(configPath)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Embedding settings
	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", providerLabel(settings.Embedding.Provider, "hash only"))
	cmd.Printf("  Model: %s\n", valueOrUnset(settings.Embedding.Model))
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", secretLabel(settings.Embedding.APIKey))
	}
	cmd.Printf("  Dimensions: %d\n", settings.Embedding.Dimensions)
	cmd.Printf("  Status: %s\n", statusLabel(settings.Embedding.IsConfigured()))
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", providerLabel(settings.LLM.Provider, "passage fallback"))
	cmd.Printf("  Model: %s\n", valueOrUnset(settings.LLM.Model))
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", secretLabel(settings.LLM.APIKey))
	}
	cmd.Printf("  Max Tokens: %d\n", settings.Retrieval.MaxTokens)
	cmd.Printf("  Status: %s\n", statusLabel(settings.LLM.IsConfigured()))
	cmd.Println()

	// Vector store settings
	cmd.Println("[Vector Store]")
	cmd.Printf("  Remote URI: %s\n", valueOrUnset(settings.VectorStore.URI))
	if settings.VectorStore.URI != "" {
		cmd.Printf("  Token: %s\n", secretLabel(settings.VectorStore.Token))
		cmd.Printf("  Timeout: %ds\n", settings.VectorStore.TimeoutSeconds)
		cmd.Printf("  Requests/s: %g\n", settings.VectorStore.RequestsPerSecond)
	}
	cmd.Printf("  Collection: %s\n", settings.VectorStore.Collection)
	cmd.Printf("  Local Path: %s\n", settings.VectorStore.LocalPath)
	cmd.Println()

	// Retrieval and chunking
	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Chunk Words: %d-%d (overlap %d)\n",
		settings.Chunking.MinWords, settings.Chunking.MaxWords, settings.Chunking.Overlap)
	cmd.Println()

	if stored := settingsService.StoredKeys(); len(stored) > 0 {
		cmd.Printf("Stored in %s: %s\n", configPath, strings.Join(stored, ", "))
	}

	if err := settingsService.Validate(settings); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'shopdesk config set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string

	switch {
	case len(args) == 2:
		value = args[1]
	case services.IsSecretKey(key):
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
		if value == "" {
			return errors.New("a value is required")
		}
	case strings.HasSuffix(key, ".provider"):
		value = chooseProvider(cmd, key)
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if services.IsSecretKey(key) {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Unset %s\n", args[0])
	return nil
}

// chooseProvider lists the providers valid for key and reads a choice.
func chooseProvider(cmd *cobra.Command, key string) string {
	providers := domain.AllLLMProviders()
	if strings.HasPrefix(key, "embedding.") {
		providers = domain.AllEmbeddingProviders()
	}

	cmd.Println("Select Provider")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")

	idx := parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(providers), 1)
	return providers[idx-1].String()
}

func providerLabel(p domain.AIProvider, unset string) string {
	if p == "" {
		return "(not set, " + unset + ")"
	}
	return p.Description()
}

func statusLabel(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}

func secretLabel(v string) string {
	if v == "" {
		return "(not set)"
	}
	return maskAPIKey(v)
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	return readLine(bufio.NewReader(in))
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N]: ", question)
	answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
	return answer == "y" || answer == "yes"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
