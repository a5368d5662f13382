// Package cli provides the shopdesk command line interface.
package cli

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services holds the driving ports used by the commands that touch the
// knowledge base or the stores.
type Services struct {
	Retrieval driving.RetrievalService
	Assistant driving.AssistantService
	Ingest    driving.IngestService
	Orders    driving.OrderService
	Returns   driving.ReturnsService

	// Metrics serves the Prometheus registry on the HTTP API. Optional.
	Metrics http.Handler

	// Close releases provider clients. Optional.
	Close func()
}

// ServiceFactory builds Services from the current settings.
type ServiceFactory func() (*Services, error)

var (
	settingsService driving.SettingsService
	configPath      string

	serviceFactory ServiceFactory
	built          *Services
	servicesErr    error
	servicesOnce   sync.Once
)

var rootCmd = &cobra.Command{
	Use:   "shopdesk",
	Short: "E-commerce support assistant",
	Long: `shopdesk answers customer-support questions from a knowledge base of store
policies and handles order, return and inventory lookups.

Answers are grounded in passages retrieved from a tiered vector store
(remote Milvus, local JSON file, built-in defaults) and written by the
configured LLM, or taken from the best passage when no LLM is available.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic logs to stderr")
}

// Execute runs the root command. Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by 'shopdesk version'.
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service used by 'shopdesk config'.
func SetSettingsService(s driving.SettingsService, path string) {
	settingsService = s
	configPath = path
}

// SetServiceFactory sets the builder used the first time a command needs
// the knowledge base. Commands that only read configuration never call it.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
	built = nil
	servicesErr = nil
	servicesOnce = sync.Once{}
}

// loadServices builds the services once per process.
func loadServices() (*Services, error) {
	servicesOnce.Do(func() {
		if built != nil {
			return
		}
		if serviceFactory == nil {
			servicesErr = errors.New("services not configured")
			return
		}
		built, servicesErr = serviceFactory()
	})
	return built, servicesErr
}

// CloseServices releases the services if they were built.
func CloseServices() {
	if built != nil && built.Close != nil {
		built.Close()
	}
}
