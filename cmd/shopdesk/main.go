// Command shopdesk is the e-commerce support assistant: a retrieval pipeline
// over policy documents plus order, returns and inventory tools, served as a
// CLI, an interactive chat, an HTTP API and an MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/shopdesk/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is normal outside development.
	_ = godotenv.Load() //nolint:errcheck // optional file

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	settings := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	cli.SetSettingsService(settings, configStore.Path())
	cli.SetServiceFactory(func() (*cli.Services, error) {
		return buildServices(ctx, settings)
	})
	defer cli.CloseServices()

	// cobra has already printed the error.
	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
