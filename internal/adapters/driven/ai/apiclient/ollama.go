package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// RequireOllamaModel checks that model has been pulled into the Ollama
// server behind c. A bare name matches any tag of that model.
func RequireOllamaModel(ctx context.Context, c *Client, model string) error {
	var tags ollamaTags
	if err := c.Get(ctx, "/api/tags", &tags); err != nil {
		return err
	}

	for _, m := range tags.Models {
		if m.Name == model || strings.HasPrefix(m.Name, model+":") {
			return nil
		}
	}
	return fmt.Errorf("%s: model %s is not pulled, run 'ollama pull %s': %w",
		c.provider, model, model, domain.ErrNotFound)
}
