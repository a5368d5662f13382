package tiered

import (
	"time"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/vectorstore/defaults"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/vectorstore/local"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/vectorstore/remote"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Build assembles the remote, local and defaults tiers from settings.
// A remote tier that cannot be configured, or a local file that cannot be
// read, is left out with a warning; the defaults tier is always present.
// The returned local store is nil when it was left out.
func Build(cfg domain.VectorStoreSettings, dimensions int, opts ...Option) (*Store, *local.Store) {
	var tiers []driven.VectorBackend

	if cfg.RemoteConfigured() {
		rb, err := remote.New(remote.Config{
			URI:               cfg.URI,
			Token:             cfg.Token,
			Collection:        cfg.Collection,
			Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Dimensions:        dimensions,
		})
		if err != nil {
			logger.Warn("remote vector store disabled: %v", err)
		} else {
			tiers = append(tiers, rb)
		}
	}

	ls, err := local.Open(local.Config{
		Path:       cfg.LocalPath,
		Collection: cfg.Collection,
		Dimensions: dimensions,
	})
	if err != nil {
		logger.Warn("local vector store disabled: %v", err)
		ls = nil
	} else {
		tiers = append(tiers, ls)
	}

	tiers = append(tiers, defaults.New())

	return New(tiers, append([]Option{WithDimensions(dimensions)}, opts...)...), ls
}
