package postprocessors

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Builder creates a post-processor from its settings, which may be nil.
type Builder func(cfg map[string]any) (driven.PostProcessor, error)

// Registry builds pipelines from stage names.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register binds name to a builder, replacing any earlier one.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Names returns the registered stage names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.builders))
}

// BuildPipeline builds the stages cfg lists, in order.
func (r *Registry) BuildPipeline(cfg domain.PipelineConfig) (*Pipeline, error) {
	if len(cfg.Processors) == 0 {
		return nil, fmt.Errorf("%w: pipeline has no stages", domain.ErrInvalidInput)
	}

	stages := make([]driven.PostProcessor, 0, len(cfg.Processors))
	for _, name := range cfg.Processors {
		build, ok := r.builders[name]
		if !ok {
			return nil, fmt.Errorf("%w: post-processor %q (registered: %s)",
				domain.ErrUnsupportedType, name, strings.Join(r.Names(), ", "))
		}
		stage, err := build(cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		stages = append(stages, stage)
	}
	return NewPipeline(stages...), nil
}
