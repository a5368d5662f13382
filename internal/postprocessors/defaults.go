package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/postprocessors/chunker"
	"github.com/custodia-labs/shopdesk/internal/postprocessors/dedupe"
)

// RegisterDefaults registers the built-in stages.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("dedupe", buildDedupe)
}

// buildChunker reads max_words, min_words and overlap. Missing keys keep
// the chunker defaults.
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option
	for key, opt := range map[string]func(int) chunker.Option{
		"max_words": chunker.WithMaxWords,
		"min_words": chunker.WithMinWords,
		"overlap":   chunker.WithOverlap,
	} {
		n, ok, err := intSetting(cfg, key)
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, opt(n))
		}
	}
	return chunker.New(opts...), nil
}

// buildDedupe reads min_words.
func buildDedupe(cfg map[string]any) (driven.PostProcessor, error) {
	n, ok, err := intSetting(cfg, "min_words")
	if err != nil {
		return nil, err
	}
	if !ok {
		return dedupe.New(), nil
	}
	return dedupe.New(dedupe.WithMinWords(n)), nil
}

// intSetting reads an integer that may have been decoded from TOML (int64)
// or JSON (float64).
func intSetting(cfg map[string]any, key string) (int, bool, error) {
	v, ok := cfg[key]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}
