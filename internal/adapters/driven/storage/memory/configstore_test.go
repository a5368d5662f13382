package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Numbers(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"retrieval.top_k":                  8,
		"chunking.max_words":               int64(400),
		"vector_store.requests_per_second": 2.5,
		"llm.provider":                     "openai",
	})

	tests := []struct {
		key     string
		wantInt int
		wantF   float64
		wantOK  bool
	}{
		{"retrieval.top_k", 8, 8, true},
		{"chunking.max_words", 400, 400, true},
		{"vector_store.requests_per_second", 2, 2.5, true},
		{"llm.provider", 0, 0, false},
		{"missing", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.wantInt, store.GetInt(tt.key))
			f, ok := store.GetFloat(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantF, f, 1e-9)
		})
	}

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Empty(t, store.GetString("retrieval.top_k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetUnsetKeys(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("vector_store.uri", "https://milvus"))
	require.NoError(t, store.Set("embedding.provider", "ollama"))
	require.NoError(t, store.Set("embedding.provider", "openai"))
	assert.Equal(t, []string{"embedding.provider", "vector_store.uri"}, store.Keys())

	require.NoError(t, store.Unset("vector_store.uri"))
	require.NoError(t, store.Unset("never.set"))

	_, ok := store.Get("vector_store.uri")
	assert.False(t, ok)
	assert.Equal(t, []string{"embedding.provider"}, store.Keys())
}

func TestConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"llm.model": "gpt-4o-mini"}
	store := NewConfigStore(seed)
	require.NoError(t, store.Set("llm.model", "gpt-3.5-turbo"))

	assert.Equal(t, "gpt-4o-mini", seed["llm.model"])
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", i), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}
