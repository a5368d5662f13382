package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

func TestIngestCmd_PrintsReport(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.report = &domain.IngestReport{
		Documents: 3,
		Chunks:    9,
		Inserted:  9,
		Tier:      domain.TierLocal,
		Skipped:   []string{"docs/catalogue.pdf"},
	}

	out, err := execute(t, "", "ingest", "docs")

	require.NoError(t, err)
	assert.Contains(t, out, "Ingesting docs...")
	assert.Contains(t, out, "Documents: 3")
	assert.Contains(t, out, "Chunks:    9")
	assert.Contains(t, out, "Inserted:  9 (local)")
	assert.Contains(t, out, "  - docs/catalogue.pdf")
}

func TestIngestCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.err = domain.ErrBackendReadOnly

	_, err := execute(t, "", "ingest", "docs")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendReadOnly)
}

func TestSeedCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	t.Run("writes records", func(t *testing.T) {
		ts.ingest.report = &domain.IngestReport{Documents: 7, Chunks: 7, Inserted: 7, Tier: domain.TierLocal}

		out, err := execute(t, "", "seed")

		require.NoError(t, err)
		assert.Contains(t, out, "Inserted:  7 (local)")
	})

	t.Run("existing store", func(t *testing.T) {
		ts.ingest.report = &domain.IngestReport{}

		out, err := execute(t, "", "seed")

		require.NoError(t, err)
		assert.Contains(t, out, "Local store already has records, nothing written.")
	})
}

func TestStatsCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "State:       DEGRADED")
	assert.Contains(t, out, "Active tier: local")
	assert.Contains(t, out, "Dimension:   384")
	assert.Contains(t, out, "unknown records")
	assert.Contains(t, out, "(connection refused)")
	assert.Contains(t, out, "data/vector_database.json")
	assert.Contains(t, out, "read-only")
}

func TestClearCmd(t *testing.T) {
	t.Run("force skips prompt", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "", "clear", "--force")

		require.NoError(t, err)
		assert.True(t, ts.ingest.cleared)
		assert.NotContains(t, out, "[y/N]")
		assert.Contains(t, out, "Vector store cleared.")
	})

	t.Run("declined", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "n\n", "clear")

		require.NoError(t, err)
		assert.False(t, ts.ingest.cleared)
		assert.Contains(t, out, "Aborted.")
	})

	t.Run("confirmed", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()

		_, err := execute(t, "y\n", "clear")

		require.NoError(t, err)
		assert.True(t, ts.ingest.cleared)
	})

	t.Run("error", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.ingest.err = errors.New("remote unavailable")

		_, err := execute(t, "", "clear", "-f")

		assert.EqualError(t, err, "clear failed: remote unavailable")
	})
}
