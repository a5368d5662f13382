package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/plain")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/kb/return_policy.txt",
		MIMEType: "text/plain",
		Content:  []byte("Returns are accepted within 30 days.\r\nRefunds take 5-7 days.\r\n"),
		Metadata: map[string]any{domain.MetaFilename: "return_policy.txt", domain.MetaTopic: "returns"},
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "return policy", doc.Title)
	assert.Equal(t, "Returns are accepted within 30 days.\nRefunds take 5-7 days.", doc.Content)
	assert.Equal(t, "text/plain", doc.Metadata["mime_type"])
	assert.Equal(t, "returns", doc.Metadata[domain.MetaTopic])
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestNormalise_NilDocument(t *testing.T) {
	doc, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestNormalise_TitleFromMetadata(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/kb/doc1.txt",
		MIMEType: "text/plain",
		Content:  []byte("content"),
		Metadata: map[string]any{"title": "Gift Cards"},
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Gift Cards", doc.Title)
}

func TestNormalise_MetadataNotShared(t *testing.T) {
	meta := map[string]any{domain.MetaFilename: "faq.txt"}
	raw := &domain.RawDocument{URI: "faq.txt", MIMEType: "text/plain", Metadata: meta}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	doc.Metadata["extra"] = true
	_, leaked := meta["extra"]
	assert.False(t, leaked)
	assert.Empty(t, doc.Content)
}
