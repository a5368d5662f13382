package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

type stubNormaliser struct {
	types    []string
	priority int
	title    string
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.types }
func (s *stubNormaliser) Priority() int                { return s.priority }
func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	return &domain.Document{URI: raw.URI, Title: s.title}, nil
}

func TestMIMETypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"kb/return_policy.txt", "text/plain"},
		{"kb/FAQ.MD", "text/markdown"},
		{"kb/guide.markdown", "text/markdown"},
		{"kb/warranty.html", "text/html"},
		{"kb/brochure.pdf", ""},
		{"kb/README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MIMETypeForPath(tt.path))
		})
	}
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{types: []string{"text/plain"}, priority: 5, title: "fallback"})
	r.Register(&stubNormaliser{types: []string{"text/plain"}, priority: 60, title: "preferred"})
	r.Register(&stubNormaliser{types: []string{"text/plain"}, priority: 10, title: "middle"})

	doc, err := r.Normalise(context.Background(), &domain.RawDocument{URI: "a.txt", MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "preferred", doc.Title)
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Normalise(context.Background(), &domain.RawDocument{URI: "a.pdf", MIMEType: "application/pdf"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{
		"application/xhtml+xml",
		"text/csv",
		"text/html",
		"text/markdown",
		"text/plain",
		"text/x-markdown",
	}, r.SupportedMIMETypes())

	doc, err := r.Normalise(context.Background(), &domain.RawDocument{
		URI:      "kb/faq.md",
		MIMEType: MIMETypeForPath("kb/faq.md"),
		Content:  []byte("# FAQ\n- Gift wrapping costs $3.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "FAQ", doc.Title)
	assert.Equal(t, "FAQ.\nGift wrapping costs $3.99.", doc.Content)
}
