package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Metadata keys shared by documents, chunks and indexed records.
const (
	MetaFilename    = "filename"
	MetaTopic       = "topic"
	MetaSource      = "source"
	MetaCreatedAt   = "created_at"
	MetaChunkNumber = "chunk_number"
)

// DefaultDocumentSource is the source tag applied to ingested files.
const DefaultDocumentSource = "document_processor"

// Document represents a source document before chunking.
// It is immutable once ingested.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content after normalisation.
	Content string

	// Metadata holds filename, topic, source and created_at plus any
	// normaliser-specific keys.
	Metadata map[string]any

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Filename returns the filename metadata value, falling back to the URI.
func (d *Document) Filename() string {
	if name, ok := d.Metadata[MetaFilename].(string); ok && name != "" {
		return name
	}
	return d.URI
}

// TextChunk is a word-bounded segment of a document.
// Chunks are created by the chunker and never mutated.
type TextChunk struct {
	// ChunkID is derived from the source filename and sequence number.
	ChunkID string

	// Text is the cleaned chunk text.
	Text string

	// Metadata is a copy of the document metadata plus chunk_number and created_at.
	Metadata map[string]any

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	// SourceFile is the filename the chunk was cut from.
	SourceFile string
}

// CopyMetadata returns a shallow copy of m. A nil map yields an empty map.
func CopyMetadata(m map[string]any) map[string]any {
	dst := make(map[string]any, len(m))
	for k, v := range m {
		dst[k] = v
	}
	return dst
}

// TitleFromURI derives a readable title from a file path:
// "docs/return_policy.md" becomes "return policy".
func TitleFromURI(uri string) string {
	name := filepath.Base(uri)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
