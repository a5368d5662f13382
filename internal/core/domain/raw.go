package domain

// RawDocument is a knowledge base file as read from disk, before any
// format-specific extraction.
type RawDocument struct {
	URI      string
	MIMEType string
	Content  []byte

	// Metadata is copied onto the normalised document. The loader sets
	// filename and, when known, topic and source.
	Metadata map[string]any
}
