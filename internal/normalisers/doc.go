// Package normalisers turns raw knowledge base files into documents.
// Each normaliser extracts text from a specific MIME type; the Registry
// picks the highest priority normaliser for a file.
package normalisers
