// Package domain holds the types shared by every layer of shopdesk:
// documents and their chunks, vector store records and hits, the
// retrieval and tool response envelopes, the order, return and product
// models, and application settings.
//
// It imports only the standard library.
package domain
