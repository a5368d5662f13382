// Package httpapi serves the retrieval and assistant services over a JSON HTTP API.
package httpapi

import "errors"

// ErrMissingRetrievalService is returned when the retrieval port is nil.
var ErrMissingRetrievalService = errors.New("httpapi: retrieval service is required")
