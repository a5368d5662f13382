// Package services holds the shopdesk use cases: retrieval and answer
// synthesis, ingestion, intent routing and the order, return and inventory
// tools. Services depend only on domain types and port interfaces; the
// adapters they are given decide which provider or storage tier is used.
package services
