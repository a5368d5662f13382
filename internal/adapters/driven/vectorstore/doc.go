// Package vectorstore groups the vector store tiers.
//
// Each subpackage implements driven.VectorBackend:
//   - remote: Milvus/Zilliz REST v2 collection
//   - local: JSON file with keyword scoring
//   - defaults: three built-in passages, read-only
//
// The tiered subpackage composes them into a driven.VectorStore that falls
// through from the highest-priority tier to the next on error or no results.
package vectorstore
