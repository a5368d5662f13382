/*
Package driven lists what the core services need from the outside world.

Retrieval and ingestion depend on a VectorBackend (one tier each for the
remote collection, the local JSON file and the built-in records), the
normalisers and the chunking pipeline. The support tools depend on
OrderStore, ReturnStore and ProductStore. Settings come from a ConfigStore
and prompt text from a PromptStore.

EmbeddingService, LLMService and RetrievalMetrics may be nil. Without an
embedding model vectors are hashed locally; without an LLM the best
retrieved passage is returned as the answer.

Nothing here may import an adapter package.
*/
package driven
