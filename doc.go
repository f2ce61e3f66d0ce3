// Package embedlink provides embedding capability backed by any
// OpenAI-compatible embeddings endpoint.
//
// Embedlink wraps the embeddings REST surface of local model runners
// (LM Studio, Ollama, vLLM, LocalAI) and hosted APIs behind a small
// capability object: configuration in, a client exposing EmbedQuery and
// EmbedDocuments out. It also carries the credential descriptor, the
// connectivity self-test and the model-listing helper an embedding host UI
// needs.
//
// # Basic Usage
//
//	cfg := embedlink.Config{
//		Credential: credentials.Credential{BaseURL: "http://localhost:1234"},
//		Embedding: embedder.Options{
//			Model:     "nomic-embed-text",
//			BatchSize: 10,
//		},
//	}
//
//	link, err := embedlink.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	vector, err := link.EmbedQuery(ctx, "hello world")
//	vectors, err := link.EmbedDocuments(ctx, documents)
//
// # Batched Embedding
//
// EmbedDocuments partitions its input into fixed-size chunks and submits one
// request per chunk. A failed chunk degrades to one request per item; an
// item that still fails yields an empty placeholder vector. The result is
// always positionally aligned with the input, so callers can zip documents
// and vectors safely.
//
// # Architecture
//
//   - pkg/wire: OpenAI-compatible request/response types
//   - pkg/client: HTTP client for the documented REST surface
//   - pkg/embedder: the embedding provider with chunking and fallback
//   - pkg/models: model listing for UI dropdowns
//   - pkg/credentials: credential descriptor and connectivity self-test
//   - pkg/similarity: cosine ranking over embedded documents
//   - pkg/server: optional REST surface exposing the provider
//
// This design keeps the host-facing boundary explicit: nothing in the
// library depends on any particular workflow runtime.
package embedlink
