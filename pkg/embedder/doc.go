// Package embedder provides text embedding against OpenAI-compatible
// endpoints.
//
// This package defines the Provider interface and an implementation backed
// by the embeddings REST surface of local model runners (LM Studio, Ollama,
// vLLM, LocalAI) or the hosted OpenAI API.
//
// # Usage
//
//	cl, _ := client.New(client.Config{BaseURL: "http://localhost:1234"})
//	provider, _ := embedder.New(cl, embedder.Options{
//	    Model:     "nomic-embed-text",
//	    BatchSize: 10,
//	})
//
//	vector, err := provider.EmbedQuery(ctx, "hello world")
//	vectors, err := provider.EmbedDocuments(ctx, docs)
//
// # Batch Processing
//
// EmbedDocuments splits its input into fixed-size chunks and submits one
// request per chunk, strictly sequentially. When a chunk request fails the
// provider degrades to one request per item; an item that still fails yields
// an empty placeholder vector instead of aborting the batch. The result is
// always positionally aligned with the input.
package embedder
