package wire

// EmbeddingRequest is the request body for POST /v1/embeddings against an
// OpenAI-compatible server.
type EmbeddingRequest struct {
	// Input is the text to embed. Per the OpenAI spec it is either a single
	// string or an array of strings.
	Input any `json:"input"`
	// Model is the ID of the embedding model to use.
	Model string `json:"model"`
	// EncodingFormat selects the wire representation of the returned
	// vectors: "float" (default) or "base64".
	EncodingFormat string `json:"encoding_format,omitempty"`
	// Dimensions requests a reduced output dimensionality, when the model
	// supports it.
	Dimensions *int `json:"dimensions,omitempty"`
	// User is an opaque end-user identifier forwarded to the server.
	User string `json:"user,omitempty"`
}

// EmbeddingResponse is the response body from POST /v1/embeddings.
type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  Usage           `json:"usage"`
}

// EmbeddingData is a single embedding entry in the response.
type EmbeddingData struct {
	Object    string `json:"object"`
	Index     int    `json:"index"`
	Embedding Vector `json:"embedding"`
}

// Usage reports prompt/total token counts for an embeddings call.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ModelList is the response body from GET /v1/models.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

// ModelInfo describes one model advertised by the server.
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// EncodingFormat values accepted by the embeddings endpoint.
const (
	EncodingFloat  = "float"
	EncodingBase64 = "base64"
)
