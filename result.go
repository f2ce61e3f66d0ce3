package embedlink

import "github.com/soundprediction/embedlink/pkg/wire"

// Processing modes reported in Result.
const (
	ProcessingModeSingle = "single"
	ProcessingModeBatch  = "batch"
)

// Result is the direct-output shape of one embedding run, as consumed by
// hosts that want the raw response in their data stream rather than a
// provider object.
type Result struct {
	Model               string               `json:"model"`
	Data                []wire.EmbeddingData `json:"data"`
	InputText           string               `json:"input_text"`
	ProcessingMode      string               `json:"processing_mode"`
	EncodingFormat      string               `json:"encoding_format"`
	EmbeddingDimensions int                  `json:"embedding_dimensions"`
}
