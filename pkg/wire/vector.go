package wire

import (
	"encoding/json"
	"fmt"
)

// Vector holds one embedding in whichever representation the server returned.
// Float responses decode into Floats. Base64 responses are carried in Base64
// exactly as received; the payload is never decoded on this side of the wire.
//
// The zero value is the empty placeholder used for inputs that were blank or
// whose embedding request failed. It marshals as an empty JSON array.
type Vector struct {
	Floats []float32
	Base64 string
}

// FloatVector builds a float-format Vector.
func FloatVector(values []float32) Vector {
	return Vector{Floats: values}
}

// IsEmpty reports whether the vector is the empty placeholder.
func (v Vector) IsEmpty() bool {
	return len(v.Floats) == 0 && v.Base64 == ""
}

// Len returns the number of float components, or 0 for base64 and empty
// vectors.
func (v Vector) Len() int {
	return len(v.Floats)
}

// MarshalJSON writes the vector back in the representation it was received
// in: a JSON string for base64 payloads, a number array otherwise.
func (v Vector) MarshalJSON() ([]byte, error) {
	if v.Base64 != "" {
		return json.Marshal(v.Base64)
	}
	if v.Floats == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Floats)
}

// UnmarshalJSON accepts either a number array (float format) or a string
// (base64 format, kept verbatim).
func (v *Vector) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty embedding value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("malformed base64 embedding: %w", err)
		}
		*v = Vector{Base64: s}
		return nil
	}
	var floats []float32
	if err := json.Unmarshal(data, &floats); err != nil {
		return fmt.Errorf("malformed float embedding: %w", err)
	}
	*v = Vector{Floats: floats}
	return nil
}
