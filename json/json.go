// Package json provides a JSON report encoder.
package json

import (
	"encoding/json"

	"github.com/zoobzio/transcode"
)

// jsonEncoder implements transcode.Encoder for JSON.
type jsonEncoder struct{}

// New returns a JSON encoder.
func New() transcode.Encoder {
	return &jsonEncoder{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonEncoder) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonEncoder) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes JSON data into v.
func (c *jsonEncoder) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
