// Package xml provides a XML report encoder.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/transcode"
)

// xmlEncoder implements transcode.Encoder for XML.
type xmlEncoder struct{}

// New returns a XML encoder.
func New() transcode.Encoder {
	return &xmlEncoder{}
}

// ContentType returns the MIME type for XML.
func (c *xmlEncoder) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlEncoder) Marshal(v any) ([]byte, error) {
	return xml.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes XML data into v.
func (c *xmlEncoder) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
