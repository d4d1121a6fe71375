// Package yaml provides a YAML report encoder.
package yaml

import (
	"github.com/zoobzio/transcode"
	"gopkg.in/yaml.v3"
)

// yamlEncoder implements transcode.Encoder for YAML.
type yamlEncoder struct{}

// New returns a YAML encoder.
func New() transcode.Encoder {
	return &yamlEncoder{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlEncoder) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlEncoder) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlEncoder) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
