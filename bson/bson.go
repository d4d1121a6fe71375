// Package bson provides a BSON report encoder.
package bson

import (
	"github.com/zoobzio/transcode"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonEncoder implements transcode.Encoder for BSON.
type bsonEncoder struct{}

// New returns a BSON encoder.
func New() transcode.Encoder {
	return &bsonEncoder{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonEncoder) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonEncoder) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonEncoder) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
