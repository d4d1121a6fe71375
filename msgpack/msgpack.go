// Package msgpack provides a MessagePack report encoder.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/transcode"
)

// msgpackEncoder implements transcode.Encoder for MessagePack.
type msgpackEncoder struct{}

// New returns a MessagePack encoder.
func New() transcode.Encoder {
	return &msgpackEncoder{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackEncoder) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackEncoder) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackEncoder) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
