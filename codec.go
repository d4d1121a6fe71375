package transcode

import (
	"context"
	"fmt"
	"time"
)

// Codec is a bijection between a Frame and one target representation.
//
// Implementations are pure: Encode and Decode hold no state between calls
// and are safe for concurrent use.
type Codec interface {
	// Kind returns the tag this codec is registered under.
	Kind() Kind

	// ContentType returns the MIME type of encoded artifacts.
	ContentType() string

	// Encode renders the frame as an artifact.
	Encode(f *Frame) (Artifact, error)

	// Decode recovers the frame from an artifact produced by Encode.
	Decode(a Artifact) (*Frame, error)
}

// Encoder provides content-type aware marshaling for run reports.
type Encoder interface {
	// ContentType returns the MIME type for this encoder (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// encodeWith runs one codec encode and emits its signals.
func encodeWith(ctx context.Context, c Codec, f *Frame) (Artifact, error) {
	emitEncodeStart(ctx, c.Kind(), f.Filename, f.Size())
	start := time.Now()
	a, err := c.Encode(f)
	emitEncodeComplete(ctx, c.Kind(), a.Size(), time.Since(start), err)
	return a, err
}

// decodeWith runs one codec decode and emits its signals.
func decodeWith(ctx context.Context, c Codec, a Artifact) (*Frame, error) {
	emitDecodeStart(ctx, c.Kind(), a.Size())
	start := time.Now()
	f, err := c.Decode(a)
	size := 0
	if f != nil {
		size = len(f.Payload)
	}
	emitDecodeComplete(ctx, c.Kind(), size, time.Since(start), err)
	return f, err
}

// checkKind rejects artifacts of another kind.
func checkKind(want Kind, a Artifact) error {
	if a.Kind != "" && a.Kind != want {
		return newCodecError(ErrKindMismatch, want, "decode", fmt.Errorf("got %s artifact", a.Kind))
	}
	return nil
}
