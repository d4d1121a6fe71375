// Package testing provides test utilities for transcode.
package testing

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/zoobzio/transcode"
)

// Payload returns n deterministic pseudo-random bytes for seed.
func Payload(n int, seed int64) []byte {
	b := make([]byte, n)
	r := rand.New(rand.NewSource(seed))
	_, _ = r.Read(b)
	return b
}

// LowercasePayload returns n bytes whose base64 encoding is all 'a'
// when n is a multiple of three. It keeps QR symbols in byte mode.
func LowercasePayload(n int) []byte {
	pattern := []byte{0x69, 0xa6, 0x9a}
	b := make([]byte, n)
	for i := range b {
		b[i] = pattern[i%len(pattern)]
	}
	return b
}

// RoundTrip encodes data with c and decodes the artifact, failing tb
// unless the recovered frame is identical.
func RoundTrip(tb testing.TB, c transcode.Codec, filename string, data []byte) transcode.Artifact {
	tb.Helper()
	f, err := transcode.NewFrame(filename, data)
	if err != nil {
		tb.Fatalf("NewFrame() error: %v", err)
	}
	a, err := c.Encode(f)
	if err != nil {
		tb.Fatalf("%s Encode() error: %v", c.Kind(), err)
	}
	got, err := c.Decode(a)
	if err != nil {
		tb.Fatalf("%s Decode() error: %v", c.Kind(), err)
	}
	if got.Filename != filename {
		tb.Errorf("%s filename = %q, want %q", c.Kind(), got.Filename, filename)
	}
	if !bytes.Equal(got.Payload, data) {
		tb.Errorf("%s payload mismatch: got %d bytes, want %d", c.Kind(), len(got.Payload), len(data))
	}
	return a
}

// EncodeRun runs an encode pipeline with the default registry, failing tb
// on error.
func EncodeRun(tb testing.TB, spec transcode.Spec, filename string, data []byte) *transcode.PipelineRun {
	tb.Helper()
	run, err := transcode.NewExecutor(nil).Encode(context.Background(), spec, filename, data)
	if err != nil {
		tb.Fatalf("Encode(%s) error: %v", spec, err)
	}
	return run
}
