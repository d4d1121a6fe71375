package transcode

import "bytes"

// Artifact is the output of a codec's encode step: a tagged variant over
// MIDI container bytes, a prime decimal string, or QR image bytes.
//
// Data is always the canonical byte serialization of the variant, so an
// artifact can be fed straight into the next pipeline step.
type Artifact struct {
	Kind    Kind
	Data    []byte
	Details Details
}

// Details carries per-codec encode statistics. Only the fields relevant
// to the artifact's kind are set.
type Details struct {
	DigitCount int    // prime: digits in the payload integer
	Tracks     int    // midi: tracks in the container
	DataEvents int    // midi: note events on the data track
	QRVersion  int    // qr: symbol version, 1-40
	QRLevel    string // qr: error-correction level, L/M/Q/H
}

// MIDIArtifact wraps MIDI container bytes.
func MIDIArtifact(data []byte) Artifact {
	return Artifact{Kind: KindMIDI, Data: data}
}

// PrimeArtifact wraps the textual form of a prime encoding.
func PrimeArtifact(text string) Artifact {
	return Artifact{Kind: KindPrime, Data: []byte(text)}
}

// QRArtifact wraps QR image bytes.
func QRArtifact(data []byte) Artifact {
	return Artifact{Kind: KindQR, Data: data}
}

// Bytes returns the canonical byte serialization.
func (a Artifact) Bytes() []byte {
	return a.Data
}

// Text returns the artifact as a string. Meaningful for prime artifacts.
func (a Artifact) Text() string {
	return string(a.Data)
}

// Size returns the serialized length in bytes.
func (a Artifact) Size() int {
	return len(a.Data)
}

// ContentType returns the MIME type of the artifact.
func (a Artifact) ContentType() string {
	return a.Kind.ContentType()
}

// Equal reports whether two artifacts have the same kind and bytes.
func (a Artifact) Equal(other Artifact) bool {
	return a.Kind == other.Kind && bytes.Equal(a.Data, other.Data)
}
