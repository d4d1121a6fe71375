package transcode

import (
	"fmt"
	"strings"
)

// Kind identifies a codec. The set is closed: only the constants below
// can reach the registry or the executor.
type Kind string

const (
	// KindPrime renders a frame as canonical decimal big integers.
	KindPrime Kind = "prime"

	// KindMIDI renders a frame as note events on a MIDI data track.
	KindMIDI Kind = "midi"

	// KindQR renders a frame as a single QR symbol image.
	KindQR Kind = "qr"
)

// MIDIMode selects whether cosmetic tracks accompany the data track.
type MIDIMode string

const (
	// MIDIRaw emits the data track only.
	MIDIRaw MIDIMode = "raw"

	// MIDIMusical adds bass, chord, and drum tracks that decode ignores.
	MIDIMusical MIDIMode = "musical"
)

// DigestAlgo represents a supported 256-bit content hash.
type DigestAlgo string

const (
	// DigestSHA256 uses SHA-256. This is the default.
	DigestSHA256 DigestAlgo = "sha256"

	// DigestBLAKE2b uses BLAKE2b-256.
	DigestBLAKE2b DigestAlgo = "blake2b"

	// DigestSHA3 uses SHA3-256.
	DigestSHA3 DigestAlgo = "sha3"
)

// validKinds contains all codec kinds accepted in a pipeline spec.
var validKinds = map[Kind]bool{
	KindPrime: true,
	KindMIDI:  true,
	KindQR:    true,
}

// validMIDIModes contains all MIDI modes.
var validMIDIModes = map[MIDIMode]bool{
	MIDIRaw:     true,
	MIDIMusical: true,
}

// validDigestAlgos contains all digest algorithms.
var validDigestAlgos = map[DigestAlgo]bool{
	DigestSHA256:  true,
	DigestBLAKE2b: true,
	DigestSHA3:    true,
}

// IsValidKind returns true if the kind is a known codec.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}

// IsValidMIDIMode returns true if the mode is a known MIDI mode.
func IsValidMIDIMode(m MIDIMode) bool {
	return validMIDIModes[m]
}

// IsValidDigestAlgo returns true if the algorithm is a known digest algorithm.
func IsValidDigestAlgo(algo DigestAlgo) bool {
	return validDigestAlgos[algo]
}

// ParseKind converts a free-form tag into a Kind.
// Tags are matched case-insensitively after trimming whitespace.
func ParseKind(tag string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(tag)))
	if !IsValidKind(k) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCodec, tag)
	}
	return k, nil
}

// ContentType returns the MIME type of artifacts produced by the kind.
func (k Kind) ContentType() string {
	switch k {
	case KindPrime:
		return "text/plain; charset=utf-8"
	case KindMIDI:
		return "audio/midi"
	case KindQR:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension used when writing the kind's artifacts.
func (k Kind) Extension() string {
	switch k {
	case KindPrime:
		return ".prime.txt"
	case KindMIDI:
		return ".mid"
	case KindQR:
		return ".png"
	default:
		return ".bin"
	}
}
