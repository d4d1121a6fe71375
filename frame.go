package transcode

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// frameMagic opens every serialized frame: "TCF" plus format version 1.
var frameMagic = [4]byte{'T', 'C', 'F', 0x01}

const (
	magicLen       = 4
	nameLenField   = 2
	lengthField    = 8
	frameOverhead  = magicLen + nameLenField + lengthField
	maxFilenameLen = math.MaxUint16
)

// Frame is the envelope every codec encodes and decodes.
// Payload length always equals OriginalLength.
//
// Serialized layout, big-endian:
//
//	[4 magic][2 filename_len][filename][8 payload_len][payload]
type Frame struct {
	Filename       string
	OriginalLength uint64
	Payload        []byte
}

// NewFrame wraps payload and filename. The payload is not copied; callers
// must not mutate it while the frame is in use.
func NewFrame(filename string, payload []byte) (*Frame, error) {
	if len(filename) > maxFilenameLen {
		return nil, frameError("filename is %d bytes, limit %d", len(filename), maxFilenameLen)
	}
	if payload == nil {
		payload = []byte{}
	}
	return &Frame{
		Filename:       filename,
		OriginalLength: uint64(len(payload)),
		Payload:        payload,
	}, nil
}

// Validate checks the frame invariants.
func (f *Frame) Validate() error {
	if len(f.Filename) > maxFilenameLen {
		return frameError("filename is %d bytes, limit %d", len(f.Filename), maxFilenameLen)
	}
	if uint64(len(f.Payload)) != f.OriginalLength {
		return frameError("payload is %d bytes, header says %d", len(f.Payload), f.OriginalLength)
	}
	return nil
}

// Size returns the serialized length in bytes.
func (f *Frame) Size() int {
	return frameOverhead + len(f.Filename) + len(f.Payload)
}

// MarshalBinary serializes the frame.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, f.Size())
	buf = appendHeader(buf, f.Filename, f.OriginalLength)
	return append(buf, f.Payload...), nil
}

// UnmarshalBinary replaces f with the frame parsed from data.
func (f *Frame) UnmarshalBinary(data []byte) error {
	parsed, err := ParseFrame(data)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// Equal reports whether two frames carry the same filename and payload.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Filename == other.Filename &&
		f.OriginalLength == other.OriginalLength &&
		bytes.Equal(f.Payload, other.Payload)
}

// ParseFrame parses a serialized frame. Every byte must be consumed.
func ParseFrame(data []byte) (*Frame, error) {
	name, n, rest, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(len(rest)) < n {
		return nil, frameError("payload_len %d exceeds remaining %d bytes", n, len(rest))
	}
	if uint64(len(rest)) > n {
		return nil, frameError("%d trailing bytes after payload", uint64(len(rest))-n)
	}
	return &Frame{
		Filename:       name,
		OriginalLength: n,
		Payload:        bytes.Clone(rest),
	}, nil
}

// appendHeader appends everything before the payload.
func appendHeader(buf []byte, filename string, n uint64) []byte {
	buf = append(buf, frameMagic[:]...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(filename)))
	buf = append(buf, filename...)
	return binary.BigEndian.AppendUint64(buf, n)
}

// parseHeader reads the fixed fields and filename, returning the bytes
// that follow payload_len.
func parseHeader(data []byte) (filename string, n uint64, rest []byte, err error) {
	if len(data) < magicLen {
		return "", 0, nil, frameError("%d bytes is shorter than the magic", len(data))
	}
	if !bytes.Equal(data[:magicLen], frameMagic[:]) {
		return "", 0, nil, frameError("bad magic %x", data[:magicLen])
	}
	data = data[magicLen:]

	if len(data) < nameLenField {
		return "", 0, nil, frameError("missing filename_len")
	}
	nameLen := int(binary.BigEndian.Uint16(data))
	data = data[nameLenField:]

	if nameLen > len(data) {
		return "", 0, nil, frameError("filename_len %d exceeds remaining %d bytes", nameLen, len(data))
	}
	filename = string(data[:nameLen])
	data = data[nameLen:]

	if len(data) < lengthField {
		return "", 0, nil, frameError("missing payload_len")
	}
	n = binary.BigEndian.Uint64(data)
	return filename, n, data[lengthField:], nil
}

// placeholderName generates a filename for input that arrived without one.
func placeholderName() string {
	return "unnamed-" + uuid.NewString()[:8]
}

// stageName names the intermediate frame wrapping the output of step i.
func stageName(step int, kind Kind) string {
	return "stage-" + strconv.Itoa(step) + kind.Extension()
}
