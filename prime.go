package transcode

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// primeSeparator splits the header integer from the payload integer in
	// the textual form of a prime artifact.
	primeSeparator = ":"

	// DefaultMaxPrimePayload caps the payload_len a prime decode will
	// allocate for.
	DefaultMaxPrimePayload uint64 = 64 << 20
)

// Prime is the decimal rendering of a frame.
//
// Header is the frame header (magic, filename, payload_len) read as a
// big-endian base-256 integer. Digits is the payload read the same way.
// Reading bytes as an integer drops leading zero bytes; payload_len in the
// header restores them on decode. The magic starts with a non-zero byte so
// the header never loses any.
type Prime struct {
	Header string
	Digits string
}

// String returns the textual form "<header>:<digits>".
func (p Prime) String() string {
	return p.Header + primeSeparator + p.Digits
}

// DigitCount returns the number of digits in the payload integer.
func (p Prime) DigitCount() int {
	return len(p.Digits)
}

// ParsePrime parses the textual form of a prime artifact. Both integers
// must be canonical: digits only, no leading zero unless the value is 0.
func ParsePrime(text string) (Prime, error) {
	text = strings.TrimSpace(text)
	header, digits, ok := strings.Cut(text, primeSeparator)
	if !ok {
		return Prime{}, newCodecError(ErrInvalidPrimeString, KindPrime, "decode", fmt.Errorf("missing %q separator", primeSeparator))
	}
	if err := checkCanonical(header); err != nil {
		return Prime{}, newCodecError(ErrInvalidPrimeString, KindPrime, "decode", fmt.Errorf("header: %w", err))
	}
	if err := checkCanonical(digits); err != nil {
		return Prime{}, newCodecError(ErrInvalidPrimeString, KindPrime, "decode", fmt.Errorf("payload: %w", err))
	}
	return Prime{Header: header, Digits: digits}, nil
}

// PrimeOption configures a PrimeCodec.
type PrimeOption func(*PrimeCodec)

// WithMaxPayload sets the largest payload_len decode accepts. Zero is ignored.
func WithMaxPayload(n uint64) PrimeOption {
	return func(c *PrimeCodec) {
		if n > 0 {
			c.maxPayload = n
		}
	}
}

// PrimeCodec renders frames as canonical decimal big integers.
//
// The payload integer drops leading zero bytes, so a short digit string can
// claim a long payload. Decode refuses payload_len above the configured
// ceiling.
type PrimeCodec struct {
	maxPayload uint64
}

// NewPrimeCodec returns a prime codec.
func NewPrimeCodec(opts ...PrimeOption) *PrimeCodec {
	c := &PrimeCodec{maxPayload: DefaultMaxPrimePayload}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxPayload returns the decode ceiling on payload_len.
func (c *PrimeCodec) MaxPayload() uint64 {
	return c.maxPayload
}

// Kind returns KindPrime.
func (c *PrimeCodec) Kind() Kind {
	return KindPrime
}

// ContentType returns the MIME type for prime text.
func (c *PrimeCodec) ContentType() string {
	return KindPrime.ContentType()
}

// Encode renders the frame as a Prime and wraps its textual form.
func (c *PrimeCodec) Encode(f *Frame) (Artifact, error) {
	p, err := c.EncodePrime(f)
	if err != nil {
		return Artifact{}, err
	}
	a := PrimeArtifact(p.String())
	a.Details.DigitCount = p.DigitCount()
	return a, nil
}

// EncodePrime renders the frame as a Prime.
func (c *PrimeCodec) EncodePrime(f *Frame) (Prime, error) {
	if err := f.Validate(); err != nil {
		return Prime{}, err
	}
	header := appendHeader(nil, f.Filename, f.OriginalLength)
	return Prime{
		Header: bytesToDecimal(header),
		Digits: bytesToDecimal(f.Payload),
	}, nil
}

// Decode parses the textual form and rebuilds the frame.
func (c *PrimeCodec) Decode(a Artifact) (*Frame, error) {
	if err := checkKind(KindPrime, a); err != nil {
		return nil, err
	}
	p, err := ParsePrime(a.Text())
	if err != nil {
		return nil, err
	}
	return c.DecodePrime(p)
}

// DecodePrime rebuilds the frame from an already parsed Prime.
func (c *PrimeCodec) DecodePrime(p Prime) (*Frame, error) {
	header, err := decimalToBytes(p.Header)
	if err != nil {
		return nil, err
	}
	name, n, rest, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, frameError("%d trailing bytes after header", len(rest))
	}
	if n > c.maxPayload {
		return nil, frameError("payload_len %d exceeds limit %d", n, c.maxPayload)
	}

	raw, err := decimalToBytes(p.Digits)
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) > n {
		return nil, frameError("payload integer is %d bytes, payload_len %d", len(raw), n)
	}

	// Restore the leading zero bytes the integer dropped.
	payload := make([]byte, n)
	copy(payload[int(n)-len(raw):], raw)

	return &Frame{
		Filename:       name,
		OriginalLength: n,
		Payload:        payload,
	}, nil
}

// checkCanonical validates a canonical unsigned decimal string.
func checkCanonical(s string) error {
	if s == "" {
		return fmt.Errorf("empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("non-digit %q at offset %d", s[i], i)
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return fmt.Errorf("leading zero")
	}
	return nil
}

// bytesToDecimal reads b as a big-endian unsigned integer. Empty input is "0".
func bytesToDecimal(b []byte) string {
	return new(big.Int).SetBytes(b).String()
}

// decimalToBytes renders a canonical decimal string as minimal big-endian bytes.
func decimalToBytes(s string) ([]byte, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, newCodecError(ErrInvalidPrimeString, KindPrime, "decode", fmt.Errorf("not a decimal integer"))
	}
	return n.Bytes(), nil
}
