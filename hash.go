package transcode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the length of a Digest in bytes.
const DigestSize = 32

// Digest is a 256-bit content hash.
type Digest [DigestSize]byte

// String returns the lower-case hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero value.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// ParseDigest parses a 64-character hex digest, case-insensitively.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	s = strings.TrimSpace(s)
	if len(s) != 2*DigestSize {
		return d, fmt.Errorf("digest must be %d hex characters, got %d", 2*DigestSize, len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("invalid digest: %w", err)
	}
	return d, nil
}

// Hasher computes 256-bit digests.
type Hasher interface {
	// Algo returns the algorithm identifier.
	Algo() DigestAlgo

	// Sum returns the digest of data.
	Sum(data []byte) Digest
}

// sha256Hasher implements SHA-256 hashing.
type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Algo() DigestAlgo { return DigestSHA256 }

func (h *sha256Hasher) Sum(data []byte) Digest {
	return sha256.Sum256(data)
}

// blake2bHasher implements BLAKE2b-256 hashing.
type blake2bHasher struct{}

// BLAKE2bHasher returns a BLAKE2b-256 hasher.
func BLAKE2bHasher() Hasher {
	return &blake2bHasher{}
}

func (h *blake2bHasher) Algo() DigestAlgo { return DigestBLAKE2b }

func (h *blake2bHasher) Sum(data []byte) Digest {
	return blake2b.Sum256(data)
}

// sha3Hasher implements SHA3-256 hashing.
type sha3Hasher struct{}

// SHA3Hasher returns a SHA3-256 hasher.
func SHA3Hasher() Hasher {
	return &sha3Hasher{}
}

func (h *sha3Hasher) Algo() DigestAlgo { return DigestSHA3 }

func (h *sha3Hasher) Sum(data []byte) Digest {
	return sha3.Sum256(data)
}

// builtinHashers returns the hasher for every digest algorithm.
func builtinHashers() map[DigestAlgo]Hasher {
	return map[DigestAlgo]Hasher{
		DigestSHA256:  SHA256Hasher(),
		DigestBLAKE2b: BLAKE2bHasher(),
		DigestSHA3:    SHA3Hasher(),
	}
}

// NewHasher returns the hasher for algo.
func NewHasher(algo DigestAlgo) (Hasher, error) {
	h, ok := builtinHashers()[algo]
	if !ok {
		return nil, fmt.Errorf("unknown digest algorithm %q", algo)
	}
	return h, nil
}

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) Digest {
	return sha256.Sum256(data)
}

// Verify reports whether two digests are bit-identical.
func Verify(a, b Digest) bool {
	return a == b
}

// Verification is the result of comparing two hex digests.
type Verification struct {
	// Verified is true when both inputs are well-formed 64-character hex digests.
	Verified bool `json:"verified"`

	// Match is true when the inputs are equal, ignoring case.
	Match bool `json:"match"`
}

// VerifyHex compares two hex digests as received from a caller.
func VerifyHex(a, b string) Verification {
	da, errA := ParseDigest(a)
	db, errB := ParseDigest(b)
	if errA != nil || errB != nil {
		return Verification{
			Verified: false,
			Match:    strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)),
		}
	}
	return Verification{Verified: true, Match: Verify(da, db)}
}

// Err returns ErrHashMismatch unless the digests were verified and match.
func (v Verification) Err() error {
	if v.Verified && v.Match {
		return nil
	}
	if !v.Verified {
		return fmt.Errorf("%w: digests are not 64-character hex", ErrHashMismatch)
	}
	return ErrHashMismatch
}
