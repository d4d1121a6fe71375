package transcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMalformedFrame indicates a frame header is invalid, truncated, or
	// followed by unconsumed bytes.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrInvalidPrimeString indicates a non-numeric or non-canonical decimal input.
	ErrInvalidPrimeString = errors.New("invalid prime string")

	// ErrMissingDataTrack indicates no MIDI track carries the data-track marker.
	ErrMissingDataTrack = errors.New("missing data track")

	// ErrTruncatedEventStream indicates the data track ends with half a byte.
	ErrTruncatedEventStream = errors.New("truncated event stream")

	// ErrInvalidNote indicates a data-track note outside the nibble range.
	ErrInvalidNote = errors.New("invalid data note")

	// ErrInvalidContainer indicates the input is not a readable MIDI file.
	ErrInvalidContainer = errors.New("invalid midi container")

	// ErrCapacityExceeded indicates the payload does not fit the largest QR symbol.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNoSymbolFound indicates no scannable QR symbol was present.
	ErrNoSymbolFound = errors.New("no symbol found")

	// ErrUnsupportedCodec indicates an unknown codec tag.
	ErrUnsupportedCodec = errors.New("unsupported codec")

	// ErrKindMismatch indicates an artifact was handed to a codec of another kind.
	ErrKindMismatch = errors.New("artifact kind mismatch")

	// ErrEmptySpec indicates a pipeline spec with no steps.
	ErrEmptySpec = errors.New("empty pipeline spec")

	// ErrHashMismatch reports that two digests differ. It is a result, not a fault.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrMarshal indicates a report encoder failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates a report encoder failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")
)

// CodecError represents a fault raised by a codec or the frame layer.
// It wraps a sentinel error with the codec kind and operation that failed.
type CodecError struct {
	Err   error  // Underlying sentinel error (ErrMalformedFrame, ErrCapacityExceeded, etc.)
	Kind  Kind   // Codec that failed; empty for frame-level faults
	Op    string // Operation that failed (encode, decode, parse)
	Cause error  // Original error from the underlying library, if any
}

func (e *CodecError) Error() string {
	prefix := e.Op
	if e.Kind != "" {
		prefix = string(e.Kind) + " " + e.Op
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Err.Error(), e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Err.Error())
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// StepError represents a pipeline step failure.
// Step is 1-based; Err is the codec fault or the context error that halted the run.
type StepError struct {
	Step      int
	Kind      Kind
	Direction Direction
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s): %v", e.Step, e.Kind, e.Direction, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ReportError represents a report marshal/unmarshal error.
type ReportError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the encoder
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// newCodecError creates a CodecError for codec and frame faults.
func newCodecError(sentinel error, kind Kind, op string, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Kind:  kind,
		Op:    op,
		Cause: cause,
	}
}

// frameError creates a CodecError for frame parse failures.
func frameError(format string, args ...any) error {
	return newCodecError(ErrMalformedFrame, "", "parse", fmt.Errorf(format, args...))
}

// newReportError creates a ReportError for encoder failures.
func newReportError(sentinel error, cause error) error {
	return &ReportError{
		Err:   sentinel,
		Cause: cause,
	}
}
