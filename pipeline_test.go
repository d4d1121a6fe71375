package transcode

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fiftyBytes() []byte {
	b := make([]byte, 50)
	for i := range b {
		b[i] = byte(200 - i)
	}
	return b
}

func TestParseSpec(t *testing.T) {
	got, err := ParseSpec("prime, MIDI,qr")
	if err != nil {
		t.Fatalf("ParseSpec() error: %v", err)
	}
	want := Spec{KindPrime, KindMIDI, KindQR}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSpec() mismatch (-want +got):\n%s", diff)
	}
	if got.String() != "prime,midi,qr" {
		t.Errorf("String() = %q", got.String())
	}

	if _, err := ParseSpec(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("ParseSpec(\"\") error = %v, want ErrEmptySpec", err)
	}
	if _, err := ParseSpec("prime,bigint"); !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("ParseSpec(bigint) error = %v, want ErrUnsupportedCodec", err)
	}
}

func TestSpec_Reverse(t *testing.T) {
	s := Spec{KindPrime, KindMIDI, KindQR}
	want := Spec{KindQR, KindMIDI, KindPrime}
	if diff := cmp.Diff(want, s.Reverse()); diff != "" {
		t.Errorf("Reverse() mismatch (-want +got):\n%s", diff)
	}
	if s[0] != KindPrime {
		t.Error("Reverse() should not modify the receiver")
	}
}

func TestExecutor_PrimeThenMIDI(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(nil)
	data := fiftyBytes()

	run, err := exec.Encode(ctx, Spec{KindPrime, KindMIDI}, "fifty.bin", data)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !run.Succeeded() || run.StepsCompleted != 2 {
		t.Fatalf("StepsCompleted = %d, want 2", run.StepsCompleted)
	}
	if run.Artifacts[0].Kind != KindPrime || run.Artifacts[1].Kind != KindMIDI {
		t.Errorf("artifact kinds = %s,%s, want prime,midi", run.Artifacts[0].Kind, run.Artifacts[1].Kind)
	}
	if run.Final == nil || !run.Final.Equal(run.Artifacts[1]) {
		t.Error("Final should be the last artifact")
	}

	back, err := exec.Decode(ctx, Spec{KindMIDI, KindPrime}, run.Final.Bytes())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if back.StepsCompleted != 2 {
		t.Errorf("StepsCompleted = %d, want 2", back.StepsCompleted)
	}
	if back.Result.Filename != "fifty.bin" || !bytes.Equal(back.Result.Payload, data) {
		t.Errorf("Result = %q (%d bytes), want fifty.bin (50 bytes)", back.Result.Filename, len(back.Result.Payload))
	}

	// The intermediate frame carries the stage name and the prime text.
	if back.Frames[0].Filename != "stage-1.prime.txt" {
		t.Errorf("intermediate filename = %q, want stage-1.prime.txt", back.Frames[0].Filename)
	}
	if !bytes.Equal(back.Frames[0].Payload, run.Artifacts[0].Bytes()) {
		t.Error("intermediate payload should be the prime artifact")
	}
}

func TestExecutor_Undo(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(nil)
	spec := Spec{KindMIDI, KindPrime, KindPrime}

	run, err := exec.Encode(ctx, spec, "x.txt", []byte("undo me"))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	back, err := exec.Undo(ctx, spec, run.Final.Bytes())
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if string(back.Result.Payload) != "undo me" {
		t.Errorf("Undo() payload = %q, want %q", back.Result.Payload, "undo me")
	}
}

func TestExecutor_EncodeFailureKeepsEarlierArtifacts(t *testing.T) {
	// The MIDI container of the prime text is far beyond one QR symbol.
	run, err := NewExecutor(nil).Encode(context.Background(), Spec{KindPrime, KindMIDI, KindQR}, "fifty.bin", fiftyBytes())

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Encode() error = %v, want *StepError", err)
	}
	if stepErr.Step != 3 || stepErr.Kind != KindQR {
		t.Errorf("StepError = step %d (%s), want step 3 (qr)", stepErr.Step, stepErr.Kind)
	}
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Encode() error = %v, want ErrCapacityExceeded", err)
	}
	if run.StepsCompleted != 2 || len(run.Artifacts) != 2 {
		t.Errorf("StepsCompleted = %d, artifacts = %d, want 2 and 2", run.StepsCompleted, len(run.Artifacts))
	}
	if run.Final != nil || run.Succeeded() {
		t.Error("failed run should have no final artifact")
	}
	if run.Err != err {
		t.Error("run.Err should be the returned error")
	}
}

func TestExecutor_DecodeFailure(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(nil)

	// A prime artifact whose payload is not a MIDI file.
	run, err := exec.Encode(ctx, Spec{KindPrime}, "plain.txt", []byte("plain text"))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	back, err := exec.Decode(ctx, Spec{KindPrime, KindMIDI}, run.Final.Bytes())
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Decode() error = %v, want *StepError", err)
	}
	if stepErr.Step != 2 || stepErr.Direction != DirectionDecode {
		t.Errorf("StepError = step %d %s, want step 2 decode", stepErr.Step, stepErr.Direction)
	}
	if !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("Decode() error = %v, want ErrInvalidContainer", err)
	}
	if back.StepsCompleted != 1 || back.Result != nil {
		t.Errorf("StepsCompleted = %d, want 1 and no result", back.StepsCompleted)
	}
}

func TestExecutor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := NewExecutor(nil).Encode(ctx, Spec{KindPrime, KindMIDI}, "a", []byte("a"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Encode() error = %v, want context.Canceled", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Step != 1 {
		t.Errorf("Encode() error = %v, want step 1", err)
	}
	if run.StepsCompleted != 0 {
		t.Errorf("StepsCompleted = %d, want 0", run.StepsCompleted)
	}
}

func TestExecutor_InvalidSpec(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(nil)

	if _, err := exec.Encode(ctx, nil, "a", nil); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Encode(nil spec) error = %v, want ErrEmptySpec", err)
	}
	if _, err := exec.Decode(ctx, Spec{"bigint"}, nil); !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("Decode(bigint) error = %v, want ErrUnsupportedCodec", err)
	}
}

func TestExecutor_UnregisteredKind(t *testing.T) {
	r, _ := NewRegistry(NewPrimeCodec())
	exec := NewExecutor(r)

	run, err := exec.Encode(context.Background(), Spec{KindPrime, KindQR}, "a", []byte("a"))
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Encode() error = %v, want *StepError", err)
	}
	if stepErr.Step != 2 || !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("Encode() error = %v, want step 2 unsupported codec", err)
	}
	if run.StepsCompleted != 0 || len(run.Artifacts) != 0 {
		t.Error("no step should run when a step cannot be resolved")
	}
	if exec.Registry() != r {
		t.Error("Registry() should return the configured registry")
	}
}

func TestExecutor_PlaceholderFilename(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(nil)

	run, err := exec.Encode(ctx, Spec{KindPrime}, "", []byte("anon"))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	back, err := exec.Decode(ctx, Spec{KindPrime}, run.Final.Bytes())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(back.Result.Filename) != len("unnamed-")+8 {
		t.Errorf("Filename = %q, want a placeholder", back.Result.Filename)
	}
}
