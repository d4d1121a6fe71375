package transcode

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestService_Info(t *testing.T) {
	info := NewService().Info()

	want := Info{
		Name:       "transcode",
		Codecs:     []Kind{KindMIDI, KindPrime, KindQR},
		DigestAlgo: DigestSHA256,
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Info() mismatch (-want +got):\n%s", diff)
	}
}

func TestService_EncodeDecode(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	data := []byte("HelloWorld")

	enc, err := svc.Encode(ctx, EncodeRequest{Filename: "hello.txt", Data: data, Codec: KindMIDI})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if enc.ContentType != "audio/midi" {
		t.Errorf("ContentType = %q, want audio/midi", enc.ContentType)
	}
	if enc.Filename != "encoded_hello.txt.mid" {
		t.Errorf("Filename = %q, want encoded_hello.txt.mid", enc.Filename)
	}
	if enc.Metadata[MetaOriginalHash] != Sum(data).String() {
		t.Errorf("original_hash = %q", enc.Metadata[MetaOriginalHash])
	}
	if enc.Metadata[MetaOriginalSize] != "10" || enc.Metadata[MetaCodec] != "midi" || enc.Metadata[MetaTracks] != "1" {
		t.Errorf("Metadata = %v", enc.Metadata)
	}

	dec, err := svc.Decode(ctx, DecodeRequest{Data: enc.Data, Codec: KindMIDI})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !bytes.Equal(dec.Data, data) || dec.Filename != "hello.txt" {
		t.Errorf("Decode() = %q/%q", dec.Filename, dec.Data)
	}

	v := svc.Verify(ctx, enc.Metadata[MetaOriginalHash], dec.Metadata[MetaDecodedHash])
	if !v.Verified || !v.Match {
		t.Errorf("Verify() = %+v, want verified match", v)
	}
}

func TestService_VerifyBitFlip(t *testing.T) {
	svc := NewService()
	original := []byte("exact bytes")
	decoded := append([]byte(nil), original...)
	decoded[0] ^= 0x80

	v := svc.Verify(context.Background(), svc.Digest(original).String(), svc.Digest(decoded).String())
	if !v.Verified || v.Match {
		t.Errorf("Verify() = %+v, want verified mismatch", v)
	}
}

func TestService_PrimeMetadata(t *testing.T) {
	enc, err := NewService().Encode(context.Background(), EncodeRequest{Filename: "n", Data: []byte{0xff, 0xff}, Codec: KindPrime})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if enc.Metadata[MetaDigitCount] != "5" {
		t.Errorf("digit_count = %q, want 5", enc.Metadata[MetaDigitCount])
	}
}

func TestService_Pipeline(t *testing.T) {
	ctx := context.Background()
	svc := NewService(WithHasher(BLAKE2bHasher()))
	data := fiftyBytes()

	enc, err := svc.Encode(ctx, EncodeRequest{Filename: "p.bin", Data: data, Steps: Spec{KindPrime, KindMIDI}, Mode: MIDIMusical})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if enc.Run == nil || enc.Run.StepsCompleted != 2 {
		t.Fatal("pipeline response should carry the run")
	}
	if enc.Metadata[MetaCodec] != "prime,midi" || enc.Metadata[MetaDigestAlgo] != "blake2b" {
		t.Errorf("Metadata = %v", enc.Metadata)
	}
	if enc.Metadata[MetaTracks] != "4" {
		t.Errorf("tracks = %q, want 4 in musical mode", enc.Metadata[MetaTracks])
	}

	dec, err := svc.Decode(ctx, DecodeRequest{Data: enc.Data, Steps: Spec{KindMIDI, KindPrime}})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !bytes.Equal(dec.Data, data) {
		t.Error("pipeline decode should recover the original bytes")
	}
	if dec.Metadata[MetaStepsCompleted] != "2" {
		t.Errorf("steps_completed = %q, want 2", dec.Metadata[MetaStepsCompleted])
	}
	if dec.Digest != BLAKE2bHasher().Sum(data) {
		t.Error("decoded digest should use the configured hasher")
	}
}

func TestService_PipelineFailure(t *testing.T) {
	enc, err := NewService().Encode(context.Background(), EncodeRequest{Filename: "big", Data: make([]byte, 4096), Steps: Spec{KindQR}})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Encode() error = %v, want ErrCapacityExceeded", err)
	}
	if enc == nil || enc.Run == nil || enc.Metadata[MetaStepsCompleted] != "0" {
		t.Error("failed pipeline should still report steps_completed")
	}
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	if _, err := svc.Encode(ctx, EncodeRequest{Data: []byte("a"), Codec: "bigint"}); !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("Encode(bigint) error = %v, want ErrUnsupportedCodec", err)
	}
	if _, err := svc.Encode(ctx, EncodeRequest{Data: []byte("a"), Codec: KindMIDI, Mode: "jazz"}); err == nil {
		t.Error("Encode() should reject an unknown MIDI mode")
	}
	if _, err := svc.Decode(ctx, DecodeRequest{Data: []byte("nope"), Codec: KindPrime}); !errors.Is(err, ErrInvalidPrimeString) {
		t.Errorf("Decode() error = %v, want ErrInvalidPrimeString", err)
	}
}

func TestService_PlaceholderFilename(t *testing.T) {
	enc, err := NewService().Encode(context.Background(), EncodeRequest{Data: []byte("a"), Codec: KindPrime})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	name := enc.Metadata[MetaOriginalFilename]
	if len(name) != len("unnamed-")+8 {
		t.Errorf("original_filename = %q, want a placeholder", name)
	}
}

func TestService_ModeOverridesRegistry(t *testing.T) {
	r := DefaultRegistry().With(NewMIDICodec(WithMode(MIDIMusical)))
	svc := NewService(WithRegistry(r))
	ctx := context.Background()

	raw, err := svc.Encode(ctx, EncodeRequest{Filename: "a", Data: []byte("a"), Codec: KindMIDI, Mode: MIDIRaw})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if raw.Metadata[MetaTracks] != "1" {
		t.Errorf("tracks = %q, want 1 when raw is requested", raw.Metadata[MetaTracks])
	}

	configured, err := svc.Encode(ctx, EncodeRequest{Filename: "a", Data: []byte("a"), Codec: KindMIDI})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if configured.Metadata[MetaTracks] != "4" {
		t.Errorf("tracks = %q, want 4 from the registry", configured.Metadata[MetaTracks])
	}
}
