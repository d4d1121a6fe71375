package testing

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/zoobzio/transcode"
)

func TestPayload(t *testing.T) {
	a := Payload(64, 1)
	b := Payload(64, 1)
	c := Payload(64, 2)

	if len(a) != 64 {
		t.Errorf("Payload() length = %d, want 64", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Error("same seed should produce same bytes")
	}
	if bytes.Equal(a, c) {
		t.Error("different seeds should produce different bytes")
	}
}

func TestLowercasePayload(t *testing.T) {
	text := base64.StdEncoding.EncodeToString(LowercasePayload(30))
	if text != strings.Repeat("a", 40) {
		t.Errorf("base64 = %q, want all 'a'", text)
	}
}

func TestRoundTrip(t *testing.T) {
	a := RoundTrip(t, transcode.NewPrimeCodec(), "note.txt", []byte("hello"))
	if a.Kind != transcode.KindPrime {
		t.Errorf("Kind = %q, want %q", a.Kind, transcode.KindPrime)
	}
}

func TestEncodeRun(t *testing.T) {
	run := EncodeRun(t, transcode.Spec{transcode.KindPrime}, "note.txt", []byte("hello"))
	if !run.Succeeded() {
		t.Error("run should succeed")
	}
}
