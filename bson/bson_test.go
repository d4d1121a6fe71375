package bson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/transcode"
)

func sampleReport() transcode.Report {
	return transcode.Report{
		Spec:           "prime,midi",
		Direction:      "encode",
		Filename:       "notes.txt",
		OriginalHash:   "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		StepsCompleted: 2,
		ElapsedMillis:  12,
		Steps: []transcode.ReportStep{
			{Index: 1, Codec: "prime", Size: 140, ContentType: "text/plain; charset=utf-8"},
			{Index: 2, Codec: "midi", Size: 3391, ContentType: "audio/midi"},
		},
	}
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil encoder")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestReportRoundTrip(t *testing.T) {
	c := New()
	original := sampleReport()

	data, err := original.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	restored, err := transcode.UnmarshalReport(c, data)
	if err != nil {
		t.Fatalf("UnmarshalReport() error: %v", err)
	}

	if diff := cmp.Diff(original, restored); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	_, err := transcode.UnmarshalReport(c, []byte("invalid bson"))
	if err == nil {
		t.Error("UnmarshalReport(invalid) should return error")
	}
}
