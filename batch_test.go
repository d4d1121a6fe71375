package transcode

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestEncodeBatch(t *testing.T) {
	jobs := []Job{
		{Spec: Spec{KindPrime}, Filename: "a.txt", Data: []byte("alpha")},
		{Spec: Spec{KindMIDI}, Filename: "b.txt", Data: []byte("bravo")},
		{Spec: Spec{KindQR}, Filename: "c.bin", Data: make([]byte, 600*1024)},
		{Spec: Spec{KindPrime, KindMIDI}, Filename: "d.txt", Data: []byte("delta")},
	}

	runs, err := NewExecutor(nil).EncodeBatch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("EncodeBatch() error: %v", err)
	}
	if len(runs) != len(jobs) {
		t.Fatalf("EncodeBatch() returned %d runs, want %d", len(runs), len(jobs))
	}

	for i, run := range runs {
		if run.Spec.String() != jobs[i].Spec.String() {
			t.Errorf("runs[%d].Spec = %s, want %s", i, run.Spec, jobs[i].Spec)
		}
	}
	if !runs[0].Succeeded() || !runs[1].Succeeded() || !runs[3].Succeeded() {
		t.Error("independent jobs should succeed")
	}
	if !errors.Is(runs[2].Err, ErrCapacityExceeded) {
		t.Errorf("runs[2].Err = %v, want ErrCapacityExceeded", runs[2].Err)
	}
}

func TestEncodeBatch_Unbounded(t *testing.T) {
	jobs := make([]Job, 16)
	for i := range jobs {
		jobs[i] = Job{Spec: Spec{KindPrime}, Filename: fmt.Sprintf("f%d", i), Data: []byte{byte(i)}}
	}

	runs, err := NewExecutor(nil).EncodeBatch(context.Background(), jobs, 0)
	if err != nil {
		t.Fatalf("EncodeBatch() error: %v", err)
	}
	for i, run := range runs {
		if !run.Succeeded() {
			t.Errorf("runs[%d] failed: %v", i, run.Err)
		}
	}
}

func TestEncodeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Spec: Spec{KindPrime}, Filename: "a", Data: []byte("a")}}
	runs, err := NewExecutor(nil).EncodeBatch(ctx, jobs, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("EncodeBatch() error = %v, want context.Canceled", err)
	}
	if runs[0] == nil || !errors.Is(runs[0].Err, context.Canceled) {
		t.Error("cancelled job should report context.Canceled")
	}
}
