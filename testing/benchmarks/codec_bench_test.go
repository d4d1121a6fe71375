package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/transcode"
	transcodetest "github.com/zoobzio/transcode/testing"
)

func benchmarkEncode(b *testing.B, c transcode.Codec, size int) {
	f, err := transcode.NewFrame("bench.bin", transcodetest.Payload(size, 1))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(f)
	}
}

func benchmarkDecode(b *testing.B, c transcode.Codec, size int) {
	f, _ := transcode.NewFrame("bench.bin", transcodetest.Payload(size, 1))
	a, err := c.Encode(f)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(a)
	}
}

func BenchmarkPrime_Encode_1KB(b *testing.B) {
	benchmarkEncode(b, transcode.NewPrimeCodec(), 1024)
}

func BenchmarkPrime_Decode_1KB(b *testing.B) {
	benchmarkDecode(b, transcode.NewPrimeCodec(), 1024)
}

func BenchmarkMIDI_Encode_1KB(b *testing.B) {
	benchmarkEncode(b, transcode.NewMIDICodec(), 1024)
}

func BenchmarkMIDI_EncodeMusical_1KB(b *testing.B) {
	benchmarkEncode(b, transcode.NewMIDICodec(transcode.WithMode(transcode.MIDIMusical)), 1024)
}

func BenchmarkMIDI_Decode_1KB(b *testing.B) {
	benchmarkDecode(b, transcode.NewMIDICodec(), 1024)
}

func BenchmarkQR_Encode_1KB(b *testing.B) {
	benchmarkEncode(b, transcode.NewQRCodec(), 1024)
}

func BenchmarkQR_Decode_1KB(b *testing.B) {
	benchmarkDecode(b, transcode.NewQRCodec(transcode.WithModuleScale(4)), 1024)
}

func BenchmarkPipeline_PrimeMIDI(b *testing.B) {
	exec := transcode.NewExecutor(nil)
	spec := transcode.Spec{transcode.KindPrime, transcode.KindMIDI}
	data := transcodetest.Payload(256, 1)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = exec.Encode(ctx, spec, "bench.bin", data)
	}
}

func BenchmarkSum_1MB(b *testing.B) {
	data := transcodetest.Payload(1<<20, 1)
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = transcode.Sum(data)
	}
}
