// Package transcode converts arbitrary files into alternative carriers and
// back without losing a byte.
//
// Every codec works on a Frame, a small envelope holding the original
// filename and payload. A codec renders a frame as an Artifact and
// recovers the identical frame from that artifact.
//
// # Codecs
//
// Three codecs are built in:
//
//   - prime: the frame as canonical decimal big integers ("<header>:<digits>")
//   - midi: the frame as note events on a named data track of a Standard MIDI File
//   - qr: the frame, base64 encoded, in a single QR symbol rendered as PNG
//
// The MIDI codec has a musical mode that adds bass, chord, and drum tracks.
// Decode reads only the data track, so both modes recover the same frame.
//
// # Frame Layout
//
// Frames serialize big-endian:
//
//	[4 magic "TCF\x01"][2 filename_len][filename][8 payload_len][payload]
//
// ParseFrame rejects bad magic, truncation, and trailing bytes.
//
// # Basic Usage
//
//	f, _ := transcode.NewFrame("notes.txt", data)
//
//	a, _ := transcode.NewMIDICodec().Encode(f)
//	back, _ := transcode.NewMIDICodec().Decode(a)
//
// # Pipelines
//
// An Executor chains codecs. Each step after the first wraps the previous
// artifact's bytes in a fresh frame:
//
//	exec := transcode.NewExecutor(nil)
//	run, err := exec.Encode(ctx, transcode.Spec{transcode.KindPrime, transcode.KindMIDI}, "notes.txt", data)
//
//	// Decode takes codecs in decode order; Undo reverses an encode spec.
//	back, err := exec.Undo(ctx, run.Spec, run.Final.Bytes())
//
// A failed run reports how many steps completed and wraps the fault in a
// *StepError naming the 1-based step.
//
// # Verification
//
// Digests are 256-bit. SHA-256 is the default; BLAKE2b-256 and SHA3-256
// are available through NewHasher. VerifyHex compares two hex digests as a
// caller supplied them.
//
// # Reports
//
// A PipelineRun can be summarized as a Report and written with any Encoder.
// Providers live in subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Observability
//
// Encode, decode, pipeline, and verify events are emitted as capitan
// signals. See signals.go for the keys carried by each.
package transcode
