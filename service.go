package transcode

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Metadata keys attached to service responses.
const (
	MetaOriginalHash     = "original_hash"
	MetaOriginalSize     = "original_size"
	MetaOriginalFilename = "original_filename"
	MetaDecodedHash      = "decoded_hash"
	MetaDecodedFilename  = "decoded_filename"
	MetaCodec            = "codec"
	MetaDigestAlgo       = "digest_algo"
	MetaStepsCompleted   = "steps_completed"
	MetaElapsedTime      = "elapsed_time"
	MetaDigitCount       = "digit_count"
	MetaQRVersion        = "qr_version"
	MetaQRLevel          = "qr_level"
	MetaTracks           = "tracks"
)

// ServiceName identifies the service in Info.
const ServiceName = "transcode"

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRegistry sets the codec registry.
func WithRegistry(r *Registry) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithHasher sets the digest algorithm used for original/decoded hashes.
func WithHasher(h Hasher) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

// Service is the boundary a transport layer calls: it hashes input,
// dispatches to one codec or a pipeline, and returns bytes plus a
// metadata map. It holds no per-request state.
type Service struct {
	registry *Registry
	hasher   Hasher
}

// NewService returns a service over the default registry and SHA-256.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		registry: DefaultRegistry(),
		hasher:   SHA256Hasher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EncodeRequest asks for raw bytes to be encoded. Set Codec for a single
// codec, or Steps for a pipeline; Steps wins when both are set.
type EncodeRequest struct {
	Filename string
	Data     []byte
	Codec    Kind
	Steps    Spec
	Mode     MIDIMode
}

// EncodeResponse carries the artifact and its metadata.
type EncodeResponse struct {
	Data        []byte
	ContentType string
	Filename    string
	Metadata    map[string]string
	Digest      Digest

	// Run is set for pipeline requests, including failed ones.
	Run *PipelineRun
}

// DecodeRequest asks for an artifact to be decoded. Steps lists codecs
// in decode order, the reverse of the encode order.
type DecodeRequest struct {
	Data  []byte
	Codec Kind
	Steps Spec
}

// DecodeResponse carries the recovered file.
type DecodeResponse struct {
	Data     []byte
	Filename string
	Digest   Digest
	Metadata map[string]string
	Run      *PipelineRun
}

// Info describes the service.
type Info struct {
	Name       string
	Codecs     []Kind
	DigestAlgo DigestAlgo
}

// Info returns the service identity and its registered codecs.
func (s *Service) Info() Info {
	return Info{
		Name:       ServiceName,
		Codecs:     s.registry.Kinds(),
		DigestAlgo: s.hasher.Algo(),
	}
}

// Digest hashes data with the service's hasher.
func (s *Service) Digest(data []byte) Digest {
	return s.hasher.Sum(data)
}

// Encode hashes the input once, then runs the codec or pipeline.
func (s *Service) Encode(ctx context.Context, req EncodeRequest) (*EncodeResponse, error) {
	digest := s.hasher.Sum(req.Data)
	filename := req.Filename
	if filename == "" {
		filename = placeholderName()
	}
	registry, err := s.registryFor(req.Mode)
	if err != nil {
		return nil, err
	}

	meta := map[string]string{
		MetaOriginalHash:     digest.String(),
		MetaOriginalSize:     strconv.Itoa(len(req.Data)),
		MetaOriginalFilename: filename,
		MetaDigestAlgo:       string(s.hasher.Algo()),
	}

	if len(req.Steps) > 0 {
		run, err := NewExecutor(registry).Encode(ctx, req.Steps, filename, req.Data)
		meta[MetaCodec] = req.Steps.String()
		meta[MetaStepsCompleted] = strconv.Itoa(run.StepsCompleted)
		meta[MetaElapsedTime] = run.Elapsed.String()
		resp := &EncodeResponse{Metadata: meta, Digest: digest, Run: run}
		if err != nil {
			return resp, err
		}
		addDetails(meta, run.Final.Details)
		resp.Data = run.Final.Bytes()
		resp.ContentType = run.Final.ContentType()
		resp.Filename = encodedName(filename, run.Final.Kind)
		return resp, nil
	}

	c, err := registry.Lookup(req.Codec)
	if err != nil {
		return nil, err
	}
	f, err := NewFrame(filename, req.Data)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	a, err := encodeWith(ctx, c, f)
	if err != nil {
		return nil, err
	}
	meta[MetaCodec] = string(c.Kind())
	meta[MetaElapsedTime] = time.Since(start).String()
	addDetails(meta, a.Details)
	return &EncodeResponse{
		Data:        a.Bytes(),
		ContentType: a.ContentType(),
		Filename:    encodedName(filename, a.Kind),
		Metadata:    meta,
		Digest:      digest,
	}, nil
}

// Decode runs the codec or pipeline and hashes the recovered bytes once.
func (s *Service) Decode(ctx context.Context, req DecodeRequest) (*DecodeResponse, error) {
	var (
		f   *Frame
		run *PipelineRun
		err error
	)
	if len(req.Steps) > 0 {
		run, err = NewExecutor(s.registry).Decode(ctx, req.Steps, req.Data)
		if err != nil {
			return &DecodeResponse{Run: run}, err
		}
		f = run.Result
	} else {
		c, lookupErr := s.registry.Lookup(req.Codec)
		if lookupErr != nil {
			return nil, lookupErr
		}
		f, err = decodeWith(ctx, c, Artifact{Kind: c.Kind(), Data: req.Data})
		if err != nil {
			return nil, err
		}
	}

	digest := s.hasher.Sum(f.Payload)
	meta := map[string]string{
		MetaDecodedHash:     digest.String(),
		MetaDecodedFilename: f.Filename,
		MetaDigestAlgo:      string(s.hasher.Algo()),
	}
	if run != nil {
		meta[MetaStepsCompleted] = strconv.Itoa(run.StepsCompleted)
		meta[MetaElapsedTime] = run.Elapsed.String()
	}
	return &DecodeResponse{
		Data:     f.Payload,
		Filename: f.Filename,
		Digest:   digest,
		Metadata: meta,
		Run:      run,
	}, nil
}

// Verify compares two hex digests.
func (s *Service) Verify(ctx context.Context, hashA, hashB string) Verification {
	v := VerifyHex(hashA, hashB)
	emitVerifyComplete(ctx, v)
	return v
}

// registryFor swaps in a MIDI codec of the requested mode. An empty mode
// keeps the registry as configured.
func (s *Service) registryFor(mode MIDIMode) (*Registry, error) {
	if mode == "" {
		return s.registry, nil
	}
	if !IsValidMIDIMode(mode) {
		return nil, fmt.Errorf("unknown midi mode %q", mode)
	}
	c, err := s.registry.Lookup(KindMIDI)
	if err != nil {
		return nil, err
	}
	m, ok := c.(*MIDICodec)
	if !ok || m.Mode() == mode {
		return s.registry, nil
	}
	return s.registry.With(m.WithMode(mode)), nil
}

// encodedName is the suggested download name for an artifact.
func encodedName(filename string, kind Kind) string {
	return "encoded_" + filename + kind.Extension()
}

// addDetails copies the non-zero encode statistics into meta.
func addDetails(meta map[string]string, d Details) {
	if d.DigitCount > 0 {
		meta[MetaDigitCount] = strconv.Itoa(d.DigitCount)
	}
	if d.QRVersion > 0 {
		meta[MetaQRVersion] = strconv.Itoa(d.QRVersion)
		meta[MetaQRLevel] = d.QRLevel
	}
	if d.Tracks > 0 {
		meta[MetaTracks] = strconv.Itoa(d.Tracks)
	}
}
