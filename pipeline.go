package transcode

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Direction distinguishes encode runs from decode runs.
type Direction string

const (
	DirectionEncode Direction = "encode"
	DirectionDecode Direction = "decode"
)

// Spec is an ordered list of codec kinds. Order is significant.
type Spec []Kind

// ParseSpec parses a comma-separated list of codec tags, e.g. "prime,midi".
func ParseSpec(s string) (Spec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptySpec
	}
	parts := strings.Split(s, ",")
	spec := make(Spec, 0, len(parts))
	for _, p := range parts {
		k, err := ParseKind(p)
		if err != nil {
			return nil, err
		}
		spec = append(spec, k)
	}
	return spec, nil
}

// Validate checks that s is non-empty and every kind is known.
func (s Spec) Validate() error {
	if len(s) == 0 {
		return ErrEmptySpec
	}
	for _, k := range s {
		if !IsValidKind(k) {
			return fmt.Errorf("%w: %q", ErrUnsupportedCodec, k)
		}
	}
	return nil
}

// Reverse returns the steps in mirrored order, the order decode applies them.
func (s Spec) Reverse() Spec {
	r := make(Spec, len(s))
	for i, k := range s {
		r[len(s)-1-i] = k
	}
	return r
}

// String returns the comma-separated form.
func (s Spec) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

// PipelineRun records one pass through a pipeline.
//
// The executor owns the run until Encode or Decode returns; afterwards it
// belongs to the caller and is not touched again.
type PipelineRun struct {
	Spec      Spec
	Direction Direction

	// Artifacts holds one entry per completed encode step, in order.
	// On failure the earlier artifacts remain for diagnostics.
	Artifacts []Artifact

	// Frames holds one entry per completed decode step, in order.
	Frames []*Frame

	// Final is the last encode artifact; nil unless the run succeeded.
	Final *Artifact

	// Result is the recovered frame; nil unless a decode run succeeded.
	Result *Frame

	StepsCompleted int
	Elapsed        time.Duration

	// Err is the *StepError that halted the run, or nil.
	Err error
}

// Succeeded reports whether the run completed every step.
func (r *PipelineRun) Succeeded() bool {
	return r.Err == nil && r.StepsCompleted == len(r.Spec)
}

// Executor composes codecs into pipelines.
//
// An Executor holds only its read-only registry and is safe for
// concurrent use; each run owns its own intermediate state.
type Executor struct {
	registry *Registry
}

// NewExecutor returns an executor over registry. A nil registry selects
// DefaultRegistry.
func NewExecutor(registry *Registry) *Executor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Executor{registry: registry}
}

// Registry returns the executor's registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Encode applies spec left to right. The first step encodes a frame of
// (filename, data); each later step encodes a fresh frame wrapping the
// previous artifact's bytes under a stage placeholder name.
//
// Cancellation is checked between steps. A run cancelled after step i
// reports the same as a failure at step i+1.
func (e *Executor) Encode(ctx context.Context, spec Spec, filename string, data []byte) (*PipelineRun, error) {
	run := &PipelineRun{Spec: spec, Direction: DirectionEncode}
	start := time.Now()
	emitPipelineStart(ctx, spec, run.Direction)
	defer func() {
		run.Elapsed = time.Since(start)
		emitPipelineComplete(ctx, run)
	}()

	codecs, err := e.resolve(spec, run.Direction)
	if err != nil {
		run.Err = err
		return run, err
	}

	if filename == "" {
		filename = placeholderName()
	}
	name, payload := filename, data
	for i, c := range codecs {
		if err := ctx.Err(); err != nil {
			return run, run.fail(i, c.Kind(), err)
		}
		f, err := NewFrame(name, payload)
		if err != nil {
			return run, run.fail(i, c.Kind(), err)
		}
		a, err := encodeWith(ctx, c, f)
		if err != nil {
			return run, run.fail(i, c.Kind(), err)
		}
		run.Artifacts = append(run.Artifacts, a)
		run.StepsCompleted = i + 1
		emitPipelineStep(ctx, i+1, c.Kind(), run.Direction, a.Size())

		name, payload = stageName(i+1, c.Kind()), a.Bytes()
	}

	final := run.Artifacts[len(run.Artifacts)-1]
	run.Final = &final
	return run, nil
}

// Decode applies spec left to right as decode steps. To undo an encode
// run, pass the encode spec reversed; see Undo.
func (e *Executor) Decode(ctx context.Context, spec Spec, data []byte) (*PipelineRun, error) {
	run := &PipelineRun{Spec: spec, Direction: DirectionDecode}
	start := time.Now()
	emitPipelineStart(ctx, spec, run.Direction)
	defer func() {
		run.Elapsed = time.Since(start)
		emitPipelineComplete(ctx, run)
	}()

	codecs, err := e.resolve(spec, run.Direction)
	if err != nil {
		run.Err = err
		return run, err
	}

	payload := data
	for i, c := range codecs {
		if err := ctx.Err(); err != nil {
			return run, run.fail(i, c.Kind(), err)
		}
		f, err := decodeWith(ctx, c, Artifact{Kind: c.Kind(), Data: payload})
		if err != nil {
			return run, run.fail(i, c.Kind(), err)
		}
		run.Frames = append(run.Frames, f)
		run.StepsCompleted = i + 1
		emitPipelineStep(ctx, i+1, c.Kind(), run.Direction, len(f.Payload))

		payload = f.Payload
	}

	run.Result = run.Frames[len(run.Frames)-1]
	return run, nil
}

// Undo decodes data produced by Encode with encodeSpec.
func (e *Executor) Undo(ctx context.Context, encodeSpec Spec, data []byte) (*PipelineRun, error) {
	return e.Decode(ctx, encodeSpec.Reverse(), data)
}

// resolve validates the steps and looks up their codecs.
func (e *Executor) resolve(spec Spec, dir Direction) ([]Codec, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	codecs, err := e.registry.Resolve(spec)
	if err != nil {
		for i, k := range spec {
			if _, lookupErr := e.registry.Lookup(k); lookupErr != nil {
				return nil, &StepError{Step: i + 1, Kind: k, Direction: dir, Err: lookupErr}
			}
		}
		return nil, err
	}
	return codecs, nil
}

// fail records a failure at the 0-based step index i.
func (r *PipelineRun) fail(i int, kind Kind, cause error) error {
	r.StepsCompleted = i
	r.Err = &StepError{Step: i + 1, Kind: kind, Direction: r.Direction, Err: cause}
	return r.Err
}
