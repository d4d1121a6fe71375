package transcode

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for transcode events.
var (
	SignalEncodeStart      = capitan.NewSignal("transcode.encode.start", "Codec encode beginning")
	SignalEncodeComplete   = capitan.NewSignal("transcode.encode.complete", "Codec encode finished")
	SignalDecodeStart      = capitan.NewSignal("transcode.decode.start", "Codec decode beginning")
	SignalDecodeComplete   = capitan.NewSignal("transcode.decode.complete", "Codec decode finished")
	SignalPipelineStart    = capitan.NewSignal("transcode.pipeline.start", "Pipeline run beginning")
	SignalPipelineStep     = capitan.NewSignal("transcode.pipeline.step", "Pipeline step finished")
	SignalPipelineComplete = capitan.NewSignal("transcode.pipeline.complete", "Pipeline run finished")
	SignalVerifyComplete   = capitan.NewSignal("transcode.verify.complete", "Digest comparison finished")
)

// Keys for typed event data.
var (
	KeyKind           = capitan.NewStringKey("kind")
	KeyFilename       = capitan.NewStringKey("filename")
	KeyDirection      = capitan.NewStringKey("direction")
	KeySpec           = capitan.NewStringKey("spec")
	KeySize           = capitan.NewIntKey("size")
	KeyStep           = capitan.NewIntKey("step")
	KeyStepsCompleted = capitan.NewIntKey("steps_completed")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyVerified       = capitan.NewBoolKey("verified")
	KeyMatch          = capitan.NewBoolKey("match")
)

// emitEncodeStart emits an event when a codec encode begins.
func emitEncodeStart(ctx context.Context, kind Kind, filename string, size int) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyKind.Field(string(kind)),
		KeyFilename.Field(filename),
		KeySize.Field(size),
	)
}

// emitEncodeComplete emits an event when a codec encode finishes.
func emitEncodeComplete(ctx context.Context, kind Kind, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKind.Field(string(kind)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when a codec decode begins.
func emitDecodeStart(ctx context.Context, kind Kind, size int) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyKind.Field(string(kind)),
		KeySize.Field(size),
	)
}

// emitDecodeComplete emits an event when a codec decode finishes.
func emitDecodeComplete(ctx context.Context, kind Kind, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKind.Field(string(kind)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitPipelineStart emits an event when a pipeline run begins.
func emitPipelineStart(ctx context.Context, spec Spec, dir Direction) {
	capitan.Emit(ctx, SignalPipelineStart,
		KeySpec.Field(spec.String()),
		KeyDirection.Field(string(dir)),
	)
}

// emitPipelineStep emits an event when a pipeline step succeeds.
func emitPipelineStep(ctx context.Context, step int, kind Kind, dir Direction, size int) {
	capitan.Emit(ctx, SignalPipelineStep,
		KeyStep.Field(step),
		KeyKind.Field(string(kind)),
		KeyDirection.Field(string(dir)),
		KeySize.Field(size),
	)
}

// emitPipelineComplete emits an event when a pipeline run ends.
func emitPipelineComplete(ctx context.Context, run *PipelineRun) {
	fields := []capitan.Field{
		KeySpec.Field(run.Spec.String()),
		KeyDirection.Field(string(run.Direction)),
		KeyStepsCompleted.Field(run.StepsCompleted),
		KeyDuration.Field(run.Elapsed),
	}
	if run.Err != nil {
		fields = append(fields, KeyError.Field(run.Err))
		capitan.Error(ctx, SignalPipelineComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalPipelineComplete, fields...)
	}
}

// emitVerifyComplete emits an event when two digests are compared.
func emitVerifyComplete(ctx context.Context, v Verification) {
	capitan.Emit(ctx, SignalVerifyComplete,
		KeyVerified.Field(v.Verified),
		KeyMatch.Field(v.Match),
	)
}
