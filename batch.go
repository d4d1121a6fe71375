package transcode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independent encode request within a batch.
type Job struct {
	Spec     Spec
	Filename string
	Data     []byte
}

// EncodeBatch runs independent encode pipelines concurrently, at most
// limit at a time (limit <= 0 means unbounded). Runs share nothing but the
// read-only registry; one run failing does not stop the others.
//
// runs[i] always corresponds to jobs[i]. The returned error is non-nil
// only when ctx is cancelled; per-run failures live in each run's Err.
func (e *Executor) EncodeBatch(ctx context.Context, jobs []Job, limit int) ([]*PipelineRun, error) {
	runs := make([]*PipelineRun, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			runs[i], _ = e.Encode(gctx, job.Spec, job.Filename, job.Data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return runs, err
	}
	return runs, ctx.Err()
}
