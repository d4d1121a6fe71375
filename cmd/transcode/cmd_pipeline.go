package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/internal/logging"
)

func newPipelineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Chain codecs, e.g. prime then midi",
	}
	cmd.AddCommand(newPipelineEncodeCmd(a), newPipelineDecodeCmd(a))
	return cmd
}

// stepsOrDefault parses --steps, falling back to pipeline.steps from config.
func (a *app) stepsOrDefault(steps string) (transcode.Spec, error) {
	if steps == "" {
		steps = a.cfg.Pipeline.Steps
	}
	return transcode.ParseSpec(steps)
}

func newPipelineEncodeCmd(a *app) *cobra.Command {
	var flags struct {
		steps        string
		out          string
		report       bool
		reportFormat string
	}

	cmd := &cobra.Command{
		Use:   "encode FILE...",
		Short: "Encode one or more files through a codec chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.stepsOrDefault(flags.steps)
			if err != nil {
				return err
			}
			format := flags.reportFormat
			if format == "" {
				format = a.cfg.Report.Format
			}
			var enc transcode.Encoder
			if flags.report {
				if enc, err = reportEncoder(format); err != nil {
					return err
				}
			}

			jobs := make([]transcode.Job, len(args))
			for i, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				jobs[i] = transcode.Job{Spec: spec, Filename: filepath.Base(path), Data: data}
			}

			exec := transcode.NewExecutor(a.registry)
			runs, err := exec.EncodeBatch(cmd.Context(), jobs, a.cfg.Pipeline.Concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed int
			for i, run := range runs {
				logging.LogRun(a.log, run)
				job := jobs[i]
				if run.Err != nil {
					failed++
					red.Fprintf(out, "✗ %s: %v\n", job.Filename, run.Err)
				} else {
					name := "encoded_" + job.Filename + run.Final.Kind.Extension()
					path, err := writeFile(flags.out, name, run.Final.Bytes())
					if err != nil {
						return err
					}
					printWritten(out, path, run.Final.Size())
				}

				if enc != nil {
					report := transcode.NewReport(run, job.Filename, a.svc.Digest(job.Data))
					data, err := report.Marshal(enc)
					if err != nil {
						return err
					}
					if _, err := writeFile(flags.out, job.Filename+".report."+format, data); err != nil {
						return err
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d pipeline runs failed", failed, len(runs))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.steps, "steps", "", "Comma-separated codecs in encode order (default from config)")
	f.StringVarP(&flags.out, "output", "o", ".", "Output directory")
	f.BoolVar(&flags.report, "report", false, "Write a run report next to each artifact")
	f.StringVar(&flags.reportFormat, "report-format", "", "Report format: "+strings.Join(reportFormatNames(), ", "))
	return cmd
}

func newPipelineDecodeCmd(a *app) *cobra.Command {
	var flags struct {
		steps string
		out   string
	}

	cmd := &cobra.Command{
		Use:   "decode ARTIFACT",
		Short: "Undo a codec chain and restore the original file",
		Long:  "Decode takes --steps in the order they were used to encode and applies them in reverse.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.stepsOrDefault(flags.steps)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read artifact: %w", err)
			}

			resp, err := a.svc.Decode(cmd.Context(), transcode.DecodeRequest{Data: data, Steps: spec.Reverse()})
			if resp != nil && resp.Run != nil {
				logging.LogRun(a.log, resp.Run)
			}
			if err != nil {
				return err
			}

			path, err := writeFile(flags.out, resp.Filename, resp.Data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWritten(out, path, len(resp.Data))
			printMetadata(out, resp.Metadata)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.steps, "steps", "", "Comma-separated codecs in encode order (default from config)")
	f.StringVarP(&flags.out, "output", "o", ".", "Directory for the restored file")
	return cmd
}

// reportFormatNames lists the supported report formats.
func reportFormatNames() []string {
	return []string{"json", "yaml", "msgpack", "bson", "xml"}
}
