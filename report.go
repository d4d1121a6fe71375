package transcode

// Report is a serializable summary of a pipeline run, suitable for any
// Encoder provider.
type Report struct {
	Spec           string       `json:"spec" yaml:"spec" msgpack:"spec" bson:"spec" xml:"spec"`
	Direction      string       `json:"direction" yaml:"direction" msgpack:"direction" bson:"direction" xml:"direction"`
	Filename       string       `json:"filename,omitempty" yaml:"filename,omitempty" msgpack:"filename,omitempty" bson:"filename,omitempty" xml:"filename,omitempty"`
	OriginalHash   string       `json:"original_hash,omitempty" yaml:"original_hash,omitempty" msgpack:"original_hash,omitempty" bson:"original_hash,omitempty" xml:"original_hash,omitempty"`
	StepsCompleted int          `json:"steps_completed" yaml:"steps_completed" msgpack:"steps_completed" bson:"steps_completed" xml:"steps_completed"`
	ElapsedMillis  int64        `json:"elapsed_ms" yaml:"elapsed_ms" msgpack:"elapsed_ms" bson:"elapsed_ms" xml:"elapsed_ms"`
	Steps          []ReportStep `json:"steps" yaml:"steps" msgpack:"steps" bson:"steps" xml:"step"`
	Error          string       `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty" bson:"error,omitempty" xml:"error,omitempty"`
}

// ReportStep summarizes one completed step.
type ReportStep struct {
	Index       int    `json:"index" yaml:"index" msgpack:"index" bson:"index" xml:"index"`
	Codec       string `json:"codec" yaml:"codec" msgpack:"codec" bson:"codec" xml:"codec"`
	Size        int    `json:"size" yaml:"size" msgpack:"size" bson:"size" xml:"size"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty" msgpack:"content_type,omitempty" bson:"content_type,omitempty" xml:"content_type,omitempty"`
}

// NewReport summarizes run. filename and original are optional.
func NewReport(run *PipelineRun, filename string, original Digest) Report {
	r := Report{
		Spec:           run.Spec.String(),
		Direction:      string(run.Direction),
		Filename:       filename,
		StepsCompleted: run.StepsCompleted,
		ElapsedMillis:  run.Elapsed.Milliseconds(),
		Steps:          []ReportStep{},
	}
	if !original.IsZero() {
		r.OriginalHash = original.String()
	}
	for i, a := range run.Artifacts {
		r.Steps = append(r.Steps, ReportStep{
			Index:       i + 1,
			Codec:       string(a.Kind),
			Size:        a.Size(),
			ContentType: a.ContentType(),
		})
	}
	for i, f := range run.Frames {
		r.Steps = append(r.Steps, ReportStep{
			Index: i + 1,
			Codec: string(run.Spec[i]),
			Size:  len(f.Payload),
		})
	}
	if run.Err != nil {
		r.Error = run.Err.Error()
	}
	return r
}

// Marshal encodes the report with enc.
func (r Report) Marshal(enc Encoder) ([]byte, error) {
	data, err := enc.Marshal(r)
	if err != nil {
		return nil, newReportError(ErrMarshal, err)
	}
	return data, nil
}

// UnmarshalReport decodes a report previously written with enc.
func UnmarshalReport(enc Encoder, data []byte) (Report, error) {
	var r Report
	if err := enc.Unmarshal(data, &r); err != nil {
		return Report{}, newReportError(ErrUnmarshal, err)
	}
	return r, nil
}
