package transcode

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// dataTrackName marks the track that carries the frame.
	dataTrackName = "transcode:data"

	// dataBaseNote is the key of nibble 0; nibble 15 is dataBaseNote+15.
	dataBaseNote uint8 = 60

	dataChannel uint8 = 0

	defaultTicksPerNote uint32 = 120
	defaultVelocity     uint8  = 100
	ticksPerQuarter            = 480
	defaultTempo               = 120.0
)

// MIDIOption configures a MIDICodec.
type MIDIOption func(*MIDICodec)

// WithMode selects raw or musical output.
func WithMode(mode MIDIMode) MIDIOption {
	return func(c *MIDICodec) {
		if IsValidMIDIMode(mode) {
			c.mode = mode
		}
	}
}

// WithTicksPerNote sets the fixed spacing of data notes. Zero is ignored.
func WithTicksPerNote(ticks uint32) MIDIOption {
	return func(c *MIDICodec) {
		if ticks > 0 {
			c.ticks = ticks
		}
	}
}

// WithVelocity sets the data note velocity, 1-127.
func WithVelocity(v uint8) MIDIOption {
	return func(c *MIDICodec) {
		if v > 0 && v <= 127 {
			c.velocity = v
		}
	}
}

// MIDICodec renders frames as note events on a marked data track.
//
// Each frame byte becomes two consecutive note-on/note-off pairs, high
// nibble first, with key dataBaseNote+nibble. Notes sit at fixed tick
// spacing so decode needs only track order. Musical mode appends cosmetic
// tracks that decode never reads.
type MIDICodec struct {
	mode     MIDIMode
	ticks    uint32
	velocity uint8
}

// NewMIDICodec returns a MIDI codec. Defaults to raw mode.
func NewMIDICodec(opts ...MIDIOption) *MIDICodec {
	c := &MIDICodec{
		mode:     MIDIRaw,
		ticks:    defaultTicksPerNote,
		velocity: defaultVelocity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMode returns a copy of the codec using mode.
func (c *MIDICodec) WithMode(mode MIDIMode) *MIDICodec {
	cp := *c
	WithMode(mode)(&cp)
	return &cp
}

// Mode returns the configured mode.
func (c *MIDICodec) Mode() MIDIMode {
	return c.mode
}

// Kind returns KindMIDI.
func (c *MIDICodec) Kind() Kind {
	return KindMIDI
}

// ContentType returns the MIME type for MIDI.
func (c *MIDICodec) ContentType() string {
	return KindMIDI.ContentType()
}

// Encode serializes the frame onto the data track and writes an SMF container.
func (c *MIDICodec) Encode(f *Frame) (Artifact, error) {
	raw, err := f.MarshalBinary()
	if err != nil {
		return Artifact{}, err
	}
	keys := nibbleKeys(raw)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	if err := s.Add(c.dataTrack(keys)); err != nil {
		return Artifact{}, newCodecError(ErrInvalidContainer, KindMIDI, "encode", err)
	}
	if c.mode == MIDIMusical {
		for _, tr := range accompaniment(keys, c.ticks, c.velocity) {
			if err := s.Add(tr); err != nil {
				return Artifact{}, newCodecError(ErrInvalidContainer, KindMIDI, "encode", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return Artifact{}, newCodecError(ErrInvalidContainer, KindMIDI, "encode", err)
	}

	a := MIDIArtifact(buf.Bytes())
	a.Details.Tracks = len(s.Tracks)
	a.Details.DataEvents = len(keys)
	return a, nil
}

// dataTrack builds the marked track carrying one note per nibble.
func (c *MIDICodec) dataTrack(keys []uint8) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(dataTrackName))
	tr.Add(0, smf.MetaTempo(defaultTempo))
	for _, key := range keys {
		tr.Add(0, midi.NoteOn(dataChannel, key, c.velocity))
		tr.Add(c.ticks, midi.NoteOff(dataChannel, key))
	}
	tr.Close(0)
	return tr
}

// Decode locates the data track, reassembles bytes from note pairs, and
// parses the frame. All other tracks are ignored.
func (c *MIDICodec) Decode(a Artifact) (*Frame, error) {
	if err := checkKind(KindMIDI, a); err != nil {
		return nil, err
	}
	s, err := smf.ReadFrom(bytes.NewReader(a.Data))
	if err != nil {
		return nil, newCodecError(ErrInvalidContainer, KindMIDI, "decode", err)
	}

	track, ok := findDataTrack(s.Tracks)
	if !ok {
		return nil, newCodecError(ErrMissingDataTrack, KindMIDI, "decode", nil)
	}

	var nibbles []uint8
	for i, ev := range track {
		var ch, key, vel uint8
		if !midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) || ch != dataChannel {
			continue
		}
		if key < dataBaseNote || key > dataBaseNote+0x0f {
			return nil, newCodecError(ErrInvalidNote, KindMIDI, "decode", fmt.Errorf("key %d at event %d", key, i))
		}
		nibbles = append(nibbles, key-dataBaseNote)
	}
	if len(nibbles)%2 != 0 {
		return nil, newCodecError(ErrTruncatedEventStream, KindMIDI, "decode", fmt.Errorf("%d note events", len(nibbles)))
	}

	raw := make([]byte, len(nibbles)/2)
	for i := range raw {
		raw[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	return ParseFrame(raw)
}

// findDataTrack returns the first track named dataTrackName.
func findDataTrack(tracks []smf.Track) (smf.Track, bool) {
	for _, tr := range tracks {
		for _, ev := range tr {
			var name string
			if ev.Message.GetMetaTrackName(&name) && name == dataTrackName {
				return tr, true
			}
		}
	}
	return nil, false
}

// nibbleKeys maps each byte to two keys, high nibble first.
func nibbleKeys(raw []byte) []uint8 {
	keys := make([]uint8, 0, 2*len(raw))
	for _, b := range raw {
		keys = append(keys, dataBaseNote+b>>4, dataBaseNote+b&0x0f)
	}
	return keys
}
