package transcode

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Cosmetic track names. None may equal dataTrackName.
const (
	bassTrackName  = "transcode:bass"
	chordTrackName = "transcode:chords"
	drumTrackName  = "transcode:drums"
)

const (
	bassChannel  uint8 = 1
	chordChannel uint8 = 2
	drumChannel  uint8 = 9

	bassProgram  uint8 = 32 // acoustic bass
	pianoProgram uint8 = 0

	kickNote  uint8 = 36
	snareNote uint8 = 38
)

// accompaniment derives bass, chord, and drum tracks from the data keys.
// The tracks follow the data track's timing but carry nothing decode needs.
func accompaniment(keys []uint8, ticks uint32, velocity uint8) []smf.Track {
	return []smf.Track{
		bassTrack(keys, ticks, velocity/2),
		chordTrack(keys, ticks, velocity/3),
		drumTrack(len(keys), ticks),
	}
}

// bassTrack plays the pitch class of each data note two octaves down.
func bassTrack(keys []uint8, ticks uint32, velocity uint8) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(bassTrackName))
	tr.Add(0, midi.ProgramChange(bassChannel, bassProgram))
	for _, key := range keys {
		note := key%12 + 36
		tr.Add(0, midi.NoteOn(bassChannel, note, velocity))
		tr.Add(ticks, midi.NoteOff(bassChannel, note))
	}
	tr.Close(0)
	return tr
}

// chordTrack plays a major triad rooted on each data note.
func chordTrack(keys []uint8, ticks uint32, velocity uint8) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(chordTrackName))
	tr.Add(0, midi.ProgramChange(chordChannel, pianoProgram))
	for _, key := range keys {
		triad := [3]uint8{key, key + 4, key + 7}
		for _, n := range triad {
			tr.Add(0, midi.NoteOn(chordChannel, n, velocity))
		}
		tr.Add(ticks, midi.NoteOff(chordChannel, triad[0]))
		tr.Add(0, midi.NoteOff(chordChannel, triad[1]))
		tr.Add(0, midi.NoteOff(chordChannel, triad[2]))
	}
	tr.Close(0)
	return tr
}

// drumTrack hits the kick on the first and the snare on the third of
// every four data notes.
func drumTrack(notes int, ticks uint32) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(drumTrackName))

	hit := ticks / 2
	if hit == 0 {
		hit = 1
	}
	var rest uint32
	for i := 0; i < notes; i++ {
		var note uint8
		var velocity uint8
		switch i % 4 {
		case 0:
			note, velocity = kickNote, 100
		case 2:
			note, velocity = snareNote, 80
		default:
			rest += ticks
			continue
		}
		tr.Add(rest, midi.NoteOn(drumChannel, note, velocity))
		tr.Add(hit, midi.NoteOff(drumChannel, note))
		rest = ticks - hit
	}
	tr.Close(rest)
	return tr
}
