package flac

import (
	"fmt"
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// cueTrack is one CUESHEET audio track: its start offset in samples
// from the start of the stream, its track number, and its ISRC (empty
// if absent). Track 170 always marks the lead-out and is handled
// separately rather than appearing in this slice.
type cueTrack struct {
	offset uint64
	number byte
	isrc   string
}

// readCueSheet decodes a CUESHEET block and converts its audio tracks
// into chapter entries, since a cue sheet is this container's only
// source of chapter-like structure.
func readCueSheet(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, length uint32, sampleRate uint32) error {
	if length < 396 {
		if rerr := tr.Error(tagscan.ErrInvalidLength); rerr != nil {
			return rerr
		}
		return r.SeekBy(int64(length))
	}

	if err := r.SeekBy(128); err != nil { // media catalog number, unused here
		return err
	}
	if _, err := breader.BE[uint64](r); err != nil { // lead-in samples, unused here
		return err
	}
	if _, err := r.ReadExact(1); err != nil { // flags (compact-disc bit), unused here
		return err
	}
	if err := r.SeekBy(258); err != nil { // reserved (flags byte + 258 = 259 bytes)
		return err
	}

	countB, err := r.ReadExact(1)
	if err != nil {
		return err
	}
	count := countB[0]

	var tracks []cueTrack
	for i := byte(0); i < count; i++ {
		offset, err := breader.BE[uint64](r)
		if err != nil {
			return err
		}
		numB, err := r.ReadExact(1)
		if err != nil {
			return err
		}
		number := numB[0]
		isrcB, err := r.ReadExact(12)
		if err != nil {
			return err
		}
		flagsB, err := r.ReadExact(1)
		if err != nil {
			return err
		}
		isAudio := flagsB[0]&0x80 == 0 // audio if bit 7 is NOT set
		if err := r.SeekBy(13); err != nil {
			return err
		}
		idxCountB, err := r.ReadExact(1)
		if err != nil {
			return err
		}
		for j := byte(0); j < idxCountB[0]; j++ {
			if err := r.SeekBy(12); err != nil { // index offset(8) + number(1) + reserved(3)
				return err
			}
		}

		if number == 170 {
			continue // lead-out, not a chapter
		}
		if isAudio {
			tracks = append(tracks, cueTrack{offset: offset, number: number, isrc: trimNUL(isrcB)})
		}
	}

	pushCueChapters(sink, tracks, sampleRate)
	return nil
}

func trimNUL(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// pushCueChapters converts a CUESHEET's audio tracks into sink chapter
// entries titled by track number (and ISRC, when present), at their
// start times in samples converted to a duration via sampleRate.
func pushCueChapters(sink tagscan.Sink, tracks []cueTrack, sampleRate uint32) {
	if len(tracks) == 0 || sampleRate == 0 || !sink.Accepts(tagscan.Chapters, 0) {
		return
	}
	for _, t := range tracks {
		title := fmt.Sprintf("Track %02d", t.number)
		if t.isrc != "" {
			title = fmt.Sprintf("Track %02d (%s)", t.number, t.isrc)
		}
		start := time.Duration(float64(t.offset) / float64(sampleRate) * float64(time.Second))
		sink.AddChapter(start, title)
	}
}
