package mp4

import (
	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
)

// parseTrak walks a single track (trak -> mdia -> minf -> stbl -> stsd)
// looking for an audio sample description, pushing sample rate and
// channel count when found. Only the first such track in the file is
// used, matching the teacher's single-audio-track assumption.
func parseTrak(r *breader.Reader, end int64, sink tagscan.Sink, found *bool) error {
	if *found {
		return nil
	}
	return eachChild(r, end, func(b box) error {
		if b.typ != "mdia" {
			return nil
		}
		return eachChild(r, b.end, func(b box) error {
			if b.typ != "minf" {
				return nil
			}
			return eachChild(r, b.end, func(b box) error {
				if b.typ != "stbl" {
					return nil
				}
				return eachChild(r, b.end, func(b box) error {
					if b.typ != "stsd" {
						return nil
					}
					if err := parseStsd(r, sink); err != nil {
						return err
					}
					*found = true
					return nil
				})
			})
		})
	})
}

// parseStsd reads the sample description box's first (audio) entry:
// [1 version][3 flags][4 entry count][4 entry size][4 format]
// [6 reserved][2 data-ref idx][2 version][2 revision][4 vendor]
// [2 channels][2 sample size][2 compression id][2 packet size]
// [4 sample rate, 16.16 fixed point].
func parseStsd(r *breader.Reader, sink tagscan.Sink) error {
	if err := r.SeekBy(4); err != nil { // version + flags
		return err
	}
	count, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	if err := r.SeekBy(4); err != nil { // entry size
		return err
	}
	if _, err := r.ReadExact(4); err != nil { // format (codec fourCC), unused
		return err
	}
	if err := r.SeekBy(8); err != nil { // reserved(6) + data ref index(2)
		return err
	}
	if err := r.SeekBy(2); err != nil { // audio sample entry version
		return err
	}
	if err := r.SeekBy(6); err != nil { // revision level(2) + vendor(4)
		return err
	}

	channels, err := breader.BE[uint16](r)
	if err != nil {
		return err
	}
	if err := r.SeekBy(2); err != nil { // sample size
		return err
	}
	if err := r.SeekBy(4); err != nil { // compression id(2) + packet size(2)
		return err
	}
	sampleRateFixed, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}

	if sink.Accepts(tagscan.Channels, 0) {
		sink.SetChannels(int(channels))
	}
	if sink.Accepts(tagscan.SampleRate, 0) {
		sink.SetSampleRate(int(sampleRateFixed >> 16))
	}
	return nil
}
