package mp4

import (
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
)

// parseMvhd reads the movie header full-box: version+flags, two
// timestamps, then a 32-bit (v0) or 64-bit (v1) time-scale+duration
// pair. Length is duration/time-scale.
func parseMvhd(r *breader.Reader, sink tagscan.Sink) error {
	version, err := breader.BE[uint8](r)
	if err != nil {
		return err
	}
	if _, err := r.ReadExact(3); err != nil { // flags
		return err
	}

	var timescale uint32
	var duration uint64
	if version == 1 {
		if err := r.SeekBy(16); err != nil { // creation + modification time (8+8)
			return err
		}
		timescale, err = breader.BE[uint32](r)
		if err != nil {
			return err
		}
		duration, err = breader.BE[uint64](r)
		if err != nil {
			return err
		}
	} else {
		if err := r.SeekBy(8); err != nil { // creation + modification time (4+4)
			return err
		}
		timescale, err = breader.BE[uint32](r)
		if err != nil {
			return err
		}
		d32, err := breader.BE[uint32](r)
		if err != nil {
			return err
		}
		duration = uint64(d32)
	}

	if timescale == 0 || !sink.Accepts(tagscan.Length, 0) {
		return nil
	}
	sink.SetLength(time.Duration(float64(duration) / float64(timescale) * float64(time.Second)))
	return nil
}
