package mp4

import (
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
)

// parseChpl decodes the Nero-style chapter list full-box directly
// under udta: [1 version][3 flags][4 reserved][1 chapter count], then
// per chapter [8 start time, 100ns units][1 title length][title].
func parseChpl(r *breader.Reader, end int64, sink tagscan.Sink) error {
	if !sink.Accepts(tagscan.Chapters, 0) {
		return nil
	}
	if err := r.SeekBy(8); err != nil { // version(1) + flags(3) + reserved(4)
		return err
	}
	count, err := breader.BE[uint8](r)
	if err != nil {
		return err
	}
	for i := uint8(0); i < count && r.Pos() < end; i++ {
		start100ns, err := breader.BE[uint64](r)
		if err != nil {
			return err
		}
		titleLen, err := breader.BE[uint8](r)
		if err != nil {
			return err
		}
		titleB, err := r.ReadExact(int(titleLen))
		if err != nil {
			return err
		}
		sink.AddChapter(time.Duration(start100ns*100), string(titleB))
	}
	return nil
}
