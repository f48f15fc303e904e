package asf

import (
	"encoding/binary"
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
)

// readFileProperties reads the file properties object's payload and
// derives length = play-duration − preroll. play-duration is 100-ns
// ticks at payload offset 40, preroll is milliseconds at payload
// offset 56 (both counted from the start of the payload, i.e. after
// the 24-byte GUID+size header).
func readFileProperties(r *breader.Reader, sink tagscan.Sink, size int64) error {
	if !sink.Accepts(tagscan.Length, 0) {
		return r.SeekBy(size)
	}
	d, err := r.ReadOwned(int(size))
	if err != nil {
		return err
	}
	if len(d) < 64 {
		return nil
	}
	ticks := binary.LittleEndian.Uint64(d[40:48])
	prerollMS := binary.LittleEndian.Uint64(d[56:64])
	length := time.Duration(ticks)*100*time.Nanosecond - time.Duration(prerollMS)*time.Millisecond
	if length < 0 {
		length = 0
	}
	sink.SetLength(length)
	return nil
}
