package riff

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Extensions reports the file extensions this parser advertises to the
// dispatch layer.
func Extensions() []string {
	return []string{".wav", ".wave", ".avi", ".ani", ".pal", ".rdi", ".dib", ".rmi", ".rmm", ".webp"}
}

// FromFile opens path and parses its RIFF chunk tree.
func FromFile(path string, sink tagscan.Sink, tr trap.Trap) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "riff: open")
	}
	defer f.Close()
	return FromSeek(f, sink, tr)
}

// FromSeek rewinds to the start of the stream and parses the chunk
// tree.
func FromSeek(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "riff: rewind")
	}
	return FromRead(r, sink, tr)
}

// FromRead parses the chunk tree assuming r is already positioned at
// the start of the stream. The first chunk must be RIFF; its absence
// means this isn't a RIFF container.
func FromRead(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	br, err := breader.New(r)
	if err != nil {
		return err
	}

	header, err := readChunkHeader(br)
	if err != nil {
		return err
	}
	if header.id != "RIFF" {
		return tagscan.ErrNoTag
	}

	formB, err := br.ReadExact(4)
	if err != nil {
		return err
	}
	formType := string(formB)
	isWave := formType == "WAVE"

	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeRiff(formType))
	}

	var avgBytesPerSec, dataSize uint32
	var haveFmt, haveData bool

	var pos uint32
	for !sink.Done() && pos+8 < header.size {
		child, err := readChunkHeader(br)
		if err != nil {
			return err
		}
		pos += child.size + uint32(child.pad()) + 8

		switch {
		case child.id == "LIST":
			if err := readList(br, sink, tr, int64(child.size)); err != nil {
				return err
			}
		case child.id == "fmt " && isWave && sink.Accepts(tagscan.Length, 0):
			abps, err := readWaveFmt(br, child.size)
			if err != nil {
				return err
			}
			avgBytesPerSec, haveFmt = abps, true
		case child.id == "data" && isWave && sink.Accepts(tagscan.Length, 0):
			dataSize, haveData = child.size, true
			if err := br.USeekBy(uint64(child.size)); err != nil {
				return err
			}
		default:
			if err := br.USeekBy(uint64(child.size)); err != nil {
				return err
			}
		}

		if err := br.SeekBy(child.pad()); err != nil {
			return err
		}

		if haveFmt && haveData && avgBytesPerSec != 0 {
			sink.SetLength(time.Duration(float64(dataSize) / float64(avgBytesPerSec) * float64(time.Second)))
		}
	}

	return nil
}

// readWaveFmt reads just enough of the fmt chunk's payload (14 bytes:
// wFormatTag, channels, sample rate, avg bytes/sec, block align) to
// extract the average-bytes-per-second field at payload offset 8, then
// skips the remainder of the declared chunk size.
func readWaveFmt(r *breader.Reader, size uint32) (uint32, error) {
	if size < 14 {
		return 0, r.USeekBy(uint64(size))
	}
	d, err := r.ReadExact(14)
	if err != nil {
		return 0, err
	}
	abps := leUint32(d[8:12])
	if err := r.USeekBy(uint64(size) - 14); err != nil {
		return 0, err
	}
	return abps, nil
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
