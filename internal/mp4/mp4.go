package mp4

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Extensions reports the file extensions this parser advertises to the
// dispatch layer.
func Extensions() []string { return []string{".mp4", ".m4a", ".m4b"} }

// FromFile opens path and parses its MPEG-4/QuickTime box tree.
func FromFile(path string, sink tagscan.Sink, tr trap.Trap) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "mp4: open")
	}
	defer f.Close()
	return FromSeek(f, sink, tr)
}

// FromSeek rewinds to the start of the stream and parses the box tree.
func FromSeek(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "mp4: rewind")
	}
	return FromRead(r, sink, tr)
}

// FromRead parses the box tree assuming r is already positioned at the
// start of the stream. The first box must be ftyp; its absence means
// this isn't an MPEG-4/QuickTime file.
func FromRead(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	br, err := breader.New(r)
	if err != nil {
		return err
	}

	size, err := sizeOf(r)
	if err != nil {
		return err
	}

	first, err := readBox(br, size)
	if err != nil {
		return err
	}
	if first.typ != "ftyp" {
		return tagscan.ErrNoTag
	}
	if err := skipToEnd(br, first.end); err != nil {
		return err
	}

	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeMP4())
	}

	trakDone := false
	return eachChild(br, size, func(b box) error {
		switch b.typ {
		case "moov":
			return parseMoov(br, b.end, sink, tr, &trakDone)
		default:
			return nil
		}
	})
}

// sizeOf determines the total stream size by seeking to the end and
// back, since MPEG-4's top-level box walk needs a bound for the final
// box (which commonly declares size 0, "extends to end of file").
func sizeOf(r io.ReadSeeker) (int64, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

func parseMoov(r *breader.Reader, end int64, sink tagscan.Sink, tr trap.Trap, trakDone *bool) error {
	return eachChild(r, end, func(b box) error {
		switch b.typ {
		case "mvhd":
			return parseMvhd(r, sink)
		case "trak":
			return parseTrak(r, b.end, sink, trakDone)
		case "udta":
			return parseUdta(r, b.end, sink, tr)
		default:
			return nil
		}
	})
}

func parseUdta(r *breader.Reader, end int64, sink tagscan.Sink, tr trap.Trap) error {
	return eachChild(r, end, func(b box) error {
		switch b.typ {
		case "meta":
			return parseMeta(r, b.end, sink, tr)
		case "chpl":
			return parseChpl(r, b.end, sink)
		case "cprt":
			return parseCprt(r, b.end, sink, tr)
		default:
			return nil
		}
	})
}

// parseMeta skips the full-box's 4-byte version/flags preface before
// looking for ilst.
func parseMeta(r *breader.Reader, end int64, sink tagscan.Sink, tr trap.Trap) error {
	if err := r.SeekBy(4); err != nil {
		return err
	}
	return eachChild(r, end, func(b box) error {
		if b.typ != "ilst" {
			return nil
		}
		return parseIlst(r, b.end, sink, tr)
	})
}

// parseCprt reads the copyright full-box: 6-byte language prefix then
// UTF-8 copyright text.
func parseCprt(r *breader.Reader, end int64, sink tagscan.Sink, tr trap.Trap) error {
	if !sink.Accepts(tagscan.Copyright, 0) {
		return nil
	}
	if err := r.SeekBy(4); err != nil { // version + flags
		return err
	}
	if err := r.SeekBy(2); err != nil { // language
		return err
	}
	n := int(end - r.Pos())
	if n <= 0 {
		return nil
	}
	b, err := r.ReadExact(n)
	if err != nil {
		return err
	}
	v, err := enc.UTF8(b, tr)
	if err != nil {
		return nil
	}
	sink.SetCopyright(v)
	return nil
}
