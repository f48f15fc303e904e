package id3v2

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Extensions reports the file extensions this parser advertises to the
// dispatch layer.
func Extensions() []string { return []string{".mp3"} }

// FromFile opens path and parses its leading ID3v2 tag.
func FromFile(path string, sink tagscan.Sink, tr trap.Trap) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "id3v2: open")
	}
	defer f.Close()
	return FromSeek(f, sink, tr)
}

// FromSeek rewinds to the start of the stream and parses the leading
// ID3v2 tag.
func FromSeek(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "id3v2: rewind")
	}
	return FromRead(r, sink, tr)
}

// FromRead parses an ID3v2 tag assuming r is already positioned at its
// start.
func FromRead(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	br, err := breader.New(r)
	if err != nil {
		return err
	}

	ok, err := br.Expect([]byte("ID3"))
	if err != nil {
		return err
	}
	if !ok {
		return tagscan.ErrNoTag
	}

	h, err := readHeader(br)
	if err != nil {
		return err
	}

	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeID3v2(int(h.majorVersion)))
	}

	switch h.majorVersion {
	case majorVersion2:
		return fromBread22(br, sink, tr, h)
	case majorVersion3:
		return fromBread23(br, sink, tr, h)
	case majorVersion4:
		return fromBread24(br, sink, tr, h)
	default:
		return &tagscan.Unsupported{Reason: "ID3v2 major version other than 2, 3, and 4"}
	}
}
