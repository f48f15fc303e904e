package asf

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
func Extensions() []string { return []string{".asf", ".wma", ".wmv"} }

// FromFile opens path and parses its ASF object tree.
func FromFile(path string, sink tagscan.Sink, tr trap.Trap) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "asf: open")
	}
	defer f.Close()
	return FromSeek(f, sink, tr)
}

// FromSeek rewinds to the start of the stream and parses the object
// tree.
func FromSeek(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "asf: rewind")
	}
	return FromRead(r, sink, tr)
}

// FromRead parses the object tree assuming r is already positioned at
// the start of the stream. The first object must be the file header
// object; its absence means this isn't an ASF/WMA file.
func FromRead(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	br, err := breader.New(r)
	if err != nil {
		return err
	}

	header, err := readObject(br)
	if err != nil {
		return err
	}
	if header.guid != guidFileHeader {
		return tagscan.ErrNoTag
	}

	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeASF())
	}

	count, err := breader.LE[uint32](br)
	if err != nil {
		return err
	}
	if err := br.SeekBy(2); err != nil { // reserved
		return err
	}

	for ; count > 0 && !sink.Done(); count-- {
		obj, err := readObject(br)
		if err != nil {
			return err
		}

		switch obj.guid {
		case guidFileProperties:
			if err := readFileProperties(br, sink, obj.payloadSize); err != nil {
				return err
			}
		case guidContentDescription:
			if err := readContentDescription(br, sink, tr, obj.payloadSize); err != nil {
				return err
			}
		case guidExtendedContentDescription:
			if err := readExtendedContentDescription(br, sink, tr, obj.payloadSize); err != nil {
				return err
			}
		default:
			if err := br.SeekBy(obj.payloadSize); err != nil {
				return err
			}
		}
	}

	return nil
}
