package asf

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// readPicture decodes WM/Picture: a 1-byte ID3-style picture kind, a
// 4-byte little-endian image length, a NUL-terminated UTF-16LE MIME
// type, a NUL-terminated UTF-16LE description, then the raw image
// bytes. Both terminators count toward the declared value size as
// they're consumed — not subtracted as a separate fixed amount.
func readPicture(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, typ uint16, size int64) error {
	if typ != valueBytes {
		if err := r.SeekBy(size); err != nil {
			return err
		}
		return tr.Error(tagscan.ErrInvalidDataType)
	}

	kindB, err := r.ReadExact(1)
	if err != nil {
		return err
	}
	kind, ok := tagscan.PictureKindFromID3(kindB[0])
	if !ok {
		if rerr := tr.Error(tagscan.ErrInvalidPictureKind); rerr != nil {
			return rerr
		}
		kind = tagscan.PictureOther
	}

	lenB, err := r.ReadExact(4)
	if err != nil {
		return err
	}
	imgLen := binary.LittleEndian.Uint32(lenB)
	size -= 5

	if size < 0 {
		if rerr := tr.Error(tagscan.ErrInvalidLength); rerr != nil {
			return rerr
		}
		return nil
	}

	mime, consumed, err := scanUTF16NT(r, int(size), tr)
	if err != nil {
		return r.SeekBy(size - int64(consumed))
	}
	size -= int64(consumed)

	if size < 0 {
		if rerr := tr.Error(tagscan.ErrInvalidLength); rerr != nil {
			return rerr
		}
		return nil
	}

	desc, consumed, err := scanUTF16NT(r, int(size), tr)
	if err != nil {
		return r.SeekBy(size - int64(consumed))
	}
	size -= int64(consumed)

	if size < 0 {
		if rerr := tr.Error(tagscan.ErrInvalidLength); rerr != nil {
			return rerr
		}
		return nil
	}

	size -= int64(imgLen)
	if size < 0 {
		if rerr := tr.Error(tagscan.ErrInvalidLength); rerr != nil {
			return rerr
		}
		return nil
	}

	data, err := r.ReadOwned(int(imgLen))
	if err != nil {
		return err
	}

	sink.AddPicture(tagscan.Picture{
		MIME:        mime,
		Description: desc,
		Data:        data,
		Kind:        kind,
		IsURI:       mime == "-->",
	})

	return r.SeekBy(size)
}

// scanUTF16NT reads up to max bytes, one 2-byte code unit at a time,
// looking for a 00 00 terminator unit and decodes the UTF-16LE string
// preceding it, also reporting the total bytes consumed (string plus
// terminator, or everything read when no terminator was found) for the
// caller's remaining-size bookkeeping.
func scanUTF16NT(r *breader.Reader, max int, tr trap.Trap) (string, int, error) {
	var units []byte
	consumed := 0
	for consumed+2 <= max {
		b, err := r.ReadExact(2)
		if err != nil {
			return "", consumed, err
		}
		consumed += 2
		if b[0] == 0 && b[1] == 0 {
			s, err := enc.UTF16LE(units, tr)
			return s, consumed, err
		}
		units = append(units, b...)
	}
	return "", consumed, errors.New("asf: UTF-16 terminator not found")
}
