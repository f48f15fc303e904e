package flac

import (
	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// readPicture decodes a PICTURE block:
// [kind(4)][mime len(4)][mime][desc len(4)][desc][width(4)][height(4)]
// [color depth(4)][palette size(4)][data len(4)][data].
// blockLength is the block's declared total size, used to skip the
// remainder in place when the kind isn't one the sink wants.
func readPicture(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, blockLength uint32) error {
	typb, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}

	kind, ok := tagscan.PictureKindFromID3(byte(typb))
	if !ok {
		if rerr := tr.Error(tagscan.ErrInvalidPictureKind); rerr != nil {
			return rerr
		}
		kind = tagscan.PictureOther
	}

	if !sink.Accepts(tagscan.PictureKindData, kind) {
		return r.SeekBy(int64(blockLength) - 4)
	}

	mimeLen, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	mimeBytes, err := r.ReadExact(int(mimeLen))
	if err != nil {
		return err
	}
	mime, err := enc.ASCII(mimeBytes, tr)
	if err != nil {
		return err
	}

	descLen, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	descBytes, err := r.ReadExact(int(descLen))
	if err != nil {
		return err
	}
	desc, err := enc.UTF8(descBytes, tr)
	if err != nil {
		return err
	}

	width, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	height, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	colorDepth, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	paletteSize, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}

	dataLen, err := breader.BE[uint32](r)
	if err != nil {
		return err
	}
	data, err := r.ReadOwned(int(dataLen))
	if err != nil {
		return err
	}

	sink.AddPicture(tagscan.Picture{
		MIME:            mime,
		Description:     desc,
		Data:            data,
		Kind:            kind,
		IsURI:           mime == "-->",
		Width:           int(width),
		Height:          int(height),
		ColorDepth:      int(colorDepth),
		PaletteSize:     int(paletteSize),
		HasSize:         width != 0 || height != 0,
		HasColorDepth:   colorDepth != 0,
		HasPaletteSize:  paletteSize != 0,
	})
	return nil
}
