package flac

import "github.com/tagscan-go/tagscan/internal/breader"

// Metadata block type codes.
const (
	blockStreamInfo    = 0
	blockVorbisComment = 4
	blockCueSheet      = 5
	blockPicture       = 6
)

// metadataBlockHeader is the 4-byte header preceding every FLAC metadata
// block: 1 bit "last block", 7 bits block type, 24 bits big-endian
// length.
type metadataBlockHeader struct {
	last      bool
	blockType byte
	length    uint32
}

func readMetadataBlockHeader(r *breader.Reader) (metadataBlockHeader, error) {
	d, err := r.ReadExact(4)
	if err != nil {
		return metadataBlockHeader{}, err
	}
	word := uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])
	return metadataBlockHeader{
		last:      d[0]&0x80 == 0x80,
		blockType: d[0] & 0x7F,
		length:    word & 0x00FF_FFFF,
	}, nil
}
