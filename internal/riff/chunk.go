// Package riff decodes the RIFF/WAVE container: fmt/data chunks for
// playback length and LIST/INFO sub-chunks for text metadata.
package riff

import (
	"github.com/tagscan-go/tagscan/internal/breader"
)

// chunkHeader is a decoded chunk header: its 4-character ASCII id and
// declared payload size (excluding the 8-byte header itself, and
// excluding the trailing pad byte odd sizes carry).
type chunkHeader struct {
	id   string
	size uint32
}

func readChunkHeader(r *breader.Reader) (chunkHeader, error) {
	idB, err := r.ReadExact(4)
	if err != nil {
		return chunkHeader{}, err
	}
	id := string(idB)
	size, err := breader.LE[uint32](r)
	if err != nil {
		return chunkHeader{}, err
	}
	return chunkHeader{id: id, size: size}, nil
}

// pad returns the trailing byte a chunk of this size carries to keep
// the stream on an even boundary.
func (h chunkHeader) pad() int64 {
	return int64(h.size & 1)
}
