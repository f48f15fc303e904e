// Package id3v2 implements the ID3v2.2, ID3v2.3, and ID3v2.4 frame-based
// tag formats described in spec.md §4.4.
package id3v2

import (
	"github.com/tagscan-go/tagscan/internal/breader"
)

const (
	majorVersion2 = 2
	majorVersion3 = 3
	majorVersion4 = 4
)

const (
	flagUnsynchronization = 0x80
	flagExtendedHeader    = 0x40
)

// header is the 10-byte ID3v2 tag header, read after the "ID3" magic.
type header struct {
	majorVersion byte
	minorVersion byte
	flags        byte
	size         uint32 // syncsafe, excludes the 10-byte header itself
}

func (h header) unsynchronization() bool { return h.flags&flagUnsynchronization != 0 }
func (h header) extendedHeader() bool    { return h.flags&flagExtendedHeader != 0 }

func readHeader(r *breader.Reader) (header, error) {
	b, err := r.ReadExact(3)
	if err != nil {
		return header{}, err
	}
	var h header
	h.majorVersion, h.minorVersion, h.flags = b[0], b[1], b[2]
	h.size, err = r.SyncsafeU32BE()
	return h, err
}
