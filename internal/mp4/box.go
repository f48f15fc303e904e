// Package mp4 decodes the MPEG-4/QuickTime box tree: ftyp/moov/udta/
// meta/ilst for tags and artwork, mvhd/stsd for stream properties, and
// the iTunes-style chpl/"----" extensions for chapters and audiobook
// fields.
package mp4

import (
	"github.com/tagscan-go/tagscan/internal/breader"
)

// box is a decoded box header: its 4-character type code and the
// absolute position (in the reader's coordinate space) one past its
// payload, used to realign the cursor after a handler runs regardless
// of how much of the payload it actually consumed.
type box struct {
	typ   string
	start int64 // payload start (one past the header)
	end   int64 // one past the payload
}

// readBox reads a box header at the reader's current position. end is
// the position the header modifying its caller's bound: parentEnd
// bounds a size-0 "extends to end of enclosing container" box.
func readBox(r *breader.Reader, parentEnd int64) (box, error) {
	size32, err := breader.BE[uint32](r)
	if err != nil {
		return box{}, err
	}
	typB, err := r.ReadExact(4)
	if err != nil {
		return box{}, err
	}
	typ := string(typB)

	headerLen := int64(8)
	var size uint64
	switch size32 {
	case 0:
		size = uint64(parentEnd - (r.Pos() - 8))
	case 1:
		size64, err := breader.BE[uint64](r)
		if err != nil {
			return box{}, err
		}
		size = size64
		headerLen = 16
	default:
		size = uint64(size32)
	}

	headerStart := r.Pos() - headerLen
	end := headerStart + int64(size)
	if end < r.Pos() {
		end = r.Pos()
	}
	return box{typ: typ, start: r.Pos(), end: end}, nil
}

// skipToEnd realigns the reader to b's end, regardless of how much of
// its payload a handler actually consumed.
func skipToEnd(r *breader.Reader, end int64) error {
	return r.SeekBy(end - r.Pos())
}

// eachChild walks sibling boxes from the reader's current position up
// to end, invoking f with each box's header. f is responsible for
// consuming whatever part of the payload it cares about; eachChild
// realigns to the child's end afterward.
func eachChild(r *breader.Reader, end int64, f func(b box) error) error {
	for r.Pos() < end {
		b, err := readBox(r, end)
		if err != nil {
			return err
		}
		if err := f(b); err != nil {
			return err
		}
		if err := skipToEnd(r, b.end); err != nil {
			return err
		}
	}
	return nil
}
