package asf

import (
	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// readContentDescription decodes the fixed-layout title/author/
// copyright/description/rating fields: five little-endian uint16
// lengths followed by five UTF-16LE strings of those declared
// lengths.
func readContentDescription(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, size int64) error {
	wantAny := sink.Accepts(tagscan.Title, 0) || sink.Accepts(tagscan.Artists, 0) ||
		sink.Accepts(tagscan.Copyright, 0) || sink.Accepts(tagscan.Comments, 0) ||
		sink.Accepts(tagscan.Ratings, 0)
	if !wantAny {
		return r.SeekBy(size)
	}

	lens := make([]uint16, 5)
	for i := range lens {
		l, err := breader.LE[uint16](r)
		if err != nil {
			return err
		}
		lens[i] = l
	}
	size -= 10

	readField := func(n uint16) (string, error) {
		if n == 0 {
			return "", nil
		}
		b, err := r.ReadExact(int(n))
		if err != nil {
			return "", err
		}
		_, s, derr := enc.UTF16LEMNT(b, tr)
		if derr != nil {
			return "", nil
		}
		return s, nil
	}

	title, err := readField(lens[0])
	if err != nil {
		return err
	}
	artist, err := readField(lens[1])
	if err != nil {
		return err
	}
	copyright, err := readField(lens[2])
	if err != nil {
		return err
	}
	comment, err := readField(lens[3])
	if err != nil {
		return err
	}
	rating, err := readField(lens[4])
	if err != nil {
		return err
	}
	size -= int64(lens[0]) + int64(lens[1]) + int64(lens[2]) + int64(lens[3]) + int64(lens[4])

	if title != "" && sink.Accepts(tagscan.Title, 0) {
		sink.SetTitle(title)
	}
	if artist != "" && sink.Accepts(tagscan.Artists, 0) {
		sink.SetArtists([]string{artist})
	}
	if copyright != "" && sink.Accepts(tagscan.Copyright, 0) {
		sink.SetCopyright(copyright)
	}
	if comment != "" && sink.Accepts(tagscan.Comments, 0) {
		sink.AddComment(tagscan.Comment{Value: comment})
	}
	if rating != "" && sink.Accepts(tagscan.Ratings, 0) {
		sink.AddRating(tagscan.NewTextRating(rating))
	}

	return r.SeekBy(size)
}
