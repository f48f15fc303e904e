// Package vorbiscomment decodes the Vorbis comment block shared by
// FLAC's VORBIS_COMMENT metadata block and raw Ogg-framed comment
// headers: a vendor string followed by a list of "NAME=VALUE" entries.
package vorbiscomment

import (
	"strings"

	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// FromBread decodes a Vorbis comment block starting at r's current
// position and pushes the fields it recognizes into sink. framingBit
// controls whether a trailing framing-bit byte (present in raw Ogg
// comment headers, absent when embedded in a FLAC VORBIS_COMMENT
// block) is consumed; its value is never validated.
func FromBread(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, framingBit bool) error {
	vendorLen, err := breader.LE[uint32](r)
	if err != nil {
		return err
	}
	if _, err := readString(r, int(vendorLen), tr); err != nil {
		return err
	}

	count, err := breader.LE[uint32](r)
	if err != nil {
		return err
	}

	comments := map[string][]string{}
	var order []string
	for i := uint32(0); i < count; i++ {
		n, err := breader.LE[uint32](r)
		if err != nil {
			return err
		}
		s, err := readString(r, int(n), tr)
		if err != nil {
			return err
		}
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			if rerr := tr.Error(tagscan.ErrInvalidVorbisComment); rerr != nil {
				return rerr
			}
			continue
		}
		name = strings.ToUpper(name)
		if _, seen := comments[name]; !seen {
			order = append(order, name)
		}
		comments[name] = append(comments[name], value)
	}

	if framingBit {
		if _, err := r.ReadExact(1); err != nil {
			if rerr := tr.Error(tagscan.ErrInvalidVorbisFramingBit); rerr != nil {
				return rerr
			}
		}
	}

	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeVorbisComment())
	}
	dispatch(sink, tr, order, comments)
	return nil
}

func readString(r *breader.Reader, n int, tr trap.Trap) (string, error) {
	b, err := r.ReadExact(n)
	if err != nil {
		return "", err
	}
	return enc.UTF8(b, tr)
}

// last returns the last element of a non-empty slice, the convention
// TITLE/ALBUM/*COUNT fields use when an entry repeats.
func last(v []string) string { return v[len(v)-1] }

// dispatch routes recognized Vorbis comment names to the sink, mirroring
// VorbisTag::store's per-name rules: TITLE/ALBUM/*COUNT take the last
// value, DATE takes the first, ARTIST splits each value on ", " and
// flattens, COMMENT preserves order.
func dispatch(sink tagscan.Sink, tr trap.Trap, order []string, comments map[string][]string) {
	for _, name := range order {
		v := comments[name]
		if len(v) == 0 {
			continue
		}
		switch name {
		case "TITLE":
			if sink.Accepts(tagscan.Title, 0) {
				sink.SetTitle(last(v))
			}
		case "ALBUM":
			if sink.Accepts(tagscan.Album, 0) {
				sink.SetAlbum(last(v))
			}
		case "TRACKNUMBER":
			if sink.Accepts(tagscan.Track, 0) || sink.Accepts(tagscan.TrackCount, 0) {
				n, total, err := enc.NumOf(last(v), tr)
				if err == nil {
					sink.SetTrack(n)
					if total != nil {
						sink.SetTrackCount(*total)
					}
				}
			}
		case "ARTIST":
			if sink.Accepts(tagscan.Artists, 0) {
				var artists []string
				for _, a := range v {
					artists = append(artists, strings.Split(a, ", ")...)
				}
				sink.SetArtists(artists)
			}
		case "GENRE":
			if sink.Accepts(tagscan.Genres, 0) {
				sink.SetGenres(v)
			}
		case "DATE":
			if sink.Accepts(tagscan.Year, 0) || sink.Accepts(tagscan.Date, 0) {
				s := v[0]
				if idx := strings.IndexByte(s, ' '); idx >= 0 {
					s = s[:idx]
				}
				dt, err := enc.Year(s, tr)
				if err == nil {
					tagscan.DispatchDate(sink, dt.Year, dt.Month, dt.Day, dt.Time)
				}
			}
		case "DISCNUMBER":
			if sink.Accepts(tagscan.Disc, 0) || sink.Accepts(tagscan.DiscCount, 0) {
				n, total, err := enc.NumOf(last(v), tr)
				if err == nil {
					sink.SetDisc(n)
					if total != nil {
						sink.SetDiscCount(*total)
					}
				}
			}
		case "TRACKTOTAL":
			if sink.Accepts(tagscan.TrackCount, 0) {
				if n, err := enc.Num(last(v)); err == nil {
					sink.SetTrackCount(n)
				}
			}
		case "DISCTOTAL":
			if sink.Accepts(tagscan.DiscCount, 0) {
				if n, err := enc.Num(last(v)); err == nil {
					sink.SetDiscCount(n)
				}
			}
		case "COMMENT":
			if sink.Accepts(tagscan.Comments, 0) {
				for _, c := range v {
					sink.AddComment(tagscan.Comment{Value: c})
				}
			}
		case "COPYRIGHT":
			if sink.Accepts(tagscan.Copyright, 0) {
				sink.SetCopyright(last(v))
			}
		case "ALBUMARTIST", "ALBUM ARTIST":
			if sink.Accepts(tagscan.AlbumArtist, 0) {
				sink.SetAlbumArtist(last(v))
			}
		}
	}
}
