package id3v2

import (
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// frameHeader22 is the 6-byte ID3v2.2 frame header: a 3-byte frame ID
// and a 3-byte plain big-endian size.
type frameHeader22 struct {
	id   string
	size uint32
}

func readFrameHeader22(r *breader.Reader) (frameHeader22, error) {
	idb, err := r.ReadExact(3)
	if err != nil {
		return frameHeader22{}, err
	}
	id := string(idb)
	size, err := r.U24BE()
	return frameHeader22{id: id, size: size}, err
}

func fromBread22(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, h header) error {
	var pos uint32
	for !sink.Done() && pos+6 < h.size {
		fh, err := readFrameHeader22(r)
		if err != nil {
			return err
		}
		pos += fh.size + 6

		if fh.id == "\x00\x00\x00" {
			break
		}
		hsize := int(fh.size)

		switch fh.id {
		case "TT2":
			if sink.Accepts(tagscan.Title, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetTitle(v)
				continue
			}
		case "TP1":
			if sink.Accepts(tagscan.Artists, 0) {
				v, err := withLen(r, hsize, tr, readStringList23)
				if err != nil {
					return err
				}
				sink.SetArtists(v)
				continue
			}
		case "TCO":
			if sink.Accepts(tagscan.Genres, 0) {
				v, err := withLen(r, hsize, tr, readGenres23)
				if err != nil {
					return err
				}
				sink.SetGenres(v)
				continue
			}
		case "TAL":
			if sink.Accepts(tagscan.Album, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetAlbum(v)
				continue
			}
		case "TPA":
			if sink.Accepts(tagscan.Disc, 0) || sink.Accepts(tagscan.DiscCount, 0) {
				v, err := withLen(r, hsize, tr, readNumOf)
				if err != nil {
					return err
				}
				sink.SetDisc(v.N)
				if v.Total != nil {
					sink.SetDiscCount(*v.Total)
				}
				continue
			}
		case "TRK":
			if sink.Accepts(tagscan.Track, 0) || sink.Accepts(tagscan.TrackCount, 0) {
				v, err := withLen(r, hsize, tr, readNumOf)
				if err != nil {
					return err
				}
				sink.SetTrack(v.N)
				if v.Total != nil {
					sink.SetTrackCount(*v.Total)
				}
				continue
			}
		case "TYE":
			if sink.Accepts(tagscan.Year, 0) {
				dt, err := withLen(r, hsize, tr, readYear)
				if err != nil {
					return err
				}
				dispatchDateTime(sink, dt)
				continue
			}
		case "TDA":
			if sink.Accepts(tagscan.Date, 0) {
				dt, err := withLen(r, hsize, tr, readDate23)
				if err != nil {
					return err
				}
				dispatchDateTime(sink, dt)
				continue
			}
		case "TIM":
			if sink.Accepts(tagscan.Time, 0) {
				secs, err := withLen(r, hsize, tr, readTime23)
				if err != nil {
					return err
				}
				sink.SetTime(time.Duration(secs) * time.Second)
				continue
			}
		case "TLE":
			if sink.Accepts(tagscan.Length, 0) {
				ms, err := withLen(r, hsize, tr, readLengthMS)
				if err != nil {
					return err
				}
				sink.SetLength(time.Duration(ms) * time.Millisecond)
				continue
			}
		case "COM":
			if sink.Accepts(tagscan.Comments, 0) {
				c, err := withLen(r, hsize, tr, readComment)
				if err != nil {
					return err
				}
				sink.AddComment(c)
				continue
			}
		case "PIC":
			if err := readPictureV22(r, sink, tr, hsize); err != nil {
				return err
			}
			continue
		}

		if err := r.SeekBy(int64(fh.size)); err != nil {
			return err
		}
	}

	return nil
}

// dispatchDateTime routes a composite DateTime's present components to
// the sink's separate SetYear/SetDate/SetTime methods.
func dispatchDateTime(sink tagscan.Sink, dt enc.DateTime) {
	tagscan.DispatchDate(sink, dt.Year, dt.Month, dt.Day, dt.Time)
}
