package id3v2

import (
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

const (
	frameFlag3Compression = 0x80
	frameFlag3Encryption  = 0x40
	frameFlag3Grouping    = 0x20
)

// frameHeader23 is the 10-byte ID3v2.3 frame header: a 4-byte frame ID,
// a plain (non-syncsafe) big-endian size, and 2 bytes of flags.
type frameHeader23 struct {
	id    string
	size  uint32
	flags uint16
}

func (f frameHeader23) compression() bool { return f.flags&frameFlag3Compression != 0 }
func (f frameHeader23) encryption() bool  { return f.flags&frameFlag3Encryption != 0 }
func (f frameHeader23) grouping() bool    { return f.flags&frameFlag3Grouping != 0 }

func readFrameHeader23(r *breader.Reader) (frameHeader23, error) {
	idb, err := r.ReadExact(4)
	if err != nil {
		return frameHeader23{}, err
	}
	size, err := breader.BE[uint32](r)
	if err != nil {
		return frameHeader23{}, err
	}
	flags, err := breader.BE[uint16](r)
	return frameHeader23{id: string(idb), size: size, flags: flags}, err
}

func fromBread23(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, h header) error {
	if h.unsynchronization() {
		return &tagscan.Unsupported{Reason: "ID3v2.3 unsynchronization"}
	}

	var pos uint32
	if h.extendedHeader() {
		extLen, err := breader.BE[uint32](r)
		if err != nil {
			return err
		}
		if err := r.SeekBy(int64(extLen - 4)); err != nil {
			return err
		}
		pos += 4
	}

	var comments []tagscan.Comment
	var chapters []chapterEntry

	for !sink.Done() && pos+10 < h.size {
		fh, err := readFrameHeader23(r)
		if err != nil {
			return err
		}
		pos += fh.size + 10

		if fh.compression() || fh.encryption() {
			if rerr := tr.Error(&tagscan.Unsupported{Reason: "ID3v2.3 compression/encryption"}); rerr != nil {
				return rerr
			}
			if err := r.SeekBy(int64(fh.size)); err != nil {
				return err
			}
			continue
		}

		size := fh.size
		if fh.grouping() {
			if err := r.SeekBy(1); err != nil {
				return err
			}
			size--
		}
		hsize := int(size)

		if fh.id == "\x00\x00\x00\x00" {
			break
		}

		switch fh.id {
		case "APIC":
			if sink.Accepts(tagscan.PictureKindData, tagscan.PictureAllKinds) {
				if err := readPictureV34(r, sink, tr, hsize); err != nil {
					return err
				}
				continue
			}
		case "TALB":
			if sink.Accepts(tagscan.Album, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetAlbum(v)
				continue
			}
		case "TCON":
			if sink.Accepts(tagscan.Genres, 0) {
				v, err := withLen(r, hsize, tr, readGenres23)
				if err != nil {
					return err
				}
				sink.SetGenres(v)
				continue
			}
		case "TDAT":
			if sink.Accepts(tagscan.Date, 0) {
				dt, err := withLen(r, hsize, tr, readDate23)
				if err != nil {
					return err
				}
				dispatchDateTime(sink, dt)
				continue
			}
		case "TIT2":
			if sink.Accepts(tagscan.Title, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetTitle(v)
				continue
			}
		case "TIME":
			if sink.Accepts(tagscan.Time, 0) {
				secs, err := withLen(r, hsize, tr, readTime23)
				if err != nil {
					return err
				}
				sink.SetTime(time.Duration(secs) * time.Second)
				continue
			}
		case "TLEN":
			if sink.Accepts(tagscan.Length, 0) {
				ms, err := withLen(r, hsize, tr, readLengthMS)
				if err != nil {
					return err
				}
				sink.SetLength(time.Duration(ms) * time.Millisecond)
				continue
			}
		case "TPE1":
			if sink.Accepts(tagscan.Artists, 0) {
				v, err := withLen(r, hsize, tr, readStringList23)
				if err != nil {
					return err
				}
				sink.SetArtists(v)
				continue
			}
		case "TPOS":
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
		case "TRCK":
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
		case "TYER":
			if sink.Accepts(tagscan.Year, 0) {
				dt, err := withLen(r, hsize, tr, readYear)
				if err != nil {
					return err
				}
				dispatchDateTime(sink, dt)
				continue
			}
		case "COMM":
			if sink.Accepts(tagscan.Comments, 0) {
				c, err := withLen(r, hsize, tr, readComment)
				if err != nil {
					return err
				}
				comments = append(comments, c)
				continue
			}
		case "CHAP":
			if sink.Accepts(tagscan.Chapters, 0) {
				v, err := withLen(r, hsize, tr, decodeChapterEntry)
				if err != nil {
					return err
				}
				chapters = append(chapters, v)
				continue
			}
		}

		if err := r.SeekBy(int64(size)); err != nil {
			return err
		}
	}

	for _, c := range comments {
		sink.AddComment(c)
	}
	pushChapters(sink, chapters)

	return nil
}
