package id3v2

import (
	"time"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

const (
	frameFlag4Grouping            = 0x0040
	frameFlag4Compression         = 0x0008
	frameFlag4Encryption          = 0x0004
	frameFlag4Unsynchronization   = 0x0002
	frameFlag4DataLengthIndicator = 0x0001
)

// frameHeader24 is the 10-byte ID3v2.4 frame header: a 4-byte frame ID,
// a syncsafe size, and 2 bytes of flags.
type frameHeader24 struct {
	id    string
	size  uint32
	flags uint16
}

func (f frameHeader24) grouping() bool            { return f.flags&frameFlag4Grouping != 0 }
func (f frameHeader24) compression() bool         { return f.flags&frameFlag4Compression != 0 }
func (f frameHeader24) encryption() bool          { return f.flags&frameFlag4Encryption != 0 }
func (f frameHeader24) unsynchronization() bool   { return f.flags&frameFlag4Unsynchronization != 0 }
func (f frameHeader24) dataLengthIndicator() bool { return f.flags&frameFlag4DataLengthIndicator != 0 }

func readFrameHeader24(r *breader.Reader) (frameHeader24, error) {
	idb, err := r.ReadExact(4)
	if err != nil {
		return frameHeader24{}, err
	}
	size, err := r.SyncsafeU32BE()
	if err != nil {
		return frameHeader24{}, err
	}
	flags, err := breader.BE[uint16](r)
	return frameHeader24{id: string(idb), size: size, flags: flags}, err
}

func fromBread24(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, h header) error {
	var pos uint32
	if h.extendedHeader() {
		extLen, err := r.SyncsafeU32BE()
		if err != nil {
			return err
		}
		if err := r.SeekBy(int64(extLen - 4)); err != nil {
			return err
		}
		pos += extLen - 4 + 4
	}

	var comments []tagscan.Comment
	var ratings []tagscan.Rating
	var chapters []chapterEntry

	for !sink.Done() && pos+10 < h.size {
		fh, err := readFrameHeader24(r)
		if err != nil {
			return err
		}
		pos += fh.size + 10

		if fh.compression() || fh.encryption() || fh.unsynchronization() {
			if rerr := tr.Error(&tagscan.Unsupported{Reason: "ID3v2.4 compression/encryption/unsynchronization"}); rerr != nil {
				return rerr
			}
			if err := r.SeekBy(int64(fh.size)); err != nil {
				return err
			}
			continue
		}

		size := fh.size
		var adjustSeek int64
		if fh.grouping() {
			adjustSeek++
			size--
		}
		if fh.dataLengthIndicator() {
			adjustSeek += 4
			size -= 4
		}
		if err := r.SeekBy(adjustSeek); err != nil {
			return err
		}
		hsize := int(size)

		if fh.id == "\x00\x00\x00\x00" {
			break
		}

		switch fh.id {
		case "TIT2":
			if sink.Accepts(tagscan.Title, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetTitle(v)
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
		case "TPE2":
			if sink.Accepts(tagscan.AlbumArtist, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetAlbumArtist(v)
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
		case "TPE1":
			if sink.Accepts(tagscan.Artists, 0) {
				v, err := withLen(r, hsize, tr, readStringList24)
				if err != nil {
					return err
				}
				sink.SetArtists(v)
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
		case "TCON":
			if sink.Accepts(tagscan.Genres, 0) {
				v, err := withLen(r, hsize, tr, readGenres24)
				if err != nil {
					return err
				}
				sink.SetGenres(v)
				continue
			}
		case "TDRL":
			if sink.Accepts(tagscan.Year, 0) || sink.Accepts(tagscan.Date, 0) || sink.Accepts(tagscan.Time, 0) {
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
		case "APIC":
			if sink.Accepts(tagscan.PictureKindData, tagscan.PictureAllKinds) {
				if err := readPictureV34(r, sink, tr, hsize); err != nil {
					return err
				}
				continue
			}
		case "TCOP":
			if sink.Accepts(tagscan.Copyright, 0) {
				v, err := withLen(r, hsize, tr, readTextFrame)
				if err != nil {
					return err
				}
				sink.SetCopyright(v)
				continue
			}
		case "POPM":
			if sink.Accepts(tagscan.Ratings, 0) {
				p, err := withLen(r, hsize, tr, readPopularimeter)
				if err != nil {
					return err
				}
				ratings = append(ratings, tagscan.NewPopularimeterRating(p))
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
	for _, rt := range ratings {
		sink.AddRating(rt)
	}
	pushChapters(sink, chapters)

	return nil
}
