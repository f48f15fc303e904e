// Package id3v1 implements the ID3v1, ID3v1.1 (track extension), and
// ID3v1.2 (extended block) trailer formats described in spec.md §4.3.
package id3v1

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

const (
	block0Len = 128 // the mandatory "TAG"-prefixed block
	block2Len = 256 // block0Len plus the preceding "EXT"-prefixed 1.2 block
)

// Tag is the decoded ID3v1/1.1/1.2 data, before it is routed to a
// Sink.
type Tag struct {
	Title, Artist, Album, Comment string
	Year                          *int
	Genre                         uint8
	Track                         *uint8
	SubGenre                      string
	HasSubGenre                   bool
}

// Extensions reports the file extensions this parser advertises to
// the dispatch layer.
func Extensions() []string { return []string{".mp3"} }

// FromFile opens path and parses the trailing ID3v1 block(s).
func FromFile(path string, tr trap.Trap) (Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tag{}, errors.Wrap(err, "id3v1: open")
	}
	defer f.Close()
	return FromSeek(f, tr)
}

// FromSeek rewinds to the end of the stream and parses the trailing
// 128 or 256 bytes.
func FromSeek(r io.ReadSeeker, tr trap.Trap) (Tag, error) {
	if _, err := r.Seek(-int64(block2Len), io.SeekEnd); err != nil {
		// Fall back to just the mandatory block if the stream is
		// shorter than 256 bytes.
		if _, err2 := r.Seek(-int64(block0Len), io.SeekEnd); err2 != nil {
			return Tag{}, errors.Wrap(err, "id3v1: seek to trailer")
		}
		return FromRead(r, tr)
	}
	return FromRead(r, tr)
}

// FromRead parses the tag assuming r is already positioned so that
// reading to EOF yields either exactly 128 or exactly 256 bytes.
func FromRead(r io.Reader, tr trap.Trap) (Tag, error) {
	buf := make([]byte, block2Len)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return Tag{}, errors.Wrap(err, "id3v1: read trailer")
	}
	switch {
	case n < block0Len:
		return Tag{}, errors.Wrap(io.ErrUnexpectedEOF, "id3v1: trailer too short")
	case n < block2Len:
		return FromBytes(buf[n-block0Len:n], tr)
	default:
		return FromBytes(buf, tr)
	}
}

// FromBytes parses a tag from a 128- or 256-byte buffer, as produced
// by FromRead.
func FromBytes(data []byte, tr trap.Trap) (Tag, error) {
	var v11, v12 []byte
	switch len(data) {
	case block0Len:
		v11 = data
	case block2Len:
		v12, v11 = data[:128], data[128:]
	default:
		return Tag{}, errors.New("id3v1: buffer must be 128 or 256 bytes")
	}

	if string(v11[:3]) != "TAG" {
		return Tag{}, tagscan.ErrNoTag
	}

	var t Tag
	_, t.Title, _ = enc.ISO88591MNT(v11[3:33], tr)
	_, t.Artist, _ = enc.ISO88591MNT(v11[33:63], tr)
	_, t.Album, _ = enc.ISO88591MNT(v11[63:93], tr)
	t.Year = parseYear(v11[93:97])
	_, t.Comment, _ = enc.ISO88591MNT(v11[97:127], tr)
	t.Genre = v11[127]

	// ID3v1.1: comment[28]==0 && comment[29]!=0 => comment[29] is the
	// track number (comment occupies v11[97:127], so these are global
	// offsets 125 and 126).
	if v11[125] == 0 && v11[126] != 0 {
		track := v11[126]
		t.Track = &track
	}

	if v12 == nil || string(v12[:3]) != "EXT" {
		return t, nil
	}

	// ID3v1.2: these fields APPEND to the 1.1 fields rather than
	// replacing them. The comment-extension/sub-genre byte ranges
	// below intentionally share one overlapping byte (index 107),
	// mirroring the original parser this is grounded on.
	_, titleExt, _ := enc.ISO88591MNT(v12[3:33], tr)
	_, artistExt, _ := enc.ISO88591MNT(v12[33:63], tr)
	_, albumExt, _ := enc.ISO88591MNT(v12[63:93], tr)
	_, commentExt, _ := enc.ISO88591MNT(v12[93:108], tr)
	_, subGenre, _ := enc.ISO88591MNT(v12[107:128], tr)

	t.Title += titleExt
	t.Artist += artistExt
	t.Album += albumExt
	t.Comment += commentExt
	t.SubGenre = subGenre
	t.HasSubGenre = true

	return t, nil
}

func parseYear(d []byte) *int {
	n := 0
	for _, c := range d {
		if c < '0' || c > '9' {
			return nil
		}
		n = n*10 + int(c-'0')
	}
	return &n
}

// Store dispatches the decoded tag to sink, respecting sink-declared
// interest and routing the genre byte through the 192-entry table.
// 255 is the conventional "no genre" marker and is skipped silently;
// any other out-of-range byte raises ErrInvalidGenreRef through tr.
func (t Tag) Store(sink tagscan.Sink, tr trap.Trap) error {
	if sink.Accepts(tagscan.Title, 0) && t.Title != "" {
		sink.SetTitle(t.Title)
	}
	if sink.Accepts(tagscan.Artists, 0) && t.Artist != "" {
		sink.SetArtists([]string{t.Artist})
	}
	if sink.Accepts(tagscan.Album, 0) && t.Album != "" {
		sink.SetAlbum(t.Album)
	}
	if t.Year != nil && sink.Accepts(tagscan.Year, 0) {
		sink.SetYear(*t.Year)
	}
	if sink.Accepts(tagscan.Comments, 0) && t.Comment != "" {
		sink.AddComment(tagscan.Comment{Value: t.Comment})
	}

	if sink.Accepts(tagscan.Genres, 0) {
		var genreNames []string
		if t.Genre != 255 {
			if name, ok := Genre(t.Genre); ok {
				genreNames = append(genreNames, name)
			} else if err := tr.Error(tagscan.ErrInvalidGenreRef); err != nil {
				return err
			}
		}
		if t.HasSubGenre && t.SubGenre != "" {
			genreNames = append(genreNames, t.SubGenre)
		}
		if len(genreNames) > 0 {
			sink.SetGenres(genreNames)
		}
	}

	if t.Track != nil && sink.Accepts(tagscan.Track, 0) {
		sink.SetTrack(int(*t.Track))
	}

	minor := 0
	if t.Track != nil {
		minor = 1
	}
	if t.HasSubGenre {
		minor = 2
	}
	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeID3v1(minor))
	}

	return nil
}
