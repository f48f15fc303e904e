// Package sink provides ready-made Sink implementations for the
// common cases: pulling the handful of fields most callers want,
// extracting cover art, and probing a file for its tag type without
// decoding anything else.
package sink

import (
	"time"

	"github.com/tagscan-go/tagscan/internal/dispatch"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Basic captures the title/album/artists/genres/track/year/disc/length
// fields a typical caller wants, and nothing else.
type Basic struct {
	tagscan.NopSink

	Title     string
	Album     string
	Artists   []string
	Genres    []string
	Track     int
	HasTrack  bool
	Year      int
	HasYear   bool
	Disc      int
	HasDisc   bool
	Length    time.Duration
	HasLength bool
}

// BasicFromFile opens path and decodes the first tag any of the
// default parsers recognizes into a new Basic, recovering from
// malformed sub-fields rather than failing outright.
func BasicFromFile(path string) (*Basic, error) {
	b := &Basic{}
	if err := dispatch.ReadAnyTagFromFile(dispatch.Default, path, b, trap.Skip{}); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Basic) Accepts(k tagscan.DataKind, _ tagscan.PictureKind) bool {
	switch k {
	case tagscan.Title, tagscan.Album, tagscan.Artists, tagscan.Genres,
		tagscan.Track, tagscan.Year, tagscan.Disc, tagscan.Length:
		return true
	default:
		return false
	}
}

func (b *Basic) SetTitle(v string)     { b.Title = v }
func (b *Basic) SetAlbum(v string)     { b.Album = v }
func (b *Basic) SetArtists(v []string) { b.Artists = v }
func (b *Basic) SetGenres(v []string)  { b.Genres = v }

func (b *Basic) SetTrack(n int) {
	b.Track = n
	b.HasTrack = true
}

func (b *Basic) SetYear(n int) {
	b.Year = n
	b.HasYear = true
}

func (b *Basic) SetDisc(n int) {
	b.Disc = n
	b.HasDisc = true
}

func (b *Basic) SetLength(d time.Duration) {
	b.Length = d
	b.HasLength = true
}
