package tagscan

import (
	"io"
	"time"

	"github.com/tagscan-go/tagscan/internal/dispatch"
	"github.com/tagscan-go/tagscan/trap"
)

// Tag is the full set of fields any of the supported tag containers can
// deliver. Every optional scalar carries a HasX flag alongside it,
// since Go has no Option<T>; a zero value with its flag false means
// the field was never present, as opposed to a present zero.
type Tag struct {
	Title       string
	Album       string
	AlbumArtist string
	Artists     []string
	Genres      []string

	Track         int
	HasTrack      bool
	TrackCount    int
	HasTrackCount bool

	Year    int
	HasYear bool
	Month   int
	Day     int
	HasDate bool
	Time    time.Duration
	HasTime bool

	Disc         int
	HasDisc      bool
	DiscCount    int
	HasDiscCount bool

	Length    time.Duration
	HasLength bool

	Comments   []Comment
	Copyright  string
	Pictures   []Picture
	Ratings    []Rating
	TagType    TagType
	HasTagType bool

	Chapters []Chapter

	Narrator   string
	Series     string
	SeriesPart string
	ASIN       string

	SampleRate       int
	HasSampleRate    bool
	Channels         int
	HasChannels      bool
	BitsPerSample    int
	HasBitsPerSample bool
}

// tagSink is a full-capture Sink backing ReadTag/ReadTagFromFile/Open:
// it accepts every DataKind and never reports Done early, since a
// caller asking for a Tag wants everything a container offers.
type tagSink struct {
	NopSink
	tag Tag
}

func (s *tagSink) Accepts(DataKind, PictureKind) bool { return true }

func (s *tagSink) SetTitle(v string)       { s.tag.Title = v }
func (s *tagSink) SetAlbum(v string)       { s.tag.Album = v }
func (s *tagSink) SetAlbumArtist(v string) { s.tag.AlbumArtist = v }
func (s *tagSink) SetArtists(v []string)   { s.tag.Artists = v }
func (s *tagSink) SetGenres(v []string)    { s.tag.Genres = v }

func (s *tagSink) SetTrack(n int) {
	s.tag.Track = n
	s.tag.HasTrack = true
}

func (s *tagSink) SetTrackCount(n int) {
	s.tag.TrackCount = n
	s.tag.HasTrackCount = true
}

func (s *tagSink) SetYear(year int) {
	s.tag.Year = year
	s.tag.HasYear = true
}

func (s *tagSink) SetDate(month, day int) {
	s.tag.Month = month
	s.tag.Day = day
	s.tag.HasDate = true
}

func (s *tagSink) SetTime(d time.Duration) {
	s.tag.Time = d
	s.tag.HasTime = true
}

func (s *tagSink) SetDisc(n int) {
	s.tag.Disc = n
	s.tag.HasDisc = true
}

func (s *tagSink) SetDiscCount(n int) {
	s.tag.DiscCount = n
	s.tag.HasDiscCount = true
}

func (s *tagSink) SetLength(d time.Duration) {
	s.tag.Length = d
	s.tag.HasLength = true
}

func (s *tagSink) AddComment(c Comment)  { s.tag.Comments = append(s.tag.Comments, c) }
func (s *tagSink) SetCopyright(v string) { s.tag.Copyright = v }
func (s *tagSink) AddPicture(p Picture)  { s.tag.Pictures = append(s.tag.Pictures, p) }
func (s *tagSink) AddRating(r Rating)    { s.tag.Ratings = append(s.tag.Ratings, r) }

func (s *tagSink) SetTagType(t TagType) {
	s.tag.TagType = t
	s.tag.HasTagType = true
}

func (s *tagSink) AddChapter(start time.Duration, title string) {
	s.tag.Chapters = append(s.tag.Chapters, Chapter{Start: start, Title: title})
}

func (s *tagSink) SetNarrator(v string)   { s.tag.Narrator = v }
func (s *tagSink) SetSeries(v string)     { s.tag.Series = v }
func (s *tagSink) SetSeriesPart(v string) { s.tag.SeriesPart = v }
func (s *tagSink) SetASIN(v string)       { s.tag.ASIN = v }

func (s *tagSink) SetSampleRate(hz int) {
	s.tag.SampleRate = hz
	s.tag.HasSampleRate = true
}

func (s *tagSink) SetChannels(n int) {
	s.tag.Channels = n
	s.tag.HasChannels = true
}

func (s *tagSink) SetBitsPerSample(n int) {
	s.tag.BitsPerSample = n
	s.tag.HasBitsPerSample = true
}

// ReadTag decodes every field the first matching format parser offers
// from r, using tr to recover from malformed sub-fields rather than
// failing the whole read.
func ReadTag(r io.ReadSeeker, tr trap.Trap) (*Tag, error) {
	s := &tagSink{}
	if err := dispatch.ReadAnyTag(dispatch.Default, r, s, tr); err != nil {
		return nil, err
	}
	return &s.tag, nil
}

// ReadTagFromFile opens path and decodes every field the first
// matching format parser offers, prioritizing parsers whose
// extensions match path's.
func ReadTagFromFile(path string, tr trap.Trap) (*Tag, error) {
	s := &tagSink{}
	if err := dispatch.ReadAnyTagFromFile(dispatch.Default, path, s, tr); err != nil {
		return nil, err
	}
	return &s.tag, nil
}
