package model

import "time"

// Sink is the capability set through which a parser delivers decoded
// fields. A sink declares, per DataKind, whether it wants that field
// via Accepts; a parser checks Accepts before doing any non-trivial
// decode work and, for pictures, before reading any image payload.
// Done lets a sink short-circuit the parse early (e.g. "first cover
// only").
//
// Every method has a no-op default by embedding NopSink, mirroring the
// default trait methods of the interface this is grounded on — a sink
// implementation need only override the handful of methods, and the
// Accepts cases, it actually cares about.
type Sink interface {
	// Accepts reports whether the sink wants fields of kind k. For
	// PictureKindData, kind carries the specific picture role(s) of
	// interest (PictureAllKinds for "any").
	Accepts(k DataKind, kind PictureKind) bool
	// Done reports whether the parser should stop early.
	Done() bool

	SetTitle(string)
	SetAlbum(string)
	SetAlbumArtist(string)
	SetArtists([]string)
	SetGenres([]string)
	SetTrack(n int)
	SetTrackCount(n int)
	SetYear(year int)
	SetDate(month, day int)
	SetTime(d time.Duration)
	SetDisc(n int)
	SetDiscCount(n int)
	SetLength(d time.Duration)
	AddComment(Comment)
	SetCopyright(string)
	AddPicture(Picture)
	AddRating(Rating)
	SetTagType(TagType)

	// Supplemented (SPEC_FULL.md §3).
	AddChapter(start time.Duration, title string)
	SetNarrator(string)
	SetSeries(string)
	SetSeriesPart(string)
	SetASIN(string)
	SetSampleRate(hz int)
	SetChannels(n int)
	SetBitsPerSample(n int)
}

// NopSink implements Sink with every method a no-op and Accepts always
// false. Embed it by value in a concrete sink and override only the
// methods of interest.
type NopSink struct{}

func (NopSink) Accepts(DataKind, PictureKind) bool { return false }
func (NopSink) Done() bool                         { return false }

func (NopSink) SetTitle(string)             {}
func (NopSink) SetAlbum(string)             {}
func (NopSink) SetAlbumArtist(string)       {}
func (NopSink) SetArtists([]string)         {}
func (NopSink) SetGenres([]string)          {}
func (NopSink) SetTrack(int)                {}
func (NopSink) SetTrackCount(int)           {}
func (NopSink) SetYear(int)                 {}
func (NopSink) SetDate(int, int)            {}
func (NopSink) SetTime(time.Duration)       {}
func (NopSink) SetDisc(int)                 {}
func (NopSink) SetDiscCount(int)            {}
func (NopSink) SetLength(time.Duration)     {}
func (NopSink) AddComment(Comment)          {}
func (NopSink) SetCopyright(string)         {}
func (NopSink) AddPicture(Picture)          {}
func (NopSink) AddRating(Rating)            {}
func (NopSink) SetTagType(TagType)          {}
func (NopSink) AddChapter(time.Duration, string) {}
func (NopSink) SetNarrator(string)          {}
func (NopSink) SetSeries(string)            {}
func (NopSink) SetSeriesPart(string)        {}
func (NopSink) SetASIN(string)              {}
func (NopSink) SetSampleRate(int)           {}
func (NopSink) SetChannels(int)             {}
func (NopSink) SetBitsPerSample(int)        {}

// DispatchDate is the internal helper format parsers use to route a
// single composite year/date/time value (e.g. ID3v2.4's TDRL) to the
// sink's separate SetYear/SetDate/SetTime methods, invoking each only
// for components that are present. It mirrors tag_store.rs's
// TagStoreExt composite-date dispatch helper.
func DispatchDate(s Sink, year, month, day *int, d *time.Duration) {
	if year != nil && s.Accepts(Year, 0) {
		s.SetYear(*year)
	}
	if month != nil && day != nil && s.Accepts(Date, 0) {
		s.SetDate(*month, *day)
	}
	if d != nil && s.Accepts(Time, 0) {
		s.SetTime(*d)
	}
}
