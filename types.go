package tagscan

import "github.com/tagscan-go/tagscan/internal/model"

// The core value and capability types live in internal/model so that
// internal/dispatch and the per-format parser packages can depend on
// them without importing this package (which itself depends on
// internal/dispatch) — the same internal/types-plus-alias shape the
// teacher module uses in its own errors.go.

type (
	// PictureKind is a bitset of categorical picture roles.
	PictureKind = model.PictureKind
	// Picture is a decoded image attached to a tag.
	Picture = model.Picture
	// Comment is a free-text annotation.
	Comment = model.Comment
	// Popularimeter is a numeric rating tied to an identity.
	Popularimeter = model.Popularimeter
	// RatingKind distinguishes the two Rating variants.
	RatingKind = model.RatingKind
	// Rating is a tagged union of free-text or Popularimeter.
	Rating = model.Rating
	// DataKind enumerates the fields a Sink may declare interest in.
	DataKind = model.DataKind
	// TagType identifies the concrete tag container a parser detected.
	TagType = model.TagType
	// Sink is the capability set through which a parser delivers
	// decoded fields.
	Sink = model.Sink
	// NopSink implements Sink with every method a no-op.
	NopSink = model.NopSink
	// Unsupported reports a recognized-but-unimplemented wire feature.
	Unsupported = model.Unsupported
)

const (
	PictureOther              = model.PictureOther
	PictureIcon32             = model.PictureIcon32
	PictureOtherIcon          = model.PictureOtherIcon
	PictureFrontCover         = model.PictureFrontCover
	PictureBackCover          = model.PictureBackCover
	PictureLeafletPage        = model.PictureLeafletPage
	PictureMedia              = model.PictureMedia
	PictureLeadArtist         = model.PictureLeadArtist
	PictureArtist             = model.PictureArtist
	PictureConductor          = model.PictureConductor
	PictureBand               = model.PictureBand
	PictureComposer           = model.PictureComposer
	PictureLyricist           = model.PictureLyricist
	PictureRecordingLocation  = model.PictureRecordingLocation
	PictureDuringRecording    = model.PictureDuringRecording
	PictureDuringPerformance  = model.PictureDuringPerformance
	PictureMovieCapture       = model.PictureMovieCapture
	PictureBrightColouredFish = model.PictureBrightColouredFish
	PictureIllustration       = model.PictureIllustration
	PictureArtistLogotype     = model.PictureArtistLogotype
	PicturePublisherLogotype  = model.PicturePublisherLogotype
	PictureAllKinds           = model.PictureAllKinds

	RatingText              = model.RatingText
	RatingPopularimeterKind = model.RatingPopularimeterKind

	Title           = model.Title
	Album           = model.Album
	AlbumArtist     = model.AlbumArtist
	Artists         = model.Artists
	Genres          = model.Genres
	Track           = model.Track
	TrackCount      = model.TrackCount
	Year            = model.Year
	Date            = model.Date
	Time            = model.Time
	Disc            = model.Disc
	DiscCount       = model.DiscCount
	Length          = model.Length
	Comments        = model.Comments
	Copyright       = model.Copyright
	Ratings         = model.Ratings
	PictureKindData = model.PictureKindData
	TagTypeData     = model.TagTypeData
	Chapters        = model.Chapters
	Narrator        = model.Narrator
	Series          = model.Series
	SeriesPart      = model.SeriesPart
	ASIN            = model.ASIN
	SampleRate      = model.SampleRate
	Channels        = model.Channels
	BitsPerSample   = model.BitsPerSample
)

var (
	PictureKindFromID3     = model.PictureKindFromID3
	NewTextRating          = model.NewTextRating
	NewPopularimeterRating = model.NewPopularimeterRating
	DispatchDate           = model.DispatchDate

	TagTypeID3v1         = model.TagTypeID3v1
	TagTypeID3v2         = model.TagTypeID3v2
	TagTypeFlac          = model.TagTypeFlac
	TagTypeMP4           = model.TagTypeMP4
	TagTypeASF           = model.TagTypeASF
	TagTypeRiff          = model.TagTypeRiff
	TagTypeVorbisComment = model.TagTypeVorbisComment
	TagTypeOther         = model.TagTypeOther

	ErrNoTag                    = model.ErrNoTag
	ErrInvalidLength            = model.ErrInvalidLength
	ErrInvalidGenreRef          = model.ErrInvalidGenreRef
	ErrInvalidDataType          = model.ErrInvalidDataType
	ErrInvalidPictureKind       = model.ErrInvalidPictureKind
	ErrInvalidVorbisComment     = model.ErrInvalidVorbisComment
	ErrInvalidVorbisFramingBit  = model.ErrInvalidVorbisFramingBit
)
