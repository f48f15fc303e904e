package model

// PictureKind is a bitset of categorical picture roles. The ID3 small-
// integer encoding 0x00..0x14 maps one-to-one onto these flags via
// PictureKindFromID3.
type PictureKind uint32

const (
	PictureOther PictureKind = 1 << iota
	PictureIcon32
	PictureOtherIcon
	PictureFrontCover
	PictureBackCover
	PictureLeafletPage
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureMovieCapture
	PictureBrightColouredFish
	PictureIllustration
	PictureArtistLogotype
	PicturePublisherLogotype
)

// PictureAllKinds is the union of every recognized picture kind, used
// by sinks that want any picture regardless of role.
const PictureAllKinds PictureKind = 0x1F_FFFF

// PictureKindFromID3 maps an ID3 picture-type byte (0x00..0x14) to its
// PictureKind flag. ok is false for unrecognized bytes.
func PictureKindFromID3(t byte) (kind PictureKind, ok bool) {
	switch t {
	case 0x00:
		return PictureOther, true
	case 0x01:
		return PictureIcon32, true
	case 0x02:
		return PictureOtherIcon, true
	case 0x03:
		return PictureFrontCover, true
	case 0x04:
		return PictureBackCover, true
	case 0x05:
		return PictureLeafletPage, true
	case 0x06:
		return PictureMedia, true
	case 0x07:
		return PictureLeadArtist, true
	case 0x08:
		return PictureArtist, true
	case 0x09:
		return PictureConductor, true
	case 0x0A:
		return PictureBand, true
	case 0x0B:
		return PictureComposer, true
	case 0x0C:
		return PictureLyricist, true
	case 0x0D:
		return PictureRecordingLocation, true
	case 0x0E:
		return PictureDuringRecording, true
	case 0x0F:
		return PictureDuringPerformance, true
	case 0x10:
		return PictureMovieCapture, true
	case 0x11:
		return PictureBrightColouredFish, true
	case 0x12:
		return PictureIllustration, true
	case 0x13:
		return PictureArtistLogotype, true
	case 0x14:
		return PicturePublisherLogotype, true
	default:
		return 0, false
	}
}

// Has reports whether kind is set within the bitset k.
func (k PictureKind) Has(kind PictureKind) bool {
	return k&kind != 0
}

// Picture is an immutable decoded image attached to a tag.
type Picture struct {
	// MIME is the declared MIME type, when known.
	MIME string
	// Description is the picture's free-text description, when present.
	Description string
	// Data is the raw image bytes, or (if IsURI) a URI string encoded
	// as bytes.
	Data []byte
	// Kind is the picture's categorical role.
	Kind PictureKind
	// IsURI is true when Data holds a URI reference rather than an
	// inline image.
	IsURI bool
	// Width, Height are the pixel dimensions, when the container
	// declares them (FLAC only; absent elsewhere).
	Width, Height int
	// ColorDepth is the bit depth, when declared (FLAC only).
	ColorDepth int
	// PaletteSize is the palette entry count, when declared and
	// nonzero (FLAC only).
	PaletteSize int
	// HasSize, HasColorDepth, HasPaletteSize report whether the
	// corresponding optional fields above were populated by the
	// source container.
	HasSize, HasColorDepth, HasPaletteSize bool
}
