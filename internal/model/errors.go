package model

import "github.com/pkg/errors"

// ErrNoTag is returned by a format parser (or the dispatch layer) when
// the input does not contain a tag of that kind. It is used only at
// format boundaries and must never surface once a tag has been
// successfully identified; see spec.md §7.
var ErrNoTag = errors.New("tagscan: no tag of this kind present")

// ErrInvalidLength is raised (through the trap) when a declared
// sub-field length would exceed its enclosing container.
var ErrInvalidLength = errors.New("tagscan: invalid length")

// ErrInvalidGenreRef is raised (through the trap) for an ID3v1 genre
// byte, or an ID3v2 TCON "(n)" reference, outside the known table.
var ErrInvalidGenreRef = errors.New("tagscan: invalid genre reference")

// ErrInvalidDataType is raised (through the trap) for an ASF extended-
// content-description value whose declared type code is not the one its
// field requires (a WM/Picture value that is not a byte array).
var ErrInvalidDataType = errors.New("tagscan: invalid data type")

// ErrInvalidPictureKind is raised (through the trap) for an
// unrecognized ID3 picture-type byte; the picture still decodes with
// PictureOther.
var ErrInvalidPictureKind = errors.New("tagscan: invalid picture kind")

// ErrInvalidVorbisComment is raised (through the trap) for a comment
// entry with no "=" separator.
var ErrInvalidVorbisComment = errors.New("tagscan: invalid vorbis comment entry")

// ErrInvalidVorbisFramingBit is raised (through the trap) when a
// standalone Vorbis comment block's trailing framing bit is absent or
// malformed.
var ErrInvalidVorbisFramingBit = errors.New("tagscan: invalid vorbis framing bit")

// Unsupported reports a recognized-but-unimplemented wire feature
// (e.g. ID3v2 unsynchronization, frame compression/encryption). The
// parser skips the affected frame/block, or fails the whole tag, per
// spec.md §4.4's per-case rules.
type Unsupported struct {
	Reason string
}

func (u *Unsupported) Error() string {
	return "tagscan: unsupported: " + u.Reason
}

func newUnsupported(reason string) error {
	return &Unsupported{Reason: reason}
}
