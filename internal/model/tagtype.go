package model

import "fmt"

// TagType identifies the concrete tag container a parser detected.
// Id3v1/Id3v2 carry the minor/major version; Riff carries the RIFF
// form type (e.g. "WAVE"); Other carries a foreign reader's name.
type TagType struct {
	kind     tagTypeKind
	version  int
	formType string
	other    string
}

type tagTypeKind int

const (
	tagTypeID3v1 tagTypeKind = iota
	tagTypeID3v2
	tagTypeFlac
	tagTypeMP4
	tagTypeASF
	tagTypeRiff
	tagTypeVorbisComment
	tagTypeOther
)

func TagTypeID3v1(minor int) TagType { return TagType{kind: tagTypeID3v1, version: minor} }
func TagTypeID3v2(major int) TagType { return TagType{kind: tagTypeID3v2, version: major} }
func TagTypeFlac() TagType           { return TagType{kind: tagTypeFlac} }
func TagTypeMP4() TagType            { return TagType{kind: tagTypeMP4} }
func TagTypeASF() TagType            { return TagType{kind: tagTypeASF} }
func TagTypeRiff(formType string) TagType {
	return TagType{kind: tagTypeRiff, formType: formType}
}
func TagTypeVorbisComment() TagType { return TagType{kind: tagTypeVorbisComment} }
func TagTypeOther(name string) TagType {
	return TagType{kind: tagTypeOther, other: name}
}

// String renders the tag type in a form such as "ID3v2.3" or "RIFF(WAVE)".
func (t TagType) String() string {
	switch t.kind {
	case tagTypeID3v1:
		return fmt.Sprintf("ID3v1.%d", t.version)
	case tagTypeID3v2:
		return fmt.Sprintf("ID3v2.%d", t.version)
	case tagTypeFlac:
		return "FLAC"
	case tagTypeMP4:
		return "MP4"
	case tagTypeASF:
		return "ASF"
	case tagTypeRiff:
		return fmt.Sprintf("RIFF(%s)", t.formType)
	case tagTypeVorbisComment:
		return "VorbisComment"
	case tagTypeOther:
		return fmt.Sprintf("Other(%s)", t.other)
	default:
		return "Unknown"
	}
}

// IsID3v1 reports whether t is an ID3v1 tag type, returning its minor
// version (0 for plain 1.0, 1 for the 1.1 track extension, 2 when the
// 1.2 extended block is also present).
func (t TagType) IsID3v1() (minor int, ok bool) {
	return t.version, t.kind == tagTypeID3v1
}

// IsID3v2 reports whether t is an ID3v2 tag type, returning its major
// version (2, 3, or 4).
func (t TagType) IsID3v2() (major int, ok bool) {
	return t.version, t.kind == tagTypeID3v2
}
