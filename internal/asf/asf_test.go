package asf

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

type capturingSink struct {
	tagscan.NopSink
	title, album, artist, copyright string
	comments                        []tagscan.Comment
	ratings                         []tagscan.Rating
	genres                          []string
	year, track, disc               int
	length                          time.Duration
	pictures                        []tagscan.Picture
	tagType                         tagscan.TagType
}

func (s *capturingSink) Accepts(tagscan.DataKind, tagscan.PictureKind) bool { return true }
func (s *capturingSink) Done() bool                                        { return false }
func (s *capturingSink) SetTitle(v string)                                 { s.title = v }
func (s *capturingSink) SetAlbum(v string)                                 { s.album = v }
func (s *capturingSink) SetArtists(v []string) {
	if len(v) > 0 {
		s.artist = v[0]
	}
}
func (s *capturingSink) SetCopyright(v string)        { s.copyright = v }
func (s *capturingSink) AddComment(c tagscan.Comment) { s.comments = append(s.comments, c) }
func (s *capturingSink) AddRating(r tagscan.Rating)   { s.ratings = append(s.ratings, r) }
func (s *capturingSink) SetGenres(v []string)         { s.genres = v }
func (s *capturingSink) SetYear(n int)                { s.year = n }
func (s *capturingSink) SetTrack(n int)                { s.track = n }
func (s *capturingSink) SetDisc(n int)                 { s.disc = n }
func (s *capturingSink) SetLength(d time.Duration)     { s.length = d }
func (s *capturingSink) AddPicture(p tagscan.Picture)  { s.pictures = append(s.pictures, p) }
func (s *capturingSink) SetTagType(t tagscan.TagType)  { s.tagType = t }

func le16(n uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, n); return b }
func le32(n uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, n); return b }
func le64(n uint64) []byte { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, n); return b }

func utf16leNT(s string) []byte {
	var buf bytes.Buffer
	for _, r := range s {
		buf.Write(le16(uint16(r)))
	}
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

func objectBytes(guid gouuidUUID, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write(guid[:])
	buf.Write(le64(uint64(24 + len(payload))))
	buf.Write(payload)
	return buf.Bytes()
}

// gouuidUUID avoids importing the external package twice under a
// different name in the test file.
type gouuidUUID = [16]byte

func fileHeaderFile(children ...[]byte) []byte {
	var payload bytes.Buffer
	payload.Write(le32(uint32(len(children))))
	payload.Write([]byte{0, 0}) // reserved
	for _, c := range children {
		payload.Write(c)
	}
	return objectBytes(gouuidUUID(guidFileHeader), payload.Bytes())
}

func filePropertiesObject(durationTicks, prerollMS uint64) []byte {
	payload := make([]byte, 64)
	binary.LittleEndian.PutUint64(payload[40:48], durationTicks)
	binary.LittleEndian.PutUint64(payload[56:64], prerollMS)
	return objectBytes(gouuidUUID(guidFileProperties), payload)
}

func contentDescriptionObject(title, artist, copyright, comment, rating string) []byte {
	fields := []string{title, artist, copyright, comment, rating}
	var vals bytes.Buffer
	for _, f := range fields {
		for _, r := range f {
			vals.Write(le16(uint16(r)))
		}
	}
	var payload bytes.Buffer
	for _, f := range fields {
		payload.Write(le16(uint16(len(f) * 2)))
	}
	payload.Write(vals.Bytes())
	return objectBytes(gouuidUUID(guidContentDescription), payload.Bytes())
}

type extEntry struct {
	name  string
	typ   uint16
	value []byte
}

func extendedContentDescriptionObject(entries []extEntry) []byte {
	var payload bytes.Buffer
	payload.Write(le16(uint16(len(entries))))
	for _, e := range entries {
		nameB := utf16leNT(e.name)
		payload.Write(le16(uint16(len(nameB))))
		payload.Write(nameB)
		payload.Write(le16(e.typ))
		payload.Write(le16(uint16(len(e.value))))
		payload.Write(e.value)
	}
	return objectBytes(gouuidUUID(guidExtendedContentDescription), payload.Bytes())
}

func stringValue(s string) []byte {
	var buf bytes.Buffer
	for _, r := range s {
		buf.Write(le16(uint16(r)))
	}
	if buf.Len()%2 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func pictureValue(kind byte, mime, desc string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(kind)
	buf.Write(le32(uint32(len(data))))
	buf.Write(utf16leNT(mime))
	buf.Write(utf16leNT(desc))
	buf.Write(data)
	return buf.Bytes()
}

func TestNotAsfReturnsErrNoTag(t *testing.T) {
	sink := &capturingSink{}
	err := FromRead(bytes.NewReader([]byte("not an asf file, just bytes!!!!")), sink, trap.Skip{})
	if err != tagscan.ErrNoTag {
		t.Fatalf("err = %v, want ErrNoTag", err)
	}
}

func TestFilePropertiesDuration(t *testing.T) {
	data := fileHeaderFile(filePropertiesObject(100_000_000, 500)) // 10s - 0.5s = 9.5s
	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.length != 9500*time.Millisecond {
		t.Fatalf("length = %v", sink.length)
	}
	if sink.tagType != tagscan.TagTypeASF() {
		t.Fatalf("tagType = %v", sink.tagType)
	}
}

func TestContentDescriptionFields(t *testing.T) {
	data := fileHeaderFile(contentDescriptionObject("Track1", "Artist1", "(c) 2026", "nice", "5"))
	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.title != "Track1" || sink.artist != "Artist1" || sink.copyright != "(c) 2026" {
		t.Fatalf("title/artist/copyright = %q/%q/%q", sink.title, sink.artist, sink.copyright)
	}
	if len(sink.comments) != 1 || sink.comments[0].Value != "nice" {
		t.Fatalf("comments = %+v", sink.comments)
	}
	if len(sink.ratings) != 1 || sink.ratings[0].Text != "5" {
		t.Fatalf("ratings = %+v", sink.ratings)
	}
}

func TestExtendedContentDescriptionKnownNames(t *testing.T) {
	data := fileHeaderFile(extendedContentDescriptionObject([]extEntry{
		{name: "WM/AlbumTitle", typ: valueString, value: stringValue("An Album")},
		{name: "WM/Year", typ: valueString, value: stringValue("2026")},
		{name: "WM/TrackNumber", typ: valueInt32, value: le32(7)},
		{name: "WM/PartOfSet", typ: valueInt16, value: le16(2)},
		{name: "WM/Genre", typ: valueString, value: stringValue("Rock")},
		{name: "WM/UnknownField", typ: valueString, value: stringValue("ignored")},
	}))
	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.album != "An Album" {
		t.Fatalf("album = %q", sink.album)
	}
	if sink.year != 2026 {
		t.Fatalf("year = %d", sink.year)
	}
	if sink.track != 7 {
		t.Fatalf("track = %d", sink.track)
	}
	if sink.disc != 2 {
		t.Fatalf("disc = %d", sink.disc)
	}
	if len(sink.genres) != 1 || sink.genres[0] != "Rock" {
		t.Fatalf("genres = %v", sink.genres)
	}
}

func TestWMPicture(t *testing.T) {
	data := fileHeaderFile(extendedContentDescriptionObject([]extEntry{
		{name: "WM/Picture", typ: valueBytes, value: pictureValue(3, "image/jpeg", "cover", []byte{0xFF, 0xD8, 0xFF})},
	}))
	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if len(sink.pictures) != 1 {
		t.Fatalf("pictures = %d", len(sink.pictures))
	}
	p := sink.pictures[0]
	if p.MIME != "image/jpeg" || p.Description != "cover" || p.Kind != tagscan.PictureFrontCover {
		t.Fatalf("picture = %+v", p)
	}
	if !bytes.Equal(p.Data, []byte{0xFF, 0xD8, 0xFF}) {
		t.Fatalf("picture data = %v", p.Data)
	}
}
