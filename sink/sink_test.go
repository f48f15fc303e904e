package sink

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	tagscan "github.com/tagscan-go/tagscan/internal/model"
)

func blockHeader(last bool, blockType byte, length uint32) []byte {
	word := length & 0x00FF_FFFF
	b := []byte{blockType, byte(word >> 16), byte(word >> 8), byte(word)}
	if last {
		b[0] |= 0x80
	}
	return b
}

func le32(n uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, n)
	return b
}

func vorbisCommentBlock(vendor string, entries []string) []byte {
	var buf bytes.Buffer
	buf.Write(le32(uint32(len(vendor))))
	buf.WriteString(vendor)
	buf.Write(le32(uint32(len(entries))))
	for _, e := range entries {
		buf.Write(le32(uint32(len(e))))
		buf.WriteString(e)
	}
	return buf.Bytes()
}

func be32(n uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

func pictureBlock(kind uint32, mime, desc string, data []byte) []byte {
	var buf bytes.Buffer
	buf.Write(be32(kind))
	buf.Write(be32(uint32(len(mime))))
	buf.WriteString(mime)
	buf.Write(be32(uint32(len(desc))))
	buf.WriteString(desc)
	buf.Write(be32(0)) // width
	buf.Write(be32(0)) // height
	buf.Write(be32(0)) // color depth
	buf.Write(be32(0)) // palette size
	buf.Write(be32(uint32(len(data))))
	buf.Write(data)
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBasicFromFile(t *testing.T) {
	vc := vorbisCommentBlock("tagscan-test", []string{
		"TITLE=A Song", "ALBUM=An Album", "ARTIST=An Artist",
		"GENRE=Rock", "TRACKNUMBER=5", "DATE=2020", "DISCNUMBER=1",
	})
	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(blockHeader(true, 4, uint32(len(vc)))) // 4 = VORBIS_COMMENT
	buf.Write(vc)

	path := writeTemp(t, "song.flac", buf.Bytes())
	b, err := BasicFromFile(path)
	if err != nil {
		t.Fatalf("BasicFromFile: %v", err)
	}
	if b.Title != "A Song" || b.Album != "An Album" {
		t.Fatalf("title/album = %q/%q", b.Title, b.Album)
	}
	if len(b.Artists) != 1 || b.Artists[0] != "An Artist" {
		t.Fatalf("artists = %v", b.Artists)
	}
	if len(b.Genres) != 1 || b.Genres[0] != "Rock" {
		t.Fatalf("genres = %v", b.Genres)
	}
	if !b.HasTrack || b.Track != 5 {
		t.Fatalf("track = %d, hasTrack = %v", b.Track, b.HasTrack)
	}
	if !b.HasYear || b.Year != 2020 {
		t.Fatalf("year = %d, hasYear = %v", b.Year, b.HasYear)
	}
	if !b.HasDisc || b.Disc != 1 {
		t.Fatalf("disc = %d, hasDisc = %v", b.Disc, b.HasDisc)
	}
}

func TestBasicAcceptsOnlyItsOwnFields(t *testing.T) {
	b := &Basic{}
	if !b.Accepts(tagscan.Title, 0) || !b.Accepts(tagscan.Length, 0) {
		t.Fatalf("Basic must accept Title and Length")
	}
	if b.Accepts(tagscan.PictureKindData, tagscan.PictureAllKinds) {
		t.Fatalf("Basic must not accept pictures")
	}
	if b.Accepts(tagscan.Comments, 0) {
		t.Fatalf("Basic must not accept comments")
	}
}

func TestPictureFromFilePrecedenceOrdering(t *testing.T) {
	back := pictureBlock(4, "image/png", "back", []byte{1}) // PictureKindFromID3(4) = back cover
	other := pictureBlock(0, "image/png", "other", []byte{2})
	front := pictureBlock(3, "image/png", "front", []byte{3}) // 3 = front cover

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(blockHeader(false, 0, 34))
	buf.Write(make([]byte, 34))
	buf.Write(blockHeader(false, 6, uint32(len(back))))
	buf.Write(back)
	buf.Write(blockHeader(false, 6, uint32(len(other))))
	buf.Write(other)
	buf.Write(blockHeader(true, 6, uint32(len(front))))
	buf.Write(front)

	path := writeTemp(t, "art.flac", buf.Bytes())
	p, err := PictureFromFile(path)
	if err != nil {
		t.Fatalf("PictureFromFile: %v", err)
	}
	// PreferablyCover caps at one image and prefers front over back
	// over other, so only the front cover should survive.
	if len(p.Pictures) != 1 || p.Pictures[0].Description != "front" {
		t.Fatalf("pictures = %v, want only front", p.Pictures)
	}
	if best := p.Best(); best == nil || best.Description != "front" {
		t.Fatalf("Best() = %v, want front", best)
	}
}

func TestPictureRespectsMaxCap(t *testing.T) {
	pic1 := pictureBlock(0, "image/png", "one", []byte{1})
	pic2 := pictureBlock(3, "image/png", "two", []byte{2})

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(blockHeader(false, 0, 34))
	buf.Write(make([]byte, 34))
	buf.Write(blockHeader(false, 6, uint32(len(pic1))))
	buf.Write(pic1)
	buf.Write(blockHeader(true, 6, uint32(len(pic2))))
	buf.Write(pic2)

	path := writeTemp(t, "capped.flac", buf.Bytes())
	p := &Picture{
		Types:      tagscan.PictureAllKinds,
		Max:        1,
		Precedence: []tagscan.PictureKind{tagscan.PictureFrontCover, tagscan.PictureOther},
	}
	if err := p.ReadFile(path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(p.Pictures) != 1 {
		t.Fatalf("pictures = %d, want 1", len(p.Pictures))
	}
	// "two" is a front cover and outranks "one", so it must be the one kept
	// even though "one" arrived first and filled the only slot.
	if p.Pictures[0].Description != "two" {
		t.Fatalf("kept = %q, want %q", p.Pictures[0].Description, "two")
	}
}

func TestPictureKindFiltering(t *testing.T) {
	front := pictureBlock(3, "image/png", "front", []byte{1})
	other := pictureBlock(0, "image/png", "other", []byte{2})

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(blockHeader(false, 0, 34))
	buf.Write(make([]byte, 34))
	buf.Write(blockHeader(false, 6, uint32(len(front))))
	buf.Write(front)
	buf.Write(blockHeader(true, 6, uint32(len(other))))
	buf.Write(other)

	path := writeTemp(t, "filtered.flac", buf.Bytes())
	p := &Picture{Types: tagscan.PictureFrontCover}
	if err := p.ReadFile(path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(p.Pictures) != 1 || p.Pictures[0].Description != "front" {
		t.Fatalf("pictures = %v, want only front", p.Pictures)
	}
}

func TestProbeFile(t *testing.T) {
	vc := vorbisCommentBlock("v", []string{"TITLE=x"})
	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(blockHeader(true, 4, uint32(len(vc))))
	buf.Write(vc)

	path := writeTemp(t, "probe.flac", buf.Bytes())
	p, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile: %v", err)
	}
	if len(p.TagTypes) != 1 {
		t.Fatalf("TagTypes = %v, want exactly one", p.TagTypes)
	}
	if p.TagTypes[0].String() != "FLAC" {
		t.Fatalf("TagTypes[0] = %v, want FLAC", p.TagTypes[0])
	}
}

func TestProbeStopsAfterFirstTagTypeUnlessThorough(t *testing.T) {
	p := TopLevelProbe()
	p.SetTagType(tagscan.TagTypeFlac())
	if !p.Done() {
		t.Fatalf("fast probe must be Done immediately after the first SetTagType")
	}

	thorough := ThoroughProbe()
	thorough.SetTagType(tagscan.TagTypeFlac())
	if thorough.Done() {
		t.Fatalf("thorough probe must not stop after the first SetTagType")
	}
}

func TestProbeNoTagWhenNothingMatches(t *testing.T) {
	_, err := ProbeFile(writeTemp(t, "nothing.bin", []byte("not a tag of any kind, just filler bytes")))
	if err != tagscan.ErrNoTag {
		t.Fatalf("err = %v, want ErrNoTag", err)
	}
}
