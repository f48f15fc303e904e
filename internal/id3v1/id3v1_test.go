package id3v1

import (
	"bytes"
	"testing"

	"github.com/tagscan-go/tagscan/trap"
)

// buildV1 constructs a minimal 128-byte ID3v1 block: "TAG" + 30-byte
// title + 30-byte artist + 30-byte album + 4-byte year + 30-byte
// comment + 1-byte genre, matching spec.md §8 scenario S1.
func buildV1(title string, year string, comment []byte, genre byte) []byte {
	buf := make([]byte, 128)
	copy(buf[0:3], "TAG")
	copy(buf[3:33], title)
	copy(buf[97:127], comment)
	copy(buf[93:97], year)
	buf[127] = genre
	return buf
}

func TestS1MinimalID3v1(t *testing.T) {
	data := buildV1("Hello", "2024", nil, 1)
	tag, err := FromBytes(data, trap.Skip{})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if tag.Title != "Hello" {
		t.Fatalf("title = %q", tag.Title)
	}
	if tag.Year == nil || *tag.Year != 2024 {
		t.Fatalf("year = %v", tag.Year)
	}
	if tag.Genre != 1 {
		t.Fatalf("genre = %d", tag.Genre)
	}
	name, ok := Genre(tag.Genre)
	if !ok || name != "Classic Rock" {
		t.Fatalf("genre name = %q, %v", name, ok)
	}
	if tag.Track != nil {
		t.Fatalf("expected no track, got %v", *tag.Track)
	}
}

func TestS2ID3v1_1Track(t *testing.T) {
	comment := make([]byte, 30)
	comment[28] = 0x00
	comment[29] = 0x07
	data := buildV1("Hello", "2024", comment, 1)
	tag, err := FromBytes(data, trap.Skip{})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if tag.Track == nil || *tag.Track != 7 {
		t.Fatalf("track = %v", tag.Track)
	}
}

func TestNoTagMagic(t *testing.T) {
	data := make([]byte, 128)
	copy(data, "XXX")
	if _, err := FromBytes(data, trap.Skip{}); err == nil {
		t.Fatal("expected no-tag error")
	}
}

func TestInvalidYearIsNil(t *testing.T) {
	data := buildV1("T", "20x4", nil, 0)
	tag, err := FromBytes(data, trap.Skip{})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if tag.Year != nil {
		t.Fatalf("expected nil year, got %v", *tag.Year)
	}
}

func TestID3v12AppendsAndAddsSubGenre(t *testing.T) {
	v11 := buildV1("Base", "1999", nil, 0)

	v12 := make([]byte, 128)
	copy(v12[0:3], "EXT")
	copy(v12[3:33], " Ext")
	copy(v12[107:128], "SubG")

	full := append(v12, v11...)
	tag, err := FromBytes(full, trap.Skip{})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if tag.Title != "Base Ext" {
		t.Fatalf("title = %q", tag.Title)
	}
	if !tag.HasSubGenre || tag.SubGenre != "SubG" {
		t.Fatalf("sub genre = %q, %v", tag.SubGenre, tag.HasSubGenre)
	}
}

func TestFromReadShortStreamIsUnexpectedEOF(t *testing.T) {
	r := bytes.NewReader(make([]byte, 50))
	if _, err := FromRead(r, trap.Skip{}); err == nil {
		t.Fatal("expected error for short stream")
	}
}
