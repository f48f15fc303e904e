package dispatch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

type capturingSink struct {
	tagscan.NopSink
	title, artist string
	year          int
	tagType       tagscan.TagType
}

func (s *capturingSink) Accepts(tagscan.DataKind, tagscan.PictureKind) bool { return true }
func (s *capturingSink) Done() bool                                        { return false }
func (s *capturingSink) SetTitle(v string)                                 { s.title = v }
func (s *capturingSink) SetArtists(v []string) {
	if len(v) > 0 {
		s.artist = v[0]
	}
}
func (s *capturingSink) SetYear(n int)               { s.year = n }
func (s *capturingSink) SetTagType(t tagscan.TagType) { s.tagType = t }

// stubParser is a bare Parser used to exercise ReadAnyTag's control
// flow without any real byte format.
type stubParser struct {
	exts   []string
	err    error
	called *bool
}

func (p stubParser) Extensions() []string { return p.exts }
func (p stubParser) Store(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	if p.called != nil {
		*p.called = true
	}
	return p.err
}

func TestReadAnyTagStopsOnFirstSuccess(t *testing.T) {
	var aCalled, bCalled, cCalled bool
	parsers := []Parser{
		stubParser{err: tagscan.ErrNoTag, called: &aCalled},
		stubParser{err: nil, called: &bCalled},
		stubParser{err: nil, called: &cCalled},
	}
	sink := &capturingSink{}
	if err := ReadAnyTag(parsers, bytes.NewReader(nil), sink, trap.Skip{}); err != nil {
		t.Fatalf("ReadAnyTag: %v", err)
	}
	if !aCalled || !bCalled {
		t.Fatalf("aCalled=%v bCalled=%v, want both true", aCalled, bCalled)
	}
	if cCalled {
		t.Fatalf("third parser was called after an earlier one succeeded")
	}
}

func TestReadAnyTagPropagatesNonNoTagError(t *testing.T) {
	boom := io.ErrClosedPipe
	parsers := []Parser{
		stubParser{err: tagscan.ErrNoTag},
		stubParser{err: boom},
		stubParser{err: nil}, // must not run
	}
	sink := &capturingSink{}
	if err := ReadAnyTag(parsers, bytes.NewReader(nil), sink, trap.Skip{}); err != boom {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestReadAnyTagAllNoTagReturnsNoTag(t *testing.T) {
	parsers := []Parser{stubParser{err: tagscan.ErrNoTag}, stubParser{err: tagscan.ErrNoTag}}
	sink := &capturingSink{}
	if err := ReadAnyTag(parsers, bytes.NewReader(nil), sink, trap.Skip{}); err != tagscan.ErrNoTag {
		t.Fatalf("err = %v, want ErrNoTag", err)
	}
}

func TestReadAnyTagFromFileExtensionPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(path, []byte("whatever"), 0o644); err != nil {
		t.Fatal(err)
	}

	// "flac" is listed first but doesn't claim .mp3, so ".mp3"'s real
	// owner ("mp3") must be tried first and the file never reaches
	// "flac" at all.
	var seen []string
	parsers := []Parser{
		recordingParser{name: "flac", exts: []string{".flac"}, result: tagscan.ErrNoTag, seen: &seen},
		recordingParser{name: "mp3", exts: []string{".mp3"}, result: nil, seen: &seen},
	}

	sink := &capturingSink{}
	if err := ReadAnyTagFromFile(parsers, path, sink, trap.Skip{}); err != nil {
		t.Fatalf("ReadAnyTagFromFile: %v", err)
	}
	if len(seen) != 1 || seen[0] != "mp3" {
		t.Fatalf("seen = %v, want only [mp3] (extension-matched parser tried first and succeeded)", seen)
	}
}

type recordingParser struct {
	name   string
	exts   []string
	result error
	seen   *[]string
}

func (p recordingParser) Extensions() []string { return p.exts }
func (p recordingParser) Store(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	*p.seen = append(*p.seen, p.name)
	return p.result
}

func TestId3CombinedV2WinsOverV1(t *testing.T) {
	var buf bytes.Buffer

	// Minimal ID3v2.2 header with a single TT2 "title" frame.
	frame := []byte("TT2")
	payload := []byte("V2 Title")
	n := len(payload) + 1 // the frame size covers the encoding byte too
	frame = append(frame, byte(n>>16), byte(n>>8), byte(n))
	frame = append(frame, 0) // encoding byte: ISO-8859-1
	frame = append(frame, payload...)

	var header bytes.Buffer
	header.WriteString("ID3")
	header.WriteByte(2) // major version
	header.WriteByte(0) // revision
	header.WriteByte(0) // flags
	sz := len(frame)
	header.WriteByte(byte(sz >> 21 & 0x7F))
	header.WriteByte(byte(sz >> 14 & 0x7F))
	header.WriteByte(byte(sz >> 7 & 0x7F))
	header.WriteByte(byte(sz & 0x7F))
	header.Write(frame)

	buf.Write(header.Bytes())

	// ID3v1 trailer with a different title, to confirm v2 wins.
	v1 := make([]byte, 128)
	copy(v1[0:3], "TAG")
	copy(v1[3:33], "V1 Title")
	buf.Write(v1)

	sink := &capturingSink{}
	if err := Id3.Store(bytes.NewReader(buf.Bytes()), sink, trap.Skip{}); err != nil {
		t.Fatalf("Id3.Store: %v", err)
	}
	if sink.title != "V2 Title" {
		t.Fatalf("title = %q, want ID3v2 to win", sink.title)
	}
}

func TestId3FallsBackToV1WhenNoV2(t *testing.T) {
	v1 := make([]byte, 128)
	copy(v1[0:3], "TAG")
	copy(v1[3:33], "Only V1")

	sink := &capturingSink{}
	if err := Id3.Store(bytes.NewReader(v1), sink, trap.Skip{}); err != nil {
		t.Fatalf("Id3.Store: %v", err)
	}
	if sink.title != "Only V1" {
		t.Fatalf("title = %q, want %q", sink.title, "Only V1")
	}
}

func TestId3NoTagWhenNeitherPresent(t *testing.T) {
	sink := &capturingSink{}
	err := Id3.Store(bytes.NewReader([]byte("plain bytes, no tag at all, just filler")), sink, trap.Skip{})
	if err != tagscan.ErrNoTag {
		t.Fatalf("err = %v, want ErrNoTag", err)
	}
}
