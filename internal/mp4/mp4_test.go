package mp4

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
	title, album, artist, narrator, series, seriesPart, asin, copyright string
	genres                                                              []string
	track, trackCount, disc, discCount, sampleRate, channels            int
	length                                                               time.Duration
	pictures                                                            []tagscan.Picture
	comments                                                            []tagscan.Comment
	chapters                                                            []chapterEntry
	tagType                                                             tagscan.TagType
}

type chapterEntry struct {
	start time.Duration
	title string
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
func (s *capturingSink) SetGenres(v []string)         { s.genres = v }
func (s *capturingSink) SetTrack(n int)               { s.track = n }
func (s *capturingSink) SetTrackCount(n int)          { s.trackCount = n }
func (s *capturingSink) SetDisc(n int)                { s.disc = n }
func (s *capturingSink) SetDiscCount(n int)           { s.discCount = n }
func (s *capturingSink) SetLength(d time.Duration)    { s.length = d }
func (s *capturingSink) SetSampleRate(n int)          { s.sampleRate = n }
func (s *capturingSink) SetChannels(n int)            { s.channels = n }
func (s *capturingSink) SetTagType(t tagscan.TagType) { s.tagType = t }
func (s *capturingSink) SetNarrator(v string)         { s.narrator = v }
func (s *capturingSink) SetSeries(v string)           { s.series = v }
func (s *capturingSink) SetSeriesPart(v string)       { s.seriesPart = v }
func (s *capturingSink) SetASIN(v string)             { s.asin = v }
func (s *capturingSink) SetCopyright(v string)        { s.copyright = v }
func (s *capturingSink) AddPicture(p tagscan.Picture)  { s.pictures = append(s.pictures, p) }
func (s *capturingSink) AddComment(c tagscan.Comment)  { s.comments = append(s.comments, c) }
func (s *capturingSink) AddChapter(start time.Duration, title string) {
	s.chapters = append(s.chapters, chapterEntry{start: start, title: title})
}

func mkBox(typ string, payload []byte) []byte {
	var buf bytes.Buffer
	sizeB := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeB, uint32(8+len(payload)))
	buf.Write(sizeB)
	buf.WriteString(typ)
	buf.Write(payload)
	return buf.Bytes()
}

func ftypBox() []byte { return mkBox("ftyp", []byte("M4A \x00\x00\x00\x00M4A mp42isom")) }

func dataBox(valueType uint32, value []byte) []byte {
	var buf bytes.Buffer
	vf := make([]byte, 4)
	binary.BigEndian.PutUint32(vf, valueType&0x00FF_FFFF)
	buf.Write(vf)
	buf.Write(make([]byte, 4)) // reserved
	buf.Write(value)
	return mkBox("data", buf.Bytes())
}

func annotation(typ string, dataBoxBytes []byte) []byte { return mkBox(typ, dataBoxBytes) }

func customAtom(name, value string) []byte {
	nameBox := mkBox("name", append([]byte{0, 0, 0, 0}, []byte(name)...))
	valBox := dataBox(dataUTF8, []byte(value))
	return mkBox("----", append(nameBox, valBox...))
}

func numPairData(n, total int) []byte {
	b := make([]byte, 8)
	b[2], b[3] = byte(n>>8), byte(n)
	b[4], b[5] = byte(total>>8), byte(total)
	return b
}

func mvhdBox(timescale, duration uint32) []byte {
	var buf bytes.Buffer
	buf.WriteByte(0)              // version
	buf.Write([]byte{0, 0, 0})    // flags
	buf.Write(make([]byte, 8))    // creation + modification time
	tb := make([]byte, 4)
	binary.BigEndian.PutUint32(tb, timescale)
	buf.Write(tb)
	db := make([]byte, 4)
	binary.BigEndian.PutUint32(db, duration)
	buf.Write(db)
	return mkBox("mvhd", buf.Bytes())
}

func stsdAudioBox(channels uint16, sampleRate uint32) []byte {
	var entry bytes.Buffer
	entry.WriteString("mp4a")        // format
	entry.Write(make([]byte, 6))     // reserved
	entry.Write([]byte{0, 1})        // data ref index
	entry.Write(make([]byte, 2))     // audio version
	entry.Write(make([]byte, 6))     // revision + vendor
	chB := make([]byte, 2)
	binary.BigEndian.PutUint16(chB, channels)
	entry.Write(chB)
	entry.Write(make([]byte, 2)) // sample size
	entry.Write(make([]byte, 4)) // compression id + packet size
	srB := make([]byte, 4)
	binary.BigEndian.PutUint32(srB, sampleRate<<16)
	entry.Write(srB)

	var stsd bytes.Buffer
	stsd.Write(make([]byte, 4)) // version + flags
	cntB := make([]byte, 4)
	binary.BigEndian.PutUint32(cntB, 1)
	stsd.Write(cntB)
	sizeB := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeB, uint32(8+entry.Len()))
	stsd.Write(sizeB)
	stsd.Write(entry.Bytes())
	return mkBox("stsd", stsd.Bytes())
}

func trakWithStsd(channels uint16, sampleRate uint32) []byte {
	stbl := mkBox("stbl", stsdAudioBox(channels, sampleRate))
	minf := mkBox("minf", stbl)
	mdia := mkBox("mdia", minf)
	return mkBox("trak", mdia)
}

func chplBox(entries []chapterEntry) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 8)) // version+flags+reserved
	buf.WriteByte(byte(len(entries)))
	for _, e := range entries {
		startB := make([]byte, 8)
		binary.BigEndian.PutUint64(startB, uint64(e.start/100))
		buf.Write(startB)
		buf.WriteByte(byte(len(e.title)))
		buf.WriteString(e.title)
	}
	return mkBox("chpl", buf.Bytes())
}

func cprtBox(lang [2]byte, text string) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 4)) // version + flags
	buf.Write(lang[:])
	buf.WriteString(text)
	return mkBox("cprt", buf.Bytes())
}

func buildFile(moovChildren ...[]byte) []byte {
	var moov bytes.Buffer
	for _, c := range moovChildren {
		moov.Write(c)
	}
	var buf bytes.Buffer
	buf.Write(ftypBox())
	buf.Write(mkBox("moov", moov.Bytes()))
	return buf.Bytes()
}

func TestFtypRequired(t *testing.T) {
	sink := &capturingSink{}
	err := FromRead(bytes.NewReader([]byte("not an mp4 file at all!")), sink, trap.Skip{})
	if err != tagscan.ErrNoTag {
		t.Fatalf("err = %v, want ErrNoTag", err)
	}
}

func TestMvhdDuration(t *testing.T) {
	data := buildFile(mvhdBox(1000, 5000))
	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.length != 5*time.Second {
		t.Fatalf("length = %v", sink.length)
	}
	if sink.tagType != tagscan.TagTypeMP4() {
		t.Fatalf("tagType = %v", sink.tagType)
	}
}

func TestTrakStsdTechnical(t *testing.T) {
	data := buildFile(trakWithStsd(2, 44100))
	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.channels != 2 {
		t.Fatalf("channels = %d", sink.channels)
	}
	if sink.sampleRate != 44100 {
		t.Fatalf("sampleRate = %d", sink.sampleRate)
	}
}

func TestIlstTextAndNumPairAnnotations(t *testing.T) {
	ilst := []byte{}
	ilst = append(ilst, annotation("\xA9nam", dataBox(dataUTF8, []byte("A Title")))...)
	ilst = append(ilst, annotation("\xA9alb", dataBox(dataUTF8, []byte("An Album")))...)
	ilst = append(ilst, annotation("\xA9ART", dataBox(dataUTF8, []byte("An Artist")))...)
	ilst = append(ilst, annotation("trkn", dataBox(0, numPairData(3, 12)))...)
	ilst = append(ilst, annotation("disk", dataBox(0, numPairData(1, 2)))...)
	ilst = append(ilst, annotation("gnre", dataBox(dataUTF8, []byte("Rock")))...)

	meta := append([]byte{0, 0, 0, 0}, mkBox("ilst", ilst)...)
	udta := mkBox("udta", mkBox("meta", meta))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.title != "A Title" || sink.album != "An Album" || sink.artist != "An Artist" {
		t.Fatalf("title/album/artist = %q/%q/%q", sink.title, sink.album, sink.artist)
	}
	if sink.track != 3 || sink.trackCount != 12 {
		t.Fatalf("track/trackCount = %d/%d", sink.track, sink.trackCount)
	}
	if sink.disc != 1 || sink.discCount != 2 {
		t.Fatalf("disc/discCount = %d/%d", sink.disc, sink.discCount)
	}
	if len(sink.genres) != 1 || sink.genres[0] != "Rock" {
		t.Fatalf("genres = %v", sink.genres)
	}
}

func TestCovrCoverArt(t *testing.T) {
	ilst := annotation("covr", dataBox(14, []byte{0x89, 'P', 'N', 'G'}))
	meta := append([]byte{0, 0, 0, 0}, mkBox("ilst", ilst)...)
	udta := mkBox("udta", mkBox("meta", meta))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if len(sink.pictures) != 1 {
		t.Fatalf("pictures = %d", len(sink.pictures))
	}
	if sink.pictures[0].MIME != "image/png" || sink.pictures[0].Kind != tagscan.PictureFrontCover {
		t.Fatalf("picture = %+v", sink.pictures[0])
	}
}

func TestCustomAudiobookAtoms(t *testing.T) {
	ilst := []byte{}
	ilst = append(ilst, customAtom("Narrator", "Jane Reader")...)
	ilst = append(ilst, customAtom("Series", "The Great Saga")...)
	ilst = append(ilst, customAtom("Series Part", "2")...)
	ilst = append(ilst, customAtom("ASIN", "B00TESTASIN")...)

	meta := append([]byte{0, 0, 0, 0}, mkBox("ilst", ilst)...)
	udta := mkBox("udta", mkBox("meta", meta))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.narrator != "Jane Reader" {
		t.Fatalf("narrator = %q", sink.narrator)
	}
	if sink.series != "The Great Saga" {
		t.Fatalf("series = %q", sink.series)
	}
	if sink.seriesPart != "2" {
		t.Fatalf("seriesPart = %q", sink.seriesPart)
	}
	if sink.asin != "B00TESTASIN" {
		t.Fatalf("asin = %q", sink.asin)
	}
}

func TestGroupingFillsSeriesWhenNoExplicitAtom(t *testing.T) {
	ilst := annotation("\xA9grp", dataBox(dataUTF8, []byte("The Great Saga, Book 2")))
	meta := append([]byte{0, 0, 0, 0}, mkBox("ilst", ilst)...)
	udta := mkBox("udta", mkBox("meta", meta))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.series != "The Great Saga" {
		t.Fatalf("series = %q", sink.series)
	}
	if sink.seriesPart != "2" {
		t.Fatalf("seriesPart = %q", sink.seriesPart)
	}
}

func TestExplicitSeriesAtomWinsOverGrouping(t *testing.T) {
	ilst := []byte{}
	ilst = append(ilst, annotation("\xA9grp", dataBox(dataUTF8, []byte("Wrong Series, Book 9")))...)
	ilst = append(ilst, customAtom("Series", "The Great Saga")...)
	ilst = append(ilst, customAtom("Series Part", "2")...)

	meta := append([]byte{0, 0, 0, 0}, mkBox("ilst", ilst)...)
	udta := mkBox("udta", mkBox("meta", meta))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.series != "The Great Saga" {
		t.Fatalf("series = %q, want explicit atom to win", sink.series)
	}
	if sink.seriesPart != "2" {
		t.Fatalf("seriesPart = %q", sink.seriesPart)
	}
}

func TestComposerNarratorFallback(t *testing.T) {
	ilst := annotation("\xA9wrt", dataBox(dataUTF8, []byte("Jane Reader")))
	meta := append([]byte{0, 0, 0, 0}, mkBox("ilst", ilst)...)
	udta := mkBox("udta", mkBox("meta", meta))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.narrator != "Jane Reader" {
		t.Fatalf("narrator fallback = %q", sink.narrator)
	}
}

func TestChplChapters(t *testing.T) {
	chpl := chplBox([]chapterEntry{
		{start: 0, title: "Intro"},
		{start: 90 * time.Second, title: "Chapter One"},
	})
	udta := mkBox("udta", chpl)
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if len(sink.chapters) != 2 {
		t.Fatalf("chapters = %d", len(sink.chapters))
	}
	if sink.chapters[1].title != "Chapter One" || sink.chapters[1].start != 90*time.Second {
		t.Fatalf("chapter[1] = %+v", sink.chapters[1])
	}
}

func TestCprtCopyright(t *testing.T) {
	udta := mkBox("udta", cprtBox([2]byte{'e', 'n'}, "2026 Example"))
	data := buildFile(udta)

	sink := &capturingSink{}
	if err := FromRead(bytes.NewReader(data), sink, trap.Skip{}); err != nil {
		t.Fatalf("FromRead: %v", err)
	}
	if sink.copyright != "2026 Example" {
		t.Fatalf("copyright = %q", sink.copyright)
	}
}
