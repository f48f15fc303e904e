package id3v2

import (
	"encoding/binary"
	"sort"
	"time"

	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// chapterEntry is a decoded CHAP frame: its start offset and its title
// (the nested TIT2 subframe's text when present, otherwise the element
// ID).
type chapterEntry struct {
	start time.Duration
	title string
}

// decodeChapterEntry decodes a CHAP frame body:
//
//	[element id\0][start ms(4)][end ms(4)][start byte offset(4)][end byte offset(4)][subframes...]
//
// The element ID is used as a fallback title when no TIT2 subframe is
// present, matching CHAP's informal convention of human-readable IDs.
func decodeChapterEntry(d []byte, tr trap.Trap) (chapterEntry, error) {
	idx := indexNUL(d)
	if idx < 0 || len(d) < idx+1+16 {
		return chapterEntry{}, tagscan.ErrInvalidLength
	}
	elementID := string(d[:idx])
	rest := d[idx+1:]

	startMS := binary.BigEndian.Uint32(rest[0:4])
	sub := rest[16:]

	title := elementID
	if t, ok := chapterTitleFromSubframes(sub, tr); ok {
		title = t
	}

	return chapterEntry{start: time.Duration(startMS) * time.Millisecond, title: title}, nil
}

// chapterTitleFromSubframes scans a CHAP frame's nested subframe block
// for a TIT2 title, accepting either plain or syncsafe subframe sizes
// (implementations disagree on this, so both are tried).
func chapterTitleFromSubframes(d []byte, tr trap.Trap) (string, bool) {
	if len(d) < 10 || string(d[0:4]) != "TIT2" {
		return "", false
	}
	plain := uint32(d[4])<<24 | uint32(d[5])<<16 | uint32(d[6])<<8 | uint32(d[7])
	syncsafe := uint32(d[4]&0x7F)<<21 | uint32(d[5]&0x7F)<<14 | uint32(d[6]&0x7F)<<7 | uint32(d[7]&0x7F)

	size := plain
	if int(10+plain) > len(d) && int(10+syncsafe) <= len(d) {
		size = syncsafe
	}
	if int(10+size) > len(d) || size == 0 {
		return "", false
	}

	body := d[10 : 10+size]
	title, err := readTextFrame(body, tr)
	if err != nil || title == "" {
		return "", false
	}
	return title, true
}

// sortChapters orders chapter entries by start time, the convention
// every chapter-bearing container in this module follows regardless of
// on-disk frame order.
func sortChapters(entries []chapterEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].start < entries[j].start })
}

func pushChapters(sink tagscan.Sink, entries []chapterEntry) {
	sortChapters(entries)
	for _, e := range entries {
		sink.AddChapter(e.start, e.title)
	}
}
