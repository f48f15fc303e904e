package tagscan

import "testing"

func TestDetectFormatFlac(t *testing.T) {
	vc := vorbisCommentBlock([]string{"TITLE=x"})
	var buf []byte
	buf = append(buf, []byte("fLaC")...)
	buf = append(buf, flacHeader(true, 4, uint32(len(vc)))...)
	buf = append(buf, vc...)

	path := writeTempFile(t, "song.flac", buf)
	tt, err := DetectFormat(path)
	if err != nil {
		t.Fatalf("DetectFormat: %v", err)
	}
	if tt.String() != "FLAC" {
		t.Fatalf("tagType = %v, want FLAC", tt)
	}
}

func TestDetectFormatNoTag(t *testing.T) {
	path := writeTempFile(t, "nothing.bin", []byte("no recognizable container at all"))
	if _, err := DetectFormat(path); err != ErrNoTag {
		t.Fatalf("err = %v, want ErrNoTag", err)
	}
}
