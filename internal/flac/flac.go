// Package flac decodes FLAC's metadata block chain: STREAMINFO for
// stream properties, VORBIS_COMMENT for tags, PICTURE for artwork, and
// CUESHEET for chapter-like track structure.
package flac

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/internal/vorbiscomment"
	"github.com/tagscan-go/tagscan/trap"
)

// Extensions reports the file extensions this parser advertises to the
// dispatch layer.
func Extensions() []string { return []string{".flac"} }

// FromFile opens path and parses its FLAC metadata blocks.
func FromFile(path string, sink tagscan.Sink, tr trap.Trap) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "flac: open")
	}
	defer f.Close()
	return FromSeek(f, sink, tr)
}

// FromSeek rewinds to the start of the stream and parses the FLAC
// metadata blocks.
func FromSeek(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "flac: rewind")
	}
	return FromRead(r, sink, tr)
}

// FromRead parses FLAC metadata blocks assuming r is already positioned
// at the start of the stream.
func FromRead(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	br, err := breader.New(r)
	if err != nil {
		return err
	}

	ok, err := br.Expect([]byte("fLaC"))
	if err != nil {
		return err
	}
	if !ok {
		return tagscan.ErrNoTag
	}

	if sink.Accepts(tagscan.TagTypeData, 0) {
		sink.SetTagType(tagscan.TagTypeFlac())
	}

	var sampleRate uint32
	for {
		header, err := readMetadataBlockHeader(br)
		if err != nil {
			return err
		}

		switch header.blockType {
		case blockStreamInfo:
			if header.length != 34 {
				if rerr := tr.Error(tagscan.ErrInvalidLength); rerr != nil {
					return rerr
				}
				if err := br.SeekBy(int64(header.length)); err != nil {
					return err
				}
				break
			}
			si, err := readStreamInfo(br)
			if err != nil {
				return err
			}
			sampleRate = si.sampleRate
			if sink.Accepts(tagscan.Length, 0) {
				sink.SetLength(time.Duration(si.lengthSeconds() * float64(time.Second)))
			}
			if sink.Accepts(tagscan.SampleRate, 0) {
				sink.SetSampleRate(int(si.sampleRate))
			}
			if sink.Accepts(tagscan.Channels, 0) {
				sink.SetChannels(int(si.channels))
			}
			if sink.Accepts(tagscan.BitsPerSample, 0) {
				sink.SetBitsPerSample(int(si.bitsPerSample))
			}

		case blockVorbisComment:
			if err := vorbiscomment.FromBread(br, sink, tr, false); err != nil {
				return err
			}

		case blockPicture:
			if err := readPicture(br, sink, tr, header.length); err != nil {
				return err
			}

		case blockCueSheet:
			if err := readCueSheet(br, sink, tr, header.length, sampleRate); err != nil {
				return err
			}

		default:
			if err := br.SeekBy(int64(header.length)); err != nil {
				return err
			}
		}

		if header.last || sink.Done() {
			break
		}
	}

	return nil
}
