package riff

import (
	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// readList handles a LIST chunk. Only the INFO sub-type carries text
// metadata; any other sub-type is skipped whole.
func readList(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, size int64) error {
	if size < 4 {
		return r.SeekBy(size)
	}
	typB, err := r.ReadExact(4)
	if err != nil {
		return err
	}
	size -= 4
	if string(typB) != "INFO" {
		return r.SeekBy(size)
	}

	for size > 8 {
		child, err := readChunkHeader(r)
		if err != nil {
			return err
		}
		size -= 8
		consumed, err := readInfoField(r, sink, tr, child.id, child.size)
		if err != nil {
			return err
		}
		if err := r.SeekBy(int64(child.size) - consumed); err != nil {
			return err
		}
		if err := r.SeekBy(child.pad()); err != nil {
			return err
		}
		size -= int64(child.size) + child.pad()
	}
	if size > 0 {
		return r.SeekBy(size)
	}
	return nil
}

// readInfoField decodes a single LIST/INFO sub-chunk's value and
// dispatches it to the sink, reporting how many of the declared size
// bytes it consumed so the caller can skip the rest.
func readInfoField(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, id string, size uint32) (int64, error) {
	switch id {
	case "IART":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Artists, 0) {
				sink.SetArtists([]string{v})
			}
		})
	case "ICMT":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Comments, 0) {
				sink.AddComment(tagscan.Comment{Value: v})
			}
		})
	case "ICOP":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Copyright, 0) {
				sink.SetCopyright(v)
			}
		})
	case "IGNR":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Genres, 0) {
				sink.SetGenres([]string{v})
			}
		})
	case "INAM":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Title, 0) {
				sink.SetTitle(v)
			}
		})
	case "IPRD":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Album, 0) {
				sink.SetAlbum(v)
			}
		})
	case "ICRD":
		return readASCIIField(r, tr, size, func(v string) {
			if sink.Accepts(tagscan.Year, 0) || sink.Accepts(tagscan.Date, 0) {
				if dt, err := enc.Year(v, tr); err == nil {
					tagscan.DispatchDate(sink, dt.Year, dt.Month, dt.Day, dt.Time)
				}
			}
		})
	case "IPRT":
		return readNumField(r, tr, size, func(n int) {
			if sink.Accepts(tagscan.Track, 0) {
				sink.SetTrack(n)
			}
		})
	case "PRT1":
		return readNumField(r, tr, size, func(n int) {
			if sink.Accepts(tagscan.Disc, 0) {
				sink.SetDisc(n)
			}
		})
	case "PRT2":
		return readNumField(r, tr, size, func(n int) {
			if sink.Accepts(tagscan.DiscCount, 0) {
				sink.SetDiscCount(n)
			}
		})
	default:
		return 0, nil
	}
}

func readASCIIField(r *breader.Reader, tr trap.Trap, size uint32, set func(string)) (int64, error) {
	return readASCIIFieldTr(r, tr, size, func(s string) error { set(s); return nil })
}

func readNumField(r *breader.Reader, tr trap.Trap, size uint32, set func(int)) (int64, error) {
	return readASCIIFieldTr(r, tr, size, func(s string) error {
		n, err := enc.Num(s)
		if err != nil {
			return nil // a malformed numeric field is silently dropped, not fatal
		}
		set(n)
		return nil
	})
}

// readASCIIFieldTr reads a size-byte, NUL-terminated Latin-1 field and
// hands the decoded string to f. It consumes and reports all size
// bytes, so anything after the terminator (the declared chunk size
// commonly exceeds the terminated string, e.g. for even-padding) is
// skipped along with it.
func readASCIIFieldTr(r *breader.Reader, tr trap.Trap, size uint32, f func(string) error) (int64, error) {
	if size == 0 {
		return 0, nil
	}
	b, err := r.ReadExact(int(size))
	if err != nil {
		return 0, err
	}
	_, v, err := enc.ISO88591NT(b, tr)
	if err != nil {
		return int64(size), err
	}
	if v != "" {
		if err := f(v); err != nil {
			return int64(size), err
		}
	}
	return int64(size), nil
}
