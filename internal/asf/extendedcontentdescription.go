package asf

import (
	"strconv"

	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Extended content description value types (§4.8).
const (
	valueString = 0
	valueBytes  = 1
	valueInt32  = 3
	valueInt64  = 4
	valueInt16  = 5
)

// readExtendedContentDescription decodes a count-prefixed sequence of
// name/value entries, dispatching the handful of WM/* names the
// engine understands and skipping the rest.
func readExtendedContentDescription(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, size int64) error {
	count, err := breader.LE[uint16](r)
	if err != nil {
		return err
	}
	size -= 2

	var genres []string

	for ; count > 0 && !sink.Done(); count-- {
		nlen, err := breader.LE[uint16](r)
		if err != nil {
			return err
		}
		nlen += nlen & 1
		nameB, err := r.ReadExact(int(nlen))
		if err != nil {
			return err
		}
		_, name, nerr := enc.UTF16LENT(nameB, tr)

		typ, err := breader.LE[uint16](r)
		if err != nil {
			return err
		}
		vlen, err := breader.LE[uint16](r)
		if err != nil {
			return err
		}
		if typ == valueString {
			vlen += vlen & 1
		}

		size -= int64(nlen) + int64(vlen) + 6

		if nerr != nil {
			if err := r.SeekBy(int64(vlen)); err != nil {
				return err
			}
			continue
		}

		switch name {
		case "WM/AlbumTitle":
			if sink.Accepts(tagscan.Album, 0) {
				v, err := readExtString(r, tr, typ, vlen)
				if err != nil {
					return err
				}
				if v != "" {
					sink.SetAlbum(v)
				}
				continue
			}
		case "WM/Year":
			if sink.Accepts(tagscan.Year, 0) {
				n, err := readExtNum(r, tr, typ, vlen)
				if err != nil {
					return err
				}
				if n != 0 {
					sink.SetYear(n)
				}
				continue
			}
		case "WM/TrackNumber":
			if sink.Accepts(tagscan.Track, 0) {
				n, err := readExtNum(r, tr, typ, vlen)
				if err != nil {
					return err
				}
				if n != 0 {
					sink.SetTrack(n)
				}
				continue
			}
		case "WM/PartOfSet":
			if sink.Accepts(tagscan.Disc, 0) {
				n, err := readExtNum(r, tr, typ, vlen)
				if err != nil {
					return err
				}
				if n != 0 {
					sink.SetDisc(n)
				}
				continue
			}
		case "WM/Genre":
			if sink.Accepts(tagscan.Genres, 0) {
				v, err := readExtString(r, tr, typ, vlen)
				if err != nil {
					return err
				}
				if v != "" {
					genres = append(genres, v)
				}
				continue
			}
		case "WM/Picture":
			if sink.Accepts(tagscan.PictureKindData, tagscan.PictureAllKinds) {
				if err := readPicture(r, sink, tr, typ, int64(vlen)); err != nil {
					return err
				}
				continue
			}
		}

		if err := r.SeekBy(int64(vlen)); err != nil {
			return err
		}
	}

	if len(genres) > 0 {
		sink.SetGenres(genres)
	}

	return r.SeekBy(size)
}

func readExtString(r *breader.Reader, tr trap.Trap, typ uint16, vlen uint16) (string, error) {
	b, err := r.ReadExact(int(vlen))
	if err != nil {
		return "", err
	}
	if typ != valueString {
		return "", nil
	}
	_, s, err := enc.UTF16LENT(b, tr)
	if err != nil {
		return "", nil
	}
	return s, nil
}

func readExtNum(r *breader.Reader, tr trap.Trap, typ uint16, vlen uint16) (int, error) {
	b, err := r.ReadExact(int(vlen))
	if err != nil {
		return 0, err
	}
	switch typ {
	case valueString:
		_, s, serr := enc.UTF16LENT(b, tr)
		if serr != nil {
			return 0, nil
		}
		n, perr := strconv.Atoi(s)
		if perr != nil {
			return 0, nil
		}
		return n, nil
	case valueInt64:
		if len(b) < 8 {
			return 0, nil
		}
		return int(leUint(b[:8])), nil
	case valueInt32:
		if len(b) < 4 {
			return 0, nil
		}
		return int(leUint(b[:4])), nil
	case valueInt16:
		if len(b) < 2 {
			return 0, nil
		}
		return int(leUint(b[:2])), nil
	default:
		return 0, nil
	}
}

func leUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
