package id3v2

import (
	"strconv"
	"strings"

	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	"github.com/tagscan-go/tagscan/internal/id3v1"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// withLen reads exactly n bytes and decodes them with f, which (unlike
// breader.WithLen's bare callback) also receives tr, since every frame
// body decoder in this package needs it.
func withLen[T any](r *breader.Reader, n int, tr trap.Trap, f func([]byte, trap.Trap) (T, error)) (T, error) {
	return breader.WithLen(r, n, tr, func(b []byte) (T, error) { return f(b, tr) })
}

// numOf is a parsed "n" or "n/total" text frame value.
type numOf struct {
	N     int
	Total *int
}

// encodingNull returns the NUL terminator width for an ID3v2 text
// encoding byte: one byte for ISO-8859-1/UTF-8, two for either UTF-16
// variant. An unrecognized byte is reported as Unsupported.
func encodingNull(e byte) ([]byte, error) {
	switch e {
	case 0, 3:
		return []byte{0}, nil
	case 1, 2:
		return []byte{0, 0}, nil
	default:
		return nil, &tagscan.Unsupported{Reason: "ID3v2 text encoding byte " + strconv.Itoa(int(e))}
	}
}

// decString decodes d using the ID3v2 encoding byte e, never requiring
// a terminator (the caller has already sliced off any).
func decString(e byte, d []byte, tr trap.Trap) (string, error) {
	switch e {
	case 0:
		return enc.ISO88591(d, tr)
	case 1:
		return enc.UTF16BOM(d, tr)
	case 2:
		return enc.UTF16BE(d, tr)
	case 3:
		return enc.UTF8(d, tr)
	default:
		return "", enc.ErrInvalidEncoding
	}
}

// decStringMNT decodes the leading, possibly-absent-terminator string
// from d and reports how many bytes (including any terminator) it
// consumed.
func decStringMNT(e byte, d []byte, tr trap.Trap) (int, string, error) {
	switch e {
	case 0:
		return enc.ISO88591MNT(d, tr)
	case 1:
		return enc.UTF16BOMMNT(d, tr)
	case 2:
		return enc.UTF16BEMNT(d, tr)
	case 3:
		return enc.UTF8MNT(d, tr)
	default:
		return 0, "", enc.ErrInvalidEncoding
	}
}

// readTextFrame decodes a standard [encoding][text] frame body.
func readTextFrame(d []byte, tr trap.Trap) (string, error) {
	if len(d) == 0 {
		return "", tagscan.ErrInvalidLength
	}
	return decString(d[0], d[1:], tr)
}

// readStringList23 splits a single text frame value on "/", the ID3v2.3
// convention for multi-valued text frames such as TPE1.
func readStringList23(d []byte, tr trap.Trap) ([]string, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return nil, err
	}
	return strings.Split(s, "/"), nil
}

// readStringList24 reads one or more NUL-separated values, the ID3v2.4
// convention for multi-valued text frames.
func readStringList24(d []byte, tr trap.Trap) ([]string, error) {
	if len(d) == 0 {
		return nil, tagscan.ErrInvalidLength
	}
	e, d := d[0], d[1:]
	var out []string
	for len(d) > 0 {
		n, s, err := decStringMNT(e, d, tr)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if n == 0 {
			break
		}
		d = d[n:]
	}
	return out, nil
}

// readNumOf decodes a standard text frame as "n" or "n/total".
func readNumOf(d []byte, tr trap.Trap) (numOf, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return numOf{}, err
	}
	n, total, err := enc.NumOf(s, tr)
	return numOf{N: n, Total: total}, err
}

// readLengthMS decodes TLEN's milliseconds-as-decimal-string body.
func readLengthMS(d []byte, tr trap.Trap) (int, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return 0, err
	}
	return enc.Num(s)
}

// readYear decodes a TYER/TDRL-shaped composite date/time text frame.
func readYear(d []byte, tr trap.Trap) (enc.DateTime, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return enc.DateTime{}, err
	}
	return enc.Year(s, tr)
}

// readDate23 decodes TDAT's "DDMM" (year-absent) body.
func readDate23(d []byte, tr trap.Trap) (enc.DateTime, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return enc.DateTime{}, err
	}
	return enc.Date(s, tr)
}

// readTime23 decodes TIME's "hhmm" body.
func readTime23(d []byte, tr trap.Trap) (int, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return 0, err
	}
	dur, err := enc.TimeOnly(s)
	if err != nil {
		return 0, err
	}
	return int(dur.Seconds()), nil
}

// readComment decodes a COMM frame: [encoding][language(3)][description\0][value].
func readComment(d []byte, tr trap.Trap) (tagscan.Comment, error) {
	if len(d) < 4 {
		return tagscan.Comment{}, tagscan.ErrInvalidLength
	}
	e := d[0]
	lang, err := enc.ASCII(d[1:4], tr)
	if err != nil {
		return tagscan.Comment{}, err
	}
	rest := d[4:]
	n, desc, err := decStringMNT(e, rest, tr)
	if err != nil {
		return tagscan.Comment{}, err
	}
	_, value, err := decStringMNT(e, rest[n:], tr)
	if err != nil {
		return tagscan.Comment{}, err
	}
	return tagscan.Comment{Language: lang, Description: desc, Value: value}, nil
}

// readPopularimeter decodes a POPM frame: [email\0][rating(1)][counter(0|4|...)].
func readPopularimeter(d []byte, tr trap.Trap) (tagscan.Popularimeter, error) {
	idx := indexNUL(d)
	if idx < 0 {
		return tagscan.Popularimeter{}, tagscan.ErrInvalidLength
	}
	email, err := enc.ISO88591(d[:idx], tr)
	if err != nil {
		return tagscan.Popularimeter{}, err
	}
	rest := d[idx+1:]
	if len(rest) == 0 {
		return tagscan.Popularimeter{}, tagscan.ErrInvalidLength
	}
	p := tagscan.Popularimeter{Email: email, Rating: rest[0]}
	if len(rest) > 1 {
		var counter uint64
		for _, b := range rest[1:] {
			counter = counter<<8 | uint64(b)
		}
		p.PlayCounter = counter
	}
	return p, nil
}

func indexNUL(d []byte) int {
	for i, b := range d {
		if b == 0 {
			return i
		}
	}
	return -1
}

// resolveGenreRefParen resolves the content of a TCON/TCO "(n)"
// parenthesized reference — always meant to be numeric, "RX", or "CR"
// — so an unparseable or out-of-range one is reported through the
// trap.
func resolveGenreRefParen(ref string, tr trap.Trap) (string, error) {
	switch ref {
	case "RX":
		return "Remix", nil
	case "CR":
		return "Cover", nil
	}
	n, err := strconv.ParseUint(ref, 10, 8)
	if err != nil {
		if rerr := tr.Error(tagscan.ErrInvalidGenreRef); rerr != nil {
			return "", rerr
		}
		return ref, nil
	}
	if name, ok := id3v1.Genre(uint8(n)); ok {
		return name, nil
	}
	if rerr := tr.Error(tagscan.ErrInvalidGenreRef); rerr != nil {
		return "", rerr
	}
	return ref, nil
}

// resolveGenreRefBare resolves one ID3v2.4 TCON list element, which is
// ordinarily a literal genre name rather than a numeric reference:
// "RX"/"CR" map to their keywords, a bare number maps through the
// table, and anything else (including an out-of-range number) passes
// through unchanged without involving the trap — a literal genre name
// is not an error condition here.
func resolveGenreRefBare(ref string, _ trap.Trap) (string, error) {
	switch ref {
	case "RX":
		return "Remix", nil
	case "CR":
		return "Cover", nil
	}
	if n, err := strconv.ParseUint(ref, 10, 8); err == nil {
		if name, ok := id3v1.Genre(uint8(n)); ok {
			return name, nil
		}
	}
	return ref, nil
}

// readGenres23 decodes ID3v2.2/2.3's TCO/TCON "(n)(m)Refined" grammar:
// zero or more parenthesized references followed by an optional literal
// suffix, with "((" escaping a literal leading parenthesis.
func readGenres23(d []byte, tr trap.Trap) ([]string, error) {
	s, err := readTextFrame(d, tr)
	if err != nil {
		return nil, err
	}
	var out []string
	for {
		if strings.HasPrefix(s, "((") {
			out = append(out, s[1:])
			break
		}
		if !strings.HasPrefix(s, "(") {
			if s != "" {
				out = append(out, s)
			}
			break
		}
		s = s[1:]
		end := strings.IndexByte(s, ')')
		if end < 0 {
			if rerr := tr.Error(tagscan.ErrInvalidGenreRef); rerr != nil {
				return nil, rerr
			}
			out = append(out, s)
			break
		}
		ref := s[:end]
		s = s[end+1:]
		name, err := resolveGenreRefParen(ref, tr)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// readGenres24 decodes ID3v2.4's TCON grammar: a NUL-separated string
// list, each element either a bare numeric ref, "RX"/"CR", or a literal.
func readGenres24(d []byte, tr trap.Trap) ([]string, error) {
	list, err := readStringList24(d, tr)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, g := range list {
		name, _ := resolveGenreRefBare(g, tr)
		out[i] = name
	}
	return out, nil
}

// readPictureV22 decodes a v2.2 PIC frame body:
// [encoding][format(3)][type(1)][description\0][data].
func readPictureV22(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, length int) error {
	hdr, err := r.ReadExact(5)
	if err != nil {
		return err
	}
	e, format, typ := hdr[0], append([]byte(nil), hdr[1:4]...), hdr[4]
	length -= 5

	kind, ok := tagscan.PictureKindFromID3(typ)
	if !ok {
		if rerr := tr.Error(tagscan.ErrInvalidPictureKind); rerr != nil {
			return rerr
		}
		kind = tagscan.PictureOther
	}

	if !sink.Accepts(tagscan.PictureKindData, kind) {
		return r.SeekBy(int64(length))
	}

	mime, err := enc.ISO88591(format, tr)
	if err != nil {
		return err
	}
	isURI := mime == "-->"

	return readPictureTail(r, sink, tr, length, e, mime, kind, isURI)
}

// readPictureV34 decodes a v2.3/2.4 APIC frame body:
// [encoding][mime\0][type(1)][description\0][data].
func readPictureV34(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, length int) error {
	b, err := r.ReadExact(1)
	if err != nil {
		return err
	}
	e := b[0]
	length--

	before := r.Pos()
	mime, err := breader.ScanUntil(r, []byte{0}, length, tr, func(b []byte) (string, error) {
		return enc.ISO88591(b[:len(b)-1], tr)
	})
	if err != nil {
		return err
	}
	length -= int(r.Pos() - before)

	if length < 1 {
		r.SeekBy(int64(length)) //nolint:errcheck
		return tr.Error(tagscan.ErrInvalidLength)
	}
	typb, err := r.ReadExact(1)
	if err != nil {
		return err
	}
	length--

	kind, ok := tagscan.PictureKindFromID3(typb[0])
	if !ok {
		if rerr := tr.Error(tagscan.ErrInvalidPictureKind); rerr != nil {
			return rerr
		}
		kind = tagscan.PictureOther
	}

	if !sink.Accepts(tagscan.PictureKindData, kind) {
		return r.SeekBy(int64(length))
	}

	isURI := mime == "-->"
	return readPictureTail(r, sink, tr, length, e, mime, kind, isURI)
}

func readPictureTail(r *breader.Reader, sink tagscan.Sink, tr trap.Trap, length int, e byte, mime string, kind tagscan.PictureKind, isURI bool) error {
	null, err := encodingNull(e)
	if err != nil {
		if rerr := tr.Error(err); rerr != nil {
			return rerr
		}
		return r.SeekBy(int64(length))
	}
	if length < 0 {
		r.SeekBy(int64(length)) //nolint:errcheck
		return tr.Error(tagscan.ErrInvalidLength)
	}

	before := r.Pos()
	desc, err := breader.ScanUntil(r, null, length, tr, func(b []byte) (string, error) {
		return decString(e, b[:len(b)-len(null)], tr)
	})
	if err != nil {
		return err
	}
	length -= int(r.Pos() - before)

	if length < 0 {
		r.SeekBy(int64(length)) //nolint:errcheck
		return tr.Error(tagscan.ErrInvalidLength)
	}

	data, err := r.ReadOwned(length)
	if err != nil {
		return err
	}

	sink.AddPicture(tagscan.Picture{
		MIME:        mime,
		Description: desc,
		Data:        data,
		Kind:        kind,
		IsURI:       isURI,
	})
	return nil
}
