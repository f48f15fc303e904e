// Package enc implements the pure, stream-independent string decoders
// and temporal/numeric value parsers shared by every per-format parser.
package enc

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/tagscan-go/tagscan/trap"
)

// ErrInvalidEncoding is returned when a byte sequence cannot be decoded
// in the requested encoding and the trap's decoder policy is
// trap.DecoderError.
var ErrInvalidEncoding = errors.New("enc: invalid encoding")

// ErrStringNotTerminated flows through the trap when an "_nt" decoder
// variant is given bytes with no terminator.
var ErrStringNotTerminated = errors.New("enc: string not terminated")

// ErrMissingBOM flows through the trap when a BOM-prefixed UTF-16
// decode is given bytes that start with neither FE FF nor FF FE.
var ErrMissingBOM = errors.New("enc: missing byte-order mark")

func decoderPolicyTransformer(enc encoding.Encoding, policy trap.DecoderPolicy) *encoding.Decoder {
	switch policy {
	case trap.DecoderDrop, trap.DecoderReplace:
		// golang.org/x/text decoders substitute the Unicode replacement
		// character for malformed input; decodeWith then removes those
		// characters under DecoderDrop and rejects them under
		// DecoderError.
		return enc.NewDecoder()
	default:
		return enc.NewDecoder()
	}
}

func decodeWith(e encoding.Encoding, d []byte, tr trap.Trap) (string, error) {
	dec := decoderPolicyTransformer(e, tr.DecoderTrap())
	out, err := dec.Bytes(d)
	s := string(out)
	switch tr.DecoderTrap() {
	case trap.DecoderError:
		if err != nil || strings.ContainsRune(s, utf8.RuneError) {
			return "", ErrInvalidEncoding
		}
	case trap.DecoderDrop:
		s = strings.ReplaceAll(s, string(utf8.RuneError), "")
	}
	return s, nil
}

// ASCII decodes d as 7-bit ASCII (bytes above 0x7F pass through as
// Latin-1 code points, matching the Rust `encoding` crate's ASCII
// codec, which never hard-fails on high bytes).
func ASCII(d []byte, tr trap.Trap) (string, error) {
	return decodeWith(charmap.ISO8859_1, d, tr)
}

// ISO88591 decodes d as ISO-8859-1 (Latin-1), a 1:1 byte-to-rune
// mapping.
func ISO88591(d []byte, tr trap.Trap) (string, error) {
	return decodeWith(charmap.ISO8859_1, d, tr)
}

// ISO88591NT decodes up to the first NUL byte, requiring a terminator;
// returns (bytes_consumed_including_terminator, string). If no
// terminator is present, the trap is asked whether to recover
// (ErrStringNotTerminated); on recovery the whole slice is treated as
// the string.
func ISO88591NT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, ok := nulTerminator1(d)
	if !ok {
		if err := tr.Error(ErrStringNotTerminated); err != nil {
			return 0, "", err
		}
		end, length = len(d), len(d)
	}
	s, err := ISO88591(d[:end], tr)
	return length, s, err
}

// ISO88591MNT behaves like ISO88591NT but never raises
// ErrStringNotTerminated: an absent terminator just means the whole
// slice is the string.
func ISO88591MNT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, _ := nulTerminator1(d)
	s, err := ISO88591(d[:end], tr)
	return length, s, err
}

func nulTerminator1(d []byte) (end, length int, ok bool) {
	for i, b := range d {
		if b == 0 {
			return i, i + 1, true
		}
	}
	return len(d), len(d), false
}

func nulTerminator2(d []byte) (end, length int, ok bool) {
	for i := 0; i+1 < len(d); i += 2 {
		if d[i] == 0 && d[i+1] == 0 {
			return i, i + 2, true
		}
	}
	return len(d), len(d), false
}

// UTF16BE decodes d as big-endian UTF-16 with no BOM.
func UTF16BE(d []byte, tr trap.Trap) (string, error) {
	return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), d, tr)
}

// UTF16BENT decodes UTF-16BE up to a 00 00 aligned-pair terminator.
func UTF16BENT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, ok := nulTerminator2(d)
	if !ok {
		if err := tr.Error(ErrStringNotTerminated); err != nil {
			return 0, "", err
		}
		end, length = len(d), len(d)
	}
	s, err := UTF16BE(d[:end], tr)
	return length, s, err
}

// UTF16BEMNT is the "maybe not terminated" variant of UTF16BENT.
func UTF16BEMNT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, _ := nulTerminator2(d)
	s, err := UTF16BE(d[:end], tr)
	return length, s, err
}

// UTF16LE decodes d as little-endian UTF-16 with no BOM.
func UTF16LE(d []byte, tr trap.Trap) (string, error) {
	return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), d, tr)
}

// UTF16LENT decodes UTF-16LE up to a 00 00 aligned-pair terminator.
func UTF16LENT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, ok := nulTerminator2(d)
	if !ok {
		if err := tr.Error(ErrStringNotTerminated); err != nil {
			return 0, "", err
		}
		end, length = len(d), len(d)
	}
	s, err := UTF16LE(d[:end], tr)
	return length, s, err
}

// UTF16LEMNT is the "maybe not terminated" variant of UTF16LENT.
func UTF16LEMNT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, _ := nulTerminator2(d)
	s, err := UTF16LE(d[:end], tr)
	return length, s, err
}

// UTF16BOM decodes d, which must begin with a FE FF (big-endian) or
// FF FE (little-endian) byte-order mark, or be empty.
func UTF16BOM(d []byte, tr trap.Trap) (string, error) {
	switch {
	case len(d) == 0:
		return "", nil
	case len(d) >= 2 && d[0] == 0xFE && d[1] == 0xFF:
		return UTF16BE(d[2:], tr)
	case len(d) >= 2 && d[0] == 0xFF && d[1] == 0xFE:
		return UTF16LE(d[2:], tr)
	default:
		return "", ErrInvalidEncoding
	}
}

// UTF16BOMNT decodes a BOM-prefixed, NUL-pair-terminated UTF-16 string.
// A leading 00 00 (empty input after an implicit BOM) decodes to an
// empty, 2-byte-consuming string. A missing BOM raises ErrMissingBOM as
// recoverable.
func UTF16BOMNT(d []byte, tr trap.Trap) (int, string, error) {
	switch {
	case len(d) == 0:
		return 0, "", nil
	case len(d) >= 2 && d[0] == 0 && d[1] == 0:
		return 2, "", nil
	case len(d) >= 2 && d[0] == 0xFE && d[1] == 0xFF:
		l, s, err := UTF16BENT(d[2:], tr)
		if err != nil {
			return 0, "", err
		}
		return l + 2, s, nil
	case len(d) >= 2 && d[0] == 0xFF && d[1] == 0xFE:
		l, s, err := UTF16LENT(d[2:], tr)
		if err != nil {
			return 0, "", err
		}
		return l + 2, s, nil
	default:
		if err := tr.Error(ErrMissingBOM); err != nil {
			return 0, "", err
		}
		return len(d), "", nil
	}
}

// UTF16BOMMNT is the "maybe not terminated" variant of UTF16BOMNT: a
// missing BOM never raises an error.
func UTF16BOMMNT(d []byte, tr trap.Trap) (int, string, error) {
	switch {
	case len(d) == 0:
		return 0, "", nil
	case len(d) >= 2 && d[0] == 0 && d[1] == 0:
		return 2, "", nil
	case len(d) >= 2 && d[0] == 0xFE && d[1] == 0xFF:
		l, s, err := UTF16BEMNT(d[2:], tr)
		return l + 2, s, err
	case len(d) >= 2 && d[0] == 0xFF && d[1] == 0xFE:
		l, s, err := UTF16LEMNT(d[2:], tr)
		return l + 2, s, err
	default:
		return len(d), "", nil
	}
}

// UTF8 decodes d as UTF-8. Go strings are natively UTF-8, so unlike the
// other encodings here this needs no third-party transcoder — only a
// validity check, via the standard library's unicode/utf8.
func UTF8(d []byte, tr trap.Trap) (string, error) {
	if utf8.Valid(d) {
		return string(d), nil
	}
	if tr.DecoderTrap() == trap.DecoderError {
		return "", ErrInvalidEncoding
	}
	return strings.ToValidUTF8(string(d), string(utf8.RuneError)), nil
}

// UTF8NT decodes UTF-8 up to the first NUL byte, requiring a
// terminator.
func UTF8NT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, ok := nulTerminator1(d)
	if !ok {
		if err := tr.Error(ErrStringNotTerminated); err != nil {
			return 0, "", err
		}
		end, length = len(d), len(d)
	}
	s, err := UTF8(d[:end], tr)
	return length, s, err
}

// UTF8MNT is the "maybe not terminated" variant of UTF8NT.
func UTF8MNT(d []byte, tr trap.Trap) (int, string, error) {
	end, length, _ := nulTerminator1(d)
	s, err := UTF8(d[:end], tr)
	return length, s, err
}
