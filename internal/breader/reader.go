// Package breader implements the sequential, buffered byte-stream cursor
// every format parser in this module is built on. Unlike a plain
// io.ReaderAt, it tracks a single forward-moving (but relatively
// seekable) position and exposes the scan/zero-copy primitives the
// per-format parsers need: bounded exact reads, syncsafe/24-bit integer
// decoding, pattern scanning across buffer refills, and relative seeks,
// including unsigned 64-bit offsets too large for a single int64 seek.
package breader

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/trap"
)

// ErrUnexpectedEOF is returned when the underlying source cannot supply
// as many bytes as a read demands.
var ErrUnexpectedEOF = io.ErrUnexpectedEOF

// Reader is a sequential cursor over an io.ReadSeeker. Every read
// advances the logical position by exactly the number of bytes
// consumed; bytes retained only in the internal buffer for lookahead
// purposes are not considered consumed until handed to the caller.
type Reader struct {
	src io.ReadSeeker
	buf []byte // unread bytes already pulled from src
	pos int64  // logical position of the first unread byte
}

// New wraps src, whose current position becomes the reader's starting
// position.
func New(src io.ReadSeeker) (*Reader, error) {
	pos, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "breader: determine start position")
	}
	return &Reader{src: src, pos: pos}, nil
}

// Pos returns the current logical position.
func (r *Reader) Pos() int64 { return r.pos }

// fill ensures at least n bytes are buffered, reading from src as
// needed. It returns the number of bytes actually available, which may
// be less than n at end of stream.
func (r *Reader) fill(n int) (int, error) {
	for len(r.buf) < n {
		chunk := make([]byte, 4096)
		read, err := r.src.Read(chunk)
		if read > 0 {
			r.buf = append(r.buf, chunk[:read]...)
		}
		if err != nil {
			if err == io.EOF {
				return len(r.buf), nil
			}
			return len(r.buf), errors.Wrap(err, "breader: fill")
		}
		if read == 0 {
			return len(r.buf), nil
		}
	}
	return len(r.buf), nil
}

func (r *Reader) consume(n int) []byte {
	b := r.buf[:n]
	r.buf = r.buf[n:]
	r.pos += int64(n)
	return b
}

// ReadExact returns a slice of exactly n bytes, borrowed from the
// internal buffer. The slice is valid only until the next read call.
// n == 0 is a documented no-op returning an empty slice.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return r.buf[:0], nil
	}
	have, err := r.fill(n)
	if err != nil {
		return nil, err
	}
	if have < n {
		return nil, errors.Wrapf(ErrUnexpectedEOF, "breader: need %d bytes, have %d", n, have)
	}
	return r.consume(n), nil
}

// ReadOwned is ReadExact but returns a freshly allocated copy, safe to
// retain past the next read call.
func (r *Reader) ReadOwned(n int) ([]byte, error) {
	b, err := r.ReadExact(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Array reads exactly n bytes into a freshly allocated slice; callers
// that need a true Go array can copy from it. Array is provided for
// parity with spec terminology and simply delegates to ReadOwned.
func (r *Reader) Array(n int) ([]byte, error) {
	return r.ReadOwned(n)
}

// unsigned is the type-set integer reads operate over.
type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func sizeOf[T unsigned]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	default:
		return 0
	}
}

// BE reads a big-endian integer of type T and advances the position.
func BE[T unsigned](r *Reader) (T, error) {
	n := sizeOf[T]()
	b, err := r.ReadExact(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeBE[T](b), nil
}

// LE reads a little-endian integer of type T and advances the position.
func LE[T unsigned](r *Reader) (T, error) {
	n := sizeOf[T]()
	b, err := r.ReadExact(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeLE[T](b), nil
}

func decodeBE[T unsigned](b []byte) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		return T(binary.BigEndian.Uint16(b))
	case uint32:
		return T(binary.BigEndian.Uint32(b))
	case uint64:
		return T(binary.BigEndian.Uint64(b))
	}
	return zero
}

func decodeLE[T unsigned](b []byte) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		return T(binary.LittleEndian.Uint16(b))
	case uint32:
		return T(binary.LittleEndian.Uint32(b))
	case uint64:
		return T(binary.LittleEndian.Uint64(b))
	}
	return zero
}

// U24BE reads a 3-byte big-endian unsigned integer.
func (r *Reader) U24BE() (uint32, error) {
	b, err := r.ReadExact(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// SyncsafeU32BE reads a 4-byte ID3v2 syncsafe integer: seven
// significant bits per byte, (d0<<21)|(d1<<14)|(d2<<7)|d3.
func (r *Reader) SyncsafeU32BE() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<21 | uint32(b[1])<<14 | uint32(b[2])<<7 | uint32(b[3]), nil
}

// SeekBy performs a relative seek by a signed byte amount. SeekBy(0) is
// a documented no-op.
func (r *Reader) SeekBy(delta int64) error {
	if delta == 0 {
		return nil
	}
	if delta > 0 && delta <= int64(len(r.buf)) {
		r.consume(int(delta))
		return nil
	}
	// Account for already-buffered bytes being discarded.
	target := r.pos + delta
	r.buf = r.buf[:0]
	if _, err := r.src.Seek(target, io.SeekStart); err != nil {
		return errors.Wrap(err, "breader: seek")
	}
	r.pos = target
	return nil
}

// USeekBy performs a relative forward seek by an unsigned amount,
// decomposed into steps no larger than math.MaxInt64 so that very large
// declared lengths (as MPEG-4 boxes can carry) never overflow a signed
// seek argument.
func (r *Reader) USeekBy(delta uint64) error {
	const maxStep = uint64(1)<<63 - 1
	for delta > 0 {
		step := delta
		if step > maxStep {
			step = maxStep
		}
		if err := r.SeekBy(int64(step)); err != nil {
			return err
		}
		delta -= step
	}
	return nil
}

// WithLen reads exactly n bytes and invokes f with them, passing tr
// through so f can recover internal decode errors. If f returns an
// error, WithLen asks tr whether to recover it: a recovered error
// yields (zero, nil); an escalated error is returned as-is.
func WithLen[T any](r *Reader, n int, tr trap.Trap, f func([]byte) (T, error)) (T, error) {
	var zero T
	b, err := r.ReadExact(n)
	if err != nil {
		return zero, err
	}
	v, ferr := f(b)
	if ferr == nil {
		return v, nil
	}
	if rerr := tr.Error(ferr); rerr != nil {
		return zero, rerr
	}
	return zero, nil
}

// ScanUntil reads bytes up to and including the first occurrence of
// pat, bounded by max total bytes scanned, then invokes f with the
// bytes read (including pat). It correctly finds pat even when it
// straddles a buffer refill boundary. If pat is not found within max
// bytes, it returns an error without having consumed more than max
// bytes already buffered; bytes already pulled from src remain
// buffered for a subsequent read.
func ScanUntil[T any](r *Reader, pat []byte, max int, tr trap.Trap, f func([]byte) (T, error)) (T, error) {
	var zero T
	if len(pat) == 0 {
		return zero, errors.New("breader: ScanUntil: empty pattern")
	}
	for {
		if idx := bytes.Index(r.buf, pat); idx >= 0 && idx+len(pat) <= max {
			total := idx + len(pat)
			b := r.consume(total)
			v, ferr := f(b)
			if ferr == nil {
				return v, nil
			}
			if rerr := tr.Error(ferr); rerr != nil {
				return zero, rerr
			}
			return zero, nil
		}
		if len(r.buf) >= max {
			return zero, errors.Errorf("breader: ScanUntil: pattern not found within %d bytes", max)
		}
		before := len(r.buf)
		have, err := r.fill(before + 4096)
		if err != nil {
			return zero, err
		}
		if have == before {
			// No more data; pattern never found.
			return zero, errors.Errorf("breader: ScanUntil: pattern not found before EOF")
		}
	}
}

// Expect reports whether the next len(want) bytes match want exactly.
// Only the matching prefix is consumed: on a full match that's all of
// want; on a mismatch, consumption stops at the first differing byte
// and everything from there is left unread, so a caller that wants to
// try a different match against the same bytes can still do so.
func (r *Reader) Expect(want []byte) (bool, error) {
	n := len(want)
	if n == 0 {
		return true, nil
	}
	have, err := r.fill(n)
	if err != nil {
		return false, err
	}
	avail := have
	if avail > n {
		avail = n
	}
	matched := 0
	for matched < avail && r.buf[matched] == want[matched] {
		matched++
	}
	r.consume(matched)
	return matched == n && have >= n, nil
}
