// Package trap defines the recoverable-error policy contract parsers
// consult whenever they hit malformed, but not necessarily fatal, input.
package trap

import (
	"fmt"
	"io"
	"os"
)

// DecoderPolicy controls what the text decoders in internal/enc do when
// they encounter a byte sequence that cannot be decoded in the selected
// encoding.
type DecoderPolicy int

const (
	// DecoderDrop silently omits the offending bytes.
	DecoderDrop DecoderPolicy = iota
	// DecoderReplace substitutes U+FFFD for the offending bytes.
	DecoderReplace
	// DecoderError treats the offending bytes as a hard decode failure.
	DecoderError
)

// Trap is a caller-supplied policy object consulted every time a parser
// hits a recoverable error. Error returns nil if the error is recovered
// (the parser then skips the affected field and continues) or a non-nil
// error if it should escalate and abort the parse. DecoderTrap reports
// the policy the string decoders in internal/enc should apply to
// malformed byte sequences.
type Trap interface {
	Error(err error) error
	DecoderTrap() DecoderPolicy
}

// Recover asks tr whether err should be recovered. It returns nil when
// the error was recovered (the caller should drop the associated value
// and continue parsing at the next boundary) and a non-nil error when
// the parse should abort. A nil err is always recovered.
func Recover(tr Trap, err error) error {
	if err == nil {
		return nil
	}
	return tr.Error(err)
}

// Propagate discards a successful value, keeping only whether the
// associated error should abort the parse. It exists for call sites
// that only care about pass/fail, mirroring the Rust trap::propagate
// helper this package is grounded on.
func Propagate(tr Trap, err error) error {
	return Recover(tr, err)
}

// Skip recovers every recoverable error without comment and replaces
// undecodable byte sequences rather than erroring on them.
type Skip struct{}

func (Skip) Error(error) error           { return nil }
func (Skip) DecoderTrap() DecoderPolicy  { return DecoderReplace }

// Warn recovers every recoverable error but first writes a one-line
// message to Writer (os.Stderr if nil). It also replaces undecodable
// byte sequences.
type Warn struct {
	// Writer receives the warning lines. Defaults to os.Stderr.
	Writer io.Writer
}

func (w Warn) Error(err error) error {
	out := w.Writer
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "tagscan: warning: %s\n", err)
	return nil
}

func (Warn) DecoderTrap() DecoderPolicy { return DecoderReplace }

// Strict escalates every recoverable error instead of recovering from
// it, aborting the parse at the first malformed sub-field. Nothing in
// the Trap contract requires Skip and Warn to be the only policies; a
// caller that wants "fail on the first sign of trouble" needs this
// third one.
type Strict struct{}

func (Strict) Error(err error) error      { return err }
func (Strict) DecoderTrap() DecoderPolicy { return DecoderError }
