// Package dispatch implements the "try every format" driver: given a
// list of format parsers, it runs each until one succeeds, and can
// prioritize the list by a file's extension before doing so. It also
// hosts Id3, the combined ID3v1+ID3v2 parser.
package dispatch

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tagscan-go/tagscan/internal/asf"
	"github.com/tagscan-go/tagscan/internal/flac"
	"github.com/tagscan-go/tagscan/internal/id3v1"
	"github.com/tagscan-go/tagscan/internal/id3v2"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/internal/mp4"
	"github.com/tagscan-go/tagscan/internal/riff"
	"github.com/tagscan-go/tagscan/trap"
)

// Parser is the capability every format driver exposes to the dispatch
// layer: which extensions it claims, and an attempt to parse a tag
// starting wherever r is currently positioned.
type Parser interface {
	Extensions() []string
	Store(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error
}

// funcParser adapts a FromSeek-shaped function, which every
// sink-pushing format package exposes with an identical signature,
// into a Parser.
type funcParser struct {
	exts []string
	fn   func(io.ReadSeeker, tagscan.Sink, trap.Trap) error
}

func (p funcParser) Extensions() []string { return p.exts }

func (p funcParser) Store(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	return p.fn(r, sink, tr)
}

// Flac, MP4, ASF, Riff, and ID3v2Only wrap the corresponding package's
// FromSeek entry point as a Parser.
var (
	Flac        Parser = funcParser{exts: flac.Extensions(), fn: flac.FromSeek}
	MP4         Parser = funcParser{exts: mp4.Extensions(), fn: mp4.FromSeek}
	ASF         Parser = funcParser{exts: asf.Extensions(), fn: asf.FromSeek}
	Riff        Parser = funcParser{exts: riff.Extensions(), fn: riff.FromSeek}
	ID3v2Only   Parser = funcParser{exts: id3v2.Extensions(), fn: id3v2.FromSeek}
)

// id3v1Parser adapts id3v1's Tag-returning FromSeek, which has no
// Sink parameter of its own, into the Store shape by routing the
// decoded Tag through its Store method.
type id3v1Parser struct{}

func (id3v1Parser) Extensions() []string { return id3v1.Extensions() }

func (id3v1Parser) Store(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	t, err := id3v1.FromSeek(r, tr)
	if err != nil {
		return err
	}
	return t.Store(sink, tr)
}

// ID3v1Only wraps the ID3v1/1.1/1.2 parser alone, without the ID3v2
// merge Id3 performs.
var ID3v1Only Parser = id3v1Parser{}

// id3Parser is the combined parser: it runs ID3v1 then ID3v2 on the
// same stream so that ID3v2 data wins on any field the two both
// supply. Neither one's ErrNoTag masks a real result from the other.
type id3Parser struct{}

func (id3Parser) Extensions() []string { return id3v1.Extensions() }

func (id3Parser) Store(r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	v1Err := ID3v1Only.Store(r, sink, tr)
	v2Err := ID3v2Only.Store(r, sink, tr)
	switch {
	case v2Err == nil:
		return nil
	case v1Err == tagscan.ErrNoTag:
		return v2Err
	case v2Err == tagscan.ErrNoTag:
		return v1Err
	default:
		return v2Err
	}
}

// Id3 is the combined ID3v1+ID3v2 parser described in spec.md §4.12.
var Id3 Parser = id3Parser{}

// Default is the full parser list read_tag/read_tag_from_file try, in
// priority order.
var Default = []Parser{Id3, Flac, MP4, ASF, Riff}

// ReadAnyTag tries each parser in order against r, returning on the
// first success. A parser's ErrNoTag means "try the next one"; any
// other error propagates immediately without trying further parsers.
// If none match, ErrNoTag is returned.
func ReadAnyTag(parsers []Parser, r io.ReadSeeker, sink tagscan.Sink, tr trap.Trap) error {
	for _, p := range parsers {
		switch err := p.Store(r, sink, tr); {
		case err == nil:
			return nil
		case err == tagscan.ErrNoTag:
			continue
		default:
			return err
		}
	}
	return tagscan.ErrNoTag
}

// ReadAnyTagFromFile opens path, partitions parsers by whether each
// advertises the file's extension, and tries the extension-matching
// parsers first — the central "try formats in the right order"
// heuristic.
func ReadAnyTagFromFile(parsers []Parser, path string, sink tagscan.Sink, tr trap.Trap) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ReadAnyTag(parsers, f, sink, tr)
	}

	var primary, secondary []Parser
	for _, p := range parsers {
		matched := false
		for _, e := range p.Extensions() {
			if e == ext {
				matched = true
				break
			}
		}
		if matched {
			primary = append(primary, p)
		} else {
			secondary = append(secondary, p)
		}
	}

	return ReadAnyTag(append(primary, secondary...), f, sink, tr)
}
