// Package tagscan provides read-only, format-agnostic audio tag
// extraction.
//
// # Quick Start
//
//	file, err := tagscan.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s\n", file.Tag.Artists, file.Tag.Title)
//
// # Supported Containers
//
//   - ID3v1, ID3v1.1, ID3v1.2
//   - ID3v2.2, ID3v2.3, ID3v2.4
//   - FLAC (STREAMINFO, VORBIS_COMMENT, PICTURE, CUESHEET blocks)
//   - Vorbis comments (as carried in FLAC; Ogg files are not read)
//   - MP4/QuickTime atoms (iTunes metadata, chapters)
//   - ASF/WMA
//   - RIFF/WAVE (LIST/INFO chunks; embedded ID3 chunks are not read)
//
// # Architecture
//
// Every format parser delivers decoded fields by pushing them into a
// Sink as it walks the container, rather than building an intermediate
// tree first. Open's Tag is backed by a Sink that simply accepts
// everything; the sink/ package has narrower, purpose-built Sinks
// (sink.Basic, sink.Picture, sink.Probe) for callers who only want a
// handful of fields, cover art, or just the container type, and who
// would rather not pay for decoding the rest.
//
// # Error Handling
//
// A malformed sub-field (a corrupt frame, an unparseable date) is a
// recoverable error: it is reported to a trap.Trap, which decides
// whether to skip it and continue or abort the parse. The default,
// trap.Skip, always recovers. WithStrictParsing switches to
// trap.Strict, which aborts on the first one. A missing tag altogether
// is ErrNoTag, never a recoverable error.
//
// # Non-goals
//
// tagscan is read-only: there is no API for writing or rewriting tags.
// It does not decode audio sample data, compute replay gain, or open
// multiple files concurrently — callers that want that can call Open
// from their own goroutines.
package tagscan
