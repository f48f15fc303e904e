package tagscan

import "github.com/tagscan-go/tagscan/trap"

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern.
//
// Example:
//
//	file, err := tagscan.Open("song.flac",
//	    tagscan.WithStrictParsing(),
//	    tagscan.WithMaxPictures(1),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	trap        trap.Trap
	maxPictures int // 0 = unlimited
}

// defaultOptions returns the default configuration: recover from every
// malformed sub-field silently, keep every picture found.
func defaultOptions() *openOptions {
	return &openOptions{
		trap: trap.Skip{},
	}
}

// WithTrap overrides the recovery policy used while parsing. The
// default is trap.Skip{}, which silently drops malformed sub-fields
// and keeps going.
func WithTrap(tr trap.Trap) Option {
	return func(o *openOptions) {
		o.trap = tr
	}
}

// WithStrictParsing aborts Open on the first malformed sub-field
// instead of skipping it.
//
// Example:
//
//	file, err := tagscan.Open("song.flac", tagscan.WithStrictParsing())
//	// err != nil if any field fails to decode
func WithStrictParsing() Option {
	return WithTrap(trap.Strict{})
}

// WithMaxPictures caps how many embedded pictures Open collects.
// Default is 0 (unlimited).
func WithMaxPictures(n int) Option {
	return func(o *openOptions) {
		o.maxPictures = n
	}
}
