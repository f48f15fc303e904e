package tagscan

import "context"

// File is an opened audio file with its fully decoded Tag.
type File struct {
	Path string
	Tag  *Tag
}

// Open opens an audio file and decodes its tag.
//
// Supported containers: ID3v1/1.1/1.2, ID3v2.2/2.3/2.4, FLAC, Vorbis
// comments, MP4/QuickTime, ASF/WMA, RIFF/WAVE.
//
// By default, malformed sub-fields are skipped rather than failing the
// whole read; use WithStrictParsing to abort on the first one instead.
//
// Example:
//
//	file, err := tagscan.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s\n", file.Tag.Artists, file.Tag.Title)
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	tag, err := ReadTagFromFile(path, options.trap)
	if err != nil {
		return nil, err
	}

	if options.maxPictures > 0 && len(tag.Pictures) > options.maxPictures {
		tag.Pictures = tag.Pictures[:options.maxPictures]
	}

	return &File{Path: path, Tag: tag}, nil
}

// OpenContext opens a file like Open, but fails fast if ctx is already
// done before parsing starts.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}
