package tagscan

import "time"

// Chapter marks a named position within the audio, as found in FLAC
// CUESHEET blocks and MP4 chapter tracks/Nero chapter atoms.
type Chapter struct {
	Start time.Duration
	Title string
}
