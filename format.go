package tagscan

import "github.com/tagscan-go/tagscan/sink"

// DetectFormat reports the tag container the first matching parser
// recognizes in path, without decoding any field data. It is a thin
// wrapper around sink.ProbeFile for callers that only want to know
// what kind of file they have.
func DetectFormat(path string) (TagType, error) {
	p, err := sink.ProbeFile(path)
	if err != nil {
		return TagType{}, err
	}
	return p.TagTypes[0], nil
}
