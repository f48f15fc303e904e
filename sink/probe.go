package sink

import (
	"github.com/tagscan-go/tagscan/internal/dispatch"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Probe records the tag type(s) a parser detects, without decoding any
// field data. In fast mode (Thorough false) it stops at the first tag
// found, the common "what kind of file is this" case; in Thorough mode
// it keeps going so a file carrying more than one tag container (e.g.
// ID3v1 plus ID3v2 on the same file) reports every one of them.
type Probe struct {
	tagscan.NopSink

	Thorough bool
	TagTypes []tagscan.TagType
}

// TopLevelProbe detects only the first tag container present. This is
// the fast mode.
func TopLevelProbe() *Probe { return &Probe{} }

// ThoroughProbe keeps recording tag types after the first one, so a
// parser that finds several containers (the combined ID3 parser's
// ID3v1 and ID3v2) reports each. Dispatch still stops at the first
// parser that succeeds; the remaining format parsers are not tried.
func ThoroughProbe() *Probe { return &Probe{Thorough: true} }

// ProbeFile opens path and reports the tag type of the first matching
// parser, without decoding any field data.
func ProbeFile(path string) (*Probe, error) {
	p := TopLevelProbe()
	if err := dispatch.ReadAnyTagFromFile(dispatch.Default, path, p, trap.Skip{}); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Probe) Accepts(k tagscan.DataKind, _ tagscan.PictureKind) bool {
	return k == tagscan.TagTypeData
}

func (p *Probe) Done() bool { return !p.Thorough && len(p.TagTypes) > 0 }

func (p *Probe) SetTagType(t tagscan.TagType) { p.TagTypes = append(p.TagTypes, t) }
