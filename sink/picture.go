package sink

import (
	"math"

	"github.com/tagscan-go/tagscan/internal/dispatch"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/trap"
)

// Picture collects pictures of interest, evicting the lowest-precedence
// picture already held when Max is reached and a better-ranked one
// arrives.
type Picture struct {
	tagscan.NopSink

	// Types is the set of picture roles of interest.
	Types tagscan.PictureKind
	// Max caps how many pictures are kept. Zero means unlimited.
	Max int
	// Precedence ranks picture kinds best first. A kind absent from
	// Precedence never evicts an existing picture. Empty means every
	// kind ranks equally, so pictures are kept first-come-first-served.
	Precedence []tagscan.PictureKind

	Pictures []tagscan.Picture
}

// PreferablyCover builds a Picture sink that keeps at most one image,
// preferring a front cover, then a back cover, then anything else.
func PreferablyCover() *Picture {
	return &Picture{
		Types: tagscan.PictureAllKinds,
		Max:   1,
		Precedence: []tagscan.PictureKind{
			tagscan.PictureFrontCover,
			tagscan.PictureBackCover,
			tagscan.PictureOther,
		},
	}
}

// ReadFile runs p against path using the default format parsers,
// recovering from malformed sub-fields rather than failing outright.
func (p *Picture) ReadFile(path string) error {
	return dispatch.ReadAnyTagFromFile(dispatch.Default, path, p, trap.Skip{})
}

// PictureFromFile opens path and extracts its single best cover image,
// per PreferablyCover's precedence.
func PictureFromFile(path string) (*Picture, error) {
	p := PreferablyCover()
	if err := p.ReadFile(path); err != nil {
		return nil, err
	}
	return p, nil
}

// Best returns the held picture with the highest precedence, or nil if
// none were collected.
func (p *Picture) Best() *tagscan.Picture {
	if len(p.Pictures) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(p.Pictures); i++ {
		if p.precedenceOf(p.Pictures[i].Kind) < p.precedenceOf(p.Pictures[best].Kind) {
			best = i
		}
	}
	return &p.Pictures[best]
}

func (p *Picture) precedenceOf(k tagscan.PictureKind) int {
	for i, pk := range p.Precedence {
		if pk == k {
			return i
		}
	}
	return math.MaxInt
}

// worstHeldIdx returns the index of the held picture with the lowest
// (worst) precedence rank.
func (p *Picture) worstHeldIdx() int {
	idx, worst := -1, -1
	for i, pic := range p.Pictures {
		if rank := p.precedenceOf(pic.Kind); rank > worst {
			worst, idx = rank, i
		}
	}
	return idx
}

// replaceableIdx reports which held picture, if any, a newly arriving
// picture of kind k should evict: the worst-ranked one, but only if k
// itself outranks it.
func (p *Picture) replaceableIdx(k tagscan.PictureKind) int {
	rank := p.precedenceOf(k)
	if rank == math.MaxInt {
		return -1
	}
	idx := p.worstHeldIdx()
	if idx < 0 || p.precedenceOf(p.Pictures[idx].Kind) <= rank {
		return -1
	}
	return idx
}

func (p *Picture) Accepts(k tagscan.DataKind, kind tagscan.PictureKind) bool {
	if k != tagscan.PictureKindData {
		return false
	}
	if p.Types&kind == 0 {
		return false
	}
	if p.Max == 0 || len(p.Pictures) < p.Max {
		return true
	}
	return p.replaceableIdx(kind) >= 0
}

func (p *Picture) Done() bool {
	if p.Max == 0 || len(p.Pictures) < p.Max {
		return false
	}
	if len(p.Precedence) == 0 {
		return true
	}
	for _, pic := range p.Pictures {
		if pic.Kind != p.Precedence[0] {
			return false
		}
	}
	return true
}

func (p *Picture) AddPicture(pic tagscan.Picture) {
	if p.Types&pic.Kind == 0 {
		return
	}
	if p.Max == 0 || len(p.Pictures) < p.Max {
		p.Pictures = append(p.Pictures, pic)
		return
	}
	if idx := p.replaceableIdx(pic.Kind); idx >= 0 {
		p.Pictures[idx] = pic
	}
}
