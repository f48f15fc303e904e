package mp4

import (
	"github.com/tagscan-go/tagscan/internal/breader"
	"github.com/tagscan-go/tagscan/internal/enc"
	"github.com/tagscan-go/tagscan/internal/id3v1"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/internal/parsing"
	"github.com/tagscan-go/tagscan/trap"
)

// dataUTF8 is the "data" sub-box's value-type code for UTF-8 text.
const dataUTF8 = 1

// readDataBox decodes a single "data" sub-box: [1 version][3 flags]
// [4 reserved][value]. It returns the raw value bytes and the flags'
// value-type code.
func readDataBox(r *breader.Reader, end int64) (valueType uint32, value []byte, err error) {
	vf, err := breader.BE[uint32](r)
	if err != nil {
		return 0, nil, err
	}
	valueType = vf & 0x00FF_FFFF
	if err := r.SeekBy(4); err != nil { // reserved
		return 0, nil, err
	}
	n := int(end - r.Pos())
	if n < 0 {
		n = 0
	}
	value, err = r.ReadOwned(n)
	return valueType, value, err
}

// findDataValue scans an annotation's children for its first "data"
// sub-box and returns its decoded value type and bytes.
func findDataValue(r *breader.Reader, end int64) (valueType uint32, value []byte, found bool, err error) {
	err = eachChild(r, end, func(b box) error {
		if found || b.typ != "data" {
			return nil
		}
		vt, v, derr := readDataBox(r, b.end)
		if derr != nil {
			return derr
		}
		valueType, value, found = vt, v, true
		return nil
	})
	return valueType, value, found, err
}

// ilstState carries state across ilst annotations: a custom "----"
// Narrator atom (if any) wins, but a composer tag (©wrt) is used as a
// fallback when no explicit narrator atom was present. It also
// collects the inputs resolveSeriesPart needs once every annotation
// has been seen.
type ilstState struct {
	composer      string
	narratorSet   bool
	series        string
	grouping      string
	customParts   map[string]string
	trackN        int
	titleForParts string
	albumForParts string
}

// parseIlst walks the ilst annotation list, dispatching each child to
// its typed decoder and pushing recognized fields to sink.
func parseIlst(r *breader.Reader, end int64, sink tagscan.Sink, tr trap.Trap) error {
	st := &ilstState{customParts: map[string]string{}}
	if err := eachChild(r, end, func(b box) error {
		return dispatchAnnotation(r, b, sink, tr, st)
	}); err != nil {
		return err
	}

	if !st.narratorSet && st.composer != "" && sink.Accepts(tagscan.Narrator, 0) {
		sink.SetNarrator(st.composer)
	}

	// "©grp" (Grouping) is the one iTunes atom that can carry both a
	// series name and its part in a single string, the way audiobook
	// taggers that lack a dedicated series atom commonly use it. It
	// only fills in where no explicit series atom was already seen.
	if st.series == "" {
		if groupSeries, groupPart := parsing.ParseGrouping(st.grouping); groupSeries != "" {
			st.series = groupSeries
			if sink.Accepts(tagscan.Series, 0) {
				sink.SetSeries(groupSeries)
			}
			if groupPart != "" {
				st.customParts["grouping"] = groupPart
			}
		}
	}

	if st.series != "" && sink.Accepts(tagscan.SeriesPart, 0) {
		if part := resolveSeriesPart(st); part != "" {
			sink.SetSeriesPart(part)
		}
	}
	return nil
}

func dispatchAnnotation(r *breader.Reader, b box, sink tagscan.Sink, tr trap.Trap, st *ilstState) error {
	if b.typ == "----" {
		return customAnnotation(r, b.end, sink, st)
	}
	if b.typ == "covr" {
		return coverAnnotation(r, b.end, sink)
	}

	vt, v, found, err := findDataValue(r, b.end)
	if err != nil || !found {
		return err
	}

	switch b.typ {
	case "\xA9nam":
		st.titleForParts = string(v)
		if sink.Accepts(tagscan.Title, 0) {
			sink.SetTitle(string(v))
		}
	case "\xA9ART":
		if sink.Accepts(tagscan.Artists, 0) {
			sink.SetArtists([]string{string(v)})
		}
	case "\xA9alb":
		st.albumForParts = string(v)
		if sink.Accepts(tagscan.Album, 0) {
			sink.SetAlbum(string(v))
		}
	case "\xA9cmt":
		if sink.Accepts(tagscan.Comments, 0) {
			sink.AddComment(tagscan.Comment{Value: string(v)})
		}
	case "\xA9day":
		if sink.Accepts(tagscan.Year, 0) || sink.Accepts(tagscan.Date, 0) {
			if dt, err := enc.Year(string(v), tr); err == nil {
				tagscan.DispatchDate(sink, dt.Year, dt.Month, dt.Day, dt.Time)
			}
		}
	case "\xA9wrt":
		st.composer = string(v)
	case "\xA9grp":
		st.grouping = string(v)
	case "\xA9nrt":
		st.narratorSet = true
		if sink.Accepts(tagscan.Narrator, 0) {
			sink.SetNarrator(string(v))
		}
	case "trkn":
		n, total := decodeNumPair(v)
		st.trackN = n
		if sink.Accepts(tagscan.Track, 0) {
			sink.SetTrack(n)
		}
		if total != 0 && sink.Accepts(tagscan.TrackCount, 0) {
			sink.SetTrackCount(total)
		}
	case "disk":
		n, total := decodeNumPair(v)
		if sink.Accepts(tagscan.Disc, 0) {
			sink.SetDisc(n)
		}
		if total != 0 && sink.Accepts(tagscan.DiscCount, 0) {
			sink.SetDiscCount(total)
		}
	case "gnre":
		if sink.Accepts(tagscan.Genres, 0) {
			dispatchGenre(sink, tr, vt, v)
		}
	}
	return nil
}

// decodeNumPair reads a binary trkn/disk value:
// [2 reserved][2 index][2 total][2 reserved].
func decodeNumPair(v []byte) (n, total int) {
	if len(v) < 6 {
		return 0, 0
	}
	return int(v[2])<<8 | int(v[3]), int(v[4])<<8 | int(v[5])
}

func dispatchGenre(sink tagscan.Sink, tr trap.Trap, vt uint32, v []byte) {
	if vt == dataUTF8 {
		if name, err := enc.UTF8(v, tr); err == nil {
			sink.SetGenres([]string{name})
		}
		return
	}
	if len(v) < 2 {
		return
	}
	idx := int(v[0])<<8 | int(v[1])
	if idx <= 0 {
		return
	}
	if name, ok := id3v1.Genre(uint8(idx - 1)); ok {
		sink.SetGenres([]string{name})
	}
}

// covr's data sub-boxes use their value-type code itself to indicate
// the image codec (13 JPEG, 14 PNG, 27 BMP), rather than a single
// generic "image" marker.
func isImageValueType(vt uint32) bool { return vt == 13 || vt == 14 || vt == 27 }

func coverAnnotation(r *breader.Reader, end int64, sink tagscan.Sink) error {
	if !sink.Accepts(tagscan.PictureKindData, tagscan.PictureFrontCover) {
		return nil
	}
	return eachChild(r, end, func(b box) error {
		if b.typ != "data" {
			return nil
		}
		vt, v, err := readDataBox(r, b.end)
		if err != nil {
			return err
		}
		if !isImageValueType(vt) {
			return nil
		}
		sink.AddPicture(tagscan.Picture{
			MIME: mimeForFlags(vt),
			Data: v,
			Kind: tagscan.PictureFrontCover,
		})
		return nil
	})
}

func mimeForFlags(valueType uint32) string {
	switch valueType {
	case 14:
		return "image/png"
	case 27:
		return "image/bmp"
	default:
		return "image/jpeg"
	}
}
