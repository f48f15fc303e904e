package mp4

import (
	"strings"

	"github.com/tagscan-go/tagscan/internal/breader"
	tagscan "github.com/tagscan-go/tagscan/internal/model"
	"github.com/tagscan-go/tagscan/internal/parsing"
)

// customAnnotation decodes a "----" freeform atom: child atoms "mean"
// (namespace, usually "com.apple.iTunes"), "name" (the field name),
// and "data" (the value, a full-box whose payload follows the usual
// 8-byte version/flags/reserved preface). The namespace is read but
// not filtered on, matching real-world taggers' inconsistent use of it.
func customAnnotation(r *breader.Reader, end int64, sink tagscan.Sink, st *ilstState) error {
	var fieldName, value string
	if err := eachChild(r, end, func(b box) error {
		switch b.typ {
		case "name":
			if err := r.SeekBy(4); err != nil { // version + flags
				return err
			}
			v, err := r.ReadOwned(int(b.end - r.Pos()))
			if err != nil {
				return err
			}
			fieldName = string(v)
		case "data":
			_, v, err := readDataBox(r, b.end)
			if err != nil {
				return err
			}
			value = strings.TrimRight(string(v), "\x00")
		}
		return nil
	}); err != nil {
		return err
	}

	switch strings.ToLower(fieldName) {
	case "narrator":
		st.narratorSet = true
		if sink.Accepts(tagscan.Narrator, 0) {
			sink.SetNarrator(value)
		}
	case "series":
		st.series = value
		if sink.Accepts(tagscan.Series, 0) {
			sink.SetSeries(value)
		}
	case "series part", "seriespart", "part", "series position", "volume":
		st.customParts[strings.ToLower(fieldName)] = value
	case "asin":
		if sink.Accepts(tagscan.ASIN, 0) {
			sink.SetASIN(value)
		}
	}
	return nil
}

// resolveSeriesPart determines a series part from, in priority order,
// explicit custom atoms, the title, then the album — the same
// multi-source fallback iTunes audiobook taggers rely on in place of
// a single canonical "series part" atom.
func resolveSeriesPart(st *ilstState) string {
	for _, key := range []string{"series part", "seriespart", "series position", "part", "volume", "grouping"} {
		if v := st.customParts[key]; v != "" {
			return v
		}
	}
	if part := parsing.ExtractSeriesPartFromText(st.titleForParts); part != "" {
		return part
	}
	return parsing.ExtractSeriesPartFromText(st.albumForParts)
}
