package enc

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tagscan-go/tagscan/trap"
)

// ErrInvalidDate is returned for date strings that match none of the
// accepted grammars.
var ErrInvalidDate = errors.New("enc: invalid date")

// ErrInvalidTime is returned for time-of-day strings that match none
// of the accepted grammars.
var ErrInvalidTime = errors.New("enc: invalid time")

// DateTime is the composite year/date/time value produced by the Year
// and Date parsers. No field is required.
type DateTime struct {
	Year *int
	// Month 1..12, Day 1..31.
	Month, Day *int
	Time       *time.Duration
}

// Num parses s as a base-10 signed integer.
func Num(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "enc: parse integer %q", s)
	}
	return n, nil
}

// NumOf parses "n" or "n/total". A malformed total is routed through
// the trap and dropped rather than failing the whole parse.
func NumOf(s string, tr trap.Trap) (n int, total *int, err error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		n, err = Num(s[:i])
		if err != nil {
			return 0, nil, err
		}
		if t, terr := Num(s[i+1:]); terr == nil {
			total = &t
		} else if rerr := tr.Error(terr); rerr != nil {
			return 0, nil, rerr
		}
		return n, total, nil
	}
	n, err = Num(s)
	return n, nil, err
}

// Year parses ISO-like strings: "YYYY", "YYYY-MM-DD", "YYYYMMDD", any
// of those followed by "T<time>". Individual unparseable sub-fields
// flow through the trap and become absent rather than failing the
// whole value.
func Year(s string, tr trap.Trap) (DateTime, error) {
	datePart, timePart, hasTime := strings.Cut(s, "T")

	var yearPart, dayPart string
	var hasDate bool
	if y, d, ok := strings.Cut(datePart, "-"); ok {
		yearPart, dayPart, hasDate = y, d, true
	} else if len(datePart) == 8 {
		yearPart, dayPart, hasDate = datePart[:4], datePart[4:], true
	} else {
		yearPart = datePart
	}

	var out DateTime
	if y, err := Num(yearPart); err == nil {
		out.Year = &y
	} else if rerr := tr.Error(err); rerr != nil {
		return DateTime{}, rerr
	}

	if hasDate {
		if month, day, err := DateOnly(dayPart); err == nil {
			out.Month, out.Day = &month, &day
		} else if rerr := tr.Error(err); rerr != nil {
			return DateTime{}, rerr
		}
	}

	if hasTime {
		if d, err := TimeOnly(timePart); err == nil {
			out.Time = &d
		} else if rerr := tr.Error(err); rerr != nil {
			return DateTime{}, rerr
		}
	}

	return out, nil
}

// Date parses a composite where the year is optional, for ID3v2.3's
// TDAT ("DDMM"-shaped) and similar fields.
func Date(s string, tr trap.Trap) (DateTime, error) {
	datePart, timePart, hasTime := strings.Cut(s, "T")

	var yearPart string
	var hasYear bool
	dayPart := datePart
	if y, d, ok := strings.Cut(datePart, "-"); ok && strings.Contains(d, "-") {
		yearPart, dayPart, hasYear = y, d, true
	} else if len(datePart) == 4 {
		dayPart = datePart[2:] + datePart[:2] // DDMM reordered to DateOnly's MMDD
	} else if len(datePart) == 2 {
		dayPart = datePart
	} else if len(datePart) == 8 {
		yearPart, dayPart, hasYear = datePart[:4], datePart[4:], true
	} else {
		return DateTime{}, ErrInvalidDate
	}

	var out DateTime
	if hasYear {
		if y, err := Num(yearPart); err == nil {
			out.Year = &y
		} else if rerr := tr.Error(err); rerr != nil {
			return DateTime{}, rerr
		}
	}

	if month, day, err := DateOnly(dayPart); err == nil {
		out.Month, out.Day = &month, &day
	} else if rerr := tr.Error(err); rerr != nil {
		return DateTime{}, rerr
	}

	if hasTime {
		if d, err := TimeOnly(timePart); err == nil {
			out.Time = &d
		} else if rerr := tr.Error(err); rerr != nil {
			return DateTime{}, rerr
		}
	}

	return out, nil
}

// DateOnly parses "MM-DD", "MMDD", or a lone "MM" into (month, day).
// Day defaults to 0 when absent.
func DateOnly(s string) (month, day int, err error) {
	var monthPart, dayPart string
	var hasDay bool
	if m, d, ok := strings.Cut(s, "-"); ok {
		monthPart, dayPart, hasDay = m, d, true
	} else if len(s) == 4 {
		monthPart, dayPart, hasDay = s[:2], s[2:], true
	} else if len(s) == 2 {
		monthPart = s
	} else {
		return 0, 0, ErrInvalidDate
	}

	month, err = Num(monthPart)
	if err != nil {
		return 0, 0, err
	}
	if hasDay {
		day, err = Num(dayPart)
		if err != nil {
			return 0, 0, err
		}
	}
	return month, day, nil
}

// TimeOnly parses "hh", "hhmm", "hh:mm", or "hh:mm:ss", optionally
// suffixed with "Z", into a duration from midnight.
func TimeOnly(s string) (time.Duration, error) {
	s = strings.TrimSuffix(s, "Z")

	var hourPart, restPart string
	var hasRest bool
	if h, r, ok := strings.Cut(s, ":"); ok {
		hourPart, restPart, hasRest = h, r, true
	} else if len(s) == 4 {
		hourPart, restPart, hasRest = s[:2], s[2:], true
	} else if len(s) == 2 {
		hourPart = s
	} else {
		return 0, ErrInvalidTime
	}

	hours, err := Num(hourPart)
	if err != nil {
		return 0, ErrInvalidTime
	}
	secs := int64(hours) * 3600

	if hasRest {
		var minPart, secPart string
		var hasSec bool
		if m, sec, ok := strings.Cut(restPart, ":"); ok {
			minPart, secPart, hasSec = m, sec, true
		} else {
			minPart = restPart
		}

		mins, err := Num(minPart)
		if err != nil {
			return 0, ErrInvalidTime
		}
		secs += int64(mins) * 60

		if hasSec {
			s, err := Num(secPart)
			if err != nil {
				return 0, ErrInvalidTime
			}
			secs += int64(s)
		}
	}

	return time.Duration(secs) * time.Second, nil
}
