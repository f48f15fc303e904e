package enc

import (
	"testing"

	"github.com/tagscan-go/tagscan/trap"
)

func TestISO88591NT(t *testing.T) {
	n, s, err := ISO88591NT([]byte("Hello\x00trailing"), trap.Skip{})
	if err != nil {
		t.Fatalf("ISO88591NT: %v", err)
	}
	if s != "Hello" || n != 6 {
		t.Fatalf("got (%d, %q)", n, s)
	}
}

func TestISO88591NTMissingTerminatorRecovered(t *testing.T) {
	n, s, err := ISO88591NT([]byte("NoTerm"), trap.Skip{})
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if s != "NoTerm" || n != 6 {
		t.Fatalf("got (%d, %q)", n, s)
	}
}

// Encoding idempotence (spec.md §8 property 5): enc_nt(encode(s) ++
// terminator) == (len, s).
func TestISO88591NTIdempotence(t *testing.T) {
	s := "round-trip"
	encoded := append([]byte(s), 0)
	n, got, err := ISO88591NT(encoded, trap.Skip{})
	if err != nil {
		t.Fatalf("ISO88591NT: %v", err)
	}
	if got != s || n != len(encoded) {
		t.Fatalf("got (%d, %q), want (%d, %q)", n, got, len(encoded), s)
	}
}

func TestUTF16BOMDecodesBigAndLittle(t *testing.T) {
	be := []byte{0xFE, 0xFF, 0x00, 'A', 0x00, 'B'}
	s, err := UTF16BOM(be, trap.Skip{})
	if err != nil || s != "AB" {
		t.Fatalf("BE: got %q, %v", s, err)
	}

	le := []byte{0xFF, 0xFE, 'A', 0x00, 'B', 0x00}
	s2, err := UTF16BOM(le, trap.Skip{})
	if err != nil || s2 != "AB" {
		t.Fatalf("LE: got %q, %v", s2, err)
	}
}

func TestUTF16BOMEmpty(t *testing.T) {
	s, err := UTF16BOM(nil, trap.Skip{})
	if err != nil || s != "" {
		t.Fatalf("got %q, %v", s, err)
	}
}

func TestUTF16BOMMissing(t *testing.T) {
	_, err := UTF16BOM([]byte{0x41, 0x42}, trap.Skip{})
	if err == nil {
		t.Fatal("expected error for missing BOM")
	}
}

func TestNumOfWithTotal(t *testing.T) {
	n, total, err := NumOf("3/12", trap.Skip{})
	if err != nil {
		t.Fatalf("NumOf: %v", err)
	}
	if n != 3 || total == nil || *total != 12 {
		t.Fatalf("got n=%d total=%v", n, total)
	}
}

func TestNumOfWithoutTotal(t *testing.T) {
	n, total, err := NumOf("7", trap.Skip{})
	if err != nil {
		t.Fatalf("NumOf: %v", err)
	}
	if n != 7 || total != nil {
		t.Fatalf("got n=%d total=%v", n, total)
	}
}

func TestYearPlain(t *testing.T) {
	dt, err := Year("2024", trap.Skip{})
	if err != nil {
		t.Fatalf("Year: %v", err)
	}
	if dt.Year == nil || *dt.Year != 2024 {
		t.Fatalf("got %+v", dt)
	}
	if dt.Month != nil || dt.Time != nil {
		t.Fatalf("expected no date/time, got %+v", dt)
	}
}

func TestYearFullISO(t *testing.T) {
	dt, err := Year("2024-03-05T14:30:00Z", trap.Skip{})
	if err != nil {
		t.Fatalf("Year: %v", err)
	}
	if dt.Year == nil || *dt.Year != 2024 {
		t.Fatalf("year: %+v", dt)
	}
	if dt.Month == nil || *dt.Month != 3 || dt.Day == nil || *dt.Day != 5 {
		t.Fatalf("date: %+v", dt)
	}
	if dt.Time == nil || *dt.Time != 14*3600*1e9+30*60*1e9 {
		t.Fatalf("time: %v", dt.Time)
	}
}

func TestYearCompact(t *testing.T) {
	dt, err := Year("20240305", trap.Skip{})
	if err != nil {
		t.Fatalf("Year: %v", err)
	}
	if dt.Year == nil || *dt.Year != 2024 || dt.Month == nil || *dt.Month != 3 || dt.Day == nil || *dt.Day != 5 {
		t.Fatalf("got %+v", dt)
	}
}

func TestDateDDMM(t *testing.T) {
	// TDAT is DDMM with no year.
	dt, err := Date("0503", trap.Skip{})
	if err != nil {
		t.Fatalf("Date: %v", err)
	}
	if dt.Year != nil {
		t.Fatalf("expected no year, got %v", *dt.Year)
	}
	if dt.Month == nil || *dt.Month != 3 || dt.Day == nil || *dt.Day != 5 {
		t.Fatalf("got %+v", dt)
	}
}

func TestTimeOnlyHHMM(t *testing.T) {
	d, err := TimeOnly("1430")
	if err != nil {
		t.Fatalf("TimeOnly: %v", err)
	}
	if d.Hours() != 14.5 {
		t.Fatalf("got %v", d)
	}
}

func TestTimeOnlyColonForm(t *testing.T) {
	d, err := TimeOnly("01:02:03")
	if err != nil {
		t.Fatalf("TimeOnly: %v", err)
	}
	want := 1*3600 + 2*60 + 3
	if int(d.Seconds()) != want {
		t.Fatalf("got %v, want %ds", d, want)
	}
}
