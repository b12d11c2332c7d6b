package convert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/elanza-health/hl7tree"
)

func newAccessor(initial string) (Accessor, func() string) {
	v := initial
	acc := Accessor{
		Get: func() string { return v },
		Set: func(s string) error { v = s; return nil },
	}
	return acc, func() string { return v }
}

// textAccessor wires Escape/Unescape with the field delimiter ("|" -> "\F\"),
// the same pairing a real backend's As() provides, so TestViewText and
// TestViewSetText exercise the round trip instead of passing strings through
// untouched.
func textAccessor(initial string) (Accessor, func() string) {
	v := initial
	return Accessor{
		Get:      func() string { return v },
		Set:      func(s string) error { v = s; return nil },
		Escape:   func(s string) string { return strings.ReplaceAll(s, "|", `\F\`) },
		Unescape: func(s string) string { return strings.ReplaceAll(s, `\F\`, "|") },
	}, func() string { return v }
}

func TestViewInt(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   int
		wantOk bool
	}{
		{name: "valid positive", value: "42", want: 42, wantOk: true},
		{name: "valid negative", value: "-7", want: -7, wantOk: true},
		{name: "empty is neutral", value: "", want: 0, wantOk: true},
		{name: "padded with spaces", value: "  5  ", want: 5, wantOk: true},
		{name: "not a number", value: "abc", want: 0, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, _ := newAccessor(tt.value)
			view := New(acc)
			got, ok := view.Int()
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("Int() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestViewSetInt(t *testing.T) {
	acc, get := newAccessor("")
	view := New(acc)
	if err := view.SetInt(123); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	if got := get(); got != "123" {
		t.Errorf("SetInt(123) stored %q, want \"123\"", got)
	}
}

func TestViewDecimal(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   float64
		wantOk bool
	}{
		{name: "valid decimal", value: "3.14", want: 3.14, wantOk: true},
		{name: "empty is neutral", value: "", want: 0, wantOk: true},
		{name: "integer value", value: "5", want: 5, wantOk: true},
		{name: "not a number", value: "xyz", want: 0, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, _ := newAccessor(tt.value)
			view := New(acc)
			got, ok := view.Decimal()
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("Decimal() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestViewSetDecimal(t *testing.T) {
	acc, get := newAccessor("")
	view := New(acc)
	if err := view.SetDecimal(2.5); err != nil {
		t.Fatalf("SetDecimal() error = %v", err)
	}
	if got := get(); got != "2.5" {
		t.Errorf("SetDecimal(2.5) stored %q, want \"2.5\"", got)
	}
}

func TestViewDate(t *testing.T) {
	acc, _ := newAccessor("20240315")
	view := New(acc)
	got, ok := view.Date()
	if !ok {
		t.Fatal("Date() ok = false, want true")
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Date() = %v, want %v", got, want)
	}
}

func TestViewDateTruncatedPrecision(t *testing.T) {
	acc, _ := newAccessor("2024")
	view := New(acc)
	got, ok := view.Date()
	if !ok {
		t.Fatal("Date() ok = false, want true")
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Date() = %v, want %v", got, want)
	}
}

func TestViewSetDate(t *testing.T) {
	acc, get := newAccessor("")
	view := New(acc)
	if err := view.SetDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SetDate() error = %v", err)
	}
	if got := get(); got != "20240315" {
		t.Errorf("SetDate() stored %q, want \"20240315\"", got)
	}
}

func TestViewDateTime(t *testing.T) {
	acc, _ := newAccessor("20240315143022")
	view := New(acc)
	got, ok := view.DateTime()
	if !ok {
		t.Fatal("DateTime() ok = false, want true")
	}
	want := time.Date(2024, 3, 15, 14, 30, 22, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateTime() = %v, want %v", got, want)
	}
}

func TestViewDateTimeWithFractionalSeconds(t *testing.T) {
	acc, _ := newAccessor("20240315143022.5")
	view := New(acc)
	got, ok := view.DateTime()
	if !ok {
		t.Fatal("DateTime() ok = false, want true")
	}
	want := time.Date(2024, 3, 15, 14, 30, 22, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateTime() = %v, want %v", got, want)
	}
}

func TestViewSetDateTime(t *testing.T) {
	acc, get := newAccessor("")
	view := New(acc)
	if err := view.SetDateTime(time.Date(2024, 3, 15, 14, 30, 22, 0, time.UTC)); err != nil {
		t.Fatalf("SetDateTime() error = %v", err)
	}
	if got := get(); got != "20240315143022" {
		t.Errorf("SetDateTime() stored %q, want \"20240315143022\"", got)
	}
}

func TestViewBool(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   bool
		wantOk bool
	}{
		{name: "Y", value: "Y", want: true, wantOk: true},
		{name: "lowercase y", value: "y", want: true, wantOk: true},
		{name: "N", value: "N", want: false, wantOk: true},
		{name: "true literal", value: "true", want: true, wantOk: true},
		{name: "empty is neutral", value: "", want: false, wantOk: true},
		{name: "unrecognized", value: "maybe", want: false, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, _ := newAccessor(tt.value)
			view := New(acc)
			got, ok := view.Bool()
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("Bool() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestViewSetBool(t *testing.T) {
	acc, get := newAccessor("")
	view := New(acc)
	if err := view.SetBool(true); err != nil {
		t.Fatalf("SetBool(true) error = %v", err)
	}
	if got := get(); got != "Y" {
		t.Errorf("SetBool(true) stored %q, want \"Y\"", got)
	}
	if err := view.SetBool(false); err != nil {
		t.Fatalf("SetBool(false) error = %v", err)
	}
	if got := get(); got != "N" {
		t.Errorf("SetBool(false) stored %q, want \"N\"", got)
	}
}

func TestViewText(t *testing.T) {
	acc, _ := textAccessor(`a\F\b`)
	view := New(acc)
	if got := view.Text(); got != "a|b" {
		t.Errorf("Text() = %q, want %q", got, "a|b")
	}
}

func TestViewSetText(t *testing.T) {
	acc, get := textAccessor("")
	view := New(acc)
	if err := view.SetText("a|b"); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}
	if got := get(); got != `a\F\b` {
		t.Errorf("SetText() stored %q, want %q", got, `a\F\b`)
	}
}

func TestViewStrictModeReturnsError(t *testing.T) {
	acc, _ := newAccessor("not-a-number")
	view := New(acc).Strict()

	got, ok := view.Int()
	if ok {
		t.Fatal("Int() ok = true in strict mode on bad input, want false")
	}
	if got != 0 {
		t.Errorf("Int() = %d, want 0", got)
	}

	err := view.Err()
	if err == nil {
		t.Fatal("Err() = nil after failed strict conversion, want non-nil")
	}
	var hlErr *hl7tree.Error
	if !errors.As(err, &hlErr) {
		t.Fatalf("Err() = %v, want *hl7tree.Error", err)
	}
	if hlErr.Kind != hl7tree.KindConversionFailure {
		t.Errorf("Err().Kind = %v, want KindConversionFailure", hlErr.Kind)
	}
}

func TestViewNonStrictModeNeverFails(t *testing.T) {
	acc, _ := newAccessor("not-a-number")
	view := New(acc)

	if _, ok := view.Int(); ok {
		t.Fatal("Int() ok = true on bad input, want false")
	}
	if err := view.Err(); err != nil {
		t.Errorf("Err() = %v in non-strict mode, want nil", err)
	}
}

func TestViewErrResetsOnSuccessfulGetter(t *testing.T) {
	acc, _ := newAccessor("not-a-number")
	view := New(acc).Strict()

	if _, ok := view.Int(); ok {
		t.Fatal("Int() ok = true on bad input, want false")
	}
	if view.Err() == nil {
		t.Fatal("Err() = nil after failed strict conversion, want non-nil")
	}

	_ = acc.Set("42")
	if _, ok := view.Int(); !ok {
		t.Fatal("Int() ok = false after fixing the underlying value, want true")
	}
	if view.Err() != nil {
		t.Errorf("Err() = %v after a successful getter, want nil", view.Err())
	}
}
