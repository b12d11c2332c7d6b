// Package convert implements the typed-view logic behind hl7tree.Converter,
// shared by dividertree and buildertree so both backends format and parse
// HL7 scalars identically.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elanza-health/hl7tree"
)

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102150405"
)

// Accessor is the minimal element surface the converter needs: read and
// write the raw string value it is bound to, plus the element's own
// delimiter-aware escape/unescape pair for Text/SetText.
type Accessor struct {
	Get func() string
	Set func(string) error

	// Escape and Unescape encode/decode using the bound element's delimiter
	// set. Text needs them to hand back plain text instead of HL7-escaped
	// wire form; SetText needs them to store escaped wire form from plain
	// text. A nil Escape or Unescape is treated as the identity function.
	Escape   func(string) string
	Unescape func(string) string
}

// View is the concrete hl7tree.Converter implementation. It is returned as
// a *View from dividertree/buildertree's As() methods, wrapping an Accessor.
type View struct {
	acc    Accessor
	strict bool
	err    error
}

// New returns a non-strict View bound to acc.
func New(acc Accessor) *View {
	return &View{acc: acc}
}

// Strict returns a copy of v that reports parse failures via Err/ok instead
// of silently returning the neutral value.
func (v *View) Strict() hl7tree.Converter {
	return &View{acc: v.acc, strict: true}
}

// Err returns the error from the most recent strict getter.
func (v *View) Err() error { return v.err }

func (v *View) fail(field string, cause error) {
	if !v.strict {
		return
	}
	v.err = &hl7tree.Error{Kind: hl7tree.KindConversionFailure, Message: fmt.Sprintf("%s: %v", field, cause), Cause: cause}
}

// Int parses the element's value as a base-10 integer.
func (v *View) Int() (int, bool) {
	v.err = nil
	s := strings.TrimSpace(v.acc.Get())
	if s == "" {
		return 0, !v.strict
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.fail("int", err)
		return 0, false
	}
	return n, true
}

// SetInt formats n in base 10.
func (v *View) SetInt(n int) error {
	return v.acc.Set(strconv.Itoa(n))
}

// Decimal parses the element's value as a decimal number using '.' as the
// separator, per the canonical HL7 numeric lexical form.
func (v *View) Decimal() (float64, bool) {
	v.err = nil
	s := strings.TrimSpace(v.acc.Get())
	if s == "" {
		return 0, !v.strict
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v.fail("decimal", err)
		return 0, false
	}
	return f, true
}

// SetDecimal formats f with '.' as the decimal separator, trimming
// insignificant trailing zeroes.
func (v *View) SetDecimal(f float64) error {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return v.acc.Set(s)
}

// Date parses the element's value as an HL7 DTM date (YYYYMMDD, optionally
// truncated to year or year-month per the DTM precision rules).
func (v *View) Date() (time.Time, bool) {
	v.err = nil
	s := strings.TrimSpace(v.acc.Get())
	if s == "" {
		return time.Time{}, !v.strict
	}
	t, err := parseDTM(s, dateLayout)
	if err != nil {
		v.fail("date", err)
		return time.Time{}, false
	}
	return t, true
}

// SetDate formats t as YYYYMMDD in UTC.
func (v *View) SetDate(t time.Time) error {
	return v.acc.Set(t.UTC().Format(dateLayout))
}

// DateTime parses the element's value as an HL7 DTM timestamp
// (YYYYMMDDHHMMSS, optionally with a fractional-seconds suffix).
func (v *View) DateTime() (time.Time, bool) {
	v.err = nil
	s := strings.TrimSpace(v.acc.Get())
	if s == "" {
		return time.Time{}, !v.strict
	}
	base, _, _ := strings.Cut(s, ".")
	t, err := parseDTM(base, dateTimeLayout)
	if err != nil {
		v.fail("datetime", err)
		return time.Time{}, false
	}
	return t, true
}

// SetDateTime formats t as YYYYMMDDHHMMSS in UTC.
func (v *View) SetDateTime(t time.Time) error {
	return v.acc.Set(t.UTC().Format(dateTimeLayout))
}

// Bool parses the element's value as an HL7 boolean (Y/N, y/n, true/false).
func (v *View) Bool() (bool, bool) {
	v.err = nil
	s := strings.TrimSpace(v.acc.Get())
	switch strings.ToUpper(s) {
	case "":
		return false, !v.strict
	case "Y", "YES", "TRUE", "T", "1":
		return true, true
	case "N", "NO", "FALSE", "F", "0":
		return false, true
	default:
		v.fail("bool", fmt.Errorf("unrecognized boolean literal %q", s))
		return false, false
	}
}

// SetBool formats b as the HL7 boolean literal Y or N.
func (v *View) SetBool(b bool) error {
	if b {
		return v.acc.Set("Y")
	}
	return v.acc.Set("N")
}

// Text returns the element's value with any HL7 escape sequences decoded
// back to plain text; it never fails.
func (v *View) Text() string {
	v.err = nil
	s := v.acc.Get()
	if v.acc.Unescape != nil {
		return v.acc.Unescape(s)
	}
	return s
}

// SetText encodes value's delimiter and escape characters into HL7 escape
// sequences before storing it.
func (v *View) SetText(value string) error {
	if v.acc.Escape != nil {
		value = v.acc.Escape(value)
	}
	return v.acc.Set(value)
}

// parseDTM parses an HL7 DTM string that may be truncated to a prefix of
// layout (e.g. "2024" for a YYYYMMDD layout means year precision).
func parseDTM(s, layout string) (time.Time, error) {
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	return time.Parse(layout[:len(s)], s)
}
