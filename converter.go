package hl7tree

import "time"

// Converter exposes typed views over an Element's string value. Getters
// that cannot parse the underlying value return the type's neutral value
// (zero, false, or the zero time.Time) and ok=false, without an error,
// unless Strict() was called — in that case the getter instead returns
// ErrConversionFailure through the paired error-returning method.
//
// Setters always serialize through the canonical HL7 lexical form:
// YYYYMMDD for Date, YYYYMMDDHHMMSS for DateTime, '.' as the decimal
// separator for Decimal, and unescaped text for Text.
type Converter interface {
	// Strict returns a Converter whose getters return ErrConversionFailure
	// instead of silently yielding the neutral value on a parse failure.
	Strict() Converter

	Int() (int, bool)
	SetInt(v int) error

	Decimal() (float64, bool)
	SetDecimal(v float64) error

	Date() (time.Time, bool)
	SetDate(v time.Time) error

	DateTime() (time.Time, bool)
	SetDateTime(v time.Time) error

	Bool() (bool, bool)
	SetBool(v bool) error

	// Text returns the unescaped string value; it never fails to parse.
	Text() string
	SetText(v string) error

	// Err returns the conversion error from the most recent strict getter,
	// or nil if the converter is not in strict mode or the last getter
	// succeeded.
	Err() error
}
