package segments

import (
	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/buildertree"
)

// getFieldValue extracts a string value from a segment field at the given
// position. Returns an empty string if the field does not exist.
func getFieldValue(seg hl7tree.Element, fieldNum int) string {
	f := seg.At(fieldNum)
	if !f.Exists() {
		return ""
	}
	return f.Value()
}

// buildSegmentData constructs a segment string from a name and slice of
// field values. Empty trailing fields are omitted to avoid unnecessary
// trailing delimiters.
func buildSegmentData(name string, fields []string, delims *hl7tree.Delimiters) string {
	if delims == nil {
		delims = hl7tree.DefaultDelimiters()
	}

	fieldSep := string(delims.Field)

	lastNonEmpty := -1
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] != "" {
			lastNonEmpty = i
			break
		}
	}

	data := name
	for i := 0; i <= lastNonEmpty; i++ {
		data += fieldSep + fields[i]
	}

	return data
}

// parseSegmentData wraps a single segment's raw text as an hl7tree.Element,
// split against delims directly rather than re-derived from content — the
// caller's delimiters govern even when the segment is not itself an MSH.
func parseSegmentData(data string, delims *hl7tree.Delimiters) hl7tree.Element {
	if delims == nil {
		delims = hl7tree.DefaultDelimiters()
	}
	b := buildertree.NewMessageBuilder(buildertree.WithDelimiters(*delims))
	b.Segment(1, data)
	return b.At(1)
}
