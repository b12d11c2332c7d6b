package dividertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
)

// span is an absolute (offset, length) range within a buffer's rune slice.
type span struct {
	offset int
	length int
}

func (s span) end() int { return s.offset + s.length }

// cursor is the generic string-divider node (C3): a lazy, versioned view
// over a shared buffer that splits its own span at delim into subdivisions.
// Every level-specific type (message, segment, field, ...) embeds a cursor
// and adds the quirks particular to that level (MSH special-casing, the
// segment type code, leaf behavior).
//
// A cursor never holds offsets directly; ownSpan is re-derived from the
// parent's divisions on every call, so a cursor stays valid across any
// number of ancestor mutations without being reconstructed.
type cursor struct {
	buf    *buffer
	parent *cursor // nil only for the message root
	pIdx   int     // 0-based index into parent.divisions()
	delim  rune    // delimiter splitting THIS node's own span; 0 for a leaf

	// delimFn, when set, overrides delim with a value re-read from the
	// message header on every call (field/repetition/component/segment
	// delimiters are declared in MSH and may be edited at runtime).
	delimFn func() rune

	cachedVer  uint64
	haveCache  bool
	cachedDivs []span

	// custom overrides the default delim-split of ownSpan for nodes whose
	// division logic isn't a plain split: a segment's fields (the MSH
	// header asymmetry) and MSH field 2 (kept atomic, never subdivided).
	custom func() []span

	children map[int]any // lazily constructed child wrappers, keyed by pIdx
}

func newRootCursor(buf *buffer, delim rune) *cursor {
	return &cursor{buf: buf, delim: delim, children: map[int]any{}}
}

func (c *cursor) childCursor(pIdx int, delim rune) *cursor {
	return &cursor{buf: c.buf, parent: c, pIdx: pIdx, delim: delim, children: map[int]any{}}
}

// effDelim returns the delimiter in effect for this cursor right now.
func (c *cursor) effDelim() rune {
	if c.delimFn != nil {
		return c.delimFn()
	}
	return c.delim
}

// ownSpan resolves this cursor's current absolute span by reading the
// parent's (possibly just-recomputed) division list. The message root's
// span is the whole buffer.
func (c *cursor) ownSpan() span {
	if c.parent == nil {
		return span{0, len(c.buf.runes)}
	}
	divs := c.parent.divisions()
	if c.pIdx >= 0 && c.pIdx < len(divs) {
		return divs[c.pIdx]
	}
	// Not yet materialized: a zero-length span positioned at the end of the
	// parent's own span, so a subsequent Pad/SetValue can append in place.
	p := c.parent.ownSpan()
	return span{p.end(), 0}
}

// ensureSpan is like ownSpan but, when this cursor does not yet exist in
// its parent's divisions, materializes it first by padding the parent
// (recursively up the chain) so writes land inside a real subdivision
// instead of merging into whatever the parent's span currently ends with.
func (c *cursor) ensureSpan() span {
	if c.parent == nil {
		return span{0, len(c.buf.runes)}
	}
	divs := c.parent.divisions()
	if c.pIdx >= 0 && c.pIdx < len(divs) {
		return divs[c.pIdx]
	}
	divs = c.parent.padTo(c.pIdx + 1)
	return divs[c.pIdx]
}

// divisions returns this cursor's own subdivisions, splitting its current
// span on delim. The result is cached against buf.version.
func (c *cursor) divisions() []span {
	if c.haveCache && c.cachedVer == c.buf.version {
		return c.cachedDivs
	}
	if c.custom != nil {
		c.cachedDivs = c.custom()
	} else {
		sp := c.ownSpan()
		c.cachedDivs = splitSpan(c.buf.runes, sp, c.effDelim())
	}
	c.cachedVer = c.buf.version
	c.haveCache = true
	return c.cachedDivs
}

// splitSpan splits buffer[sp.offset:sp.end()] on delim into len(occurrences)+1
// absolute spans. A delim of 0 means "no splitting" (leaf): the whole span is
// returned as the sole division.
func splitSpan(runes []rune, sp span, delim rune) []span {
	if delim == 0 {
		return []span{sp}
	}
	divs := make([]span, 0, 4)
	start := sp.offset
	for i := sp.offset; i < sp.end(); i++ {
		if runes[i] == delim {
			divs = append(divs, span{start, i - start})
			start = i + 1
		}
	}
	divs = append(divs, span{start, sp.end() - start})
	return divs
}

func (c *cursor) value() string {
	sp := c.ownSpan()
	return string(c.buf.runes[sp.offset:sp.end()])
}

// setValue assigns v as this cursor's own content, padding the parent's
// divisions first if this cursor does not yet exist (sparse write).
func (c *cursor) setValue(v string) error {
	if c.parent == nil {
		c.buf.replace(0, len(c.buf.runes), v)
		return nil
	}
	sp := c.ensureSpan()
	c.buf.replace(sp.offset, sp.length, v)
	return nil
}

// count is the 1-based index of the last non-empty subdivision.
func (c *cursor) count() int {
	divs := c.divisions()
	last := 0
	for i, d := range divs {
		if d.length > 0 {
			last = i + 1
		}
	}
	return last
}

// padTo ensures this cursor has at least n subdivisions by appending empty
// ones (and the delimiters separating them) at the end of its own span.
func (c *cursor) padTo(n int) []span {
	divs := c.divisions()
	if len(divs) >= n {
		return divs
	}
	need := n - len(divs)
	sp := c.ensureSpan()
	c.buf.replace(sp.end(), 0, strings.Repeat(string(c.effDelim()), need))
	return c.divisions()
}

// deleteDivisionAt removes subdivision i0 (0-based) and one adjacent
// delimiter, per the C3 Delete contract: a no-op if i0 is out of range or
// the subdivision is already empty.
func (c *cursor) deleteDivisionAt(i0 int) {
	divs := c.divisions()
	if i0 < 0 || i0 >= len(divs) {
		return
	}
	d := divs[i0]
	if d.length == 0 {
		return
	}
	switch {
	case i0 > 0:
		delimStart := d.offset - 1
		c.buf.replace(delimStart, d.end()-delimStart, "")
	case i0+1 < len(divs):
		next := divs[i0+1]
		c.buf.replace(d.offset, next.offset-d.offset, "")
	default:
		c.buf.replace(d.offset, d.length, "")
	}
}

// insertAt rewrites subdivision i0 to v + delim + previous content,
// preserving higher indices.
func (c *cursor) insertAt(i0 int, v string) {
	c.padTo(i0 + 1)
	divs := c.divisions()
	d := divs[i0]
	prev := string(c.buf.runes[d.offset:d.end()])
	c.buf.replace(d.offset, d.length, v+string(c.effDelim())+prev)
}

// moveAt relocates subdivision src to dst: delete then insert, per the C3
// Move contract.
func (c *cursor) moveAt(src, dst int) {
	divs := c.divisions()
	if src < 0 || src >= len(divs) {
		return
	}
	v := string(c.buf.runes[divs[src].offset:divs[src].end()])
	c.deleteDivisionAt(src)
	c.insertAt(dst, v)
}

// exists reports whether this cursor's own span currently has content.
func (c *cursor) exists() bool {
	return c.ownSpan().length > 0
}

// hasSignificantDescendants reports whether this cursor's value is non-empty
// once leading and trailing CRs are trimmed; delimiter characters count as
// content.
func (c *cursor) hasSignificantDescendants() bool {
	v := c.value()
	return strings.TrimFunc(v, func(r rune) bool {
		return r == '\r'
	}) != ""
}

// deleteSelf removes this cursor from its parent's divisions.
func (c *cursor) deleteSelf() error {
	if c.parent == nil {
		return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot delete the message root"}
	}
	c.parent.deleteDivisionAt(c.pIdx)
	return nil
}
