package dividertree

import "strings"

// buffer is the single backing character array a root element and every one
// of its descendants share. version increments on every mutation; dividers
// tag their cached subdivision list with the version they were computed
// against and recompute on mismatch, which is the only cache-invalidation
// mechanism in the tree (no descendant is ever notified directly).
type buffer struct {
	runes   []rune
	version uint64
}

func newBuffer(s string) *buffer {
	return &buffer{runes: []rune(normalizeLineEndings(s))}
}

// normalizeLineEndings converts CRLF to CR. LF-only input is left alone.
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r\n") {
		return s
	}
	return strings.ReplaceAll(s, "\r\n", "\r")
}

// replace performs the single in-place splice every mutating operation in
// this package funnels through, and bumps version so every outstanding
// divider in the tree knows to re-derive its offsets on next access.
func (b *buffer) replace(offset, length int, value string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.runes) {
		offset = len(b.runes)
	}
	end := offset + length
	if end > len(b.runes) {
		end = len(b.runes)
	}
	if end < offset {
		end = offset
	}

	inserted := []rune(value)
	next := make([]rune, 0, len(b.runes)-(end-offset)+len(inserted))
	next = append(next, b.runes[:offset]...)
	next = append(next, inserted...)
	next = append(next, b.runes[end:]...)
	b.runes = next
	b.version++
}

func (b *buffer) String() string {
	return string(b.runes)
}
