package hl7tree

// Element is the uniform contract both the dividertree (parser) and
// buildertree backends implement, so navigation, reads, writes, escaping,
// and typed conversion work identically against either one.
//
// Index is 1-based at every level (segment index 0 denotes the segment's
// type code). Delimiter is the separator used between this element's own
// children, not between this element and its siblings.
type Element interface {
	// Value returns this element's string value: for a leaf, the literal
	// text; for a non-leaf, its children joined by Delimiter.
	Value() string

	// SetValue assigns this element's string value, resplitting it into
	// children on Delimiter.
	SetValue(value string) error

	// Values returns the string value of each existing child, in order.
	Values() []string

	// SetValues replaces all children with the given values, numbered from 1.
	SetValues(values []string) error

	// Index returns this element's 1-based position within its parent.
	Index() int

	// Delimiter returns the separator used between this element's children.
	// Leaf elements (Subcomponent) return 0.
	Delimiter() rune

	// Count returns the number of existing children. On the dividertree
	// backend this is the index of the last non-empty child: trailing empty
	// children are not counted, interior gaps are. On the buildertree
	// backend it is the highest child index present, which includes
	// trailing children whose value is empty.
	Count() int

	// At returns the child at the given 1-based index (0 for a segment's
	// type code). The returned Element always exists as a handle, even when
	// Exists() reports false for an unpopulated index.
	At(i int) Element

	// Exists reports whether this element currently has a non-empty value
	// or, for a non-leaf, at least one populated descendant.
	Exists() bool

	// HasSignificantDescendants reports whether any descendant carries a
	// non-empty value, i.e. whether trimming this element would lose data.
	HasSignificantDescendants() bool

	// Clone returns a detached copy of this element's subtree: an
	// independent root with no ancestor, whose own mutations never affect
	// the source and vice versa.
	Clone() Element

	// Delete removes this element from its parent, shifting the indices of
	// later siblings down by one.
	Delete() error

	// Escape encodes s using this element's delimiter set.
	Escape(s string) string

	// Unescape decodes s using this element's delimiter set.
	Unescape(s string) string

	// As returns a typed view over this element's value.
	As() Converter
}
