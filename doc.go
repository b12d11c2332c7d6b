// Package hl7tree defines the shared contract for HL7 v2.x message trees:
// delimiters, the uniform Element interface, typed conversion, escape
// sequences, and the location path syntax. Two independent backends
// implement Element over the same hierarchy:
//
//   - dividertree parses and mutates a live backing buffer in place,
//     computing descendant offsets lazily.
//   - buildertree maintains the hierarchy as independent mutable nodes
//     addressed by sparse index maps, serializing on demand.
//
// Application code written against Element works unmodified against either
// backend.
//
// # Message structure
//
//   - Message contains Segments (separated by CR)
//   - Segment contains Fields (separated by the field delimiter)
//   - Field contains FieldRepetitions (separated by the repetition delimiter)
//   - FieldRepetition contains Components (separated by the component delimiter)
//   - Component contains Subcomponents (separated by the subcomponent delimiter)
//
// Indices are 1-based at every level except segment index 0, which denotes
// the segment's three-letter type code.
//
// # Delimiters
//
// HL7 v2.x messages declare their delimiters in the MSH segment:
//   - MSH-1: the field separator itself (typically |)
//   - MSH-2: the remaining encoding characters, in the order component,
//     repetition, escape, subcomponent (typically ^~\&)
//
// # Escape sequences
//
// Special characters within data values are represented using escape
// sequences relative to the message's own delimiter set:
//   - \F\ for the field separator
//   - \S\ for the component separator
//   - \T\ for the subcomponent separator
//   - \R\ for the repetition separator
//   - \E\ for the escape character
//   - \Xhh...\ for hexadecimal data
//   - \.br\ for line breaks
//
// # Location syntax
//
// Location and ParseLocation address a value within a message using the
// path syntax SEG[idx].field[rep].component.subcomponent, used by the
// validate and marshal packages to address fields without threading
// Element references through call sites.
package hl7tree
