// Package parse provides a thin façade that turns raw HL7 v2.x message
// bytes into an [hl7tree.Element], for collaborators (mllp, ack, marshal)
// that want a single entry point rather than calling dividertree directly.
//
// # Basic Usage
//
// Parse a message from bytes:
//
//	p := parse.New()
//	msg, err := p.Parse(data)
//	if err != nil {
//	    log.Fatal("parse error:", err)
//	}
//
//	msgType := msg.At(1).At(9).Value()  // MSH-9, e.g., "ADT^A01"
//	controlID := msg.At(1).At(10).Value() // MSH-10
//
// # Parser Options
//
// The parser supports functional options for configuration:
//
//	// Enable strict parsing mode
//	p := parse.New(parse.WithStrictMode(true))
//
//	// Allow empty segments
//	p := parse.New(parse.WithAllowEmptySegments(true))
//
//	// Set DoS protection limits
//	p := parse.New(
//	    parse.WithMaxSegments(500),
//	    parse.WithMaxFieldLength(32768),
//	)
//
// # Delimiter Detection
//
// Delimiters are always detected from the message's own MSH segment, per
// the element tree's lazy re-derivation: MSH-1 (the character right after
// "MSH") is the field separator, and MSH-2 carries the remaining encoding
// characters (component, repetition, escape, subcomponent, [truncation]).
//
// For standard HL7 messages, delimiters are typically:
//
//	MSH|^~\&|...
//
// Where | is the field separator, ^ is component, ~ is repetition,
// \ is escape, and & is subcomponent.
//
// # Strict Mode
//
// When strict mode is enabled, the parser performs additional validation:
//   - Empty segments are rejected rather than skipped
//
// In non-strict mode (default), the parser is more lenient and will
// accept messages with minor formatting issues.
//
// # DoS Protection
//
// The parser includes built-in protection against denial-of-service attacks:
//   - Maximum segment count (default: 1000)
//   - Maximum field length (default: 65536 bytes)
//
// These limits prevent maliciously crafted messages from consuming
// excessive memory or CPU time.
//
// # Error Handling
//
// Common error conditions:
//   - Missing or invalid MSH segment
//   - Invalid delimiters
//   - Segment count exceeds maximum
//   - Field length exceeds maximum
package parse
