// Package parse provides a thin façade that turns raw HL7 v2.x bytes into
// an hl7tree.Element, for collaborators (mllp, ack, marshal) that want a
// single entry point rather than calling dividertree directly.
package parse

// Default parser configuration values.
const (
	defaultMaxSegments    = 1000  // DoS protection: maximum segments per message
	defaultMaxFieldLength = 65536 // DoS protection: maximum field length in bytes
)

// parserConfig holds the parser configuration.
type parserConfig struct {
	strictMode         bool // Enable strict parsing mode
	allowEmptySegments bool // Allow empty segments in messages
	maxSegments        int  // Maximum segments allowed (DoS protection)
	maxFieldLength     int  // Maximum field length allowed (DoS protection)
}

// defaultConfig returns a parser configuration with default values.
func defaultConfig() parserConfig {
	return parserConfig{
		strictMode:         false,
		allowEmptySegments: false,
		maxSegments:        defaultMaxSegments,
		maxFieldLength:     defaultMaxFieldLength,
	}
}

// ParserOption is a functional option for configuring the parser.
type ParserOption func(*parserConfig)

// WithStrictMode enables or disables strict parsing mode.
// In strict mode, the parser is more rigorous about HL7 compliance
// and will reject messages with minor formatting issues.
func WithStrictMode(strict bool) ParserOption {
	return func(c *parserConfig) {
		c.strictMode = strict
	}
}

// WithAllowEmptySegments configures whether empty segments are allowed.
// An empty segment is a blank line (nothing but whitespace between two
// segment terminators). When enabled, such segments are accepted even in
// strict mode; outside strict mode they are accepted either way.
func WithAllowEmptySegments(allow bool) ParserOption {
	return func(c *parserConfig) {
		c.allowEmptySegments = allow
	}
}

// WithMaxSegments sets the maximum number of segments allowed in a message.
// This is a DoS protection mechanism to prevent processing of maliciously
// large messages. Default is 1000.
func WithMaxSegments(limit int) ParserOption {
	return func(c *parserConfig) {
		if limit > 0 {
			c.maxSegments = limit
		}
	}
}

// WithMaxFieldLength sets the maximum field length allowed.
// This is a DoS protection mechanism to prevent processing of messages
// with excessively large fields. Default is 65536 bytes.
func WithMaxFieldLength(limit int) ParserOption {
	return func(c *parserConfig) {
		if limit > 0 {
			c.maxFieldLength = limit
		}
	}
}
