// Package parse provides a thin façade that turns raw HL7 v2.x bytes into
// an hl7tree.Element, for collaborators (mllp, ack, marshal) that want a
// single entry point rather than calling dividertree directly.
package parse

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/dividertree"
)

// MLLP (Minimal Lower Layer Protocol) framing bytes.
const (
	mllpStartByte = 0x0B // Vertical Tab (VT)
	mllpEndByte1  = 0x1C // File Separator (FS)
	mllpEndByte2  = 0x0D // Carriage Return (CR)
)

// Parser-specific errors.
var (
	// ErrTooManySegments is returned when the message exceeds maxSegments.
	ErrTooManySegments = errors.New("message exceeds maximum segment count")
	// ErrFieldTooLong is returned when a field exceeds maxFieldLength.
	ErrFieldTooLong = errors.New("field exceeds maximum length")
	// ErrContextCanceled is returned when the parsing context is canceled.
	ErrContextCanceled = errors.New("parsing canceled")
	// ErrEmptySegment is returned when an empty segment is found and not allowed.
	ErrEmptySegment = errors.New("empty segment not allowed")
)

// Parser defines the interface for HL7 message parsing. It always returns
// an hl7tree.Element rooted at a dividertree.Message, so callers that need
// the concrete parser-tree operations (Segments, TypeCode) can type-assert.
type Parser interface {
	// Parse parses raw HL7 message data into an Element tree.
	// The input data may include MLLP framing which will be stripped.
	Parse(data []byte) (hl7tree.Element, error)

	// ParseContext parses raw HL7 message data with context support.
	// Allows for cancellation during parsing of large messages.
	ParseContext(ctx context.Context, data []byte) (hl7tree.Element, error)
}

// parser is the concrete implementation of Parser.
type parser struct {
	config parserConfig
}

// New creates a new Parser with the given options.
func New(opts ...ParserOption) Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &parser{config: cfg}
}

// Parse parses raw HL7 message data into an Element tree.
func (p *parser) Parse(data []byte) (hl7tree.Element, error) {
	return p.ParseContext(context.Background(), data)
}

// ParseContext parses raw HL7 message data with context support.
func (p *parser) ParseContext(ctx context.Context, data []byte) (hl7tree.Element, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
	default:
	}

	data = stripMLLP(data)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, hl7tree.ErrEmptyMessage
	}

	if _, err := hl7tree.ParseDelimiters(data); err != nil {
		if errors.Is(err, hl7tree.ErrNotMSHSegment) {
			return nil, hl7tree.ErrMissingMSH
		}
		return nil, err
	}

	segmentData := p.splitSegments(data)
	if len(segmentData) > p.config.maxSegments {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManySegments, len(segmentData), p.config.maxSegments)
	}

	for i, sd := range segmentData {
		if i%100 == 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
			default:
			}
		}

		if len(bytes.TrimSpace(sd)) == 0 {
			if p.config.allowEmptySegments {
				continue
			}
			if p.config.strictMode {
				return nil, &hl7tree.ParseError{Message: ErrEmptySegment.Error(), Line: i + 1}
			}
			continue
		}

		if err := p.checkFieldLength(sd); err != nil {
			return nil, &hl7tree.ParseError{Message: err.Error(), Line: i + 1, Cause: err}
		}
	}

	msg, err := dividertree.NewMessage(string(data))
	if err != nil {
		return nil, err
	}

	if msg.Count() == 0 {
		return nil, hl7tree.ErrMissingMSH
	}
	if msg.At(1).At(0).Value() != "MSH" {
		return nil, hl7tree.ErrMissingMSH
	}

	return msg, nil
}

// stripMLLP removes MLLP framing from the data if present.
// MLLP format: <VT>message<FS><CR> where VT=0x0B, FS=0x1C, CR=0x0D
func stripMLLP(data []byte) []byte {
	if len(data) == 0 {
		return data
	}

	if data[0] == mllpStartByte {
		data = data[1:]
	}

	if len(data) >= 2 {
		if data[len(data)-2] == mllpEndByte1 && data[len(data)-1] == mllpEndByte2 {
			data = data[:len(data)-2]
		} else if data[len(data)-1] == mllpEndByte1 {
			data = data[:len(data)-1]
		}
	}

	return data
}

// splitSegments splits message data into individual segment byte slices
// for the DoS-protection pre-checks, ahead of the real parse. Empty
// segments are included so they can be detected.
func (p *parser) splitSegments(data []byte) [][]byte {
	terminator := byte(hl7tree.SegmentTerminator)
	var segments [][]byte
	start := 0

	for i := 0; i < len(data); i++ {
		if data[i] == terminator {
			segments = append(segments, data[start:i])
			start = i + 1
		}
	}

	if start < len(data) {
		remaining := bytes.TrimSpace(data[start:])
		if len(remaining) > 0 {
			segments = append(segments, remaining)
		}
	}

	return segments
}

// checkFieldLength validates that no field in segmentData exceeds the
// configured maximum length.
func (p *parser) checkFieldLength(segmentData []byte) error {
	fieldDelim := byte('|')
	if d, err := hl7tree.ParseDelimiters(segmentData); err == nil {
		fieldDelim = byte(d.Field)
	}
	start := 0
	fieldNum := 0

	for i := 0; i <= len(segmentData); i++ {
		if i == len(segmentData) || segmentData[i] == fieldDelim {
			fieldLen := i - start
			if fieldLen > p.config.maxFieldLength {
				return fmt.Errorf("%w: field %d is %d bytes, max %d",
					ErrFieldTooLong, fieldNum, fieldLen, p.config.maxFieldLength)
			}
			start = i + 1
			fieldNum++
		}
	}

	return nil
}
