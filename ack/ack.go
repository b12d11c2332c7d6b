package ack

import (
	"errors"
	"fmt"
	"time"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/buildertree"
)

// Errors returned by the ACK builder.
var (
	// ErrNilMessage indicates a nil message was provided.
	ErrNilMessage = errors.New("nil message")

	// ErrMissingControlID indicates the original message has no control ID.
	ErrMissingControlID = errors.New("original message missing control ID (MSH-10)")

	// ErrMissingMSH indicates the original message has no MSH segment.
	ErrMissingMSH = errors.New("original message missing MSH segment")

	// ErrInvalidACKCode indicates an invalid acknowledgment code was provided.
	ErrInvalidACKCode = errors.New("invalid acknowledgment code")
)

// Builder creates HL7 acknowledgment messages from original messages.
// It handles the construction of MSH, MSA, and optional ERR segments.
type Builder interface {
	// Accept creates an acceptance ACK (AA) for the original message.
	// The ACK message will have:
	//   - MSH segment with swapped sending/receiving applications
	//   - MSA segment with code "AA" and original message control ID
	Accept(original hl7tree.Element) (hl7tree.Element, error)

	// Reject creates a rejection ACK (AR) for the original message.
	// The ACK message will have:
	//   - MSH segment with swapped sending/receiving applications
	//   - MSA segment with code "AR" and original message control ID
	//   - Optional reason text in MSA-3
	Reject(original hl7tree.Element, reason string) (hl7tree.Element, error)

	// Error creates an error ACK (AE) for the original message.
	// The ACK message will have:
	//   - MSH segment with swapped sending/receiving applications
	//   - MSA segment with code "AE" and original message control ID
	//   - Error message from err.Error() in MSA-3
	//   - ERR segment with error details
	Error(original hl7tree.Element, err error) (hl7tree.Element, error)

	// Custom creates an ACK with fully customized acknowledgment data.
	// Use this for advanced scenarios requiring specific error codes,
	// error locations, or non-standard acknowledgment handling.
	Custom(original hl7tree.Element, ack ACK) (hl7tree.Element, error)
}

// builder is the concrete implementation of Builder.
type builder struct {
	// messageFactory creates the blank message tree an ACK is written into.
	// If nil, a buildertree-backed message is used.
	messageFactory MessageFactory

	// timeFunc returns the current time. Used for testing.
	timeFunc func() time.Time

	// controlIDFunc generates unique control IDs for ACK messages.
	// If nil, uses timestamp-based generation.
	controlIDFunc func() string
}

// MessageFactory creates the blank message tree an ACK is built into. This
// allows substituting a test double for the default buildertree-backed
// implementation.
type MessageFactory interface {
	// NewMessage creates a new, empty message configured with delims.
	NewMessage(delims hl7tree.Delimiters) hl7tree.Element
}

// messageFactoryFunc adapts a plain function to MessageFactory.
type messageFactoryFunc func(hl7tree.Delimiters) hl7tree.Element

func (f messageFactoryFunc) NewMessage(delims hl7tree.Delimiters) hl7tree.Element {
	return f(delims)
}

// defaultMessageFactory builds ACK messages on the builder-tree backend,
// which is designed to start empty and grow its sparse segment/field maps on
// write — exactly what an ACK, with no source text to parse, needs.
var defaultMessageFactory MessageFactory = messageFactoryFunc(func(delims hl7tree.Delimiters) hl7tree.Element {
	return buildertree.NewMessageBuilder(buildertree.WithDelimiters(delims))
})

// Option configures a Builder.
type Option func(*builder)

// WithMessageFactory sets a custom message factory.
func WithMessageFactory(factory MessageFactory) Option {
	return func(b *builder) {
		b.messageFactory = factory
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(b *builder) {
		b.timeFunc = fn
	}
}

// WithControlIDFunc sets a custom control ID generator.
func WithControlIDFunc(fn func() string) Option {
	return func(b *builder) {
		b.controlIDFunc = fn
	}
}

// NewBuilder creates a new ACK Builder with the given options.
func NewBuilder(opts ...Option) Builder {
	b := &builder{
		timeFunc:       time.Now,
		messageFactory: defaultMessageFactory,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.controlIDFunc == nil {
		b.controlIDFunc = func() string {
			return fmt.Sprintf("ACK%d", b.timeFunc().UnixNano())
		}
	}

	return b
}

// findMSH returns the first segment in msg whose type code is "MSH".
func findMSH(msg hl7tree.Element) (hl7tree.Element, bool) {
	for i := 1; i <= msg.Count(); i++ {
		seg := msg.At(i)
		if seg.At(0).Value() == "MSH" {
			return seg, true
		}
	}
	return nil, false
}

// Accept creates an acceptance ACK (AA) for the original message.
func (b *builder) Accept(original hl7tree.Element) (hl7tree.Element, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	msh, ok := findMSH(original)
	if !ok {
		return nil, ErrMissingMSH
	}

	controlID := msh.At(10).Value()
	if controlID == "" {
		return nil, ErrMissingControlID
	}

	return b.Custom(original, NewAcceptACK(controlID))
}

// Reject creates a rejection ACK (AR) for the original message.
func (b *builder) Reject(original hl7tree.Element, reason string) (hl7tree.Element, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	msh, ok := findMSH(original)
	if !ok {
		return nil, ErrMissingMSH
	}

	controlID := msh.At(10).Value()
	if controlID == "" {
		return nil, ErrMissingControlID
	}

	return b.Custom(original, NewRejectACK(controlID, reason))
}

// Error creates an error ACK (AE) for the original message.
func (b *builder) Error(original hl7tree.Element, err error) (hl7tree.Element, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	msh, ok := findMSH(original)
	if !ok {
		return nil, ErrMissingMSH
	}

	controlID := msh.At(10).Value()
	if controlID == "" {
		return nil, ErrMissingControlID
	}

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	ack := NewErrorACK(controlID, "207", errMsg) // 207 = Application internal error
	return b.Custom(original, ack)
}

// Custom creates an ACK with fully customized acknowledgment data.
func (b *builder) Custom(original hl7tree.Element, ack ACK) (hl7tree.Element, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	if !ack.Code.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidACKCode, ack.Code)
	}

	originalMSH, ok := findMSH(original)
	if !ok {
		return nil, ErrMissingMSH
	}

	delims := hl7tree.DefaultDelimiters()
	if d, err := hl7tree.ParseDelimiters([]byte(originalMSH.Value())); err == nil {
		delims = d
	}

	return b.buildACKMessage(originalMSH, *delims, ack)
}

// buildACKMessage constructs the complete ACK message.
func (b *builder) buildACKMessage(originalMSH hl7tree.Element, delims hl7tree.Delimiters, ack ACK) (hl7tree.Element, error) {
	msg := b.messageFactory.NewMessage(delims)

	if err := b.populateMSH(msg.At(1), originalMSH, delims, ack); err != nil {
		return nil, fmt.Errorf("building MSH segment: %w", err)
	}

	if err := msg.At(2).SetValue("MSA"); err != nil {
		return nil, fmt.Errorf("adding MSA segment: %w", err)
	}
	if err := b.populateMSA(msg.At(2), ack); err != nil {
		return nil, fmt.Errorf("building MSA segment: %w", err)
	}

	if ack.NeedsERRSegment() {
		if err := msg.At(3).SetValue("ERR"); err != nil {
			return nil, fmt.Errorf("adding ERR segment: %w", err)
		}
		if err := populateERR(msg.At(3), ack); err != nil {
			return nil, fmt.Errorf("building ERR segment: %w", err)
		}
	}

	return msg, nil
}

// populateMSH fills in seg (the ACK's own MSH, already seeded with field
// separator and encoding characters) from originalMSH, swapping sending and
// receiving applications/facilities.
func (b *builder) populateMSH(seg hl7tree.Element, originalMSH hl7tree.Element, delims hl7tree.Delimiters, _ ACK) error {
	// Swap sending and receiving applications
	// Original MSH-3 (Sending App) -> ACK MSH-5 (Receiving App)
	// Original MSH-4 (Sending Facility) -> ACK MSH-6 (Receiving Facility)
	// Original MSH-5 (Receiving App) -> ACK MSH-3 (Sending App)
	// Original MSH-6 (Receiving Facility) -> ACK MSH-4 (Sending Facility)

	originalSendingApp := originalMSH.At(3).Value()
	originalSendingFacility := originalMSH.At(4).Value()
	originalReceivingApp := originalMSH.At(5).Value()
	originalReceivingFacility := originalMSH.At(6).Value()

	// MSH-3: Sending Application (was receiving)
	if err := seg.At(3).SetValue(originalReceivingApp); err != nil {
		return fmt.Errorf("setting MSH-3: %w", err)
	}

	// MSH-4: Sending Facility (was receiving)
	if err := seg.At(4).SetValue(originalReceivingFacility); err != nil {
		return fmt.Errorf("setting MSH-4: %w", err)
	}

	// MSH-5: Receiving Application (was sending)
	if err := seg.At(5).SetValue(originalSendingApp); err != nil {
		return fmt.Errorf("setting MSH-5: %w", err)
	}

	// MSH-6: Receiving Facility (was sending)
	if err := seg.At(6).SetValue(originalSendingFacility); err != nil {
		return fmt.Errorf("setting MSH-6: %w", err)
	}

	// MSH-7: Date/Time of Message
	timestamp := b.timeFunc().Format("20060102150405")
	if err := seg.At(7).SetValue(timestamp); err != nil {
		return fmt.Errorf("setting MSH-7: %w", err)
	}

	// MSH-9: Message Type (ACK)
	// Format: ACK^<trigger event from original>
	ackMsgType := "ACK"
	if triggerEvent := originalMSH.At(9).At(1).At(2).Value(); triggerEvent != "" {
		ackMsgType = fmt.Sprintf("ACK%c%s", delims.Component, triggerEvent)
	}
	if err := seg.At(9).SetValue(ackMsgType); err != nil {
		return fmt.Errorf("setting MSH-9: %w", err)
	}

	// MSH-10: Message Control ID (unique for the ACK)
	controlID := b.controlIDFunc()
	if err := seg.At(10).SetValue(controlID); err != nil {
		return fmt.Errorf("setting MSH-10: %w", err)
	}

	// MSH-11: Processing ID (copy from original)
	if processingID := originalMSH.At(11).Value(); processingID != "" {
		if err := seg.At(11).SetValue(processingID); err != nil {
			return fmt.Errorf("setting MSH-11: %w", err)
		}
	}

	// MSH-12: Version ID (copy from original)
	if versionID := originalMSH.At(12).Value(); versionID != "" {
		if err := seg.At(12).SetValue(versionID); err != nil {
			return fmt.Errorf("setting MSH-12: %w", err)
		}
	}

	return nil
}

// populateMSA fills in the MSA (Message Acknowledgment) segment.
func (b *builder) populateMSA(seg hl7tree.Element, ack ACK) error {
	// MSA-1: Acknowledgment Code
	if err := seg.At(1).SetValue(string(ack.Code)); err != nil {
		return fmt.Errorf("setting MSA-1: %w", err)
	}

	// MSA-2: Message Control ID (from original message)
	if err := seg.At(2).SetValue(ack.ControlID); err != nil {
		return fmt.Errorf("setting MSA-2: %w", err)
	}

	// MSA-3: Text Message (optional)
	if ack.TextMessage != "" {
		if err := seg.At(3).SetValue(ack.TextMessage); err != nil {
			return fmt.Errorf("setting MSA-3: %w", err)
		}
	}

	return nil
}

// populateERR fills in the ERR (Error) segment for error/reject ACKs.
func populateERR(seg hl7tree.Element, ack ACK) error {
	// ERR-1: Error Code and Location (HL7 v2.3 and earlier)
	// For backward compatibility, we set this if ErrorLocation is provided
	if ack.ErrorLocation != "" {
		if err := seg.At(1).SetValue(ack.ErrorLocation); err != nil {
			return fmt.Errorf("setting ERR-1: %w", err)
		}
	}

	// ERR-2: Error Location (HL7 v2.4+)
	// This is a more structured location in newer versions
	if ack.ErrorLocation != "" {
		if err := seg.At(2).SetValue(ack.ErrorLocation); err != nil {
			return fmt.Errorf("setting ERR-2: %w", err)
		}
	}

	// ERR-3: HL7 Error Code (HL7 v2.5+)
	if ack.ErrorCode != "" {
		if err := seg.At(3).SetValue(ack.ErrorCode); err != nil {
			return fmt.Errorf("setting ERR-3: %w", err)
		}
	}

	// ERR-4: Severity (HL7 v2.5+)
	if ack.Severity != "" {
		if err := seg.At(4).SetValue(ack.Severity); err != nil {
			return fmt.Errorf("setting ERR-4: %w", err)
		}
	}

	// ERR-7: Diagnostic Information (HL7 v2.5+)
	if ack.ErrorMessage != "" {
		if err := seg.At(7).SetValue(ack.ErrorMessage); err != nil {
			return fmt.Errorf("setting ERR-7: %w", err)
		}
	}

	return nil
}
