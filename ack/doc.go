// Package ack provides functionality for building HL7 v2.x acknowledgment (ACK) messages.
//
// ACK messages are used to confirm receipt and acceptance of HL7 messages.
// The package supports all standard acknowledgment codes:
//   - AA (Application Accept): Message accepted successfully
//   - AE (Application Error): Message contains errors but was received
//   - AR (Application Reject): Message rejected, not processed
//   - CA (Commit Accept): Message committed to storage
//   - CE (Commit Error): Commit failed with errors
//   - CR (Commit Reject): Commit rejected
//
// An ACK message consists of:
//   - MSH segment: Message header with swapped sending/receiving applications
//   - MSA segment: Message acknowledgment with code and original message control ID
//   - ERR segment (optional): Error details when acknowledgment indicates an error
//
// # Basic Usage
//
// Build a Builder once and reuse it for every incoming message:
//
//	b := ack.NewBuilder()
//
//	// Positive acknowledgment
//	ackMsg, err := b.Accept(original)
//
//	// Negative acknowledgment with a reason
//	ackMsg, err := b.Reject(original, "Unsupported message type")
//
//	// Error acknowledgment wrapping a Go error
//	ackMsg, err := b.Error(original, err)
//
// original is any hl7tree.Element holding the incoming message (typically a
// *dividertree.Message from dividertree.NewMessage). The returned ackMsg is a
// buildertree-backed message ready for encode.Encoder.Encode.
//
// # Custom Acknowledgments
//
// Custom accepts an ACK struct directly, for error codes, error locations, or
// acknowledgment codes beyond plain accept/reject:
//
//	ackMsg, err := b.Custom(original, ack.ACK{
//	    Code:          ack.ApplicationError,
//	    ControlID:     original control ID,
//	    TextMessage:   "Validation failed",
//	    ErrorCode:     "101",
//	    ErrorLocation: "PID-3-1",
//	    ErrorMessage:  "Patient ID is required",
//	    Severity:      "E",
//	})
//
// NewErrorACK, NewAcceptACK, and NewRejectACK build common ACK values; HasError
// and NeedsERRSegment decide whether an ERR segment belongs in the message.
//
// # Options
//
// NewBuilder accepts functional options:
//
//	b := ack.NewBuilder(
//	    ack.WithTimeFunc(func() time.Time { return fixedTime }),    // deterministic MSH-7
//	    ack.WithControlIDFunc(func() string { return nextID() }),   // custom MSH-10 generation
//	    ack.WithMessageFactory(myFactory),                          // substitute message backend
//	)
//
// WithMessageFactory is mainly useful for testing: the default factory builds
// on buildertree, which is also what callers get back from Accept/Reject/
// Error/Custom.
//
// # Example: Responding to an Incoming Message
//
//	msg, err := dividertree.NewMessage(incomingData)
//	if err != nil {
//	    return nil, fmt.Errorf("parse error: %w", err)
//	}
//
//	result := validator.Validate(msg)
//	if !result.Valid() {
//	    ackMsg, _ := b.Error(msg, fmt.Errorf("validation failed: %d errors", len(result.Errors())))
//	    return encode.New().Encode(ackMsg)
//	}
//
//	if err := process(msg); err != nil {
//	    ackMsg, _ := b.Error(msg, err)
//	    return encode.New().Encode(ackMsg)
//	}
//
//	ackMsg, _ := b.Accept(msg)
//	return encode.New().Encode(ackMsg)
//
// # Example ACK Message
//
// For an incoming ADT^A01 message, a successful ACK looks like:
//
//	MSH|^~\&|RECEIVING_APP|RECEIVING_FAC|SENDING_APP|SENDING_FAC|20240115120000||ACK^A01|ACK12345|P|2.5.1
//	MSA|AA|MSG12345
//
// An error ACK:
//
//	MSH|^~\&|RECEIVING_APP|RECEIVING_FAC|SENDING_APP|SENDING_FAC|20240115120000||ACK^A01|ACK12346|P|2.5.1
//	MSA|AE|MSG12345|Patient ID not found
//	ERR|||100|E|||Patient identifier is required in PID-3
package ack
