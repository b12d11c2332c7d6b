package mllp

import (
	"context"

	"github.com/elanza-health/hl7tree"
)

// Handler defines the interface for handling incoming HL7 messages.
//
// Implementations process the incoming message and return a response message
// (typically an ACK) or an error. The context can be used for cancellation
// and deadline propagation.
//
// Example implementation:
//
//	type MyHandler struct {
//	    db *sql.DB
//	}
//
//	func (h *MyHandler) HandleMessage(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error) {
//	    msgType := msg.At(1).At(9).Value()
//	    switch msgType {
//	    case "ADT^A01":
//	        return h.handleAdmission(ctx, msg)
//	    case "ORU^R01":
//	        return h.handleLabResult(ctx, msg)
//	    default:
//	        return nil, fmt.Errorf("unsupported message type: %s", msgType)
//	    }
//	}
type Handler interface {
	// HandleMessage processes an incoming HL7 message and returns a response.
	// The response is typically an ACK (acknowledgment) message.
	//
	// If the handler returns an error or a nil response, the server sends
	// nothing back for that message and goes on reading the connection.
	//
	// The server gives each call its own context, which is canceled only
	// after HandleMessage returns; a client disconnect or server shutdown
	// does not cancel it.
	HandleMessage(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error)
}

// HandlerFunc is an adapter type that allows ordinary functions to be used
// as message handlers.
//
// If f is a function with the appropriate signature, HandlerFunc(f) is a
// Handler that calls f.
//
// Example usage:
//
//	handler := mllp.HandlerFunc(func(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error) {
//	    // Process message and return ACK
//	    return ackBuilder.Accept(msg)
//	})
//
//	server := mllp.NewServer(mllp.WithHandler(handler))
type HandlerFunc func(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error)

// HandleMessage calls f(ctx, msg).
// This implements the Handler interface for HandlerFunc.
func (f HandlerFunc) HandleMessage(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error) {
	return f(ctx, msg)
}

// Ensure HandlerFunc implements Handler at compile time.
var _ Handler = HandlerFunc(nil)

// MiddlewareFunc defines a function that wraps a Handler to add behavior.
// Middleware can be used for logging, authentication, metrics, etc.
//
// Example middleware:
//
//	func LoggingMiddleware(logger *log.Logger) MiddlewareFunc {
//	    return func(next Handler) Handler {
//	        return HandlerFunc(func(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error) {
//	            start := time.Now()
//	            logger.Printf("Received message type: %s", msg.At(1).At(9).Value())
//	            resp, err := next.HandleMessage(ctx, msg)
//	            logger.Printf("Processed in %v", time.Since(start))
//	            return resp, err
//	        })
//	    }
//	}
type MiddlewareFunc func(Handler) Handler

// Chain applies middleware functions to a handler in the order provided.
// The first middleware in the slice will be the outermost wrapper.
//
// Example:
//
//	handler := mllp.Chain(
//	    baseHandler,
//	    LoggingMiddleware(logger),
//	    MetricsMiddleware(metrics),
//	    AuthMiddleware(auth),
//	)
func Chain(h Handler, middleware ...MiddlewareFunc) Handler {
	// Apply middleware in reverse order so the first middleware
	// in the slice becomes the outermost wrapper
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
