// Package mllp provides MLLP (Minimal Lower Layer Protocol) client and server
// implementations for HL7 v2.x message transport over TCP/IP.
//
// MLLP is the standard transport protocol for HL7 messages over TCP/IP. It
// defines a simple framing mechanism using control characters to delimit
// message boundaries.
//
// # MLLP Frame Format
//
// An MLLP frame consists of:
//   - Start Block: 0x0B (vertical tab, VT)
//   - HL7 Message Data
//   - End Block: 0x1C (file separator, FS)
//   - Carriage Return: 0x0D (CR)
//
// Frame structure:
//
//	<VT>...HL7 Message Data...<FS><CR>
//	 |                        |   |
//	 0x0B                   0x1C 0x0D
//
// # Server Usage
//
// Create an MLLP server to receive HL7 messages:
//
//	// Define message handler
//	ackBuilder := ack.NewBuilder()
//	handler := mllp.HandlerFunc(func(ctx context.Context, msg hl7tree.Element) (hl7tree.Element, error) {
//	    log.Printf("Received: %s", msg.At(1).At(9).Value())
//	    return ackBuilder.Accept(msg)
//	})
//
//	server := mllp.NewServer(
//	    mllp.WithHandler(handler),
//	    mllp.WithReadTimeout(60*time.Second),
//	    mllp.WithWriteTimeout(30*time.Second),
//	    mllp.WithMaxConnections(100),
//	)
//
//	listener, err := net.Listen("tcp", ":2575")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.Serve(listener); err != nil && !errors.Is(err, mllp.ErrServerClosed) {
//	    log.Fatal(err)
//	}
//
// # Client Usage
//
// Create an MLLP client to send HL7 messages:
//
//	// Connect immediately
//	client, err := mllp.Dial("localhost:2575",
//	    mllp.WithTimeout(10*time.Second),
//	    mllp.WithRetry(3, time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Send message and receive ACK
//	ackMsg, err := client.Send(ctx, msg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Check acknowledgment
//	ackCode := ackMsg.At(2).At(1).Value() // MSA-1
//	if ackCode != "AA" {
//	    log.Printf("message not accepted: %s", ackCode)
//	}
//
// NewClient defers the connection until the first Send; Dial connects
// immediately and returns an error if the server is unreachable.
//
// For fire-and-forget sends that don't wait on an ACK, use SendAsync:
//
//	if err := client.SendAsync(ctx, msg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Reading and Writing Frames
//
// For low-level control over framing without a full Client/Server, use
// Reader and Writer directly:
//
//	reader := mllp.NewReader(conn, mllp.MaxMessageSize)
//	for {
//	    data, err := reader.ReadMessage()
//	    if err != nil {
//	        if errors.Is(err, io.EOF) {
//	            break
//	        }
//	        log.Fatal(err)
//	    }
//	    // data contains the unwrapped HL7 message
//	    msg, _ := parser.Parse(data)
//	}
//
//	writer := mllp.NewWriter(conn)
//	if err := writer.WriteMessage(hl7Data); err != nil {
//	    log.Fatal(err)
//	}
//
// Frame and Unframe operate directly on byte slices without touching a
// connection, useful for tests or non-streaming transports:
//
//	framed := mllp.Frame(hl7Data)       // VT + data + FS + CR
//	raw, err := mllp.Unframe(framed)    // strips the framing back off
//
// # Error Handling
//
// MLLP operations return sentinel errors that can be matched with errors.Is:
//
//	_, err := client.Send(ctx, msg)
//	switch {
//	case errors.Is(err, mllp.ErrConnectionClosed):
//	    // reconnect and retry
//	case errors.Is(err, mllp.ErrMessageTooLarge):
//	    // message exceeded the configured maximum size
//	default:
//	    log.Printf("send failed: %v", err)
//	}
//
// # TLS Support
//
// Enable TLS for secure connections:
//
//	cert, _ := tls.LoadX509KeyPair("server.crt", "server.key")
//	tlsConfig := &tls.Config{
//	    Certificates: []tls.Certificate{cert},
//	    MinVersion:   tls.VersionTLS12,
//	}
//
//	server := mllp.NewServer(
//	    mllp.WithHandler(handler),
//	    mllp.WithTLSConfig(tlsConfig),
//	)
//
//	client, _ := mllp.Dial("localhost:2575",
//	    mllp.WithTLS(&tls.Config{MinVersion: tls.VersionTLS12}),
//	)
//
// # Graceful Shutdown
//
// Shutdown stops accepting new connections, waits for in-flight connections
// to finish, and force-closes anything still open once the context expires:
//
//	go func() {
//	    if err := server.Serve(listener); err != nil && !errors.Is(err, mllp.ErrServerClosed) {
//	        log.Printf("server stopped: %v", err)
//	    }
//	}()
//
//	sigCh := make(chan os.Signal, 1)
//	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
//	<-sigCh
//
//	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	if err := server.Shutdown(shutdownCtx); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Constants
//
// MLLP framing constants are exported for custom implementations:
//
//	mllp.StartBlock      // 0x0B - vertical tab
//	mllp.EndBlock        // 0x1C - file separator
//	mllp.CarriageReturn  // 0x0D - carriage return
package mllp
