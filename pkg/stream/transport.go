// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package stream

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
)

// Transport is the byte sink the streamer writes Keel frames to. The bench
// link is one-way; transports only need to accept bytes and report whether
// they are open. Implementations are not goroutine-safe; the streamer
// serializes access.
type Transport interface {
	Open() error
	Write(p []byte) (int, error)
	Close() error
	IsOpen() bool
	String() string
}

// SerialTransport drives a directly attached bench over a serial port.
type SerialTransport struct {
	PortName string
	BaudRate int
	port     serial.Port
}

// NewSerialTransport creates a serial transport for the given port and
// baud rate. The port is not opened until Open is called.
func NewSerialTransport(portName string, baudRate int) *SerialTransport {
	return &SerialTransport{PortName: portName, BaudRate: baudRate}
}

func (t *SerialTransport) Open() error {
	if t.port != nil {
		return nil
	}
	mode := &serial.Mode{
		BaudRate: t.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(t.PortName, mode)
	if err != nil {
		return fmt.Errorf("%w: serial port %s: %v", ErrLinkOpenFailed, t.PortName, err)
	}
	t.port = port
	return nil
}

func (t *SerialTransport) Write(p []byte) (int, error) {
	if t.port == nil {
		return 0, ErrLinkNotOpen
	}
	n, err := t.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return n, nil
}

func (t *SerialTransport) Close() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

func (t *SerialTransport) IsOpen() bool {
	return t.port != nil
}

func (t *SerialTransport) String() string {
	return fmt.Sprintf("Serial: %s @ %d baud", t.PortName, t.BaudRate)
}

// WebSocketTransport drives a bench behind a serial-to-WebSocket bridge.
// Frames are sent as binary messages. Writes carry a bounded deadline so a
// stalled bridge cannot block the tick loop indefinitely.
type WebSocketTransport struct {
	URL                string
	Username           string
	Password           string
	InsecureSkipVerify bool

	conn *websocket.Conn
}

const wsWriteTimeout = 5 * time.Second

func (t *WebSocketTransport) Open() error {
	if t.conn != nil {
		return nil
	}

	u, err := url.Parse(t.URL)
	if err != nil {
		return fmt.Errorf("%w: invalid URL: %v", ErrLinkOpenFailed, err)
	}
	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return fmt.Errorf("%w: unsupported URL scheme: %s (use ws:// or wss://)", ErrLinkOpenFailed, u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: t.InsecureSkipVerify,
		}
	}

	headers := http.Header{}
	if t.Username != "" && t.Password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(t.Username + ":" + t.Password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, t.URL, headers)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("%w: WebSocket connection failed (HTTP %d): %v", ErrLinkOpenFailed, resp.StatusCode, err)
		}
		return fmt.Errorf("%w: WebSocket connection failed: %v", ErrLinkOpenFailed, err)
	}

	t.conn = conn
	return nil
}

func (t *WebSocketTransport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, ErrLinkNotOpen
	}
	t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := t.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return len(p), nil
}

func (t *WebSocketTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *WebSocketTransport) IsOpen() bool {
	return t.conn != nil
}

func (t *WebSocketTransport) String() string {
	return fmt.Sprintf("WebSocket: %s", t.URL)
}
