// Package twitcherr defines the sentinel error taxonomy surfaced by the
// twitchirc connection lifecycle. Callers use errors.Is against these
// sentinels rather than comparing strings.
package twitcherr

import "errors"

// Sentinel errors, one per code in the connection's error taxonomy.
// A wrapped error built with fmt.Errorf("...: %w", ErrSocketConnect) still
// satisfies errors.Is(err, ErrSocketConnect).
var (
	ErrNone          = errors.New("twitchirc: no error")
	ErrOutOfMemory   = errors.New("twitchirc: out of memory")
	ErrSocketCreate  = errors.New("twitchirc: socket create failed")
	ErrSocketConnect = errors.New("twitchirc: socket connect failed")
	ErrSocketSend    = errors.New("twitchirc: socket send failed")
	ErrSocketRecv    = errors.New("twitchirc: socket recv failed")
	ErrSocketClose   = errors.New("twitchirc: socket close failed")
	ErrEpollCreate   = errors.New("twitchirc: readiness queue create failed")
	ErrEpollCtl      = errors.New("twitchirc: readiness queue register failed")
	ErrEpollWait     = errors.New("twitchirc: readiness wait failed")
	ErrConnClosed    = errors.New("twitchirc: connection closed by peer")
	ErrConnHangup    = errors.New("twitchirc: connection hangup")
	ErrConnSocket    = errors.New("twitchirc: connection socket error")

	// ErrNotConnected is returned by command formatters and PollOnce when
	// there is no live connection: Connect has not been called yet, or
	// the connection has since been torn down.
	ErrNotConnected = errors.New("twitchirc: not connected")
	// ErrAlreadyConnected is returned by Connect when called twice without
	// an intervening Disconnect.
	ErrAlreadyConnected = errors.New("twitchirc: already connected")
	// ErrAuthFailed names a rejected PASS/NICK handshake. twitchirc itself
	// never returns it: Twitch reports a rejected login as a NOTICE line,
	// which reaches the Handler as a Notice event.
	ErrAuthFailed = errors.New("twitchirc: authentication failed")
	// ErrMalformedLine is returned by the parser when a line cannot be
	// framed into a syntactically valid message.
	ErrMalformedLine = errors.New("twitchirc: malformed line")
	// ErrLineTooLong is returned when a single unterminated message would
	// overflow the read buffer with no forward progress possible.
	ErrLineTooLong = errors.New("twitchirc: line exceeds read buffer with no terminator")
	// ErrInactivityTimeout is returned by PollOnce when no inbound
	// message has been seen within the configured inactivity window.
	ErrInactivityTimeout = errors.New("twitchirc: inactivity timeout, no message from server")
)
