package twitchirc

import (
	"time"

	"github.com/chatlib/twitchirc/twitchlog"
)

// DefaultHost and DefaultPort are Twitch's plaintext IRC endpoint.
const (
	DefaultHost = "irc.chat.twitch.tv"
	DefaultPort = 6667

	// DefaultReadBufferSize is the fixed-size ring the wire codec reads
	// into. A single unterminated message larger than this makes no
	// forward progress and surfaces ErrLineTooLong.
	DefaultReadBufferSize = 2048

	// TimeoutIntervalSeconds is the inactivity deadline: slightly above
	// Twitch's 5-minute PING interval, to tolerate scheduling jitter
	// while still detecting links that go dead without an EOF (e.g. a
	// laptop resumed from sleep).
	TimeoutIntervalSeconds = 5*60 + 15
)

// DefaultInactivityTimeout is TimeoutIntervalSeconds as a time.Duration.
const DefaultInactivityTimeout = TimeoutIntervalSeconds * time.Second

// Handler receives every fully-dispatched inbound event, synchronously,
// on the goroutine that called PollOnce. A Handler must not call
// PollOnce itself (the library is not re-entrant); it may call any
// command formatter, since those only call the blocking send path.
type Handler func(c *Connection, ev *Event)

// Connection is the root entity: it owns the socket, the readiness
// queue registration, the fixed-size read buffer, connection status,
// login identity, and the last error. One Connection serves one
// Twitch IRC session; to run multiple sessions, create multiple
// Connections.
type Connection struct {
	Login Login

	handler Handler
	cfg     config

	status  Status
	lastErr error

	readBuf    []byte
	unconsumed int

	lastMessageTime time.Time
	connectedAt     time.Time

	sock *socket
	poll poller
}

type config struct {
	host              string
	port              int
	readBufferSize    int
	inactivityTimeout time.Duration
	verbose           bool
	logger            twitchlog.Logger
	handler           Handler
}

// Option configures a Connection at construction time.
type Option func(*config)

// WithHost overrides the IRC server host. Default: DefaultHost.
func WithHost(host string) Option { return func(c *config) { c.host = host } }

// WithPort overrides the IRC server port. Default: DefaultPort.
func WithPort(port int) Option { return func(c *config) { c.port = port } }

// WithReadBufferSize overrides the fixed read-buffer size. Default:
// DefaultReadBufferSize. Exposed primarily so tests can exercise the
// buffer-bound invariant (§8) with a small buffer.
func WithReadBufferSize(n int) Option { return func(c *config) { c.readBufferSize = n } }

// WithInactivityTimeout overrides the liveness deadline. Default:
// DefaultInactivityTimeout.
func WithInactivityTimeout(d time.Duration) Option {
	return func(c *config) { c.inactivityTimeout = d }
}

// WithVerbose enables logging of outbound lines (with the password
// redacted) and lifecycle transitions to the configured logger.
func WithVerbose(v bool) Option { return func(c *config) { c.verbose = v } }

// WithLogger sets the logger used when verbose logging is enabled.
// Default: twitchlog.Stderr.
func WithLogger(l twitchlog.Logger) Option { return func(c *config) { c.logger = l } }

// WithHandler registers the callback PollOnce delivers every dispatched
// Event to. A Connection with no handler still runs its FSM and
// auto-PONG logic normally; events are simply dropped.
func WithHandler(h Handler) Option { return func(c *config) { c.handler = h } }

// New constructs a Connection. It does not touch the network; call
// Connect to actually dial. This is the one-time per-instance
// initialization step.
func New(opts ...Option) *Connection {
	cfg := config{
		host:              DefaultHost,
		port:              DefaultPort,
		readBufferSize:    DefaultReadBufferSize,
		inactivityTimeout: DefaultInactivityTimeout,
		logger:            twitchlog.Discard,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.verbose && cfg.logger == twitchlog.Discard {
		cfg.logger = twitchlog.Stderr
	}

	return &Connection{
		handler: cfg.handler,
		cfg:     cfg,
		readBuf: make([]byte, cfg.readBufferSize),
	}
}

// LastError returns the error from the most recent failed operation,
// or nil. It remains set across PollOnce calls and across Disconnect
// until a later failure overwrites it or the next Connect clears it.
func (c *Connection) LastError() error { return c.lastErr }

// Uptime returns how long the connection has been in the connected
// state. It is zero before the first successful Connect.
func (c *Connection) Uptime() time.Duration {
	if c.connectedAt.IsZero() {
		return 0
	}
	return time.Since(c.connectedAt)
}

// StatusFlags returns a snapshot of the current connection status flags.
func (c *Connection) StatusFlags() Status { return c.status }

func (c *Connection) logf(format string, args ...interface{}) {
	if c.cfg.verbose {
		c.cfg.logger.Printf(format, args...)
	}
}
