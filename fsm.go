package twitchirc

import (
	"fmt"
	"time"

	"github.com/chatlib/twitchirc/twitcherr"
	"github.com/chatlib/twitchirc/twitchlog"
)

// Connect starts a new session: it creates a non-blocking socket,
// issues connect(2), and registers the socket with the OS readiness
// backend for both read and write readiness. It returns once the connection
// attempt has been initiated, not once it has succeeded -- call
// PollOnce in a loop afterward to drive the handshake to completion.
//
// nick and pass are the Twitch login credentials (an OAuth token
// prefixed "oauth:", per Twitch's convention, passed as pass). Connect
// fails with ErrAlreadyConnected if called again before Disconnect.
func (c *Connection) Connect(nick, pass string) error {
	if c.status.has(StatusConnecting) || c.status.has(StatusConnected) {
		return twitcherr.ErrAlreadyConnected
	}
	if !isValidNick(nick) {
		return fmt.Errorf("%w: invalid nick %q", twitcherr.ErrMalformedLine, nick)
	}

	c.Login = Login{Nickname: nick, Password: pass}
	c.lastErr = nil
	c.unconsumed = 0

	sock, err := dial(c.cfg.host, c.cfg.port)
	if err != nil {
		c.lastErr = err
		return err
	}
	c.sock = sock

	pl, err := newPoller()
	if err != nil {
		c.lastErr = err
		sock.close()
		c.sock = nil
		return err
	}
	c.poll = pl

	if err := c.poll.register(c.sock.fd, true); err != nil {
		c.lastErr = err
		c.teardown()
		return err
	}
	c.status.set(StatusConnecting)
	c.lastMessageTime = time.Now()
	c.logf("connecting to %s", hostPort(c.cfg.host, c.cfg.port))
	return nil
}

// PollOnce blocks up to timeout waiting for socket readiness, then
// drives the connection FSM: advancing connecting->connected on first
// write-readiness, reading and dispatching any complete inbound lines,
// and checking the inactivity deadline. A negative timeout waits
// indefinitely; zero polls without blocking.
//
// PollOnce returns nil on a quiet round (nothing ready, nothing wrong).
// It returns ErrNotConnected, without touching LastError, when there is
// no connection to poll. Any other non-nil return is fatal: the
// connection has already been torn down by the time PollOnce returns,
// and Connect must be called again to retry. LastError always matches
// the returned error in that case.
func (c *Connection) PollOnce(timeout time.Duration) error {
	if !c.status.has(StatusConnecting) && !c.status.has(StatusConnected) {
		return twitcherr.ErrNotConnected
	}

	events, err := c.poll.wait(timeout)
	if err != nil {
		return c.fail(err)
	}

	for _, ev := range events {
		if ev.errored {
			return c.fail(fmt.Errorf("%w", twitcherr.ErrConnSocket))
		}
		if ev.hangup {
			return c.fail(fmt.Errorf("%w", twitcherr.ErrConnHangup))
		}
		if ev.writable {
			if err := c.handleWritable(); err != nil {
				return c.fail(err)
			}
		}
		if ev.readable {
			if err := c.handleReadable(); err != nil {
				return c.fail(err)
			}
		}
	}

	if c.status.has(StatusConnected) && time.Since(c.lastMessageTime) > c.cfg.inactivityTimeout {
		return c.fail(twitcherr.ErrInactivityTimeout)
	}

	return nil
}

// fail records err as LastError, tears down the socket and readiness
// registration, and returns err -- the single exit path for every
// fatal condition PollOnce and Connect can hit.
func (c *Connection) fail(err error) error {
	c.lastErr = err
	c.teardown()
	return err
}

// handleWritable advances connecting->connected the first time the
// socket becomes writable (the standard non-blocking connect(2)
// completion signal), issues the capability and login handshake, then
// drops write interest since every send after that is attempted
// eagerly rather than queued.
func (c *Connection) handleWritable() error {
	if !c.status.has(StatusConnecting) {
		return nil
	}

	if err := c.sock.connectError(); err != nil {
		return err
	}

	c.status.clear(StatusConnecting)
	c.status.set(StatusConnected)
	c.connectedAt = time.Now()
	c.lastMessageTime = time.Now()
	c.logf("connected to %s", hostPort(c.cfg.host, c.cfg.port))

	if err := c.sendHandshake(); err != nil {
		return err
	}

	if err := c.poll.modify(c.sock.fd, false); err != nil {
		return err
	}
	return nil
}

// sendHandshake issues the capability request and login commands in
// the order Twitch expects: CAP REQ first, then PASS, then NICK. The
// connection enters StatusAuthenticating here; it becomes
// StatusAuthenticated once either 001 or GLOBALUSERSTATE arrives.
func (c *Connection) sendHandshake() error {
	const caps = "twitch.tv/tags twitch.tv/commands twitch.tv/membership"
	if err := c.sendLine(fmt.Sprintf("CAP REQ :%s", caps)); err != nil {
		return err
	}
	c.status.set(StatusAuthenticating)
	if c.Login.Password != "" {
		if err := c.sendLine(fmt.Sprintf("PASS %s", c.Login.Password)); err != nil {
			return err
		}
	}
	return c.sendLine(fmt.Sprintf("NICK %s", c.Login.Nickname))
}

// handleReadable drains every byte currently available on the socket,
// framing and dispatching complete lines as it goes, until a read
// would block (EAGAIN), the peer closes (0-byte read), or a hard
// socket error occurs.
func (c *Connection) handleReadable() error {
	for {
		if c.unconsumed >= len(c.readBuf) {
			return twitcherr.ErrLineTooLong
		}

		n, err := c.sock.read(c.readBuf[c.unconsumed:])
		if err != nil {
			if isAgain(err) {
				return nil
			}
			return fmt.Errorf("%w: %v", twitcherr.ErrSocketRecv, err)
		}
		if n == 0 {
			return twitcherr.ErrConnClosed
		}

		c.unconsumed += n
		c.lastMessageTime = time.Now()

		if err := c.drainBuffer(); err != nil {
			return err
		}
	}
}

// drainBuffer frames every complete line currently in the read buffer,
// parses and dispatches each one in order, then compacts the buffer so
// unconsumed bytes of a trailing partial line sit at its front again.
// If nothing could be framed and the buffer is completely full, no
// forward progress is possible: that is ErrLineTooLong, not a silent
// stall.
func (c *Connection) drainBuffer() error {
	lines, consumed := splitLines(c.readBuf[:c.unconsumed])
	for _, line := range lines {
		ev, err := ParseMessage(line)
		if err != nil {
			return err
		}
		c.dispatch(ev)
	}

	if consumed > 0 {
		copy(c.readBuf, c.readBuf[consumed:c.unconsumed])
		c.unconsumed -= consumed
	}
	if consumed == 0 && c.unconsumed >= len(c.readBuf) {
		return twitcherr.ErrLineTooLong
	}
	return nil
}

// sendLine appends the CRLF terminator and writes the full line to the
// socket, retrying on partial writes. This library does no outbound
// buffering: a write that would block (EAGAIN) is treated as fatal
// rather than queued, per spec.md's single-threaded delivery model.
// The logged line has the login password redacted before it ever
// reaches the configured logger.
func (c *Connection) sendLine(line string) error {
	if c.sock == nil {
		return twitcherr.ErrNotConnected
	}

	remaining := []byte(line + "\r\n")
	for len(remaining) > 0 {
		n, err := c.sock.write(remaining)
		if err != nil {
			if isAgain(err) {
				return fmt.Errorf("%w: write would block", twitcherr.ErrSocketSend)
			}
			return fmt.Errorf("%w: %v", twitcherr.ErrSocketSend, err)
		}
		remaining = remaining[n:]
	}

	c.logf("--> %s", twitchlog.Redact(line, c.Login.Password))
	return nil
}

// teardown releases the readiness queue and socket and resets status
// to disconnected. It is idempotent: each of poll/sock is closed once
// and then set to nil, and a nil poll/sock is left untouched.
func (c *Connection) teardown() {
	if c.poll != nil {
		c.poll.close()
		c.poll = nil
	}
	if c.sock != nil {
		c.sock.close()
		c.sock = nil
	}
	c.status.reset()
	c.unconsumed = 0
	c.Login.reset()
	c.connectedAt = time.Time{}
}

// Disconnect tears down the socket and readiness registration
// immediately, without sending QUIT. It is idempotent and safe to call
// on a connection that was never connected.
func (c *Connection) Disconnect() {
	c.teardown()
}

// QuitAndDisconnect sends QUIT (best-effort -- a send failure is
// returned but does not prevent teardown) and then disconnects. Use
// this for a clean shutdown; use Disconnect for an abrupt one.
func (c *Connection) QuitAndDisconnect() error {
	var quitErr error
	if c.status.has(StatusConnected) {
		quitErr = c.Quit("")
	}
	c.Disconnect()
	return quitErr
}
