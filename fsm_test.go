package twitchirc

import (
	"bufio"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/chatlib/twitchirc/twitcherr"
)

// fakeTwitchServer listens on loopback and speaks just enough of the
// handshake to drive a Connection through StatusAuthenticated. It hands
// the accepted connection to scriptFn, which runs in its own goroutine,
// and returns the listener's host and port.
func fakeTwitchServer(t *testing.T, scriptFn func(conn net.Conn)) (host string, port int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		scriptFn(conn)
	}()

	h, p, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	portNum, _ := strconv.Atoi(p)
	return h, portNum
}

func TestConnectDrivesHandshakeToAuthenticated(t *testing.T) {
	host, port := fakeTwitchServer(t, func(conn net.Conn) {
		defer conn.Close()
		r := bufio.NewReader(conn)

		capLine, _ := r.ReadString('\n')
		if !strings.HasPrefix(capLine, "CAP REQ :") {
			t.Errorf("expected CAP REQ first, got %q", capLine)
		}
		pass, _ := r.ReadString('\n')
		if !strings.HasPrefix(pass, "PASS ") {
			t.Errorf("expected PASS second, got %q", pass)
		}
		nick, _ := r.ReadString('\n')
		if !strings.HasPrefix(nick, "NICK ") {
			t.Errorf("expected NICK third, got %q", nick)
		}

		conn.Write([]byte("@display-name=Chatbot;user-id=999 :tmi.twitch.tv GLOBALUSERSTATE\r\n"))
	})

	var events []CommandType
	c := New(
		WithHost(host),
		WithPort(port),
		WithHandler(func(c *Connection, ev *Event) { events = append(events, ev.Type) }),
	)

	if err := c.Connect("chatbot", "oauth:token"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for !c.IsLoggedIn() && time.Now().Before(deadline) {
		if err := c.PollOnce(100 * time.Millisecond); err != nil {
			t.Fatalf("PollOnce: %v", err)
		}
	}

	if !c.IsLoggedIn() {
		t.Fatal("connection never reached StatusAuthenticated")
	}
	if c.Login.DisplayName != "Chatbot" {
		t.Errorf("DisplayName = %q, want %q", c.Login.DisplayName, "Chatbot")
	}
	found := false
	for _, e := range events {
		if e == GlobalUserState {
			found = true
		}
	}
	if !found {
		t.Error("handler never received a GlobalUserState event")
	}

	c.Disconnect()
}

func TestPollOnceBeforeConnectIsNotConnected(t *testing.T) {
	c := New()
	if err := c.PollOnce(0); err != twitcherr.ErrNotConnected {
		t.Errorf("got %v, want ErrNotConnected", err)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	host, port := fakeTwitchServer(t, func(conn net.Conn) {
		defer conn.Close()
		rd := bufio.NewReader(conn)
		for i := 0; i < 3; i++ {
			rd.ReadString('\n')
		}
	})

	c := New(WithHost(host), WithPort(port))
	if err := c.Connect("chatbot", "oauth:token"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	// Drive at least one writable round so the socket/poller actually
	// got used before tearing down.
	c.PollOnce(500 * time.Millisecond)

	c.Disconnect()
	c.Disconnect() // must not panic or double-close

	if c.IsConnecting() || c.IsConnected() {
		t.Error("status should be fully cleared after Disconnect")
	}
}

func TestPeerCloseSurfacesConnClosed(t *testing.T) {
	host, port := fakeTwitchServer(t, func(conn net.Conn) {
		rd := bufio.NewReader(conn)
		for i := 0; i < 3; i++ {
			rd.ReadString('\n')
		}
		conn.Close()
	})

	c := New(WithHost(host), WithPort(port))
	if err := c.Connect("chatbot", "oauth:token"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		if err := c.PollOnce(200 * time.Millisecond); err != nil {
			lastErr = err
			break
		}
	}

	if lastErr == nil {
		t.Fatal("expected PollOnce to eventually surface the peer close")
	}
	if !errors.Is(lastErr, twitcherr.ErrConnClosed) {
		t.Errorf("got %v, want ErrConnClosed", lastErr)
	}
}

func TestLineTooLongSurfacesAsFatal(t *testing.T) {
	host, port := fakeTwitchServer(t, func(conn net.Conn) {
		defer conn.Close()
		rd := bufio.NewReader(conn)
		for i := 0; i < 3; i++ {
			rd.ReadString('\n')
		}
		// Send a single, never-terminated line longer than the
		// (shrunk) read buffer.
		conn.Write([]byte(strings.Repeat("x", 256)))
	})

	c := New(WithHost(host), WithPort(port), WithReadBufferSize(64))
	if err := c.Connect("chatbot", "oauth:token"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		if err := c.PollOnce(200 * time.Millisecond); err != nil {
			lastErr = err
			break
		}
	}

	if lastErr != twitcherr.ErrLineTooLong {
		t.Fatalf("got %v, want ErrLineTooLong", lastErr)
	}
}
