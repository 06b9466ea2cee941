package twitchirc

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/chatlib/twitchirc/twitcherr"
)

// socket wraps a single non-blocking TCP file descriptor. All syscalls
// go through golang.org/x/sys/unix rather than net.Conn because the
// connection FSM needs fd-level readiness (via poller) to detect when
// the TCP handshake itself has completed -- net.Conn hides exactly the
// signal this library is built around.
type socket struct {
	fd int
}

const invalidFD = -1

// dial creates a non-blocking socket, resolves host:port, and issues a
// connect(2). A return of EINPROGRESS or EALREADY is not an error --
// the readiness loop observes completion via write-readiness later.
func dial(host string, port int) (*socket, error) {
	ips, err := net.LookupIP(host)
	if err != nil || len(ips) == 0 {
		return nil, fmt.Errorf("%w: resolving %s: %v", twitcherr.ErrSocketConnect, host, err)
	}
	ip := pickIPv4(ips)

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", twitcherr.ErrSocketCreate, err)
	}
	sock := &socket{fd: fd}

	if err := unix.SetNonblock(fd, true); err != nil {
		sock.close()
		return nil, fmt.Errorf("%w: setting non-blocking: %v", twitcherr.ErrSocketCreate, err)
	}

	var addr [4]byte
	copy(addr[:], ip.To4())
	sa := &unix.SockaddrInet4{Port: port, Addr: addr}

	err = unix.Connect(fd, sa)
	if err != nil && err != unix.EINPROGRESS && err != unix.EALREADY {
		sock.close()
		return nil, fmt.Errorf("%w: connect to %s:%d: %v", twitcherr.ErrSocketConnect, host, port, err)
	}

	return sock, nil
}

// pickIPv4 returns the first IPv4 address in ips, falling back to the
// first address of any family if none is IPv4 (dual-stack AF_INET6
// sockets are out of scope for this client -- Twitch's chat endpoint
// resolves to IPv4).
func pickIPv4(ips []net.IP) net.IP {
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return ip
		}
	}
	return ips[0]
}

// connectError returns the pending error on a connecting socket via
// SO_ERROR, the standard way to discover whether a non-blocking
// connect(2) ultimately succeeded once the fd becomes writable.
func (s *socket) connectError() error {
	errno, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return fmt.Errorf("%w: reading SO_ERROR: %v", twitcherr.ErrSocketConnect, err)
	}
	if errno != 0 {
		return fmt.Errorf("%w: %s", twitcherr.ErrSocketConnect, unix.Errno(errno).Error())
	}
	return nil
}

// write performs one non-blocking write(2). n may be less than
// len(data) on a partial write; the caller's send loop advances past
// n and retries. EAGAIN/EWOULDBLOCK is returned as-is so the caller can
// treat it as fatal per this library's no-outbound-buffering policy.
func (s *socket) write(data []byte) (n int, err error) {
	for {
		n, err = unix.Write(s.fd, data)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// read performs one non-blocking read(2). A 0, nil return means the
// peer closed the connection (EOF); a 0, EAGAIN-class error return
// means no data is currently available.
func (s *socket) read(buf []byte) (n int, err error) {
	for {
		n, err = unix.Read(s.fd, buf)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

func (s *socket) close() error {
	if s == nil || s.fd == invalidFD {
		return nil
	}
	fd := s.fd
	s.fd = invalidFD
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("%w: %v", twitcherr.ErrSocketClose, err)
	}
	return nil
}

func isAgain(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

func hostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
