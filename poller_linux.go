//go:build linux

package twitchirc

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/chatlib/twitchirc/twitcherr"
)

// epollPoller is the Linux readiness backend.
type epollPoller struct {
	epfd int
	fd   int // the single fd we watch; this client never multiplexes.
}

func newPoller() (poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", twitcherr.ErrEpollCreate, err)
	}
	return &epollPoller{epfd: epfd, fd: invalidFD}, nil
}

func (p *epollPoller) register(fd int, writable bool) error {
	p.fd = fd
	ev := unix.EpollEvent{Fd: int32(fd), Events: readEvents(writable)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("%w: register: %v", twitcherr.ErrEpollCtl, err)
	}
	return nil
}

func (p *epollPoller) modify(fd int, writable bool) error {
	ev := unix.EpollEvent{Fd: int32(fd), Events: readEvents(writable)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return fmt.Errorf("%w: modify: %v", twitcherr.ErrEpollCtl, err)
	}
	return nil
}

func readEvents(writable bool) uint32 {
	events := uint32(unix.EPOLLIN)
	if writable {
		events |= unix.EPOLLOUT
	}
	return events
}

func (p *epollPoller) wait(timeout time.Duration) ([]pollEvent, error) {
	ms := timeoutMillis(timeout)

	var raw [8]unix.EpollEvent
	n, err := unix.EpollWait(p.epfd, raw[:], ms)
	if err == unix.EINTR {
		// Harmless signal interruption: success, no events.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", twitcherr.ErrEpollWait, err)
	}

	events := make([]pollEvent, 0, n)
	for i := 0; i < n; i++ {
		e := raw[i]
		events = append(events, pollEvent{
			readable: e.Events&unix.EPOLLIN != 0,
			writable: e.Events&unix.EPOLLOUT != 0,
			hangup:   e.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0,
			errored:  e.Events&unix.EPOLLERR != 0,
		})
	}
	return events, nil
}

func (p *epollPoller) close() error {
	return unix.Close(p.epfd)
}

// timeoutMillis converts a Go duration into epoll_wait's millisecond
// timeout convention: -1 waits indefinitely, 0 polls without blocking.
func timeoutMillis(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	return int(timeout / time.Millisecond)
}
