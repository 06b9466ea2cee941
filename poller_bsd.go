//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package twitchirc

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/chatlib/twitchirc/twitcherr"
)

// kqueuePoller is the Darwin/BSD readiness backend.
type kqueuePoller struct {
	kq       int
	fd       int
	writable bool // whether EVFILT_WRITE is currently registered
}

func newPoller() (poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", twitcherr.ErrEpollCreate, err)
	}
	return &kqueuePoller{kq: kq, fd: invalidFD}, nil
}

func (p *kqueuePoller) register(fd int, writable bool) error {
	p.fd = fd
	changes := []unix.Kevent_t{
		{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: unix.EV_ADD | unix.EV_ENABLE},
	}
	if writable {
		changes = append(changes, unix.Kevent_t{
			Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: unix.EV_ADD | unix.EV_ENABLE,
		})
		p.writable = true
	}
	if _, err := unix.Kevent(p.kq, changes, nil, nil); err != nil {
		return fmt.Errorf("%w: register: %v", twitcherr.ErrEpollCtl, err)
	}
	return nil
}

func (p *kqueuePoller) modify(fd int, writable bool) error {
	if writable == p.writable {
		return nil
	}
	flag := uint16(unix.EV_ADD | unix.EV_ENABLE)
	if !writable {
		flag = unix.EV_DELETE
	}
	change := unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: flag}
	if _, err := unix.Kevent(p.kq, []unix.Kevent_t{change}, nil, nil); err != nil {
		return fmt.Errorf("%w: modify: %v", twitcherr.ErrEpollCtl, err)
	}
	p.writable = writable
	return nil
}

func (p *kqueuePoller) wait(timeout time.Duration) ([]pollEvent, error) {
	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	var raw [8]unix.Kevent_t
	n, err := unix.Kevent(p.kq, nil, raw[:], ts)
	if err == unix.EINTR {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", twitcherr.ErrEpollWait, err)
	}

	events := make([]pollEvent, 0, n)
	for i := 0; i < n; i++ {
		e := raw[i]
		events = append(events, pollEvent{
			readable: e.Filter == unix.EVFILT_READ,
			writable: e.Filter == unix.EVFILT_WRITE,
			hangup:   e.Flags&unix.EV_EOF != 0,
			errored:  e.Flags&unix.EV_ERROR != 0,
		})
	}
	return events, nil
}

func (p *kqueuePoller) close() error {
	return unix.Close(p.kq)
}
