package twitchirc

import "time"

// pollEvent reports what became ready on the registered fd. readable
// and writable correspond to spec.md's "Readable"/"Writable" cases;
// hangup and errored are reported separately so the FSM can classify
// the failure (conn_hangup vs conn_socket) instead of treating every
// terminal condition as a plain close.
type pollEvent struct {
	readable bool
	writable bool
	hangup   bool
	errored  bool
}

// poller is the OS-readiness-backend seam described in spec.md §4.4 and
// §9 (Design Notes: "Abstract behind one interface exposing register,
// modify, wait, and close"). One implementation exists per OS family:
// poller_linux.go (epoll) and poller_bsd.go (kqueue, covering Darwin
// and the BSDs). Both are backed by golang.org/x/sys/unix -- no cgo.
type poller interface {
	// register starts watching fd for read readiness, and for write
	// readiness too if writable is true.
	register(fd int, writable bool) error
	// modify changes whether fd is watched for write readiness; read
	// interest is always retained.
	modify(fd int, writable bool) error
	// wait blocks up to timeout for any registered event on any
	// registered fd (this library only ever registers one). timeout < 0
	// waits indefinitely; timeout == 0 polls without blocking. A signal
	// interrupting the underlying wait syscall is not an error: wait
	// returns a nil, nil empty result instead, matching spec.md's
	// "treated as try-again-later" rule.
	wait(timeout time.Duration) ([]pollEvent, error)
	close() error
}
