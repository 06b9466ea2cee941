package twitchirc

import (
	"errors"
	"fmt"

	"github.com/chatlib/twitchirc/twitcherr"
)

// errMalformedCTCP and errMalformedPrefix are wrapped into
// twitcherr.ErrMalformedLine with context before being returned from
// ParseMessage, so callers can errors.Is against the sentinel while
// still getting a descriptive message out of Error().
var (
	errMalformedCTCP   = errors.New("ctcp envelope has no space separating command from arguments")
	errMalformedPrefix = errors.New("prefix starts with ':' but contains no space")
)

func malformedLine(raw string, cause error) error {
	return fmt.Errorf("%w: %v (line: %q)", twitcherr.ErrMalformedLine, cause, raw)
}
