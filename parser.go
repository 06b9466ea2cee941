package twitchirc

import "strings"

// ParseMessage turns one complete, CRLF-stripped IRC line into an Event
// with its syntactic fields populated. It does not touch the semantic
// fields (Type, Origin, Channel, Target, Message) -- that is the
// dispatcher's job, in dispatch.go.
//
// Grammar: ['@' tags SP] [':' prefix SP] command (SP arg)* [SP ':' trailing]
func ParseMessage(raw string) (*Event, error) {
	ev := &Event{Raw: raw}
	line := raw

	if strings.HasPrefix(line, "@") {
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			// Tag block with nothing following -- nothing more to parse,
			// but not an error: a bare tag block is syntactically
			// complete (just commandless).
			ev.Tags = parseTagBlock(line[1:])
			return ev, nil
		}
		ev.Tags = parseTagBlock(line[1:sp])
		line = line[sp+1:]
	}

	if strings.HasPrefix(line, ":") {
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			return nil, malformedLine(raw, errMalformedPrefix)
		}
		ev.Prefix = line[1:sp]
		line = line[sp+1:]
	}

	line = strings.TrimSpace(line)

	head, trailing, hasTrailing := cutTrailing(line)
	head = strings.TrimSpace(head)

	fields := strings.Fields(head)
	if len(fields) > 0 {
		ev.Command = fields[0]
		ev.CommandArgs = fields[1:]
	}
	if hasTrailing {
		ev.Parameter = trailing
		// When a command carries no space-delimited arguments before the
		// trailing parameter (e.g. "PING :tmi.twitch.tv"), the trailing
		// value also stands in as CommandArgs[0] so that handlers keyed
		// off args[0] (the PING auto-PONG reply in particular) see it
		// without special-casing the all-trailing-no-args case.
		if len(ev.CommandArgs) == 0 {
			ev.CommandArgs = []string{trailing}
		}
	}

	if ev.Parameter != "" {
		ctcp, rest, ok, err := stripCTCP(ev.Parameter)
		if err != nil {
			return nil, malformedLine(raw, err)
		}
		if ok {
			ev.CTCP = ctcp
			ev.Parameter = rest
		}
	}

	return ev, nil
}

// cutTrailing splits s on the first ':' into (head, trailing). hasTrailing
// is false if s contains no ':' at all (head == s in that case).
func cutTrailing(s string) (head, trailing string, hasTrailing bool) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}
