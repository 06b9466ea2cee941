package twitchirc

import "strings"

// splitLines splits buf on the first "\r\n" repeatedly, returning the
// complete lines found and the number of bytes consumed (including
// every delimiter). A partial trailing fragment is left unconsumed for
// the next call -- bytesConsumed never covers it.
//
// This is the framing half of the wire codec: property-tested in
// codec_test.go against arbitrary fragmentations of a known byte
// stream (the "framing completeness" invariant).
func splitLines(buf []byte) (lines []string, bytesConsumed int) {
	for {
		idx := indexCRLF(buf[bytesConsumed:])
		if idx < 0 {
			return lines, bytesConsumed
		}
		lines = append(lines, string(buf[bytesConsumed:bytesConsumed+idx]))
		bytesConsumed += idx + 2
	}
}

func indexCRLF(b []byte) int {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return i
		}
	}
	return -1
}

// parseTagBlock splits the tag portion of a line (everything between
// the leading '@' and the first space) into Tags, decoding escapes in
// each value.
func parseTagBlock(block string) Tags {
	if block == "" {
		return nil
	}
	tokens := strings.Split(block, ";")
	tags := make(Tags, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if eq := strings.IndexByte(tok, '='); eq >= 0 {
			tags = append(tags, Tag{Key: tok[:eq], Value: unescapeTagValue(tok[eq+1:])})
		} else {
			tags = append(tags, Tag{Key: tok, Value: ""})
		}
	}
	return tags
}

// unescapeTagValue decodes the IRCv3 tag-value escape sequences in a
// single left-to-right pass: \: -> ;, \s -> space, \\ -> \, \r -> CR,
// \n -> LF, any other \x -> x, and a trailing lone backslash is
// dropped. The decoded length is always <= len(s).
func unescapeTagValue(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			break // trailing lone backslash: drop it
		}
		i++
		switch s[i] {
		case ':':
			b.WriteByte(';')
		case 's':
			b.WriteByte(' ')
		case '\\':
			b.WriteByte('\\')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ctcpDelim is the CTCP envelope marker, 0x01.
const ctcpDelim = '\x01'

// stripCTCP detects a CTCP envelope in parameter ("\x01CMD args\x01")
// and, if present, returns the command and the remaining text with the
// envelope removed. ok is false if parameter is not CTCP-wrapped at
// all; err is non-nil if it is wrapped but contains no space to
// separate the CTCP command from its arguments.
func stripCTCP(parameter string) (ctcp, rest string, ok bool, err error) {
	if len(parameter) < 2 || parameter[0] != ctcpDelim || parameter[len(parameter)-1] != ctcpDelim {
		return "", "", false, nil
	}
	inner := parameter[1 : len(parameter)-1]
	sp := strings.IndexByte(inner, ' ')
	if sp < 0 {
		return "", "", true, errMalformedCTCP
	}
	return inner[:sp], inner[sp+1:], true, nil
}
