package twitchirc

import "strings"

// isValidChannel reports whether s is a syntactically valid Twitch
// channel name: a leading '#' followed by one or more lowercase
// letters, digits, or underscores. Grounded on the nick/channel
// validators lrstanley-girc's client exposes for the same purpose;
// kept unexported here and invoked by Join before formatting a line,
// to avoid sending a channel name the socket would accept and Twitch
// would silently ignore.
func isValidChannel(s string) bool {
	if len(s) < 2 || s[0] != '#' {
		return false
	}
	return isValidNickBody(s[1:])
}

// isValidNick reports whether s is a syntactically valid Twitch login
// name: one or more lowercase letters, digits, or underscores.
func isValidNick(s string) bool {
	return isValidNickBody(s)
}

func isValidNickBody(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// stripChannelPrefix removes a leading '#' from a channel argument, so
// command formatters accept either form from callers, matching the
// Its-donkey-kappopher/girc convention. channelArg and Whisper put the
// '#' back for the wire; Host sends its target without it.
func stripChannelPrefix(channel string) string {
	return strings.TrimPrefix(channel, "#")
}
