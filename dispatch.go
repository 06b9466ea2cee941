package twitchirc

import "strings"

// dispatch classifies a syntactically parsed Event, derives its
// semantic fields, performs the PING auto-PONG reply (before the
// callback runs, so the server sees it promptly even if the callback
// is slow), updates connection status/login state, and finally invokes
// the user handler.
func (c *Connection) dispatch(ev *Event) {
	if ev.CTCP != "" {
		if ev.CTCP == "ACTION" {
			ev.Type = CTCPAction
			ev.Channel = argAt(ev.CommandArgs, 0)
			ev.Message = ev.Parameter
		} else {
			ev.Type = Unknown
		}
		ev.Origin = originFromPrefix(ev.Prefix)
		c.invoke(ev)
		return
	}

	switch ev.Command {
	case "CAP":
		ev.Type = Cap
	case "001":
		ev.Type = Authenticated
		c.status.set(StatusAuthenticated)
	case "GLOBALUSERSTATE":
		ev.Type = GlobalUserState
		c.status.set(StatusAuthenticated)
		c.Login.DisplayName = ev.Tags.Value("display-name")
		c.Login.UserID = ev.Tags.Value("user-id")
	case "JOIN":
		ev.Type = Join
		ev.Channel = argAt(ev.CommandArgs, 0)
	case "PART":
		ev.Type = Part
		ev.Channel = argAt(ev.CommandArgs, 0)
	case "CLEARCHAT":
		ev.Type = ClearChat
		ev.Channel = argAt(ev.CommandArgs, 0)
	case "ROOMSTATE":
		ev.Type = RoomState
		ev.Channel = argAt(ev.CommandArgs, 0)
	case "USERSTATE":
		ev.Type = UserState
		ev.Channel = argAt(ev.CommandArgs, 0)
	case "MODE":
		ev.Type = Moderator
		ev.Channel = argAt(ev.CommandArgs, 0)
	case "HOSTTARGET":
		ev.Type = HostTarget
		ev.Target = firstField(ev.Parameter)
	case "PRIVMSG":
		ev.Type = Privmsg
		ev.Channel = argAt(ev.CommandArgs, 0)
		ev.Message = ev.Parameter
	case "CLEARMSG":
		ev.Type = ClearMsg
		ev.Channel = argAt(ev.CommandArgs, 0)
		ev.Message = ev.Parameter
	case "NOTICE":
		ev.Type = Notice
		ev.Channel = argAt(ev.CommandArgs, 0)
		ev.Message = ev.Parameter
	case "USERNOTICE":
		ev.Type = UserNotice
		ev.Channel = argAt(ev.CommandArgs, 0)
		ev.Message = ev.Parameter
	case "WHISPER":
		ev.Type = Whisper
		ev.Channel = argAt(ev.CommandArgs, 0)
		ev.Message = ev.Parameter
	case "PING":
		ev.Type = Ping
		c.autoPong(ev)
	case "353":
		ev.Type = Names
		ev.Channel = argAt(ev.CommandArgs, 2)
	case "366":
		ev.Type = EndOfNames
		ev.Channel = argAt(ev.CommandArgs, 1)
	case "421":
		ev.Type = InvalidCommand
	case "RECONNECT":
		ev.Type = Reconnect
	default:
		ev.Type = Unknown
	}

	ev.Origin = originFromPrefix(ev.Prefix)
	c.invoke(ev)
}

// invoke calls the user handler if one is registered. Isolated into
// its own method so dispatch's control flow above stays a flat
// classification switch.
func (c *Connection) invoke(ev *Event) {
	if c.handler != nil {
		c.handler(c, ev)
	}
}

// autoPong replies to an inbound PING before the event reaches the
// callback. A send failure here is recorded as the connection's last
// error but does not prevent the PING event itself from being
// delivered -- the caller's PollOnce return value reflects the
// failure on its own.
func (c *Connection) autoPong(ev *Event) {
	param := argAt(ev.CommandArgs, 0)
	if err := c.Pong(param); err != nil {
		c.lastErr = err
	}
}

func argAt(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// originFromPrefix extracts the nick portion of a "nick!user@host"
// prefix. If there is no '!', origin is empty -- this matches server
// prefixes like "tmi.twitch.tv" which have no nick component.
func originFromPrefix(prefix string) string {
	if bang := strings.IndexByte(prefix, '!'); bang >= 0 {
		return prefix[:bang]
	}
	return ""
}
