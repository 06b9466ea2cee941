package twitchirc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chatlib/twitchirc/twitcherr"
)

// channelArg normalizes a caller-supplied channel name to the bare,
// lowercase, hash-free form used internally, then renders it back with
// a leading '#' for the wire -- the same normalize-then-reattach
// convention Its-donkey-kappopher's Join/Part/Say use.
func channelArg(channel string) string {
	return "#" + strings.ToLower(stripChannelPrefix(channel))
}

// Pass sends the PASS login command. token is the full credential
// Twitch expects, typically "oauth:<token>".
func (c *Connection) Pass(token string) error {
	return c.sendLine("PASS " + token)
}

// Nick sends the NICK login command. It validates nick before sending,
// same rationale as Join.
func (c *Connection) Nick(nick string) error {
	if !isValidNick(nick) {
		return fmt.Errorf("%w: invalid nick %q", twitcherr.ErrMalformedLine, nick)
	}
	return c.sendLine("NICK " + nick)
}

// Join joins a single channel. It validates the channel name before
// sending; a socket would accept anything, but Twitch would just
// silently ignore a malformed JOIN.
func (c *Connection) Join(channel string) error {
	arg := channelArg(channel)
	if !isValidChannel(arg) {
		return fmt.Errorf("%w: invalid channel %q", twitcherr.ErrMalformedLine, channel)
	}
	return c.sendLine("JOIN " + arg)
}

// Part leaves a single channel.
func (c *Connection) Part(channel string) error {
	return c.sendLine("PART " + channelArg(channel))
}

// Quit sends QUIT, with an optional parting message.
func (c *Connection) Quit(message string) error {
	if message == "" {
		return c.sendLine("QUIT")
	}
	return c.sendLine("QUIT :" + message)
}

// Privmsg sends a chat message to channel.
func (c *Connection) Privmsg(channel, message string) error {
	return c.sendLine(fmt.Sprintf("PRIVMSG %s :%s", channelArg(channel), message))
}

// Pong replies to a server PING. param echoes the PING's argument, per
// RFC and Twitch's own liveness check. The leading ':' is added only
// if param doesn't already carry one.
func (c *Connection) Pong(param string) error {
	if param == "" {
		return c.sendLine("PONG")
	}
	if strings.HasPrefix(param, ":") {
		return c.sendLine("PONG " + param)
	}
	return c.sendLine("PONG :" + param)
}

// Ping sends an unsolicited PING, e.g. as an application-level
// liveness probe distinct from the inactivity deadline. Unlike Pong,
// the wire form carries no leading colon on param.
func (c *Connection) Ping(param string) error {
	if param == "" {
		return c.sendLine("PING")
	}
	return c.sendLine("PING " + param)
}

// ActionMessage sends a /me-style action, wrapped in the CTCP ACTION
// envelope, to channel.
func (c *Connection) ActionMessage(channel, message string) error {
	return c.Privmsg(channel, "\x01ACTION "+message+"\x01")
}

// Whisper sends a private message to user, via a PRIVMSG to the
// caller's own channel carrying a /w directive -- Twitch's actual
// whisper encoding, which requires the sender's own login as the
// target channel rather than any fixed reserved channel.
func (c *Connection) Whisper(user, message string) error {
	return c.sendLine(fmt.Sprintf("PRIVMSG #%s :/w %s %s", stripChannelPrefix(c.Login.Nickname), user, message))
}

// moderationCommand sends a moderation directive as a slash-command
// PRIVMSG to channel -- Twitch IRC's actual encoding for every
// moderation action; there is no dedicated wire command for any of
// them.
func (c *Connection) moderationCommand(channel, directive string) error {
	return c.Privmsg(channel, directive)
}

// Timeout removes user's ability to chat in channel for seconds,
// optionally citing reason. Twitch accepts a bare integer second
// count; there is no unit suffix on the wire.
func (c *Connection) Timeout(channel, user string, seconds int, reason string) error {
	directive := fmt.Sprintf("/timeout %s %d", user, seconds)
	if reason != "" {
		directive += " " + reason
	}
	return c.moderationCommand(channel, directive)
}

// Untimeout lifts an active timeout on user in channel.
func (c *Connection) Untimeout(channel, user string) error {
	return c.moderationCommand(channel, "/untimeout "+user)
}

// Ban permanently bans user from channel, optionally citing reason.
func (c *Connection) Ban(channel, user, reason string) error {
	directive := "/ban " + user
	if reason != "" {
		directive += " " + reason
	}
	return c.moderationCommand(channel, directive)
}

// Unban lifts a ban on user in channel.
func (c *Connection) Unban(channel, user string) error {
	return c.moderationCommand(channel, "/unban "+user)
}

// Slow enables slow mode in channel with the given interval in seconds.
func (c *Connection) Slow(channel string, seconds int) error {
	return c.moderationCommand(channel, "/slow "+strconv.Itoa(seconds))
}

// SlowOff disables slow mode in channel.
func (c *Connection) SlowOff(channel string) error {
	return c.moderationCommand(channel, "/slowoff")
}

// Followers enables followers-only mode in channel, requiring a
// minimum follow age of minutes minutes (0 for any follower).
func (c *Connection) Followers(channel string, minutes int) error {
	return c.moderationCommand(channel, "/followers "+strconv.Itoa(minutes))
}

// FollowersOff disables followers-only mode in channel.
func (c *Connection) FollowersOff(channel string) error {
	return c.moderationCommand(channel, "/followersoff")
}

// Subscribers enables subscribers-only mode in channel.
func (c *Connection) Subscribers(channel string) error {
	return c.moderationCommand(channel, "/subscribers")
}

// SubscribersOff disables subscribers-only mode in channel.
func (c *Connection) SubscribersOff(channel string) error {
	return c.moderationCommand(channel, "/subscribersoff")
}

// Clear clears channel's chat history for all viewers.
func (c *Connection) Clear(channel string) error {
	return c.moderationCommand(channel, "/clear")
}

// R9KBeta enables unique-chat (R9K) mode in channel.
func (c *Connection) R9KBeta(channel string) error {
	return c.moderationCommand(channel, "/r9kbeta")
}

// R9KBetaOff disables unique-chat (R9K) mode in channel.
func (c *Connection) R9KBetaOff(channel string) error {
	return c.moderationCommand(channel, "/r9kbetaoff")
}

// EmoteOnly enables emote-only mode in channel.
func (c *Connection) EmoteOnly(channel string) error {
	return c.moderationCommand(channel, "/emoteonly")
}

// EmoteOnlyOff disables emote-only mode in channel.
func (c *Connection) EmoteOnlyOff(channel string) error {
	return c.moderationCommand(channel, "/emoteonlyoff")
}

// Commercial starts a commercial break in channel lasting seconds.
func (c *Connection) Commercial(channel string, seconds int) error {
	return c.moderationCommand(channel, "/commercial "+strconv.Itoa(seconds))
}

// Host makes channel host target.
func (c *Connection) Host(channel, target string) error {
	return c.moderationCommand(channel, "/host "+stripChannelPrefix(target))
}

// Unhost stops channel from hosting.
func (c *Connection) Unhost(channel string) error {
	return c.moderationCommand(channel, "/unhost")
}

// Mod grants user moderator status in channel.
func (c *Connection) Mod(channel, user string) error {
	return c.moderationCommand(channel, "/mod "+user)
}

// Unmod revokes user's moderator status in channel.
func (c *Connection) Unmod(channel, user string) error {
	return c.moderationCommand(channel, "/unmod "+user)
}

// Vip grants user VIP status in channel.
func (c *Connection) Vip(channel, user string) error {
	return c.moderationCommand(channel, "/vip "+user)
}

// Unvip revokes user's VIP status in channel.
func (c *Connection) Unvip(channel, user string) error {
	return c.moderationCommand(channel, "/unvip "+user)
}

// Delete removes a single message, identified by msgID, from channel.
func (c *Connection) Delete(channel, msgID string) error {
	return c.moderationCommand(channel, "/delete "+msgID)
}

// Mods lists channel's moderators; the response arrives as a NOTICE.
func (c *Connection) Mods(channel string) error {
	return c.moderationCommand(channel, "/mods")
}

// Vips lists channel's VIPs; the response arrives as a NOTICE.
func (c *Connection) Vips(channel string) error {
	return c.moderationCommand(channel, "/vips")
}

// Color sets the caller's display color in channel.
func (c *Connection) Color(channel, color string) error {
	return c.moderationCommand(channel, "/color "+color)
}

// Marker places a stream marker in channel, optionally with a
// description.
func (c *Connection) Marker(channel, description string) error {
	directive := "/marker"
	if description != "" {
		directive += " " + description
	}
	return c.moderationCommand(channel, directive)
}

// CapRequest issues a single CAP REQ for one capability.
func (c *Connection) CapRequest(capability string) error {
	return c.sendLine("CAP REQ :" + capability)
}

// CapRequests issues a single CAP REQ for a space-joined set of
// capabilities, the same form sendHandshake uses for the default three.
func (c *Connection) CapRequests(capabilities ...string) error {
	return c.sendLine("CAP REQ :" + strings.Join(capabilities, " "))
}
