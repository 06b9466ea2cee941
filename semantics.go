package twitchirc

import (
	"strconv"
	"strings"
)

// EmotePosition is one occurrence of an emote inside Event.Message, as
// carried by the "emotes" tag: "<id>:<start>-<end>,<start>-<end>/<id>:...".
type EmotePosition struct {
	ID    string
	Start int
	End   int
}

// Badges parses the "badges" tag into a set-id -> version map. Returns
// an empty, non-nil map if the tag is absent.
func (e *Event) Badges() map[string]string { return parseBadgeTag(e.Tags.Value("badges")) }

// BadgeInfo parses the "badge-info" tag the same way as Badges (it
// carries auxiliary info for a badge already present in Badges, such
// as the exact subscriber month count).
func (e *Event) BadgeInfo() map[string]string { return parseBadgeTag(e.Tags.Value("badge-info")) }

func parseBadgeTag(raw string) map[string]string {
	badges := make(map[string]string)
	if raw == "" {
		return badges
	}
	for _, part := range strings.Split(raw, ",") {
		if part == "" {
			continue
		}
		if slash := strings.IndexByte(part, '/'); slash >= 0 {
			badges[part[:slash]] = part[slash+1:]
		} else {
			badges[part] = ""
		}
	}
	return badges
}

// Emotes parses the "emotes" tag into a slice of positions.
// Malformed entries are skipped rather than aborting the whole parse --
// this is metadata, not wire framing, so a single bad fragment should
// not hide every other emote in the message.
func (e *Event) Emotes() []EmotePosition {
	raw := e.Tags.Value("emotes")
	if raw == "" {
		return nil
	}
	var emotes []EmotePosition
	for _, group := range strings.Split(raw, "/") {
		if group == "" {
			continue
		}
		colon := strings.IndexByte(group, ':')
		if colon < 0 {
			continue
		}
		id := group[:colon]
		for _, span := range strings.Split(group[colon+1:], ",") {
			dash := strings.IndexByte(span, '-')
			if dash < 0 {
				continue
			}
			start, err1 := strconv.Atoi(span[:dash])
			end, err2 := strconv.Atoi(span[dash+1:])
			if err1 != nil || err2 != nil {
				continue
			}
			emotes = append(emotes, EmotePosition{ID: id, Start: start, End: end})
		}
	}
	return emotes
}

// Bits returns the "bits" tag as an integer, or 0 if absent/invalid.
func (e *Event) Bits() int {
	n, err := strconv.Atoi(e.Tags.Value("bits"))
	if err != nil {
		return 0
	}
	return n
}

// IsMod reports whether the "mod" tag is set.
func (e *Event) IsMod() bool { return e.Tags.Value("mod") == "1" }

// IsSubscriber reports whether the "subscriber" tag is set.
func (e *Event) IsSubscriber() bool { return e.Tags.Value("subscriber") == "1" }

// IsBroadcaster reports whether the broadcaster badge is present.
func (e *Event) IsBroadcaster() bool {
	_, ok := e.Badges()["broadcaster"]
	return ok
}

// UserNoticeType returns the "msg-id" tag, which on a UserNotice event
// distinguishes sub/resub/raid/subgift/etc. Twitch does not give these
// distinct IRC commands, only distinct tag values under USERNOTICE.
func (e *Event) UserNoticeType() string { return e.Tags.Value("msg-id") }
