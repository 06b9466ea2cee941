package twitchirc

import (
	"reflect"
	"testing"
)

func TestEventBadgesAndBadgeInfo(t *testing.T) {
	ev, err := ParseMessage("@badges=broadcaster/1,subscriber/12;badge-info=subscriber/12 :tmi.twitch.tv PRIVMSG #chan :hi")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	want := map[string]string{"broadcaster": "1", "subscriber": "12"}
	if got := ev.Badges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Badges() = %v, want %v", got, want)
	}
	if got := ev.BadgeInfo(); !reflect.DeepEqual(got, map[string]string{"subscriber": "12"}) {
		t.Errorf("BadgeInfo() = %v", got)
	}
}

func TestEventBadgesEmpty(t *testing.T) {
	ev, err := ParseMessage(":tmi.twitch.tv PRIVMSG #chan :hi")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if got := ev.Badges(); len(got) != 0 {
		t.Errorf("Badges() = %v, want empty", got)
	}
}

func TestEventEmotes(t *testing.T) {
	ev, err := ParseMessage("@emotes=25:0-4,6-10/1902:12-16 :tmi.twitch.tv PRIVMSG #chan :Kappa Kappa Keepo")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	want := []EmotePosition{
		{ID: "25", Start: 0, End: 4},
		{ID: "25", Start: 6, End: 10},
		{ID: "1902", Start: 12, End: 16},
	}
	if got := ev.Emotes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Emotes() = %v, want %v", got, want)
	}
}

func TestEventBitsModSubscriberBroadcaster(t *testing.T) {
	ev, err := ParseMessage("@bits=100;mod=1;subscriber=1;badges=broadcaster/1 :tmi.twitch.tv PRIVMSG #chan :cheer100")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	if ev.Bits() != 100 {
		t.Errorf("Bits() = %d, want 100", ev.Bits())
	}
	if !ev.IsMod() {
		t.Error("IsMod() = false, want true")
	}
	if !ev.IsSubscriber() {
		t.Error("IsSubscriber() = false, want true")
	}
	if !ev.IsBroadcaster() {
		t.Error("IsBroadcaster() = false, want true")
	}
}

func TestEventUserNoticeType(t *testing.T) {
	ev, err := ParseMessage("@msg-id=raid :tmi.twitch.tv USERNOTICE #chan :raiders incoming")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if got := ev.UserNoticeType(); got != "raid" {
		t.Errorf("UserNoticeType() = %q, want %q", got, "raid")
	}
}
