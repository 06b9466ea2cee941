package twitchirc

import (
	"reflect"
	"testing"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *Event
	}{
		{
			name: "ping with trailing only",
			raw:  "PING :tmi.twitch.tv",
			expected: &Event{
				Raw:         "PING :tmi.twitch.tv",
				Command:     "PING",
				CommandArgs: []string{"tmi.twitch.tv"},
				Parameter:   "tmi.twitch.tv",
			},
		},
		{
			name: "privmsg with tags and prefix",
			raw:  "@badge-info=;badges=broadcaster/1;color=#FF0000;display-name=Test\\sUser;id=abc123 :testuser!testuser@testuser.tmi.twitch.tv PRIVMSG #testchannel :Hello World",
			expected: &Event{
				Raw: "@badge-info=;badges=broadcaster/1;color=#FF0000;display-name=Test\\sUser;id=abc123 :testuser!testuser@testuser.tmi.twitch.tv PRIVMSG #testchannel :Hello World",
				Tags: Tags{
					{Key: "badge-info", Value: ""},
					{Key: "badges", Value: "broadcaster/1"},
					{Key: "color", Value: "#FF0000"},
					{Key: "display-name", Value: "Test User"},
					{Key: "id", Value: "abc123"},
				},
				Prefix:      "testuser!testuser@testuser.tmi.twitch.tv",
				Command:     "PRIVMSG",
				CommandArgs: []string{"#testchannel"},
				Parameter:   "Hello World",
			},
		},
		{
			name: "join, no trailing",
			raw:  ":testuser!testuser@testuser.tmi.twitch.tv JOIN #testchannel",
			expected: &Event{
				Raw:         ":testuser!testuser@testuser.tmi.twitch.tv JOIN #testchannel",
				Prefix:      "testuser!testuser@testuser.tmi.twitch.tv",
				Command:     "JOIN",
				CommandArgs: []string{"#testchannel"},
			},
		},
		{
			name: "cap ack, two args plus trailing",
			raw:  ":tmi.twitch.tv CAP * ACK :twitch.tv/tags twitch.tv/commands",
			expected: &Event{
				Raw:         ":tmi.twitch.tv CAP * ACK :twitch.tv/tags twitch.tv/commands",
				Prefix:      "tmi.twitch.tv",
				Command:     "CAP",
				CommandArgs: []string{"*", "ACK"},
				Parameter:   "twitch.tv/tags twitch.tv/commands",
			},
		},
		{
			name: "numeric welcome, single arg plus trailing",
			raw:  ":tmi.twitch.tv 001 testuser :Welcome, GLHF!",
			expected: &Event{
				Raw:         ":tmi.twitch.tv 001 testuser :Welcome, GLHF!",
				Prefix:      "tmi.twitch.tv",
				Command:     "001",
				CommandArgs: []string{"testuser"},
				Parameter:   "Welcome, GLHF!",
			},
		},
		{
			name: "ctcp action envelope",
			raw:  ":testuser!testuser@testuser.tmi.twitch.tv PRIVMSG #testchannel :\x01ACTION waves\x01",
			expected: &Event{
				Raw:         ":testuser!testuser@testuser.tmi.twitch.tv PRIVMSG #testchannel :\x01ACTION waves\x01",
				Prefix:      "testuser!testuser@testuser.tmi.twitch.tv",
				Command:     "PRIVMSG",
				CommandArgs: []string{"#testchannel"},
				CTCP:        "ACTION",
				Parameter:   "waves",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessage(tt.raw)
			if err != nil {
				t.Fatalf("ParseMessage returned error: %v", err)
			}
			if got.Raw != tt.expected.Raw {
				t.Errorf("Raw: got %q, want %q", got.Raw, tt.expected.Raw)
			}
			if got.Prefix != tt.expected.Prefix {
				t.Errorf("Prefix: got %q, want %q", got.Prefix, tt.expected.Prefix)
			}
			if got.Command != tt.expected.Command {
				t.Errorf("Command: got %q, want %q", got.Command, tt.expected.Command)
			}
			if !reflect.DeepEqual(got.CommandArgs, tt.expected.CommandArgs) {
				t.Errorf("CommandArgs: got %v, want %v", got.CommandArgs, tt.expected.CommandArgs)
			}
			if got.Parameter != tt.expected.Parameter {
				t.Errorf("Parameter: got %q, want %q", got.Parameter, tt.expected.Parameter)
			}
			if got.CTCP != tt.expected.CTCP {
				t.Errorf("CTCP: got %q, want %q", got.CTCP, tt.expected.CTCP)
			}
			if len(tt.expected.Tags) > 0 && !reflect.DeepEqual(got.Tags, tt.expected.Tags) {
				t.Errorf("Tags: got %#v, want %#v", got.Tags, tt.expected.Tags)
			}
		})
	}
}

func TestParseMessageMalformedPrefix(t *testing.T) {
	_, err := ParseMessage(":nospacehere")
	if err == nil {
		t.Fatal("expected an error for a prefix with no following space")
	}
}

func TestParseMessageMalformedCTCP(t *testing.T) {
	_, err := ParseMessage(":nick!u@h PRIVMSG #chan :\x01NOARGSHERE\x01")
	if err == nil {
		t.Fatal("expected an error for a CTCP envelope with no space")
	}
}

func TestParseMessageBareTagBlock(t *testing.T) {
	ev, err := ParseMessage("@id=123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Tags.Value("id") != "123" {
		t.Errorf("id: got %q, want %q", ev.Tags.Value("id"), "123")
	}
	if ev.Command != "" {
		t.Errorf("Command: got %q, want empty", ev.Command)
	}
}
