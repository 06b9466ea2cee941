package twitchirc

import "testing"

func TestIsValidChannel(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#somechannel", true},
		{"#some_channel_123", true},
		{"somechannel", false},
		{"#", false},
		{"#Some Channel", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isValidChannel(tt.in); got != tt.want {
			t.Errorf("isValidChannel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidNick(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"chatbot", true},
		{"chat_bot_123", true},
		{"Chatbot", false},
		{"", false},
		{"chat bot", false},
	}
	for _, tt := range tests {
		if got := isValidNick(tt.in); got != tt.want {
			t.Errorf("isValidNick(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
