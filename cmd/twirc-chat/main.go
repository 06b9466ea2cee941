// Command twirc-chat joins a single Twitch channel, prints every chat
// message it sees, and echoes "pong" back to the channel whenever
// someone says "!ping". It exists to exercise Connect/PollOnce/Privmsg
// end to end against a real Twitch connection.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatlib/twitchirc"
	"github.com/chatlib/twitchirc/twitchlog"
)

func main() {
	nick := flag.String("nick", "", "Twitch login name")
	token := flag.String("token", os.Getenv("TWITCH_OAUTH_TOKEN"), "OAuth token (oauth:... form); defaults to $TWITCH_OAUTH_TOKEN")
	channel := flag.String("channel", "", "Channel to join, with or without the leading #")
	verbose := flag.Bool("v", false, "Log outbound lines and lifecycle transitions")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "twirc-chat - join a Twitch channel and echo !ping\n\n")
		fmt.Fprintf(os.Stderr, "Usage: twirc-chat -nick <login> -channel <channel> [-v]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *nick == "" || *token == "" || *channel == "" {
		flag.Usage()
		os.Exit(2)
	}

	var conn *twitchirc.Connection
	handler := func(c *twitchirc.Connection, ev *twitchirc.Event) {
		switch ev.Type {
		case twitchirc.Authenticated, twitchirc.GlobalUserState:
			if err := c.Join(*channel); err != nil {
				fmt.Fprintf(os.Stderr, "join failed: %v\n", err)
			}
		case twitchirc.Privmsg:
			fmt.Printf("#%s <%s> %s\n", ev.Channel, ev.Origin, ev.Message)
			if ev.Message == "!ping" {
				if err := c.Privmsg(ev.Channel, "pong"); err != nil {
					fmt.Fprintf(os.Stderr, "reply failed: %v\n", err)
				}
			}
		}
	}

	logger := twitchlog.Discard
	if *verbose {
		logger = twitchlog.Stderr
	}
	conn = twitchirc.New(
		twitchirc.WithHandler(handler),
		twitchirc.WithVerbose(*verbose),
		twitchirc.WithLogger(logger),
	)

	if err := conn.Connect(*nick, *token); err != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			fmt.Println("\nshutting down...")
			if err := conn.QuitAndDisconnect(); err != nil {
				fmt.Fprintf(os.Stderr, "quit: %v\n", err)
			}
			return
		default:
		}

		if err := conn.PollOnce(250 * time.Millisecond); err != nil {
			fmt.Fprintf(os.Stderr, "connection lost: %v\n", err)
			os.Exit(1)
		}
	}
}
