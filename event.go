package twitchirc

// CommandType is the closed taxonomy of semantic event types the
// dispatcher can produce. It is distinct from the syntactic IRC
// Command field on Event (e.g. "PRIVMSG", "353") -- CommandType is
// the library's interpretation of that wire command.
type CommandType int

const (
	Unknown CommandType = iota
	Cap
	Authenticated
	GlobalUserState
	Join
	Part
	ClearChat
	RoomState
	UserState
	Moderator
	HostTarget
	Privmsg
	ClearMsg
	Notice
	UserNotice
	Whisper
	Ping
	Names
	EndOfNames
	Reconnect
	InvalidCommand
	CTCPAction
)

// String renders a CommandType for logging and test failure messages.
func (t CommandType) String() string {
	switch t {
	case Cap:
		return "cap"
	case Authenticated:
		return "authenticated"
	case GlobalUserState:
		return "globaluserstate"
	case Join:
		return "join"
	case Part:
		return "part"
	case ClearChat:
		return "clearchat"
	case RoomState:
		return "roomstate"
	case UserState:
		return "userstate"
	case Moderator:
		return "moderator"
	case HostTarget:
		return "hosttarget"
	case Privmsg:
		return "privmsg"
	case ClearMsg:
		return "clearmsg"
	case Notice:
		return "notice"
	case UserNotice:
		return "usernotice"
	case Whisper:
		return "whisper"
	case Ping:
		return "ping"
	case Names:
		return "names"
	case EndOfNames:
		return "end_of_names"
	case Reconnect:
		return "reconnect"
	case InvalidCommand:
		return "invalid_command"
	case CTCPAction:
		return "ctcp_action"
	default:
		return "unknown"
	}
}

// Event is produced once per complete inbound line. Raw and the
// syntactic fields are populated by the wire codec and parser; the
// semantic fields (Type, Origin, Channel, Target, Message) are filled
// in by the dispatcher. An Event is only guaranteed valid for the
// duration of the Handler call that receives it. Raw is a copy of the
// line that splitLines takes out of the connection's read buffer, not
// a view into that buffer.
type Event struct {
	Raw string

	// Syntactic fields, populated by the parser.
	Prefix      string
	Command     string
	CommandArgs []string
	Parameter   string
	CTCP        string
	Tags        Tags

	// Semantic fields, populated by the dispatcher.
	Type    CommandType
	Origin  string
	Channel string
	Target  string
	Message string
}
