package twitchirc

// Login holds the credentials and server-assigned identity of a single
// connection attempt. Password is never logged in the clear; see
// twitchlog.Redact, which every log call site in this package runs
// outbound lines through before writing them.
type Login struct {
	Nickname    string
	Password    string
	DisplayName string // filled from GLOBALUSERSTATE's display-name tag
	UserID      string // filled from GLOBALUSERSTATE's user-id tag
}

// reset clears server-assigned fields; called on Disconnect so a
// subsequent Connect starts from a blank identity.
func (l *Login) reset() {
	l.DisplayName = ""
	l.UserID = ""
}
