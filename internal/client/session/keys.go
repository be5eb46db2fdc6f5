package session

// Keys under which the session fields are persisted.
const (
	KeyLoginID  = "LOGINID"
	KeyAccount  = "ACCOUNT"
	KeyName     = "NAME"
	KeyProfile  = "PROFILE"
	KeyTutorial = "TUTORIAL"
)

// sessionKeys are removed by Logout. KeyTutorial is deliberately absent.
var sessionKeys = []string{KeyLoginID, KeyAccount, KeyName, KeyProfile}
