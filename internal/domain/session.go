package domain

// AdminSession is the persisted admin gate state. It is a local UI gate,
// not a security boundary.
type AdminSession struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username"`
}

// LoggedOut is the zero session.
var LoggedOut = AdminSession{}
