package tui

// loginDoneMsg is emitted when a login attempt has finished
type loginDoneMsg struct {
	err error
}
