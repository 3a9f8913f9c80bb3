package urllist

// ActionDoneMsg is emitted when a controller action has finished. The
// outcome is already in the controller state; Err is for the caller's
// bookkeeping only.
type ActionDoneMsg struct {
	Action string
	Err    error
}
