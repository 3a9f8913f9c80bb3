package urllist

// Mode constants for the URL list state machine
const (
	ModeList = iota
	ModeAdd
	ModeEdit
	ModeDeleteConfirm
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80

// Actions reported by ActionDoneMsg
const (
	ActionRefresh = "refresh"
	ActionAdd     = "add"
	ActionSave    = "save"
	ActionToggle  = "toggle"
	ActionDelete  = "delete"
	ActionTest    = "test"
)
