package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"
	ActionBack Action = "back" // esc - close the picker or the help popup

	// Playback actions, available from every screen
	ActionPlayPause  Action = "play_pause"
	ActionStop       Action = "stop"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"

	// List navigation (menu and file picker)
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - activate menu entry or play file

	// File picker
	ActionOpenFolder Action = "open_folder"
)
