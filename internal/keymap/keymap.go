// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Contexts group bindings in the help popup.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextList     = "list"
)

// Contexts lists the binding contexts in help order.
var Contexts = []string{ContextGlobal, ContextPlayback, ContextList}

// Binding maps keys to an action.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string
}

// All contains every key binding, in help order.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", ContextGlobal},
	{[]string{"?"}, ActionHelp, "Show help", ContextGlobal},
	{[]string{"esc", "backspace", "h", "left"}, ActionBack, "Back / close", ContextGlobal},

	// Playback
	{[]string{"space", " ", "p"}, ActionPlayPause, "Pause/resume", ContextPlayback},
	{[]string{"s"}, ActionStop, "Stop", ContextPlayback},
	{[]string{"+", "="}, ActionVolumeUp, "Volume +", ContextPlayback},
	{[]string{"-"}, ActionVolumeDown, "Volume -", ContextPlayback},

	// Menu and file picker
	{[]string{"k", "up"}, ActionMoveUp, "Move up", ContextList},
	{[]string{"j", "down"}, ActionMoveDown, "Move down", ContextList},
	{[]string{"pgup", "ctrl+u"}, ActionPageUp, "Page up", ContextList},
	{[]string{"pgdown", "ctrl+d"}, ActionPageDown, "Page down", ContextList},
	{[]string{"g", "home"}, ActionJumpStart, "First item", ContextList},
	{[]string{"G", "end"}, ActionJumpEnd, "Last item", ContextList},
	{[]string{"enter", "l", "right"}, ActionSelect, "Select / play", ContextList},
	{[]string{"o"}, ActionOpenFolder, "Open another folder", ContextList},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
