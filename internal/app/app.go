package app

import (
	"errors"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/cursor"
)

// Screen is the page shown below the player header.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenFiles
)

// Options are the collaborators of the model.
type Options struct {
	Config *config.Config
	Player player.Interface
	State  state.Interface
	Folder string        // folder given on the command line, may be empty
	Stderr <-chan string // captured audio backend output, may be nil
	Logger *slog.Logger
}

// Model is the root application model.
type Model struct {
	Player      player.Interface
	StateMgr    state.Interface
	Keys        *keymap.Resolver
	Screen      Screen
	MenuCursor  cursor.Cursor
	Picker      filePicker
	FolderInput textinput.Model
	InputActive bool
	ShowHelp    bool
	ErrorMsg    string
	StatusMsg   string
	Width       int
	Height      int

	cfg     *config.Config
	log     *slog.Logger
	stderr  <-chan string
	ticking bool
}

// New creates the model, restoring the saved session. The start folder is
// the command-line folder, then the saved one, then the configured default.
func New(opts Options) (Model, error) {
	if opts.Config == nil || opts.Player == nil || opts.State == nil {
		return Model{}, errors.New("app: config, player and state are required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	m := Model{
		Player:      opts.Player,
		StateMgr:    opts.State,
		Keys:        keymap.Default(),
		MenuCursor:  cursor.New(0),
		FolderInput: newFolderInput(),
		cfg:         opts.Config,
		log:         log,
		stderr:      opts.Stderr,
	}

	session, err := opts.State.GetSession()
	if err != nil {
		log.Warn("load session", "err", err)
		m.ErrorMsg = errmsg.Format(errmsg.OpStateLoad, err)
		session = nil
	}

	folder := ""
	if opts.Folder == "" && session != nil && isDir(session.Folder) {
		folder = session.Folder
	} else {
		folder, err = opts.Config.StartFolder(opts.Folder)
		if err != nil {
			return Model{}, err
		}
	}

	if session != nil {
		m.Player.SetVolume(session.Volume)
	}

	m.Picker = newFilePicker(folder)
	if err := m.Picker.Load(m.listHeight()); err != nil {
		log.Warn("list files", "folder", folder, "err", err)
		if m.ErrorMsg == "" {
			m.ErrorMsg = errmsg.FormatWith(errmsg.OpListFiles, folder, err)
		}
	} else if session != nil && session.Folder == folder && session.SelectedName != "" {
		m.Picker.FocusByName(session.SelectedName, m.listHeight())
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchTrackFinished(), WatchStderr(m.stderr))
}

// startTick starts the refresh loop unless one is already running.
func (m *Model) startTick() tea.Cmd {
	if m.ticking || m.Player.State() != player.Playing {
		return nil
	}
	m.ticking = true
	return TickCmd(m.cfg.PollInterval())
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
