package tui

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/hive/internal/layout"
	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/picker"
	"github.com/nikbrunner/hive/internal/reparent"
	"github.com/nikbrunner/hive/internal/store"
	"github.com/nikbrunner/hive/internal/tui/screen"
)

// App is the main bubbletea model of the dashboard.
type App struct {
	ctx      context.Context
	store    *store.Store
	reparent *reparent.Controller
	engine   *layout.Engine
	keys     KeyMap
	styles   Styles
	screen   screen.Config
	logger   *slog.Logger

	openURL   func(string) error
	clipboard func(string) error

	events      chan store.Event
	unsubscribe func()

	// Last snapshot from the store
	state    store.State
	activeID string

	// Navigation below the active folder
	path   []string // entered subfolders, outermost first
	cursor int      // tile index; len(items) is the add tile

	mode    Mode
	modal   ModalState
	move    MoveState
	picker  picker.Picker
	pending int // operations in flight

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store     *store.Store
	Context   context.Context    // optional, bounds store calls
	Hex       *layout.HexConfig  // optional, uses layout.TerminalConfig if nil
	Screen    *screen.Config     // optional, uses default if nil
	Keys      *KeyMap            // optional, uses default if nil
	Styles    *Styles            // optional, uses default if nil
	Logger    *slog.Logger       // optional
	OpenURL   func(string) error // optional, opens the system browser
	Clipboard func(string) error // optional, writes the system clipboard
}

// NewApp creates a new App and subscribes it to the store.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}
	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}
	scr := screen.DefaultConfig()
	if params.Screen != nil {
		scr = *params.Screen
	}
	hex := layout.TerminalConfig()
	if params.Hex != nil {
		hex = *params.Hex
	}
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenBrowser
	}
	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	// Each event carries a full snapshot, so a full buffer can drop events.
	events := make(chan store.Event, 16)
	unsubscribe := params.Store.Subscribe(func(ev store.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	app := App{
		ctx:         ctx,
		store:       params.Store,
		reparent:    reparent.New(params.Store),
		engine:      layout.NewEngine(hex),
		keys:        keys,
		styles:      styles,
		screen:      scr,
		logger:      logger.With("component", "tui"),
		openURL:     openURL,
		clipboard:   copyText,
		events:      events,
		unsubscribe: unsubscribe,
		modal:       NewModalState(scr),
		width:       80,
		height:      24,
	}
	app.engine.Resize(screen.GridWidth(app.width, scr.Frame))
	app.sync()
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.engine.Resize(screen.GridWidth(width, a.screen.Frame))
	return a
}

// Cursor returns the selected tile index.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// CurrentFolderID returns the folder whose children are shown.
func (a App) CurrentFolderID() string {
	if len(a.path) > 0 {
		return a.path[len(a.path)-1]
	}
	return a.activeID
}

// Items returns the nodes shown in the grid.
func (a App) Items() []model.Node {
	id := a.CurrentFolderID()
	if id == "" {
		return nil
	}
	return a.state.Tree.Children(id)
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

// selected returns the node under the cursor, or false on the add tile.
func (a App) selected() (model.Node, bool) {
	items := a.Items()
	if a.cursor < 0 || a.cursor >= len(items) {
		return model.Node{}, false
	}
	return items[a.cursor], true
}

// sync takes a fresh snapshot and repairs navigation against it.
func (a *App) sync() {
	a.state = a.store.State()

	active := ""
	if a.state.ActiveFolderID != nil {
		active = *a.state.ActiveFolderID
	}
	if active != a.activeID {
		a.activeID = active
		a.path = nil
		a.cursor = 0
	}

	// Drop entered folders that were deleted or moved away
	parent := active
	for i, id := range a.path {
		n, ok := a.state.Tree.Find(id)
		if !ok || !n.IsFolder() || n.Parent() != parent {
			a.path = a.path[:i]
			break
		}
		parent = id
	}

	a.cursor = min(max(a.cursor, 0), len(a.Items()))
}

// selectNode moves the cursor to id if it is shown.
func (a *App) selectNode(id string) {
	for i, n := range a.Items() {
		if n.ID == id {
			a.cursor = i
			return
		}
	}
}

// reveal shows the folder containing id and selects it.
func (a *App) reveal(id string) {
	path := a.state.Tree.Path(id)
	if len(path) < 2 {
		return
	}
	if err := a.store.SetActiveFolder(path[0].ID); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.sync()

	a.path = nil
	for _, n := range path[1 : len(path)-1] {
		a.path = append(a.path, n.ID)
	}
	a.cursor = 0
	a.selectNode(id)
}

// switchFolder activates the top-level folder delta steps away, wrapping.
func (a *App) switchFolder(delta int) {
	folders := a.state.Tree.TopLevelFolders()
	if len(folders) == 0 {
		return
	}
	idx := 0
	for i, f := range folders {
		if f.ID == a.activeID {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(folders) + len(folders)) % len(folders)
	a.activateFolder(folders[idx].ID)
}

// activateFolder makes id the active top-level folder.
func (a *App) activateFolder(id string) {
	if err := a.store.SetActiveFolder(id); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.sync()
}

func (a *App) setMessage(typ MessageType, text string) {
	a.messageType = typ
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.listen(), a.load())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a = a.WithDimensions(msg.Width, msg.Height)
		if a.mode == ModeSearch {
			m, _ := a.picker.Update(msg)
			a.picker = m.(picker.Picker)
		}
		return a, nil

	case eventMsg:
		a.sync()
		return a, a.listen()

	case loadedMsg:
		a.sync()
		if msg.err != nil && a.state.Notice == nil {
			a.setMessage(MessageWarning, "Could not load bookmarks: "+msg.err.Error())
		}
		return a, nil

	case opDoneMsg:
		a.pending = max(a.pending-1, 0)
		a.sync()
		if msg.err != nil {
			// Backend failures surface as the store's notice
			if a.state.Notice == nil {
				a.setMessage(MessageError, "Could not "+msg.op+": "+msg.err.Error())
			}
			return a, nil
		}
		if msg.selectID != "" {
			a.selectNode(msg.selectID)
		}
		if msg.success != "" {
			a.setMessage(MessageSuccess, msg.success)
		}
		return a, nil

	case statusMsg:
		a.setMessage(msg.typ, msg.text)
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeNormal:
			return a.handleNormalMode(msg)
		case ModeAddLink, ModeEditLink, ModeAddFolder, ModeRenameFolder, ModeAddWidget, ModeWidgetSource:
			return a.handleFormMode(msg)
		case ModeConfirmDelete:
			return a.handleConfirmDeleteMode(msg)
		case ModeMove:
			return a.handleMoveMode(msg)
		case ModeSearch:
			return a.handleSearchMode(msg)
		case ModeHelp:
			return a.handleHelpMode(msg)
		}
	}

	// Cursor blinks and other input housekeeping
	var cmd tea.Cmd
	switch a.mode {
	case ModeSearch:
		var m tea.Model
		m, cmd = a.picker.Update(msg)
		a.picker = m.(picker.Picker)
	case ModeAddLink, ModeEditLink, ModeAddFolder, ModeRenameFolder, ModeAddWidget, ModeWidgetSource:
		a.modal.Inputs[a.modal.Focus], cmd = a.modal.Inputs[a.modal.Focus].Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
