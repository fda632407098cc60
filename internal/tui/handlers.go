package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/picker"
	"github.com/nikbrunner/hive/internal/search"
	"github.com/nikbrunner/hive/internal/store"
)

// handleNormalMode handles keys while browsing the grid.
func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()
	items := a.Items()
	perRow := a.engine.PerRow()

	// 1-9 jump straight to a top-level folder
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= 9 {
		folders := a.state.Tree.TopLevelFolders()
		if n <= len(folders) {
			a.activateFolder(folders[n-1].ID)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.unsubscribe()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.cursor-perRow >= 0 {
			a.cursor -= perRow
		}

	case key.Matches(msg, a.keys.Down):
		a.cursor = min(a.cursor+perRow, len(items))

	case key.Matches(msg, a.keys.Left):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Right):
		if a.cursor < len(items) {
			a.cursor++
		}

	case key.Matches(msg, a.keys.NextFolder):
		a.switchFolder(1)

	case key.Matches(msg, a.keys.PrevFolder):
		a.switchFolder(-1)

	case key.Matches(msg, a.keys.Open):
		return a.openSelected()

	case key.Matches(msg, a.keys.Back):
		if len(a.path) > 0 {
			left := a.path[len(a.path)-1]
			a.path = a.path[:len(a.path)-1]
			a.cursor = 0
			a.selectNode(left)
		}

	case key.Matches(msg, a.keys.AddFolder):
		a.openModal(ModeAddFolder, "")

	case key.Matches(msg, a.keys.AddLink):
		if folder := a.CurrentFolderID(); folder != "" {
			a.openModal(ModeAddLink, folder)
		} else {
			a.setMessage(MessageInfo, "Create a folder first")
		}

	case key.Matches(msg, a.keys.AddWidget):
		if folder := a.CurrentFolderID(); folder != "" {
			a.openModal(ModeAddWidget, folder)
			a.modal.Inputs[fieldSecond].SetValue(model.DefaultWidgetType)
		} else {
			a.setMessage(MessageInfo, "Create a folder first")
		}

	case key.Matches(msg, a.keys.Edit):
		if n, ok := a.selected(); ok {
			a.openEdit(n)
		}

	case key.Matches(msg, a.keys.Rename):
		if folder, ok := a.state.Tree.Find(a.CurrentFolderID()); ok {
			a.openEdit(folder)
		}

	case key.Matches(msg, a.keys.Delete):
		if n, ok := a.selected(); ok {
			a.modal.TargetID = n.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.DeleteDir):
		if folder := a.CurrentFolderID(); folder != "" {
			a.modal.TargetID = folder
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Move):
		if n, ok := a.selected(); ok {
			a.startMove(n)
		}

	case key.Matches(msg, a.keys.YankURL):
		n, ok := a.selected()
		if !ok || n.Kind != model.KindLink {
			return a, nil
		}
		if err := a.clipboard(n.URL); err != nil {
			a.setMessage(MessageError, "Could not copy: "+err.Error())
		} else {
			a.setMessage(MessageSuccess, "Copied: "+n.URL)
		}

	case key.Matches(msg, a.keys.Search):
		a.picker = picker.New(a.state.Tree, "")
		m, _ := a.picker.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.picker = m.(picker.Picker)
		a.mode = ModeSearch

	case key.Matches(msg, a.keys.Reload):
		a.setMessage(MessageInfo, "Reloading…")
		return a, a.load()

	case key.Matches(msg, a.keys.Dismiss):
		a.store.ClearNotice()
		a.sync()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// openSelected acts on the tile under the cursor.
func (a App) openSelected() (tea.Model, tea.Cmd) {
	n, ok := a.selected()
	if !ok {
		// The add tile
		if folder := a.CurrentFolderID(); folder != "" {
			a.openModal(ModeAddLink, folder)
		} else {
			a.openModal(ModeAddFolder, "")
		}
		return a, nil
	}

	switch n.Kind {
	case model.KindFolder:
		a.path = append(a.path, n.ID)
		a.cursor = 0
	case model.KindWidget:
		a.openEdit(n)
	default:
		if err := a.openURL(n.URL); err != nil {
			a.setMessage(MessageError, err.Error())
		} else {
			a.setMessage(MessageInfo, "Opened "+n.URL)
		}
	}
	return a, nil
}

// openModal switches to a form mode.
func (a *App) openModal(mode Mode, targetID string) {
	a.modal.Open(a.screen, mode, targetID)
	a.mode = mode
}

// openEdit opens the edit form that fits n.
func (a *App) openEdit(n model.Node) {
	switch n.Kind {
	case model.KindFolder:
		a.openModal(ModeRenameFolder, n.ID)
		a.modal.Inputs[fieldTitle].SetValue(n.Title)
	case model.KindWidget:
		a.openModal(ModeWidgetSource, n.ID)
		if src, ok := a.store.WidgetSource(n.WidgetType); ok {
			a.modal.Inputs[fieldSecond].SetValue(src)
		}
	default:
		a.openModal(ModeEditLink, n.ID)
		a.modal.Inputs[fieldTitle].SetValue(n.Title)
		a.modal.Inputs[fieldSecond].SetValue(n.URL)
	}
}

// handleFormMode handles keys in the add and edit forms.
func (a App) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil
	case tea.KeyTab, tea.KeyShiftTab:
		a.modal.Cycle(a.mode)
		return a, nil
	case tea.KeyEnter:
		return a.submitForm()
	}

	var cmd tea.Cmd
	a.modal.Inputs[a.modal.Focus], cmd = a.modal.Inputs[a.modal.Focus].Update(msg)
	return a, cmd
}

// submitForm checks the form locally and hands it to the store.
// On a validation error the form stays open.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	title := a.modal.Value(fieldTitle)
	second := a.modal.Value(fieldSecond)
	target := a.modal.TargetID

	var cmd tea.Cmd
	var err error

	switch a.mode {
	case ModeAddFolder:
		if _, err = model.NormalizeTitle(model.KindFolder, title); err == nil {
			cmd = a.run("create folder", "Folder created", func(ctx context.Context, s *store.Store) (string, error) {
				_, err := s.CreateFolder(ctx, title)
				return "", err
			})
		}

	case ModeRenameFolder:
		if _, err = model.NormalizeTitle(model.KindFolder, title); err == nil {
			cmd = a.run("rename folder", "Folder renamed", func(ctx context.Context, s *store.Store) (string, error) {
				return "", s.RenameFolder(ctx, target, title)
			})
		}

	case ModeAddLink:
		if err = validateLink(title, second); err == nil {
			cmd = a.run("add link", "Link added", func(ctx context.Context, s *store.Store) (string, error) {
				n, err := s.CreateLink(ctx, title, second, target)
				return n.ID, err
			})
		}

	case ModeEditLink:
		if err = validateLink(title, second); err == nil {
			cmd = a.run("edit link", "Link saved", func(ctx context.Context, s *store.Store) (string, error) {
				return target, s.EditLink(ctx, target, title, second)
			})
		}

	case ModeAddWidget:
		if _, err = model.NormalizeTitle(model.KindWidget, title); err == nil {
			if _, err = model.NormalizeWidgetType(second); err == nil {
				cmd = a.run("add widget", "Widget added", func(ctx context.Context, s *store.Store) (string, error) {
					n, err := s.CreateWidget(ctx, title, second, target)
					return n.ID, err
				})
			}
		}

	case ModeWidgetSource:
		n, ok := a.state.Tree.Find(target)
		if !ok {
			a.mode = ModeNormal
			return a, nil
		}
		if err = a.store.SetWidgetSource(n.WidgetType, second); err == nil {
			a.setMessage(MessageSuccess, "Source saved for "+n.WidgetType)
		}
	}

	if err != nil {
		a.setMessage(MessageError, err.Error())
		return a, nil
	}
	a.mode = ModeNormal
	return a, cmd
}

func validateLink(title, rawURL string) error {
	if _, err := model.NormalizeTitle(model.KindLink, title); err != nil {
		return err
	}
	_, err := model.NormalizeURL(rawURL)
	return err
}

// handleConfirmDeleteMode handles keys in the delete confirmation.
func (a App) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		target := a.modal.TargetID
		a.mode = ModeNormal
		return a, a.run("delete", "Deleted", func(ctx context.Context, s *store.Store) (string, error) {
			return "", s.DeleteNode(ctx, target)
		})
	case "esc", "n", "q":
		a.mode = ModeNormal
	}
	return a, nil
}

// startMove picks n up and lists the folders it can be dropped into.
func (a *App) startMove(n model.Node) {
	tree := a.state.Tree
	a.move.Reset()
	a.move.NodeID = n.ID

	tree.Walk(func(f model.Node, depth int) bool {
		if !f.IsFolder() {
			return true
		}
		if f.ID == n.ID || tree.IsAncestor(n.ID, f.ID) {
			// Never into itself or its own subtree
			return true
		}
		label := f.Title
		if p := search.FolderPath(tree, f.ID); p != "" {
			label = p + " / " + f.Title
		}
		a.move.Targets = append(a.move.Targets, MoveTarget{ID: f.ID, Label: label, Depth: depth})
		return true
	})

	// Start on the current parent
	for i, t := range a.move.Targets {
		if t.ID == n.Parent() {
			a.move.Cursor = i
		}
	}

	a.reparent.BeginDrag(n.ID)
	if t, ok := a.move.Current(); ok {
		a.reparent.DragEnter(t.ID)
	}
	a.mode = ModeMove
}

// handleMoveMode handles keys in the move target list.
func (a App) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev, _ := a.move.Current()

	switch msg.String() {
	case "esc", "q":
		a.reparent.Cancel()
		a.move.Reset()
		a.mode = ModeNormal
		return a, nil

	case "up", "k", "ctrl+p":
		if a.move.Cursor > 0 {
			a.move.Cursor--
		}

	case "down", "j", "ctrl+n":
		if a.move.Cursor < len(a.move.Targets)-1 {
			a.move.Cursor++
		}

	case "enter":
		target, ok := a.move.Current()
		if !ok {
			return a, nil
		}
		rp, ctx := a.reparent, a.ctx
		a.move.Reset()
		a.mode = ModeNormal
		a.pending++
		return a, func() tea.Msg {
			moved, err := rp.Drop(ctx, target.ID)
			if err == nil && !moved {
				return opDoneMsg{op: "move", success: "Already in " + target.Label}
			}
			return opDoneMsg{op: "move", err: err, success: "Moved to " + target.Label}
		}
	}

	if next, ok := a.move.Current(); ok && next.ID != prev.ID {
		a.reparent.DragLeave(prev.ID)
		a.reparent.DragEnter(next.ID)
	}
	return a, nil
}

// handleSearchMode forwards keys to the picker until it is done.
func (a App) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m, cmd := a.picker.Update(msg)
	a.picker = m.(picker.Picker)

	if a.picker.Cancelled() {
		a.mode = ModeNormal
		return a, nil
	}
	if n, ok := a.picker.Selected(); ok {
		a.mode = ModeNormal
		a.reveal(n.ID)
		if err := a.openURL(n.URL); err != nil {
			a.setMessage(MessageError, err.Error())
		}
		return a, nil
	}
	return a, cmd
}

// handleHelpMode closes the help overlay.
func (a App) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc":
		a.mode = ModeNormal
	}
	return a, nil
}
