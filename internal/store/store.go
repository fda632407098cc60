package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/hive/internal/cache"
	"github.com/nikbrunner/hive/internal/model"
)

// ErrClosed is returned for operations that resolve after Close.
var ErrClosed = errors.New("store closed")

// Backend is the remote source of truth for the tree.
type Backend interface {
	FetchTree(ctx context.Context) (*model.Tree, error)
	CreateNode(ctx context.Context, draft model.NodeDraft) (model.Node, error)
	UpdateNode(ctx context.Context, id string, patch model.NodePatch) error
	DeleteNode(ctx context.Context, id string) error
}

// Params holds the dependencies of a Store.
type Params struct {
	Backend Backend
	Cache   *cache.Cache // optional
	Logger  *slog.Logger // optional
}

// Store owns the canonical bookmark tree and the active folder selection.
// All mutations go through it; subscribers are notified after each change.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	cache     *cache.Cache
	logger    *slog.Logger
	tree      *model.Tree
	active    string
	loading   bool
	stale     bool
	notice    *Notice
	closed    bool
	listeners map[int]func(Event)
	nextSub   int
	now       func() time.Time
	moves     []pendingMove // applied locally, not yet confirmed
	nextMove  int
}

// pendingMove records where a node sat before an unconfirmed move.
type pendingMove struct {
	seq       int
	id        string
	oldParent string
	oldIndex  int
}

// New creates a Store hydrated from the cache. No network call is made.
func New(p Params) *Store {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		backend:   p.Backend,
		cache:     p.Cache,
		logger:    logger.With("component", "store"),
		tree:      model.NewTree(),
		listeners: map[int]func(Event){},
		now:       time.Now,
	}

	if s.cache != nil {
		cached := model.NewTree()
		if s.cache.Get(cache.KeyTree, cached) {
			s.tree = cached
		}
		var active string
		if s.cache.Get(cache.KeyActiveFolderID, &active) && s.tree.IsTopLevelFolder(active) {
			s.active = active
		}
	}
	if s.active == "" {
		s.active, _ = s.tree.FirstFolderID()
	}

	s.logger.Debug("hydrated from cache", "nodes", s.tree.Len(), "active", s.active)
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Subscribe registers fn for change events and returns a function that
// removes it. fn is called without the store lock held.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close tears the store down. Results of calls still in flight are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = map[int]func(Event){}
}

// Load emits the cached tree and then replaces it with the backend's.
// On failure the cached tree stays authoritative and the state is marked stale.
// The result is discarded if ctx is cancelled or the store is closed first.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.loading = true
	s.emitLocked(SourceCache)

	tree, err := s.backend.FetchTree(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("discarding tree fetch after close")
		return ErrClosed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.loading = false
		s.mu.Unlock()
		s.logger.Debug("discarding cancelled tree fetch")
		return ctxErr
	}
	s.loading = false

	if err != nil {
		s.stale = true
		s.notice = noticeFor("refresh bookmarks", err)
		s.emitLocked(SourceCache)
		s.logger.Warn("tree fetch failed, keeping cached tree", "error", err)
		return fmt.Errorf("loading bookmark tree: %w", err)
	}

	s.tree = tree
	s.stale = false
	s.notice = nil
	if !tree.IsTopLevelFolder(s.active) {
		s.active, _ = tree.FirstFolderID()
	}
	s.persistTreeLocked()
	s.persistActiveLocked()
	s.emitLocked(SourceRemote)

	s.logger.Info("tree loaded", "nodes", tree.Len())
	return nil
}

// CreateFolder creates a top-level folder once the backend confirms it and
// makes it the active folder.
func (s *Store) CreateFolder(ctx context.Context, title string) (model.Node, error) {
	title, err := model.NormalizeTitle(model.KindFolder, title)
	if err != nil {
		return model.Node{}, err
	}
	return s.create(ctx, "create folder", model.NodeDraft{Kind: model.KindFolder, Title: title}, true)
}

// CreateLink creates a link inside folderID. The url is normalized first.
func (s *Store) CreateLink(ctx context.Context, title, rawURL, folderID string) (model.Node, error) {
	title, err := model.NormalizeTitle(model.KindLink, title)
	if err != nil {
		return model.Node{}, err
	}
	u, err := model.NormalizeURL(rawURL)
	if err != nil {
		return model.Node{}, err
	}
	if err := s.requireFolder(folderID); err != nil {
		return model.Node{}, err
	}

	return s.create(ctx, "add link", model.NodeDraft{
		Kind:     model.KindLink,
		Title:    title,
		URL:      u,
		ParentID: model.StringPtr(folderID),
	}, false)
}

// CreateWidget creates a widget reference inside folderID.
func (s *Store) CreateWidget(ctx context.Context, title, widgetType, folderID string) (model.Node, error) {
	title, err := model.NormalizeTitle(model.KindWidget, title)
	if err != nil {
		return model.Node{}, err
	}
	widgetType, err = model.NormalizeWidgetType(widgetType)
	if err != nil {
		return model.Node{}, err
	}
	if err := s.requireFolder(folderID); err != nil {
		return model.Node{}, err
	}

	return s.create(ctx, "add widget", model.NodeDraft{
		Kind:       model.KindWidget,
		Title:      title,
		WidgetType: widgetType,
		ParentID:   model.StringPtr(folderID),
	}, false)
}

func (s *Store) create(ctx context.Context, op string, draft model.NodeDraft, activate bool) (model.Node, error) {
	node, err := s.backend.CreateNode(ctx, draft)
	if err != nil {
		return model.Node{}, s.fail(op, err)
	}

	// Fill in whatever the backend left out of its response.
	if node.Kind == "" {
		node.Kind = draft.Kind
	}
	if node.Title == "" {
		node.Title = draft.Title
	}
	if node.URL == "" {
		node.URL = draft.URL
	}
	if node.WidgetType == "" {
		node.WidgetType = draft.WidgetType
	}
	if node.CreatedAt.IsZero() {
		node.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.Node{}, ErrClosed
	}

	parent := ""
	if draft.ParentID != nil {
		parent = *draft.ParentID
	}
	if err := s.tree.InsertChild(parent, node); err != nil {
		s.mu.Unlock()
		s.logger.Error("confirmed node does not fit local tree", "op", op, "id", node.ID, "error", err)
		return model.Node{}, fmt.Errorf("%s: %w", op, err)
	}
	node, _ = s.tree.Find(node.ID)

	if activate {
		s.active = node.ID
		s.persistActiveLocked()
	}
	s.notice = nil
	s.persistTreeLocked()
	s.emitLocked(SourceLocal)

	s.logger.Info("node created", "op", op, "id", node.ID, "parent", parent)
	return node, nil
}

// RenameFolder renames a folder once the backend confirms it.
func (s *Store) RenameFolder(ctx context.Context, id, title string) error {
	return s.rename(ctx, "rename folder", model.KindFolder, id, title)
}

// RenameLink renames a link once the backend confirms it.
func (s *Store) RenameLink(ctx context.Context, id, title string) error {
	return s.rename(ctx, "rename link", model.KindLink, id, title)
}

func (s *Store) rename(ctx context.Context, op string, kind model.Kind, id, title string) error {
	node, err := s.lookup(id, kind)
	if err != nil {
		return err
	}
	title, err = model.NormalizeTitle(kind, title)
	if err != nil {
		return err
	}
	if title == node.Title {
		return nil
	}
	return s.update(ctx, op, id, model.NodePatch{Title: &title})
}

// EditLink changes a link's title and url in one confirmed update.
func (s *Store) EditLink(ctx context.Context, id, title, rawURL string) error {
	node, err := s.lookup(id, model.KindLink)
	if err != nil {
		return err
	}
	title, err = model.NormalizeTitle(model.KindLink, title)
	if err != nil {
		return err
	}
	u, err := model.NormalizeURL(rawURL)
	if err != nil {
		return err
	}

	var patch model.NodePatch
	if title != node.Title {
		patch.Title = &title
	}
	if u != node.URL {
		patch.URL = &u
	}
	if patch.Title == nil && patch.URL == nil {
		return nil
	}
	return s.update(ctx, "edit link", id, patch)
}

// update sends patch and applies it locally only after the backend confirms.
func (s *Store) update(ctx context.Context, op, id string, patch model.NodePatch) error {
	err := s.backend.UpdateNode(ctx, id, patch)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return s.fail(op, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		s.logger.Debug("node gone on backend, treating update as done", "op", op, "id", id)
	}
	s.tree.Update(id, patch.Apply)
	s.notice = nil
	s.persistTreeLocked()
	s.emitLocked(SourceLocal)
	return nil
}

// DeleteNode deletes a node and its subtree once the backend confirms it.
// The caller must have obtained the user's confirmation. If the active
// folder is removed, the first remaining top-level folder becomes active.
func (s *Store) DeleteNode(ctx context.Context, id string) error {
	if _, err := s.lookup(id, ""); err != nil {
		return err
	}

	err := s.backend.DeleteNode(ctx, id)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return s.fail("delete", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	removed := s.tree.Remove(id)
	if !s.tree.IsTopLevelFolder(s.active) {
		s.active, _ = s.tree.FirstFolderID()
		s.persistActiveLocked()
	}
	s.notice = nil
	s.persistTreeLocked()
	s.emitLocked(SourceLocal)

	s.logger.Info("node deleted", "id", id, "removed", len(removed))
	return nil
}

// MoveNode moves a node into targetFolderID. The move is applied locally at
// once; if the backend rejects it the node is moved back to where it was.
func (s *Store) MoveNode(ctx context.Context, id, targetFolderID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	oldParent, oldIndex, ok := s.tree.Position(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", model.ErrNodeNotFound, id)
	}
	if oldParent == targetFolderID {
		s.mu.Unlock()
		return nil
	}
	if targetFolderID == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: move target is required", model.ErrParentNotFound)
	}
	if err := s.tree.Move(id, targetFolderID); err != nil {
		s.mu.Unlock()
		return err
	}
	prevActive := s.active
	if !s.tree.IsTopLevelFolder(s.active) {
		s.active, _ = s.tree.FirstFolderID()
	}
	s.nextMove++
	seq := s.nextMove
	s.moves = append(s.moves, pendingMove{seq: seq, id: id, oldParent: oldParent, oldIndex: oldIndex})
	s.emitLocked(SourceLocal)

	err := s.backend.UpdateNode(ctx, id, model.NodePatch{ParentID: model.StringPtr(targetFolderID)})
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.mu.Lock()
		s.settleMoveLocked(seq)
		if s.closed {
			s.mu.Unlock()
			return ErrClosed
		}
		if rbErr := s.tree.MoveTo(id, oldParent, oldIndex); rbErr != nil {
			// The node or its old parent went away while the call was in flight.
			s.logger.Warn("move rollback failed", "id", id, "error", rbErr)
		}
		if s.tree.IsTopLevelFolder(prevActive) {
			s.active = prevActive
		}
		s.notice = noticeFor("move", err)
		// Another confirmed mutation may have cached the tree in the meantime.
		s.persistTreeLocked()
		s.emitLocked(SourceRollback)
		s.logger.Warn("move rejected, rolled back", "id", id, "target", targetFolderID, "error", err)
		return fmt.Errorf("move: %w", err)
	}

	s.mu.Lock()
	s.settleMoveLocked(seq)
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.notice = nil
	s.persistTreeLocked()
	if s.active != prevActive {
		s.persistActiveLocked()
	}
	s.emitLocked(SourceLocal)
	return nil
}

// SetActiveFolder selects the top-level folder shown in the grid.
func (s *Store) SetActiveFolder(id string) error {
	s.mu.Lock()
	if !s.tree.IsTopLevelFolder(id) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", model.ErrParentNotFound, id)
	}
	if s.active == id {
		s.mu.Unlock()
		return nil
	}
	s.active = id
	s.persistActiveLocked()
	s.emitLocked(SourceLocal)
	return nil
}

// ClearNotice drops the current notice.
func (s *Store) ClearNotice() {
	s.mu.Lock()
	if s.notice == nil {
		s.mu.Unlock()
		return
	}
	s.notice = nil
	s.emitLocked(SourceLocal)
}

// WidgetSource returns the stored source preference of a widget type.
func (s *Store) WidgetSource(widgetType string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	var source string
	ok := s.cache.Get(cache.WidgetSourceKey(widgetType), &source)
	return source, ok
}

// SetWidgetSource stores the source preference of a widget type.
func (s *Store) SetWidgetSource(widgetType, source string) error {
	if s.cache == nil {
		return nil
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return s.cache.Remove(cache.WidgetSourceKey(widgetType))
	}
	return s.cache.Set(cache.WidgetSourceKey(widgetType), source)
}

// lookup finds id, optionally checking its kind.
func (s *Store) lookup(id string, kind model.Kind) (model.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.tree.Find(id)
	if !ok || (kind != "" && node.Kind != kind) {
		return model.Node{}, fmt.Errorf("%w: %s", model.ErrNodeNotFound, id)
	}
	return node, nil
}

func (s *Store) requireFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.tree.Find(id)
	if !ok || !node.IsFolder() {
		return fmt.Errorf("%w: %s", model.ErrParentNotFound, id)
	}
	return nil
}

// fail records a notice for a failed backend call and returns the wrapped error.
func (s *Store) fail(op string, err error) error {
	s.logger.Warn("operation failed", "op", op, "error", err)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notice = noticeFor(op, err)
	s.emitLocked(SourceLocal)
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) stateLocked() State {
	st := State{
		Tree:    s.tree.Clone(),
		Loading: s.loading,
		Stale:   s.stale,
	}
	if s.active != "" {
		active := s.active
		st.ActiveFolderID = &active
	}
	if s.notice != nil {
		n := *s.notice
		st.Notice = &n
	}
	return st
}

// emitLocked snapshots the state, releases the lock and notifies listeners.
// It must be called with s.mu held and returns with it released.
func (s *Store) emitLocked(source Source) {
	ev := Event{State: s.stateLocked(), Source: source}
	listeners := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *Store) settleMoveLocked(seq int) {
	for i, m := range s.moves {
		if m.seq == seq {
			s.moves = append(s.moves[:i], s.moves[i+1:]...)
			return
		}
	}
}

// confirmedTreeLocked returns the tree without moves still awaiting the
// backend, undoing them newest first.
func (s *Store) confirmedTreeLocked() *model.Tree {
	if len(s.moves) == 0 {
		return s.tree
	}
	tree := s.tree.Clone()
	for i := len(s.moves) - 1; i >= 0; i-- {
		m := s.moves[i]
		if err := tree.MoveTo(m.id, m.oldParent, m.oldIndex); err != nil {
			s.logger.Debug("pending move not undone in cached tree", "id", m.id, "error", err)
		}
	}
	return tree
}

func (s *Store) persistTreeLocked() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(cache.KeyTree, s.confirmedTreeLocked()); err != nil {
		s.logger.Warn("failed to cache tree", "error", err)
	}
}

func (s *Store) persistActiveLocked() {
	if s.cache == nil {
		return
	}
	var err error
	if s.active == "" {
		err = s.cache.Remove(cache.KeyActiveFolderID)
	} else {
		err = s.cache.Set(cache.KeyActiveFolderID, s.active)
	}
	if err != nil {
		s.logger.Warn("failed to cache active folder", "error", err)
	}
}
