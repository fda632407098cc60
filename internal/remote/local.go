package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nikbrunner/hive/internal/model"
)

// Local is a backend that keeps the tree in a JSON file on disk.
// It is used when no backend url is configured.
type Local struct {
	mu   sync.Mutex
	path string
	tree *model.Tree
	now  func() time.Time
}

// NewLocal creates a Local backend stored at path.
func NewLocal(path string) *Local {
	return &Local{path: path, now: time.Now}
}

// Path returns the storage file path.
func (l *Local) Path() string {
	return l.path
}

// load reads the tree once. A missing file is an empty tree.
func (l *Local) load() error {
	if l.tree != nil {
		return nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.tree = model.NewTree()
			return nil
		}
		return err
	}

	tree := model.NewTree()
	if err := json.Unmarshal(data, tree); err != nil {
		return fmt.Errorf("reading %s: %w", l.path, err)
	}
	l.tree = tree
	return nil
}

func (l *Local) save() error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(l.tree, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}

// FetchTree returns a copy of the stored tree.
func (l *Local) FetchTree(ctx context.Context) (*model.Tree, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l.tree.Clone(), nil
}

// CreateNode assigns an id and stores the node.
func (l *Local) CreateNode(ctx context.Context, draft model.NodeDraft) (model.Node, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return model.Node{}, err
	}
	if err := l.load(); err != nil {
		return model.Node{}, err
	}

	node := model.Node{
		ID:         model.NewID(),
		Kind:       draft.Kind,
		Title:      draft.Title,
		URL:        draft.URL,
		WidgetType: draft.WidgetType,
		CreatedAt:  l.now().UTC(),
	}
	parent := ""
	if draft.ParentID != nil {
		parent = *draft.ParentID
	}
	if err := l.tree.InsertChild(parent, node); err != nil {
		if errors.Is(err, model.ErrParentNotFound) {
			return model.Node{}, fmt.Errorf("%w: %v", model.ErrNotFound, err)
		}
		return model.Node{}, err
	}
	if err := l.save(); err != nil {
		l.tree.Remove(node.ID)
		return model.Node{}, err
	}

	created, _ := l.tree.Find(node.ID)
	return created, nil
}

// UpdateNode applies patch to id.
func (l *Local) UpdateNode(ctx context.Context, id string, patch model.NodePatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.load(); err != nil {
		return err
	}
	if _, ok := l.tree.Find(id); !ok {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	prev := l.tree.Clone()
	if patch.ParentID != nil {
		if err := l.tree.Move(id, *patch.ParentID); err != nil {
			return model.NewValidationError("parentId", err.Error())
		}
	}
	l.tree.Update(id, patch.Apply)
	if err := l.save(); err != nil {
		l.tree = prev
		return err
	}
	return nil
}

// DeleteNode removes id and its subtree.
func (l *Local) DeleteNode(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.load(); err != nil {
		return err
	}
	prev := l.tree.Clone()
	if len(l.tree.Remove(id)) == 0 {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	if err := l.save(); err != nil {
		l.tree = prev
		return err
	}
	return nil
}
