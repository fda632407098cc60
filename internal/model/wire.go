package model

import (
	"encoding/json"
	"fmt"
)

// wireNode is the nested form used by the backend and the cache.
type wireNode struct {
	Node
	Children []wireNode `json:"children,omitempty"`
}

// MarshalJSON encodes the tree as a nested forest.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.forest(rootKey))
}

func (t *Tree) forest(parentID string) []wireNode {
	ids := t.children[parentID]
	result := make([]wireNode, 0, len(ids))
	for _, id := range ids {
		result = append(result, wireNode{
			Node:     t.nodes[id],
			Children: t.forest(id),
		})
	}
	return result
}

// UnmarshalJSON decodes a nested forest. Parent ids are derived from nesting;
// duplicate ids and children under non-folders are rejected.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var forest []wireNode
	if err := json.Unmarshal(data, &forest); err != nil {
		return err
	}

	tree := NewTree()
	if err := tree.addForest(rootKey, forest); err != nil {
		return err
	}
	*t = *tree
	return nil
}

func (t *Tree) addForest(parentID string, forest []wireNode) error {
	for _, w := range forest {
		if len(w.Children) > 0 && w.Kind != KindFolder {
			return NewValidationError("children", fmt.Sprintf("%s %q cannot have children", w.Kind, w.ID))
		}
		if err := t.InsertChild(parentID, w.Node); err != nil {
			return fmt.Errorf("decoding node %q: %w", w.ID, err)
		}
		if err := t.addForest(w.ID, w.Children); err != nil {
			return err
		}
	}
	return nil
}
