package model

import "time"

// Kind discriminates the node variants.
type Kind string

const (
	KindFolder Kind = "folder"
	KindLink   Kind = "link"
	KindWidget Kind = "widget"
)

// Valid reports whether k is one of the known node kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFolder, KindLink, KindWidget:
		return true
	}
	return false
}

// Node is a single entry of the bookmark tree.
// Children are owned by the Tree, not by the node itself.
type Node struct {
	ID         string    `json:"_id"`
	Kind       Kind      `json:"type"`
	Title      string    `json:"title"`
	ParentID   *string   `json:"parentId"` // nil = top level
	URL        string    `json:"url,omitempty"`
	WidgetType string    `json:"widgetType,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsFolder reports whether the node can hold children.
func (n Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// Parent returns the parent id, "" for top-level nodes.
func (n Node) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// NodeDraft holds the fields sent to the backend when creating a node.
type NodeDraft struct {
	Kind       Kind    `json:"type"`
	Title      string  `json:"title"`
	ParentID   *string `json:"parentId"`
	URL        string  `json:"url,omitempty"`
	WidgetType string  `json:"widgetType,omitempty"`
}

// NodePatch holds a partial update. Nil fields are left unchanged.
type NodePatch struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

// Apply returns n with the patch applied.
func (p NodePatch) Apply(n Node) Node {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.URL != nil {
		n.URL = *p.URL
	}
	if p.ParentID != nil {
		parent := *p.ParentID
		n.ParentID = &parent
	}
	return n
}

// StringPtr returns a pointer to s, nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
