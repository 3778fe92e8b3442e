package model

// UINode is one element of an externally owned accessibility tree. A nil entry
// in Children stands for a node the host failed to retrieve.
type UINode struct {
	Text     string    `json:"text,omitempty"`
	Children []*UINode `json:"children,omitempty"`
}
