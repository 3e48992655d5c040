package models

// MenuItem is a sidebar entry. An empty Permission means always visible.
type MenuItem struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Icon       string     `json:"icon,omitempty"`
	Path       string     `json:"path,omitempty"`
	Permission string     `json:"permission,omitempty"`
	Children   []MenuItem `json:"children,omitempty"`
}
