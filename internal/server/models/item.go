package models

import "time"

// Item types. The type selects the envelope format of Content.
const (
	ItemTypeText = "text"
	ItemTypeFile = "file"
)

// Item is a vault record owned by a single user. Content holds the encrypted
// envelope; when StorageKey is non-empty the envelope lives in the blob store
// instead and Content is empty. Size is a client-supplied display string.
type Item struct {
	ID         string
	UserID     string
	Name       string
	Type       string
	Content    string
	StorageKey string
	Size       string
	DateAdded  time.Time
}

// ValidType reports whether t is a known item type.
func ValidType(t string) bool {
	return t == ItemTypeText || t == ItemTypeFile
}
