package core

import "strings"

// NoteID identifies a note. It is conventionally the file name without extension.
type NoteID string

// String returns the underlying identifier.
func (id NoteID) String() string {
	return string(id)
}

// Compare orders identifiers lexicographically.
// It returns -1, 0 or +1 like strings.Compare.
func (id NoteID) Compare(other NoteID) int {
	return strings.Compare(string(id), string(other))
}
