package core

import (
	"slices"
	"time"
)

// Metadata holds the fields decoded from a note preamble.
// A nil field means the preamble did not supply a usable value.
type Metadata struct {
	Title    *string    `json:"title,omitempty" yaml:"title,omitempty"`
	Created  *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Modified *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// IsZero reports whether every field is absent.
func (m Metadata) IsZero() bool {
	return m.Title == nil && m.Created == nil && m.Modified == nil
}

// Clone returns a copy that shares no pointers with m.
func (m Metadata) Clone() Metadata {
	return Metadata{
		Title:    clonePtr(m.Title),
		Created:  clonePtr(m.Created),
		Modified: clonePtr(m.Modified),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Note is the central entity of the domain.
// It is built once by the parser and never modified afterwards.
type Note struct {
	id       NoteID
	metadata Metadata
	content  Blocks
}

// NewNote assembles a Note. The content slice is owned by the note from now on.
func NewNote(id NoteID, metadata Metadata, content Blocks) *Note {
	return &Note{
		id:       id,
		metadata: metadata.Clone(),
		content:  content,
	}
}

// ID returns the note identifier.
func (n *Note) ID() NoteID {
	return n.id
}

// Metadata returns a copy of the decoded preamble.
func (n *Note) Metadata() Metadata {
	return n.metadata.Clone()
}

// Content returns the top-level blocks in document order.
func (n *Note) Content() Blocks {
	return slices.Clone(n.content)
}

func (*Note) node() {}
