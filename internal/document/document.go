package document

import (
	"fmt"

	"github.com/repoconf-labs/repoconf/internal/blocks"
)

// Document is a configuration file under edit. It tracks the original
// source text and a history of reversible edits.
type Document struct {
	format  Format
	source  string
	current string
	history []Edit
}

// New builds a document from content in the given format. The content must
// parse as the format.
func New(content string, format Format) (*Document, error) {
	if err := handlerFor(format).Validate(content); err != nil {
		return nil, err
	}
	return &Document{format: format, source: content, current: content}, nil
}

// Format returns the document's format.
func (d *Document) Format() Format { return d.format }

// Text returns the current content.
func (d *Document) Text() string { return d.current }

// Source returns the content the document was created with.
func (d *Document) Source() string { return d.source }

// Dirty reports whether the current content differs from the source.
func (d *Document) Dirty() bool { return d.current != d.source }

// History returns the edits applied so far, oldest first.
func (d *Document) History() []Edit {
	out := make([]Edit, len(d.history))
	copy(out, d.history)
	return out
}

func (d *Document) record(after, op string) {
	if e, changed := diffEdit(d.current, after, op); changed {
		d.history = append(d.history, e)
		d.current = after
	}
}

// GetPath resolves a structured path. The boolean reports presence.
func (d *Document) GetPath(path string) (any, bool, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	return handlerFor(d.format).GetPath(d.current, segs)
}

// SetPath assigns value at path, creating intermediate objects for missing
// key segments.
func (d *Document) SetPath(path string, value any) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	after, err := handlerFor(d.format).SetPath(d.current, segs, value)
	if err != nil {
		return err
	}
	d.record(after, "set_path "+path)
	return nil
}

// RemovePath deletes the value at path. A path that does not resolve is a
// no-op.
func (d *Document) RemovePath(path string) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	after, err := handlerFor(d.format).RemovePath(d.current, segs)
	if err != nil {
		return err
	}
	d.record(after, "remove_path "+path)
	return nil
}

// UpsertBlock writes the managed block with the given id. JSON documents
// use the reserved top-level key; every other format uses marker pairs.
func (d *Document) UpsertBlock(id, content string) error {
	var after string
	var err error
	if d.format == FormatJSON {
		after, err = blocks.JSONUpsert(d.current, id, content)
	} else {
		after, err = blocks.Upsert(d.current, id, content, d.format.MarkerStyle())
	}
	if err != nil {
		return err
	}
	d.record(after, "upsert_block "+id)
	return nil
}

// RemoveBlock deletes the managed block with the given id.
func (d *Document) RemoveBlock(id string) error {
	var after string
	var err error
	if d.format == FormatJSON {
		after, err = blocks.JSONRemove(d.current, id)
	} else {
		after, err = blocks.Remove(d.current, id, d.format.MarkerStyle())
	}
	if err != nil {
		return err
	}
	d.record(after, "remove_block "+id)
	return nil
}

// Block returns the content of the managed block with the given id. The
// boolean reports presence. Duplicate marker pairs resolve first-match.
func (d *Document) Block(id string) (string, bool, error) {
	if d.format == FormatJSON {
		r, ok := blocks.JSONGet(d.current, id)
		if !ok {
			return "", false, nil
		}
		return r.String(), true, nil
	}
	b, ok, err := blocks.Find(d.current, id, d.format.MarkerStyle())
	if err != nil || !ok {
		return "", false, err
	}
	return b.Content, true, nil
}

// Blocks lists the managed block ids present in the document.
func (d *Document) Blocks() []string {
	if d.format == FormatJSON {
		return blocks.JSONBlocks(d.current)
	}
	var ids []string
	for _, b := range blocks.Parse(d.current, d.format.MarkerStyle()).Blocks {
		ids = append(ids, b.ID)
	}
	return ids
}

// Undo reverses the most recent edit. Undoing with no history is an error.
func (d *Document) Undo() error {
	if len(d.history) == 0 {
		return fmt.Errorf("document: nothing to undo")
	}
	last := d.history[len(d.history)-1]
	restored, err := last.Inverse().Apply(d.current)
	if err != nil {
		return err
	}
	d.history = d.history[:len(d.history)-1]
	d.current = restored
	return nil
}

// Revert unwinds the whole history, restoring the source byte-for-byte.
func (d *Document) Revert() error {
	for len(d.history) > 0 {
		if err := d.Undo(); err != nil {
			return err
		}
	}
	return nil
}
