package jobform

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/formstore"
)

// Form is a handle on one version of a job-posting document.
//
// Form is a value: every edit returns a new Form and leaves the receiver
// untouched, so the caller replaces its handle wholesale. A failed edit
// returns the receiver unchanged together with the error.
type Form struct {
	doc *formstore.Document
}

// New wraps doc. A nil doc is an empty form.
func New(doc *formstore.Document) Form {
	return Form{doc: doc}
}

// Snapshot returns the current document. Documents are immutable, so the
// snapshot can be rendered or submitted while the form keeps changing.
func (f Form) Snapshot() *formstore.Document {
	if f.doc == nil {
		return formstore.NewDocument()
	}
	return f.doc
}

// MarshalJSON encodes the current document.
func (f Form) MarshalJSON() ([]byte, error) {
	return f.Snapshot().MarshalJSON()
}

// Text returns the text of a text field, or "" when unset.
func (f Form) Text(field TextField) string {
	s, _ := formstore.GetString(f.doc, field.path)
	return s
}

// SetText stores value in a text field.
func (f Form) SetText(field TextField, value string) (Form, error) {
	return f.set(field.path, formstore.String(value))
}

// Number returns a numeric field as the text shown in its input.
func (f Form) Number(field NumberField) string {
	s, _ := formstore.GetString(f.doc, field.path)
	return s
}

// SetNumber stores the text typed into a numeric field.
func (f Form) SetNumber(field NumberField, value string) (Form, error) {
	return f.set(field.path, formstore.String(value))
}

// Items returns the rows of a list field. An unset list reads as one
// empty row, the same as an emptied one.
func (f Form) Items(field ListField) []string {
	l, ok := formstore.GetList(f.doc, field.path)
	if !ok {
		return []string{""}
	}
	return l.Strings()
}

// Filled returns the non-blank rows of a list field, trimmed. The result
// is never nil.
func (f Form) Filled(field ListField) []string {
	l, ok := formstore.GetList(f.doc, field.path)
	if !ok {
		return []string{}
	}
	items := l.Filled()
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := formstore.Text(item)
		out = append(out, s)
	}
	return out
}

// SetItems replaces every row of a list field.
func (f Form) SetItems(field ListField, items ...string) (Form, error) {
	return f.set(field.path, formstore.NewStringList(items...))
}

// SetItem replaces row index of a list field.
func (f Form) SetItem(field ListField, index int, value string) (Form, error) {
	doc, err := formstore.SetListItem(f.doc, field.path, index, formstore.String(value))
	if err != nil {
		return f, err
	}
	return Form{doc: doc}, nil
}

// AddItem appends an empty row to a list field.
func (f Form) AddItem(field ListField) (Form, error) {
	doc, err := formstore.InsertListItem(f.doc, field.path)
	if err != nil {
		return f, err
	}
	return Form{doc: doc}, nil
}

// RemoveItem deletes row index of a list field. Removing the last row
// leaves one empty row.
func (f Form) RemoveItem(field ListField, index int) (Form, error) {
	doc, err := formstore.RemoveListItem(f.doc, field.path, index)
	if err != nil {
		return f, err
	}
	return Form{doc: doc}, nil
}

func (f Form) set(path formstore.Path, v formstore.Value) (Form, error) {
	doc, err := formstore.Set(f.doc, path, v)
	if err != nil {
		return f, err
	}
	return Form{doc: doc}, nil
}

// EditOp names an edit arriving from a text boundary.
type EditOp string

// Edit operations.
const (
	OpSet        EditOp = "set"
	OpAddItem    EditOp = "add_item"
	OpSetItem    EditOp = "set_item"
	OpRemoveItem EditOp = "remove_item"
)

// Edit is an edit addressed by dotted path, as received from HTTP or the
// command line.
type Edit struct {
	Op    EditOp `json:"op"`
	Path  string `json:"path"`
	Index int    `json:"index,omitempty"`
	Value string `json:"value,omitempty"`
}

// Apply resolves e.Path against the schema and applies the edit.
func (f Form) Apply(e Edit) (Form, error) {
	field, ok := FieldByPath(e.Path)
	if !ok {
		return f, &UnknownFieldError{Path: e.Path}
	}

	switch e.Op {
	case OpSet:
		switch t := field.(type) {
		case TextField:
			return f.SetText(t, e.Value)
		case NumberField:
			return f.SetNumber(t, e.Value)
		}
		return f, &FieldKindError{Field: field, Op: e.Op}
	case OpAddItem, OpSetItem, OpRemoveItem:
		list, ok := field.(ListField)
		if !ok {
			return f, &FieldKindError{Field: field, Op: e.Op}
		}
		switch e.Op {
		case OpAddItem:
			return f.AddItem(list)
		case OpSetItem:
			return f.SetItem(list, e.Index, e.Value)
		default:
			return f.RemoveItem(list, e.Index)
		}
	default:
		return f, fmt.Errorf("%w %q", ErrUnknownEdit, e.Op)
	}
}

// ApplyAll applies edits in order. It stops at the first failure and
// returns the receiver unchanged.
func (f Form) ApplyAll(edits ...Edit) (Form, error) {
	out := f
	for i, e := range edits {
		next, err := out.Apply(e)
		if err != nil {
			return f, fmt.Errorf("edit %d (%s %s): %w", i+1, e.Op, e.Path, err)
		}
		out = next
	}
	return out, nil
}
