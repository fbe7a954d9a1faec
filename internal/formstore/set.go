package formstore

import "errors"

// Set returns a new document in which path holds value.
//
// Every document on the path from the root is shallow-copied; every other
// subtree is shared with doc. Absent intermediate documents are created
// empty. Stepping through a scalar or list fails with ErrNotDocument and
// returns nil; doc itself is never modified. A nil doc is treated as empty.
func Set(doc *Document, path Path, value Value) (*Document, error) {
	return set("set", doc, path, value)
}

func set(op string, doc *Document, path Path, value Value) (*Document, error) {
	if len(path) == 0 {
		return nil, &PathError{Op: op, Path: path, Segment: -1, Err: ErrMalformedPath}
	}
	if err := checkValue(value); err != nil {
		return nil, &PathError{Op: op, Path: path, Segment: len(path) - 1, Err: err}
	}
	return setAt(op, doc, path, 0, value)
}

// setAt rebuilds doc, the document found at path[:depth].
func setAt(op string, doc *Document, path Path, depth int, value Value) (*Document, error) {
	seg := path[depth]
	if depth == len(path)-1 {
		return doc.with(seg, value), nil
	}

	var child *Document
	if v, ok := doc.Field(seg); ok {
		d, isDoc := v.(*Document)
		if !isDoc {
			return nil, &PathError{Op: op, Path: path, Segment: depth, Err: ErrNotDocument}
		}
		child = d
	}

	sub, err := setAt(op, child, path, depth+1, value)
	if err != nil {
		return nil, err
	}
	return doc.with(seg, sub), nil
}

// SetListItem returns a new document in which item index of the list at
// path holds value. value must have the list's element kind.
func SetListItem(doc *Document, path Path, index int, value Value) (*Document, error) {
	const op = "set item"
	list, err := listAt(op, doc, path)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= list.Len() {
		return nil, &IndexError{Op: op, Path: path, Index: index, Len: list.Len()}
	}
	if value == nil || value.Kind() != list.Elem() {
		return nil, &PathError{Op: op, Path: path, Segment: len(path) - 1, Err: ErrKindMismatch}
	}

	items := list.Items()
	items[index] = value
	return set(op, doc, path, list.withItems(items))
}

// InsertListItem returns a new document in which the list at path has one
// more item, the empty-scalar default, at the end. An absent list is
// created as a single-item string list, along with any absent parents.
func InsertListItem(doc *Document, path Path) (*Document, error) {
	const op = "insert item"
	list, err := listAt(op, doc, path)
	if errors.Is(err, ErrNotFound) {
		return set(op, doc, path, NewStringList())
	}
	if err != nil {
		return nil, err
	}

	items := make([]Value, 0, list.Len()+1)
	items = append(items, list.items...)
	items = append(items, list.Default())
	return set(op, doc, path, list.withItems(items))
}

// RemoveListItem returns a new document without item index of the list at
// path. Removing the only item leaves a single empty-scalar placeholder.
func RemoveListItem(doc *Document, path Path, index int) (*Document, error) {
	const op = "remove item"
	list, err := listAt(op, doc, path)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= list.Len() {
		return nil, &IndexError{Op: op, Path: path, Index: index, Len: list.Len()}
	}

	items := make([]Value, 0, list.Len()-1)
	items = append(items, list.items[:index]...)
	items = append(items, list.items[index+1:]...)
	return set(op, doc, path, list.withItems(items))
}

func listAt(op string, doc *Document, path Path) (*List, error) {
	v, err := lookup(op, doc, path)
	if err != nil {
		return nil, err
	}
	list, ok := v.(*List)
	if !ok {
		return nil, &PathError{Op: op, Path: path, Segment: len(path) - 1, Err: ErrNotList}
	}
	return list, nil
}
