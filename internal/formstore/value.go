// Package formstore implements a copy-on-write document tree addressed by
// dot-separated paths.
//
// A Document is never modified after construction. Every write operation
// (Set, SetListItem, InsertListItem, RemoveListItem) returns a new root that
// shares every subtree not on the written path with its input, so any
// document handed out earlier stays valid and unchanged.
package formstore

import (
	"strconv"
)

// Kind identifies the shape of a Value.
type Kind int

// Value kinds. The zero Kind is KindString.
const (
	KindString Kind = iota
	KindNumber
	KindDocument
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDocument:
		return "document"
	case KindList:
		return "list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsScalar reports whether values of this kind can be list elements.
func (k Kind) IsScalar() bool {
	return k == KindString || k == KindNumber
}

// Value is a node of a document tree.
// It is implemented by String, Number, *Document and *List only.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a text scalar.
type String string

// Kind implements Value.
func (String) Kind() Kind { return KindString }
func (String) isValue()   {}

// Number is a numeric scalar.
type Number float64

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}

// Text renders a scalar the way a form input would show it.
// Numbers use the shortest representation ("80000", "3.5").
func Text(v Value) (string, bool) {
	switch s := v.(type) {
	case String:
		return string(s), true
	case Number:
		return strconv.FormatFloat(float64(s), 'f', -1, 64), true
	default:
		return "", false
	}
}

// zeroScalar is the empty-scalar default for a list element kind.
func zeroScalar(k Kind) Value {
	if k == KindNumber {
		return Number(0)
	}
	return String("")
}

// isEmptyScalar reports whether v is the empty-scalar default of its kind.
func isEmptyScalar(v Value) bool {
	switch s := v.(type) {
	case String:
		return s == ""
	case Number:
		return s == 0
	default:
		return false
	}
}

// checkValue rejects nil values and lists that would break the
// never-empty invariant.
func checkValue(v Value) error {
	switch t := v.(type) {
	case nil:
		return ErrUnsupportedValue
	case *Document:
		if t == nil {
			return ErrUnsupportedValue
		}
	case *List:
		if t == nil || len(t.items) == 0 {
			return ErrUnsupportedValue
		}
	}
	return nil
}

// Equal reports whether a and b are deeply equal.
// Field order is not significant; list order is.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String, Number:
		return a == b
	case *Document:
		bv := b.(*Document)
		if av == bv {
			return true
		}
		if av.Len() != bv.Len() {
			return false
		}
		if av.Len() == 0 {
			return true
		}
		for _, name := range av.keys {
			other, ok := bv.Field(name)
			if !ok || !Equal(av.fields[name], other) {
				return false
			}
		}
		return true
	case *List:
		bv := b.(*List)
		if av == bv {
			return true
		}
		if av.Len() != bv.Len() || av.Elem() != bv.Elem() {
			return false
		}
		for i := range av.items {
			if av.items[i] != bv.items[i] {
				return false
			}
		}
		return true
	}
	return false
}
