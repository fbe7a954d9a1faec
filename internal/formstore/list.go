package formstore

import (
	"fmt"
	"strings"
)

// List is an immutable, homogeneous, ordered list of scalars.
// A List is never empty: constructors given no items produce a single
// empty-scalar placeholder.
type List struct {
	elem  Kind
	items []Value
}

// NewList builds a list of elem-kind scalars.
func NewList(elem Kind, items ...Value) (*List, error) {
	if !elem.IsScalar() {
		return nil, fmt.Errorf("%w: list of %s", ErrUnsupportedValue, elem)
	}
	l := &List{elem: elem, items: make([]Value, 0, max(len(items), 1))}
	for i, item := range items {
		if item == nil || item.Kind() != elem {
			return nil, fmt.Errorf("%w: item %d is not a %s", ErrKindMismatch, i, elem)
		}
		l.items = append(l.items, item)
	}
	if len(l.items) == 0 {
		l.items = append(l.items, zeroScalar(elem))
	}
	return l, nil
}

// NewStringList builds a string list.
func NewStringList(items ...string) *List {
	values := make([]Value, 0, len(items))
	for _, s := range items {
		values = append(values, String(s))
	}
	l, _ := NewList(KindString, values...)
	return l
}

// NewNumberList builds a number list.
func NewNumberList(items ...float64) *List {
	values := make([]Value, 0, len(items))
	for _, n := range items {
		values = append(values, Number(n))
	}
	l, _ := NewList(KindNumber, values...)
	return l
}

// Kind implements Value.
func (l *List) Kind() Kind { return KindList }
func (l *List) isValue()   {}

// Elem returns the element kind.
func (l *List) Elem() Kind {
	if l == nil {
		return KindString
	}
	return l.elem
}

// Len returns the number of items.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns item i.
func (l *List) At(i int) (Value, bool) {
	if i < 0 || i >= l.Len() {
		return nil, false
	}
	return l.items[i], true
}

// Items returns a copy of the items.
func (l *List) Items() []Value {
	out := make([]Value, l.Len())
	if l != nil {
		copy(out, l.items)
	}
	return out
}

// Strings renders every item as text.
func (l *List) Strings() []string {
	out := make([]string, 0, l.Len())
	for _, item := range l.Items() {
		s, _ := Text(item)
		out = append(out, s)
	}
	return out
}

// Default is the empty-scalar default used for new and placeholder rows.
func (l *List) Default() Value {
	return zeroScalar(l.Elem())
}

// Filled returns the items that are not blank. String items are trimmed
// and dropped when only whitespace is left; numbers are dropped at zero.
// The result may be empty; it is a plain slice, not a List.
func (l *List) Filled() []Value {
	out := make([]Value, 0, l.Len())
	for _, item := range l.Items() {
		if s, ok := item.(String); ok {
			item = String(strings.TrimSpace(string(s)))
		}
		if !isEmptyScalar(item) {
			out = append(out, item)
		}
	}
	return out
}

func (l *List) withItems(items []Value) *List {
	if len(items) == 0 {
		items = []Value{l.Default()}
	}
	return &List{elem: l.Elem(), items: items}
}
