package formstore

import (
	"strings"
	"unicode"
)

// Path is an ordered sequence of field names.
type Path []string

// ParsePath splits a dot-separated path such as
// "job_description.requirements.skills".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, &PathError{Op: "parse", Segment: -1, Err: ErrMalformedPath}
	}
	segments := strings.Split(s, ".")
	for i, seg := range segments {
		if seg == "" || strings.IndexFunc(seg, unicode.IsSpace) >= 0 {
			return nil, &PathError{Op: "parse", Path: segments, Segment: i, Err: ErrMalformedPath}
		}
	}
	return segments, nil
}

// MustParsePath is ParsePath for package-level path constants.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Lookup navigates doc along path and explains a failed resolution with a
// *PathError wrapping ErrMalformedPath, ErrNotFound or ErrNotDocument.
func Lookup(doc *Document, path Path) (Value, error) {
	return lookup("get", doc, path)
}

// Get returns the value at path, or false when any segment is absent or
// steps into a scalar or list.
func Get(doc *Document, path Path) (Value, bool) {
	v, err := Lookup(doc, path)
	return v, err == nil
}

// GetString returns the scalar at path rendered as text.
func GetString(doc *Document, path Path) (string, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return "", false
	}
	return Text(v)
}

// GetDocument returns the nested document at path.
func GetDocument(doc *Document, path Path) (*Document, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	d, ok := v.(*Document)
	return d, ok
}

// GetList returns the list at path.
func GetList(doc *Document, path Path) (*List, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	l, ok := v.(*List)
	return l, ok
}

func lookup(op string, doc *Document, path Path) (Value, error) {
	if len(path) == 0 {
		return nil, &PathError{Op: op, Path: path, Segment: -1, Err: ErrMalformedPath}
	}
	current := doc
	for i, seg := range path {
		v, ok := current.Field(seg)
		if !ok {
			return nil, &PathError{Op: op, Path: path, Segment: i, Err: ErrNotFound}
		}
		if i == len(path)-1 {
			return v, nil
		}
		next, ok := v.(*Document)
		if !ok {
			return nil, &PathError{Op: op, Path: path, Segment: i, Err: ErrNotDocument}
		}
		current = next
	}
	return nil, &PathError{Op: op, Path: path, Segment: -1, Err: ErrMalformedPath}
}
