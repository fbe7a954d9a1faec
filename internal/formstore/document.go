package formstore

// Document is an immutable mapping from field names to values.
// Fields keep their insertion order. A nil *Document behaves as an empty
// document for every read.
type Document struct {
	keys   []string
	fields map[string]Value
}

// Field is a name/value pair used to build a Document.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for Field{Name: name, Value: v}.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// NewDocument builds a document from fields in order. A repeated name keeps
// its first position and its last value. Nil values are skipped.
func NewDocument(fields ...Field) *Document {
	d := &Document{
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if checkValue(f.Value) != nil {
			continue
		}
		if _, exists := d.fields[f.Name]; !exists {
			d.keys = append(d.keys, f.Name)
		}
		d.fields[f.Name] = f.Value
	}
	return d
}

// Kind implements Value.
func (d *Document) Kind() Kind { return KindDocument }
func (d *Document) isValue()   {}

// Len returns the number of fields.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the field names in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Field returns the value stored under name.
func (d *Document) Field(name string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.fields[name]
	return v, ok
}

// Fields returns the fields in insertion order.
func (d *Document) Fields() []Field {
	if d == nil {
		return nil
	}
	out := make([]Field, 0, len(d.keys))
	for _, name := range d.keys {
		out = append(out, Field{Name: name, Value: d.fields[name]})
	}
	return out
}

// with returns a shallow copy of d in which name holds v. All other field
// values are shared with d.
func (d *Document) with(name string, v Value) *Document {
	n := &Document{
		keys:   make([]string, 0, d.Len()+1),
		fields: make(map[string]Value, d.Len()+1),
	}
	if d != nil {
		n.keys = append(n.keys, d.keys...)
		for k, fv := range d.fields {
			n.fields[k] = fv
		}
	}
	if _, exists := n.fields[name]; !exists {
		n.keys = append(n.keys, name)
	}
	n.fields[name] = v
	return n
}

// ToMap converts the document into plain Go values: string, float64,
// []any and map[string]any.
func (d *Document) ToMap() map[string]any {
	out := make(map[string]any, d.Len())
	for _, f := range d.Fields() {
		out[f.Name] = plain(f.Value)
	}
	return out
}

func plain(v Value) any {
	switch t := v.(type) {
	case String:
		return string(t)
	case Number:
		return float64(t)
	case *Document:
		return t.ToMap()
	case *List:
		items := make([]any, 0, t.Len())
		for _, item := range t.items {
			items = append(items, plain(item))
		}
		return items
	default:
		return nil
	}
}
