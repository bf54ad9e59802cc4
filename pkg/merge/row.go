package merge

import (
	"maps"
	"slices"
)

// Field is one named value of a Row.
type Field struct {
	Name  string
	Value string
}

// Row is one recipient record. Fields keep the order of the source header
// and names are unique. A Row is not modified after construction.
type Row struct {
	fields []Field
	index  map[string]int
}

// NewRow builds a Row from fields. When a name repeats, the first value wins.
func NewRow(fields ...Field) Row {
	r := Row{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, ok := r.index[f.Name]; ok {
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// RowFromMap builds a Row with fields sorted by name.
func RowFromMap(m map[string]string) Row {
	fields := make([]Field, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		fields = append(fields, Field{Name: name, Value: m[name]})
	}
	return NewRow(fields...)
}

// Get returns the value of the named field.
func (r Row) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in order.
func (r Row) Fields() []Field {
	return slices.Clone(r.fields)
}

// Map returns the fields as a map.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value
	}
	return m
}
