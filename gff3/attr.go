package gff3

// AttrValue is a GFF3 column-9 attribute value. It is either a single
// scalar string or an ordered list of strings (comma-split at parse time).
// Every read path must pattern-match on IsList before touching the other
// field; the zero AttrValue is the empty scalar.
type AttrValue struct {
	isList bool
	scalar string
	list   []string
}

// Scalar returns a single-valued AttrValue.
func Scalar(s string) AttrValue {
	return AttrValue{scalar: s}
}

// List returns a list-valued AttrValue. The order of vs is preserved.
func List(vs []string) AttrValue {
	return AttrValue{isList: true, list: append([]string(nil), vs...)}
}

// IsList reports whether the value is list-valued.
func (v AttrValue) IsList() bool { return v.isList }

// String returns the scalar value. It is the first element for a
// list-valued AttrValue, or the empty string for an empty list.
func (v AttrValue) String() string {
	if !v.isList {
		return v.scalar
	}
	if len(v.list) == 0 {
		return ""
	}
	return v.list[0]
}

// Values returns the value as a list. A scalar is returned as a
// single-element list.
func (v AttrValue) Values() []string {
	if v.isList {
		return v.list
	}
	return []string{v.scalar}
}

// Joined renders the value the way it appears in GFF3 column 9: a scalar
// as-is, a list comma-joined (escaping is the emitter's job, not this
// method's).
func (v AttrValue) Joined() string {
	if !v.isList {
		return v.scalar
	}
	out := ""
	for i, s := range v.list {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

// Empty reports whether the value carries no data at all — used by the
// tokenizer to drop a key whose value decoded to the empty string.
func (v AttrValue) Empty() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return v.scalar == ""
}

// AttrMap is an ordered mapping from attribute name to AttrValue. Go maps
// don't preserve insertion order, so AttrMap pairs a map with a parallel
// key-order slice; all mutation goes through Set/Delete to keep the two in
// sync.
type AttrMap struct {
	values map[string]AttrValue
	order  []string
}

// NewAttrMap returns an empty AttrMap.
func NewAttrMap() *AttrMap {
	return &AttrMap{values: make(map[string]AttrValue)}
}

// Get returns the value for key and whether it was present.
func (m *AttrMap) Get(key string) (AttrValue, bool) {
	if m == nil {
		return AttrValue{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set assigns v to key, appending key to the order if it is new.
func (m *AttrMap) Set(key string, v AttrValue) {
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = v
}

// Delete removes key, if present.
func (m *AttrMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Keys returns attribute names in insertion order.
func (m *AttrMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.order...)
}

// Clone returns a copy of m with its own map and key order; list-valued
// entries share their backing slices with m.
func (m *AttrMap) Clone() *AttrMap {
	c := NewAttrMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		c.Set(k, v)
	}
	return c
}
