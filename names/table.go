// Package names interns class-name strings encountered while verifying a
// single class. Indices are only meaningful within the pass (or the blob)
// that produced them.
package names

// Index refers to an interned class name in a Table.
type Index uint32

// Table interns class names to dense indices for one verification pass.
// A pass runs on a single goroutine, so the table is not synchronized;
// it must never be shared across passes or threads.
type Table struct {
	byName map[string]Index
	byIdx  []string
}

// NewTable creates an empty name table.
func NewTable() *Table {
	return &Table{
		byName: make(map[string]Index),
	}
}

// Intern returns the index for a class name, adding it if unseen.
func (t *Table) Intern(name string) Index {
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	idx := Index(len(t.byIdx))
	t.byIdx = append(t.byIdx, name)
	t.byName[name] = idx
	return idx
}

// Lookup returns the index for a name, or false if it was never interned.
func (t *Table) Lookup(name string) (Index, bool) {
	idx, ok := t.byName[name]
	return idx, ok
}

// Name returns the class name for an index, or "" if out of range.
func (t *Table) Name(idx Index) string {
	if int(idx) >= len(t.byIdx) {
		return ""
	}
	return t.byIdx[idx]
}

// Len returns the number of interned names.
func (t *Table) Len() int {
	return len(t.byIdx)
}
