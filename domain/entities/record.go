package entities

// Record is an insertion-ordered set of named values.
type Record struct {
	cols []string
	vals []Value
}

// NewRecordOf creates an empty record with room for n columns.
func NewRecordOf(n ...int) *Record {
	size := 0
	if len(n) > 0 {
		size = n[0]
	}
	return &Record{
		cols: make([]string, 0, size),
		vals: make([]Value, 0, size),
	}
}

// Push appends a column, replacing the value if the column already exists.
func (r *Record) Push(col string, v Value) {
	for i, c := range r.cols {
		if c == col {
			r.vals[i] = v
			return
		}
	}
	r.cols = append(r.cols, col)
	r.vals = append(r.vals, v)
}

// Get returns the value stored under col.
func (r *Record) Get(col string) (Value, bool) {
	for i, c := range r.cols {
		if c == col {
			return r.vals[i], true
		}
	}
	return Value{}, false
}

// Len returns the number of columns.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cols)
}

// Columns returns a copy of the column names in insertion order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}
