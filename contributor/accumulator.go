package contributor

// Accumulator is the client-local staging area for one upload: an
// insertion-ordered mapping from field name to the column of string values
// pending for that field. Values are staged by the human-readable field
// name; the upload encoder translates names to server field ids.
type Accumulator struct {
	keys    []string
	columns map[string][]string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{columns: make(map[string][]string)}
}

func (a *Accumulator) ensureInit() {
	if a.columns == nil {
		a.columns = make(map[string][]string)
	}
}

// PushBack appends one value to the named column, creating the column if it
// does not exist yet.
func (a *Accumulator) PushBack(fieldName, value string) {
	a.ensureInit()
	if _, exists := a.columns[fieldName]; !exists {
		a.keys = append(a.keys, fieldName)
	}
	a.columns[fieldName] = append(a.columns[fieldName], value)
}

// PushVector replaces the named column with a copy of values. It overwrites;
// use PushBack to extend a column.
func (a *Accumulator) PushVector(fieldName string, values []string) {
	a.ensureInit()
	if _, exists := a.columns[fieldName]; !exists {
		a.keys = append(a.keys, fieldName)
	}
	col := make([]string, len(values))
	copy(col, values)
	a.columns[fieldName] = col
}

// Column returns the values staged under fieldName, or nil when the column
// does not exist. The returned slice is shared; callers must not mutate it.
func (a *Accumulator) Column(fieldName string) []string {
	if a == nil || a.columns == nil {
		return nil
	}
	return a.columns[fieldName]
}

// FieldNames returns the column names in insertion order.
func (a *Accumulator) FieldNames() []string {
	if a == nil {
		return nil
	}
	return a.keys
}

// IsEmpty reports whether no values have been staged.
func (a *Accumulator) IsEmpty() bool {
	return a == nil || len(a.keys) == 0
}

// Len returns the number of columns.
func (a *Accumulator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Clear discards every staged column.
func (a *Accumulator) Clear() {
	a.keys = nil
	a.columns = make(map[string][]string)
}

// raggedLengths returns the per-column lengths when non-empty columns
// disagree on row count, or nil when the columns line up. Empty columns are
// ignored: a field with no staged data uploads as an empty array, which the
// platform accepts.
func (a *Accumulator) raggedLengths() map[string]int {
	want := -1
	for _, name := range a.keys {
		n := len(a.columns[name])
		if n == 0 {
			continue
		}
		if want == -1 {
			want = n
			continue
		}
		if n != want {
			lengths := make(map[string]int, len(a.keys))
			for _, k := range a.keys {
				lengths[k] = len(a.columns[k])
			}
			return lengths
		}
	}
	return nil
}
