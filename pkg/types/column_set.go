package types

import "fmt"

// ColumnSet is an ordered, validated collection of columns.
type ColumnSet struct {
	columns []*Column
	index   map[string]int
}

// NewColumnSet validates columns in this order: the set is non-empty
// (ErrEmptyColumnSet), no entry is nil (ErrInvalidColumnName), names are
// unique (*DuplicateColumnError) and every tag's column count is within its
// cardinality limit (*TagLimitExceededError, checked in registry order). Tag compatibility
// within a column is enforced earlier, when the column's TagSet is built.
func NewColumnSet(columns ...*Column) (*ColumnSet, error) {
	if len(columns) == 0 {
		return nil, ErrEmptyColumnSet
	}

	index := make(map[string]int, len(columns))
	counts := make(map[string]int, len(columns))
	var duplicates []string
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("%w: column %d is nil", ErrInvalidColumnName, i)
		}
		counts[c.Name]++
		if counts[c.Name] == 2 {
			duplicates = append(duplicates, c.Name)
		}
		if _, ok := index[c.Name]; !ok {
			index[c.Name] = i
		}
	}
	if len(duplicates) > 0 {
		return nil, &DuplicateColumnError{Names: duplicates}
	}

	for _, t := range registry {
		n := 0
		for _, c := range columns {
			if c.Is(t.Name) {
				n++
			}
		}
		if !t.Limit.Allows(n) {
			return nil, &TagLimitExceededError{Tag: t.Name, Limit: t.Limit, Actual: n}
		}
	}

	cs := &ColumnSet{columns: make([]*Column, len(columns)), index: index}
	copy(cs.columns, columns)
	return cs, nil
}

// Columns returns the columns in declaration order.
func (s *ColumnSet) Columns() []*Column {
	out := make([]*Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of columns.
func (s *ColumnSet) Len() int { return len(s.columns) }

// Names returns the column names in declaration order.
func (s *ColumnSet) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Get returns the named column.
func (s *ColumnSet) Get(name string) (*Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.columns[i], true
}

// WithTag returns the names of the columns carrying tag, in declaration
// order.
func (s *ColumnSet) WithTag(tag string) []string {
	names := []string{}
	for _, c := range s.columns {
		if c.Is(tag) {
			names = append(names, c.Name)
		}
	}
	return names
}
