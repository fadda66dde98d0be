// Package frame provides the minimal in-memory table smartframe validates and
// selects columns from: an ordered list of equally long named series.
package frame

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// Frame errors.
var (
	ErrColumnNotFound    = errors.New("column not found")
	ErrLengthMismatch    = errors.New("series lengths differ")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Series is one named column of values. Values read from text files are
// strings; the validation engine coerces them to typed values.
type Series struct {
	Name   string
	Values []any
}

// Frame is an ordered collection of series. Column names are not required
// to be unique; the validation engine reports duplicates.
type Frame struct {
	series []Series
	rows   int
}

// New builds a frame from series of equal length.
func New(series ...Series) (*Frame, error) {
	f := &Frame{series: make([]Series, 0, len(series))}
	for i, s := range series {
		if i == 0 {
			f.rows = len(s.Values)
		} else if len(s.Values) != f.rows {
			return nil, fmt.Errorf("%w: %q has %d values, want %d", ErrLengthMismatch, s.Name, len(s.Values), f.rows)
		}
		f.series = append(f.series, Series{Name: s.Name, Values: copyValues(s.Values)})
	}
	return f, nil
}

// FromRows builds a frame from a header and string rows. Short rows are
// padded with empty cells; long rows are an error.
func FromRows(header []string, rows [][]string) (*Frame, error) {
	series := make([]Series, len(header))
	for i, name := range header {
		series[i] = Series{Name: name, Values: make([]any, len(rows))}
	}
	for r, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrLengthMismatch, r+1, len(row), len(header))
		}
		for i := range header {
			if i < len(row) {
				series[i].Values[r] = row[i]
			} else {
				series[i].Values[r] = ""
			}
		}
	}
	return New(series...)
}

func copyValues(v []any) []any {
	out := make([]any, len(v))
	copy(out, v)
	return out
}

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.series))
	for i, s := range f.series {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.series) }

// Series returns the first series with the given name.
func (f *Frame) Series(name string) (Series, bool) {
	for _, s := range f.series {
		if s.Name == name {
			return Series{Name: s.Name, Values: copyValues(s.Values)}, true
		}
	}
	return Series{}, false
}

// Has reports whether the frame has a column with the given name.
func (f *Frame) Has(name string) bool {
	_, ok := f.Series(name)
	return ok
}

// Select returns a new frame with the named columns in the given order.
// Returns ErrColumnNotFound if any name is absent.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := make([]Series, 0, len(names))
	for _, name := range names {
		s, ok := f.Series(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		out = append(out, s)
	}
	sel, err := New(out...)
	if err != nil {
		return nil, err
	}
	sel.rows = f.rows
	return sel, nil
}

// Drop returns a new frame without the named columns. Absent names are
// ignored.
func (f *Frame) Drop(names ...string) *Frame {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := &Frame{rows: f.rows}
	for _, s := range f.series {
		if !skip[s.Name] {
			out.series = append(out.series, Series{Name: s.Name, Values: copyValues(s.Values)})
		}
	}
	return out
}

// With returns a new frame where s replaces the first series of the same
// name, or is appended when no such series exists.
func (f *Frame) With(s Series) (*Frame, error) {
	if f.Width() > 0 && len(s.Values) != f.rows {
		return nil, fmt.Errorf("%w: %q has %d values, want %d", ErrLengthMismatch, s.Name, len(s.Values), f.rows)
	}
	out := make([]Series, 0, len(f.series)+1)
	replaced := false
	for _, cur := range f.series {
		if !replaced && cur.Name == s.Name {
			out = append(out, s)
			replaced = true
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, s)
	}
	return New(out...)
}

// Row returns the values of row i in column order.
func (f *Frame) Row(i int) []any {
	row := make([]any, len(f.series))
	for j, s := range f.series {
		row[j] = s.Values[i]
	}
	return row
}

// Fingerprint digests the frame's column names. It changes exactly when the
// observed column set changes.
func (f *Frame) Fingerprint() string {
	return types.Fingerprint(f.Names())
}
