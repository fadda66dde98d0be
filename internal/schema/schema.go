// Package schema derives the active validation schema from a data
// configuration and an inferred state, and validates frames against it.
package schema

import (
	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// Options control how a schema is applied to a frame.
type Options struct {
	Coerce            bool `json:"coerce" yaml:"coerce"`
	Strict            bool `json:"strict" yaml:"strict"`
	UniqueColumnNames bool `json:"unique_column_names" yaml:"unique_column_names"`
	AddMissingColumns bool `json:"add_missing_columns" yaml:"add_missing_columns"`
}

// DefaultOptions coerces values on load, rejects unknown columns, requires
// unique column names and never adds missing columns.
func DefaultOptions() Options {
	return Options{
		Coerce:            true,
		Strict:            true,
		UniqueColumnNames: true,
		AddMissingColumns: false,
	}
}

// Field is one column of a schema.
type Field struct {
	Name   string             `json:"name" yaml:"name"`
	Schema types.ColumnSchema `json:"data_schema" yaml:"data_schema"`
}

// Schema is the set of column rules active for one state.
type Schema struct {
	State   types.State `json:"state" yaml:"state"`
	Fields  []Field     `json:"columns" yaml:"columns"`
	Options Options     `json:"options" yaml:"options"`
}

// Names returns the field names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Build selects the configured columns relevant to state and assembles them,
// in declaration order, into a schema with DefaultOptions. Returns an
// *types.EmptyStateColumnsError when the state projects to no columns.
func Build(cfg *types.DataConfig, state types.State) (*Schema, error) {
	names, err := types.StateColumns(cfg, state)
	if err != nil {
		return nil, err
	}
	relevant := make(map[string]bool, len(names))
	for _, n := range names {
		relevant[n] = true
	}

	s := &Schema{State: state, Options: DefaultOptions()}
	for _, c := range cfg.Columns() {
		if relevant[c.Name] {
			s.Fields = append(s.Fields, Field{Name: c.Name, Schema: c.Schema})
		}
	}
	if len(s.Fields) == 0 {
		return nil, &types.EmptyStateColumnsError{State: state}
	}
	return s, nil
}

// Validator checks a frame against a schema. On success it returns the
// validated, possibly coerced, frame; the input frame is not modified.
type Validator interface {
	Validate(f *frame.Frame, s *Schema) (*frame.Frame, error)
}
