package types

import (
	"errors"
	"fmt"
)

// Column is one configured column: its name, the schema descriptor handed to
// the validation engine, its role tags and an optional description.
type Column struct {
	Name        string
	Schema      ColumnSchema
	Tags        TagSet
	Description string

	roles map[string]bool
}

// NewColumn builds a column from an already validated tag set.
// Returns ErrInvalidColumnName if name is empty.
func NewColumn(name string, schema ColumnSchema, tags TagSet, description string) (*Column, error) {
	if name == "" {
		return nil, ErrInvalidColumnName
	}
	c := &Column{
		Name:        name,
		Schema:      schema,
		Tags:        tags,
		Description: description,
		roles:       make(map[string]bool, len(registry)),
	}
	for _, t := range registry {
		c.roles[t.Name] = tags.Has(t.Name)
	}
	return c, nil
}

// NewColumnFromTagNames resolves tag names and builds the column. A tag
// compatibility failure is reported with the column name attached.
func NewColumnFromTagNames(name string, schema ColumnSchema, tagNames []string, description string) (*Column, error) {
	tags, err := NewTagSet(tagNames...)
	if err != nil {
		var tce *TagCompatibilityError
		if errors.As(err, &tce) {
			return nil, &TagCompatibilityError{Tags: tce.Tags, Column: name}
		}
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	return NewColumn(name, schema, tags, description)
}

// Is reports whether the column carries the named tag.
func (c *Column) Is(tag string) bool {
	return c.roles[tag]
}
