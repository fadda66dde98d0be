package types

import "fmt"

// DataConfig is the configuration of one dataset: a name and its validated
// column set. It owns the column set and is immutable once constructed.
type DataConfig struct {
	Name    string
	columns *ColumnSet
}

// NewDataConfig validates columns into a column set and wraps it.
func NewDataConfig(name string, columns ...*Column) (*DataConfig, error) {
	cs, err := NewColumnSet(columns...)
	if err != nil {
		return nil, err
	}
	return &DataConfig{Name: name, columns: cs}, nil
}

// ColumnSet returns the configuration's column set.
func (c *DataConfig) ColumnSet() *ColumnSet { return c.columns }

// Columns returns the configured columns in declaration order.
func (c *DataConfig) Columns() []*Column { return c.columns.Columns() }

// Column returns the named column.
func (c *DataConfig) Column(name string) (*Column, bool) { return c.columns.Get(name) }

// Names returns every configured column name in declaration order.
func (c *DataConfig) Names() []string { return c.columns.Names() }

// ColumnsWithTag returns the names of the columns carrying tag.
func (c *DataConfig) ColumnsWithTag(tag string) []string { return c.columns.WithTag(tag) }

// roleProjections maps each role view name to its projection. Built from the
// registry so that every tag has exactly one view.
var roleProjections = func() map[string]func(*DataConfig) []string {
	m := make(map[string]func(*DataConfig) []string, len(registry))
	for _, t := range registry {
		tag := t.Name
		m[t.Attribute] = func(c *DataConfig) []string { return c.columns.WithTag(tag) }
	}
	return m
}()

// Role returns the column names in the role view named attr, such as
// "raw_features" or "target".
func (c *DataConfig) Role(attr string) ([]string, error) {
	project, ok := roleProjections[attr]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", attr)
	}
	return project(c), nil
}

func (c *DataConfig) RawFeatures() []string      { return c.columns.WithTag(TagRawFeature) }
func (c *DataConfig) DerivedFeatures() []string  { return c.columns.WithTag(TagDerivedFeature) }
func (c *DataConfig) ModelFeatures() []string    { return c.columns.WithTag(TagModelFeature) }
func (c *DataConfig) Target() []string           { return c.columns.WithTag(TagTarget) }
func (c *DataConfig) UniqueIdentifier() []string { return c.columns.WithTag(TagUniqueIdentifier) }
func (c *DataConfig) Metadata() []string         { return c.columns.WithTag(TagMetadata) }
func (c *DataConfig) RowTimestamp() []string     { return c.columns.WithTag(TagRowTimestamp) }
func (c *DataConfig) Weight() []string           { return c.columns.WithTag(TagWeight) }
