// Package config reads and writes dataset configuration documents:
//
//	name: life_expectancy_modelling_data
//	columns:
//	  - name: user_id
//	    data_schema: {dtype: str, unique: true}
//	    tags: [unique_identifier]
//	    description: Unique user identifier
//
// Every construction error of the configuration model surfaces unchanged, so
// callers can match it with errors.Is and errors.As.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// Loader errors.
var (
	ErrConfigNotFound  = errors.New("configuration file not found")
	ErrConfigNameEmpty = errors.New("configuration name must not be empty")
)

// Document is the file form of a DataConfig.
type Document struct {
	Name    string           `yaml:"name" json:"name"`
	Columns []ColumnDocument `yaml:"columns" json:"columns"`
}

// ColumnDocument is the file form of one Column.
type ColumnDocument struct {
	Name        string             `yaml:"name" json:"name"`
	DataSchema  types.ColumnSchema `yaml:"data_schema" json:"data_schema"`
	Tags        []string           `yaml:"tags" json:"tags"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*types.DataConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration document. Unknown keys are
// rejected.
func Parse(data []byte) (*types.DataConfig, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument validates an in-memory document into a DataConfig. Columns are
// built in order and the first failure is returned.
func FromDocument(doc Document) (*types.DataConfig, error) {
	if doc.Name == "" {
		return nil, ErrConfigNameEmpty
	}
	columns := make([]*types.Column, 0, len(doc.Columns))
	for _, cd := range doc.Columns {
		if err := cd.DataSchema.Validate(); err != nil {
			return nil, fmt.Errorf("column %q: %w", cd.Name, err)
		}
		c, err := types.NewColumnFromTagNames(cd.Name, cd.DataSchema, cd.Tags, cd.Description)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return types.NewDataConfig(doc.Name, columns...)
}

// ToDocument converts a DataConfig back to its file form.
func ToDocument(cfg *types.DataConfig) Document {
	doc := Document{Name: cfg.Name}
	for _, c := range cfg.Columns() {
		doc.Columns = append(doc.Columns, ColumnDocument{
			Name:        c.Name,
			DataSchema:  c.Schema,
			Tags:        c.Tags.Names(),
			Description: c.Description,
		})
	}
	return doc
}

// Marshal encodes cfg as a YAML document.
func Marshal(cfg *types.DataConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(cfg)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate reports whether the file at path holds a valid configuration.
func Validate(path string) error {
	_, err := Load(path)
	return err
}
