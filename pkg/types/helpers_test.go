package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type columnDef struct {
	name string
	tags []string
}

// lifeExpectancyColumns is the reference configuration used across tests.
var lifeExpectancyColumns = []columnDef{
	{"user_id", []string{TagUniqueIdentifier}},
	{"timestamp", []string{TagRowTimestamp}},
	{"name", []string{TagMetadata}},
	{"weight", []string{TagRawFeature}},
	{"height", []string{TagRawFeature}},
	{"age", []string{TagRawFeature, TagModelFeature}},
	{"bmi", []string{TagDerivedFeature, TagModelFeature}},
	{"life_expectancy", []string{TagTarget}},
}

func buildColumns(t *testing.T, defs []columnDef) []*Column {
	t.Helper()
	cols := make([]*Column, 0, len(defs))
	for _, d := range defs {
		c, err := NewColumnFromTagNames(d.name, ColumnSchema{}, d.tags, "")
		require.NoError(t, err)
		cols = append(cols, c)
	}
	return cols
}

func buildConfig(t *testing.T, defs []columnDef) *DataConfig {
	t.Helper()
	cfg, err := NewDataConfig("life_expectancy_modelling_data", buildColumns(t, defs)...)
	require.NoError(t, err)
	return cfg
}

func without(names []string, drop ...string) []string {
	skip := make(map[string]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	var out []string
	for _, n := range names {
		if !skip[n] {
			out = append(out, n)
		}
	}
	return out
}
