package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn(t *testing.T) {
	tags, err := NewTagSet(TagRawFeature, TagModelFeature)
	require.NoError(t, err)

	c, err := NewColumn("age", ColumnSchema{DType: "int64"}, tags, "age in years")
	require.NoError(t, err)
	assert.True(t, c.Is(TagRawFeature))
	assert.True(t, c.Is(TagModelFeature))
	assert.False(t, c.Is(TagTarget))
	assert.False(t, c.Is("label"))

	_, err = NewColumn("", ColumnSchema{}, tags, "")
	assert.ErrorIs(t, err, ErrInvalidColumnName)
}

func TestNewColumnFromTagNamesAddsColumnName(t *testing.T) {
	_, err := NewColumnFromTagNames("bad", ColumnSchema{}, []string{TagTarget, TagWeight}, "")

	var tce *TagCompatibilityError
	require.True(t, errors.As(err, &tce))
	assert.Equal(t, "bad", tce.Column)
	assert.Contains(t, err.Error(), `column "bad"`)

	_, err = NewColumnFromTagNames("bad", ColumnSchema{}, []string{"label"}, "")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestNewColumnSet(t *testing.T) {
	tests := []struct {
		name    string
		defs    []columnDef
		wantErr error
	}{
		{
			name: "reference configuration",
			defs: lifeExpectancyColumns,
		},
		{
			name:    "empty",
			defs:    nil,
			wantErr: ErrEmptyColumnSet,
		},
		{
			name:    "duplicate names",
			defs:    append(append([]columnDef{}, lifeExpectancyColumns...), columnDef{"age", []string{TagMetadata}}),
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "two targets",
			defs:    append(append([]columnDef{}, lifeExpectancyColumns...), columnDef{"lifespan", []string{TagTarget}}),
			wantErr: ErrTagLimitExceeded,
		},
		{
			name: "missing identifier",
			defs: []columnDef{
				{"timestamp", []string{TagRowTimestamp}},
				{"x", []string{TagRawFeature, TagModelFeature}},
			},
			wantErr: ErrTagLimitExceeded,
		},
		{
			name: "no target is allowed",
			defs: []columnDef{
				{"id", []string{TagUniqueIdentifier}},
				{"timestamp", []string{TagRowTimestamp}},
				{"x", []string{TagRawFeature, TagModelFeature}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColumnSet(buildColumns(t, tt.defs)...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewColumnSetEmptyBeforeOtherChecks(t *testing.T) {
	_, err := NewColumnSet()
	assert.Equal(t, ErrEmptyColumnSet, err)
}

func TestNewColumnSetRejectsNilColumn(t *testing.T) {
	c, err := NewColumnFromTagNames("x", ColumnSchema{}, []string{TagMetadata}, "")
	require.NoError(t, err)

	_, err = NewColumnSet(c, nil)
	assert.ErrorIs(t, err, ErrInvalidColumnName)

	_, err = NewDataConfig("x", nil)
	assert.ErrorIs(t, err, ErrInvalidColumnName)
}

func TestNewColumnSetDuplicatesBeforeLimits(t *testing.T) {
	defs := []columnDef{
		{"a", []string{TagTarget}},
		{"a", []string{TagTarget}},
		{"b", []string{TagMetadata}},
		{"b", []string{TagMetadata}},
		{"b", []string{TagMetadata}},
	}
	_, err := NewColumnSet(buildColumns(t, defs)...)

	var dce *DuplicateColumnError
	require.True(t, errors.As(err, &dce))
	assert.Equal(t, []string{"a", "b"}, dce.Names)
}

func TestNewColumnSetReportsLimit(t *testing.T) {
	defs := append(append([]columnDef{}, lifeExpectancyColumns...), columnDef{"lifespan", []string{TagTarget}})
	_, err := NewColumnSet(buildColumns(t, defs)...)

	var tle *TagLimitExceededError
	require.True(t, errors.As(err, &tle))
	assert.Equal(t, TagTarget, tle.Tag)
	assert.Equal(t, 2, tle.Actual)
	require.NotNil(t, tle.Limit.Max)
	assert.Equal(t, 1, *tle.Limit.Max)
	assert.Contains(t, err.Error(), "at most 1")
}

func TestColumnSetAccessors(t *testing.T) {
	cs, err := NewColumnSet(buildColumns(t, lifeExpectancyColumns)...)
	require.NoError(t, err)

	assert.Equal(t, 8, cs.Len())
	assert.Equal(t, "user_id", cs.Names()[0])

	c, ok := cs.Get("bmi")
	require.True(t, ok)
	assert.True(t, c.Is(TagDerivedFeature))

	_, ok = cs.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{}, cs.WithTag(TagWeight))
}
