package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCompatibilityIsSymmetric(t *testing.T) {
	tags := Tags()
	for _, a := range tags {
		for _, b := range tags {
			if a.Name == b.Name {
				continue
			}
			assert.Equal(t, a.CompatibleWith(b.Name), b.CompatibleWith(a.Name),
				"tags %s and %s have asymmetric compatibility", a.Name, b.Name)
		}
	}
}

func TestCompatibleTags(t *testing.T) {
	pairs := []TagPair{{"a", "b"}, {"c", "a"}, {"b", "c"}}

	got := CompatibleTags("a", pairs)
	assert.Equal(t, map[string]bool{"b": true, "c": true}, got)

	got = CompatibleTags("d", pairs)
	assert.Empty(t, got)
}

func TestCompatibleTagsIgnoresSelfPairs(t *testing.T) {
	got := CompatibleTags("a", []TagPair{{"a", "a"}})
	assert.Empty(t, got)
}

func TestLookupTag(t *testing.T) {
	tag, err := LookupTag(TagModelFeature)
	require.NoError(t, err)
	assert.Equal(t, AttrModelFeatures, tag.Attribute)
	assert.Equal(t, []string{TagDerivedFeature, TagRawFeature}, tag.CompatibleNames())

	_, err = LookupTag("label")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTag))

	var ute *UnknownTagError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "label", ute.Name)
}

func TestLookupAttribute(t *testing.T) {
	tag, ok := LookupAttribute(AttrRawFeatures)
	require.True(t, ok)
	assert.Equal(t, TagRawFeature, tag.Name)

	_, ok = LookupAttribute("labels")
	assert.False(t, ok)
}

func TestRegistryLimits(t *testing.T) {
	tests := []struct {
		tag     string
		allowed []int
		denied  []int
	}{
		{TagTarget, []int{0, 1}, []int{2}},
		{TagUniqueIdentifier, []int{1}, []int{0, 2}},
		{TagRowTimestamp, []int{1}, []int{0, 2}},
		{TagWeight, []int{0, 1}, []int{2}},
		{TagRawFeature, []int{1, 5}, []int{0}},
		{TagModelFeature, []int{1, 5}, []int{0}},
		{TagDerivedFeature, []int{0, 1, 9}, nil},
		{TagMetadata, []int{0, 1, 9}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			tag, err := LookupTag(tt.tag)
			require.NoError(t, err)
			for _, n := range tt.allowed {
				assert.True(t, tag.Limit.Allows(n), "%s should allow %d", tt.tag, n)
			}
			for _, n := range tt.denied {
				assert.False(t, tag.Limit.Allows(n), "%s should deny %d", tt.tag, n)
			}
		})
	}
}

func TestRequiredTags(t *testing.T) {
	var names []string
	for _, tag := range RequiredTags() {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{TagUniqueIdentifier, TagRowTimestamp}, names)
}

func TestCardinalityLimitString(t *testing.T) {
	one, two := 1, 2
	assert.Equal(t, "any number of", CardinalityLimit{}.String())
	assert.Equal(t, "exactly 1", CardinalityLimit{Min: &one, Max: &one}.String())
	assert.Equal(t, "at most 1", CardinalityLimit{Max: &one}.String())
	assert.Equal(t, "at least 1", CardinalityLimit{Min: &one}.String())
	assert.Equal(t, "between 1 and 2", CardinalityLimit{Min: &one, Max: &two}.String())
}

func TestTagsReturnsCopy(t *testing.T) {
	tags := Tags()
	tags[0].Name = "mutated"
	assert.Equal(t, TagTarget, Tags()[0].Name)
	assert.Len(t, TagNames(), 8)
	assert.Len(t, Attributes(), 8)
}
