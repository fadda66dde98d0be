package types

import (
	"fmt"
	"sort"
)

// Tag names. A tag describes the role a column plays in an ML pipeline.
const (
	TagTarget           = "target"
	TagRawFeature       = "raw_feature"
	TagDerivedFeature   = "derived_feature"
	TagMetadata         = "metadata"
	TagUniqueIdentifier = "unique_identifier"
	TagModelFeature     = "model_feature"
	TagRowTimestamp     = "row_timestamp"
	TagWeight           = "weight"
)

// Role view names, one per tag. These name the column groups exposed by
// DataConfig and by dataset sessions.
const (
	AttrTarget           = "target"
	AttrRawFeatures      = "raw_features"
	AttrDerivedFeatures  = "derived_features"
	AttrMetadata         = "metadata"
	AttrUniqueIdentifier = "unique_identifier"
	AttrModelFeatures    = "model_features"
	AttrRowTimestamp     = "row_timestamp"
	AttrWeight           = "weight"
)

// CardinalityLimit bounds how many columns of one configuration may carry a
// tag. A nil bound is unbounded.
type CardinalityLimit struct {
	Min *int
	Max *int
}

// Allows reports whether n columns satisfy the limit.
func (l CardinalityLimit) Allows(n int) bool {
	if l.Min != nil && n < *l.Min {
		return false
	}
	if l.Max != nil && n > *l.Max {
		return false
	}
	return true
}

func (l CardinalityLimit) String() string {
	switch {
	case l.Min == nil && l.Max == nil:
		return "any number of"
	case l.Min != nil && l.Max != nil && *l.Min == *l.Max:
		return fmt.Sprintf("exactly %d", *l.Min)
	case l.Min == nil:
		return fmt.Sprintf("at most %d", *l.Max)
	case l.Max == nil:
		return fmt.Sprintf("at least %d", *l.Min)
	default:
		return fmt.Sprintf("between %d and %d", *l.Min, *l.Max)
	}
}

// Tag is one registry entry. Tags are defined once in the registry and are
// never modified.
type Tag struct {
	Name      string
	Attribute string
	Limit     CardinalityLimit
	Required  bool

	compatible map[string]bool
}

// CompatibleWith reports whether a column may carry both t and the named tag.
func (t Tag) CompatibleWith(name string) bool {
	return t.compatible[name]
}

// CompatibleNames returns the names t is compatible with, sorted.
func (t Tag) CompatibleNames() []string {
	names := make([]string, 0, len(t.compatible))
	for name := range t.compatible {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t Tag) String() string { return t.Name }

// TagPair declares two tags as mutually compatible.
type TagPair [2]string

// CompatibilityPairs is the single source of tag compatibility. Deriving each
// tag's compatibility set from this list keeps the relation symmetric.
var CompatibilityPairs = []TagPair{
	{TagRawFeature, TagModelFeature},
	{TagRawFeature, TagRowTimestamp},
	{TagDerivedFeature, TagModelFeature},
	{TagMetadata, TagUniqueIdentifier},
	{TagMetadata, TagRowTimestamp},
}

// CompatibleTags returns the set of tag names compatible with name according
// to pairs.
func CompatibleTags(name string, pairs []TagPair) map[string]bool {
	compatible := make(map[string]bool)
	for _, p := range pairs {
		switch name {
		case p[0]:
			if p[1] != name {
				compatible[p[1]] = true
			}
		case p[1]:
			if p[0] != name {
				compatible[p[0]] = true
			}
		}
	}
	return compatible
}

func bound(n int) *int { return &n }

// tagDefinitions lists every tag in registry order, without compatibility.
var tagDefinitions = []Tag{
	{Name: TagTarget, Attribute: AttrTarget, Limit: CardinalityLimit{Max: bound(1)}},
	{Name: TagRawFeature, Attribute: AttrRawFeatures, Limit: CardinalityLimit{Min: bound(1)}},
	{Name: TagDerivedFeature, Attribute: AttrDerivedFeatures},
	{Name: TagMetadata, Attribute: AttrMetadata},
	{Name: TagUniqueIdentifier, Attribute: AttrUniqueIdentifier, Limit: CardinalityLimit{Min: bound(1), Max: bound(1)}, Required: true},
	{Name: TagModelFeature, Attribute: AttrModelFeatures, Limit: CardinalityLimit{Min: bound(1)}},
	{Name: TagRowTimestamp, Attribute: AttrRowTimestamp, Limit: CardinalityLimit{Min: bound(1), Max: bound(1)}, Required: true},
	{Name: TagWeight, Attribute: AttrWeight, Limit: CardinalityLimit{Max: bound(1)}},
}

// registry holds the resolved tags in registry order; registryIndex maps
// tag names and role view names to positions in registry.
var (
	registry      = buildRegistry(tagDefinitions, CompatibilityPairs)
	registryIndex = indexRegistry(registry)
)

func buildRegistry(defs []Tag, pairs []TagPair) []Tag {
	tags := make([]Tag, len(defs))
	for i, def := range defs {
		def.compatible = CompatibleTags(def.Name, pairs)
		tags[i] = def
	}
	return tags
}

func indexRegistry(tags []Tag) map[string]int {
	idx := make(map[string]int, len(tags))
	for i, t := range tags {
		idx[t.Name] = i
	}
	return idx
}

// LookupTag returns the registry entry for name.
// Returns an *UnknownTagError if the name is not registered.
func LookupTag(name string) (Tag, error) {
	i, ok := registryIndex[name]
	if !ok {
		return Tag{}, &UnknownTagError{Name: name}
	}
	return registry[i], nil
}

// LookupAttribute returns the tag whose role view is named attr.
func LookupAttribute(attr string) (Tag, bool) {
	for _, t := range registry {
		if t.Attribute == attr {
			return t, true
		}
	}
	return Tag{}, false
}

// Tags returns every registered tag in registry order.
func Tags() []Tag {
	out := make([]Tag, len(registry))
	copy(out, registry)
	return out
}

// TagNames returns every registered tag name in registry order.
func TagNames() []string {
	names := make([]string, len(registry))
	for i, t := range registry {
		names[i] = t.Name
	}
	return names
}

// Attributes returns every role view name in registry order.
func Attributes() []string {
	attrs := make([]string, len(registry))
	for i, t := range registry {
		attrs[i] = t.Attribute
	}
	return attrs
}

// RequiredTags returns the tags whose columns must be present for a dataset
// to be usable.
func RequiredTags() []Tag {
	var out []Tag
	for _, t := range registry {
		if t.Required {
			out = append(out, t)
		}
	}
	return out
}
