package types

// TagSet is the validated set of tags attached to one column. Every pair of
// tags in the set is mutually compatible.
type TagSet struct {
	tags []Tag
}

// NewTagSet resolves names against the registry and validates them.
// Repeated names collapse into one tag. Returns an *UnknownTagError for an
// unregistered name and a *TagCompatibilityError for the first incompatible
// pair.
func NewTagSet(names ...string) (TagSet, error) {
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		t, err := LookupTag(name)
		if err != nil {
			return TagSet{}, err
		}
		tags = append(tags, t)
	}
	return NewTagSetFromTags(tags...)
}

// NewTagSetFromTags validates already-resolved tags. Tags are re-resolved by
// name so that a hand-built Tag value cannot bypass the registry.
func NewTagSetFromTags(tags ...Tag) (TagSet, error) {
	seen := make(map[string]bool, len(tags))
	resolved := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if seen[t.Name] {
			continue
		}
		rt, err := LookupTag(t.Name)
		if err != nil {
			return TagSet{}, err
		}
		seen[t.Name] = true
		resolved = append(resolved, rt)
	}

	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			a, b := resolved[i], resolved[j]
			if !a.CompatibleWith(b.Name) || !b.CompatibleWith(a.Name) {
				return TagSet{}, &TagCompatibilityError{Tags: [2]string{a.Name, b.Name}}
			}
		}
	}
	return TagSet{tags: resolved}, nil
}

// Has reports whether the set contains the named tag.
func (s TagSet) Has(name string) bool {
	for _, t := range s.tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Names returns the tag names in the order they were given.
func (s TagSet) Names() []string {
	names := make([]string, len(s.tags))
	for i, t := range s.tags {
		names[i] = t.Name
	}
	return names
}

// Tags returns a copy of the tags in the set.
func (s TagSet) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int { return len(s.tags) }
