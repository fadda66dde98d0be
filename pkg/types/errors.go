package types

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration construction errors. Each typed error below matches its
// sentinel through errors.Is, so callers can branch on the failure kind
// without inspecting fields.
var (
	ErrUnknownTag        = errors.New("unknown tag")
	ErrTagCompatibility  = errors.New("incompatible tags")
	ErrEmptyColumnSet    = errors.New("column set is empty")
	ErrDuplicateColumn   = errors.New("duplicate column names")
	ErrTagLimitExceeded  = errors.New("tag exceeded limit")
	ErrInvalidColumnName = errors.New("column name must not be empty")
	ErrUnknownDType      = errors.New("unknown dtype")
)

// State errors.
var (
	ErrState             = errors.New("operation not permitted in state")
	ErrEmptyStateColumns = errors.New("no columns for state")
)

// UnknownTagError reports a tag name that is absent from the registry.
type UnknownTagError struct {
	Name string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("%s: %q (known tags: %s)", ErrUnknownTag, e.Name, strings.Join(TagNames(), ", "))
}

func (e *UnknownTagError) Is(target error) bool { return target == ErrUnknownTag }

// TagCompatibilityError reports two tags on one column that may not be
// combined. Column is empty when the tag set was built outside a column.
type TagCompatibilityError struct {
	Tags   [2]string
	Column string
}

func (e *TagCompatibilityError) Error() string {
	msg := fmt.Sprintf("%s: %s and %s", ErrTagCompatibility, e.Tags[0], e.Tags[1])
	if e.Column != "" {
		msg += fmt.Sprintf(" on column %q", e.Column)
	}
	return msg + "; remove one of the tags or use separate columns"
}

func (e *TagCompatibilityError) Is(target error) bool { return target == ErrTagCompatibility }

// DuplicateColumnError lists every column name declared more than once, in
// order of first declaration.
type DuplicateColumnError struct {
	Names []string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateColumn, strings.Join(e.Names, ", "))
}

func (e *DuplicateColumnError) Is(target error) bool { return target == ErrDuplicateColumn }

// TagLimitExceededError reports a tag whose column count falls outside its
// cardinality limit.
type TagLimitExceededError struct {
	Tag    string
	Limit  CardinalityLimit
	Actual int
}

func (e *TagLimitExceededError) Error() string {
	return fmt.Sprintf("%s: tag %q allows %s column(s), found %d", ErrTagLimitExceeded, e.Tag, e.Limit, e.Actual)
}

func (e *TagLimitExceededError) Is(target error) bool { return target == ErrTagLimitExceeded }

// StateError reports an operation attempted while the dataset is in a state
// that does not permit it.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: cannot %s in state %s", ErrState, e.Op, e.State)
}

func (e *StateError) Is(target error) bool { return target == ErrState }

// EmptyStateColumnsError reports a state that projects to no columns.
type EmptyStateColumnsError struct {
	State State
}

func (e *EmptyStateColumnsError) Error() string {
	return fmt.Sprintf("%s %s", ErrEmptyStateColumns, e.State)
}

func (e *EmptyStateColumnsError) Is(target error) bool { return target == ErrEmptyStateColumns }
