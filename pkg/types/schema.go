package types

import "fmt"

// Supported dtype names for ColumnSchema.DType. Aliases resolve to the
// canonical name through CanonicalDType.
const (
	DTypeString   = "str"
	DTypeInt      = "int64"
	DTypeFloat    = "float64"
	DTypeBool     = "bool"
	DTypeDatetime = "datetime"
)

var dtypeAliases = map[string]string{
	"str":            DTypeString,
	"string":         DTypeString,
	"object":         DTypeString,
	"int":            DTypeInt,
	"int64":          DTypeInt,
	"float":          DTypeFloat,
	"float64":        DTypeFloat,
	"bool":           DTypeBool,
	"boolean":        DTypeBool,
	"datetime":       DTypeDatetime,
	"datetime64":     DTypeDatetime,
	"datetime64[ns]": DTypeDatetime,
}

// CanonicalDType resolves a dtype name or alias. The empty dtype means "no
// type constraint" and resolves to itself.
func CanonicalDType(dtype string) (string, bool) {
	if dtype == "" {
		return "", true
	}
	c, ok := dtypeAliases[dtype]
	return c, ok
}

// ColumnSchema describes the validation rules for one column. It is opaque to
// the configuration model and state inference; only the validation engine
// interprets it.
type ColumnSchema struct {
	DType    string  `json:"dtype,omitempty" yaml:"dtype,omitempty"`
	Nullable bool    `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Unique   bool    `json:"unique,omitempty" yaml:"unique,omitempty"`
	Checks   []Check `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// Check is one value constraint. Each populated field is checked; a Check
// with several fields set requires all of them.
type Check struct {
	GE      *float64 `json:"ge,omitempty" yaml:"ge,omitempty"`
	LE      *float64 `json:"le,omitempty" yaml:"le,omitempty"`
	In      []string `json:"isin,omitempty" yaml:"isin,omitempty"`
	Matches string   `json:"str_matches,omitempty" yaml:"str_matches,omitempty"`
}

// Validate checks that the descriptor names a supported dtype.
func (s ColumnSchema) Validate() error {
	if _, ok := CanonicalDType(s.DType); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDType, s.DType)
	}
	return nil
}
