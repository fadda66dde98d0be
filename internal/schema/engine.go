package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// Failure check names.
const (
	CheckColumnInFrame     = "column_in_dataframe"
	CheckColumnInSchema    = "column_in_schema"
	CheckUniqueColumnNames = "unique_column_names"
	CheckDType             = "dtype"
	CheckNullable          = "not_nullable"
	CheckUnique            = "field_uniqueness"
	CheckGE                = "greater_than_or_equal_to"
	CheckLE                = "less_than_or_equal_to"
	CheckIn                = "isin"
	CheckMatches           = "str_matches"
)

// Failure is one failed check. Index is the row, or -1 for a column-level
// failure.
type Failure struct {
	Column string `json:"column" yaml:"column"`
	Check  string `json:"check" yaml:"check"`
	Index  int    `json:"index" yaml:"index"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
}

func (f Failure) String() string {
	if f.Index < 0 {
		return fmt.Sprintf("%s: %s", f.Column, f.Check)
	}
	return fmt.Sprintf("%s[%d]: %s (value %v)", f.Column, f.Index, f.Check, f.Value)
}

// ValidationError collects every failure found in one validation run.
type ValidationError struct {
	Failures []Failure
}

func (e *ValidationError) Error() string {
	const shown = 5
	parts := make([]string, 0, shown)
	for i, f := range e.Failures {
		if i == shown {
			break
		}
		parts = append(parts, f.String())
	}
	msg := fmt.Sprintf("schema validation failed with %d failure(s): %s", len(e.Failures), strings.Join(parts, "; "))
	if len(e.Failures) > shown {
		msg += "; ..."
	}
	return msg
}

// datetimeLayouts are tried in order when coercing text to datetime.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Engine is the default Validator. It runs every check before reporting, so
// one run surfaces all failures.
type Engine struct {
	logger *zap.Logger
}

// NewEngine returns an engine that logs validation summaries to logger. A nil
// logger discards them.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Validate checks f against s. Missing columns are failures; they are never
// added.
func (e *Engine) Validate(f *frame.Frame, s *Schema) (*frame.Frame, error) {
	var failures []Failure
	names := f.Names()

	if s.Options.UniqueColumnNames {
		seen := make(map[string]int, len(names))
		for _, n := range names {
			seen[n]++
			if seen[n] == 2 {
				failures = append(failures, Failure{Column: n, Check: CheckUniqueColumnNames, Index: -1})
			}
		}
	}

	if s.Options.Strict {
		for _, n := range names {
			if _, ok := s.Field(n); !ok {
				failures = append(failures, Failure{Column: n, Check: CheckColumnInSchema, Index: -1})
			}
		}
	}

	out := f
	for _, field := range s.Fields {
		series, ok := f.Series(field.Name)
		if !ok {
			failures = append(failures, Failure{Column: field.Name, Check: CheckColumnInFrame, Index: -1})
			continue
		}
		values, colFailures := e.validateSeries(series, field.Schema, s.Options.Coerce)
		failures = append(failures, colFailures...)
		if len(colFailures) == 0 {
			var err error
			out, err = out.With(frame.Series{Name: field.Name, Values: values})
			if err != nil {
				return nil, err
			}
		}
	}

	if len(failures) > 0 {
		e.logger.Debug("schema validation failed",
			zap.String("state", s.State.String()),
			zap.Int("failures", len(failures)))
		return nil, &ValidationError{Failures: failures}
	}
	e.logger.Debug("schema validation passed",
		zap.String("state", s.State.String()),
		zap.Int("columns", len(s.Fields)),
		zap.Int("rows", f.Len()))
	return out, nil
}

func (e *Engine) validateSeries(s frame.Series, cs types.ColumnSchema, coerce bool) ([]any, []Failure) {
	var failures []Failure
	fail := func(check string, i int, v any) {
		failures = append(failures, Failure{Column: s.Name, Check: check, Index: i, Value: v})
	}

	dtype, ok := types.CanonicalDType(cs.DType)
	if !ok {
		fail(CheckDType, -1, cs.DType)
		return nil, failures
	}

	values := make([]any, len(s.Values))
	for i, v := range s.Values {
		if isNull(v) {
			values[i] = nil
			if !cs.Nullable {
				fail(CheckNullable, i, v)
			}
			continue
		}
		cv, err := convert(v, dtype, coerce)
		if err != nil {
			fail(CheckDType, i, v)
			continue
		}
		values[i] = cv
	}
	if len(failures) > 0 {
		return nil, failures
	}

	if cs.Unique {
		seen := make(map[string]bool, len(values))
		for i, v := range values {
			if v == nil {
				continue
			}
			key := valueKey(v)
			if seen[key] {
				fail(CheckUnique, i, v)
			}
			seen[key] = true
		}
	}

	for _, c := range cs.Checks {
		failures = append(failures, applyCheck(s.Name, dtype, c, values)...)
	}
	return values, failures
}

// applyCheck runs one check over coerced values. Allowed isin entries are
// coerced to dtype so they compare as typed values; entries that cannot be
// coerced match nothing.
func applyCheck(column, dtype string, c types.Check, values []any) []Failure {
	var failures []Failure
	fail := func(check string, i int, v any) {
		failures = append(failures, Failure{Column: column, Check: check, Index: i, Value: v})
	}

	var re *regexp.Regexp
	if c.Matches != "" {
		var err error
		re, err = regexp.Compile(c.Matches)
		if err != nil {
			fail(CheckMatches, -1, c.Matches)
			return failures
		}
	}
	allowed := make(map[string]bool, len(c.In))
	for _, a := range c.In {
		if cv, err := convert(a, dtype, true); err == nil {
			allowed[valueKey(cv)] = true
		}
	}

	for i, v := range values {
		if v == nil {
			continue
		}
		if c.GE != nil || c.LE != nil {
			n, ok := toFloat(v)
			if c.GE != nil && (!ok || n < *c.GE) {
				fail(CheckGE, i, v)
			}
			if c.LE != nil && (!ok || n > *c.LE) {
				fail(CheckLE, i, v)
			}
		}
		if len(c.In) > 0 && !allowed[valueKey(v)] {
			fail(CheckIn, i, v)
		}
		if re != nil {
			str, ok := v.(string)
			if !ok || !re.MatchString(str) {
				fail(CheckMatches, i, v)
			}
		}
	}
	return failures
}

// valueKey returns a comparison key for a coerced value. Times compare by
// instant regardless of location.
func valueKey(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// convert coerces v to dtype, or when coerce is false only checks that v
// already has the dtype's Go type.
func convert(v any, dtype string, coerce bool) (any, error) {
	if dtype == "" {
		return v, nil
	}
	if !coerce {
		if hasType(v, dtype) {
			return v, nil
		}
		return nil, fmt.Errorf("value %v is %T, want %s", v, v, dtype)
	}

	switch dtype {
	case types.DTypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case types.DTypeInt:
		switch x := v.(type) {
		case int64:
			return x, nil
		case int:
			return int64(x), nil
		case float64:
			if x != float64(int64(x)) {
				return nil, fmt.Errorf("%v is not integral", x)
			}
			return int64(x), nil
		case string:
			s := strings.TrimSpace(x)
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n, nil
			}
			fv, err := strconv.ParseFloat(s, 64)
			if err != nil || fv != float64(int64(fv)) {
				return nil, fmt.Errorf("%q is not an integer", x)
			}
			return int64(fv), nil
		}
	case types.DTypeFloat:
		if n, ok := toFloat(v); ok {
			return n, nil
		}
		if s, ok := v.(string); ok {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		}
	case types.DTypeBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(x))
		}
	case types.DTypeDatetime:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			s := strings.TrimSpace(x)
			for _, layout := range datetimeLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to %s", v, v, dtype)
}

func hasType(v any, dtype string) bool {
	switch dtype {
	case types.DTypeString:
		_, ok := v.(string)
		return ok
	case types.DTypeInt:
		_, ok := v.(int64)
		return ok
	case types.DTypeFloat:
		_, ok := v.(float64)
		return ok
	case types.DTypeBool:
		_, ok := v.(bool)
		return ok
	case types.DTypeDatetime:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}
