package param

import (
	"fmt"
	"reflect"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// Date and time-of-day wire formats accepted for canonicalisation.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	TimeLayoutShort = "15:04"
)

// Canonical coerces value into the canonical in-memory form for kind:
// integers normalise to int, floats to float64, dates and times to time.Time
// (ISO strings are parsed). It does not attempt lossy conversions; a value of
// the wrong type is an error.
func Canonical(kind declaration.Kind, value any) (any, error) {
	switch kind {
	case declaration.KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case declaration.KindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int8:
			return int(v), nil
		case int16:
			return int(v), nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case uint:
			return int(v), nil
		case uint8:
			return int(v), nil
		case uint16:
			return int(v), nil
		case uint32:
			return int(v), nil
		case uint64:
			return int(v), nil
		}
	case declaration.KindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		}
	case declaration.KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case declaration.KindDate:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			parsed, err := time.Parse(DateLayout, v)
			if err != nil {
				return nil, fmt.Errorf("cannot parse date from %q (expected YYYY-MM-DD)", v)
			}
			return parsed, nil
		}
	case declaration.KindTime:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			parsed, err := time.Parse(TimeLayout, v)
			if err != nil {
				parsed, err = time.Parse(TimeLayoutShort, v)
			}
			if err != nil {
				return nil, fmt.Errorf("cannot parse time from %q (expected HH:MM:SS)", v)
			}
			return parsed, nil
		}
	}
	return nil, fmt.Errorf("%v (%T) is not a valid %s", value, value, kind)
}

// CanonicalOptions canonicalises a choice option slice against kind. It
// rejects empty and heterogeneous sets.
func CanonicalOptions(kind declaration.Kind, options []any) ([]any, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("choice source produced no options")
	}
	out := make([]any, len(options))
	for i, opt := range options {
		canonical, err := Canonical(kind, opt)
		if err != nil {
			return nil, fmt.Errorf("option [%d]: %v", i, err)
		}
		out[i] = canonical
	}
	return out, nil
}

// Violation checks a canonical value against the merged constraints and
// returns a descriptive error on the first failure. Numeric bounds apply to
// integer and number kinds; length and pattern constraints apply to strings.
func (c *ResolvedConstraints) Violation(kind declaration.Kind, value any) error {
	if c == nil {
		return nil
	}

	switch kind {
	case declaration.KindInt, declaration.KindFloat:
		f, ok := asFloat(value)
		if !ok {
			return nil
		}
		if c.GE != nil && f < *c.GE {
			return fmt.Errorf("%v is less than %v", value, *c.GE)
		}
		if c.GT != nil && f <= *c.GT {
			return fmt.Errorf("%v is not greater than %v", value, *c.GT)
		}
		if c.LE != nil && f > *c.LE {
			return fmt.Errorf("%v is greater than %v", value, *c.LE)
		}
		if c.LT != nil && f >= *c.LT {
			return fmt.Errorf("%v is not less than %v", value, *c.LT)
		}
	case declaration.KindString:
		s, ok := value.(string)
		if !ok {
			return nil
		}
		length := utf8.RuneCountInString(s)
		if c.MinLength != nil && length < *c.MinLength {
			return fmt.Errorf("length %d is less than min_length %d", length, *c.MinLength)
		}
		if c.MaxLength != nil && length > *c.MaxLength {
			return fmt.Errorf("length %d exceeds max_length %d", length, *c.MaxLength)
		}
		if c.Pattern != nil {
			re, err := regexp.Compile(*c.Pattern)
			if err != nil {
				return fmt.Errorf("invalid pattern %q: %v", *c.Pattern, err)
			}
			if !re.MatchString(s) {
				return fmt.Errorf("%q does not match pattern %q", s, *c.Pattern)
			}
		}
	}
	return nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}

func equalValue(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}
