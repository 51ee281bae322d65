// Package validate is the runtime validation entry point: it consumes a
// resolved metadata record and a raw input value (possibly a string, as from
// a form submission), coerces the value to the parameter's base type and
// validates it against the resolved constraints and choices.
//
// It consumes metadata, it never produces it; analysis failures and
// validation failures are unrelated error families.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	internalparam "github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/param"
)

// Typed validation errors; discriminate with errors.Is.
var (
	// ErrRequired rejects nil for a non-optional parameter.
	ErrRequired = errors.New("validate: value is required")
	// ErrEmptyString rejects empty or whitespace-only strings; declare the
	// parameter optional to allow absence instead.
	ErrEmptyString = errors.New("validate: string cannot be empty")
	// ErrEmptyList rejects empty lists; declare the parameter optional to
	// allow absence instead.
	ErrEmptyList = errors.New("validate: list cannot be empty")
	// ErrTypeMismatch rejects values that cannot be coerced to the base type.
	ErrTypeMismatch = errors.New("validate: type mismatch")
	// ErrNotInChoices rejects values outside a static choice set.
	ErrNotInChoices = errors.New("validate: value not in choices")
	// ErrConstraint rejects values violating the resolved constraints.
	ErrConstraint = errors.New("validate: constraint violated")
	// ErrListBounds rejects lists outside the container length bounds.
	ErrListBounds = errors.New("validate: list length out of bounds")
)

// Value coerces a raw input value according to meta and validates it.
// It returns the canonical in-memory value (int, float64, bool, string,
// time.Time, or []any for lists).
//
// Dynamic choice sets are not validated against their current options; the
// caller owns that decision. Defaults never participate: they are form
// pre-fill data, not validation state.
func Value(meta *param.Metadata, value any) (any, error) {
	if value == nil {
		if meta.Optional != nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %q is not optional", ErrRequired, meta.Name)
	}

	if meta.Type == declaration.KindString {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" && meta.List == nil {
			return nil, fmt.Errorf("%w: %q", ErrEmptyString, meta.Name)
		}
	}

	if meta.List != nil {
		return validateList(meta, value)
	}
	return validateSingle(meta, value)
}

func validateList(meta *param.Metadata, value any) (any, error) {
	items, ok := anySlice(value)
	if !ok {
		return nil, fmt.Errorf("%w: %q expects a list, got %T", ErrTypeMismatch, meta.Name, value)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyList, meta.Name)
	}
	if meta.List.MinItems != nil && len(items) < *meta.List.MinItems {
		return nil, fmt.Errorf("%w: %q has %d items, needs at least %d", ErrListBounds, meta.Name, len(items), *meta.List.MinItems)
	}
	if meta.List.MaxItems != nil && len(items) > *meta.List.MaxItems {
		return nil, fmt.Errorf("%w: %q has %d items, allows at most %d", ErrListBounds, meta.Name, len(items), *meta.List.MaxItems)
	}

	out := make([]any, len(items))
	for i, item := range items {
		validated, err := validateSingle(meta, item)
		if err != nil {
			return nil, fmt.Errorf("item [%d]: %w", i, err)
		}
		out[i] = validated
	}
	return out, nil
}

func validateSingle(meta *param.Metadata, value any) (any, error) {
	coerced, err := coerce(meta, value)
	if err != nil {
		return nil, err
	}

	if meta.Choices != nil && !meta.Choices.Dynamic() {
		if !meta.Choices.Contains(coerced) {
			return nil, fmt.Errorf("%w: %v not in %v", ErrNotInChoices, coerced, meta.Choices.Options)
		}
	}

	if err := meta.Constraints.Violation(meta.Type, coerced); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return coerced, nil
}

// coerce widens form-friendly representations into the canonical in-memory
// form: enum member names or values, numeric strings, integral floats for
// integers, and the usual boolean spellings.
func coerce(meta *param.Metadata, value any) (any, error) {
	if meta.Choices != nil && len(meta.Choices.Members) > 0 {
		if coerced, ok := coerceEnum(meta.Choices, value); ok {
			return internalparam.Canonical(meta.Type, coerced)
		}
		return nil, fmt.Errorf("%w: %v is not a member of enum %s (options: %v)", ErrNotInChoices, value, meta.Choices.Enum, meta.Choices.Options)
	}

	// Fast path: already canonical.
	if canonical, err := internalparam.Canonical(meta.Type, value); err == nil {
		return canonical, nil
	}

	switch meta.Type {
	case declaration.KindInt:
		switch v := value.(type) {
		case bool:
			return nil, fmt.Errorf("%w: expected integer, got bool", ErrTypeMismatch)
		case float64:
			if v == float64(int(v)) {
				return int(v), nil
			}
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return parsed, nil
			}
		}
	case declaration.KindFloat:
		switch v := value.(type) {
		case bool:
			return nil, fmt.Errorf("%w: expected number, got bool", ErrTypeMismatch)
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed, nil
			}
		}
	case declaration.KindBool:
		switch v := value.(type) {
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1", "yes", "on":
				return true, nil
			case "false", "0", "no", "off":
				return false, nil
			}
		case int:
			return v != 0, nil
		case float64:
			return v != 0, nil
		}
	case declaration.KindDate, declaration.KindTime, declaration.KindString:
		// Canonical already handles the accepted representations.
	}

	return nil, fmt.Errorf("%w: expected %s, got %T (%v)", ErrTypeMismatch, meta.Type, value, value)
}

// coerceEnum resolves a raw value to an enum member value by value equality
// first, then by member name.
func coerceEnum(choices *param.ResolvedChoices, value any) (any, bool) {
	for _, member := range choices.Members {
		if reflect.DeepEqual(member.Value, value) {
			return member.Value, true
		}
	}
	if name, ok := value.(string); ok {
		for _, member := range choices.Members {
			if member.Name == name {
				return member.Value, true
			}
		}
		// Form submissions stringify values; match against the member
		// values' string forms as a last resort.
		for _, member := range choices.Members {
			if fmt.Sprintf("%v", member.Value) == name {
				return member.Value, true
			}
		}
	}
	return nil, false
}

func anySlice(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
