package resolve

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// normalizeDefault coerces the declared default into the base type's
// canonical in-memory form and validates it against the fully resolved shape,
// in order: choice membership, constraint satisfaction, slider bounds. Any
// failure aborts the analysis; partial metadata is never returned.
//
// The slider bounds check runs even without a default: it could not run
// earlier because the bounds may arrive on a different layer than the slider
// tag.
func normalizeDefault(
	kind declaration.Kind,
	defaultValue any,
	choices *param.ResolvedChoices,
	constraints *param.ResolvedConstraints,
	list *param.ResolvedList,
	ui *param.ResolvedUI,
) (any, error) {
	var normalized any
	if defaultValue != nil {
		var err error
		if list != nil {
			normalized, err = normalizeListDefault(kind, defaultValue, choices, constraints, list)
		} else {
			normalized, err = normalizeScalarDefault(kind, defaultValue, choices, constraints)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := checkSliderBounds(ui, constraints); err != nil {
		return nil, err
	}
	return normalized, nil
}

func normalizeScalarDefault(kind declaration.Kind, value any, choices *param.ResolvedChoices, constraints *param.ResolvedConstraints) (any, error) {
	canonical, err := canonicalDefault(kind, value, choices)
	if err != nil {
		return nil, err
	}
	if choices != nil && !choices.Contains(canonical) {
		return nil, fmt.Errorf("%w: %v not in %v", param.ErrDefaultNotInOptions, canonical, choices.Options)
	}
	if err := constraints.Violation(kind, canonical); err != nil {
		return nil, fmt.Errorf("%w: %v", param.ErrDefaultViolatesConstraint, err)
	}
	return canonical, nil
}

func normalizeListDefault(kind declaration.Kind, value any, choices *param.ResolvedChoices, constraints *param.ResolvedConstraints, list *param.ResolvedList) (any, error) {
	items, ok := anySlice(value)
	if !ok {
		return nil, fmt.Errorf("%w: default %v (%T) is not a list", param.ErrDefaultViolatesConstraint, value, value)
	}

	if list.MinItems != nil && len(items) < *list.MinItems {
		return nil, fmt.Errorf("%w: default list length %d is less than min_items %d", param.ErrDefaultViolatesConstraint, len(items), *list.MinItems)
	}
	if list.MaxItems != nil && len(items) > *list.MaxItems {
		return nil, fmt.Errorf("%w: default list length %d exceeds max_items %d", param.ErrDefaultViolatesConstraint, len(items), *list.MaxItems)
	}

	out := make([]any, len(items))
	for i, item := range items {
		canonical, err := normalizeScalarDefault(kind, item, choices, constraints)
		if err != nil {
			return nil, fmt.Errorf("list item [%d]: %w", i, err)
		}
		out[i] = canonical
	}
	return out, nil
}

// canonicalDefault resolves enumeration members to their values before the
// usual canonicalisation.
func canonicalDefault(kind declaration.Kind, value any, choices *param.ResolvedChoices) (any, error) {
	if choices != nil && len(choices.Members) > 0 {
		if member, ok := value.(declaration.Member); ok {
			value = member.Value
		}
	}
	canonical, err := param.Canonical(kind, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", param.ErrDefaultViolatesConstraint, err)
	}
	return canonical, nil
}

// checkSliderBounds requires a merged lower (ge or gt) and upper (le or lt)
// bound whenever a slider hint resolved.
func checkSliderBounds(ui *param.ResolvedUI, constraints *param.ResolvedConstraints) error {
	if ui == nil || !ui.IsSlider {
		return nil
	}
	if constraints == nil {
		return fmt.Errorf("%w: no constraints resolved", param.ErrSliderRequiresBounds)
	}
	hasLower := constraints.GE != nil || constraints.GT != nil
	hasUpper := constraints.LE != nil || constraints.LT != nil
	if !hasLower || !hasUpper {
		return fmt.Errorf("%w: need both a lower and an upper bound", param.ErrSliderRequiresBounds)
	}
	return nil
}

// anySlice widens any slice value into []any.
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
