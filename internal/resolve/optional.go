package resolve

import (
	"fmt"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// resolveOptional detects value-or-absent typing, unwraps the underlying
// declaration and computes the initial enabled state.
//
// Enablement precedence: an explicit force marker wins over everything; with
// no marker the parameter starts enabled iff a non-nil default was declared.
func resolveOptional(n normalized, defaultValue any) (normalized, *param.ResolvedOptional, error) {
	tags, forced, err := extractForceMarkers(n.tags)
	if err != nil {
		return normalized{}, nil, err
	}

	if n.core.Shape != declaration.ShapeOptional {
		if forced != nil {
			return normalized{}, nil, fmt.Errorf("%w: optionality marker on a non-optional declaration", param.ErrMalformedDeclaration)
		}
		n.tags = tags
		return n, nil, nil
	}

	inner, err := normalizeLayers(*n.core.Elem)
	if err != nil {
		return normalized{}, nil, err
	}
	if inner.core.Shape == declaration.ShapeOptional {
		return normalized{}, nil, fmt.Errorf("%w: optional of optional", param.ErrMalformedDeclaration)
	}

	// Inner tags were declared first; the optional layer's tags stay last so
	// they keep winning per-key merges.
	merged := normalized{
		core: inner.core,
		tags: append(append([]declaration.Tag(nil), inner.tags...), tags...),
	}

	enabled := defaultValue != nil
	if forced != nil {
		enabled = *forced
	}
	return merged, &param.ResolvedOptional{Enabled: enabled}, nil
}

// extractForceMarkers removes optionality markers from the tag list and
// reports the forced state, if any. Two conflicting markers are an error; a
// repeated identical marker is tolerated.
func extractForceMarkers(tags []declaration.Tag) ([]declaration.Tag, *bool, error) {
	var forced *bool
	rest := make([]declaration.Tag, 0, len(tags))
	for _, tag := range tags {
		var value bool
		switch tag.(type) {
		case declaration.ForceEnabledTag:
			value = true
		case declaration.ForceDisabledTag:
			value = false
		default:
			rest = append(rest, tag)
			continue
		}
		if forced != nil && *forced != value {
			return nil, nil, param.ErrConflictingModifiers
		}
		v := value
		forced = &v
	}
	return rest, forced, nil
}
