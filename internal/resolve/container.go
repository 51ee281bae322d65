package resolve

import (
	"fmt"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// containerScope is what the container resolver keeps for itself: length
// bounds and the outer label/description, which take precedence over the
// item-level ones during propagation.
type containerScope struct {
	list        *param.ResolvedList
	label       *string
	description *string
}

// resolveContainer detects a homogeneous-sequence declaration, extracts the
// item declaration, and splits the flat tag list into container-level
// concerns (size bounds, outer label/description) and everything else, which
// is forwarded to item-level resolution. Nested lists are rejected.
func resolveContainer(n normalized) (normalized, *containerScope, error) {
	if n.core.Shape != declaration.ShapeList {
		for _, tag := range n.tags {
			if _, ok := tag.(declaration.SizeTag); ok {
				return normalized{}, nil, fmt.Errorf("%w: size bounds on a non-list declaration", param.ErrMalformedDeclaration)
			}
		}
		return n, nil, nil
	}

	item, err := normalizeLayers(*n.core.Elem)
	if err != nil {
		return normalized{}, nil, err
	}
	switch item.core.Shape {
	case declaration.ShapeList:
		return normalized{}, nil, param.ErrUnsupportedNesting
	case declaration.ShapeOptional:
		return normalized{}, nil, fmt.Errorf("%w: lists of optional items are not supported", param.ErrMalformedDeclaration)
	}

	scope := &containerScope{list: &param.ResolvedList{}}
	forwarded := make([]declaration.Tag, 0, len(n.tags))
	for _, tag := range n.tags {
		switch t := tag.(type) {
		case declaration.SizeTag:
			// Per-key last wins, same as every other merger.
			if t.MinItems != nil {
				scope.list.MinItems = t.MinItems
			}
			if t.MaxItems != nil {
				scope.list.MaxItems = t.MaxItems
			}
		case declaration.LabelTag:
			text := t.Text
			scope.label = &text
		case declaration.DescriptionTag:
			text := t.Text
			scope.description = &text
		default:
			forwarded = append(forwarded, tag)
		}
	}

	if scope.list.MinItems != nil && scope.list.MaxItems != nil && *scope.list.MinItems > *scope.list.MaxItems {
		return normalized{}, nil, fmt.Errorf("%w: min_items %d greater than max_items %d", param.ErrContradictoryConstraint, *scope.list.MinItems, *scope.list.MaxItems)
	}

	merged := normalized{
		core: item.core,
		tags: append(append([]declaration.Tag(nil), item.tags...), forwarded...),
	}
	for _, tag := range merged.tags {
		if _, ok := tag.(declaration.SizeTag); ok {
			return normalized{}, nil, fmt.Errorf("%w: size bounds on list items", param.ErrMalformedDeclaration)
		}
	}
	return merged, scope, nil
}
