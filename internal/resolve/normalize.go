package resolve

import (
	"fmt"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// maxAliasDepth bounds alias unwrapping; declarations deeper than this are
// treated as cyclic.
const maxAliasDepth = 64

// normalized is the output of the layer normalizer: the innermost
// non-alias declaration plus one flat tag list ordered
// innermost-declared-first. That order is the authority for every
// "last wins" rule in later stages.
type normalized struct {
	core declaration.TypeDeclaration
	tags []declaration.Tag
}

// normalizeLayers flattens alias wrapping around decl. List and optional
// shapes are kept intact; their own stages unwrap them.
func normalizeLayers(decl declaration.TypeDeclaration) (normalized, error) {
	seen := make(map[*declaration.TypeDeclaration]struct{})
	var outer [][]declaration.Tag

	current := decl
	for depth := 0; ; depth++ {
		if depth > maxAliasDepth {
			return normalized{}, fmt.Errorf("%w: alias nesting exceeds %d layers (cycle?)", param.ErrMalformedDeclaration, maxAliasDepth)
		}

		switch current.Shape {
		case declaration.ShapeAlias:
			if current.Elem == nil {
				return normalized{}, fmt.Errorf("%w: alias layer wraps nothing", param.ErrMalformedDeclaration)
			}
			if _, ok := seen[current.Elem]; ok {
				return normalized{}, fmt.Errorf("%w: cyclic alias chain", param.ErrMalformedDeclaration)
			}
			seen[current.Elem] = struct{}{}
			outer = append(outer, current.Tags)
			current = *current.Elem

		case declaration.ShapePrimitive:
			if !supportedKind(current.Kind) {
				return normalized{}, fmt.Errorf("%w: unsupported base type %q", param.ErrMalformedDeclaration, current.Kind)
			}
			return assemble(current, outer), nil

		case declaration.ShapeList, declaration.ShapeOptional:
			if current.Elem == nil {
				return normalized{}, fmt.Errorf("%w: %s declaration wraps nothing", param.ErrMalformedDeclaration, current.Shape)
			}
			return assemble(current, outer), nil

		default:
			return normalized{}, fmt.Errorf("%w: unknown declaration shape %q", param.ErrMalformedDeclaration, current.Shape)
		}
	}
}

// assemble builds the flat tag list: the core layer's own tags are innermost,
// then each alias layer's tags from innermost to outermost.
func assemble(core declaration.TypeDeclaration, outer [][]declaration.Tag) normalized {
	tags := append([]declaration.Tag(nil), core.Tags...)
	for i := len(outer) - 1; i >= 0; i-- {
		tags = append(tags, outer[i]...)
	}
	stripped := core
	stripped.Tags = nil
	return normalized{core: stripped, tags: tags}
}

func supportedKind(kind declaration.Kind) bool {
	switch kind {
	case declaration.KindString, declaration.KindInt, declaration.KindFloat,
		declaration.KindBool, declaration.KindDate, declaration.KindTime:
		return true
	}
	return false
}
