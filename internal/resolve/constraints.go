package resolve

import (
	"fmt"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// mergeConstraints walks the ordered tag list with the same
// independence-per-key, last-wins rule as the UI merger: a later layer can
// narrow one bound without restating the rest. The contradiction check runs
// only on the final merged state, since an intermediate state may be
// transiently contradictory while later layers are pending.
func mergeConstraints(tags []declaration.Tag) (*param.ResolvedConstraints, error) {
	var merged param.ResolvedConstraints
	seen := false

	for _, tag := range tags {
		t, ok := tag.(declaration.ConstraintTag)
		if !ok {
			continue
		}
		seen = true
		if t.Pattern != nil {
			merged.Pattern = t.Pattern
		}
		if t.MinLength != nil {
			merged.MinLength = t.MinLength
		}
		if t.MaxLength != nil {
			merged.MaxLength = t.MaxLength
		}
		if t.GE != nil {
			merged.GE = t.GE
		}
		if t.LE != nil {
			merged.LE = t.LE
		}
		if t.GT != nil {
			merged.GT = t.GT
		}
		if t.LT != nil {
			merged.LT = t.LT
		}
	}

	if !seen {
		return nil, nil
	}
	if err := contradiction(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func contradiction(c *param.ResolvedConstraints) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{param.ErrContradictoryConstraint}, args...)...)
	}

	if c.GE != nil && c.LE != nil && *c.GE > *c.LE {
		return fail("ge %v greater than le %v", *c.GE, *c.LE)
	}
	if c.GT != nil && c.LT != nil && *c.GT >= *c.LT {
		return fail("gt %v not below lt %v", *c.GT, *c.LT)
	}
	if c.GE != nil && c.LT != nil && *c.GE >= *c.LT {
		return fail("ge %v not below lt %v", *c.GE, *c.LT)
	}
	if c.GT != nil && c.LE != nil && *c.GT >= *c.LE {
		return fail("gt %v not below le %v", *c.GT, *c.LE)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return fail("min_length %d greater than max_length %d", *c.MinLength, *c.MaxLength)
	}
	return nil
}
