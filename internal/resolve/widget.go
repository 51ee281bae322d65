package resolve

import (
	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/widgets"
)

// resolveWidget infers a specialized input kind from the final merged
// constraint state. Because the constraint merger already applied "last
// pattern wins", a later layer overriding a recognised pattern with a custom
// one silently loses the special widget; the only concession is an advisory
// notice when it happens.
func resolveWidget(reg *widgets.Registry, kind declaration.Kind, constraints *param.ResolvedConstraints, tags []declaration.Tag, notify func(Notice)) string {
	if constraints == nil || constraints.Pattern == nil {
		return ""
	}

	name, ok := reg.Resolve(widgets.Subject{Kind: string(kind), Pattern: *constraints.Pattern})
	if ok {
		return name
	}

	if notify != nil && displacedSpecialPattern(reg, kind, tags) {
		notify(Notice{
			Code:    NoticeWidgetDisplaced,
			Message: "a pattern override displaced a recognised special widget",
		})
	}
	return ""
}

// displacedSpecialPattern reports whether an earlier layer contributed a
// recognised pattern that the final merge no longer carries.
func displacedSpecialPattern(reg *widgets.Registry, kind declaration.Kind, tags []declaration.Tag) bool {
	for _, tag := range tags {
		t, ok := tag.(declaration.ConstraintTag)
		if !ok || t.Pattern == nil {
			continue
		}
		if _, ok := reg.Resolve(widgets.Subject{Kind: string(kind), Pattern: *t.Pattern}); ok {
			return true
		}
	}
	return false
}
