package resolve

import (
	"context"
	"fmt"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/widgets"
)

// Notice is a non-fatal advisory emitted during analysis, distinct from the
// error taxonomy: it never changes outcomes.
type Notice struct {
	Param   string
	Code    string
	Message string
}

// Notice codes.
const (
	// NoticeWidgetDisplaced reports that a custom pattern override silently
	// discarded a previously inferred special widget.
	NoticeWidgetDisplaced = "widget-displaced"
)

// Config carries the pipeline collaborators for one analysis.
type Config struct {
	// Registry resolves special widgets; nil selects the built-in registry.
	Registry *widgets.Registry
	// Default is the declared default value; nil means none was declared.
	Default any
	// Notify receives advisory notices when non-nil.
	Notify func(Notice)
}

// state tracks the orchestrator's progress through the fixed stage order.
// Any stage error short-circuits all later stages; there is no re-entry
// except the standalone choice refresh on the finalized record.
type state int

const (
	stateNormalized state = iota + 1
	stateOptionalityResolved
	stateContainerResolved
	stateMerged
	stateWidgetResolved
	stateDefaultChecked
	stateFinalized
)

// Analyze runs the full resolution pipeline over one declaration and
// assembles the immutable metadata record. It is synchronous, stateless
// across calls, and holds no reference to the returned record.
func Analyze(ctx context.Context, name string, decl declaration.TypeDeclaration, cfg Config) (*param.Metadata, error) {
	p := pipeline{name: name, cfg: cfg}
	if p.cfg.Registry == nil {
		p.cfg.Registry = widgets.Default()
	}

	meta, err := p.run(ctx, decl)
	if err != nil {
		return nil, fmt.Errorf("typeinput: analyze %q: %w", name, err)
	}
	return meta, nil
}

type pipeline struct {
	name  string
	cfg   Config
	state state
}

func (p *pipeline) advance(next state) {
	if next != p.state+1 {
		panic(fmt.Sprintf("resolve: stage order violated: %d -> %d", p.state, next))
	}
	p.state = next
}

func (p *pipeline) run(ctx context.Context, decl declaration.TypeDeclaration) (*param.Metadata, error) {
	n, err := normalizeLayers(decl)
	if err != nil {
		return nil, err
	}
	p.advance(stateNormalized)

	n, optional, err := resolveOptional(n, p.cfg.Default)
	if err != nil {
		return nil, err
	}
	p.advance(stateOptionalityResolved)

	n, scope, err := resolveContainer(n)
	if err != nil {
		return nil, err
	}
	p.advance(stateContainerResolved)

	// The three mergers are order-independent among themselves; each consumes
	// the item-level tag list.
	ui := mergeUI(n.tags)
	constraints, err := mergeConstraints(n.tags)
	if err != nil {
		return nil, err
	}
	choices, err := resolveChoices(ctx, n.core.Kind, n.tags)
	if err != nil {
		return nil, err
	}
	p.advance(stateMerged)

	widget := resolveWidget(p.cfg.Registry, n.core.Kind, constraints, n.tags, p.notify)
	p.advance(stateWidgetResolved)

	var list *param.ResolvedList
	if scope != nil {
		list = scope.list
	}
	defaultValue, err := normalizeDefault(n.core.Kind, p.cfg.Default, choices, constraints, list, ui)
	if err != nil {
		return nil, err
	}
	p.advance(stateDefaultChecked)

	ui = propagateContainerUI(ui, scope)
	meta := &param.Metadata{
		Name:        p.name,
		Type:        n.core.Kind,
		Default:     defaultValue,
		Constraints: constraints,
		Widget:      widget,
		Optional:    optional,
		List:        list,
		Choices:     choices,
		UI:          ui,
	}
	p.advance(stateFinalized)
	return meta, nil
}

func (p *pipeline) notify(notice Notice) {
	if p.cfg.Notify == nil {
		return
	}
	notice.Param = p.name
	p.cfg.Notify(notice)
}
