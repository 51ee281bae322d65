// Package typeinput turns declarative, layered type descriptions of input
// parameters into canonical, self-contained metadata records that any
// consumer (form renderer, CLI prompter, validator) can use without
// re-inspecting the original declaration.
//
// Adapters (pkg/openapi, pkg/declfile, or hand-built pkg/declaration values)
// produce declarations; Analyze collapses each declaration's layer stack into
// one flat param.Metadata record with deterministic merge semantics: per-key
// "last layer wins" for UI hints and constraints, container/item propagation
// for labels, and widget inference from the final merged pattern.
package typeinput

import (
	"context"

	internalparam "github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/internal/resolve"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/param"
	"github.com/goliatone/go-typeinput/pkg/widgets"
)

// Notice is a non-fatal advisory emitted during analysis. It never changes
// outcomes; it exists so adapters and tooling can surface
// unsupported-but-tolerable conditions.
type Notice = resolve.Notice

// NoticeWidgetDisplaced reports that a custom pattern override silently
// discarded a previously inferred special widget.
const NoticeWidgetDisplaced = resolve.NoticeWidgetDisplaced

// Option customises an analysis call.
type Option func(*config)

type config struct {
	registry     *widgets.Registry
	defaultValue any
	notify       func(Notice)
}

// WithDefault declares the parameter's default value. A nil default is the
// same as declaring none.
func WithDefault(value any) Option {
	return func(cfg *config) { cfg.defaultValue = value }
}

// WithWidgetRegistry overrides the widget inference registry.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithNotices registers a sink for advisory notices.
func WithNotices(fn func(Notice)) Option {
	return func(cfg *config) { cfg.notify = fn }
}

// Analyze resolves one parameter declaration into its metadata record. The
// call is synchronous and stateless; ctx is handed to dynamic choice-source
// callables, which may block. Any stage failure aborts the analysis; no
// partial record is ever returned.
func Analyze(ctx context.Context, name string, decl declaration.TypeDeclaration, opts ...Option) (*param.Metadata, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return resolve.Analyze(ctx, name, decl, resolve.Config{
		Registry: cfg.registry,
		Default:  cfg.defaultValue,
		Notify:   cfg.notify,
	})
}

// AnalyzeAll resolves an ordered field list, as produced by an adapter, into
// one record per field. It fails fast on the first field whose analysis
// fails. Per-field defaults come from the declarations; WithDefault is
// ignored here.
func AnalyzeAll(ctx context.Context, fields []declaration.NamedDeclaration, opts ...Option) ([]*param.Metadata, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]*param.Metadata, 0, len(fields))
	for _, field := range fields {
		meta, err := resolve.Analyze(ctx, field.Name, field.Type, resolve.Config{
			Registry: cfg.registry,
			Default:  field.Default,
			Notify:   cfg.notify,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, meta)
	}
	return out, nil
}

// The analysis error taxonomy, re-exported for callers that import only the
// root package. Discriminate with errors.Is.
var (
	ErrMalformedDeclaration      = internalparam.ErrMalformedDeclaration
	ErrConflictingModifiers      = internalparam.ErrConflictingModifiers
	ErrUnsupportedNesting        = internalparam.ErrUnsupportedNesting
	ErrContradictoryConstraint   = internalparam.ErrContradictoryConstraint
	ErrConflictingChoiceSource   = internalparam.ErrConflictingChoiceSource
	ErrRefreshUnsupported        = internalparam.ErrRefreshUnsupported
	ErrDefaultNotInOptions       = internalparam.ErrDefaultNotInOptions
	ErrDefaultViolatesConstraint = internalparam.ErrDefaultViolatesConstraint
	ErrSliderRequiresBounds      = internalparam.ErrSliderRequiresBounds
)
