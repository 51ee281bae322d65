// Package param re-exports the resolved parameter metadata records produced
// by the analysis pipeline.
package param

import internalparam "github.com/goliatone/go-typeinput/internal/param"

// Metadata is the canonical, self-contained record for one analyzed
// parameter.
type Metadata = internalparam.Metadata

// ResolvedConstraints is the merged constraint state.
type ResolvedConstraints = internalparam.ResolvedConstraints

// ResolvedUI is the merged presentation state.
type ResolvedUI = internalparam.ResolvedUI

// ResolvedList carries container-level length bounds.
type ResolvedList = internalparam.ResolvedList

// ResolvedOptional records value-or-absent typing.
type ResolvedOptional = internalparam.ResolvedOptional

// ResolvedChoices is the fixed or dynamic option set.
type ResolvedChoices = internalparam.ResolvedChoices

// RefreshOption customises Metadata.RefreshChoices.
type RefreshOption = internalparam.RefreshOption

// SkipDefaultValidation disables default membership re-validation during a
// refresh.
func SkipDefaultValidation() RefreshOption { return internalparam.SkipDefaultValidation() }

// Labelize converts a parameter name into a human-friendly label.
func Labelize(name string) string { return internalparam.Labelize(name) }

// The analysis error taxonomy; see the root package for documentation.
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
