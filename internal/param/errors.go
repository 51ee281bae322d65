package param

import "errors"

// The analysis error taxonomy. Every sentinel aborts the whole analysis for
// its parameter; no partial Metadata is ever produced. Callers discriminate
// with errors.Is.
var (
	// ErrMalformedDeclaration marks an unsupported or cyclic type shape.
	ErrMalformedDeclaration = errors.New("malformed declaration")
	// ErrConflictingModifiers marks both optionality force markers present.
	ErrConflictingModifiers = errors.New("conflicting optionality modifiers")
	// ErrUnsupportedNesting marks a list whose item type is itself a list.
	ErrUnsupportedNesting = errors.New("nested lists are not supported")
	// ErrContradictoryConstraint marks merged bounds that are mutually
	// unsatisfiable.
	ErrContradictoryConstraint = errors.New("contradictory constraints")
	// ErrConflictingChoiceSource marks more than one choice source tag.
	ErrConflictingChoiceSource = errors.New("conflicting choice sources")
	// ErrRefreshUnsupported marks a refresh on a non-dynamic choice set.
	ErrRefreshUnsupported = errors.New("refresh requires a dynamic choice source")
	// ErrDefaultNotInOptions marks a default outside the resolved choice set.
	ErrDefaultNotInOptions = errors.New("default value not in options")
	// ErrDefaultViolatesConstraint marks a default that fails the resolved
	// shape or constraints.
	ErrDefaultViolatesConstraint = errors.New("default value violates constraints")
	// ErrSliderRequiresBounds marks a slider hint without both numeric bounds.
	ErrSliderRequiresBounds = errors.New("slider requires numeric bounds")
)
