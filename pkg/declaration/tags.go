package declaration

import "context"

// Tag is one atomic piece of declared metadata attached to a declaration
// layer: a UI hint, a validation constraint, a choice source, a container
// bound, or an optionality marker. Tags carry no behaviour; the analyzer's
// mergers consume them as pure data.
type Tag interface {
	isTag()
}

// OptionsFunc supplies the current valid option set for a dynamic choice
// source. It may block (for example on a database query); the analyzer
// imposes no timeout or retry policy, and any error it returns aborts the
// analysis or refresh unchanged.
type OptionsFunc func(ctx context.Context) ([]any, error)

// Member is one named value of an enumeration choice source.
type Member struct {
	Name  string
	Value any
}

// LabelTag overrides the label derived from the parameter name.
type LabelTag struct{ Text string }

// DescriptionTag attaches help text displayed alongside the input.
type DescriptionTag struct{ Text string }

// PlaceholderTag sets placeholder text for text-like inputs.
type PlaceholderTag struct{ Text string }

// PatternMessageTag sets the message shown when pattern validation fails.
type PatternMessageTag struct{ Message string }

// RowsTag requests a multi-line text input with the given visible row count.
type RowsTag struct{ Count int }

// StepTag sets the increment for numeric inputs.
type StepTag struct{ Value float64 }

// SliderTag requests a slider widget for a bounded numeric parameter.
type SliderTag struct{ ShowValue bool }

// PasswordTag marks a string input as masked.
type PasswordTag struct{}

// Constraints is the per-key constraint payload. Only non-nil keys take part
// in merging, so a layer can narrow a single bound without restating the
// rest.
type Constraints struct {
	Pattern   *string
	MinLength *int
	MaxLength *int
	GE        *float64
	LE        *float64
	GT        *float64
	LT        *float64
}

// ConstraintTag carries structural validation constraints for one layer.
type ConstraintTag struct{ Constraints }

// SizeTag bounds the length of a list container. It is only valid on a list
// layer.
type SizeTag struct {
	MinItems *int
	MaxItems *int
}

// EnumTag declares a fixed choice set sourced from a named enumeration.
type EnumTag struct {
	Name    string
	Members []Member
}

// OneOfTag declares a fixed choice set of literal values, in declared order.
type OneOfTag struct{ Values []any }

// DynamicTag declares a choice set sourced from a callable, invoked once at
// analysis time and again on every refresh.
type DynamicTag struct{ Options OptionsFunc }

// ForceEnabledTag forces an optional parameter to start enabled regardless of
// its default.
type ForceEnabledTag struct{}

// ForceDisabledTag forces an optional parameter to start disabled regardless
// of its default.
type ForceDisabledTag struct{}

func (LabelTag) isTag()          {}
func (DescriptionTag) isTag()    {}
func (PlaceholderTag) isTag()    {}
func (PatternMessageTag) isTag() {}
func (RowsTag) isTag()           {}
func (StepTag) isTag()           {}
func (SliderTag) isTag()         {}
func (PasswordTag) isTag()       {}
func (ConstraintTag) isTag()     {}
func (SizeTag) isTag()           {}
func (EnumTag) isTag()           {}
func (OneOfTag) isTag()          {}
func (DynamicTag) isTag()        {}
func (ForceEnabledTag) isTag()   {}
func (ForceDisabledTag) isTag()  {}

// Label builds a LabelTag.
func Label(text string) Tag { return LabelTag{Text: text} }

// Description builds a DescriptionTag.
func Description(text string) Tag { return DescriptionTag{Text: text} }

// Placeholder builds a PlaceholderTag.
func Placeholder(text string) Tag { return PlaceholderTag{Text: text} }

// PatternMessage builds a PatternMessageTag.
func PatternMessage(message string) Tag { return PatternMessageTag{Message: message} }

// Rows builds a RowsTag.
func Rows(count int) Tag { return RowsTag{Count: count} }

// Step builds a StepTag.
func Step(value float64) Tag { return StepTag{Value: value} }

// Slider builds a SliderTag. showValue controls whether the current value is
// displayed next to the slider.
func Slider(showValue bool) Tag { return SliderTag{ShowValue: showValue} }

// Password builds a PasswordTag.
func Password() Tag { return PasswordTag{} }

// Constrain builds a ConstraintTag from the supplied payload.
func Constrain(c Constraints) Tag { return ConstraintTag{Constraints: c} }

// Pattern constrains a string parameter to match a regular expression.
func Pattern(expr string) Tag { return ConstraintTag{Constraints{Pattern: &expr}} }

// MinLen constrains the minimum length of a string parameter.
func MinLen(n int) Tag { return ConstraintTag{Constraints{MinLength: &n}} }

// MaxLen constrains the maximum length of a string parameter.
func MaxLen(n int) Tag { return ConstraintTag{Constraints{MaxLength: &n}} }

// GE constrains a numeric parameter to be greater than or equal to v.
func GE(v float64) Tag { return ConstraintTag{Constraints{GE: &v}} }

// LE constrains a numeric parameter to be less than or equal to v.
func LE(v float64) Tag { return ConstraintTag{Constraints{LE: &v}} }

// GT constrains a numeric parameter to be strictly greater than v.
func GT(v float64) Tag { return ConstraintTag{Constraints{GT: &v}} }

// LT constrains a numeric parameter to be strictly less than v.
func LT(v float64) Tag { return ConstraintTag{Constraints{LT: &v}} }

// MinItems bounds the minimum number of items in a list container.
func MinItems(n int) Tag { return SizeTag{MinItems: &n} }

// MaxItems bounds the maximum number of items in a list container.
func MaxItems(n int) Tag { return SizeTag{MaxItems: &n} }

// Enum builds an enumeration choice source. The member order is the option
// order.
func Enum(name string, members ...Member) Tag {
	out := make([]Member, len(members))
	copy(out, members)
	return EnumTag{Name: name, Members: out}
}

// OneOf builds a literal choice source from the values verbatim, in declared
// order.
func OneOf(values ...any) Tag {
	out := make([]any, len(values))
	copy(out, values)
	return OneOfTag{Values: out}
}

// Dynamic builds a callable-sourced choice set.
func Dynamic(options OptionsFunc) Tag { return DynamicTag{Options: options} }

// ForceEnabled builds the explicit enabled optionality marker.
func ForceEnabled() Tag { return ForceEnabledTag{} }

// ForceDisabled builds the explicit disabled optionality marker.
func ForceDisabled() Tag { return ForceDisabledTag{} }
