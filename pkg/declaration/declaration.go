package declaration

// Kind identifies the primitive base type a declaration ultimately resolves
// to. The analyzer rejects every other base shape.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "integer"
	KindFloat  Kind = "number"
	KindBool   Kind = "boolean"
	KindDate   Kind = "date"
	KindTime   Kind = "time"
)

// Shape describes the structural role of a declaration node.
type Shape string

const (
	// ShapePrimitive is a leaf node carrying a Kind.
	ShapePrimitive Shape = "primitive"
	// ShapeAlias wraps another declaration and contributes one tag layer.
	ShapeAlias Shape = "alias"
	// ShapeList wraps the homogeneous item declaration.
	ShapeList Shape = "list"
	// ShapeOptional wraps a declaration that may be absent.
	ShapeOptional Shape = "optional"
)

// TypeDeclaration is the explicit, statically constructed description of a
// parameter type that adapters hand to the analyzer. It is pure data: a base
// shape plus an ordered tag list for this layer. Declarations compose by
// wrapping (Alias, List, Optional); tag order within the flattened stack is
// innermost-declared-first, which is the authority for every "last wins"
// merge rule downstream.
//
// Declarations are immutable once handed to the analyzer; the builder methods
// always return copies.
type TypeDeclaration struct {
	Shape Shape
	Kind  Kind
	Elem  *TypeDeclaration
	Tags  []Tag
}

// String declares a plain string parameter.
func String() TypeDeclaration { return TypeDeclaration{Shape: ShapePrimitive, Kind: KindString} }

// Int declares an integer parameter.
func Int() TypeDeclaration { return TypeDeclaration{Shape: ShapePrimitive, Kind: KindInt} }

// Float declares a floating point parameter.
func Float() TypeDeclaration { return TypeDeclaration{Shape: ShapePrimitive, Kind: KindFloat} }

// Bool declares a boolean parameter.
func Bool() TypeDeclaration { return TypeDeclaration{Shape: ShapePrimitive, Kind: KindBool} }

// Date declares a calendar-day parameter.
func Date() TypeDeclaration { return TypeDeclaration{Shape: ShapePrimitive, Kind: KindDate} }

// Time declares a time-of-day parameter.
func Time() TypeDeclaration { return TypeDeclaration{Shape: ShapePrimitive, Kind: KindTime} }

// List declares a homogeneous sequence of item. Nested lists are rejected at
// analysis time, not here.
func List(item TypeDeclaration) TypeDeclaration {
	return TypeDeclaration{Shape: ShapeList, Elem: &item}
}

// Optional declares a value-or-absent parameter wrapping inner.
func Optional(inner TypeDeclaration) TypeDeclaration {
	return TypeDeclaration{Shape: ShapeOptional, Elem: &inner}
}

// Alias wraps base in a new outer layer carrying the supplied tags. Use it to
// build reusable tagged aliases that callers can stack further tags onto.
func Alias(base TypeDeclaration, tags ...Tag) TypeDeclaration {
	return TypeDeclaration{Shape: ShapeAlias, Elem: &base, Tags: cloneTags(tags)}
}

// With returns a copy of the declaration with the tags appended to this
// layer. Appended tags are outer-most relative to tags already present, so
// they win per-key merges.
func (d TypeDeclaration) With(tags ...Tag) TypeDeclaration {
	out := d
	out.Tags = make([]Tag, 0, len(d.Tags)+len(tags))
	out.Tags = append(out.Tags, d.Tags...)
	out.Tags = append(out.Tags, tags...)
	return out
}

// NamedDeclaration pairs a parameter name with its declaration and declared
// default. A nil Default means no default was declared.
type NamedDeclaration struct {
	Name    string
	Type    TypeDeclaration
	Default any
}

func cloneTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}
