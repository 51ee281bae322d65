// Package openapi adapts OpenAPI 3 schemas into parameter declarations. It
// is a thin translation layer: the analysis pipeline only ever sees the
// declaration shapes, never the OpenAPI document.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// Notice is an advisory emitted when the adapter skips an
// unsupported-but-tolerable property (for example a nested object). Skipping
// is never an error; the remaining properties still convert.
type Notice struct {
	Property string
	Message  string
}

// Option customises the adapter.
type Option func(*Adapter)

// WithNotices registers a sink for skip notices.
func WithNotices(fn func(Notice)) Option {
	return func(a *Adapter) { a.notify = fn }
}

// Adapter converts OpenAPI object schemas into named declarations.
type Adapter struct {
	notify func(Notice)
}

// New constructs an Adapter applying any provided options.
func New(options ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// LoadDocument parses an OpenAPI document payload.
func LoadDocument(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi adapter: load document: %w", err)
	}
	return doc, nil
}

// FindOperation locates an operation by its operationId across every path
// and method in the document.
func FindOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc == nil || doc.Paths == nil {
		return nil, errors.New("openapi adapter: nil document")
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi adapter: operation %q not found", operationID)
}

// RequestBody converts the JSON request body schema of an operation into a
// field list, one declaration per object property in name order.
func (a *Adapter) RequestBody(op *openapi3.Operation) ([]declaration.NamedDeclaration, error) {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, errors.New("openapi adapter: operation has no request body")
	}
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := op.RequestBody.Value.Content[mediaType]; ok && mt.Schema != nil {
			return a.Object(mt.Schema.Value)
		}
	}
	return nil, errors.New("openapi adapter: request body has no convertible content")
}

// Object converts an object schema's properties into a field list.
func (a *Adapter) Object(schema *openapi3.Schema) ([]declaration.NamedDeclaration, error) {
	if schema == nil {
		return nil, errors.New("openapi adapter: nil schema")
	}
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeObject) {
		return nil, fmt.Errorf("openapi adapter: expected object schema, got %v", schema.Type)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]declaration.NamedDeclaration, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			a.skip(name, "unresolved schema reference")
			continue
		}
		_, isRequired := required[name]
		field, ok := a.property(name, ref.Value, isRequired)
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (a *Adapter) property(name string, schema *openapi3.Schema, required bool) (declaration.NamedDeclaration, bool) {
	decl, ok := a.convert(name, schema, true)
	if !ok {
		return declaration.NamedDeclaration{}, false
	}

	if !required && schema.Default == nil {
		decl = declaration.Optional(decl)
	}
	return declaration.NamedDeclaration{
		Name:    name,
		Type:    decl,
		Default: normalizeValue(decl, schema.Default),
	}, true
}

// normalizeValue undoes the JSON decoder's number widening: documents carry
// integer defaults and enum members as float64, which the analyzer rejects
// for integer parameters.
func normalizeValue(decl declaration.TypeDeclaration, value any) any {
	if value == nil {
		return nil
	}
	for decl.Elem != nil && decl.Shape != declaration.ShapeList {
		decl = *decl.Elem
	}
	if decl.Shape == declaration.ShapeList && decl.Elem != nil {
		if items, ok := value.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = normalizeValue(*decl.Elem, item)
			}
			return out
		}
		return value
	}
	if decl.Kind != declaration.KindInt {
		return value
	}
	if f, ok := value.(float64); ok {
		if i := int(f); float64(i) == f {
			return i
		}
	}
	return value
}

// convert maps one schema to a declaration. allowArray guards against nested
// arrays, which the pipeline rejects anyway; skipping them here keeps sibling
// properties usable.
func (a *Adapter) convert(name string, schema *openapi3.Schema, allowArray bool) (declaration.TypeDeclaration, bool) {
	switch {
	case schema.Type == nil:
		a.skip(name, "schema has no type")
		return declaration.TypeDeclaration{}, false

	case schema.Type.Is(openapi3.TypeString):
		return a.scalar(stringBase(schema.Format), name, schema), true

	case schema.Type.Is(openapi3.TypeInteger):
		return a.scalar(declaration.Int(), name, schema), true

	case schema.Type.Is(openapi3.TypeNumber):
		return a.scalar(declaration.Float(), name, schema), true

	case schema.Type.Is(openapi3.TypeBoolean):
		return a.scalar(declaration.Bool(), name, schema), true

	case schema.Type.Is(openapi3.TypeArray):
		if !allowArray {
			a.skip(name, "nested arrays are not supported")
			return declaration.TypeDeclaration{}, false
		}
		if schema.Items == nil || schema.Items.Value == nil {
			a.skip(name, "array schema without items")
			return declaration.TypeDeclaration{}, false
		}
		item, ok := a.convert(name, schema.Items.Value, false)
		if !ok {
			return declaration.TypeDeclaration{}, false
		}
		decl := declaration.List(item)
		decl = decl.With(arrayTags(schema)...)
		if tags := titledTags(schema); len(tags) > 0 {
			decl = decl.With(tags...)
		}
		return decl, true

	default:
		a.skip(name, fmt.Sprintf("unsupported schema type %v", schema.Type))
		return declaration.TypeDeclaration{}, false
	}
}

// scalar layers constraint, choice and UI tags derived from the schema onto a
// primitive base.
func (a *Adapter) scalar(base declaration.TypeDeclaration, name string, schema *openapi3.Schema) declaration.TypeDeclaration {
	decl := base

	var c declaration.Constraints
	set := false
	if schema.Min != nil {
		v := *schema.Min
		if schema.ExclusiveMin {
			c.GT = &v
		} else {
			c.GE = &v
		}
		set = true
	}
	if schema.Max != nil {
		v := *schema.Max
		if schema.ExclusiveMax {
			c.LT = &v
		} else {
			c.LE = &v
		}
		set = true
	}
	if schema.MinLength != 0 {
		v := int(schema.MinLength)
		c.MinLength = &v
		set = true
	}
	if schema.MaxLength != nil {
		v := int(*schema.MaxLength)
		c.MaxLength = &v
		set = true
	}
	if schema.Pattern != "" {
		pattern := schema.Pattern
		c.Pattern = &pattern
		set = true
	}
	if set {
		decl = decl.With(declaration.Constrain(c))
	}

	if len(schema.Enum) > 0 {
		options := make([]any, len(schema.Enum))
		for i, v := range schema.Enum {
			options[i] = normalizeValue(base, v)
		}
		decl = decl.With(declaration.OneOf(options...))
	}
	if schema.Format == "password" {
		decl = decl.With(declaration.Password())
	}
	if tags := titledTags(schema); len(tags) > 0 {
		decl = decl.With(tags...)
	}
	return decl
}

// stringBase maps string formats onto the primitive and alias declarations.
func stringBase(format string) declaration.TypeDeclaration {
	switch format {
	case "date":
		return declaration.Date()
	case "time":
		return declaration.Time()
	case "email":
		return declaration.Email()
	case "binary", "byte":
		return declaration.File()
	default:
		return declaration.String()
	}
}

func titledTags(schema *openapi3.Schema) []declaration.Tag {
	var tags []declaration.Tag
	if schema.Title != "" {
		tags = append(tags, declaration.Label(schema.Title))
	}
	if schema.Description != "" {
		tags = append(tags, declaration.Description(schema.Description))
	}
	return tags
}

func arrayTags(schema *openapi3.Schema) []declaration.Tag {
	var tags []declaration.Tag
	if schema.MinItems != 0 {
		tags = append(tags, declaration.MinItems(int(schema.MinItems)))
	}
	if schema.MaxItems != nil {
		tags = append(tags, declaration.MaxItems(int(*schema.MaxItems)))
	}
	return tags
}

func (a *Adapter) skip(property, message string) {
	if a.notify == nil {
		return
	}
	a.notify(Notice{Property: property, Message: message})
}
