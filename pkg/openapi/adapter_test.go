package openapi_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	typeinput "github.com/goliatone/go-typeinput"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/openapi"
	"github.com/goliatone/go-typeinput/pkg/param"
)

func ptr[T any](v T) *T { return &v }

func objectSchema(required []string, props map[string]*openapi3.Schema) *openapi3.Schema {
	schemas := make(openapi3.Schemas, len(props))
	for name, prop := range props {
		schemas[name] = openapi3.NewSchemaRef("", prop)
	}
	return &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Required:   required,
		Properties: schemas,
	}
}

func analyzeOne(t *testing.T, fields []declaration.NamedDeclaration, name string) *param.Metadata {
	t.Helper()
	for _, field := range fields {
		if field.Name != name {
			continue
		}
		meta, err := typeinput.Analyze(context.Background(), field.Name, field.Type, typeinput.WithDefault(field.Default))
		if err != nil {
			t.Fatalf("Analyze %q: %v", name, err)
		}
		return meta
	}
	t.Fatalf("property %q not converted", name)
	return nil
}

func TestObject_ScalarProperties(t *testing.T) {
	schema := objectSchema([]string{"bitrate", "title"}, map[string]*openapi3.Schema{
		"bitrate": {
			Type:    &openapi3.Types{openapi3.TypeInteger},
			Min:     ptr(32.0),
			Max:     ptr(320.0),
			Default: 128.0,
			Title:   "Bitrate",
		},
		"title": {
			Type:      &openapi3.Types{openapi3.TypeString},
			MinLength: 1,
			MaxLength: ptr(uint64(80)),
			Pattern:   `^[^/]+$`,
		},
		"gain": {
			Type:         &openapi3.Types{openapi3.TypeNumber},
			Min:          ptr(0.0),
			Max:          ptr(12.0),
			ExclusiveMin: true,
			ExclusiveMax: true,
			Default:      6.0,
		},
	})

	fields, err := openapi.New().Object(schema)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	bitrate := analyzeOne(t, fields, "bitrate")
	if bitrate.Type != declaration.KindInt {
		t.Fatalf("bitrate kind = %s", bitrate.Type)
	}
	if bitrate.Default != 128 {
		t.Fatalf("bitrate default = %v (%T), want int 128", bitrate.Default, bitrate.Default)
	}
	if *bitrate.Constraints.GE != 32 || *bitrate.Constraints.LE != 320 {
		t.Fatalf("bitrate bounds = %+v", bitrate.Constraints)
	}
	if *bitrate.UI.Label != "Bitrate" {
		t.Fatalf("bitrate label = %+v", bitrate.UI)
	}
	if bitrate.Optional != nil {
		t.Fatal("required property must not be optional")
	}

	title := analyzeOne(t, fields, "title")
	if *title.Constraints.MinLength != 1 || *title.Constraints.MaxLength != 80 {
		t.Fatalf("title length bounds = %+v", title.Constraints)
	}
	if *title.Constraints.Pattern != `^[^/]+$` {
		t.Fatalf("title pattern = %+v", title.Constraints)
	}

	gain := analyzeOne(t, fields, "gain")
	if gain.Constraints.GT == nil || gain.Constraints.LT == nil {
		t.Fatalf("exclusive bounds should map to gt/lt: %+v", gain.Constraints)
	}
	if gain.Constraints.GE != nil || gain.Constraints.LE != nil {
		t.Fatalf("exclusive bounds must not also set ge/le: %+v", gain.Constraints)
	}
}

func TestObject_OptionalWrapping(t *testing.T) {
	schema := objectSchema(nil, map[string]*openapi3.Schema{
		"nickname": {Type: &openapi3.Types{openapi3.TypeString}},
		"theme":    {Type: &openapi3.Types{openapi3.TypeString}, Default: "dark"},
	})

	fields, err := openapi.New().Object(schema)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}

	nickname := analyzeOne(t, fields, "nickname")
	if nickname.Optional == nil || nickname.Optional.Enabled {
		t.Fatalf("unrequired property without default should be optional and disabled: %+v", nickname.Optional)
	}

	theme := analyzeOne(t, fields, "theme")
	if theme.Optional != nil {
		t.Fatal("property with a default stays required")
	}
	if theme.Default != "dark" {
		t.Fatalf("theme default = %v", theme.Default)
	}
}

func TestObject_EnumNormalisesIntegers(t *testing.T) {
	schema := objectSchema([]string{"rate"}, map[string]*openapi3.Schema{
		"rate": {
			Type: &openapi3.Types{openapi3.TypeInteger},
			Enum: []any{44100.0, 48000.0},
		},
	})

	fields, err := openapi.New().Object(schema)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}

	rate := analyzeOne(t, fields, "rate")
	if rate.Choices == nil || len(rate.Choices.Options) != 2 {
		t.Fatalf("choices = %+v", rate.Choices)
	}
	if rate.Choices.Options[0] != 44100 || rate.Choices.Options[1] != 48000 {
		t.Fatalf("options not normalised to int: %#v", rate.Choices.Options)
	}
}

func TestObject_StringFormats(t *testing.T) {
	schema := objectSchema([]string{"when", "at", "contact", "upload", "secret"}, map[string]*openapi3.Schema{
		"when":    {Type: &openapi3.Types{openapi3.TypeString}, Format: "date"},
		"at":      {Type: &openapi3.Types{openapi3.TypeString}, Format: "time"},
		"contact": {Type: &openapi3.Types{openapi3.TypeString}, Format: "email"},
		"upload":  {Type: &openapi3.Types{openapi3.TypeString}, Format: "binary"},
		"secret":  {Type: &openapi3.Types{openapi3.TypeString}, Format: "password"},
	})

	fields, err := openapi.New().Object(schema)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}

	if meta := analyzeOne(t, fields, "when"); meta.Type != declaration.KindDate {
		t.Fatalf("date format kind = %s", meta.Type)
	}
	if meta := analyzeOne(t, fields, "at"); meta.Type != declaration.KindTime {
		t.Fatalf("time format kind = %s", meta.Type)
	}
	if meta := analyzeOne(t, fields, "contact"); meta.Widget != "email" {
		t.Fatalf("email format widget = %q", meta.Widget)
	}
	if meta := analyzeOne(t, fields, "upload"); meta.Widget != "file" {
		t.Fatalf("binary format widget = %q", meta.Widget)
	}
	if meta := analyzeOne(t, fields, "secret"); meta.UI == nil || !meta.UI.IsPassword {
		t.Fatal("password format should mark the field as a password input")
	}
}

func TestObject_Arrays(t *testing.T) {
	schema := objectSchema([]string{"tags"}, map[string]*openapi3.Schema{
		"tags": {
			Type:     &openapi3.Types{openapi3.TypeArray},
			MinItems: 1,
			MaxItems: ptr(uint64(5)),
			Title:    "Tags",
			Items: openapi3.NewSchemaRef("", &openapi3.Schema{
				Type:      &openapi3.Types{openapi3.TypeString},
				MaxLength: ptr(uint64(20)),
			}),
		},
	})

	fields, err := openapi.New().Object(schema)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}

	tags := analyzeOne(t, fields, "tags")
	if tags.List == nil || *tags.List.MinItems != 1 || *tags.List.MaxItems != 5 {
		t.Fatalf("item bounds = %+v", tags.List)
	}
	if *tags.Constraints.MaxLength != 20 {
		t.Fatalf("item constraints = %+v", tags.Constraints)
	}
	if *tags.UI.Label != "Tags" {
		t.Fatalf("container label = %+v", tags.UI)
	}
}

func TestObject_SkipsUnsupportedProperties(t *testing.T) {
	var notices []openapi.Notice
	adapter := openapi.New(openapi.WithNotices(func(n openapi.Notice) {
		notices = append(notices, n)
	}))

	schema := objectSchema(nil, map[string]*openapi3.Schema{
		"address": {Type: &openapi3.Types{openapi3.TypeObject}},
		"grid": {
			Type: &openapi3.Types{openapi3.TypeArray},
			Items: openapi3.NewSchemaRef("", &openapi3.Schema{
				Type:  &openapi3.Types{openapi3.TypeArray},
				Items: openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}),
			}),
		},
		"name": {Type: &openapi3.Types{openapi3.TypeString}},
	})

	fields, err := adapter.Object(schema)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "name" {
		t.Fatalf("expected only the string property to survive, got %+v", fields)
	}
	if len(notices) != 2 {
		t.Fatalf("expected 2 skip notices, got %+v", notices)
	}
	for _, n := range notices {
		if n.Property != "address" && n.Property != "grid" {
			t.Fatalf("unexpected notice %+v", n)
		}
	}
}

const sampleDocument = `
openapi: 3.0.3
info:
  title: Encoder API
  version: 1.0.0
paths:
  /jobs:
    post:
      operationId: createJob
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [preset]
              properties:
                preset:
                  type: string
                  enum: [fast, slow]
                bitrate:
                  type: integer
                  minimum: 32
                  maximum: 320
                  default: 128
      responses:
        "200":
          description: accepted
`

func TestLoadDocumentAndRequestBody(t *testing.T) {
	doc, err := openapi.LoadDocument(context.Background(), []byte(sampleDocument))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	op, err := openapi.FindOperation(doc, "createJob")
	if err != nil {
		t.Fatalf("FindOperation: %v", err)
	}

	fields, err := openapi.New().RequestBody(op)
	if err != nil {
		t.Fatalf("RequestBody: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	bitrate := analyzeOne(t, fields, "bitrate")
	if bitrate.Default != 128 {
		t.Fatalf("bitrate default = %v (%T)", bitrate.Default, bitrate.Default)
	}

	preset := analyzeOne(t, fields, "preset")
	if preset.Choices == nil || !preset.Choices.Contains("fast") {
		t.Fatalf("preset choices = %+v", preset.Choices)
	}

	if _, err := openapi.FindOperation(doc, "missing"); err == nil {
		t.Fatal("expected unknown operation error")
	}
}
