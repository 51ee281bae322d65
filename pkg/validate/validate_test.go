package validate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	typeinput "github.com/goliatone/go-typeinput"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/param"
	"github.com/goliatone/go-typeinput/pkg/validate"
)

func analyze(t *testing.T, decl declaration.TypeDeclaration, opts ...typeinput.Option) *param.Metadata {
	t.Helper()
	meta, err := typeinput.Analyze(context.Background(), "field", decl, opts...)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return meta
}

func TestValue_Coercion(t *testing.T) {
	tests := []struct {
		name  string
		decl  declaration.TypeDeclaration
		input any
		want  any
	}{
		{"int passthrough", declaration.Int(), 5, 5},
		{"int from numeric string", declaration.Int(), "42", 42},
		{"int from integral float", declaration.Int(), 7.0, 7},
		{"float from string", declaration.Float(), "1.5", 1.5},
		{"float from int", declaration.Float(), 2, 2.0},
		{"bool from yes", declaration.Bool(), "yes", true},
		{"bool from 0", declaration.Bool(), "0", false},
		{"string passthrough", declaration.String(), "hello", "hello"},
		{"date from string", declaration.Date(), "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"time from short string", declaration.Time(), "13:30", time.Date(0, 1, 1, 13, 30, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := analyze(t, tc.decl)
			got, err := validate.Value(meta, tc.input)
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch:\n%s", diff)
			}
		})
	}
}

func TestValue_TypeMismatch(t *testing.T) {
	meta := analyze(t, declaration.Int())
	if _, err := validate.Value(meta, "not a number"); !errors.Is(err, validate.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if _, err := validate.Value(meta, 1.5); !errors.Is(err, validate.ErrTypeMismatch) {
		t.Fatalf("fractional float: expected ErrTypeMismatch, got %v", err)
	}
}

func TestValue_RequiredAndOptional(t *testing.T) {
	required := analyze(t, declaration.String())
	if _, err := validate.Value(required, nil); !errors.Is(err, validate.ErrRequired) {
		t.Fatalf("expected ErrRequired, got %v", err)
	}

	optional := analyze(t, declaration.Optional(declaration.String()))
	got, err := validate.Value(optional, nil)
	if err != nil {
		t.Fatalf("optional nil should pass: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestValue_EmptyString(t *testing.T) {
	meta := analyze(t, declaration.String())
	if _, err := validate.Value(meta, "   "); !errors.Is(err, validate.ErrEmptyString) {
		t.Fatalf("expected ErrEmptyString, got %v", err)
	}
}

func TestValue_Constraints(t *testing.T) {
	meta := analyze(t, declaration.Int().With(declaration.GE(0), declaration.LE(10)))
	if _, err := validate.Value(meta, 11); !errors.Is(err, validate.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
	if _, err := validate.Value(meta, 10); err != nil {
		t.Fatalf("boundary value should pass: %v", err)
	}
}

func TestValue_Choices(t *testing.T) {
	meta := analyze(t, declaration.String().With(declaration.OneOf("a", "b")))
	if _, err := validate.Value(meta, "c"); !errors.Is(err, validate.ErrNotInChoices) {
		t.Fatalf("expected ErrNotInChoices, got %v", err)
	}
	if _, err := validate.Value(meta, "a"); err != nil {
		t.Fatalf("member should pass: %v", err)
	}
}

func TestValue_EnumByNameAndValue(t *testing.T) {
	meta := analyze(t, declaration.Int().With(declaration.Enum("Level",
		declaration.Member{Name: "Low", Value: 1},
		declaration.Member{Name: "High", Value: 2},
	)))

	got, err := validate.Value(meta, "High")
	if err != nil {
		t.Fatalf("member name should coerce: %v", err)
	}
	if got != 2 {
		t.Fatalf("got %v, want 2", got)
	}

	got, err = validate.Value(meta, "1")
	if err != nil {
		t.Fatalf("stringified member value should coerce: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %v, want 1", got)
	}

	if _, err := validate.Value(meta, "Medium"); !errors.Is(err, validate.ErrNotInChoices) {
		t.Fatalf("expected ErrNotInChoices, got %v", err)
	}
}

func TestValue_DynamicChoicesNotChecked(t *testing.T) {
	meta := analyze(t, declaration.String().With(declaration.Dynamic(func(context.Context) ([]any, error) {
		return []any{"a"}, nil
	})))

	if _, err := validate.Value(meta, "anything"); err != nil {
		t.Fatalf("dynamic choice sets are not membership-checked: %v", err)
	}
}

func TestValue_Lists(t *testing.T) {
	meta := analyze(t, declaration.List(declaration.Int().With(declaration.GE(0))).With(
		declaration.MinItems(2), declaration.MaxItems(3),
	))

	if _, err := validate.Value(meta, []any{1}); !errors.Is(err, validate.ErrListBounds) {
		t.Fatalf("short list: expected ErrListBounds, got %v", err)
	}
	if _, err := validate.Value(meta, []any{1, 2, 3, 4}); !errors.Is(err, validate.ErrListBounds) {
		t.Fatalf("long list: expected ErrListBounds, got %v", err)
	}
	if _, err := validate.Value(meta, []any{}); !errors.Is(err, validate.ErrEmptyList) {
		t.Fatalf("empty list: expected ErrEmptyList, got %v", err)
	}
	if _, err := validate.Value(meta, []any{1, -1}); !errors.Is(err, validate.ErrConstraint) {
		t.Fatalf("item violation: expected ErrConstraint, got %v", err)
	}

	coerced, err := validate.Value(meta, []any{"1", 2.0})
	if err != nil {
		t.Fatalf("items should coerce individually: %v", err)
	}
	if diff := cmp.Diff([]any{1, 2}, coerced); diff != "" {
		t.Fatalf("mismatch:\n%s", diff)
	}
}
