package param

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeinput/pkg/declaration"
)

func TestCanonical(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		kind    declaration.Kind
		value   any
		want    any
		wantErr bool
	}{
		{"int from int", declaration.KindInt, 5, 5, false},
		{"int from int64", declaration.KindInt, int64(5), 5, false},
		{"int from float rejected", declaration.KindInt, 5.0, nil, true},
		{"int from string rejected", declaration.KindInt, "5", nil, true},
		{"float from float64", declaration.KindFloat, 1.5, 1.5, false},
		{"float from float32", declaration.KindFloat, float32(0.5), 0.5, false},
		{"float from int rejected", declaration.KindFloat, 1, nil, true},
		{"bool", declaration.KindBool, true, true, false},
		{"bool from int rejected", declaration.KindBool, 1, nil, true},
		{"string", declaration.KindString, "x", "x", false},
		{"date from string", declaration.KindDate, "2024-06-01", date, false},
		{"date bad string", declaration.KindDate, "June 1", nil, true},
		{"time from HH:MM:SS", declaration.KindTime, "13:30:05", time.Date(0, 1, 1, 13, 30, 5, 0, time.UTC), false},
		{"time from HH:MM", declaration.KindTime, "13:30", time.Date(0, 1, 1, 13, 30, 0, 0, time.UTC), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Canonical(tc.kind, tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Canonical: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch:\n%s", diff)
			}
		})
	}
}

func TestCanonicalOptions(t *testing.T) {
	got, err := CanonicalOptions(declaration.KindInt, []any{1, int64(2), uint8(3)})
	if err != nil {
		t.Fatalf("CanonicalOptions: %v", err)
	}
	if diff := cmp.Diff([]any{1, 2, 3}, got); diff != "" {
		t.Fatalf("mismatch:\n%s", diff)
	}

	if _, err := CanonicalOptions(declaration.KindInt, nil); err == nil {
		t.Fatal("empty option set should fail")
	}
	if _, err := CanonicalOptions(declaration.KindInt, []any{1, "two"}); err == nil {
		t.Fatal("heterogeneous option set should fail")
	}
}

func TestViolation(t *testing.T) {
	ge, le := 0.0, 10.0
	gt, lt := 0.0, 1.0
	minLen, maxLen := 2, 4
	pattern := `^[a-z]+$`

	tests := []struct {
		name    string
		c       *ResolvedConstraints
		kind    declaration.Kind
		value   any
		wantErr bool
	}{
		{"nil constraints", nil, declaration.KindInt, 99, false},
		{"within bounds", &ResolvedConstraints{GE: &ge, LE: &le}, declaration.KindInt, 5, false},
		{"below ge", &ResolvedConstraints{GE: &ge}, declaration.KindInt, -1, true},
		{"at ge", &ResolvedConstraints{GE: &ge}, declaration.KindInt, 0, false},
		{"at gt rejected", &ResolvedConstraints{GT: &gt}, declaration.KindFloat, 0.0, true},
		{"at lt rejected", &ResolvedConstraints{LT: &lt}, declaration.KindFloat, 1.0, true},
		{"inside exclusive", &ResolvedConstraints{GT: &gt, LT: &lt}, declaration.KindFloat, 0.5, false},
		{"length ok", &ResolvedConstraints{MinLength: &minLen, MaxLength: &maxLen}, declaration.KindString, "abc", false},
		{"too short", &ResolvedConstraints{MinLength: &minLen}, declaration.KindString, "a", true},
		{"too long", &ResolvedConstraints{MaxLength: &maxLen}, declaration.KindString, "abcde", true},
		{"pattern match", &ResolvedConstraints{Pattern: &pattern}, declaration.KindString, "abc", false},
		{"pattern miss", &ResolvedConstraints{Pattern: &pattern}, declaration.KindString, "ABC", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Violation(tc.kind, tc.value)
			if tc.wantErr && err == nil {
				t.Fatal("expected violation")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected violation: %v", err)
			}
		})
	}
}

func TestViolation_RuneLength(t *testing.T) {
	maxLen := 3
	c := &ResolvedConstraints{MaxLength: &maxLen}
	if err := c.Violation(declaration.KindString, "héé"); err != nil {
		t.Fatalf("rune count should be used, got %v", err)
	}
}

func TestLabelize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"volume", "Volume"},
		{"max_retries", "Max Retries"},
		{"maxRetries", "Max Retries"},
		{"api-key", "Api Key"},
		{"maxRetries_count", "Max Retries Count"},
		{"ärger_count", "Ärger Count"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Labelize(tc.in); got != tc.want {
			t.Fatalf("Labelize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
