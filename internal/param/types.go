package param

import (
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// ResolvedConstraints is the merged constraint state for one parameter (item
// level for lists). At most one value survives per key; merging always
// overwrites, never appends.
type ResolvedConstraints struct {
	Pattern   *string  `json:"pattern,omitempty"`
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	GE        *float64 `json:"ge,omitempty"`
	LE        *float64 `json:"le,omitempty"`
	GT        *float64 `json:"gt,omitempty"`
	LT        *float64 `json:"lt,omitempty"`
}

// ResolvedUI is the merged presentation state. Label and description resolve
// at container scope for lists (outer layer wins, otherwise the item-level
// value is copied up); the remaining keys always describe the item scope.
// ShowSliderValue is meaningful only when IsSlider is set.
type ResolvedUI struct {
	Label           *string  `json:"label,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Placeholder     *string  `json:"placeholder,omitempty"`
	PatternMessage  *string  `json:"pattern_message,omitempty"`
	Rows            *int     `json:"rows,omitempty"`
	Step            *float64 `json:"step,omitempty"`
	IsPassword      bool     `json:"is_password,omitempty"`
	IsSlider        bool     `json:"is_slider,omitempty"`
	ShowSliderValue bool     `json:"show_slider_value,omitempty"`
}

// ResolvedList carries container-level length bounds. Everything else about a
// list parameter describes its item type.
type ResolvedList struct {
	MinItems *int `json:"min_items,omitempty"`
	MaxItems *int `json:"max_items,omitempty"`
}

// ResolvedOptional records that the parameter may be absent and whether it
// starts enabled.
type ResolvedOptional struct {
	Enabled bool `json:"enabled"`
}

// ResolvedChoices is the fixed or dynamically sourced option set. Options is
// the only mutable state in a finalized Metadata: RefreshChoices replaces it
// in place for dynamic sources. Refresh is not internally synchronised;
// callers sharing a record across goroutines must serialise refreshes and
// must not read Options concurrently with one.
type ResolvedChoices struct {
	Options []any `json:"options"`

	// Enum carries the enumeration identity when the source was an
	// enumeration; Members retains the named members for coercion.
	Enum    string               `json:"enum,omitempty"`
	Members []declaration.Member `json:"-"`

	// Source is the refresh callable for dynamic choice sets, nil otherwise.
	Source declaration.OptionsFunc `json:"-"`
}

// Dynamic reports whether the options come from a callable source.
func (c *ResolvedChoices) Dynamic() bool { return c != nil && c.Source != nil }

// Contains reports whether value is one of the options.
func (c *ResolvedChoices) Contains(value any) bool {
	if c == nil {
		return false
	}
	for _, opt := range c.Options {
		if equalValue(opt, value) {
			return true
		}
	}
	return false
}

// Metadata is the terminal record of one analysis: flat, self-contained, and
// owned by the caller. All fields are write-once; only a dynamic choice set
// may be refreshed afterwards.
type Metadata struct {
	Name        string               `json:"name"`
	Type        declaration.Kind     `json:"param_type"`
	Default     any                  `json:"default,omitempty"`
	Constraints *ResolvedConstraints `json:"constraints,omitempty"`
	Widget      string               `json:"widget,omitempty"`
	Optional    *ResolvedOptional    `json:"optional,omitempty"`
	List        *ResolvedList        `json:"list,omitempty"`
	Choices     *ResolvedChoices     `json:"choices,omitempty"`
	UI          *ResolvedUI          `json:"ui,omitempty"`
}
