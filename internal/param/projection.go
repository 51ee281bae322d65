package param

import (
	"time"

	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// Projection returns a key/value view of the record suitable for
// cross-process transport. Absent fields are omitted; nested records project
// recursively. Dates and times serialise as ISO strings; callable sources are
// never included.
func (m *Metadata) Projection() map[string]any {
	out := map[string]any{
		"name":       m.Name,
		"param_type": string(m.Type),
	}
	if m.Default != nil {
		out["default"] = serialize(m.Type, m.Default)
	}
	if m.Constraints != nil {
		out["constraints"] = m.Constraints.projection()
	}
	if m.Widget != "" {
		out["widget"] = m.Widget
	}
	if m.Optional != nil {
		out["optional"] = map[string]any{"enabled": m.Optional.Enabled}
	}
	if m.List != nil {
		out["list"] = m.List.projection()
	}
	if m.Choices != nil {
		out["choices"] = m.Choices.projection(m.Type)
	}
	if m.UI != nil {
		out["ui"] = m.UI.projection()
	}
	return out
}

func (c *ResolvedConstraints) projection() map[string]any {
	out := map[string]any{}
	putFloat(out, "ge", c.GE)
	putFloat(out, "le", c.LE)
	putFloat(out, "gt", c.GT)
	putFloat(out, "lt", c.LT)
	putInt(out, "min_length", c.MinLength)
	putInt(out, "max_length", c.MaxLength)
	if c.Pattern != nil {
		out["pattern"] = *c.Pattern
	}
	return out
}

func (l *ResolvedList) projection() map[string]any {
	out := map[string]any{}
	putInt(out, "min_items", l.MinItems)
	putInt(out, "max_items", l.MaxItems)
	return out
}

func (c *ResolvedChoices) projection(kind declaration.Kind) map[string]any {
	options := make([]any, len(c.Options))
	for i, opt := range c.Options {
		options[i] = serialize(kind, opt)
	}
	out := map[string]any{"options": options}
	if c.Enum != "" {
		out["enum"] = c.Enum
	}
	return out
}

func (u *ResolvedUI) projection() map[string]any {
	out := map[string]any{}
	putString(out, "label", u.Label)
	putString(out, "description", u.Description)
	putString(out, "placeholder", u.Placeholder)
	putString(out, "pattern_message", u.PatternMessage)
	putInt(out, "rows", u.Rows)
	putFloat(out, "step", u.Step)
	if u.IsPassword {
		out["is_password"] = true
	}
	if u.IsSlider {
		out["is_slider"] = true
		out["show_slider_value"] = u.ShowSliderValue
	}
	return out
}

func serialize(kind declaration.Kind, value any) any {
	if items, ok := value.([]any); ok {
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = serialize(kind, item)
		}
		return out
	}
	if t, ok := value.(time.Time); ok {
		if kind == declaration.KindTime {
			return t.Format(TimeLayout)
		}
		return t.Format(DateLayout)
	}
	return value
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putInt(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}
