package resolve

import (
	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// mergeUI walks the ordered tag list once and resolves the presentation
// hints. Keys are independent: for each key the last tag that sets it wins,
// so a later label never resets an earlier description.
func mergeUI(tags []declaration.Tag) *param.ResolvedUI {
	var ui param.ResolvedUI
	seen := false

	for _, tag := range tags {
		switch t := tag.(type) {
		case declaration.LabelTag:
			text := t.Text
			ui.Label = &text
		case declaration.DescriptionTag:
			text := t.Text
			ui.Description = &text
		case declaration.PlaceholderTag:
			text := t.Text
			ui.Placeholder = &text
		case declaration.PatternMessageTag:
			text := t.Message
			ui.PatternMessage = &text
		case declaration.RowsTag:
			count := t.Count
			ui.Rows = &count
		case declaration.StepTag:
			value := t.Value
			ui.Step = &value
		case declaration.SliderTag:
			ui.IsSlider = true
			ui.ShowSliderValue = t.ShowValue
		case declaration.PasswordTag:
			ui.IsPassword = true
		default:
			continue
		}
		seen = true
	}

	if !seen {
		return nil
	}
	return &ui
}

// propagateContainerUI applies the label/description propagation rule: the
// container layer wins when it provides a value, otherwise the resolved
// item-level value is copied up (already in place).
func propagateContainerUI(ui *param.ResolvedUI, scope *containerScope) *param.ResolvedUI {
	if scope == nil || (scope.label == nil && scope.description == nil) {
		return ui
	}
	if ui == nil {
		ui = &param.ResolvedUI{}
	}
	if scope.label != nil {
		ui.Label = scope.label
	}
	if scope.description != nil {
		ui.Description = scope.description
	}
	return ui
}
