// Package prompt renders parameter records as interactive terminal prompts.
// A Driver abstracts the terminal so ask flows stay testable; the default
// driver is backed by survey.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/param"
	"github.com/goliatone/go-typeinput/pkg/validate"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithDriver replaces the default survey-backed driver.
func WithDriver(d Driver) Option {
	return func(r *Renderer) { r.driver = d }
}

// WithPageSize sets the page size for select prompts.
func WithPageSize(n int) Option {
	return func(r *Renderer) { r.pageSize = n }
}

// Renderer asks for parameter values over a terminal, validating answers
// against each record before accepting them.
type Renderer struct {
	driver   Driver
	pageSize int
}

// New constructs a Renderer with the provided options applied.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: &surveyDriver{}}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// AskAll prompts for every record in order and returns the collected values
// keyed by parameter name. Skipped optional parameters map to nil.
func (r *Renderer) AskAll(ctx context.Context, fields []*param.Metadata) (map[string]any, error) {
	values := make(map[string]any, len(fields))
	for _, meta := range fields {
		value, err := r.Ask(ctx, meta)
		if err != nil {
			return nil, err
		}
		values[meta.Name] = value
	}
	return values, nil
}

// Ask prompts for a single parameter and returns the validated canonical
// value, or nil when an optional parameter is skipped.
func (r *Renderer) Ask(ctx context.Context, meta *param.Metadata) (any, error) {
	if meta == nil {
		return nil, errors.New("prompt: nil metadata")
	}

	label := param.Labelize(meta.Name)
	if meta.UI != nil && meta.UI.Label != nil {
		label = *meta.UI.Label
	}

	if meta.Optional != nil {
		provide, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Provide %s?", label),
			Default: meta.Optional.Enabled,
			Help:    helpText(meta),
		})
		if err != nil {
			return nil, err
		}
		if !provide {
			return nil, nil
		}
	}

	if meta.Choices != nil {
		return r.askChoices(ctx, meta, label)
	}
	if meta.Type == declaration.KindBool {
		return r.askBool(ctx, meta, label)
	}
	if meta.List != nil {
		return r.askList(ctx, meta, label)
	}
	return r.askScalar(ctx, meta, label, meta.Default)
}

func (r *Renderer) askChoices(ctx context.Context, meta *param.Metadata, label string) (any, error) {
	options := make([]string, len(meta.Choices.Options))
	for i, opt := range meta.Choices.Options {
		options[i] = displayValue(meta.Type, opt)
	}

	if meta.List != nil {
		cfg := SelectConfig{
			Message:  label,
			Options:  options,
			Help:     helpText(meta),
			PageSize: r.pageSize,
			Defaults: choiceIndices(meta, options),
		}
		picked, err := r.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		values := make([]any, 0, len(picked))
		for _, idx := range picked {
			if idx < 0 || idx >= len(meta.Choices.Options) {
				return nil, fmt.Errorf("prompt: %q: selection out of range", meta.Name)
			}
			values = append(values, meta.Choices.Options[idx])
		}
		return validated(meta, values)
	}

	cfg := SelectConfig{
		Message:      label,
		Options:      options,
		Help:         helpText(meta),
		PageSize:     r.pageSize,
		DefaultIndex: defaultChoiceIndex(meta, options),
	}
	idx, err := r.driver.Select(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(meta.Choices.Options) {
		return nil, fmt.Errorf("prompt: %q: selection out of range", meta.Name)
	}
	return validated(meta, meta.Choices.Options[idx])
}

func (r *Renderer) askBool(ctx context.Context, meta *param.Metadata, label string) (any, error) {
	enabled := false
	if v, ok := meta.Default.(bool); ok {
		enabled = v
	}
	return r.driver.Confirm(ctx, ConfirmConfig{
		Message: label,
		Default: enabled,
		Help:    helpText(meta),
	})
}

// askList collects items one at a time until the user stops or the container
// bound is reached, then validates the assembled list as a whole.
func (r *Renderer) askList(ctx context.Context, meta *param.Metadata, label string) (any, error) {
	item := *meta
	item.List = nil
	item.Optional = nil
	item.Default = nil

	minItems, maxItems := 0, -1
	if meta.List.MinItems != nil {
		minItems = *meta.List.MinItems
	}
	if meta.List.MaxItems != nil {
		maxItems = *meta.List.MaxItems
	}

	defaults := defaultSlice(meta.Default)
	var items []any
	for {
		var itemDefault any
		if len(items) < len(defaults) {
			itemDefault = defaults[len(items)]
		}
		value, err := r.askScalar(ctx, &item, fmt.Sprintf("%s [%d]", label, len(items)+1), itemDefault)
		if err != nil {
			return nil, err
		}
		items = append(items, value)

		if maxItems >= 0 && len(items) >= maxItems {
			break
		}
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s?", label),
			Default: len(items) < minItems,
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return validated(meta, items)
}

func (r *Renderer) askScalar(ctx context.Context, meta *param.Metadata, label string, defaultValue any) (any, error) {
	cfg := InputConfig{
		Message:   label,
		Default:   displayValue(meta.Type, defaultValue),
		Help:      helpText(meta),
		Validator: answerValidator(meta),
	}
	if meta.UI != nil && meta.UI.Placeholder != nil && cfg.Help == "" {
		cfg.Help = *meta.UI.Placeholder
	}

	var (
		answer string
		err    error
	)
	switch {
	case meta.Type == declaration.KindString && meta.UI != nil && meta.UI.IsPassword:
		answer, err = r.driver.Password(ctx, cfg)
	case meta.Type == declaration.KindString && meta.UI != nil && meta.UI.Rows != nil:
		answer, err = r.driver.TextArea(ctx, cfg)
	default:
		answer, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	return validated(meta, answer)
}

// answerValidator adapts record validation to the per-keystroke validator
// drivers expect, so bad answers are re-asked instead of failing the flow.
func answerValidator(meta *param.Metadata) func(string) error {
	return func(answer string) error {
		_, err := validate.Value(meta, answer)
		return err
	}
}

func validated(meta *param.Metadata, value any) (any, error) {
	coerced, err := validate.Value(meta, value)
	if err != nil {
		return nil, fmt.Errorf("prompt: %q: %w", meta.Name, err)
	}
	return coerced, nil
}

func helpText(meta *param.Metadata) string {
	if meta.UI != nil && meta.UI.Description != nil {
		return *meta.UI.Description
	}
	return ""
}

func defaultChoiceIndex(meta *param.Metadata, options []string) int {
	if meta.Default == nil {
		return -1
	}
	return indexOf(options, displayValue(meta.Type, meta.Default))
}

func choiceIndices(meta *param.Metadata, options []string) []int {
	if meta.Default == nil {
		return nil
	}
	var out []int
	for _, v := range defaultSlice(meta.Default) {
		if idx := indexOf(options, displayValue(meta.Type, v)); idx >= 0 {
			out = append(out, idx)
		}
	}
	return out
}

func defaultSlice(value any) []any {
	if value == nil {
		return nil
	}
	if values, ok := value.([]any); ok {
		return values
	}
	return []any{value}
}

func displayValue(kind declaration.Kind, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if kind == declaration.KindTime {
			return v.Format("15:04")
		}
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
