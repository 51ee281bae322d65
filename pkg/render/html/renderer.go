// Package html renders finalized parameter records as HTML form fields using
// pongo2 templates. Templates ship embedded; callers may override the whole
// set but never mutate a record while rendering it.
package html

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"strconv"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/param"
	"github.com/goliatone/go-typeinput/pkg/widgets"
)

//go:embed templates/*.tpl
var templateFS embed.FS

//go:embed assets/styles.css
var defaultStyles string

//go:embed assets/validation.js
var validationScript string

// Exclusive numeric bounds collapse onto HTML min/max by nudging one unit of
// resolution, matching how range inputs treat boundaries.
const (
	intEpsilon   = 1
	floatEpsilon = 1e-6
)

// Option configures a Renderer before construction.
type Option func(*config)

type config struct {
	templates  fs.FS
	styles     string
	validation bool
}

// WithTemplates replaces the embedded template set. The filesystem must
// expose the same template names at its root.
func WithTemplates(fsys fs.FS) Option {
	return func(cfg *config) { cfg.templates = fsys }
}

// WithStyles replaces the default stylesheet emitted by Form.
func WithStyles(css string) Option {
	return func(cfg *config) { cfg.styles = css }
}

// WithoutValidation drops the client-side validation script from Form output.
func WithoutValidation() Option {
	return func(cfg *config) { cfg.validation = false }
}

// Renderer converts parameter records into HTML fragments.
type Renderer struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template

	policy     *bluemonday.Policy
	styles     string
	validation bool
}

// New constructs a Renderer using the provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		styles:     defaultStyles,
		validation: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	templates := cfg.templates
	if templates == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("htmlrender: embedded templates: %w", err)
		}
		templates = sub
	}

	return &Renderer{
		set:        pongo2.NewSet("typeinput", pongo2.NewFSLoader(templates)),
		templates:  make(map[string]*pongo2.Template),
		policy:     bluemonday.StrictPolicy(),
		styles:     cfg.styles,
		validation: cfg.validation,
	}, nil
}

// Styles returns the configured stylesheet wrapped in a style tag.
func (r *Renderer) Styles() string {
	return "<style>" + r.styles + "</style>"
}

// ValidationScript returns the client-side validation script wrapped in a
// script tag, or the empty string when validation is disabled.
func (r *Renderer) ValidationScript() string {
	if !r.validation {
		return ""
	}
	return "<script>" + validationScript + "</script>"
}

// Param renders a single parameter record as an HTML field fragment.
func (r *Renderer) Param(meta *param.Metadata) (string, error) {
	if meta == nil {
		return "", errors.New("htmlrender: nil metadata")
	}
	switch meta.Type {
	case declaration.KindInt, declaration.KindFloat:
		return r.renderNumber(meta)
	case declaration.KindString:
		return r.renderString(meta)
	case declaration.KindBool:
		return r.renderBool(meta)
	case declaration.KindDate:
		return r.renderDate(meta)
	case declaration.KindTime:
		return r.renderTime(meta)
	default:
		return "", fmt.Errorf("htmlrender: unsupported parameter type %q", meta.Type)
	}
}

// FormOption adjusts a single Form call.
type FormOption func(*formConfig)

type formConfig struct {
	action      string
	method      string
	submitLabel string
}

// WithAction sets the form action attribute.
func WithAction(action string) FormOption {
	return func(cfg *formConfig) { cfg.action = action }
}

// WithMethod overrides the form method attribute.
func WithMethod(method string) FormOption {
	return func(cfg *formConfig) { cfg.method = method }
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) FormOption {
	return func(cfg *formConfig) { cfg.submitLabel = label }
}

// Form renders a complete form: styles, one field per record in order, a
// submit button, and the validation script when enabled.
func (r *Renderer) Form(fields []*param.Metadata, options ...FormOption) (string, error) {
	cfg := &formConfig{
		method:      "post",
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	rendered := make([]any, 0, len(fields))
	hasFiles := false
	for _, meta := range fields {
		fragment, err := r.Param(meta)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, fragment)
		if meta != nil && widgets.IsFileWidget(meta.Widget) {
			hasFiles = true
		}
	}

	script := ""
	if r.validation {
		script = validationScript
	}
	return r.execute("form.tpl", pongo2.Context{
		"fields":       rendered,
		"styles":       r.styles,
		"script":       script,
		"action":       cfg.action,
		"method":       cfg.method,
		"submit_label": cfg.submitLabel,
		"has_files":    hasFiles,
	})
}

func (r *Renderer) renderNumber(meta *param.Metadata) (string, error) {
	if meta.Choices != nil {
		return r.renderSelect(meta)
	}

	step := 1.0
	if meta.Type == declaration.KindFloat {
		step = 0.1
	}
	if meta.UI != nil && meta.UI.Step != nil {
		step = *meta.UI.Step
	}

	ctx := r.baseContext(meta)
	ctx["step"] = formatFloat(step)

	if meta.UI != nil && meta.UI.IsSlider {
		ctx["show_value"] = meta.UI.ShowSliderValue
		return r.execute("slider.tpl", ctx)
	}
	return r.execute("number.tpl", ctx)
}

func (r *Renderer) renderString(meta *param.Metadata) (string, error) {
	if meta.Choices != nil {
		return r.renderSelect(meta)
	}

	if widgets.IsFileWidget(meta.Widget) {
		ctx := r.baseContext(meta)
		ctx["widget"] = meta.Widget
		ctx["accept"] = widgets.AcceptExtensions(meta.Widget)
		return r.execute("file.tpl", ctx)
	}

	ctx := r.baseContext(meta)
	switch {
	case meta.Widget == widgets.WidgetColor:
		ctx["input_type"] = "color"
	case meta.Widget == widgets.WidgetEmail:
		ctx["input_type"] = "email"
	case meta.UI != nil && meta.UI.Rows != nil:
		ctx["rows"] = *meta.UI.Rows
		return r.execute("textarea.tpl", ctx)
	case meta.UI != nil && meta.UI.IsPassword:
		ctx["input_type"] = "password"
	default:
		ctx["input_type"] = "text"
	}
	return r.execute("text.tpl", ctx)
}

func (r *Renderer) renderBool(meta *param.Metadata) (string, error) {
	ctx := r.baseContext(meta)
	enabled := false
	if v, ok := meta.Default.(bool); ok {
		enabled = v
	}
	ctx["default"] = enabled
	return r.execute("bool.tpl", ctx)
}

func (r *Renderer) renderDate(meta *param.Metadata) (string, error) {
	ctx := r.baseContext(meta)
	today := time.Now().Format(paramDateLayout)
	if ctx["default"] == "" && meta.List == nil {
		ctx["default"] = today
	}
	ctx["list_item_default"] = today
	return r.execute("date.tpl", ctx)
}

func (r *Renderer) renderTime(meta *param.Metadata) (string, error) {
	ctx := r.baseContext(meta)
	noon := "12:00"
	if ctx["default"] == "" && meta.List == nil {
		ctx["default"] = noon
	}
	ctx["list_item_default"] = noon
	return r.execute("time.tpl", ctx)
}

func (r *Renderer) renderSelect(meta *param.Metadata) (string, error) {
	ctx := r.baseContext(meta)

	options := make([]string, 0, len(meta.Choices.Options))
	for _, opt := range meta.Choices.Options {
		options = append(options, formatValue(meta.Type, opt))
	}
	ctx["options"] = options

	var selected []string
	if meta.Default != nil {
		if meta.List != nil {
			for _, v := range defaultSlice(meta.Default) {
				selected = append(selected, formatValue(meta.Type, v))
			}
		} else {
			selected = append(selected, formatValue(meta.Type, meta.Default))
		}
	}
	ctx["selected_values"] = selected

	return r.execute("select.tpl", ctx)
}

// baseContext assembles the template variables shared by every field
// template. Scalar values arrive pre-formatted as strings so templates can
// test presence without tripping over zero values.
func (r *Renderer) baseContext(meta *param.Metadata) pongo2.Context {
	label := param.Labelize(meta.Name)
	if meta.UI != nil && meta.UI.Label != nil {
		label = *meta.UI.Label
	}

	ctx := pongo2.Context{
		"name":             meta.Name,
		"kind":             string(meta.Type),
		"label":            r.sanitize(label),
		"description":      "",
		"placeholder":      "",
		"pattern_message":  "",
		"pattern":          "",
		"min":              "",
		"max":              "",
		"min_items":        "",
		"max_items":        "",
		"default":          "",
		"default_values":   []string{},
		"is_list":          meta.List != nil,
		"is_optional":      meta.Optional != nil,
		"optional_enabled": meta.Optional != nil && meta.Optional.Enabled,
	}

	if meta.UI != nil {
		if meta.UI.Description != nil {
			ctx["description"] = r.sanitize(*meta.UI.Description)
		}
		if meta.UI.Placeholder != nil {
			ctx["placeholder"] = r.sanitize(*meta.UI.Placeholder)
		}
		if meta.UI.PatternMessage != nil {
			ctx["pattern_message"] = r.sanitize(*meta.UI.PatternMessage)
		}
	}

	minVal, maxVal := boundAttributes(meta)
	ctx["min"] = minVal
	ctx["max"] = maxVal
	if meta.Constraints != nil && meta.Constraints.Pattern != nil {
		ctx["pattern"] = *meta.Constraints.Pattern
	}

	if meta.List != nil {
		if meta.List.MinItems != nil {
			ctx["min_items"] = strconv.Itoa(*meta.List.MinItems)
		}
		if meta.List.MaxItems != nil {
			ctx["max_items"] = strconv.Itoa(*meta.List.MaxItems)
		}
		if meta.Default != nil {
			values := make([]string, 0)
			for _, v := range defaultSlice(meta.Default) {
				values = append(values, formatValue(meta.Type, v))
			}
			ctx["default_values"] = values
		}
	} else if meta.Default != nil {
		ctx["default"] = formatValue(meta.Type, meta.Default)
	}

	return ctx
}

// boundAttributes flattens the merged constraints onto the HTML min/max
// attribute pair. Inclusive bounds pass through; exclusive bounds shift by
// one unit of resolution for the kind.
func boundAttributes(meta *param.Metadata) (string, string) {
	c := meta.Constraints
	if c == nil {
		return "", ""
	}

	if meta.Type == declaration.KindString {
		minVal, maxVal := "", ""
		if c.MinLength != nil {
			minVal = strconv.Itoa(*c.MinLength)
		}
		if c.MaxLength != nil {
			maxVal = strconv.Itoa(*c.MaxLength)
		}
		return minVal, maxVal
	}

	eps := floatEpsilon
	if meta.Type == declaration.KindInt {
		eps = intEpsilon
	}

	minVal, maxVal := "", ""
	if c.GE != nil {
		minVal = formatFloat(*c.GE)
	}
	if c.GT != nil {
		minVal = formatFloat(*c.GT + eps)
	}
	if c.LE != nil {
		maxVal = formatFloat(*c.LE)
	}
	if c.LT != nil {
		maxVal = formatFloat(*c.LT - eps)
	}
	return minVal, maxVal
}

const paramDateLayout = "2006-01-02"

func formatValue(kind declaration.Kind, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if kind == declaration.KindTime {
			return v.Format("15:04")
		}
		return v.Format(paramDateLayout)
	case float64:
		return formatFloat(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func defaultSlice(value any) []any {
	if values, ok := value.([]any); ok {
		return values
	}
	return []any{value}
}

func (r *Renderer) sanitize(text string) string {
	return html.UnescapeString(r.policy.Sanitize(text))
}

func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("htmlrender: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("htmlrender: load template %q: %w", name, err)
	}
	r.templates[name] = tmpl
	return tmpl, nil
}
