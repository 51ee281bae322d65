package html_test

import (
	"context"
	"strings"
	"testing"
	"time"

	typeinput "github.com/goliatone/go-typeinput"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/param"
	"github.com/goliatone/go-typeinput/pkg/render/html"
)

func analyze(t *testing.T, name string, decl declaration.TypeDeclaration, defaultValue any) *param.Metadata {
	t.Helper()
	meta, err := typeinput.Analyze(context.Background(), name, decl, typeinput.WithDefault(defaultValue))
	if err != nil {
		t.Fatalf("Analyze %q: %v", name, err)
	}
	return meta
}

func newRenderer(t *testing.T, options ...html.Option) *html.Renderer {
	t.Helper()
	r, err := html.New(options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func render(t *testing.T, meta *param.Metadata) string {
	t.Helper()
	out, err := newRenderer(t).Param(meta)
	if err != nil {
		t.Fatalf("Param %q: %v", meta.Name, err)
	}
	return out
}

func wantSubstrings(t *testing.T, out string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(out, sub) {
			t.Errorf("output missing %q:\n%s", sub, out)
		}
	}
}

func TestParam_Number(t *testing.T) {
	meta := analyze(t, "volume",
		declaration.Int().With(declaration.GE(0), declaration.LE(100)), 50)

	out := render(t, meta)
	wantSubstrings(t, out,
		`type="number"`,
		`name="volume"`,
		`value="50"`,
		`step="1"`,
		`min="0"`,
		`max="100"`,
		`data-kind="integer"`,
	)
}

func TestParam_NumberExclusiveBounds(t *testing.T) {
	intMeta := analyze(t, "count",
		declaration.Int().With(declaration.GT(0), declaration.LT(10)), nil)
	wantSubstrings(t, render(t, intMeta), `min="1"`, `max="9"`)

	floatMeta := analyze(t, "gain",
		declaration.Float().With(declaration.GT(0)), nil)
	wantSubstrings(t, render(t, floatMeta), `min="0.000001"`, `step="0.1"`)
}

func TestParam_FloatStepOverride(t *testing.T) {
	meta := analyze(t, "gain", declaration.Float().With(declaration.Step(0.25)), nil)
	wantSubstrings(t, render(t, meta), `step="0.25"`)
}

func TestParam_Slider(t *testing.T) {
	meta := analyze(t, "volume",
		declaration.Int().With(
			declaration.GE(0),
			declaration.LE(100),
			declaration.Slider(true),
		), 30)

	out := render(t, meta)
	wantSubstrings(t, out,
		`type="range"`,
		`min="0"`,
		`max="100"`,
		`value="30"`,
		`<output class="ti-slider-value"`,
	)
}

func TestParam_SliderWithoutValueReadout(t *testing.T) {
	meta := analyze(t, "volume",
		declaration.Int().With(
			declaration.GE(0),
			declaration.LE(100),
			declaration.Slider(false),
		), nil)

	out := render(t, meta)
	if strings.Contains(out, "<output") {
		t.Fatalf("value readout should be omitted:\n%s", out)
	}
}

func TestParam_Select(t *testing.T) {
	meta := analyze(t, "preset",
		declaration.String().With(declaration.OneOf("fast", "slow")), "slow")

	out := render(t, meta)
	wantSubstrings(t, out,
		`<select`,
		`<option value="fast">fast</option>`,
		`<option value="slow" selected>slow</option>`,
	)
}

func TestParam_Text(t *testing.T) {
	meta := analyze(t, "title",
		declaration.String().With(
			declaration.MinLen(1),
			declaration.MaxLen(80),
			declaration.Placeholder("working title"),
		), nil)

	out := render(t, meta)
	wantSubstrings(t, out,
		`type="text"`,
		`minlength="1"`,
		`maxlength="80"`,
		`placeholder="working title"`,
	)
}

func TestParam_Textarea(t *testing.T) {
	meta := analyze(t, "notes", declaration.String().With(declaration.Rows(4)), "draft")
	wantSubstrings(t, render(t, meta), `<textarea`, `rows="4"`, `>draft</textarea>`)
}

func TestParam_Password(t *testing.T) {
	meta := analyze(t, "secret", declaration.String().With(declaration.Password()), nil)
	wantSubstrings(t, render(t, meta), `type="password"`)
}

func TestParam_EmailWidget(t *testing.T) {
	meta := analyze(t, "contact", declaration.Email(), nil)
	wantSubstrings(t, render(t, meta), `type="email"`, `pattern="`)
}

func TestParam_ColorWidget(t *testing.T) {
	meta := analyze(t, "accent", declaration.Color(), nil)
	wantSubstrings(t, render(t, meta), `type="color"`)
}

func TestParam_FileWidget(t *testing.T) {
	meta := analyze(t, "cover", declaration.ImageFile(), nil)
	wantSubstrings(t, render(t, meta),
		`type="file"`,
		`data-widget="image-file"`,
		`accept="`,
	)
}

func TestParam_Bool(t *testing.T) {
	on := analyze(t, "loop", declaration.Bool(), true)
	wantSubstrings(t, render(t, on), `type="checkbox"`, ` checked`)

	off := analyze(t, "loop", declaration.Bool(), false)
	if strings.Contains(render(t, off), " checked") {
		t.Fatal("false default must not pre-check the switch")
	}
}

func TestParam_DateDefaultsToToday(t *testing.T) {
	meta := analyze(t, "publish_on", declaration.Date(), nil)
	today := time.Now().Format("2006-01-02")
	wantSubstrings(t, render(t, meta), `type="date"`, `value="`+today+`"`)
}

func TestParam_TimeDefaultsToNoon(t *testing.T) {
	meta := analyze(t, "airs_at", declaration.Time(), nil)
	wantSubstrings(t, render(t, meta), `type="time"`, `value="12:00"`)
}

func TestParam_List(t *testing.T) {
	meta := analyze(t, "tags",
		declaration.List(declaration.String()).With(
			declaration.MinItems(1),
			declaration.MaxItems(5),
		), []any{"go", "audio"})

	out := render(t, meta)
	wantSubstrings(t, out,
		`ti-field-list`,
		`data-min-items="1"`,
		`data-max-items="5"`,
		`value="go"`,
		`value="audio"`,
		`ti-add-item`,
	)
}

func TestParam_OptionalToggle(t *testing.T) {
	meta := analyze(t, "nickname", declaration.Optional(declaration.String()), "zed")
	wantSubstrings(t, render(t, meta), `ti-optional-toggle`, `name="nickname__enabled" checked`)

	disabled := analyze(t, "nickname", declaration.Optional(declaration.String()), nil)
	out := render(t, disabled)
	if strings.Contains(out, `name="nickname__enabled" checked`) {
		t.Fatalf("optional without default must start unchecked:\n%s", out)
	}
}

func TestParam_LabelFallsBackToName(t *testing.T) {
	meta := analyze(t, "max_speed", declaration.Int(), nil)
	wantSubstrings(t, render(t, meta), `>Max Speed</label>`)
}

func TestParam_LabelIsSanitized(t *testing.T) {
	meta := analyze(t, "volume",
		declaration.Int().With(declaration.Label("<script>alert(1)</script>Volume")), nil)

	out := render(t, meta)
	if strings.Contains(out, "<script>") {
		t.Fatalf("markup survived sanitisation:\n%s", out)
	}
	wantSubstrings(t, out, `>Volume</label>`)
}

func TestForm(t *testing.T) {
	fields := []*param.Metadata{
		analyze(t, "title", declaration.String(), nil),
		analyze(t, "cover", declaration.ImageFile(), nil),
	}

	out, err := newRenderer(t).Form(fields, html.WithAction("/jobs"), html.WithSubmitLabel("Create"))
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	wantSubstrings(t, out,
		`<form class="ti-form" action="/jobs" method="post" enctype="multipart/form-data"`,
		`data-param="title"`,
		`data-param="cover"`,
		`<style>`,
		`<script>`,
		`>Create</button>`,
	)
}

func TestForm_WithoutValidation(t *testing.T) {
	fields := []*param.Metadata{analyze(t, "title", declaration.String(), nil)}

	out, err := newRenderer(t, html.WithoutValidation()).Form(fields)
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("validation script should be dropped:\n%s", out)
	}
	wantSubstrings(t, out, ` method="post"`)
}
