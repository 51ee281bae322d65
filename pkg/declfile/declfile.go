// Package declfile loads parameter declarations from JSON or YAML documents.
// A document lists parameters in presentation order; each entry maps onto a
// declaration plus its tags, so files and in-code declarations travel the
// same analysis path.
package declfile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// Loader converts declaration documents into field lists. Dynamic option
// sources are looked up by the name the document references.
type Loader struct {
	sources map[string]declaration.OptionsFunc
}

// Option customises a Loader.
type Option func(*Loader)

// WithOptionsSource registers a dynamic options callable under a name that
// documents can reference via options_source.
func WithOptionsSource(name string, fn declaration.OptionsFunc) Option {
	return func(l *Loader) { l.sources[name] = fn }
}

// NewLoader constructs a Loader with the provided options applied.
func NewLoader(options ...Option) *Loader {
	l := &Loader{sources: make(map[string]declaration.OptionsFunc)}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// LoadFS reads a single document from the filesystem and converts it.
func (l *Loader) LoadFS(fsys fs.FS, path string) ([]declaration.NamedDeclaration, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("declfile: read %s: %w", path, err)
	}
	return l.Parse(data, path)
}

// Parse converts a document payload. The source string only feeds error
// messages.
func (l *Loader) Parse(data []byte, source string) ([]declaration.NamedDeclaration, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(doc.Params))
	fields := make([]declaration.NamedDeclaration, 0, len(doc.Params))
	for idx, entry := range doc.Params {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("declfile: file %s param at index %d has no name", source, idx)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("declfile: file %s declares duplicate param %q", source, name)
		}
		seen[name] = struct{}{}

		decl, err := l.buildDeclaration(entry, name, source)
		if err != nil {
			return nil, err
		}
		fields = append(fields, declaration.NamedDeclaration{
			Name:    name,
			Type:    decl,
			Default: defaultValue(decl, entry.Default),
		})
	}
	return fields, nil
}

type documentFile struct {
	Params []paramFile `json:"params" yaml:"params"`
}

type paramFile struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional" yaml:"optional"`
	List     bool   `json:"list" yaml:"list"`
	Default  any    `json:"default" yaml:"default"`

	MinItems *int `json:"min_items" yaml:"min_items"`
	MaxItems *int `json:"max_items" yaml:"max_items"`

	Label           *string  `json:"label" yaml:"label"`
	Description     *string  `json:"description" yaml:"description"`
	Placeholder     *string  `json:"placeholder" yaml:"placeholder"`
	PatternMessage  *string  `json:"pattern_message" yaml:"pattern_message"`
	Rows            *int     `json:"rows" yaml:"rows"`
	Step            *float64 `json:"step" yaml:"step"`
	Slider          bool     `json:"slider" yaml:"slider"`
	SliderShowValue bool     `json:"slider_show_value" yaml:"slider_show_value"`
	Password        bool     `json:"password" yaml:"password"`

	Constraints *constraintFile `json:"constraints" yaml:"constraints"`

	Enum          *enumFile `json:"enum" yaml:"enum"`
	OneOf         []any     `json:"one_of" yaml:"one_of"`
	OptionsSource string    `json:"options_source" yaml:"options_source"`
}

type constraintFile struct {
	Pattern   *string  `json:"pattern" yaml:"pattern"`
	MinLength *int     `json:"min_length" yaml:"min_length"`
	MaxLength *int     `json:"max_length" yaml:"max_length"`
	GE        *float64 `json:"ge" yaml:"ge"`
	LE        *float64 `json:"le" yaml:"le"`
	GT        *float64 `json:"gt" yaml:"gt"`
	LT        *float64 `json:"lt" yaml:"lt"`
}

type enumFile struct {
	Name    string        `json:"name" yaml:"name"`
	Members []memberEntry `json:"members" yaml:"members"`
}

type memberEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("declfile: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("declfile: parse %s: invalid JSON or YAML", source)
}

func (l *Loader) buildDeclaration(entry paramFile, name, source string) (declaration.TypeDeclaration, error) {
	base, err := baseDeclaration(entry.Type)
	if err != nil {
		return declaration.TypeDeclaration{}, fmt.Errorf("declfile: file %s param %q: %w", source, name, err)
	}

	tags, err := l.entryTags(entry, baseKind(base), name, source)
	if err != nil {
		return declaration.TypeDeclaration{}, err
	}
	if len(tags) > 0 {
		base = base.With(tags...)
	}

	if entry.List {
		base = declaration.List(base)
		var sizeTags []declaration.Tag
		if entry.MinItems != nil {
			sizeTags = append(sizeTags, declaration.MinItems(*entry.MinItems))
		}
		if entry.MaxItems != nil {
			sizeTags = append(sizeTags, declaration.MaxItems(*entry.MaxItems))
		}
		if len(sizeTags) > 0 {
			base = base.With(sizeTags...)
		}
	} else if entry.MinItems != nil || entry.MaxItems != nil {
		return declaration.TypeDeclaration{}, fmt.Errorf("declfile: file %s param %q sets item bounds without list: true", source, name)
	}

	if entry.Optional {
		base = declaration.Optional(base)
	}
	return base, nil
}

func baseDeclaration(kind string) (declaration.TypeDeclaration, error) {
	switch strings.TrimSpace(strings.ToLower(kind)) {
	case "string", "str", "":
		return declaration.String(), nil
	case "integer", "int":
		return declaration.Int(), nil
	case "number", "float":
		return declaration.Float(), nil
	case "boolean", "bool":
		return declaration.Bool(), nil
	case "date":
		return declaration.Date(), nil
	case "time":
		return declaration.Time(), nil
	case "email":
		return declaration.Email(), nil
	case "color":
		return declaration.Color(), nil
	case "file":
		return declaration.File(), nil
	case "image-file":
		return declaration.ImageFile(), nil
	case "video-file":
		return declaration.VideoFile(), nil
	case "audio-file":
		return declaration.AudioFile(), nil
	case "data-file":
		return declaration.DataFile(), nil
	case "text-file":
		return declaration.TextFile(), nil
	case "document-file":
		return declaration.DocumentFile(), nil
	default:
		return declaration.TypeDeclaration{}, fmt.Errorf("unknown type %q", kind)
	}
}

func (l *Loader) entryTags(entry paramFile, kind declaration.Kind, name, source string) ([]declaration.Tag, error) {
	var tags []declaration.Tag

	if entry.Constraints != nil {
		c := entry.Constraints
		tags = append(tags, declaration.Constrain(declaration.Constraints{
			Pattern:   c.Pattern,
			MinLength: c.MinLength,
			MaxLength: c.MaxLength,
			GE:        c.GE,
			LE:        c.LE,
			GT:        c.GT,
			LT:        c.LT,
		}))
	}

	sources := 0
	if entry.Enum != nil {
		sources++
	}
	if len(entry.OneOf) > 0 {
		sources++
	}
	if entry.OptionsSource != "" {
		sources++
	}
	if sources > 1 {
		return nil, fmt.Errorf("declfile: file %s param %q declares multiple choice sources", source, name)
	}

	switch {
	case entry.Enum != nil:
		if len(entry.Enum.Members) == 0 {
			return nil, fmt.Errorf("declfile: file %s param %q enum has no members", source, name)
		}
		members := make([]declaration.Member, len(entry.Enum.Members))
		for i, m := range entry.Enum.Members {
			if strings.TrimSpace(m.Name) == "" {
				return nil, fmt.Errorf("declfile: file %s param %q enum member at index %d has no name", source, name, i)
			}
			members[i] = declaration.Member{Name: m.Name, Value: integral(kind, m.Value)}
		}
		tags = append(tags, declaration.Enum(entry.Enum.Name, members...))
	case len(entry.OneOf) > 0:
		values := make([]any, len(entry.OneOf))
		for i, v := range entry.OneOf {
			values[i] = integral(kind, v)
		}
		tags = append(tags, declaration.OneOf(values...))
	case entry.OptionsSource != "":
		fn, ok := l.sources[entry.OptionsSource]
		if !ok {
			return nil, fmt.Errorf("declfile: file %s param %q references unregistered options source %q", source, name, entry.OptionsSource)
		}
		tags = append(tags, declaration.Dynamic(fn))
	}

	if entry.Label != nil {
		tags = append(tags, declaration.Label(*entry.Label))
	}
	if entry.Description != nil {
		tags = append(tags, declaration.Description(*entry.Description))
	}
	if entry.Placeholder != nil {
		tags = append(tags, declaration.Placeholder(*entry.Placeholder))
	}
	if entry.PatternMessage != nil {
		tags = append(tags, declaration.PatternMessage(*entry.PatternMessage))
	}
	if entry.Rows != nil {
		tags = append(tags, declaration.Rows(*entry.Rows))
	}
	if entry.Step != nil {
		tags = append(tags, declaration.Step(*entry.Step))
	}
	// slider_show_value without slider: true is dropped rather than implying
	// a slider the document never asked for.
	if entry.Slider {
		tags = append(tags, declaration.Slider(entry.SliderShowValue))
	}
	if entry.Password {
		tags = append(tags, declaration.Password())
	}

	return tags, nil
}

// defaultValue undoes the JSON decoder's number widening on declared
// defaults: json.Unmarshal hands integer literals over as float64, which the
// analyzer rejects for integer parameters. YAML documents decode whole
// numbers as int and pass through untouched.
func defaultValue(decl declaration.TypeDeclaration, value any) any {
	if value == nil {
		return nil
	}
	for decl.Elem != nil && decl.Shape != declaration.ShapeList {
		decl = *decl.Elem
	}
	if decl.Shape == declaration.ShapeList && decl.Elem != nil {
		if items, ok := value.([]any); ok {
			kind := baseKind(*decl.Elem)
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = integral(kind, item)
			}
			return out
		}
		return value
	}
	return integral(baseKind(decl), value)
}

// integral converts an integral float64 to int for integer parameters and
// leaves every other value alone.
func integral(kind declaration.Kind, value any) any {
	if kind != declaration.KindInt {
		return value
	}
	if f, ok := value.(float64); ok {
		if i := int(f); float64(i) == f {
			return i
		}
	}
	return value
}

func baseKind(d declaration.TypeDeclaration) declaration.Kind {
	for d.Elem != nil {
		d = *d.Elem
	}
	return d.Kind
}

// IsDeclFile reports whether the path looks like a declaration document.
func IsDeclFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
