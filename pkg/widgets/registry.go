package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in widget identifiers inferred from recognised constraint patterns.
const (
	WidgetColor        = "color"
	WidgetEmail        = "email"
	WidgetImageFile    = "image-file"
	WidgetVideoFile    = "video-file"
	WidgetAudioFile    = "audio-file"
	WidgetDataFile     = "data-file"
	WidgetTextFile     = "text-file"
	WidgetDocumentFile = "document-file"
	WidgetFile         = "file"
)

// Recognised constraint patterns. A parameter whose final merged pattern is
// exactly one of these resolves to the associated widget.
var (
	PatternColor        = `^#(?:[0-9a-fA-F]{3}){1,2}$`
	PatternEmail        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	PatternImageFile    = filePattern("png", "jpg", "jpeg", "gif", "webp", "bmp", "tiff", "svg", "ico", "heic", "avif", "raw", "psd")
	PatternVideoFile    = filePattern("mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "mpeg", "mpg")
	PatternAudioFile    = filePattern("mp3", "wav", "aac", "flac", "ogg", "m4a")
	PatternDataFile     = filePattern("csv", "xlsx", "xls", "json", "xml", "yaml", "yml")
	PatternTextFile     = filePattern("txt", "md", "log", "rtf")
	PatternDocumentFile = filePattern("pdf", "doc", "docx", "odt", "ppt", "pptx", "odp", "xls", "xlsx", "ods")
	PatternAnyFile      = `^.+$`
)

var fileAccept = map[string]string{
	WidgetImageFile:    acceptList(PatternImageFile),
	WidgetVideoFile:    acceptList(PatternVideoFile),
	WidgetAudioFile:    acceptList(PatternAudioFile),
	WidgetDataFile:     acceptList(PatternDataFile),
	WidgetTextFile:     acceptList(PatternTextFile),
	WidgetDocumentFile: acceptList(PatternDocumentFile),
	WidgetFile:         "*",
}

// filePattern builds a case-insensitive pattern matching file names with one
// of the given extensions.
func filePattern(exts ...string) string {
	return `(?i)^.+\.(` + strings.Join(exts, "|") + `)$`
}

// acceptList converts a file pattern back into the comma-separated extension
// list used by HTML accept attributes (".png,.jpg").
func acceptList(pattern string) string {
	start := strings.Index(pattern, `\.(`)
	end := strings.LastIndex(pattern, `)$`)
	if start < 0 || end <= start {
		return "*"
	}
	exts := strings.Split(pattern[start+3:end], "|")
	for i, ext := range exts {
		exts[i] = "." + ext
	}
	return strings.Join(exts, ",")
}

// IsFileWidget reports whether name identifies one of the file widget kinds.
func IsFileWidget(name string) bool {
	_, ok := fileAccept[name]
	return ok
}

// AcceptExtensions returns the HTML accept attribute value for a file widget,
// or "*" when the widget accepts anything or is unknown.
func AcceptExtensions(widget string) string {
	if accept, ok := fileAccept[widget]; ok {
		return accept
	}
	return "*"
}

// Subject is what a matcher sees: the resolved base kind and the final merged
// constraint pattern of one parameter (item level for lists).
type Subject struct {
	Kind    string
	Pattern string
}

// Matcher decides whether a widget should be inferred for the subject.
type Matcher func(Subject) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry holds an ordered set of widget inference rules. Higher priority
// wins; ties fall back to registration order. The zero registry never
// resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in pattern associations
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds an inference rule. Higher priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget inferred for the subject, if any.
func (r *Registry) Resolve(subject Subject) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(subject) {
			return entry.name, true
		}
	}
	return "", false
}

func exactPattern(pattern string) Matcher {
	return func(s Subject) bool { return s.Pattern == pattern }
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetColor, 90, exactPattern(PatternColor))
	r.Register(WidgetEmail, 85, exactPattern(PatternEmail))
	r.Register(WidgetImageFile, 80, exactPattern(PatternImageFile))
	r.Register(WidgetVideoFile, 75, exactPattern(PatternVideoFile))
	r.Register(WidgetAudioFile, 70, exactPattern(PatternAudioFile))
	r.Register(WidgetDataFile, 65, exactPattern(PatternDataFile))
	r.Register(WidgetTextFile, 60, exactPattern(PatternTextFile))
	r.Register(WidgetDocumentFile, 55, exactPattern(PatternDocumentFile))

	// The any-file pattern stays lowest so specific categories win when
	// callers register overlapping rules.
	r.Register(WidgetFile, 10, exactPattern(PatternAnyFile))
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry with the built-in rules.
func Default() *Registry { return defaultRegistry }
