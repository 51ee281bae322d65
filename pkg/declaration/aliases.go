package declaration

import "github.com/goliatone/go-typeinput/pkg/widgets"

// The alias constructors below mirror the special string types consumers
// compose with: each is a string declaration pre-tagged with a registered
// constraint pattern, so the analyzer infers the matching widget unless a
// later layer overrides the pattern.

// Email declares a string constrained to an email shape. It carries a
// pattern message and placeholder out of the box; later layers may override
// either.
func Email() TypeDeclaration {
	return String().With(
		Pattern(widgets.PatternEmail),
		PatternMessage("Must be a valid email address (e.g., name@example.com)"),
		Placeholder("name@example.com"),
	)
}

// Color declares a string constrained to a 3- or 6-digit hex color.
func Color() TypeDeclaration {
	return String().With(Pattern(widgets.PatternColor))
}

// ImageFile declares a string holding an image file name.
func ImageFile() TypeDeclaration {
	return String().With(Pattern(widgets.PatternImageFile))
}

// VideoFile declares a string holding a video file name.
func VideoFile() TypeDeclaration {
	return String().With(Pattern(widgets.PatternVideoFile))
}

// AudioFile declares a string holding an audio file name.
func AudioFile() TypeDeclaration {
	return String().With(Pattern(widgets.PatternAudioFile))
}

// DataFile declares a string holding a tabular or structured data file name.
func DataFile() TypeDeclaration {
	return String().With(Pattern(widgets.PatternDataFile))
}

// TextFile declares a string holding a plain text file name.
func TextFile() TypeDeclaration {
	return String().With(Pattern(widgets.PatternTextFile))
}

// DocumentFile declares a string holding a document file name.
func DocumentFile() TypeDeclaration {
	return String().With(Pattern(widgets.PatternDocumentFile))
}

// File declares a string holding any file name.
func File() TypeDeclaration {
	return String().With(Pattern(widgets.PatternAnyFile))
}
