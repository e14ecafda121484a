package driven

import "context"

// Normaliser extracts plain text from one document format.
// Normalisers are selected by file extension.
type Normaliser interface {
	// SupportedExtensions returns the lower-case extensions this
	// normaliser handles, including the leading dot.
	SupportedExtensions() []string

	// Normalise reads the file at path and returns its text content.
	Normalise(ctx context.Context, path string) (string, error)
}

// NormaliserRegistry selects the appropriate normaliser for a file.
type NormaliserRegistry interface {
	// Normalise extracts text from the file at path using the
	// normaliser registered for its extension. Returns
	// domain.ErrUnsupportedType when no normaliser matches.
	Normalise(ctx context.Context, path string) (string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that can be normalised.
	SupportedExtensions() []string
}
