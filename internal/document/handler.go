package document

// handler performs format-specific structured operations on document text.
// Handlers are stateless; all state lives in the Document.
type handler interface {
	// Validate checks that text parses as the handler's format.
	Validate(text string) error
	// GetPath resolves a parsed path. The boolean reports presence.
	GetPath(text string, segs []Segment) (any, bool, error)
	// SetPath returns new text with value assigned at the path,
	// creating intermediate objects for missing key segments.
	SetPath(text string, segs []Segment, value any) (string, error)
	// RemovePath returns new text with the path deleted. A path that
	// does not resolve returns the text unchanged.
	RemovePath(text string, segs []Segment) (string, error)
}

func handlerFor(f Format) handler {
	switch f {
	case FormatJSON:
		return jsonHandler{}
	case FormatYAML:
		return yamlHandler{}
	case FormatTOML:
		return tomlHandler{}
	}
	return textHandler{format: f}
}
