package document

// textHandler covers markdown and plain text: block operations work on the
// raw text, structured path operations are not expressible.
type textHandler struct {
	format Format
}

func (textHandler) Validate(string) error { return nil }

func (h textHandler) GetPath(string, []Segment) (any, bool, error) {
	return nil, false, &UnsupportedValueError{Format: h.format, Op: "get_path"}
}

func (h textHandler) SetPath(string, []Segment, any) (string, error) {
	return "", &UnsupportedValueError{Format: h.format, Op: "set_path"}
}

func (h textHandler) RemovePath(string, []Segment) (string, error) {
	return "", &UnsupportedValueError{Format: h.format, Op: "remove_path"}
}
