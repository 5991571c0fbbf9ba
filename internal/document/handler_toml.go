package document

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// tomlHandler re-serializes the document on mutation, like yamlHandler.
type tomlHandler struct{}

func (tomlHandler) decode(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}, nil
	}
	var node map[string]any
	if err := toml.Unmarshal([]byte(text), &node); err != nil {
		return nil, &ParseError{Format: FormatTOML, Err: err}
	}
	return node, nil
}

func (tomlHandler) encode(node map[string]any) (string, error) {
	if len(node) == 0 {
		return "", nil
	}
	out, err := toml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("document: encode toml: %w", err)
	}
	return string(out), nil
}

func (h tomlHandler) Validate(text string) error {
	_, err := h.decode(text)
	return err
}

func (h tomlHandler) GetPath(text string, segs []Segment) (any, bool, error) {
	node, err := h.decode(text)
	if err != nil {
		return nil, false, err
	}
	v, ok := getTree(node, segs)
	return v, ok, nil
}

func (h tomlHandler) SetPath(text string, segs []Segment, value any) (string, error) {
	// go-toml silently omits nil map values on Marshal, so a null would
	// vanish without an error.
	if containsNil(value) {
		return "", &UnsupportedValueError{Format: FormatTOML, Op: "setting a null value"}
	}
	node, err := h.decode(text)
	if err != nil {
		return "", err
	}
	updated, err := setTree(node, segs, value)
	if err != nil {
		return "", err
	}
	m, ok := updated.(map[string]any)
	if !ok {
		return "", fmt.Errorf("document: toml document root must be a table")
	}
	return h.encode(m)
}

func (h tomlHandler) RemovePath(text string, segs []Segment) (string, error) {
	node, err := h.decode(text)
	if err != nil {
		return "", err
	}
	// Nulls are unencodable here, so array removal splices rather than
	// clearing the slot. Sibling indices shift, unlike JSON and YAML.
	updated, removed := removeTree(node, segs, true)
	if !removed {
		return text, nil
	}
	return h.encode(updated.(map[string]any))
}

// containsNil reports whether v is nil or holds a nil anywhere inside a
// supplied map or slice.
func containsNil(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case map[string]any:
		for _, child := range n {
			if containsNil(child) {
				return true
			}
		}
	case []any:
		for _, child := range n {
			if containsNil(child) {
				return true
			}
		}
	}
	return false
}
