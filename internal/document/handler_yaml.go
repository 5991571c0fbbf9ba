package document

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// yamlHandler re-serializes the document on mutation. Untouched values
// survive; comments and layout do not.
type yamlHandler struct{}

func (yamlHandler) decode(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var node any
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		return nil, &ParseError{Format: FormatYAML, Err: err}
	}
	return normalizeTree(node), nil
}

func (yamlHandler) encode(node any) (string, error) {
	if node == nil {
		return "", nil
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("document: encode yaml: %w", err)
	}
	return string(out), nil
}

func (h yamlHandler) Validate(text string) error {
	_, err := h.decode(text)
	return err
}

func (h yamlHandler) GetPath(text string, segs []Segment) (any, bool, error) {
	node, err := h.decode(text)
	if err != nil {
		return nil, false, err
	}
	v, ok := getTree(node, segs)
	return v, ok, nil
}

func (h yamlHandler) SetPath(text string, segs []Segment, value any) (string, error) {
	node, err := h.decode(text)
	if err != nil {
		return "", err
	}
	node, err = setTree(node, segs, value)
	if err != nil {
		return "", err
	}
	return h.encode(node)
}

func (h yamlHandler) RemovePath(text string, segs []Segment) (string, error) {
	node, err := h.decode(text)
	if err != nil {
		return "", err
	}
	node, removed := removeTree(node, segs, false)
	if !removed {
		return text, nil
	}
	return h.encode(node)
}

// normalizeTree rewrites map[any]any nodes, which older YAML inputs can
// produce for non-string keys, into map[string]any for uniform traversal.
func normalizeTree(node any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			n[k] = normalizeTree(v)
		}
		return n
	case map[any]any:
		m := make(map[string]any, len(n))
		for k, v := range n {
			m[fmt.Sprint(k)] = normalizeTree(v)
		}
		return m
	case []any:
		for i, v := range n {
			n[i] = normalizeTree(v)
		}
		return n
	}
	return node
}
