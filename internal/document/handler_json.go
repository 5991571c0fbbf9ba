package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonHandler edits JSON in place, preserving the formatting of untouched
// regions.
type jsonHandler struct{}

func (jsonHandler) Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !gjson.Valid(text) {
		return &ParseError{Format: FormatJSON, Err: fmt.Errorf("invalid JSON")}
	}
	return nil
}

// gjsonPath renders segments in gjson syntax. Literal dots in keys are
// escaped so they stay single segments.
func gjsonPath(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		if s.IsKey {
			parts[i] = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`).Replace(s.Key)
		} else {
			parts[i] = strconv.Itoa(s.Index)
		}
	}
	return strings.Join(parts, ".")
}

func (h jsonHandler) GetPath(text string, segs []Segment) (any, bool, error) {
	if err := h.Validate(text); err != nil {
		return nil, false, err
	}
	r := gjson.Get(text, gjsonPath(segs))
	if !r.Exists() {
		return nil, false, nil
	}
	return r.Value(), true, nil
}

func (h jsonHandler) SetPath(text string, segs []Segment, value any) (string, error) {
	if err := h.Validate(text); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		text = "{}"
	}
	for i, s := range segs {
		if !s.IsKey && !gjson.Get(text, gjsonPath(segs[:i+1])).Exists() {
			return "", fmt.Errorf("document: index %d out of range", s.Index)
		}
	}
	out, err := sjson.Set(text, gjsonPath(segs), value)
	if err != nil {
		return "", fmt.Errorf("document: set path: %w", err)
	}
	return out, nil
}

func (h jsonHandler) RemovePath(text string, segs []Segment) (string, error) {
	if err := h.Validate(text); err != nil {
		return "", err
	}
	if !gjson.Get(text, gjsonPath(segs)).Exists() {
		return text, nil
	}
	out, err := sjson.Delete(text, gjsonPath(segs))
	if err != nil {
		return "", fmt.Errorf("document: remove path: %w", err)
	}
	return out, nil
}
