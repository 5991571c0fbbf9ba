package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a document path: either a map key or an array
// index.
type Segment struct {
	Key   string
	Index int
	IsKey bool
}

func (s Segment) String() string {
	if s.IsKey {
		return s.Key
	}
	return "[" + strconv.Itoa(s.Index) + "]"
}

// ParsePath splits a dotted path with optional bracket indices into
// segments. "servers[0].name" parses as key "servers", index 0, key "name".
func ParsePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, fmt.Errorf("document: empty path")
	}
	var segs []Segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("document: empty segment in path %q", path)
		}
		key := part
		var indices []int
		for {
			open := strings.Index(key, "[")
			if open < 0 {
				break
			}
			closeIdx := strings.Index(key[open:], "]")
			if closeIdx < 0 {
				return nil, fmt.Errorf("document: unterminated index in path %q", path)
			}
			idx, err := strconv.Atoi(key[open+1 : open+closeIdx])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("document: invalid index in path %q", path)
			}
			indices = append(indices, idx)
			key = key[:open] + key[open+closeIdx+1:]
		}
		if key != "" {
			segs = append(segs, Segment{Key: key, IsKey: true})
		} else if len(indices) == 0 {
			return nil, fmt.Errorf("document: empty segment in path %q", path)
		}
		for _, idx := range indices {
			segs = append(segs, Segment{Index: idx})
		}
	}
	return segs, nil
}

// getTree walks a decoded tree along segments. The boolean reports whether
// the full path resolved.
func getTree(node any, segs []Segment) (any, bool) {
	for _, s := range segs {
		if s.IsKey {
			m, ok := node.(map[string]any)
			if !ok {
				return nil, false
			}
			node, ok = m[s.Key]
			if !ok {
				return nil, false
			}
		} else {
			arr, ok := node.([]any)
			if !ok || s.Index >= len(arr) {
				return nil, false
			}
			node = arr[s.Index]
		}
	}
	return node, true
}

// setTree assigns value at segs, creating intermediate maps for missing key
// segments. Index segments must already resolve; paths cannot grow arrays.
func setTree(root any, segs []Segment, value any) (any, error) {
	if len(segs) == 0 {
		return value, nil
	}
	s := segs[0]
	if s.IsKey {
		m, ok := root.(map[string]any)
		if !ok {
			if root != nil {
				return nil, fmt.Errorf("document: segment %q traverses non-object value", s.Key)
			}
			m = map[string]any{}
		}
		child, err := setTree(m[s.Key], segs[1:], value)
		if err != nil {
			return nil, err
		}
		m[s.Key] = child
		return m, nil
	}
	arr, ok := root.([]any)
	if !ok || s.Index >= len(arr) {
		return nil, fmt.Errorf("document: index %d out of range", s.Index)
	}
	child, err := setTree(arr[s.Index], segs[1:], value)
	if err != nil {
		return nil, err
	}
	arr[s.Index] = child
	return arr, nil
}

// removeTree deletes the value at segs. A path that does not resolve is a
// no-op; the boolean reports whether anything was removed. Index removal
// clears the slot to null so sibling indices stay stable; splice shifts
// the siblings down instead, for formats that cannot encode null. The
// returned root replaces the caller's, since splicing re-slices arrays.
func removeTree(root any, segs []Segment, splice bool) (any, bool) {
	if len(segs) == 0 {
		return root, false
	}
	s := segs[0]
	if len(segs) == 1 {
		if s.IsKey {
			m, ok := root.(map[string]any)
			if !ok {
				return root, false
			}
			if _, present := m[s.Key]; !present {
				return root, false
			}
			delete(m, s.Key)
			return root, true
		}
		arr, ok := root.([]any)
		if !ok || s.Index >= len(arr) {
			return root, false
		}
		if splice {
			return append(arr[:s.Index], arr[s.Index+1:]...), true
		}
		arr[s.Index] = nil
		return arr, true
	}
	if s.IsKey {
		m, ok := root.(map[string]any)
		if !ok {
			return root, false
		}
		child, present := m[s.Key]
		if !present {
			return root, false
		}
		newChild, removed := removeTree(child, segs[1:], splice)
		if removed {
			m[s.Key] = newChild
		}
		return root, removed
	}
	arr, ok := root.([]any)
	if !ok || s.Index >= len(arr) {
		return root, false
	}
	newChild, removed := removeTree(arr[s.Index], segs[1:], splice)
	if removed {
		arr[s.Index] = newChild
	}
	return root, removed
}
