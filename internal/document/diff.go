package document

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Change is one semantic difference between two documents.
type Change struct {
	Path   string
	Before any
	After  any
}

// Diff is the result of comparing two documents.
type Diff struct {
	// Equivalent reports semantic equality. Structured documents compare
	// by decoded value, text documents byte-for-byte.
	Equivalent bool
	// Incomparable reports that the two formats share no comparison
	// basis, such as JSON against plain text. No other field is
	// meaningful when set.
	Incomparable bool
	// Changes lists the differing paths for structured comparisons.
	Changes []Change
	// Similarity is a 0..1 line-level ratio for text comparisons, and 1
	// for equivalent documents.
	Similarity float64
}

// Compare diffs two documents. Both structured formats compare
// semantically even across formats; both text-like formats compare as
// lines; a structured document against a text one is Incomparable.
func Compare(a, b *Document) (Diff, error) {
	switch {
	case a.format.Structured() && b.format.Structured():
		return compareStructured(a, b)
	case !a.format.Structured() && !b.format.Structured():
		return compareText(a.current, b.current), nil
	default:
		return Diff{Incomparable: true}, nil
	}
}

func compareStructured(a, b *Document) (Diff, error) {
	ta, err := decodeTree(a)
	if err != nil {
		return Diff{}, err
	}
	tb, err := decodeTree(b)
	if err != nil {
		return Diff{}, err
	}
	var changes []Change
	walkDiff("", ta, tb, &changes)
	if len(changes) == 0 {
		return Diff{Equivalent: true, Similarity: 1}, nil
	}
	return Diff{Changes: changes}, nil
}

func decodeTree(d *Document) (any, error) {
	switch d.format {
	case FormatJSON:
		if err := (jsonHandler{}).Validate(d.current); err != nil {
			return nil, err
		}
		if strings.TrimSpace(d.current) == "" {
			return nil, nil
		}
		return gjson.Parse(d.current).Value(), nil
	case FormatYAML:
		return yamlHandler{}.decode(d.current)
	case FormatTOML:
		node, err := tomlHandler{}.decode(d.current)
		if err != nil {
			return nil, err
		}
		return node, nil
	}
	return nil, &UnsupportedValueError{Format: d.format, Op: "semantic diff"}
}

func walkDiff(path string, a, b any, out *[]Change) {
	ma, aIsMap := a.(map[string]any)
	mb, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		keys := map[string]bool{}
		for k := range ma {
			keys[k] = true
		}
		for k := range mb {
			keys[k] = true
		}
		sorted := make([]string, 0, len(keys))
		for k := range keys {
			sorted = append(sorted, k)
		}
		sort.Strings(sorted)
		for _, k := range sorted {
			va, inA := ma[k]
			vb, inB := mb[k]
			child := joinPath(path, k)
			switch {
			case !inA:
				*out = append(*out, Change{Path: child, After: vb})
			case !inB:
				*out = append(*out, Change{Path: child, Before: va})
			default:
				walkDiff(child, va, vb, out)
			}
		}
		return
	}

	sa, aIsSlice := a.([]any)
	sb, bIsSlice := b.([]any)
	if aIsSlice && bIsSlice {
		n := len(sa)
		if len(sb) > n {
			n = len(sb)
		}
		for i := 0; i < n; i++ {
			child := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case i >= len(sa):
				*out = append(*out, Change{Path: child, After: sb[i]})
			case i >= len(sb):
				*out = append(*out, Change{Path: child, Before: sa[i]})
			default:
				walkDiff(child, sa[i], sb[i], out)
			}
		}
		return
	}

	if !looseEqual(a, b) {
		*out = append(*out, Change{Path: path, Before: a, After: b})
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// looseEqual compares scalars across the numeric types different decoders
// produce for the same literal.
func looseEqual(a, b any) bool {
	if na, ok := toFloat(a); ok {
		if nb, ok := toFloat(b); ok {
			return na == nb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func compareText(a, b string) Diff {
	if a == b {
		return Diff{Equivalent: true, Similarity: 1}
	}
	return Diff{Similarity: lineSimilarity(a, b)}
}

// lineSimilarity is the ratio of common lines (by LCS length) to the longer
// document's line count.
func lineSimilarity(a, b string) float64 {
	la := strings.Split(a, "\n")
	lb := strings.Split(b, "\n")
	longer := len(la)
	if len(lb) > longer {
		longer = len(lb)
	}
	if longer == 0 {
		return 1
	}

	prev := make([]int, len(lb)+1)
	cur := make([]int, len(lb)+1)
	for i := 1; i <= len(la); i++ {
		for j := 1; j <= len(lb); j++ {
			if la[i-1] == lb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return float64(prev[len(lb)]) / float64(longer)
}
