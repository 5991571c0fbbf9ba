package document

import "fmt"

// Edit is a single text replacement: Old at Offset becomes New. Edits carry
// enough information to invert exactly.
type Edit struct {
	Offset int
	Old    string
	New    string
	// Op labels the mutation that produced the edit, for reporting.
	Op string
}

// Inverse returns the edit that undoes e when applied to the text e
// produced.
func (e Edit) Inverse() Edit {
	return Edit{Offset: e.Offset, Old: e.New, New: e.Old, Op: e.Op}
}

// Apply performs e on text. The region at Offset must equal Old.
func (e Edit) Apply(text string) (string, error) {
	if e.Offset < 0 || e.Offset+len(e.Old) > len(text) {
		return "", fmt.Errorf("document: edit offset %d out of range", e.Offset)
	}
	if text[e.Offset:e.Offset+len(e.Old)] != e.Old {
		return "", fmt.Errorf("document: edit does not match text at offset %d", e.Offset)
	}
	return text[:e.Offset] + e.New + text[e.Offset+len(e.Old):], nil
}

// diffEdit computes the minimal single-span replacement turning before into
// after, by trimming the common prefix and suffix.
func diffEdit(before, after, op string) (Edit, bool) {
	if before == after {
		return Edit{}, false
	}
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	return Edit{
		Offset: prefix,
		Old:    before[prefix : len(before)-suffix],
		New:    after[prefix : len(after)-suffix],
		Op:     op,
	}, true
}
