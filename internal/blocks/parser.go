package blocks

import "strings"

// Block is a parsed managed region. Offsets cover the whole region
// including both marker lines. Blocks are transient: they are recomputed by
// parsing and never persisted.
type Block struct {
	// ID embedded in the marker pair.
	ID string
	// Content between the markers, without the markers themselves and
	// without the single newline adjoining each marker.
	Content string
	// Start is the byte offset of the opening marker.
	Start int
	// End is the byte offset just past the closing marker.
	End int
	// StartLine and EndLine are 1-based line positions of the markers.
	StartLine int
	EndLine   int
}

// Result is the outcome of parsing a document for managed blocks.
// OpenCount and CloseCount include unmatched markers so callers can detect
// unbalanced documents explicitly.
type Result struct {
	Blocks     []Block
	OpenCount  int
	CloseCount int
}

// Parse scans text for managed blocks in the given marker style.
//
// An open marker with no close before EOF is omitted. A close with no
// preceding open is ignored. Duplicate ids yield independent entries; id
// uniqueness is the caller's responsibility.
func Parse(text string, style Style) Result {
	res := Result{
		OpenCount:  len(style.openRegexp().FindAllStringIndex(text, -1)),
		CloseCount: len(style.closeRegexp().FindAllStringIndex(text, -1)),
	}

	for _, m := range style.openRegexp().FindAllStringSubmatchIndex(text, -1) {
		id := text[m[2]:m[3]]
		openStart, openEnd := m[0], m[1]

		closeRe, err := style.closeMatcher(id)
		if err != nil {
			continue
		}
		loc := closeRe.FindStringIndex(text[openEnd:])
		if loc == nil {
			continue
		}
		closeStart := openEnd + loc[0]
		closeEnd := openEnd + loc[1]

		// Skip an open marker that sits inside an already-parsed block of
		// the same id: the first close terminated the first open, so this
		// one is literal interior content.
		if inside(res.Blocks, id, openStart) {
			continue
		}

		interior := text[openEnd:closeStart]
		interior = strings.TrimPrefix(interior, "\n")
		interior = strings.TrimSuffix(interior, "\n")

		res.Blocks = append(res.Blocks, Block{
			ID:        id,
			Content:   interior,
			Start:     openStart,
			End:       closeEnd,
			StartLine: strings.Count(text[:openStart], "\n") + 1,
			EndLine:   strings.Count(text[:closeEnd], "\n") + 1,
		})
	}

	return res
}

func inside(parsed []Block, id string, pos int) bool {
	for _, b := range parsed {
		if b.ID == id && pos > b.Start && pos < b.End {
			return true
		}
	}
	return false
}

// Find returns the first block with the given id, using an escaped
// per-id matcher. The boolean reports whether a block was found.
func Find(text, id string, style Style) (Block, bool, error) {
	if _, err := style.openMatcher(id); err != nil {
		return Block{}, false, err
	}
	for _, b := range Parse(text, style).Blocks {
		if b.ID == id {
			return b, true, nil
		}
	}
	return Block{}, false, nil
}

// Count returns how many blocks carry the given id.
func Count(text, id string, style Style) int {
	n := 0
	for _, b := range Parse(text, style).Blocks {
		if b.ID == id {
			n++
		}
	}
	return n
}
