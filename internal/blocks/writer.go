package blocks

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBlockNotFound reports a remove targeting an id with no block.
	ErrBlockNotFound = errors.New("blocks: block not found")
	// ErrAmbiguousID reports a write targeting an id with more than one
	// block. Reads resolve duplicates first-match; writes refuse them.
	ErrAmbiguousID = errors.New("blocks: duplicate block id")
)

// Upsert replaces the interior of the block with the given id, or appends a
// new block at the end of the document when none exists. The document's
// surrounding content is untouched.
func Upsert(text, id, content string, style Style) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("blocks: invalid block id %q", id)
	}

	switch Count(text, id, style) {
	case 0:
		return appendBlock(text, id, content, style), nil
	case 1:
		b, _, err := Find(text, id, style)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		sb.Grow(len(text) + len(content))
		sb.WriteString(text[:b.Start])
		sb.WriteString(style.Open(id))
		sb.WriteString("\n")
		sb.WriteString(content)
		sb.WriteString("\n")
		sb.WriteString(style.Close(id))
		sb.WriteString(text[b.End:])
		return sb.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}
}

func appendBlock(text, id, content string, style Style) string {
	var sb strings.Builder
	sb.WriteString(text)
	switch {
	case text == "":
	case strings.HasSuffix(text, "\n\n"):
	case strings.HasSuffix(text, "\n"):
		sb.WriteString("\n")
	default:
		sb.WriteString("\n\n")
	}
	sb.WriteString(style.Open(id))
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(style.Close(id))
	sb.WriteString("\n")
	return sb.String()
}

// Remove deletes the block with the given id, markers included, trimming at
// most one adjoining blank line so repeated upsert/remove cycles do not
// accumulate whitespace. Removing an absent id is ErrBlockNotFound;
// duplicates are refused with ErrAmbiguousID.
func Remove(text, id string, style Style) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("blocks: invalid block id %q", id)
	}

	switch Count(text, id, style) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrBlockNotFound, id)
	case 1:
	default:
		return "", fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}

	b, _, err := Find(text, id, style)
	if err != nil {
		return "", err
	}

	before, after := text[:b.Start], text[b.End:]

	// The marker line usually ends with a newline belonging to the region.
	after = strings.TrimPrefix(after, "\n")

	switch {
	case strings.HasSuffix(before, "\n\n"):
		before = before[:len(before)-1]
	case after == "" && strings.HasSuffix(before, "\n"):
		// Block was the last element; keep a single trailing newline at
		// most.
		before = strings.TrimRight(before, "\n")
		if before != "" {
			before += "\n"
		}
	}

	return before + after, nil
}
