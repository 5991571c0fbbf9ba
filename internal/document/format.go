package document

import (
	"path/filepath"
	"strings"

	"github.com/repoconf-labs/repoconf/internal/blocks"
)

// Format identifies how a document's content is interpreted.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Structured reports whether the format supports path operations.
func (f Format) Structured() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return true
	}
	return false
}

// MarkerStyle returns the block marker family used for text-based block
// operations in this format. JSON documents use the reserved-key family
// instead and never consult this.
func (f Format) MarkerStyle() blocks.Style {
	if f == FormatMarkdown {
		return blocks.StyleHTML
	}
	return blocks.StyleHash
}

// FormatFromExtension maps a file extension to a format. Unrecognized
// extensions map to FormatText.
func FormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// DetectFormat picks a format for content with no usable extension. It is a
// heuristic used only when the caller has no path; extension mapping is
// authoritative when available.
func DetectFormat(content string) Format {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return FormatText
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			return FormatTOML
		}
		if strings.Contains(line, " = ") {
			return FormatTOML
		}
		if strings.Contains(line, ": ") || strings.HasSuffix(line, ":") {
			return FormatYAML
		}
		break
	}
	return FormatText
}
