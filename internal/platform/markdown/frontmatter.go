// Package markdown renders the archive notes written when a ride session is
// replaced: a YAML frontmatter block followed by a short summary body.
package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// RenderNote builds a frontmatter-fenced document. Metadata keys come out in
// yaml.Marshal's sorted order, so notes diff cleanly between runs.
func RenderNote(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(fence)
	b.Write(raw)
	b.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String(), nil
}
