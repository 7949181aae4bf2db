// Package markdown writes launchdash reports as Markdown files and renders
// them for the terminal.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Split separates a leading YAML front matter block from the document body.
// Documents without front matter return an empty map and the input unchanged.
func Split(doc string) (map[string]any, string, error) {
	if !strings.HasPrefix(doc, separator) {
		return map[string]any{}, doc, nil
	}
	rest := strings.TrimPrefix(doc, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		return nil, "", fmt.Errorf("front matter: missing closing separator")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return nil, "", fmt.Errorf("front matter: %w", err)
	}
	return meta, rest[idx+1+len(separator):], nil
}

// Join is the inverse of Split. An empty meta map writes no front matter.
func Join(meta map[string]any, body string) (string, error) {
	if len(meta) == 0 {
		return body, nil
	}
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("front matter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}
