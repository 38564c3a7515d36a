package parser

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/models"
)

const frontmatterDelim = "---"

// SplitFrontmatter looks for a frontmatter block opened by a delimiter on the
// very first line. It returns the lines between the delimiters and the index
// of the first line after the block. An unterminated block runs to the end.
func SplitFrontmatter(lines []string) (block []string, bodyStart int, ok bool) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r\n") != frontmatterDelim {
		return nil, 0, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r\n") == frontmatterDelim {
			return lines[1:i], i + 1, true
		}
	}
	return lines[1:], len(lines), true
}

// ParseOverrides decodes a frontmatter block as a flat mapping and keeps only
// the recognised keys. Unknown keys are ignored. A block that is not a
// mapping, or that maps a recognised key to a non-scalar, is an ErrFormat.
func ParseOverrides(block []string) (models.Overrides, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &raw); err != nil {
		return models.Overrides{}, fmt.Errorf("parser: frontmatter: %w: %w", apperr.ErrFormat, err)
	}

	var o models.Overrides
	fields := []struct {
		key string
		dst **string
	}{
		{"activity", &o.Activity},
		{"activity_tp", &o.ActivityTP},
		{"tool", &o.Tool},
		{"objective", &o.Objective},
		{"duration", &o.Duration},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		s, err := scalarString(v)
		if err != nil {
			return models.Overrides{}, fmt.Errorf("parser: frontmatter key %q: %w: %w", f.key, apperr.ErrFormat, err)
		}
		*f.dst = &s
	}
	return o, nil
}

func scalarString(v any) (string, error) {
	switch v.(type) {
	case nil:
		return "", nil
	case map[string]any, []any:
		return "", fmt.Errorf("expected a scalar, got %T", v)
	}
	return cast.ToStringE(v)
}
