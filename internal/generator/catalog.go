package generator

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultCatalog []byte

var (
	ErrUnknownStyle = errors.New("unknown style")
	ErrUnknownTone  = errors.New("unknown tone")
)

// Option is one selectable style or tone.
type Option struct {
	Label string `yaml:"label" json:"label"`
	Hint  string `yaml:"hint" json:"hint"`
}

// Catalog lists the styles and tones the generator accepts.
type Catalog struct {
	Styles map[string]Option `yaml:"styles" json:"styles"`
	Tones  map[string]Option `yaml:"tones" json:"tones"`
}

// LoadCatalog parses a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Styles) == 0 || len(c.Tones) == 0 {
		return nil, errors.New("catalog must define at least one style and one tone")
	}
	return &c, nil
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalog)
}

// Validate checks style and tone keys, case-insensitively.
func (c *Catalog) Validate(style, tone string) error {
	if _, ok := c.Styles[strings.ToLower(style)]; !ok {
		return fmt.Errorf("%w %q, expected one of %s", ErrUnknownStyle, style, keys(c.Styles))
	}
	if _, ok := c.Tones[strings.ToLower(tone)]; !ok {
		return fmt.Errorf("%w %q, expected one of %s", ErrUnknownTone, tone, keys(c.Tones))
	}
	return nil
}

// Prompt builds the user message sent to the model. Style and tone must be valid.
func (c *Catalog) Prompt(text, style, tone, recipient string) string {
	s := c.Styles[strings.ToLower(style)]
	t := c.Tones[strings.ToLower(tone)]

	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s compliment in a %s style (%s), %s.",
		strings.ToLower(t.Label), strings.ToLower(s.Label), s.Hint, t.Hint)
	if recipient = strings.TrimSpace(recipient); recipient != "" {
		fmt.Fprintf(&b, " It is for %s.", recipient)
	}
	if text = strings.TrimSpace(text); text != "" {
		fmt.Fprintf(&b, " Here is what I want to express: %s", text)
	}
	return b.String()
}

func keys(m map[string]Option) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
