package contentgen

import (
	_ "embed"
	"fmt"
	"strings"

	"donations/internal/core/domain/model/content"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Prompts maps a content type to its template.
type Prompts map[content.Type]string

// ParsePrompts reads templates from YAML. Every content type needs one.
func ParsePrompts(raw []byte) (Prompts, error) {
	var decoded map[string]string
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	prompts := make(Prompts, len(decoded))
	for key, template := range decoded {
		contentType, err := content.ParseType(key)
		if err != nil {
			return nil, fmt.Errorf("parse prompts: %w", err)
		}
		prompts[contentType] = template
	}
	for _, required := range []content.Type{content.TypeThankYou, content.TypeFoodTips} {
		if strings.TrimSpace(prompts[required]) == "" {
			return nil, fmt.Errorf("parse prompts: no template for %s", required)
		}
	}
	return prompts, nil
}

// DefaultPrompts returns the embedded templates.
func DefaultPrompts() Prompts {
	prompts, err := ParsePrompts(defaultPrompts)
	if err != nil {
		panic(err)
	}
	return prompts
}

// Fill replaces every {{name}} in the template for contentType.
func (p Prompts) Fill(contentType content.Type, vars map[string]string) (string, error) {
	template, ok := p[contentType]
	if !ok {
		return "", fmt.Errorf("no prompt for content type %q", contentType)
	}
	pairs := make([]string, 0, 2*len(vars))
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}
