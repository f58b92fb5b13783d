package blueprint

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtinTemplates []byte

// Template is a named, reusable profile definition.
type Template struct {
	Name    string `yaml:"name"`
	Profile `yaml:",inline"`
}

// Catalog is a set of templates plus the list of suggested roles.
type Catalog struct {
	Roles     []string   `yaml:"roles"`
	Templates []Template `yaml:"templates"`
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
	builtinErr     error
)

// Builtin returns the embedded template catalog.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtinCatalog, builtinErr = LoadCatalog(bytes.NewReader(builtinTemplates))
	})
	return builtinCatalog, builtinErr
}

// LoadCatalog decodes a YAML catalog and validates every template in it.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode template catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Templates))
	for i := range c.Templates {
		t := &c.Templates[i]
		if t.Name == "" {
			return nil, fmt.Errorf("template %d: name is required", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("template %q: duplicate name", t.Name)
		}
		seen[t.Name] = true
		if err := t.Profile.Validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.Name, err)
		}
	}
	return &c, nil
}

// Get returns the template with the given name.
func (c *Catalog) Get(name string) (Template, bool) {
	for _, t := range c.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Search returns templates whose role or tech stack contains term
// (case-insensitive) and whose role contains role, when role is set.
func (c *Catalog) Search(term, role string) []Template {
	term = strings.ToLower(term)
	role = strings.ToLower(role)

	var out []Template
	for _, t := range c.Templates {
		r := strings.ToLower(t.Role)
		if role != "" && !strings.Contains(r, role) {
			continue
		}
		if term == "" || strings.Contains(r, term) || stackContains(t.TechStack, term) {
			out = append(out, t)
		}
	}
	return out
}

func stackContains(stack []string, term string) bool {
	for _, s := range stack {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Instantiate returns a copy of the template's profile owned by userID.
// ID and CreatedAt are left for the store to assign.
func (t Template) Instantiate(userID string) Profile {
	p := t.Profile
	p.UserID = userID
	p.TechStack = append([]string(nil), t.TechStack...)
	p.QuestionTypes = append(p.QuestionTypes[:0:0], t.QuestionTypes...)
	return p
}
