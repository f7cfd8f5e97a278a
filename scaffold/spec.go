package scaffold

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/entforge/entforge"
)

var validate = validator.New()

// LoadSpec reads and validates an entity spec from a YAML file.
func LoadSpec(path string) (*EntitySpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return ParseSpec(raw)
}

// ParseSpec decodes and validates entity spec YAML.
func ParseSpec(raw []byte) (*EntitySpec, error) {
	var spec EntitySpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if err := validate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return &spec, nil
}

// Manifest lists the generation units of a template set.
type Manifest struct {
	Units []UnitTemplate `yaml:"units" validate:"required,dive"`
}

// LoadManifest reads and validates a generator manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(raw)
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Resolve fills each unit's Source from the engine's loaded templates. The
// engine must have been loaded from the template directory the manifest
// belongs to.
func (m *Manifest) Resolve(eng *entforge.Engine) ([]UnitTemplate, error) {
	units := make([]UnitTemplate, len(m.Units))
	for i, ut := range m.Units {
		tmpl, ok := eng.Template(ut.Template)
		if !ok {
			return nil, fmt.Errorf("%w: unit %q references %q (loaded: %v)", ErrTemplateNotLoaded, ut.Name, ut.Template, eng.Names())
		}
		ut.Source = tmpl.Raw()
		units[i] = ut
	}
	return units, nil
}
