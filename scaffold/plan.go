package scaffold

import (
	"fmt"
	"maps"
	"regexp"

	"github.com/entforge/entforge"
	"github.com/entforge/entforge/strcase"
)

// DeriveNames computes every casing and plural variant of the canonical entity
// name. It is computed once per plan and shared across all units, so two
// generated artifacts can never disagree on a spelling.
func DeriveNames(canonical string) (entforge.Context, error) {
	singular, err := caseVariants(canonical)
	if err != nil {
		return nil, err
	}
	snake := singular["name_snake"].(string)
	pluralWord, err := strcase.Pluralize(snake)
	if err != nil {
		return nil, err
	}
	plural, err := caseVariants(pluralWord)
	if err != nil {
		return nil, err
	}

	return entforge.Context{
		"Name":              singular["Name"],
		"name":              singular["name"],
		"name_snake":        singular["name_snake"],
		"name-kebab":        singular["name-kebab"],
		"NAME":              singular["NAME"],
		"Names":             plural["Name"],
		"names":             plural["name"],
		"name_snake_plural": plural["name_snake"],
		"name-kebab-plural": plural["name-kebab"],
		"NAME_PLURAL":       plural["NAME"],
	}, nil
}

func caseVariants(s string) (map[string]any, error) {
	pascal, err := strcase.ToPascalCase(s)
	if err != nil {
		return nil, err
	}
	camel, err := strcase.ToCamelCase(s)
	if err != nil {
		return nil, err
	}
	snake, err := strcase.ToSnakeCase(s)
	if err != nil {
		return nil, err
	}
	kebab, err := strcase.ToKebabCase(s)
	if err != nil {
		return nil, err
	}
	screaming, err := strcase.ToScreamingCase(s)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"Name":       pascal,
		"name":       camel,
		"name_snake": snake,
		"name-kebab": kebab,
		"NAME":       screaming,
	}, nil
}

var rePlaceholder = regexp.MustCompile(`\{([A-Za-z0-9_-]+)\}`)

// ExpandPath substitutes {placeholder} segments in a path pattern from the
// derived-name map.
func ExpandPath(pattern string, names entforge.Context) (string, error) {
	var missing string
	out := rePlaceholder.ReplaceAllStringFunc(pattern, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := names[key]; ok {
			return fmt.Sprint(v)
		}
		if missing == "" {
			missing = key
		}
		return m
	})
	if missing != "" {
		return "", fmt.Errorf("%w %q in pattern %q", ErrUnknownPlaceholder, missing, pattern)
	}
	return out, nil
}

// BuildPlan expands an EntitySpec into a generation plan. The derived-name map
// and the field contexts are computed once and the same values are shared by
// every unit context. Two units resolving to the same output path is a
// specification error, not a silent overwrite.
func BuildPlan(spec *EntitySpec, units []UnitTemplate) (*Plan, error) {
	names, err := DeriveNames(spec.Name)
	if err != nil {
		return nil, fmt.Errorf("derive names for %q: %w", spec.Name, err)
	}

	table := spec.Table
	if table == "" {
		table = names["name_snake_plural"].(string)
	}

	fields, err := fieldContexts(spec.Fields)
	if err != nil {
		return nil, err
	}

	features := map[string]any{}
	for flag, on := range spec.Features {
		features[flag] = on
	}

	base := entforge.Context{
		"table":    table,
		"fields":   fields,
		"features": features,
	}
	maps.Copy(base, names)

	plan := &Plan{Entity: spec.Name}
	seen := map[string]string{}
	for _, ut := range units {
		path, err := ExpandPath(ut.Path, names)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[path]; dup {
			return nil, fmt.Errorf("%w: units %q and %q both resolve to %q", ErrDuplicateOutputPath, prev, ut.Name, path)
		}
		seen[path] = ut.Name

		ctx := entforge.Context{}
		maps.Copy(ctx, base)
		maps.Copy(ctx, ut.Extra)

		plan.Units = append(plan.Units, Unit{
			Name:    ut.Name,
			Path:    path,
			Source:  ut.Source,
			Context: ctx,
		})
	}
	return plan, nil
}

func fieldContexts(fields []FieldSpec) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		pascal, err := strcase.ToPascalCase(f.Name)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		camel, err := strcase.ToCamelCase(f.Name)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		snake, err := strcase.ToSnakeCase(f.Name)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out = append(out, map[string]any{
			"Name":       pascal,
			"name":       camel,
			"name_snake": snake,
			"type":       string(f.Type),
			"required":   f.Required,
			"rule":       f.Rule,
			"immutable":  f.Immutable,
		})
	}
	return out, nil
}
