// Package scaffold expands an entity specification into a generation plan and
// renders it into (path, content) pairs. It never touches the file system;
// writing output is the caller's job.
package scaffold

import (
	"errors"

	"github.com/entforge/entforge"
)

var (
	ErrDuplicateOutputPath = errors.New("scaffold: duplicate output path")
	ErrUnknownPlaceholder  = errors.New("scaffold: unknown path placeholder")
	ErrTemplateNotLoaded   = errors.New("scaffold: template not loaded")
)

// FieldType is the semantic type tag of an entity field.
type FieldType string

const (
	FieldString    FieldType = "string"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldDate      FieldType = "date"
	FieldReference FieldType = "reference"
)

// FieldSpec is one entity field.
type FieldSpec struct {
	Name      string    `yaml:"name" validate:"required"`
	Type      FieldType `yaml:"type" validate:"required,oneof=string number boolean date reference"`
	Required  bool      `yaml:"required"`
	Rule      string    `yaml:"rule"`
	Immutable bool      `yaml:"immutable"`
}

// EntitySpec describes what is being generated: a canonical entity name plus
// its fields and feature flags. It is immutable for the duration of a
// generation request.
type EntitySpec struct {
	Name     string          `yaml:"name" validate:"required"`
	Table    string          `yaml:"table"`
	Fields   []FieldSpec     `yaml:"fields" validate:"dive"`
	Features map[string]bool `yaml:"features"`
}

// UnitTemplate names one artifact to generate: an output path pattern with
// {placeholder} segments resolved from the derived-name map, a reference to a
// loaded template, and optional per-unit context overrides.
type UnitTemplate struct {
	Name     string         `yaml:"name" validate:"required"`
	Path     string         `yaml:"path" validate:"required"`
	Template string         `yaml:"template" validate:"required"`
	Extra    map[string]any `yaml:"context"`

	// Source is the raw template text, filled by Manifest.Resolve or by the
	// caller directly.
	Source string `yaml:"-"`
}

// Unit is one fully resolved generation unit.
type Unit struct {
	Name    string
	Path    string
	Source  string
	Context entforge.Context
}

// Plan is an ordered list of generation units for one entity. Unit order only
// fixes output ordering; units do not depend on each other.
type Plan struct {
	Entity string
	Units  []Unit
}
