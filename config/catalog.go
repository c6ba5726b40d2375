package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CatalogDocument models the catalog YAML file.
type CatalogDocument struct {
	Version    int                             `yaml:"version" validate:"eq=1"`
	Growth     GrowthDocument                  `yaml:"growth" validate:"required"`
	Categories CategoryKindsDocument           `yaml:"categories"`
	Sections   []SectionDocument               `yaml:"sections" validate:"required,min=1,dive"`
	Overrides  map[string]map[string][]float64 `yaml:"overrides" validate:"dive,dive,max=12"`
}

// GrowthDocument holds the revenue-growth goals.
type GrowthDocument struct {
	Default           float64 `yaml:"default" validate:"gt=0"`
	HighGrowth        float64 `yaml:"high_growth" validate:"gt=0"`
	HighGrowthSection string  `yaml:"high_growth_section"`
}

// CategoryKindsDocument names the non-unit categories.
type CategoryKindsDocument struct {
	Strategic []string `yaml:"strategic"`
	Composite string   `yaml:"composite"`
}

// SectionDocument describes one section.
type SectionDocument struct {
	Name          string                 `yaml:"name" validate:"required"`
	Installations []string               `yaml:"installations"`
	Targets       map[string]TargetValue `yaml:"targets"`
	Groups        []GroupDocument        `yaml:"groups" validate:"required,min=1,dive"`
}

// GroupDocument describes one group of a section.
type GroupDocument struct {
	Key        string             `yaml:"key" validate:"required"`
	Title      string             `yaml:"title" validate:"required"`
	Profile    string             `yaml:"profile" validate:"required,oneof=specialist project"`
	Categories []string           `yaml:"categories" validate:"required,min=1"`
	Employees  []EmployeeDocument `yaml:"employees" validate:"dive"`
}

// EmployeeDocument describes one employee.
type EmployeeDocument struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

// TargetValue is a target written either as a number or as a list of numbers.
type TargetValue struct {
	entity.MonthlyTarget
}

// UnmarshalYAML accepts a scalar or a sequence of at most twelve numbers.
func (t *TargetValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("target at line %d: %w", node.Line, err)
		}
		t.MonthlyTarget = entity.FlatTarget(v)
		return nil
	case yaml.SequenceNode:
		var values []float64
		if err := node.Decode(&values); err != nil {
			return fmt.Errorf("target at line %d: %w", node.Line, err)
		}
		if len(values) > entity.MonthsPerYear {
			return fmt.Errorf("target at line %d has %d months, max %d", node.Line, len(values), entity.MonthsPerYear)
		}
		t.MonthlyTarget = entity.PerMonthTarget(values...)
		return nil
	default:
		return fmt.Errorf("target at line %d must be a number or a list", node.Line)
	}
}

// LoadCatalog reads the catalog at path, or the embedded default when path is empty.
func LoadCatalog(path string) (*entity.Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes, validates and converts a catalog document.
func ParseCatalog(data []byte) (*entity.Catalog, error) {
	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if err := doc.check(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	return doc.toEntity(), nil
}

// check enforces the rules struct tags cannot express.
func (d *CatalogDocument) check() error {
	var errs []error

	if d.Growth.HighGrowthSection != "" && !entity.Section(d.Growth.HighGrowthSection).IsValid() {
		errs = append(errs, fmt.Errorf("growth: unknown section %q", d.Growth.HighGrowthSection))
	}

	seenSections := make(map[string]bool)
	seenEmployees := make(map[string]string)
	for _, s := range d.Sections {
		if !entity.Section(s.Name).IsValid() {
			errs = append(errs, fmt.Errorf("unknown section %q", s.Name))
		}
		if seenSections[s.Name] {
			errs = append(errs, fmt.Errorf("section %q declared twice", s.Name))
		}
		seenSections[s.Name] = true

		seenGroups := make(map[string]bool)
		for _, g := range s.Groups {
			if seenGroups[g.Key] {
				errs = append(errs, fmt.Errorf("section %s: group %q declared twice", s.Name, g.Key))
			}
			seenGroups[g.Key] = true

			for _, e := range g.Employees {
				key := s.Name + "/" + e.ID
				if other, ok := seenEmployees[key]; ok {
					errs = append(errs, fmt.Errorf("section %s: employee %q claimed by %s and %s", s.Name, e.ID, other, g.Key))
					continue
				}
				seenEmployees[key] = g.Key
			}
		}
	}

	return errors.Join(errs...)
}

func (d *CatalogDocument) toEntity() *entity.Catalog {
	catalog := &entity.Catalog{
		Kinds:     make(map[string]entity.CategoryKind),
		Composite: make(map[entity.Section][]string),
		Defaults:  make(map[entity.Section]map[string]entity.MonthlyTarget),
		Overrides: make(map[string]map[string][]float64),
		Growth: entity.GrowthGoals{
			Default:           d.Growth.Default,
			HighGrowth:        d.Growth.HighGrowth,
			HighGrowthSection: entity.Section(d.Growth.HighGrowthSection),
		},
	}

	for _, name := range d.Categories.Strategic {
		catalog.Kinds[strings.TrimSpace(name)] = entity.CategoryKindStrategic
	}
	if d.Categories.Composite != "" {
		catalog.Kinds[strings.TrimSpace(d.Categories.Composite)] = entity.CategoryKindComposite
	}

	for _, s := range d.Sections {
		section := entity.Section(s.Name)
		catalog.Composite[section] = s.Installations

		defaults := make(map[string]entity.MonthlyTarget, len(s.Targets))
		for category, target := range s.Targets {
			defaults[category] = target.MonthlyTarget
		}
		catalog.Defaults[section] = defaults

		for _, g := range s.Groups {
			group := &entity.Group{
				Key:        g.Key,
				Section:    section,
				Title:      g.Title,
				Profile:    entity.GroupProfile(g.Profile),
				Categories: g.Categories,
				Employees:  make([]entity.Employee, len(g.Employees)),
			}
			for i, e := range g.Employees {
				group.Employees[i] = entity.Employee{ID: e.ID, Name: e.Name}
			}
			catalog.Groups = append(catalog.Groups, group)
		}
	}

	for employeeID, byCategory := range d.Overrides {
		catalog.Overrides[employeeID] = byCategory
	}

	return catalog
}
