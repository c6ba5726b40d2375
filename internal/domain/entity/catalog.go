package entity

// Employee is static reference data for a salesperson.
type Employee struct {
	ID   string
	Name string
}

// GroupProfile is the scoring profile shared by a group's employees.
type GroupProfile string

const (
	// GroupProfileSpecialist employees are scored on the four strategic pillars.
	GroupProfileSpecialist GroupProfile = "specialist"
	// GroupProfileProject employees are scored one pillar per unit category.
	GroupProfileProject GroupProfile = "project"
)

// CategoryKind classifies how a category is scored.
type CategoryKind string

const (
	CategoryKindUnit      CategoryKind = "unit"
	CategoryKindStrategic CategoryKind = "strategic"
	CategoryKindComposite CategoryKind = "composite"
)

// Well-known category names.
const (
	CategoryGrowth        = "Cifra de Venta (%Crec)"
	CategoryTraining      = "Horas de Formación"
	CategoryNPS           = "NPS"
	CategoryInstallations = "Instalaciones"
)

// Group is a named subset of a section's employees sharing categories and a profile.
type Group struct {
	Key        string
	Section    Section
	Title      string
	Profile    GroupProfile
	Categories []string
	Employees  []Employee
}

// IsSpecialist reports whether the group uses the strategic pillar profile.
func (g *Group) IsSpecialist() bool {
	return g.Profile == GroupProfileSpecialist
}

// HasCategory reports whether the group tracks category.
func (g *Group) HasCategory(category string) bool {
	for _, c := range g.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Catalog is the compile-time configuration: organisation, categories and targets.
// It is loaded once at startup and never mutated.
type Catalog struct {
	Groups []*Group
	// Kinds maps category name to its kind; unknown categories are unit categories.
	Kinds map[string]CategoryKind
	// Composite lists, per section, the unit sub-categories aggregated by the
	// installations composite.
	Composite map[Section][]string
	// Defaults holds section/category default targets.
	Defaults map[Section]map[string]MonthlyTarget
	// Overrides holds employee-specific 12-month targets keyed by employee id then category.
	Overrides map[string]map[string][]float64
	Growth    GrowthGoals
}

// KindOf returns the scoring kind of category.
func (c *Catalog) KindOf(category string) CategoryKind {
	if kind, ok := c.Kinds[category]; ok {
		return kind
	}
	return CategoryKindUnit
}

// GroupsForSection returns the groups of section in catalog order.
func (c *Catalog) GroupsForSection(section Section) []*Group {
	var groups []*Group
	for _, g := range c.Groups {
		if g.Section == section {
			groups = append(groups, g)
		}
	}
	return groups
}

// FindGroup returns the group with key inside section.
func (c *Catalog) FindGroup(section Section, key string) (*Group, bool) {
	for _, g := range c.Groups {
		if g.Section == section && g.Key == key {
			return g, true
		}
	}
	return nil, false
}

// CompositeCategories returns the installations sub-categories for section.
func (c *Catalog) CompositeCategories(section Section) []string {
	return c.Composite[section]
}

// SectionCategories returns every category tracked by any group of section,
// in first-seen order.
func (c *Catalog) SectionCategories(section Section) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, g := range c.GroupsForSection(section) {
		for _, cat := range g.Categories {
			if !seen[cat] {
				seen[cat] = true
				categories = append(categories, cat)
			}
		}
	}
	return categories
}
