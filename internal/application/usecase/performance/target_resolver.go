// Package performance contains the KPI scoring core and the dashboard use cases
// built on top of it.
package performance

import "github.com/kpi-tracker/backend/internal/domain/entity"

// TargetResolver resolves the goal for a category/month/section/employee.
type TargetResolver struct {
	catalog *entity.Catalog
}

// NewTargetResolver creates a new TargetResolver instance.
func NewTargetResolver(catalog *entity.Catalog) *TargetResolver {
	return &TargetResolver{catalog: catalog}
}

// Resolve returns the target. Lookup order is employee override, the growth
// constant, then the section default. Anything unconfigured resolves to 0.
func (r *TargetResolver) Resolve(category string, month int, section entity.Section, employeeID string) float64 {
	if employeeID != "" {
		if byCategory, ok := r.catalog.Overrides[employeeID]; ok {
			if override, ok := byCategory[category]; ok {
				if month < 0 || month >= len(override) {
					return 0
				}
				return override[month]
			}
		}
	}

	if category == entity.CategoryGrowth {
		return r.catalog.Growth.For(section)
	}

	defaults, ok := r.catalog.Defaults[section]
	if !ok {
		return 0
	}
	target, ok := defaults[category]
	if !ok {
		return 0
	}
	return target.At(month)
}
