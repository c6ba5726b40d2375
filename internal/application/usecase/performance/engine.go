package performance

import (
	"math"
	"sort"

	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// Leaderboard pillar keys for the specialist profile.
const (
	PillarSales         = "sales"
	PillarTraining      = "training"
	PillarNPS           = "nps"
	PillarInstallations = "installations"
)

// EvolutionPoint holds one month of the evolution chart. A nil value marks a
// month without data, which is different from 0% achievement.
type EvolutionPoint struct {
	Month  int
	Values map[string]*int
}

// EvolutionSeries is the 12-month chart for a group.
type EvolutionSeries struct {
	Categories []string
	Points     []EvolutionPoint
}

// Pillar is one scored dimension of a leaderboard entry.
type Pillar struct {
	Key         string
	Category    string
	Actual      float64
	Target      float64
	Achievement float64
}

// LeaderboardEntry is one employee's breakdown.
type LeaderboardEntry struct {
	Employee entity.Employee
	Pillars  []Pillar
	// Overall is the unweighted mean of the pillar achievements.
	Overall float64
}

// GridCell is one month of the category grid.
type GridCell struct {
	Month       int
	Actual      float64
	Target      float64
	Achievement float64
	Locked      bool
}

// GridRow is one employee of the category grid.
type GridRow struct {
	Employee          entity.Employee
	Cells             []GridCell
	AnnualActual      float64
	AnnualTarget      float64
	AnnualAchievement float64
}

// CategorySummary is the annual target/actual of a category across a section.
type CategorySummary struct {
	Category    string
	Employees   int
	Target      float64
	Actual      float64
	Missing     float64
	Achievement float64
}

// Engine aggregates records into series, leaderboards and section scores.
// Every method is pure: the result depends only on the arguments and the catalog.
type Engine struct {
	catalog    *entity.Catalog
	resolver   *TargetResolver
	calculator *Calculator
}

// NewEngine creates a new Engine instance.
func NewEngine(catalog *entity.Catalog, resolver *TargetResolver, calculator *Calculator) *Engine {
	return &Engine{
		catalog:    catalog,
		resolver:   resolver,
		calculator: calculator,
	}
}

// MonthActivity flags, per month, whether any employee of group has a
// non-zero record in the group's section.
func (e *Engine) MonthActivity(records []entity.MonthlyRecord, group *entity.Group) [entity.MonthsPerYear]bool {
	var activity [entity.MonthsPerYear]bool
	members := make(map[string]bool, len(group.Employees))
	for _, emp := range group.Employees {
		members[emp.ID] = true
	}
	for _, r := range records {
		if r.Section != group.Section || r.Actual == 0 || !members[r.EmployeeID] {
			continue
		}
		if entity.IsValidMonth(r.Month) {
			activity[r.Month] = true
		}
	}
	return activity
}

// ActiveMonths returns the active month indexes of group in ascending order.
func (e *Engine) ActiveMonths(records []entity.MonthlyRecord, group *entity.Group) []int {
	activity := e.MonthActivity(records, group)
	var months []int
	for m, active := range activity {
		if active {
			months = append(months, m)
		}
	}
	return months
}

// Evolution builds the monthly chart of group. The composite category is never charted.
func (e *Engine) Evolution(records []entity.MonthlyRecord, group *entity.Group) EvolutionSeries {
	idx := newRecordIndex(records)
	activity := e.MonthActivity(records, group)

	var categories []string
	for _, category := range group.Categories {
		if e.catalog.KindOf(category) != entity.CategoryKindComposite {
			categories = append(categories, category)
		}
	}

	series := EvolutionSeries{
		Categories: categories,
		Points:     make([]EvolutionPoint, entity.MonthsPerYear),
	}
	for m := 0; m < entity.MonthsPerYear; m++ {
		point := EvolutionPoint{Month: m, Values: make(map[string]*int, len(categories))}
		for _, category := range categories {
			if !activity[m] {
				point.Values[category] = nil
				continue
			}
			pct := valueobject.RoundPercent(e.monthAchievement(idx, group, category, m))
			point.Values[category] = &pct
		}
		series.Points[m] = point
	}
	return series
}

// monthAchievement aggregates every employee of group for one month.
func (e *Engine) monthAchievement(idx recordIndex, group *entity.Group, category string, month int) float64 {
	var actuals, targets []float64
	for _, emp := range group.Employees {
		actuals = append(actuals, idx.value(emp.ID, month, category, group.Section))
		targets = append(targets, e.resolver.Resolve(category, month, group.Section, emp.ID))
	}
	sumActual := valueobject.Sum(actuals...)

	if e.catalog.KindOf(category) == entity.CategoryKindStrategic {
		return e.calculator.StrategicAchievement(category, sumActual, 1, group.Section)
	}

	sumTarget := valueobject.Sum(targets...)
	if sumTarget == 0 || sumActual < 0 {
		return 0
	}
	return sumActual / sumTarget * 100
}

// Leaderboard scores every employee of group over the active months, best first.
// It is empty when the group has no active month.
func (e *Engine) Leaderboard(records []entity.MonthlyRecord, group *entity.Group) []LeaderboardEntry {
	active := e.ActiveMonths(records, group)
	if len(active) == 0 {
		return nil
	}
	idx := newRecordIndex(records)

	entries := make([]LeaderboardEntry, 0, len(group.Employees))
	for _, emp := range group.Employees {
		var pillars []Pillar
		if group.IsSpecialist() {
			pillars = e.specialistPillars(idx, group.Section, emp.ID, active)
		} else {
			pillars = e.projectPillars(idx, group, emp.ID, active)
		}

		achievements := make([]float64, len(pillars))
		for i, p := range pillars {
			achievements[i] = p.Achievement
		}
		entries = append(entries, LeaderboardEntry{
			Employee: emp,
			Pillars:  pillars,
			Overall:  valueobject.Mean(achievements),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Overall > entries[j].Overall
	})
	return entries
}

func (e *Engine) specialistPillars(idx recordIndex, section entity.Section, employeeID string, active []int) []Pillar {
	sales := e.strategicPillar(idx, entity.CategoryGrowth, section, employeeID, active)
	sales.Key = PillarSales
	training := e.strategicPillar(idx, entity.CategoryTraining, section, employeeID, active)
	training.Key = PillarTraining
	nps := e.strategicPillar(idx, entity.CategoryNPS, section, employeeID, active)
	nps.Key = PillarNPS

	actual, target := e.compositeTotals(idx, section, employeeID, active)
	installations := Pillar{
		Key:         PillarInstallations,
		Category:    entity.CategoryInstallations,
		Actual:      actual,
		Target:      target,
		Achievement: e.calculator.UnitAchievement(actual, target),
	}

	return []Pillar{sales, training, nps, installations}
}

// strategicPillar applies the pillar rule of a strategic category: growth and
// NPS average the active months, training sums them.
func (e *Engine) strategicPillar(idx recordIndex, category string, section entity.Section, employeeID string, active []int) Pillar {
	n := len(active)
	total := idx.sumOver(employeeID, category, section, active)

	pillar := Pillar{Key: category, Category: category}
	switch category {
	case entity.CategoryTraining:
		pillar.Actual = total
		pillar.Target = trainingGoalPerMonth * float64(n)
	case entity.CategoryNPS:
		pillar.Actual = average(total, n)
		pillar.Target = npsGoal
	default:
		pillar.Actual = average(total, n)
		pillar.Target = e.resolver.Resolve(category, 0, section, "")
	}
	pillar.Achievement = e.calculator.StrategicAchievement(category, pillar.Actual, n, section)
	return pillar
}

func (e *Engine) projectPillars(idx recordIndex, group *entity.Group, employeeID string, active []int) []Pillar {
	var pillars []Pillar
	for _, category := range group.Categories {
		if e.catalog.KindOf(category) != entity.CategoryKindUnit {
			continue
		}
		actual, target := e.unitTotals(idx, category, group.Section, employeeID, active)
		pillars = append(pillars, Pillar{
			Key:         category,
			Category:    category,
			Actual:      actual,
			Target:      target,
			Achievement: e.calculator.UnitAchievement(actual, target),
		})
	}
	return pillars
}

func (e *Engine) unitTotals(idx recordIndex, category string, section entity.Section, employeeID string, months []int) (actual, target float64) {
	targets := make([]float64, 0, len(months))
	for _, m := range months {
		targets = append(targets, e.resolver.Resolve(category, m, section, employeeID))
	}
	return idx.sumOver(employeeID, category, section, months), valueobject.Sum(targets...)
}

// compositeTotals sums actual and target over the section's installation
// sub-categories for the given months.
func (e *Engine) compositeTotals(idx recordIndex, section entity.Section, employeeID string, months []int) (actual, target float64) {
	var actuals, targets []float64
	for _, category := range e.catalog.CompositeCategories(section) {
		a, t := e.unitTotals(idx, category, section, employeeID, months)
		actuals = append(actuals, a)
		targets = append(targets, t)
	}
	return valueobject.Sum(actuals...), valueobject.Sum(targets...)
}

// GlobalScore is the mean overall percentage of entries.
func GlobalScore(entries []LeaderboardEntry) float64 {
	overall := make([]float64, len(entries))
	for i, entry := range entries {
		overall[i] = entry.Overall
	}
	return valueobject.Mean(overall)
}

// CategoryGrid returns the per-employee monthly cells of category for group.
func (e *Engine) CategoryGrid(records []entity.MonthlyRecord, statuses []entity.MonthStatus, group *entity.Group, category string) []GridRow {
	idx := newRecordIndex(records)
	locked := make(map[int]bool, len(statuses))
	for _, s := range statuses {
		if s.Section == group.Section {
			locked[s.Month] = s.IsFilled
		}
	}
	active := e.ActiveMonths(records, group)
	kind := e.catalog.KindOf(category)

	rows := make([]GridRow, 0, len(group.Employees))
	for _, emp := range group.Employees {
		row := GridRow{Employee: emp, Cells: make([]GridCell, entity.MonthsPerYear)}
		for m := 0; m < entity.MonthsPerYear; m++ {
			cell := GridCell{Month: m, Locked: locked[m]}
			month := []int{m}
			switch kind {
			case entity.CategoryKindComposite:
				cell.Actual, cell.Target = e.compositeTotals(idx, group.Section, emp.ID, month)
				cell.Achievement = e.calculator.UnitAchievement(cell.Actual, cell.Target)
			case entity.CategoryKindStrategic:
				cell.Actual = idx.value(emp.ID, m, category, group.Section)
				cell.Target = e.resolver.Resolve(category, m, group.Section, emp.ID)
				cell.Achievement = e.calculator.StrategicAchievement(category, cell.Actual, 1, group.Section)
			default:
				cell.Actual, cell.Target = e.unitTotals(idx, category, group.Section, emp.ID, month)
				cell.Achievement = e.calculator.UnitAchievement(cell.Actual, cell.Target)
			}
			row.Cells[m] = cell
		}

		if kind == entity.CategoryKindStrategic {
			if len(active) > 0 {
				pillar := e.strategicPillar(idx, category, group.Section, emp.ID, active)
				row.AnnualActual = pillar.Actual
				row.AnnualTarget = pillar.Target
				row.AnnualAchievement = pillar.Achievement
			}
		} else {
			actuals := make([]float64, len(row.Cells))
			targets := make([]float64, len(row.Cells))
			for i, c := range row.Cells {
				actuals[i] = c.Actual
				targets[i] = c.Target
			}
			row.AnnualActual = valueobject.Sum(actuals...)
			row.AnnualTarget = valueobject.Sum(targets...)
			row.AnnualAchievement = e.calculator.UnitAchievement(row.AnnualActual, row.AnnualTarget)
		}
		rows = append(rows, row)
	}
	return rows
}

// CategorySummary totals category over the whole year for every employee of
// section whose group tracks it.
func (e *Engine) CategorySummary(records []entity.MonthlyRecord, section entity.Section, category string) CategorySummary {
	idx := newRecordIndex(records)
	months := allMonths()
	composite := e.catalog.KindOf(category) == entity.CategoryKindComposite

	summary := CategorySummary{Category: category}
	var actuals, targets []float64
	for _, group := range e.catalog.GroupsForSection(section) {
		if !group.HasCategory(category) {
			continue
		}
		for _, emp := range group.Employees {
			var a, t float64
			if composite {
				a, t = e.compositeTotals(idx, section, emp.ID, months)
			} else {
				a, t = e.unitTotals(idx, category, section, emp.ID, months)
			}
			actuals = append(actuals, a)
			targets = append(targets, t)
			summary.Employees++
		}
	}

	summary.Actual = valueobject.Sum(actuals...)
	summary.Target = valueobject.Sum(targets...)
	summary.Missing = math.Max(0, summary.Target-summary.Actual)
	summary.Achievement = e.calculator.UnitAchievement(summary.Actual, summary.Target)
	return summary
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func allMonths() []int {
	months := make([]int, entity.MonthsPerYear)
	for i := range months {
		months[i] = i
	}
	return months
}
