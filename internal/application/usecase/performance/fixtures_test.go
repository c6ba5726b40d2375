package performance

import (
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

const (
	testSpecialistGroup = "SAN_ESP"
	testProjectGroup    = "SAN_PROJ"
)

func testCatalog() *entity.Catalog {
	perMonth := make([]float64, entity.MonthsPerYear)
	for i := range perMonth {
		perMonth[i] = 5
	}
	override := make([]float64, entity.MonthsPerYear)
	for i := range override {
		override[i] = 20
	}

	return &entity.Catalog{
		Groups: []*entity.Group{
			{
				Key:     testSpecialistGroup,
				Section: entity.SectionSanitario,
				Title:   "Especialistas",
				Profile: entity.GroupProfileSpecialist,
				Categories: []string{
					entity.CategoryGrowth,
					entity.CategoryTraining,
					entity.CategoryNPS,
					entity.CategoryInstallations,
					"Mamparas",
					"Muebles de Baño",
				},
				Employees: []entity.Employee{
					{ID: "a", Name: "Ana"},
					{ID: "b", Name: "Bruno"},
				},
			},
			{
				Key:        testProjectGroup,
				Section:    entity.SectionSanitario,
				Title:      "Proyecto",
				Profile:    entity.GroupProfileProject,
				Categories: []string{"Reformas", "CBxP + PxP"},
				Employees: []entity.Employee{
					{ID: "p1", Name: "Pilar"},
					{ID: "p2", Name: "Pedro"},
					{ID: "p3", Name: "Paula"},
				},
			},
		},
		Kinds: map[string]entity.CategoryKind{
			entity.CategoryGrowth:        entity.CategoryKindStrategic,
			entity.CategoryTraining:      entity.CategoryKindStrategic,
			entity.CategoryNPS:           entity.CategoryKindStrategic,
			entity.CategoryInstallations: entity.CategoryKindComposite,
		},
		Composite: map[entity.Section][]string{
			entity.SectionSanitario: {"Mamparas", "Muebles de Baño"},
		},
		Defaults: map[entity.Section]map[string]entity.MonthlyTarget{
			entity.SectionSanitario: {
				"Mamparas":        entity.FlatTarget(10),
				"Muebles de Baño": entity.PerMonthTarget(perMonth...),
				"Reformas":        entity.FlatTarget(10),
			},
			entity.SectionEERR: {
				"Placas Solares": entity.PerMonthTarget(3, 3, 4),
			},
		},
		Overrides: map[string]map[string][]float64{
			"a": {"Mamparas": override},
		},
		Growth: entity.GrowthGoals{
			Default:           7.0,
			HighGrowth:        11.0,
			HighGrowthSection: entity.SectionEERR,
		},
	}
}

func newTestEngine(catalog *entity.Catalog) *Engine {
	resolver := NewTargetResolver(catalog)
	return NewEngine(catalog, resolver, NewCalculator(resolver))
}

func record(employeeID string, month int, category string, actual float64) entity.MonthlyRecord {
	return entity.MonthlyRecord{
		EmployeeID: employeeID,
		Month:      month,
		Category:   category,
		Section:    entity.SectionSanitario,
		Actual:     actual,
	}
}

// stubRecordStore serves fixed records and statuses.
type stubRecordStore struct {
	records  []entity.MonthlyRecord
	statuses []entity.MonthStatus
}

func (s *stubRecordStore) Upsert(entity.MonthlyRecord) {}

func (s *stubRecordStore) Get(entity.RecordKey) (float64, bool) { return 0, false }

func (s *stubRecordStore) Records(section entity.Section) []entity.MonthlyRecord {
	var out []entity.MonthlyRecord
	for _, r := range s.records {
		if r.Section == section {
			out = append(out, r)
		}
	}
	return out
}

func (s *stubRecordStore) Statuses(section entity.Section) []entity.MonthStatus {
	var out []entity.MonthStatus
	for _, st := range s.statuses {
		if st.Section == section {
			out = append(out, st)
		}
	}
	return out
}

func (s *stubRecordStore) IsLocked(entity.Section, int) bool { return false }

func (s *stubRecordStore) SetLock(entity.Section, int, bool) {}

func (s *stubRecordStore) ToggleLock(entity.Section, int) bool { return false }

func (s *stubRecordStore) Snapshot() *entity.Snapshot { return &entity.Snapshot{} }

func (s *stubRecordStore) Replace(*entity.Snapshot) {}
