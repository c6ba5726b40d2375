package entity

// MonthlyTarget is a section/category default goal. It holds either a flat
// value applied to every month or a per-month array.
type MonthlyTarget struct {
	Flat     *float64
	PerMonth []float64
}

// FlatTarget builds a MonthlyTarget with the same value for every month.
func FlatTarget(v float64) MonthlyTarget {
	return MonthlyTarget{Flat: &v}
}

// PerMonthTarget builds a MonthlyTarget indexed by month.
func PerMonthTarget(values ...float64) MonthlyTarget {
	return MonthlyTarget{PerMonth: values}
}

// At returns the goal for month. Out-of-range months and empty targets yield 0.
func (t MonthlyTarget) At(month int) float64 {
	if t.PerMonth != nil {
		if month < 0 || month >= len(t.PerMonth) {
			return 0
		}
		return t.PerMonth[month]
	}
	if t.Flat != nil {
		return *t.Flat
	}
	return 0
}

// GrowthGoals holds the revenue-growth goal constants. The designated
// high-growth section gets HighGrowth, every other section gets Default.
type GrowthGoals struct {
	Default           float64
	HighGrowth        float64
	HighGrowthSection Section
}

// For returns the growth goal for section.
func (g GrowthGoals) For(section Section) float64 {
	if section == g.HighGrowthSection {
		return g.HighGrowth
	}
	return g.Default
}
