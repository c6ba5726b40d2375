package performance

import (
	"math"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// Strategic curve constants.
const (
	trainingGoalPerMonth  = 3.0
	trainingFloorPerMonth = 1.5
	npsFloor              = 60.0
	npsGoal               = 70.0
)

// Calculator converts actual values into achievement percentages.
type Calculator struct {
	resolver *TargetResolver
}

// NewCalculator creates a new Calculator instance.
func NewCalculator(resolver *TargetResolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// UnitAchievement returns value/target*100, uncapped. Negative values score 0
// and a zero target scores 100 when anything was sold.
func (c *Calculator) UnitAchievement(value, target float64) float64 {
	if value < 0 {
		return 0
	}
	if target > 0 {
		return value / target * 100
	}
	if value > 0 {
		return 100
	}
	return 0
}

// StrategicAchievement scores a strategic category on its curve, clamped to [0,100].
// activeMonths scales the training goal; categories without a curve score 0.
func (c *Calculator) StrategicAchievement(category string, value float64, activeMonths int, section entity.Section) float64 {
	switch category {
	case entity.CategoryGrowth:
		goal := c.resolver.Resolve(entity.CategoryGrowth, 0, section, "")
		if value < 0 || goal <= 0 {
			return 0
		}
		return math.Min(100, value/goal*100)
	case entity.CategoryTraining:
		if activeMonths <= 0 {
			return 0
		}
		n := float64(activeMonths)
		return banded(value, trainingFloorPerMonth*n, trainingGoalPerMonth*n)
	case entity.CategoryNPS:
		return banded(value, npsFloor, npsGoal)
	default:
		return 0
	}
}

// banded is linear between floor (0%) and goal (100%).
func banded(value, floor, goal float64) float64 {
	if value < floor {
		return 0
	}
	if value >= goal {
		return 100
	}
	return (value - floor) / (goal - floor) * 100
}
