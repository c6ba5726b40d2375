package performance

import (
	"math"
	"testing"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

func TestCalculator_UnitAchievement(t *testing.T) {
	calc := NewCalculator(NewTargetResolver(testCatalog()))

	tests := []struct {
		name   string
		value  float64
		target float64
		want   float64
	}{
		{"linear ratio", 8, 10, 80},
		{"zero target with sales", 5, 0, 100},
		{"zero target without sales", 0, 0, 0},
		{"uncapped above target", 15, 10, 150},
		{"negative value", -4, 10, 0},
		{"negative value with zero target", -4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.UnitAchievement(tt.value, tt.target); got != tt.want {
				t.Errorf("UnitAchievement(%v, %v) = %v, want %v", tt.value, tt.target, got, tt.want)
			}
		})
	}
}

func TestCalculator_TrainingCurve(t *testing.T) {
	calc := NewCalculator(NewTargetResolver(testCatalog()))

	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{10, 0},
		{18, 0},
		{27, 50},
		{36, 100},
		{50, 100},
	}

	for _, tt := range tests {
		got := calc.StrategicAchievement(entity.CategoryTraining, tt.value, 12, entity.SectionSanitario)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("training(%v, 12 months) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if got := calc.StrategicAchievement(entity.CategoryTraining, 10, 0, entity.SectionSanitario); got != 0 {
		t.Errorf("training without active months = %v, want 0", got)
	}
}

func TestCalculator_NPSCurve(t *testing.T) {
	calc := NewCalculator(NewTargetResolver(testCatalog()))

	tests := []struct {
		value float64
		want  float64
	}{
		{-5, 0},
		{59, 0},
		{60, 0},
		{65, 50},
		{70, 100},
		{95, 100},
	}

	for _, tt := range tests {
		// NPS is not scaled by active months.
		for _, months := range []int{1, 12} {
			got := calc.StrategicAchievement(entity.CategoryNPS, tt.value, months, entity.SectionSanitario)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("nps(%v, %d months) = %v, want %v", tt.value, months, got, tt.want)
			}
		}
	}
}

func TestCalculator_GrowthCurve(t *testing.T) {
	calc := NewCalculator(NewTargetResolver(testCatalog()))

	tests := []struct {
		name    string
		value   float64
		section entity.Section
		want    float64
	}{
		{"capped above goal", 10.6, entity.SectionSanitario, 100},
		{"half of regular goal", 3.5, entity.SectionSanitario, 50},
		{"high-growth section goal", 5.5, entity.SectionEERR, 50},
		{"negative growth", -2, entity.SectionSanitario, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.StrategicAchievement(entity.CategoryGrowth, tt.value, 1, tt.section)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("growth(%v, %s) = %v, want %v", tt.value, tt.section, got, tt.want)
			}
		})
	}
}

func TestCalculator_UnknownStrategicCategory(t *testing.T) {
	calc := NewCalculator(NewTargetResolver(testCatalog()))
	if got := calc.StrategicAchievement("Mamparas", 100, 1, entity.SectionSanitario); got != 0 {
		t.Errorf("StrategicAchievement(Mamparas) = %v, want 0", got)
	}
}
