// Package valueobject contains domain value objects for the KPI tracker.
package valueobject

import (
	"fmt"
	"strings"
)

// Band is the status label attached to an achievement percentage.
type Band string

const (
	BandOnTarget Band = "on_target"
	BandNear     Band = "near"
	BandFar      Band = "far"
)

// Label returns the display label for the band.
func (b Band) Label() string {
	switch b {
	case BandOnTarget:
		return "Destacado"
	case BandNear:
		return "En progresión"
	default:
		return "Crítico"
	}
}

// StatusBands holds the breakpoints used to classify achievement percentages.
// pct >= OnTarget is on target, Near <= pct < OnTarget is near, below Near is far.
type StatusBands struct {
	Name     string
	OnTarget float64
	Near     float64
}

// ClassicStatusBands returns the 100/80 scale used for unit-ratio displays.
func ClassicStatusBands() StatusBands {
	return StatusBands{
		Name:     "classic",
		OnTarget: 100,
		Near:     80,
	}
}

// StrategicStatusBands returns the 70/50 scale used by the strategic pillar view.
func StrategicStatusBands() StatusBands {
	return StatusBands{
		Name:     "strategic",
		OnTarget: 70,
		Near:     50,
	}
}

// StatusBandsFromConfig resolves a preset name, letting explicit breakpoints
// win when both are positive.
func StatusBandsFromConfig(preset string, onTarget, near float64) (StatusBands, error) {
	var bands StatusBands
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", "classic":
		bands = ClassicStatusBands()
	case "strategic":
		bands = StrategicStatusBands()
	default:
		return StatusBands{}, fmt.Errorf("unknown status band preset %q", preset)
	}

	if onTarget > 0 && near > 0 {
		if near > onTarget {
			return StatusBands{}, fmt.Errorf("near threshold %.2f exceeds on-target threshold %.2f", near, onTarget)
		}
		bands = StatusBands{Name: "custom", OnTarget: onTarget, Near: near}
	}

	return bands, nil
}

// Classify returns the band for pct.
func (s StatusBands) Classify(pct float64) Band {
	if pct >= s.OnTarget {
		return BandOnTarget
	}
	if pct >= s.Near {
		return BandNear
	}
	return BandFar
}
