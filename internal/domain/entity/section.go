// Package entity defines the core business entities for the domain layer.
package entity

// Section is a top-level business partition (a product family).
type Section string

const (
	SectionSanitario Section = "Sanitario"
	SectionCocinas   Section = "Cocinas"
	SectionMadera    Section = "Madera"
	SectionEERR      Section = "EERR"
	SectionJardin    Section = "Jardin"
)

// AllSections lists every section in display order.
var AllSections = []Section{
	SectionSanitario,
	SectionCocinas,
	SectionMadera,
	SectionEERR,
	SectionJardin,
}

// IsValid reports whether s belongs to the closed set of sections.
func (s Section) IsValid() bool {
	for _, known := range AllSections {
		if s == known {
			return true
		}
	}
	return false
}

// MonthsPerYear is the number of month slots tracked per section.
const MonthsPerYear = 12

// MonthNames holds the display names for month indexes 0..11.
var MonthNames = [MonthsPerYear]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// IsValidMonth reports whether month is a valid month index.
func IsValidMonth(month int) bool {
	return month >= 0 && month < MonthsPerYear
}
