package config

import (
	"strings"
	"testing"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

func TestLoadCatalog_Default(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	for _, section := range entity.AllSections {
		if len(catalog.GroupsForSection(section)) == 0 {
			t.Errorf("section %s has no groups", section)
		}
	}

	if got := catalog.Growth.For(entity.SectionEERR); got != 11.0 {
		t.Errorf("growth goal for EERR = %v, want 11", got)
	}
	if got := catalog.Growth.For(entity.SectionSanitario); got != 7.0 {
		t.Errorf("growth goal for Sanitario = %v, want 7", got)
	}

	if kind := catalog.KindOf(entity.CategoryNPS); kind != entity.CategoryKindStrategic {
		t.Errorf("KindOf(NPS) = %s, want strategic", kind)
	}
	if kind := catalog.KindOf(entity.CategoryInstallations); kind != entity.CategoryKindComposite {
		t.Errorf("KindOf(Instalaciones) = %s, want composite", kind)
	}
	if kind := catalog.KindOf("Mamparas"); kind != entity.CategoryKindUnit {
		t.Errorf("KindOf(Mamparas) = %s, want unit", kind)
	}

	group, ok := catalog.FindGroup(entity.SectionSanitario, "SAN_VEND_ESP")
	if !ok {
		t.Fatal("SAN_VEND_ESP not found")
	}
	if !group.IsSpecialist() {
		t.Error("SAN_VEND_ESP should use the specialist profile")
	}
	if len(group.Employees) != 6 {
		t.Errorf("SAN_VEND_ESP employees = %d, want 6", len(group.Employees))
	}

	solar := catalog.Defaults[entity.SectionEERR]["Placas Solares"]
	if got := solar.At(5); got != 7 {
		t.Errorf("Placas Solares June target = %v, want 7", got)
	}
	if got := catalog.Defaults[entity.SectionSanitario]["Mamparas"].At(11); got != 10 {
		t.Errorf("Mamparas December target = %v, want 10", got)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown section",
			yaml: `
version: 1
growth: {default: 7, high_growth: 11}
sections:
  - name: Ferreteria
    groups:
      - {key: G, title: T, profile: project, categories: [A]}
`,
			wantErr: "unknown section",
		},
		{
			name: "bad profile",
			yaml: `
version: 1
growth: {default: 7, high_growth: 11}
sections:
  - name: Madera
    groups:
      - {key: G, title: T, profile: manager, categories: [A]}
`,
			wantErr: "Profile",
		},
		{
			name: "too many months in target",
			yaml: `
version: 1
growth: {default: 7, high_growth: 11}
sections:
  - name: Madera
    targets:
      A: [1,2,3,4,5,6,7,8,9,10,11,12,13]
    groups:
      - {key: G, title: T, profile: project, categories: [A]}
`,
			wantErr: "max 12",
		},
		{
			name: "employee claimed twice in a section",
			yaml: `
version: 1
growth: {default: 7, high_growth: 11}
sections:
  - name: Madera
    groups:
      - {key: G1, title: T, profile: project, categories: [A], employees: [{id: m1, name: X}]}
      - {key: G2, title: T, profile: project, categories: [A], employees: [{id: m1, name: X}]}
`,
			wantErr: "claimed by",
		},
		{
			name:    "missing growth goals",
			yaml:    "version: 1\nsections: []\n",
			wantErr: "validate catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseCatalog() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseCatalog() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseCatalog_Overrides(t *testing.T) {
	doc := `
version: 1
growth: {default: 7, high_growth: 11, high_growth_section: EERR}
categories:
  strategic: [NPS]
sections:
  - name: Madera
    targets:
      Puertas: 10
    groups:
      - {key: MAD, title: T, profile: project, categories: [Puertas], employees: [{id: m1, name: X}]}
overrides:
  m1:
    Puertas: [1, 2, 3]
`
	catalog, err := ParseCatalog([]byte(doc))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	if got := catalog.Overrides["m1"]["Puertas"]; len(got) != 3 || got[2] != 3 {
		t.Errorf("override = %v, want [1 2 3]", got)
	}
}
