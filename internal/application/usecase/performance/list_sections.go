package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// SectionView describes a section and its groups.
type SectionView struct {
	Section    entity.Section
	Groups     []*entity.Group
	Categories []string
	Composite  []string
}

// ListSectionsOutput represents the output of listing the catalog.
type ListSectionsOutput struct {
	Sections   []SectionView
	MonthNames []string
}

// ListSectionsUseCase exposes the organisation catalog.
type ListSectionsUseCase struct {
	catalog *entity.Catalog
}

// NewListSectionsUseCase creates a new ListSectionsUseCase instance.
func NewListSectionsUseCase(catalog *entity.Catalog) *ListSectionsUseCase {
	return &ListSectionsUseCase{catalog: catalog}
}

// Execute lists every section in display order.
func (uc *ListSectionsUseCase) Execute(_ context.Context) (*ListSectionsOutput, error) {
	output := &ListSectionsOutput{MonthNames: entity.MonthNames[:]}
	for _, section := range entity.AllSections {
		output.Sections = append(output.Sections, SectionView{
			Section:    section,
			Groups:     uc.catalog.GroupsForSection(section),
			Categories: uc.catalog.SectionCategories(section),
			Composite:  uc.catalog.CompositeCategories(section),
		})
	}
	return output, nil
}
