package performance

import (
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

func validateSection(section entity.Section) error {
	if !section.IsValid() {
		return domainerror.NewPerformanceError(
			domainerror.ErrCodeUnknownSection,
			"unknown section "+string(section),
			domainerror.ErrUnknownSection,
		)
	}
	return nil
}

func findGroup(catalog *entity.Catalog, section entity.Section, key string) (*entity.Group, error) {
	if err := validateSection(section); err != nil {
		return nil, err
	}
	group, ok := catalog.FindGroup(section, key)
	if !ok {
		return nil, domainerror.NewPerformanceError(
			domainerror.ErrCodeGroupNotFound,
			"group "+key+" not found in section "+string(section),
			domainerror.ErrGroupNotFound,
		)
	}
	return group, nil
}

func requireCategory(category string) error {
	if category == "" {
		return domainerror.NewPerformanceError(
			domainerror.ErrCodeMissingCategory,
			"category is required",
			domainerror.ErrMissingCategory,
		)
	}
	return nil
}
