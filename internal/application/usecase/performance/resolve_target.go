package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

// ResolveTargetInput represents the input for a target lookup.
type ResolveTargetInput struct {
	Category   string
	Month      int
	Section    entity.Section
	EmployeeID string
}

// ResolveTargetOutput represents the output of a target lookup.
type ResolveTargetOutput struct {
	Target float64
	Kind   entity.CategoryKind
}

// ResolveTargetUseCase exposes the target resolver for diagnostics.
type ResolveTargetUseCase struct {
	catalog  *entity.Catalog
	resolver *TargetResolver
}

// NewResolveTargetUseCase creates a new ResolveTargetUseCase instance.
func NewResolveTargetUseCase(catalog *entity.Catalog, resolver *TargetResolver) *ResolveTargetUseCase {
	return &ResolveTargetUseCase{
		catalog:  catalog,
		resolver: resolver,
	}
}

// Execute validates the lookup and resolves the target.
func (uc *ResolveTargetUseCase) Execute(_ context.Context, input ResolveTargetInput) (*ResolveTargetOutput, error) {
	if err := validateSection(input.Section); err != nil {
		return nil, err
	}
	if err := requireCategory(input.Category); err != nil {
		return nil, err
	}
	if !entity.IsValidMonth(input.Month) {
		return nil, domainerror.NewPerformanceError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 0 and 11",
			domainerror.ErrInvalidMonth,
		)
	}

	return &ResolveTargetOutput{
		Target: uc.resolver.Resolve(input.Category, input.Month, input.Section, input.EmployeeID),
		Kind:   uc.catalog.KindOf(input.Category),
	}, nil
}
