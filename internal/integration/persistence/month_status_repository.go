package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/integration/persistence/model"
)

// monthStatusRepository implements the adapter.MonthStatusRepository interface.
type monthStatusRepository struct {
	db *gorm.DB
}

// NewMonthStatusRepository creates a new month status repository instance.
func NewMonthStatusRepository(db *gorm.DB) adapter.MonthStatusRepository {
	return &monthStatusRepository{
		db: db,
	}
}

// UpsertBatch writes statuses in one transaction keyed by month and section.
func (r *monthStatusRepository) UpsertBatch(ctx context.Context, statuses []entity.MonthStatus) error {
	position := make(map[entity.StatusKey]int, len(statuses))
	models := make([]*model.MonthStatusModel, 0, len(statuses))
	for _, st := range statuses {
		if i, ok := position[st.Key()]; ok {
			models[i].IsFilled = st.IsFilled
			continue
		}
		position[st.Key()] = len(models)
		models = append(models, model.MonthStatusFromEntity(st))
	}
	if len(models) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month_idx"}, {Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_filled", "updated_at"}),
		}).CreateInBatches(models, upsertBatchSize)
		if result.Error != nil {
			return fmt.Errorf("upsert month statuses: %w", result.Error)
		}
		return nil
	})
}

// FindAll returns every stored status.
func (r *monthStatusRepository) FindAll(ctx context.Context) ([]entity.MonthStatus, error) {
	var rows []model.MonthStatusModel
	result := r.db.WithContext(ctx).Order("section, month_idx").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	statuses := make([]entity.MonthStatus, len(rows))
	for i := range rows {
		statuses[i] = rows[i].ToEntity()
	}
	return statuses, nil
}
