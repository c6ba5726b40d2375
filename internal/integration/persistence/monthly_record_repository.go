// Package persistence implements repository interfaces for database operations.
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

const upsertBatchSize = 200

// monthlyRecordRepository implements the adapter.MonthlyRecordRepository interface.
type monthlyRecordRepository struct {
	db *gorm.DB
}

// NewMonthlyRecordRepository creates a new monthly record repository instance.
func NewMonthlyRecordRepository(db *gorm.DB) adapter.MonthlyRecordRepository {
	return &monthlyRecordRepository{
		db: db,
	}
}

// UpsertBatch writes records in one transaction. When the batch repeats a key
// the last occurrence wins.
func (r *monthlyRecordRepository) UpsertBatch(ctx context.Context, records []entity.MonthlyRecord) error {
	models := dedupeRecords(records)
	if len(models) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "month_idx"},
				{Name: "category"},
				{Name: "section"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"actual_value", "updated_at"}),
		}).CreateInBatches(models, upsertBatchSize)
		if result.Error != nil {
			return fmt.Errorf("upsert monthly records: %w", result.Error)
		}
		return nil
	})
}

// FindAll returns every stored record.
func (r *monthlyRecordRepository) FindAll(ctx context.Context) ([]entity.MonthlyRecord, error) {
	var rows []model.MonthlyRecordModel
	result := r.db.WithContext(ctx).
		Order("section, employee_id, month_idx, category").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]entity.MonthlyRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToEntity()
	}
	return records, nil
}

// CountByKey returns how many rows exist for key.
func (r *monthlyRecordRepository) CountByKey(ctx context.Context, key entity.RecordKey) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyRecordModel{}).
		Where("employee_id = ? AND month_idx = ? AND category = ? AND section = ?",
			key.EmployeeID, key.Month, key.Category, string(key.Section)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func dedupeRecords(records []entity.MonthlyRecord) []*model.MonthlyRecordModel {
	position := make(map[entity.RecordKey]int, len(records))
	models := make([]*model.MonthlyRecordModel, 0, len(records))
	for _, rec := range records {
		if i, ok := position[rec.Key()]; ok {
			models[i].ActualValue = rec.Actual
			continue
		}
		position[rec.Key()] = len(models)
		models = append(models, model.MonthlyRecordFromEntity(rec))
	}
	return models
}
