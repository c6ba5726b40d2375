// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// MonthlyRecordModel represents the monthly_data table in the database.
// The composite unique index is the upsert key.
type MonthlyRecordModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	EmployeeID  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_monthly_data_key,priority:1"`
	MonthIdx    int       `gorm:"not null;uniqueIndex:idx_monthly_data_key,priority:2"`
	Category    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_monthly_data_key,priority:3"`
	Section     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_monthly_data_key,priority:4;index"`
	ActualValue float64   `gorm:"type:double precision;not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the MonthlyRecordModel.
func (MonthlyRecordModel) TableName() string {
	return "monthly_data"
}

// ToEntity converts a MonthlyRecordModel to a domain MonthlyRecord entity.
func (m *MonthlyRecordModel) ToEntity() entity.MonthlyRecord {
	return entity.MonthlyRecord{
		EmployeeID: m.EmployeeID,
		Month:      m.MonthIdx,
		Category:   m.Category,
		Section:    entity.Section(m.Section),
		Actual:     m.ActualValue,
	}
}

// MonthlyRecordFromEntity creates a MonthlyRecordModel from a domain MonthlyRecord entity.
func MonthlyRecordFromEntity(record entity.MonthlyRecord) *MonthlyRecordModel {
	return &MonthlyRecordModel{
		EmployeeID:  record.EmployeeID,
		MonthIdx:    record.Month,
		Category:    record.Category,
		Section:     string(record.Section),
		ActualValue: record.Actual,
	}
}
