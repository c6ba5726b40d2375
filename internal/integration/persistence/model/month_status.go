package model

import (
	"time"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// MonthStatusModel represents the month_status table in the database.
type MonthStatusModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	MonthIdx  int       `gorm:"not null;uniqueIndex:idx_month_status_key,priority:1"`
	Section   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_month_status_key,priority:2"`
	IsFilled  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the MonthStatusModel.
func (MonthStatusModel) TableName() string {
	return "month_status"
}

// ToEntity converts a MonthStatusModel to a domain MonthStatus entity.
func (m *MonthStatusModel) ToEntity() entity.MonthStatus {
	return entity.MonthStatus{
		Month:    m.MonthIdx,
		Section:  entity.Section(m.Section),
		IsFilled: m.IsFilled,
	}
}

// MonthStatusFromEntity creates a MonthStatusModel from a domain MonthStatus entity.
func MonthStatusFromEntity(status entity.MonthStatus) *MonthStatusModel {
	return &MonthStatusModel{
		MonthIdx: status.Month,
		Section:  string(status.Section),
		IsFilled: status.IsFilled,
	}
}
