package persistence

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.MonthlyRecordModel{}, &model.MonthStatusModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMonthlyRecordRepository_UpsertReplacesActual(t *testing.T) {
	ctx := context.Background()
	repo := NewMonthlyRecordRepository(newTestDB(t))

	rec := entity.MonthlyRecord{EmployeeID: "s1", Month: 2, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 4}
	if err := repo.UpsertBatch(ctx, []entity.MonthlyRecord{rec}); err != nil {
		t.Fatalf("first UpsertBatch() error = %v", err)
	}

	rec.Actual = 9.5
	if err := repo.UpsertBatch(ctx, []entity.MonthlyRecord{rec}); err != nil {
		t.Fatalf("second UpsertBatch() error = %v", err)
	}

	count, err := repo.CountByKey(ctx, rec.Key())
	if err != nil {
		t.Fatalf("CountByKey() error = %v", err)
	}
	if count != 1 {
		t.Errorf("rows for key = %d, want 1", count)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 1 || all[0].Actual != 9.5 {
		t.Errorf("FindAll() = %+v, want one record with 9.5", all)
	}
}

func TestMonthlyRecordRepository_KeepsFullPrecision(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMonthlyRecordRepository(db)

	rec := entity.MonthlyRecord{EmployeeID: "ce1", Month: 3, Category: "Armarios", Section: entity.SectionCocinas, Actual: 65.555}
	if err := repo.UpsertBatch(ctx, []entity.MonthlyRecord{rec}); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 1 || all[0].Actual != 65.555 {
		t.Errorf("FindAll() = %+v, want 65.555 unchanged", all)
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&model.MonthlyRecordModel{}); err != nil {
		t.Fatalf("parse model: %v", err)
	}
	field := stmt.Schema.LookUpField("ActualValue")
	if field == nil || field.TagSettings["TYPE"] != "double precision" {
		t.Errorf("actual_value column type = %v, want double precision", field)
	}
}

func TestMonthlyRecordRepository_BatchWithRepeatedKey(t *testing.T) {
	ctx := context.Background()
	repo := NewMonthlyRecordRepository(newTestDB(t))

	batch := []entity.MonthlyRecord{
		{EmployeeID: "ce1", Month: 0, Category: "Armarios", Section: entity.SectionCocinas, Actual: 1},
		{EmployeeID: "ce2", Month: 0, Category: "Armarios", Section: entity.SectionCocinas, Actual: 2},
		{EmployeeID: "ce1", Month: 0, Category: "Armarios", Section: entity.SectionCocinas, Actual: 3},
		{EmployeeID: "ce1", Month: 0, Category: "Armarios", Section: entity.SectionSanitario, Actual: 4},
	}
	if err := repo.UpsertBatch(ctx, batch); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(FindAll()) = %d, want 3", len(all))
	}
	// Ordered by section then employee.
	if all[0].EmployeeID != "ce1" || all[0].Section != entity.SectionCocinas || all[0].Actual != 3 {
		t.Errorf("all[0] = %+v, want ce1 Cocinas 3", all[0])
	}
}

func TestMonthlyRecordRepository_EmptyBatch(t *testing.T) {
	repo := NewMonthlyRecordRepository(newTestDB(t))
	if err := repo.UpsertBatch(context.Background(), nil); err != nil {
		t.Errorf("UpsertBatch(nil) error = %v", err)
	}
}

func TestMonthStatusRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMonthStatusRepository(newTestDB(t))

	if err := repo.UpsertBatch(ctx, []entity.MonthStatus{
		{Month: 0, Section: entity.SectionMadera, IsFilled: true},
		{Month: 1, Section: entity.SectionMadera, IsFilled: true},
	}); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}
	if err := repo.UpsertBatch(ctx, []entity.MonthStatus{
		{Month: 0, Section: entity.SectionMadera, IsFilled: false},
	}); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(FindAll()) = %d, want 2", len(all))
	}
	if all[0].Month != 0 || all[0].IsFilled {
		t.Errorf("January = %+v, want unlocked", all[0])
	}
	if !all[1].IsFilled {
		t.Errorf("February = %+v, want locked", all[1])
	}
}
