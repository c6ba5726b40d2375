package action

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/memory"
)

type fakeRecordRepo struct {
	rows map[entity.RecordKey]float64
	err  error
}

func (r *fakeRecordRepo) UpsertBatch(_ context.Context, records []entity.MonthlyRecord) error {
	if r.err != nil {
		return r.err
	}
	if r.rows == nil {
		r.rows = make(map[entity.RecordKey]float64)
	}
	for _, rec := range records {
		r.rows[rec.Key()] = rec.Actual
	}
	return nil
}

func (r *fakeRecordRepo) FindAll(context.Context) ([]entity.MonthlyRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.MonthlyRecord
	for k, v := range r.rows {
		out = append(out, entity.MonthlyRecord{EmployeeID: k.EmployeeID, Month: k.Month, Category: k.Category, Section: k.Section, Actual: v})
	}
	return out, nil
}

func (r *fakeRecordRepo) CountByKey(_ context.Context, key entity.RecordKey) (int64, error) {
	if _, ok := r.rows[key]; ok {
		return 1, nil
	}
	return 0, nil
}

type fakeStatusRepo struct {
	rows map[entity.StatusKey]bool
	err  error
}

func (r *fakeStatusRepo) UpsertBatch(_ context.Context, statuses []entity.MonthStatus) error {
	if r.err != nil {
		return r.err
	}
	if r.rows == nil {
		r.rows = make(map[entity.StatusKey]bool)
	}
	for _, st := range statuses {
		r.rows[st.Key()] = st.IsFilled
	}
	return nil
}

func (r *fakeStatusRepo) FindAll(context.Context) ([]entity.MonthStatus, error) {
	var out []entity.MonthStatus
	for k, v := range r.rows {
		out = append(out, entity.MonthStatus{Month: k.Month, Section: k.Section, IsFilled: v})
	}
	return out, nil
}

func TestSaveDataUseCase_Execute(t *testing.T) {
	repo := &fakeRecordRepo{}
	store := memory.NewRecordStore()
	uc := NewSaveDataUseCase(repo, store)

	records := []entity.MonthlyRecord{
		{EmployeeID: "s1", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 3},
		{EmployeeID: "s1", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 8},
	}
	output, err := uc.Execute(context.Background(), SaveDataInput{Records: records})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Saved != 2 {
		t.Errorf("Saved = %d, want 2", output.Saved)
	}
	if len(repo.rows) != 1 || repo.rows[records[0].Key()] != 8 {
		t.Errorf("repo rows = %v, want a single row with 8", repo.rows)
	}
	if v, _ := store.Get(records[0].Key()); v != 8 {
		t.Errorf("store value = %v, want 8", v)
	}
}

func TestSaveDataUseCase_InvalidRecordRejectsBatch(t *testing.T) {
	repo := &fakeRecordRepo{}
	uc := NewSaveDataUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), SaveDataInput{Records: []entity.MonthlyRecord{
		{EmployeeID: "s1", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 3},
		{EmployeeID: "s1", Month: 13, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 3},
	}})

	var recErr *domainerror.RecordError
	if !errors.As(err, &recErr) || recErr.Code != domainerror.ErrCodeRecordInvalidMonth {
		t.Fatalf("error = %v, want invalid month", err)
	}
	if len(repo.rows) != 0 {
		t.Error("nothing should be written when one record is invalid")
	}
}

func TestSaveDataUseCase_NonFiniteValueRejectsBatch(t *testing.T) {
	repo := &fakeRecordRepo{}
	store := memory.NewRecordStore()
	uc := NewSaveDataUseCase(repo, store)

	_, err := uc.Execute(context.Background(), SaveDataInput{Records: []entity.MonthlyRecord{
		{EmployeeID: "s1", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 3},
		{EmployeeID: "s2", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario, Actual: math.NaN()},
	}})

	var recErr *domainerror.RecordError
	if !errors.As(err, &recErr) || recErr.Code != domainerror.ErrCodeRecordInvalidValue {
		t.Fatalf("error = %v, want invalid value", err)
	}
	if len(repo.rows) != 0 || len(store.Snapshot().Records) != 0 {
		t.Error("nothing should be written when one value is not finite")
	}
}

func TestSaveDataUseCase_PersistFailure(t *testing.T) {
	uc := NewSaveDataUseCase(&fakeRecordRepo{err: errors.New("connection refused")}, nil)

	_, err := uc.Execute(context.Background(), SaveDataInput{Records: []entity.MonthlyRecord{
		{EmployeeID: "s1", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario, Actual: 3},
	}})

	var recErr *domainerror.RecordError
	if !errors.As(err, &recErr) || recErr.Code != domainerror.ErrCodeRecordPersistFailed {
		t.Fatalf("error = %v, want persist failure", err)
	}
}

func TestSaveStatusUseCase_Execute(t *testing.T) {
	repo := &fakeStatusRepo{}
	store := memory.NewRecordStore()
	store.SetLock(entity.SectionEERR, 1, true)
	uc := NewSaveStatusUseCase(repo, store)

	_, err := uc.Execute(context.Background(), SaveStatusInput{Statuses: []entity.MonthStatus{
		{Month: 0, Section: entity.SectionEERR, IsFilled: true},
		{Month: 1, Section: entity.SectionEERR, IsFilled: false},
	}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !store.IsLocked(entity.SectionEERR, 0) || store.IsLocked(entity.SectionEERR, 1) {
		t.Error("store lock flags should mirror the saved statuses")
	}
	if len(repo.rows) != 2 {
		t.Errorf("repo rows = %d, want 2", len(repo.rows))
	}

	_, err = uc.Execute(context.Background(), SaveStatusInput{Statuses: []entity.MonthStatus{{Month: 0, Section: "Nope"}}})
	if err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestLoadDataUseCase_Execute(t *testing.T) {
	records := &fakeRecordRepo{}
	statuses := &fakeStatusRepo{}
	_ = records.UpsertBatch(context.Background(), []entity.MonthlyRecord{
		{EmployeeID: "j1", Month: 4, Category: "Riego", Section: entity.SectionJardin, Actual: 2},
	})
	_ = statuses.UpsertBatch(context.Background(), []entity.MonthStatus{{Month: 4, Section: entity.SectionJardin, IsFilled: true}})

	output, err := NewLoadDataUseCase(records, statuses).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(output.Snapshot.Records) != 1 || len(output.Snapshot.Statuses) != 1 {
		t.Errorf("snapshot = %+v, want one record and one status", output.Snapshot)
	}

	_, err = NewLoadDataUseCase(&fakeRecordRepo{err: errors.New("down")}, statuses).Execute(context.Background())
	if err == nil {
		t.Error("expected error when the record repository fails")
	}
}
