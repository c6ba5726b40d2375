package record

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/memory"
)

// recordingPublisher collects enqueued jobs, rejecting them when full is set.
type recordingPublisher struct {
	full bool
	jobs []*entity.SyncJob
}

func (p *recordingPublisher) Enqueue(job *entity.SyncJob) bool {
	if p.full {
		return false
	}
	p.jobs = append(p.jobs, job)
	return true
}

func recordCode(t *testing.T, err error) domainerror.RecordErrorCode {
	t.Helper()
	var recErr *domainerror.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("error = %v, want *RecordError", err)
	}
	return recErr.Code
}

func TestUpdateRecordUseCase_Execute(t *testing.T) {
	store := memory.NewRecordStore()
	publisher := &recordingPublisher{}
	uc := NewUpdateRecordUseCase(store, publisher)

	input := UpdateRecordInput{
		EmployeeID: "s1",
		Month:      3,
		Category:   "Mamparas",
		Section:    entity.SectionSanitario,
		Actual:     4,
	}
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	input.Actual = 7
	output, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !output.Queued {
		t.Error("job should be queued")
	}

	records := store.Records(entity.SectionSanitario)
	if len(records) != 1 || records[0].Actual != 7 {
		t.Errorf("records = %+v, want one record with 7", records)
	}

	if len(publisher.jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(publisher.jobs))
	}
	last := publisher.jobs[1]
	if last.Action != entity.SyncActionSaveData || len(last.Records) != 1 || last.Records[0].Actual != 7 {
		t.Errorf("last job = %+v, want saveData with the full snapshot", last)
	}
}

func TestUpdateRecordUseCase_Validation(t *testing.T) {
	uc := NewUpdateRecordUseCase(memory.NewRecordStore(), &recordingPublisher{})

	valid := UpdateRecordInput{EmployeeID: "s1", Month: 0, Category: "Mamparas", Section: entity.SectionSanitario}

	tests := []struct {
		name   string
		mutate func(*UpdateRecordInput)
		want   domainerror.RecordErrorCode
	}{
		{"missing employee", func(in *UpdateRecordInput) { in.EmployeeID = " " }, domainerror.ErrCodeMissingEmployee},
		{"month too large", func(in *UpdateRecordInput) { in.Month = 12 }, domainerror.ErrCodeRecordInvalidMonth},
		{"negative month", func(in *UpdateRecordInput) { in.Month = -1 }, domainerror.ErrCodeRecordInvalidMonth},
		{"missing category", func(in *UpdateRecordInput) { in.Category = "" }, domainerror.ErrCodeRecordMissingCategory},
		{"unknown section", func(in *UpdateRecordInput) { in.Section = "Ferreteria" }, domainerror.ErrCodeRecordUnknownSection},
		{"NaN value", func(in *UpdateRecordInput) { in.Actual = math.NaN() }, domainerror.ErrCodeRecordInvalidValue},
		{"infinite value", func(in *UpdateRecordInput) { in.Actual = math.Inf(1) }, domainerror.ErrCodeRecordInvalidValue},
		{"negative infinite value", func(in *UpdateRecordInput) { in.Actual = math.Inf(-1) }, domainerror.ErrCodeRecordInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			if got := recordCode(t, err); got != tt.want {
				t.Errorf("code = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUpdateRecordUseCase_NegativeValuesAreStored(t *testing.T) {
	store := memory.NewRecordStore()
	uc := NewUpdateRecordUseCase(store, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), UpdateRecordInput{
		EmployeeID: "s1", Month: 0, Category: entity.CategoryGrowth, Section: entity.SectionSanitario, Actual: -2.5,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := store.Records(entity.SectionSanitario)[0].Actual; got != -2.5 {
		t.Errorf("Actual = %v, want -2.5", got)
	}
}

func TestUpdateRecordUseCase_LockedMonth(t *testing.T) {
	store := memory.NewRecordStore()
	store.ToggleLock(entity.SectionCocinas, 5)
	uc := NewUpdateRecordUseCase(store, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), UpdateRecordInput{
		EmployeeID: "ce1", Month: 5, Category: "Armarios", Section: entity.SectionCocinas, Actual: 1,
	})
	if got := recordCode(t, err); got != domainerror.ErrCodeMonthLocked {
		t.Errorf("code = %s, want %s", got, domainerror.ErrCodeMonthLocked)
	}
	if len(store.Records(entity.SectionCocinas)) != 0 {
		t.Error("locked month must not be written")
	}
}

func TestUpdateRecordUseCase_QueueFull(t *testing.T) {
	store := memory.NewRecordStore()
	uc := NewUpdateRecordUseCase(store, &recordingPublisher{full: true})

	output, err := uc.Execute(context.Background(), UpdateRecordInput{
		EmployeeID: "m1", Month: 1, Category: "Puertas de Paso", Section: entity.SectionMadera, Actual: 3,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Queued {
		t.Error("Queued should be false when the queue is full")
	}
	if len(store.Records(entity.SectionMadera)) != 1 {
		t.Error("record should still be stored in memory")
	}
}

func TestToggleMonthLockUseCase_Execute(t *testing.T) {
	store := memory.NewRecordStore()
	publisher := &recordingPublisher{}
	uc := NewToggleMonthLockUseCase(store, publisher)

	output, err := uc.Execute(context.Background(), ToggleMonthLockInput{Section: entity.SectionJardin, Month: 11})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !output.IsLocked {
		t.Error("month should be locked after first toggle")
	}

	output, err = uc.Execute(context.Background(), ToggleMonthLockInput{Section: entity.SectionJardin, Month: 11})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.IsLocked {
		t.Error("month should be unlocked after second toggle")
	}

	if len(publisher.jobs) != 2 || publisher.jobs[1].Action != entity.SyncActionSaveStatus {
		t.Fatalf("jobs = %+v, want two saveStatus jobs", publisher.jobs)
	}
	if st := publisher.jobs[1].Statuses; len(st) != 1 || st[0].IsFilled {
		t.Errorf("pushed statuses = %+v, want one unlocked month", st)
	}

	_, err = uc.Execute(context.Background(), ToggleMonthLockInput{Section: entity.SectionJardin, Month: 12})
	if got := recordCode(t, err); got != domainerror.ErrCodeRecordInvalidMonth {
		t.Errorf("code = %s, want %s", got, domainerror.ErrCodeRecordInvalidMonth)
	}
}

func TestListMonthStatusUseCase_Execute(t *testing.T) {
	catalog := &entity.Catalog{
		Groups: []*entity.Group{
			{Key: "MAD_VEND", Section: entity.SectionMadera, Profile: entity.GroupProfileProject,
				Categories: []string{"Puertas de Paso"}, Employees: []entity.Employee{{ID: "m1", Name: "M"}}},
		},
	}
	resolver := performance.NewTargetResolver(catalog)
	engine := performance.NewEngine(catalog, resolver, performance.NewCalculator(resolver))

	store := memory.NewRecordStore()
	store.Upsert(entity.MonthlyRecord{EmployeeID: "m1", Month: 2, Category: "Puertas de Paso", Section: entity.SectionMadera, Actual: 4})
	store.ToggleLock(entity.SectionMadera, 0)

	uc := NewListMonthStatusUseCase(store, catalog, engine)
	output, err := uc.Execute(context.Background(), ListMonthStatusInput{Section: entity.SectionMadera})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	jan, mar := output.Months[0], output.Months[2]
	if !jan.IsLocked || jan.HasData {
		t.Errorf("January = %+v, want locked without data", jan)
	}
	if mar.IsLocked || !mar.HasData || len(mar.GroupsWithData) != 1 || mar.GroupsWithData[0] != "MAD_VEND" {
		t.Errorf("March = %+v, want unlocked with data from MAD_VEND", mar)
	}
	if len(output.ClosedMonths) != 1 || output.ClosedMonths[0] != 0 {
		t.Errorf("ClosedMonths = %v, want [0]", output.ClosedMonths)
	}
	if output.Months[2].Name != "Marzo" {
		t.Errorf("month name = %s, want Marzo", output.Months[2].Name)
	}
}
